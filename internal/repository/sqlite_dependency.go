package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/domain"
)

// SQLiteDependencyRepo implements DependencyRepo using a SQLite database.
type SQLiteDependencyRepo struct {
	db db.DBTX
}

// NewSQLiteDependencyRepo creates a new SQLiteDependencyRepo.
func NewSQLiteDependencyRepo(conn db.DBTX) *SQLiteDependencyRepo {
	return &SQLiteDependencyRepo{db: conn}
}

func (r *SQLiteDependencyRepo) Create(ctx context.Context, itemID, dependsOnID string) error {
	query := `INSERT INTO item_dependencies (item_id, depends_on_id, created_at) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, itemID, dependsOnID, nowUTC()); err != nil {
		return fmt.Errorf("inserting dependency: %w", err)
	}
	return nil
}

func (r *SQLiteDependencyRepo) Delete(ctx context.Context, itemID, dependsOnID string) error {
	query := `DELETE FROM item_dependencies WHERE item_id = ? AND depends_on_id = ?`
	res, err := r.db.ExecContext(ctx, query, itemID, dependsOnID)
	if err != nil {
		return fmt.Errorf("deleting dependency: %w", err)
	}
	return requireAffected(res, "dependency", itemID+"->"+dependsOnID)
}

func (r *SQLiteDependencyRepo) ListAll(ctx context.Context) ([]domain.DependencyEdge, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT depends_on_id, item_id FROM item_dependencies ORDER BY created_at, item_id, depends_on_id`)
	if err != nil {
		return nil, fmt.Errorf("listing dependencies: %w", err)
	}
	defer rows.Close()

	var edges []domain.DependencyEdge
	for rows.Next() {
		var e domain.DependencyEdge
		if err := rows.Scan(&e.FromID, &e.ToID); err != nil {
			return nil, fmt.Errorf("scanning dependency: %w", err)
		}
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dependencies: %w", err)
	}
	return edges, nil
}

func (r *SQLiteDependencyRepo) ListPrerequisites(ctx context.Context, itemID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT depends_on_id FROM item_dependencies WHERE item_id = ? ORDER BY created_at, depends_on_id`, itemID)
	if err != nil {
		return nil, fmt.Errorf("listing prerequisites: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning prerequisite: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating prerequisites: %w", err)
	}
	return ids, nil
}
