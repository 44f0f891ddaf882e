package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/domain"
)

const groupColumns = `id, short_id, name, status, order_index, created_at, updated_at`

// SQLiteGroupRepo implements GroupRepo using a SQLite database.
type SQLiteGroupRepo struct {
	db db.DBTX
}

// NewSQLiteGroupRepo creates a new SQLiteGroupRepo.
func NewSQLiteGroupRepo(conn db.DBTX) *SQLiteGroupRepo {
	return &SQLiteGroupRepo{db: conn}
}

func (r *SQLiteGroupRepo) Create(ctx context.Context, g *domain.Group) error {
	query := `INSERT INTO groups (` + groupColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		g.ID,
		g.ShortID,
		g.Name,
		string(g.Status),
		g.OrderIndex,
		formatTimestamp(g.CreatedAt),
		formatTimestamp(g.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting group: %w", err)
	}
	return nil
}

func (r *SQLiteGroupRepo) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+groupColumns+` FROM groups WHERE id = ?`, id)
	return scanGroup(row)
}

func (r *SQLiteGroupRepo) GetByShortID(ctx context.Context, shortID string) (*domain.Group, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+groupColumns+` FROM groups WHERE UPPER(short_id) = UPPER(?)`, shortID)
	return scanGroup(row)
}

func (r *SQLiteGroupRepo) List(ctx context.Context) ([]*domain.Group, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+groupColumns+` FROM groups ORDER BY order_index, created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}
	defer rows.Close()

	var groups []*domain.Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating groups: %w", err)
	}
	return groups, nil
}

func (r *SQLiteGroupRepo) Update(ctx context.Context, g *domain.Group) error {
	query := `UPDATE groups SET short_id = ?, name = ?, status = ?, order_index = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		g.ShortID,
		g.Name,
		string(g.Status),
		g.OrderIndex,
		formatTimestamp(g.UpdatedAt),
		g.ID,
	)
	if err != nil {
		return fmt.Errorf("updating group: %w", err)
	}
	return requireAffected(res, "group", g.ID)
}

func (r *SQLiteGroupRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting group: %w", err)
	}
	return nil
}

func scanGroup(row rowScanner) (*domain.Group, error) {
	var g domain.Group
	var statusStr, createdAtStr, updatedAtStr string

	err := row.Scan(&g.ID, &g.ShortID, &g.Name, &statusStr, &g.OrderIndex, &createdAtStr, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("group %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning group: %w", err)
	}
	g.Status = domain.GroupStatus(statusStr)

	if g.CreatedAt, err = parseTimestamp("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if g.UpdatedAt, err = parseTimestamp("updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	return &g, nil
}

// requireAffected maps a zero-row UPDATE to ErrNotFound.
func requireAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
	}
	return nil
}
