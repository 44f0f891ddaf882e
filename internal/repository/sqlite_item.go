package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/domain"
)

// itemColumns is the canonical SELECT column list for items.
const itemColumns = `id, seq, group_id, parent_id, kind, name, start_date, end_date,
		progress, status, assignee, order_index, created_at, updated_at`

// itemOrder is the display order rows are laid out in.
const itemOrder = ` ORDER BY group_id, start_date, order_index, seq`

// SQLiteItemRepo implements ItemRepo using a SQLite database.
type SQLiteItemRepo struct {
	db db.DBTX
}

// NewSQLiteItemRepo creates a new SQLiteItemRepo.
func NewSQLiteItemRepo(conn db.DBTX) *SQLiteItemRepo {
	return &SQLiteItemRepo{db: conn}
}

func (r *SQLiteItemRepo) Create(ctx context.Context, it *domain.TimelineItem) error {
	query := `INSERT INTO items (` + itemColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		it.ID,
		it.Seq,
		it.GroupID,
		ptrToValue(it.ParentID),
		string(it.Kind),
		it.Name,
		domain.FormatDay(it.StartDate),
		domain.FormatDay(it.EndDate),
		it.Progress,
		string(statusOrDefault(it.Status)),
		it.Assignee,
		it.OrderIndex,
		formatTimestamp(it.CreatedAt),
		formatTimestamp(it.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}
	return nil
}

func (r *SQLiteItemRepo) GetByID(ctx context.Context, id string) (*domain.TimelineItem, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	return scanItem(row)
}

func (r *SQLiteItemRepo) GetBySeq(ctx context.Context, groupID string, seq int) (*domain.TimelineItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE group_id = ? AND seq = ?`, groupID, seq)
	return scanItem(row)
}

func (r *SQLiteItemRepo) List(ctx context.Context) ([]*domain.TimelineItem, error) {
	return r.query(ctx, `SELECT `+itemColumns+` FROM items`+itemOrder)
}

func (r *SQLiteItemRepo) ListByGroup(ctx context.Context, groupID string) ([]*domain.TimelineItem, error) {
	return r.query(ctx, `SELECT `+itemColumns+` FROM items WHERE group_id = ?`+itemOrder, groupID)
}

func (r *SQLiteItemRepo) Update(ctx context.Context, it *domain.TimelineItem) error {
	query := `UPDATE items SET group_id = ?, parent_id = ?, kind = ?, name = ?, start_date = ?, end_date = ?,
		progress = ?, status = ?, assignee = ?, order_index = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		it.GroupID,
		ptrToValue(it.ParentID),
		string(it.Kind),
		it.Name,
		domain.FormatDay(it.StartDate),
		domain.FormatDay(it.EndDate),
		it.Progress,
		string(statusOrDefault(it.Status)),
		it.Assignee,
		it.OrderIndex,
		formatTimestamp(it.UpdatedAt),
		it.ID,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return requireAffected(res, "item", it.ID)
}

func (r *SQLiteItemRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

func (r *SQLiteItemRepo) query(ctx context.Context, query string, args ...any) ([]*domain.TimelineItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []*domain.TimelineItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return items, nil
}

func scanItem(row rowScanner) (*domain.TimelineItem, error) {
	var it domain.TimelineItem
	var parentID sql.NullString
	var kindStr, statusStr, startStr, endStr, createdAtStr, updatedAtStr string

	err := row.Scan(
		&it.ID, &it.Seq, &it.GroupID, &parentID, &kindStr, &it.Name,
		&startStr, &endStr,
		&it.Progress, &statusStr, &it.Assignee, &it.OrderIndex,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("item %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning item: %w", err)
	}

	it.ParentID = stringPtr(parentID)
	it.Kind = domain.ItemKind(kindStr)
	it.Status = domain.ItemStatus(statusStr)

	if it.StartDate, err = parseDayColumn("start_date", startStr); err != nil {
		return nil, err
	}
	if it.EndDate, err = parseDayColumn("end_date", endStr); err != nil {
		return nil, err
	}
	if it.CreatedAt, err = parseTimestamp("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if it.UpdatedAt, err = parseTimestamp("updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	return &it, nil
}

func statusOrDefault(s domain.ItemStatus) domain.ItemStatus {
	if s == "" {
		return domain.StatusTodo
	}
	return s
}
