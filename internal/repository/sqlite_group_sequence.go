package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/gantt/internal/db"
)

// SQLiteGroupSequenceRepo allocates group-scoped item numbers atomically
// using the group_sequences table.
type SQLiteGroupSequenceRepo struct {
	db db.DBTX
}

// NewSQLiteGroupSequenceRepo creates a new SQLiteGroupSequenceRepo.
func NewSQLiteGroupSequenceRepo(conn db.DBTX) *SQLiteGroupSequenceRepo {
	return &SQLiteGroupSequenceRepo{db: conn}
}

// NextGroupSeq returns the next item number for a group.
// Allocation is atomic and safe under concurrent writes.
func (r *SQLiteGroupSequenceRepo) NextGroupSeq(ctx context.Context, groupID string) (int, error) {
	seedQuery := `INSERT OR IGNORE INTO group_sequences (group_id, next_seq)
		SELECT ?, COALESCE(MAX(seq), 0) + 1 FROM items WHERE group_id = ? AND seq > 0`
	if _, err := r.db.ExecContext(ctx, seedQuery, groupID, groupID); err != nil {
		return 0, fmt.Errorf("seeding group sequence for %s: %w", groupID, err)
	}

	var next int
	allocQuery := `UPDATE group_sequences
		SET next_seq = next_seq + 1
		WHERE group_id = ?
		RETURNING next_seq - 1`
	if err := r.db.QueryRowContext(ctx, allocQuery, groupID).Scan(&next); err != nil {
		return 0, fmt.Errorf("allocating next seq for group %s: %w", groupID, err)
	}
	return next, nil
}
