package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillSeq(db); err != nil {
		return fmt.Errorf("backfilling seq values: %w", err)
	}
	if err := migrateBackfillGroupSequences(db); err != nil {
		return fmt.Errorf("backfilling group sequence allocator state: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS groups (
		id          TEXT PRIMARY KEY,
		short_id    TEXT NOT NULL DEFAULT '',
		name        TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','paused','done','archived')),
		order_index INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_groups_short_id ON groups(short_id) WHERE short_id != ''`,

	`CREATE TABLE IF NOT EXISTS group_sequences (
		group_id TEXT PRIMARY KEY REFERENCES groups(id) ON DELETE CASCADE,
		next_seq INTEGER NOT NULL CHECK(next_seq > 0)
	)`,

	`CREATE TABLE IF NOT EXISTS items (
		id          TEXT PRIMARY KEY,
		group_id    TEXT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
		parent_id   TEXT REFERENCES items(id) ON DELETE SET NULL,
		kind        TEXT NOT NULL CHECK(kind IN ('task','stage','milestone')),
		name        TEXT NOT NULL,
		start_date  TEXT NOT NULL,
		end_date    TEXT NOT NULL,
		progress    REAL NOT NULL DEFAULT 0 CHECK(progress >= 0 AND progress <= 1),
		status      TEXT NOT NULL DEFAULT 'todo'
		            CHECK(status IN ('todo','in_progress','blocked','done')),
		order_index INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		CHECK(end_date >= start_date)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_items_group ON items(group_id)`,
	`CREATE INDEX IF NOT EXISTS idx_items_parent ON items(parent_id)`,

	`CREATE TABLE IF NOT EXISTS item_dependencies (
		item_id       TEXT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
		depends_on_id TEXT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
		created_at    TEXT NOT NULL,
		PRIMARY KEY (item_id, depends_on_id),
		CHECK(item_id != depends_on_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_item_dependencies_depends_on ON item_dependencies(depends_on_id)`,

	`CREATE TABLE IF NOT EXISTS holidays (
		day  TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT ''
	)`,

	// Later additions.
	`ALTER TABLE items ADD COLUMN assignee TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE items ADD COLUMN seq INTEGER NOT NULL DEFAULT 0`,
	`CREATE INDEX IF NOT EXISTS idx_items_group_seq ON items(group_id, seq)`,
}

// migrateBackfillSeq numbers items that predate the seq column, per group in
// display order. Idempotent: only rows with seq = 0 are touched.
func migrateBackfillSeq(db *sql.DB) error {
	ctx := context.Background()

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items WHERE seq = 0`).Scan(&count); err != nil {
		return fmt.Errorf("checking items seq: %w", err)
	}
	if count == 0 {
		return nil
	}

	groupRows, err := db.QueryContext(ctx, `SELECT DISTINCT group_id FROM items WHERE seq = 0 ORDER BY group_id`)
	if err != nil {
		return fmt.Errorf("listing groups for seq backfill: %w", err)
	}
	var groupIDs []string
	for groupRows.Next() {
		var gid string
		if err := groupRows.Scan(&gid); err != nil {
			groupRows.Close()
			return fmt.Errorf("scanning group id: %w", err)
		}
		groupIDs = append(groupIDs, gid)
	}
	groupRows.Close()

	for _, gid := range groupIDs {
		if err := backfillGroupSeq(ctx, db, gid); err != nil {
			return fmt.Errorf("backfilling seq for group %s: %w", gid, err)
		}
	}
	return nil
}

func backfillGroupSeq(ctx context.Context, db *sql.DB, groupID string) error {
	var maxSeq int
	if err := db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) FROM items WHERE group_id = ?`, groupID).Scan(&maxSeq); err != nil {
		return fmt.Errorf("reading max seq: %w", err)
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id FROM items WHERE group_id = ? AND seq = 0 ORDER BY order_index, created_at`, groupID)
	if err != nil {
		return fmt.Errorf("listing items: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	rows.Close()

	seq := maxSeq + 1
	for _, id := range ids {
		if _, err := db.ExecContext(ctx,
			`UPDATE items SET seq = ? WHERE id = ? AND seq = 0`, seq, id); err != nil {
			return fmt.Errorf("updating item seq: %w", err)
		}
		seq++
	}
	return nil
}

func migrateBackfillGroupSequences(db *sql.DB) error {
	ctx := context.Background()

	// Populate (or raise) next_seq for every group from the highest seq in use.
	query := `INSERT INTO group_sequences (group_id, next_seq)
		SELECT g.id, COALESCE(MAX(i.seq), 0) + 1
		FROM groups g
		LEFT JOIN items i ON i.group_id = g.id AND i.seq > 0
		GROUP BY g.id
		ON CONFLICT(group_id) DO UPDATE
		SET next_seq = MAX(group_sequences.next_seq, excluded.next_seq)`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("upserting group sequence rows: %w", err)
	}
	return nil
}
