package db

import (
	"context"
	"database/sql"
)

// DBTX is what the repositories run their queries against: the shared
// *sql.DB for single statements, or the *sql.Tx handed out by WithinTx when
// several timeline changes must land together.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
