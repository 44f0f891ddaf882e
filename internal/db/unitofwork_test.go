package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openUoW(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func holidayNames(t *testing.T, database *sql.DB) []string {
	t.Helper()
	rows, err := database.Query(`SELECT name FROM holidays ORDER BY day`)
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		require.NoError(t, rows.Scan(&n))
		names = append(names, n)
	}
	require.NoError(t, rows.Err())
	return names
}

func insertHoliday(ctx context.Context, tx db.DBTX, day, name string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO holidays (day, name) VALUES (?, ?)`, day, name)
	return err
}

func TestWithinTx_CommitsEveryStatement(t *testing.T) {
	database, uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertHoliday(ctx, tx, "2025-12-25", "Christmas"); err != nil {
			return err
		}
		return insertHoliday(ctx, tx, "2025-12-26", "Boxing Day")
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Christmas", "Boxing Day"}, holidayNames(t, database))
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	database, uow := openUoW(t)
	errStop := errors.New("stop")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertHoliday(ctx, tx, "2025-01-01", "New Year"); err != nil {
			return err
		}
		return errStop
	})
	assert.ErrorIs(t, err, errStop)
	assert.Empty(t, holidayNames(t, database))
}

func TestWithinTx_RollsBackOnConstraintViolation(t *testing.T) {
	database, uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertHoliday(ctx, tx, "2025-05-01", "Labour Day"); err != nil {
			return err
		}
		// Unknown group: rejected by the foreign key.
		_, err := tx.ExecContext(ctx, `INSERT INTO items
			(id, group_id, kind, name, start_date, end_date, created_at, updated_at)
			VALUES ('i1', 'missing', 'task', 'Orphan', '2025-05-02', '2025-05-03', '', '')`)
		return err
	})
	require.Error(t, err)
	assert.Empty(t, holidayNames(t, database))
}

func TestWithinTx_RollsBackOnPanic(t *testing.T) {
	database, uow := openUoW(t)

	assert.PanicsWithValue(t, "boom", func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertHoliday(ctx, tx, "2025-07-04", "Independence Day")
			panic("boom")
		})
	})
	assert.Empty(t, holidayNames(t, database))
}

func TestWithinTx_CommitSurvivesReopen(t *testing.T) {
	database, path := testutil.NewTestDBFile(t)
	uow := db.NewSQLiteUnitOfWork(database)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertHoliday(ctx, tx, "2025-11-27", "Thanksgiving")
	})
	require.NoError(t, err)
	require.NoError(t, database.Close())

	reopened, err := db.OpenDB(path)
	require.NoError(t, err)
	defer reopened.Close()
	assert.Equal(t, []string{"Thanksgiving"}, holidayNames(t, reopened))
}
