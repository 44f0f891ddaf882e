package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/gantt/internal/db"
	"github.com/alexanderramin/gantt/internal/domain"
)

// SQLiteHolidayRepo implements HolidayRepo using a SQLite database.
type SQLiteHolidayRepo struct {
	db db.DBTX
}

// NewSQLiteHolidayRepo creates a new SQLiteHolidayRepo.
func NewSQLiteHolidayRepo(conn db.DBTX) *SQLiteHolidayRepo {
	return &SQLiteHolidayRepo{db: conn}
}

// Add inserts a holiday, renaming it if the day is already present.
func (r *SQLiteHolidayRepo) Add(ctx context.Context, day time.Time, name string) error {
	query := `INSERT INTO holidays (day, name) VALUES (?, ?)
		ON CONFLICT(day) DO UPDATE SET name = excluded.name`
	if _, err := r.db.ExecContext(ctx, query, domain.FormatDay(day), name); err != nil {
		return fmt.Errorf("inserting holiday: %w", err)
	}
	return nil
}

func (r *SQLiteHolidayRepo) List(ctx context.Context) ([]domain.Holiday, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT day, name FROM holidays ORDER BY day`)
	if err != nil {
		return nil, fmt.Errorf("listing holidays: %w", err)
	}
	defer rows.Close()

	var out []domain.Holiday
	for rows.Next() {
		var dayStr string
		var h domain.Holiday
		if err := rows.Scan(&dayStr, &h.Name); err != nil {
			return nil, fmt.Errorf("scanning holiday: %w", err)
		}
		if h.Day, err = parseDayColumn("day", dayStr); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating holidays: %w", err)
	}
	return out, nil
}

func (r *SQLiteHolidayRepo) Delete(ctx context.Context, day time.Time) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM holidays WHERE day = ?`, domain.FormatDay(day))
	if err != nil {
		return fmt.Errorf("deleting holiday: %w", err)
	}
	return requireAffected(res, "holiday", domain.FormatDay(day))
}
