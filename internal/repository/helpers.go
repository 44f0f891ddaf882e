package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
)

// nullableString converts "" to SQL NULL.
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// stringPtr converts a nullable column into the domain's optional id form.
func stringPtr(s sql.NullString) *string {
	if !s.Valid || s.String == "" {
		return nil
	}
	v := s.String
	return &v
}

// ptrToValue converts an optional id into a value suitable for SQLite storage.
func ptrToValue(p *string) interface{} {
	if p == nil {
		return nil
	}
	return nullableString(*p)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTimestamp(column, s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return t, nil
}

func parseDayColumn(column, s string) (time.Time, error) {
	t, err := time.Parse(domain.DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return t, nil
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
