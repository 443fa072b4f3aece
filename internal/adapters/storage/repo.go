package storage

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"context"
)

// TimeLayout is the canonical timestamp format for all tables.
const TimeLayout = "2006-01-02T15:04:05Z07:00"

// Scanner abstracts *sql.Row and *sql.Rows for row codecs.
type Scanner interface {
	Scan(dest ...any) error
}

// Codec maps one record type onto its table. The six content stores share a
// single generic repository implementation; each store package supplies only
// its codec and any entity-specific queries.
type Codec[R any] struct {
	Table   string
	Columns []string // column names; "id" must be first
	ID      func(R) string
	Values  func(R) []any // values in Columns order
	Scan    func(Scanner) (R, error)
}

// Repo is a generic CRUD repository over one table.
type Repo[R any] struct {
	db        SQLDB
	codec     Codec[R]
	selectSQL string
	upsertSQL string
}

// NewRepo creates a repository for the given codec.
// PRE: codec.Columns is non-empty and starts with "id"
// POST: Returns a ready-to-use repository with precomputed SQL
func NewRepo[R any](db SQLDB, codec Codec[R]) *Repo[R] {
	cols := strings.Join(codec.Columns, ", ")
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(codec.Columns)), ", ")

	var updates []string
	for _, c := range codec.Columns[1:] {
		updates = append(updates, c+"=excluded."+c)
	}

	return &Repo[R]{
		db:        db,
		codec:     codec,
		selectSQL: "SELECT " + cols + " FROM " + codec.Table,
		upsertSQL: "INSERT INTO " + codec.Table + " (" + cols + ") VALUES (" + placeholders + ")" +
			" ON CONFLICT(id) DO UPDATE SET " + strings.Join(updates, ", "),
	}
}

// GetByID retrieves a record by ID.
// PRE: id is non-empty
// POST: Returns the record or an error if not found
func (r *Repo[R]) GetByID(ctx context.Context, id string) (R, error) {
	row := r.db.QueryRowContext(ctx, r.selectSQL+" WHERE id = ?", id)
	return r.codec.Scan(row)
}

// Save inserts or updates a record.
// PRE: record has been validated
// POST: Record is persisted (insert or update)
func (r *Repo[R]) Save(ctx context.Context, rec R) error {
	_, err := r.db.ExecContext(ctx, r.upsertSQL, r.codec.Values(rec)...)
	return err
}

// Delete removes a record by ID.
// PRE: id is non-empty
// POST: Record with given id is removed
func (r *Repo[R]) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM "+r.codec.Table+" WHERE id = ?", id)
	return err
}

// List returns every record in the table, ordered by the given column.
// Filtering is the caller's concern: pages hold the full snapshot in memory
// and recompute their filtered view from it, so the store never narrows the
// result set.
// PRE: orderBy is one of the codec's columns
// POST: Returns all records; an unknown column is an error, not an injection
func (r *Repo[R]) List(ctx context.Context, orderBy string, ascending bool) ([]R, error) {
	if !r.hasColumn(orderBy) {
		return nil, fmt.Errorf("%s: unknown order column %q", r.codec.Table, orderBy)
	}
	dir := "DESC"
	if ascending {
		dir = "ASC"
	}

	rows, err := r.db.QueryContext(ctx, r.selectSQL+" ORDER BY "+orderBy+" "+dir)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []R
	for rows.Next() {
		rec, err := r.codec.Scan(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Count returns the number of records in the table.
// POST: Returns the row count
func (r *Repo[R]) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+r.codec.Table).Scan(&n)
	return n, err
}

func (r *Repo[R]) hasColumn(col string) bool {
	for _, c := range r.codec.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// NullableString converts an empty string to SQL NULL.
func NullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// NullableTime converts a zero time to SQL NULL.
func NullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(TimeLayout)
}

// BoolToInt converts a bool to its SQLite integer representation.
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// ParseTime parses a stored timestamp, logging a warning on failure.
func ParseTime(raw, table, field, id string) time.Time {
	t, err := time.Parse(TimeLayout, raw)
	if err != nil {
		slog.Warn("storage: failed to parse time", "table", table, "field", field, "id", id, "raw", raw, "error", err)
	}
	return t
}

// ParseNullableTime parses a nullable stored timestamp.
func ParseNullableTime(ns sql.NullString, table, field, id string) time.Time {
	if !ns.Valid {
		return time.Time{}
	}
	return ParseTime(ns.String, table, field, id)
}
