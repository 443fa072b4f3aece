// Package viewstate keeps a page's in-memory copy of one store's rows and
// derives the visible subset from the active filters.
//
// The displayed set is always a pure projection of the full row set: filtering
// never mutates rows, and every mutation elsewhere is followed by a full
// Refresh rather than a local patch, so view state can only ever drift as far
// as one re-fetch. Full-table in-memory filtering is a deliberate scaling
// boundary: it holds while tables stay in the tens-to-hundreds of rows.
package viewstate

import (
	"context"
	"net/url"
	"strings"
	"sync"
)

// FilterAll is the sentinel that disables a category or year filter.
const FilterAll = "all"

// Filters holds the active filter values for one page.
// A zero Filters matches every row.
type Filters struct {
	Term     string // case-insensitive substring, matched against text fields
	Category string // exact match; "" or FilterAll bypasses
	Year     string // exact match; "" or FilterAll bypasses
}

// ParseFilters extracts filter values from URL query values.
// POST: absent category/year come back as FilterAll
func ParseFilters(q url.Values) Filters {
	f := Filters{
		Term:     q.Get("q"),
		Category: q.Get("category"),
		Year:     q.Get("year"),
	}
	if f.Category == "" {
		f.Category = FilterAll
	}
	if f.Year == "" {
		f.Year = FilterAll
	}
	return f
}

// Fields describes how filter values read one row type. Text extractors feed
// the substring search (a row matches if ANY text field contains the term);
// Category and Year feed the exact-match filters and may be nil when the
// entity has no such field.
type Fields[R any] struct {
	Text     []func(R) string
	Category func(R) string
	Year     func(R) string
}

// Matches reports whether one row passes all active filters. All predicate
// groups are ANDed; a bypassed or absent group always passes.
// INVARIANT: pure — no I/O, no mutation, repeatable
func (f Fields[R]) Matches(row R, filters Filters) bool {
	if term := strings.TrimSpace(filters.Term); term != "" {
		lower := strings.ToLower(term)
		hit := false
		for _, text := range f.Text {
			if strings.Contains(strings.ToLower(text(row)), lower) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	if filters.Category != "" && filters.Category != FilterAll && f.Category != nil {
		if f.Category(row) != filters.Category {
			return false
		}
	}
	if filters.Year != "" && filters.Year != FilterAll && f.Year != nil {
		if f.Year(row) != filters.Year {
			return false
		}
	}
	return true
}

// ListFunc fetches the full row set from a store.
type ListFunc[R any] func(ctx context.Context) ([]R, error)

// View holds one page's row set and filters.
//
// Rows are a copy owned by the remote store; after any mutation the caller
// must Refresh rather than patch locally, because server-computed fields and
// ordering may differ from what the mutation sent.
type View[R any] struct {
	list   ListFunc[R]
	fields Fields[R]

	mu      sync.Mutex
	rows    []R
	filters Filters
	loaded  bool
	lastErr error
}

// NewView creates a View over the given list function.
func NewView[R any](list ListFunc[R], fields Fields[R]) *View[R] {
	return &View[R]{list: list, fields: fields, filters: Filters{Category: FilterAll, Year: FilterAll}}
}

// Load fetches the full row set and replaces the local copy.
// A fetch failure leaves an empty row set and records the error: callers
// render the degraded empty state plus a notice, they do not crash.
// POST: Loaded() is true; Err() reports the outcome
func (v *View[R]) Load(ctx context.Context) error {
	rows, err := v.list(ctx)
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loaded = true
	v.lastErr = err
	if err != nil {
		v.rows = nil
		return err
	}
	v.rows = rows
	return nil
}

// Refresh re-fetches the full row set. It is the only consistency discipline
// after a mutation: no optimistic local merge is permitted.
func (v *View[R]) Refresh(ctx context.Context) error {
	return v.Load(ctx)
}

// SetFilters replaces the active filters. Cheap: the visible set is
// recomputed on read, never cached.
func (v *View[R]) SetFilters(f Filters) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filters = f
}

// Filters returns the active filters.
func (v *View[R]) Filters() Filters {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filters
}

// Rows returns the full unfiltered row set.
func (v *View[R]) Rows() []R {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rows
}

// Visible recomputes and returns the filtered view from the complete row set.
// INVARIANT: Visible() always equals filtering Rows() with Matches — there is
// no persisted filtered cache
func (v *View[R]) Visible() []R {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]R, 0, len(v.rows))
	for _, row := range v.rows {
		if v.fields.Matches(row, v.filters) {
			out = append(out, row)
		}
	}
	return out
}

// Loaded reports whether the initial fetch has completed, successfully or not.
func (v *View[R]) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}

// Err returns the error from the most recent fetch, or nil.
func (v *View[R]) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastErr
}
