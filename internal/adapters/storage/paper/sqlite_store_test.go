package paper_test

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"kweku/internal/adapters/storage"
	paperStore "kweku/internal/adapters/storage/paper"
	domain "kweku/internal/domain/paper"
)

func newTestStore(t *testing.T) *paperStore.SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB() error = %v", err)
	}
	return paperStore.NewSQLiteStore(db)
}

func testPaper(id, title string, year int) domain.PastPaper {
	return domain.PastPaper{
		ID:               id,
		Title:            title,
		Subject:          "Mathematics",
		Year:             year,
		Session:          "May/June",
		PaperType:        "Paper 1",
		QuestionPaperURL: "https://example.com/" + id + ".pdf",
		CreatedAt:        time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
	}
}

// TestSQLiteStore_RoundTrip tests Save, GetByID, List, Count and Delete.
func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	p := testPaper("p1", "Mathematics Paper 1", 2023)
	if err := store.Save(ctx, p); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.GetByID(ctx, "p1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != p.Title || got.Year != p.Year || got.QuestionPaperURL != p.QuestionPaperURL {
		t.Errorf("GetByID() = %+v, want %+v", got, p)
	}
	if !got.CreatedAt.Equal(p.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, p.CreatedAt)
	}
	if !got.UpdatedAt.IsZero() {
		t.Errorf("UpdatedAt = %v, want zero", got.UpdatedAt)
	}

	// Upsert: Save with the same ID replaces fields
	p.Title = "Mathematics Paper 1 (revised)"
	p.UpdatedAt = p.CreatedAt.Add(time.Hour)
	if err := store.Save(ctx, p); err != nil {
		t.Fatalf("Save() upsert error = %v", err)
	}
	got, err = store.GetByID(ctx, "p1")
	if err != nil {
		t.Fatalf("GetByID() after upsert error = %v", err)
	}
	if got.Title != "Mathematics Paper 1 (revised)" {
		t.Errorf("upsert did not replace title, got %q", got.Title)
	}

	if n, err := store.Count(ctx); err != nil || n != 1 {
		t.Errorf("Count() = %d, %v, want 1, nil", n, err)
	}

	if err := store.Delete(ctx, "p1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.GetByID(ctx, "p1"); err == nil {
		t.Error("GetByID() after delete should fail")
	}
}

// TestSQLiteStore_List tests ordering and the empty-table case.
func TestSQLiteStore_List(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	// Empty table yields an empty result, not an error
	papers, err := store.List(ctx, "year", false)
	if err != nil {
		t.Fatalf("List() on empty table error = %v", err)
	}
	if len(papers) != 0 {
		t.Errorf("List() on empty table = %d rows, want 0", len(papers))
	}

	for i, year := range []int{2021, 2023, 2022} {
		p := testPaper(strings.Repeat("p", i+1), "Paper", year)
		if err := store.Save(ctx, p); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	papers, err = store.List(ctx, "year", false)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(papers) != 3 {
		t.Fatalf("List() = %d rows, want 3", len(papers))
	}
	if papers[0].Year != 2023 || papers[2].Year != 2021 {
		t.Errorf("List() descending order wrong: %d, %d, %d", papers[0].Year, papers[1].Year, papers[2].Year)
	}

	papers, err = store.List(ctx, "year", true)
	if err != nil {
		t.Fatalf("List() ascending error = %v", err)
	}
	if papers[0].Year != 2021 {
		t.Errorf("List() ascending first year = %d, want 2021", papers[0].Year)
	}

	// Unknown order column is rejected, not interpolated
	if _, err := store.List(ctx, "year; DROP TABLE past_papers", true); err == nil {
		t.Error("List() with unknown order column should fail")
	}
}
