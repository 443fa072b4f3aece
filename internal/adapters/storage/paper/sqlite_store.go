package paper

import (
	"database/sql"

	"kweku/internal/adapters/storage"
	domain "kweku/internal/domain/paper"
)

// SQLiteStore implements Store using the shared generic repository.
type SQLiteStore struct {
	*storage.Repo[domain.PastPaper]
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{storage.NewRepo(db, codec())}
}

func codec() storage.Codec[domain.PastPaper] {
	return storage.Codec[domain.PastPaper]{
		Table: "past_papers",
		Columns: []string{"id", "title", "subject", "year", "session", "paper_type",
			"question_paper_url", "mark_scheme_url", "created_at", "updated_at"},
		ID: func(p domain.PastPaper) string { return p.ID },
		Values: func(p domain.PastPaper) []any {
			return []any{p.ID, p.Title, p.Subject, p.Year, p.Session, p.PaperType,
				storage.NullableString(p.QuestionPaperURL), storage.NullableString(p.MarkSchemeURL),
				p.CreatedAt.Format(storage.TimeLayout), storage.NullableTime(p.UpdatedAt)}
		},
		Scan: scanPaper,
	}
}

func scanPaper(row storage.Scanner) (domain.PastPaper, error) {
	var p domain.PastPaper
	var questionURL, markSchemeURL, updatedAt sql.NullString
	var createdAt string

	err := row.Scan(&p.ID, &p.Title, &p.Subject, &p.Year, &p.Session, &p.PaperType,
		&questionURL, &markSchemeURL, &createdAt, &updatedAt)
	if err != nil {
		return domain.PastPaper{}, err
	}

	p.QuestionPaperURL = questionURL.String
	p.MarkSchemeURL = markSchemeURL.String
	p.CreatedAt = storage.ParseTime(createdAt, "past_papers", "created_at", p.ID)
	p.UpdatedAt = storage.ParseNullableTime(updatedAt, "past_papers", "updated_at", p.ID)
	return p, nil
}
