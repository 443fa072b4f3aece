package testimonial

import (
	"database/sql"

	"kweku/internal/adapters/storage"
	domain "kweku/internal/domain/testimonial"
)

// SQLiteStore implements Store using the shared generic repository.
type SQLiteStore struct {
	*storage.Repo[domain.Testimonial]
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{storage.NewRepo(db, codec())}
}

func codec() storage.Codec[domain.Testimonial] {
	return storage.Codec[domain.Testimonial]{
		Table:   "testimonials",
		Columns: []string{"id", "name", "quote", "image_url", "is_active", "created_at", "updated_at"},
		ID:      func(t domain.Testimonial) string { return t.ID },
		Values: func(t domain.Testimonial) []any {
			return []any{t.ID, t.Name, t.Quote, storage.NullableString(t.ImageURL),
				storage.BoolToInt(t.Active),
				t.CreatedAt.Format(storage.TimeLayout), storage.NullableTime(t.UpdatedAt)}
		},
		Scan: scanTestimonial,
	}
}

func scanTestimonial(row storage.Scanner) (domain.Testimonial, error) {
	var t domain.Testimonial
	var imageURL, updatedAt sql.NullString
	var active int
	var createdAt string

	err := row.Scan(&t.ID, &t.Name, &t.Quote, &imageURL, &active, &createdAt, &updatedAt)
	if err != nil {
		return domain.Testimonial{}, err
	}

	t.ImageURL = imageURL.String
	t.Active = active != 0
	t.CreatedAt = storage.ParseTime(createdAt, "testimonials", "created_at", t.ID)
	t.UpdatedAt = storage.ParseNullableTime(updatedAt, "testimonials", "updated_at", t.ID)
	return t, nil
}
