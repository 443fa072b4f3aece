package resource

import (
	"database/sql"

	"kweku/internal/adapters/storage"
	domain "kweku/internal/domain/resource"
)

// SQLiteStore implements Store using the shared generic repository.
type SQLiteStore struct {
	*storage.Repo[domain.Resource]
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{storage.NewRepo(db, codec())}
}

func codec() storage.Codec[domain.Resource] {
	return storage.Codec[domain.Resource]{
		Table: "resources",
		Columns: []string{"id", "title", "description", "resource_type", "subject",
			"file_url", "file_size", "downloads", "created_at", "updated_at"},
		ID: func(r domain.Resource) string { return r.ID },
		Values: func(r domain.Resource) []any {
			return []any{r.ID, r.Title, storage.NullableString(r.Description), r.ResourceType,
				storage.NullableString(r.Subject), r.FileURL, storage.NullableString(r.FileSize),
				r.Downloads, r.CreatedAt.Format(storage.TimeLayout), storage.NullableTime(r.UpdatedAt)}
		},
		Scan: scanResource,
	}
}

func scanResource(row storage.Scanner) (domain.Resource, error) {
	var r domain.Resource
	var description, subject, fileSize, updatedAt sql.NullString
	var createdAt string

	err := row.Scan(&r.ID, &r.Title, &description, &r.ResourceType, &subject,
		&r.FileURL, &fileSize, &r.Downloads, &createdAt, &updatedAt)
	if err != nil {
		return domain.Resource{}, err
	}

	r.Description = description.String
	r.Subject = subject.String
	r.FileSize = fileSize.String
	r.CreatedAt = storage.ParseTime(createdAt, "resources", "created_at", r.ID)
	r.UpdatedAt = storage.ParseNullableTime(updatedAt, "resources", "updated_at", r.ID)
	return r, nil
}
