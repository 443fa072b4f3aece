package post

import (
	"database/sql"
	"strings"

	"kweku/internal/adapters/storage"
	domain "kweku/internal/domain/post"
)

// SQLiteStore implements Store using the shared generic repository.
type SQLiteStore struct {
	*storage.Repo[domain.Post]
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{storage.NewRepo(db, codec())}
}

func codec() storage.Codec[domain.Post] {
	return storage.Codec[domain.Post]{
		Table: "blog_posts",
		Columns: []string{"id", "title", "excerpt", "content", "category", "tags",
			"read_time", "published", "published_at", "created_at", "updated_at"},
		ID: func(p domain.Post) string { return p.ID },
		Values: func(p domain.Post) []any {
			// Tags are stored comma-joined; ParseTags restores the slice on read.
			return []any{p.ID, p.Title, storage.NullableString(p.Excerpt), p.Content,
				storage.NullableString(p.Category), storage.NullableString(strings.Join(p.Tags, ",")),
				storage.NullableString(p.ReadTime), storage.BoolToInt(p.Published),
				storage.NullableTime(p.PublishedAt),
				p.CreatedAt.Format(storage.TimeLayout), storage.NullableTime(p.UpdatedAt)}
		},
		Scan: scanPost,
	}
}

func scanPost(row storage.Scanner) (domain.Post, error) {
	var p domain.Post
	var excerpt, category, tags, readTime, publishedAt, updatedAt sql.NullString
	var published int
	var createdAt string

	err := row.Scan(&p.ID, &p.Title, &excerpt, &p.Content, &category, &tags,
		&readTime, &published, &publishedAt, &createdAt, &updatedAt)
	if err != nil {
		return domain.Post{}, err
	}

	p.Excerpt = excerpt.String
	p.Category = category.String
	p.Tags = domain.ParseTags(tags.String)
	p.ReadTime = readTime.String
	p.Published = published != 0
	p.PublishedAt = storage.ParseNullableTime(publishedAt, "blog_posts", "published_at", p.ID)
	p.CreatedAt = storage.ParseTime(createdAt, "blog_posts", "created_at", p.ID)
	p.UpdatedAt = storage.ParseNullableTime(updatedAt, "blog_posts", "updated_at", p.ID)
	return p, nil
}
