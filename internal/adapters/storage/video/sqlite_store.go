package video

import (
	"database/sql"

	"kweku/internal/adapters/storage"
	domain "kweku/internal/domain/video"
)

// SQLiteStore implements Store using the shared generic repository.
type SQLiteStore struct {
	*storage.Repo[domain.Lesson]
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{storage.NewRepo(db, codec())}
}

func codec() storage.Codec[domain.Lesson] {
	return storage.Codec[domain.Lesson]{
		Table: "video_lessons",
		Columns: []string{"id", "title", "topic", "unit", "description", "duration",
			"youtube_url", "notes_url", "thumbnail_url", "created_at", "updated_at"},
		ID: func(l domain.Lesson) string { return l.ID },
		Values: func(l domain.Lesson) []any {
			return []any{l.ID, l.Title, l.Topic, l.Unit,
				storage.NullableString(l.Description), storage.NullableString(l.Duration),
				l.YoutubeURL, storage.NullableString(l.NotesURL), storage.NullableString(l.ThumbnailURL),
				l.CreatedAt.Format(storage.TimeLayout), storage.NullableTime(l.UpdatedAt)}
		},
		Scan: scanLesson,
	}
}

func scanLesson(row storage.Scanner) (domain.Lesson, error) {
	var l domain.Lesson
	var description, duration, notesURL, thumbnailURL, updatedAt sql.NullString
	var createdAt string

	err := row.Scan(&l.ID, &l.Title, &l.Topic, &l.Unit, &description, &duration,
		&l.YoutubeURL, &notesURL, &thumbnailURL, &createdAt, &updatedAt)
	if err != nil {
		return domain.Lesson{}, err
	}

	l.Description = description.String
	l.Duration = duration.String
	l.NotesURL = notesURL.String
	l.ThumbnailURL = thumbnailURL.String
	l.CreatedAt = storage.ParseTime(createdAt, "video_lessons", "created_at", l.ID)
	l.UpdatedAt = storage.ParseNullableTime(updatedAt, "video_lessons", "updated_at", l.ID)
	return l, nil
}
