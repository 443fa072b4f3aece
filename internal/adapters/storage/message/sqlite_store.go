package message

import (
	"database/sql"

	"kweku/internal/adapters/storage"
	domain "kweku/internal/domain/message"
)

// SQLiteStore implements Store using the shared generic repository.
type SQLiteStore struct {
	*storage.Repo[domain.Message]
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{storage.NewRepo(db, codec())}
}

func codec() storage.Codec[domain.Message] {
	return storage.Codec[domain.Message]{
		Table:   "contact_messages",
		Columns: []string{"id", "name", "email", "subject", "message", "is_read", "replied", "created_at"},
		ID:      func(m domain.Message) string { return m.ID },
		Values: func(m domain.Message) []any {
			return []any{m.ID, m.Name, m.Email, storage.NullableString(m.Subject), m.Body,
				storage.BoolToInt(m.Read), storage.BoolToInt(m.Replied),
				m.CreatedAt.Format(storage.TimeLayout)}
		},
		Scan: scanMessage,
	}
}

func scanMessage(row storage.Scanner) (domain.Message, error) {
	var m domain.Message
	var subject sql.NullString
	var isRead, replied int
	var createdAt string

	err := row.Scan(&m.ID, &m.Name, &m.Email, &subject, &m.Body, &isRead, &replied, &createdAt)
	if err != nil {
		return domain.Message{}, err
	}

	m.Subject = subject.String
	m.Read = isRead != 0
	m.Replied = replied != 0
	m.CreatedAt = storage.ParseTime(createdAt, "contact_messages", "created_at", m.ID)
	return m, nil
}
