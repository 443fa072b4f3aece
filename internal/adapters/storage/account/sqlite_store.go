package account

import (
	"context"

	"kweku/internal/adapters/storage"
	domain "kweku/internal/domain/account"
)

// SQLiteStore implements Store using the shared generic repository.
type SQLiteStore struct {
	*storage.Repo[domain.Account]
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{Repo: storage.NewRepo(db, codec()), db: db}
}

func codec() storage.Codec[domain.Account] {
	return storage.Codec[domain.Account]{
		Table:   "accounts",
		Columns: []string{"id", "email", "password_hash", "confirmed", "created_at"},
		ID:      func(a domain.Account) string { return a.ID },
		Values: func(a domain.Account) []any {
			return []any{a.ID, a.Email, a.PasswordHash, storage.BoolToInt(a.Confirmed),
				a.CreatedAt.Format(storage.TimeLayout)}
		},
		Scan: scanAccount,
	}
}

// GetByEmail retrieves an account by email.
// PRE: email is non-empty
// POST: Returns the account or an error if not found
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, confirmed, created_at FROM accounts WHERE email = ?`, email)
	return scanAccount(row)
}

func scanAccount(row storage.Scanner) (domain.Account, error) {
	var a domain.Account
	var confirmed int
	var createdAt string

	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &confirmed, &createdAt)
	if err != nil {
		return domain.Account{}, err
	}

	a.Confirmed = confirmed != 0
	a.CreatedAt = storage.ParseTime(createdAt, "accounts", "created_at", a.ID)
	return a, nil
}
