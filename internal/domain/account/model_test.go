package account_test

import (
	"testing"

	"kweku/internal/domain/account"
)

// TestAccount_Validate tests validation of Account.
func TestAccount_Validate(t *testing.T) {
	tests := []struct {
		name    string
		acct    account.Account
		wantErr bool
	}{
		{name: "valid account", acct: account.Account{ID: "1", Email: "tutor@example.com"}, wantErr: false},
		{name: "empty email", acct: account.Account{ID: "2"}, wantErr: true},
		{name: "whitespace email", acct: account.Account{ID: "3", Email: "   "}, wantErr: true},
		{name: "email without at sign", acct: account.Account{ID: "4", Email: "tutor.example.com"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.acct.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestAccount_Passwords tests SetPassword and CheckPassword.
func TestAccount_Passwords(t *testing.T) {
	t.Run("set and check", func(t *testing.T) {
		a := account.Account{Email: "tutor@example.com"}
		if err := a.SetPassword("admin123"); err != nil {
			t.Fatalf("SetPassword() error = %v", err)
		}
		if a.PasswordHash == "admin123" {
			t.Error("password must not be stored in plaintext")
		}
		if err := a.CheckPassword("admin123"); err != nil {
			t.Errorf("CheckPassword() error = %v", err)
		}
		if err := a.CheckPassword("wrong"); err != account.ErrWrongPassword {
			t.Errorf("CheckPassword(wrong) = %v, want ErrWrongPassword", err)
		}
	})

	t.Run("empty password rejected", func(t *testing.T) {
		a := account.Account{Email: "tutor@example.com"}
		if err := a.SetPassword(""); err != account.ErrEmptyPassword {
			t.Errorf("SetPassword(\"\") = %v, want ErrEmptyPassword", err)
		}
	})

	t.Run("short password rejected", func(t *testing.T) {
		a := account.Account{Email: "tutor@example.com"}
		if err := a.SetPassword("abc"); err != account.ErrPasswordTooShort {
			t.Errorf("SetPassword(short) = %v, want ErrPasswordTooShort", err)
		}
	})

	t.Run("check with no hash fails", func(t *testing.T) {
		a := account.Account{Email: "tutor@example.com"}
		if err := a.CheckPassword("anything"); err != account.ErrWrongPassword {
			t.Errorf("CheckPassword() = %v, want ErrWrongPassword", err)
		}
	})
}
