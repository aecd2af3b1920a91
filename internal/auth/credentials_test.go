package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/avelar/todovault/internal/models"
	"github.com/google/uuid"
)

func storedAccount(t *testing.T, store *mockAccountStore, email, name, password string) *models.Account {
	t.Helper()

	account := &models.Account{
		ID:    uuid.New(),
		Email: email,
	}
	if name != "" {
		account.Name = &name
	}
	if password != "" {
		hash, err := HashPassword(password)
		if err != nil {
			t.Fatalf("failed to hash password: %v", err)
		}
		account.PasswordHash = &hash
	}

	store.byEmail[email] = account
	return account
}

func TestCredentialVerifier_Verify(t *testing.T) {
	t.Parallel()

	store := newMockAccountStore()
	alice := storedAccount(t, store, "alice@x.com", "Alice", "Secret1234")
	storedAccount(t, store, "oauth@x.com", "OAuth Only", "")

	verifier := NewCredentialVerifier(store)

	tests := []struct {
		name     string
		email    string
		password string
		wantID   uuid.UUID
		wantErr  error
	}{
		{
			name:     "valid credentials",
			email:    "alice@x.com",
			password: "Secret1234",
			wantID:   alice.ID,
		},
		{
			name:     "wrong password",
			email:    "alice@x.com",
			password: "WrongPass99",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@x.com",
			password: "Secret1234",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "account without password hash",
			email:    "oauth@x.com",
			password: "Secret1234",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "empty password",
			email:    "alice@x.com",
			password: "",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "empty email",
			email:    "",
			password: "Secret1234",
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			identity, err := verifier.Verify(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				if identity != nil {
					t.Errorf("expected nil identity on failure, got %+v", identity)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if identity.ID != tt.wantID {
				t.Errorf("expected id %s, got %s", tt.wantID, identity.ID)
			}
			if identity.Email != tt.email {
				t.Errorf("expected email %s, got %s", tt.email, identity.Email)
			}
			if identity.Name != "Alice" {
				t.Errorf("expected name Alice, got %q", identity.Name)
			}
		})
	}
}

func TestCredentialVerifier_StoreFailurePropagates(t *testing.T) {
	t.Parallel()

	store := newMockAccountStore()
	store.failAll = true
	verifier := NewCredentialVerifier(store)

	_, err := verifier.Verify(context.Background(), "alice@x.com", "Secret1234")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("store failures must not collapse into ErrInvalidCredentials, got %v", err)
	}
}
