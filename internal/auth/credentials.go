package auth

import (
	"context"
	"errors"

	"github.com/avelar/todovault/internal/database"
	"github.com/avelar/todovault/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor for newly hashed passwords
const BcryptCost = 10

// CredentialVerifier validates email/password pairs against stored account
// hashes. It is read-only against the store.
type CredentialVerifier struct {
	accounts database.AccountStore
}

// NewCredentialVerifier creates a credential verifier backed by the given store
func NewCredentialVerifier(accounts database.AccountStore) *CredentialVerifier {
	return &CredentialVerifier{accounts: accounts}
}

// Verify checks the given email/password pair and returns the account's
// identity projection on success. Unknown email, OAuth-only accounts (no
// stored hash) and wrong passwords all collapse into ErrInvalidCredentials;
// only store failures other than not-found are reported as-is.
func (v *CredentialVerifier) Verify(ctx context.Context, email, password string) (*models.Identity, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	account, err := v.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if account.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	identity := &models.Identity{
		ID:    account.ID,
		Email: account.Email,
	}
	if account.Name != nil {
		identity.Name = *account.Name
	}

	return identity, nil
}

// HashPassword hashes a plaintext password for storage
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
