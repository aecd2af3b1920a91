package auth

import (
	"context"
	"fmt"

	"github.com/avelar/todovault/internal/database"
	"github.com/avelar/todovault/internal/models"
	"github.com/google/uuid"
)

// mockAccountStore is an in-memory AccountStore for tests
type mockAccountStore struct {
	byEmail map[string]*models.Account
	failAll bool
	creates int
}

func newMockAccountStore() *mockAccountStore {
	return &mockAccountStore{byEmail: make(map[string]*models.Account)}
}

func (m *mockAccountStore) Create(ctx context.Context, account *models.Account) error {
	if m.failAll {
		return fmt.Errorf("store unavailable")
	}
	if _, exists := m.byEmail[account.Email]; exists {
		return fmt.Errorf("account with email %s: %w", account.Email, database.ErrDuplicateEmail)
	}
	m.creates++
	m.byEmail[account.Email] = account
	return nil
}

func (m *mockAccountStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	if m.failAll {
		return nil, fmt.Errorf("store unavailable")
	}
	for _, account := range m.byEmail {
		if account.ID == id {
			return account, nil
		}
	}
	return nil, fmt.Errorf("account: %w", database.ErrNotFound)
}

func (m *mockAccountStore) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	if m.failAll {
		return nil, fmt.Errorf("store unavailable")
	}
	account, exists := m.byEmail[email]
	if !exists {
		return nil, fmt.Errorf("account: %w", database.ErrNotFound)
	}
	return account, nil
}

var _ database.AccountStore = (*mockAccountStore)(nil)
