package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/avelar/todovault/internal/database"
	"github.com/avelar/todovault/internal/models"
	"github.com/google/uuid"
)

// mockAccountStore is an in-memory AccountStore for handler tests
type mockAccountStore struct {
	byEmail map[string]*models.Account
	failAll bool
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
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
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

// mockTodoStore is an in-memory TodoStore keeping insertion order
type mockTodoStore struct {
	todos   []*models.Todo
	failAll bool
}

func newMockTodoStore() *mockTodoStore {
	return &mockTodoStore{}
}

func (m *mockTodoStore) Create(ctx context.Context, todo *models.Todo) error {
	if m.failAll {
		return fmt.Errorf("store unavailable")
	}
	todo.CreatedAt = time.Now()
	todo.UpdatedAt = todo.CreatedAt
	m.todos = append(m.todos, todo)
	return nil
}

func (m *mockTodoStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Todo, error) {
	if m.failAll {
		return nil, fmt.Errorf("store unavailable")
	}
	for _, todo := range m.todos {
		if todo.ID == id {
			copied := *todo
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("todo: %w", database.ErrNotFound)
}

// List returns todos newest first, matching the repository ordering
func (m *mockTodoStore) List(ctx context.Context) ([]*models.Todo, error) {
	if m.failAll {
		return nil, fmt.Errorf("store unavailable")
	}
	out := make([]*models.Todo, 0, len(m.todos))
	for i := len(m.todos) - 1; i >= 0; i-- {
		out = append(out, m.todos[i])
	}
	return out, nil
}

func (m *mockTodoStore) Update(ctx context.Context, todo *models.Todo) error {
	if m.failAll {
		return fmt.Errorf("store unavailable")
	}
	for i, existing := range m.todos {
		if existing.ID == todo.ID {
			todo.CreatedAt = existing.CreatedAt
			todo.UpdatedAt = time.Now()
			m.todos[i] = todo
			return nil
		}
	}
	return fmt.Errorf("todo: %w", database.ErrNotFound)
}

func (m *mockTodoStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.failAll {
		return fmt.Errorf("store unavailable")
	}
	for i, existing := range m.todos {
		if existing.ID == id {
			m.todos = append(m.todos[:i], m.todos[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("todo: %w", database.ErrNotFound)
}

var (
	_ database.AccountStore = (*mockAccountStore)(nil)
	_ database.TodoStore    = (*mockTodoStore)(nil)
)
