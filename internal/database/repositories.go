package database

import (
	"context"

	"github.com/avelar/todovault/internal/models"
	"github.com/google/uuid"
)

// AccountStore defines the interface for account repository operations.
// This interface enables mock implementations in handler and auth tests.
type AccountStore interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
}

// TodoStore defines the interface for todo repository operations
type TodoStore interface {
	Create(ctx context.Context, todo *models.Todo) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Todo, error)
	List(ctx context.Context) ([]*models.Todo, error)
	Update(ctx context.Context, todo *models.Todo) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Ensure concrete types implement the interfaces
var (
	_ AccountStore = (*AccountRepository)(nil)
	_ TodoStore    = (*TodoRepository)(nil)
)
