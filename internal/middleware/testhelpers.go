package middleware

import (
	"context"

	"github.com/avelar/todovault/internal/models"
	"github.com/avelar/todovault/internal/request"
)

// SetSessionInContext is a helper for tests - attaches session claims to a context.
// Exported so other test packages can use it.
func SetSessionInContext(ctx context.Context, claims *models.SessionClaims) context.Context {
	return request.WithSession(ctx, claims)
}
