package models

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a registered identity. Credential accounts carry a
// password hash; accounts created through an external provider carry a
// provider tag instead.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Name         *string   `json:"name,omitempty"`
	Email        string    `json:"email"`
	PasswordHash *string   `json:"-"`
	Image        *string   `json:"image,omitempty"`
	Provider     *string   `json:"provider,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity is the minimal projection of an account returned by
// authentication. It never carries the password hash.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name,omitempty"`
}
