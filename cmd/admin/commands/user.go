package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/avelar/todovault/internal/auth"
	"github.com/avelar/todovault/internal/config"
	"github.com/avelar/todovault/internal/database"
	"github.com/avelar/todovault/internal/models"
	"github.com/avelar/todovault/internal/validation"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// NewCreateUserCmd creates the create-user command
func NewCreateUserCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a credential account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return fmt.Errorf("required flags: --email, --password")
			}

			req := struct {
				Name     string `validate:"required,min=2,max=50,person_name"`
				Email    string `validate:"required,email"`
				Password string `validate:"required,min=10,password_strength"`
			}{Name: name, Email: email, Password: password}
			if err := validation.Validate.Struct(req); err != nil {
				return fmt.Errorf("invalid input: %s", validation.ValidationMessage(err))
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			db, err := database.New(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer func() {
				if err := db.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
				}
			}()

			hash, err := auth.HashPassword(password)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}

			account := &models.Account{
				ID:           uuid.New(),
				Name:         &name,
				Email:        email,
				PasswordHash: &hash,
			}

			accountRepo := database.NewAccountRepository(db)
			if err := accountRepo.Create(context.Background(), account); err != nil {
				return fmt.Errorf("failed to create account: %w", err)
			}

			fmt.Printf("Created account %s (%s)\n", account.ID, account.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Email address (unique)")
	cmd.Flags().StringVar(&password, "password", "", "Plaintext password (hashed before storage)")

	return cmd
}
