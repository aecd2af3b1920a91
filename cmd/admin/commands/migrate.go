package commands

import (
	"errors"
	"fmt"

	"github.com/avelar/todovault/internal/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"
)

// NewMigrateCmd creates the migrate command
func NewMigrateCmd() *cobra.Command {
	var migrationsPath string

	cmd := &cobra.Command{
		Use:   "migrate <up|down>",
		Short: "Run database migrations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := args[0]
			if direction != "up" && direction != "down" {
				return fmt.Errorf("direction must be 'up' or 'down', got %q", direction)
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			m, err := migrate.New("file://"+migrationsPath, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to create migrator: %w", err)
			}
			defer func() {
				srcErr, dbErr := m.Close()
				if srcErr != nil {
					fmt.Printf("Warning: failed to close migration source: %v\n", srcErr)
				}
				if dbErr != nil {
					fmt.Printf("Warning: failed to close migration database: %v\n", dbErr)
				}
			}()

			if direction == "up" {
				err = m.Up()
			} else {
				err = m.Steps(-1)
			}

			if errors.Is(err, migrate.ErrNoChange) {
				fmt.Println("No migrations to apply")
				return nil
			}
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Println("Migrations applied")
			return nil
		},
	}

	cmd.Flags().StringVar(&migrationsPath, "path", "migrations", "Path to migration files")

	return cmd
}
