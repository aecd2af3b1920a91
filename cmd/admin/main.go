package main

import (
	"fmt"
	"os"

	"github.com/avelar/todovault/cmd/admin/commands"
	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "todovault-admin",
		Short: "Administration tool for the todovault API",
		Long:  "CLI tool for running database migrations and managing accounts",
	}

	rootCmd.AddCommand(commands.NewMigrateCmd())
	rootCmd.AddCommand(commands.NewCreateUserCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
