package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/atelier-community/atelier/internal/interfaces/cli/levels"
	"github.com/atelier-community/atelier/internal/interfaces/cli/migrate"
	"github.com/atelier-community/atelier/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "atelier",
		Short: "Atelier - tiered entitlements for the course community",
		Long:  `Atelier resolves what each membership level may see and do, with server, migration and level maintenance commands.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		levels.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
