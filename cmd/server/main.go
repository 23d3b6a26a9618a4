package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/colective/fleet-backend-go/internal/api"
	"github.com/colective/fleet-backend-go/internal/config"
	"github.com/colective/fleet-backend-go/internal/database"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fleet-backend",
		Short: "Fleet tracking backend - drivers, travels, payments and location ingestion",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// serveCmd starts the HTTP API server. The schema must already be in place;
// run the migrate command first on fresh deployments.
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			db, err := database.Open(database.Config{Path: cfg.DBPath})
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer db.Close()

			router := api.SetupRouter(cfg, db)

			log.Printf("Server starting on port %s", cfg.Port)
			return router.Run(cfg.Port)
		},
	}
}

// migrateCmd applies pending schema migrations and exits
func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			db, err := database.Open(database.Config{Path: cfg.DBPath})
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer db.Close()

			if err := database.NewMigrationManager(db).RunMigrations(); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			log.Println("All migrations applied successfully")
			return nil
		},
	}
}
