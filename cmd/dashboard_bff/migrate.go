package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SscSPs/workspace_dashboard/internal/platform/config"
	"github.com/SscSPs/workspace_dashboard/pkg/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run Migrations",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(cmd.Help())
	},
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Run up migrations",
	Long:  "Run all 'up' migrations by default.\nIf step is provided, it will run `N` 'up' migrations.",
	Run: func(cmd *cobra.Command, args []string) {
		runMigrateCommand(cmd, false)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Run down migrations",
	Long:  "Run all 'down' migrations by default.\nIf step is provided, it will run `N` 'down' migrations.",
	Run: func(cmd *cobra.Command, args []string) {
		runMigrateCommand(cmd, true)
	},
}

func runMigrateCommand(cmd *cobra.Command, down bool) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	step, err := cmd.Flags().GetInt("step")
	if err != nil {
		fmt.Println("Unable to read flag `step`", err)
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Println("Unable to load config", err)
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" {
		fmt.Println("PGSQL_URL is not set")
		os.Exit(1)
	}

	if err := runMigrations(cfg.DatabaseURL, logger, step, down); err != nil {
		fmt.Println("Unable to run migrations", err)
		os.Exit(1)
	}
}

func runMigrations(databaseURL string, logger *slog.Logger, step int, down bool) error {
	migrator, err := database.NewMigrator(databaseURL, database.DefaultMigrationsPath, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrator.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	if down {
		err = migrator.Down(step)
	} else {
		err = migrator.Up(step)
	}
	if err != nil {
		return err
	}

	version, dirty, err := migrator.Version()
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("database schema version %d is dirty", version)
	}
	logger.Info("Database schema version", slog.Uint64("version", uint64(version)))
	return nil
}

// Register the "migrate" command
func init() {
	migrateUpCmd.Flags().IntP("step", "s", 0, "Number of migrations to execute")
	migrateCmd.AddCommand(migrateUpCmd)

	migrateDownCmd.Flags().IntP("step", "s", 0, "Number of migrations to execute")
	migrateCmd.AddCommand(migrateDownCmd)

	rootCmd.AddCommand(migrateCmd)
}
