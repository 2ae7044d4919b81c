package commands

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"konnect/internal/database"
)

// migrateCmd creates or updates every table
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Println("✅ Migrations completed successfully")
		return nil
	},
}

// applySQLCmd runs a hand-written SQL file, e.g. data fixes or indexes gorm does not manage
var applySQLCmd = &cobra.Command{
	Use:   "apply-sql <file>",
	Short: "Run a SQL file against PostgreSQL",
	Long: `Run a SQL file against PostgreSQL in a single transaction.

Examples:
  konnectctl apply-sql migrations/001_report_indexes.sql
  konnectctl apply-sql fix.sql --dsn "host=localhost user=postgres dbname=konnect sslmode=disable"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApplySQL(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(applySQLCmd)
}

func runApplySQL(ctx context.Context, path string) error {
	cfg, dsn, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Database.Driver != "postgres" && dsnOverride == "" {
		return fmt.Errorf("apply-sql requires DB_DRIVER=postgres or --dsn")
	}

	migrationSQL, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, string(migrationSQL)); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to execute %s: %w", path, err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	log.Printf("✅ Applied %s", path)
	return nil
}
