package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"konnect/internal/config"
	"konnect/internal/database"
	"konnect/internal/repository"
)

var (
	// Global flags
	dsnOverride string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "konnectctl",
	Short: "Konnect administration tool",
	Long: `konnectctl manages a Konnect database from the command line.

Commands:
  migrate      - Create or update the schema
  apply-sql    - Run a SQL file against PostgreSQL
  seed-admin   - Create an admin account
  ban / unban  - Moderate a user account
  users        - List accounts`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dsnOverride, "dsn", "", "Database connection string (defaults to the DB_* environment)")
}

// loadConfig reads the database settings, applying --dsn when given
func loadConfig() (*config.Config, string, error) {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return nil, "", err
	}
	dsn := cfg.GetDSN()
	if dsnOverride != "" {
		dsn = dsnOverride
	}
	return cfg, dsn, nil
}

func openDB() (*gorm.DB, error) {
	cfg, dsn, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := database.Connect(cfg.Database.Driver, dsn); err != nil {
		return nil, err
	}
	return database.GetDB(), nil
}

func openRepository() (*repository.Repository, error) {
	db, err := openDB()
	if err != nil {
		return nil, err
	}
	return repository.NewRepository(db), nil
}
