package main

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/spf13/cobra"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"

	"github.com/JaimeStill/intake/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

const envDSN = "INTAKE_DB_DSN"

var dsn string

var rootCmd = &cobra.Command{
	Use:           "migrate",
	Short:         "Apply the embedded PostgreSQL migrations for the requests store",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "postgres:// connection string (defaults to "+envDSN+", then the service config)")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(m *migrate.Migrate, _ []string) error {
				if err := ignoreNoChange(m.Up()); err != nil {
					return fmt.Errorf("run up migrations: %w", err)
				}
				fmt.Println("migrations applied successfully")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revert all migrations",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(m *migrate.Migrate, _ []string) error {
				if err := ignoreNoChange(m.Down()); err != nil {
					return fmt.Errorf("run down migrations: %w", err)
				}
				fmt.Println("migrations reverted successfully")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "steps N",
			Short: "Apply N migrations (negative N reverts)",
			Args:  cobra.ExactArgs(1),
			RunE: withMigrator(func(m *migrate.Migrate, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid step count %q: %w", args[0], err)
				}
				if err := ignoreNoChange(m.Steps(n)); err != nil {
					return fmt.Errorf("run migration steps: %w", err)
				}
				fmt.Printf("applied %d migration steps\n", n)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current migration version",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(m *migrate.Migrate, _ []string) error {
				v, dirty, err := m.Version()
				if err != nil {
					return fmt.Errorf("get version: %w", err)
				}
				fmt.Printf("version: %d, dirty: %v\n", v, dirty)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "force V",
			Short: "Force the recorded version without running migrations",
			Args:  cobra.ExactArgs(1),
			RunE: withMigrator(func(m *migrate.Migrate, args []string) error {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q: %w", args[0], err)
				}
				if err := m.Force(v); err != nil {
					return fmt.Errorf("force version: %w", err)
				}
				fmt.Printf("forced to version %d\n", v)
				return nil
			}),
		},
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}

func withMigrator(fn func(m *migrate.Migrate, args []string) error) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		url, err := resolveDSN()
		if err != nil {
			return err
		}

		source, err := iofs.New(migrations, "migrations")
		if err != nil {
			return fmt.Errorf("create migration source: %w", err)
		}

		m, err := migrate.NewWithSourceInstance("iofs", source, url)
		if err != nil {
			return fmt.Errorf("create migrator: %w", err)
		}
		defer m.Close()

		return fn(m, args)
	}
}

func resolveDSN() (string, error) {
	if dsn != "" {
		return dsn, nil
	}

	if err := config.LoadDotEnv(config.DotEnvFile); err != nil {
		return "", err
	}
	if v := os.Getenv(envDSN); v != "" {
		return v, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	if cfg.Store.Driver != config.StoreDriverPostgres {
		return "", fmt.Errorf("store driver is %s; migrations apply to postgres only", cfg.Store.Driver)
	}
	return cfg.Database.URL(), nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
