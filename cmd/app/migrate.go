package main

import (
	"errors"
	"fmt"

	"github.com/ca-ayumi/fast-food-order-service/cmd"
	"github.com/ca-ayumi/fast-food-order-service/migrations"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	root.AddCommand(
		newMigrationCmd("up", "Apply every pending migration", func(m *migrate.Migrate, out func(string, ...any)) error {
			err := m.Up()
			if errors.Is(err, migrate.ErrNoChange) {
				out("no pending migrations")
				return nil
			}
			if err != nil {
				return fmt.Errorf("migration up failed: %w", err)
			}
			out("migrations applied successfully")
			return nil
		}),
		newMigrationCmd("down", "Roll back the last migration", func(m *migrate.Migrate, out func(string, ...any)) error {
			err := m.Steps(-1)
			if errors.Is(err, migrate.ErrNoChange) {
				out("no migrations to rollback")
				return nil
			}
			if err != nil {
				return fmt.Errorf("migration down failed: %w", err)
			}
			out("migration rolled back successfully")
			return nil
		}),
		newMigrationCmd("version", "Print the applied schema version", func(m *migrate.Migrate, out func(string, ...any)) error {
			v, dirty, err := m.Version()
			if errors.Is(err, migrate.ErrNilVersion) {
				out("no migrations applied yet")
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to get version: %w", err)
			}
			out("current migration version: %d (dirty: %t)", v, dirty)
			return nil
		}),
	)
	return root
}

func newMigrationCmd(use, short string, run func(*migrate.Migrate, func(string, ...any)) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			configs, err := cmd.LoadConfig()
			if err != nil {
				return err
			}

			m, err := migrations.New(configs.DatabaseURL())
			if err != nil {
				return err
			}
			defer func() { _, _ = m.Close() }()

			return run(m, func(format string, args ...any) {
				fmt.Fprintf(c.OutOrStdout(), format+"\n", args...)
			})
		},
	}
}
