package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/config"
	pgmigrations "github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/infra/postgres/migrations"
)

// NewMigrateCmd manages the Postgres schema (questions and preferences).
func NewMigrateCmd(configPath *string) *cobra.Command {
	var status, rollback bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply, inspect or roll back Postgres migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			switch {
			case status:
				return withMigrator(cmd.Context(), cfg, func(m *migrate.Migrator) error {
					return printMigrationStatus(cmd.Context(), m, cmd.OutOrStdout())
				})
			case rollback:
				return withMigrator(cmd.Context(), cfg, func(m *migrate.Migrator) error {
					group, err := m.Rollback(cmd.Context())
					if err != nil {
						return err
					}
					if group.IsZero() {
						log.Printf("nothing to roll back")
						return nil
					}
					log.Printf("rolled back %s", group)
					return nil
				})
			}
			return runMigrationsWithConfig(cmd.Context(), cfg)
		},
	}
	cmd.Flags().BoolVar(&status, "status", false, "list applied and pending migrations")
	cmd.Flags().BoolVar(&rollback, "rollback", false, "roll back the last migration group")
	return cmd
}

// runMigrationsWithConfig applies every pending migration.
func runMigrationsWithConfig(ctx context.Context, cfg config.Config) error {
	return withMigrator(ctx, cfg, func(m *migrate.Migrator) error {
		group, err := m.Migrate(ctx)
		if err != nil {
			return err
		}
		if group.IsZero() {
			log.Printf("schema up to date")
			return nil
		}
		log.Printf("migrated to %s", group)
		return nil
	})
}

func withMigrator(ctx context.Context, cfg config.Config, fn func(*migrate.Migrator) error) error {
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	db := bun.NewDB(sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL))), pgdialect.New())
	defer db.Close()

	m := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := m.Init(ctx); err != nil {
		return err
	}
	return fn(m)
}

func printMigrationStatus(ctx context.Context, m *migrate.Migrator, w io.Writer) error {
	ms, err := m.MigrationsWithStatus(ctx)
	if err != nil {
		return err
	}
	for _, mig := range ms {
		state := "pending"
		if mig.IsApplied() {
			state = fmt.Sprintf("applied (group %d)", mig.GroupID)
		}
		fmt.Fprintf(w, "%s  %s\n", mig.Name, state)
	}
	return nil
}
