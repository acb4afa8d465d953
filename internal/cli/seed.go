package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"

	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/config"
	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/infra/jsonfile"
	pgstore "github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/infra/postgres"
)

// NewSeedCmd loads a JSON catalog into the Postgres questions table.
func NewSeedCmd(configPath *string) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load questions from JSON into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath, file)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "JSON question file (defaults to catalog.path, then the bundled dataset)")
	return cmd
}

func runSeed(ctx context.Context, configPath, file string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}
	if file == "" {
		file = cfg.Catalog.Path
	}

	questions, err := jsonfile.NewLoader(file).LoadQuestions(ctx)
	if err != nil {
		return err
	}

	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	n, err := pgstore.SeedQuestions(ctx, pool, questions)
	if err != nil {
		return err
	}
	log.Printf("seeded %d questions", n)
	return nil
}
