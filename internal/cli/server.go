package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/config"
	transport "github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/transport/http"
)

const shutdownGrace = 5 * time.Second

// NewStartCmd serves the REST API and the websocket session endpoint.
func NewStartCmd(configPath, port *string, envPort string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Serve the quiz API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if *port != "" {
				cfg.Server.Port = *port
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(port, "port", envPort, "listen port, overrides server.port")
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Postgres-backed deployments always run pending migrations first.
	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	svc, err := buildServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	addr := ":" + cfg.Server.Port
	if cfg.Server.Port == "" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:              addr,
		Handler:           transport.NewRouter(svc.quiz, cfg.Server.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("chimie-quiz listening on %s", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
