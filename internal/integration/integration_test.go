package integration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/app"
	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/domain"
	pgstore "github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/infra/postgres"
	pgmigrations "github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/infra/postgres/migrations"
	infraredis "github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/infra/redis"
	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/progress"
)

func TestChapterQuizEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	migrateSchema(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	n, err := pgstore.SeedQuestions(ctx, pool, sampleQuestions())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 seeded questions, got %d", n)
	}

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	defer redisClient.Close()

	catalog := infraredis.NewCatalogRepository(redisClient, pgstore.NewCatalogLoader(pool), 5*time.Minute)
	sessions := infraredis.NewSessionStore(redisClient, 5*time.Minute)
	progressRepo := progress.NewRepository(pgstore.NewPreferenceStore(pool))
	service := app.NewQuizService(catalog, sessions, progressRepo).
		WithClock(func() time.Time { return time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC) })

	view, err := service.Start(ctx, "Acids", nil)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if view.Total != 2 {
		t.Fatalf("expected 2 acid questions, got %d", view.Total)
	}

	// first right, second wrong
	for _, choice := range []int{1, 0} {
		if _, err := service.Select(ctx, view.SessionID, choice); err != nil {
			t.Fatalf("select: %v", err)
		}
		step, err := service.Next(ctx, view.SessionID)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if step.Submission != nil {
			sub := step.Submission
			if sub.Result.Correct != 1 || sub.Result.Percent != 50 {
				t.Fatalf("unexpected result %+v", sub.Result)
			}
			if sub.RetryIDs != "2" || !sub.CanRetry {
				t.Fatalf("expected retry of question 2, got %q", sub.RetryIDs)
			}
		}
	}

	if _, err := service.View(ctx, view.SessionID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected finished session to be gone, got %v", err)
	}

	stored, err := service.Progress(ctx, "Acids")
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if stored.Attempts != 1 || stored.BestPercent != 50 || stored.LastAttemptAt != "2026-10-19 09:30" {
		t.Fatalf("unexpected progress %+v", stored)
	}
}

func migrateSchema(t *testing.T, ctx context.Context, dsn string) {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func sampleQuestions() []domain.Question {
	opts := []string{"a", "b", "c", "d", "e"}
	return []domain.Question{
		{ID: 1, Chapter: "Acids", Text: "pH of pure water at 25 C?", Options: opts, CorrectIndex: 1},
		{ID: 2, Chapter: "Acids", Text: "Strong acid?", Options: opts, CorrectIndex: 3},
		{ID: 3, Chapter: "Bonds", Text: "Bond in NaCl?", Options: opts, CorrectIndex: 0},
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}
	container := startContainer(t, ctx, req)
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/quizdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container := startContainer(t, ctx, req)
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func startContainer(t *testing.T, ctx context.Context, req tc.ContainerRequest) tc.Container {
	t.Helper()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start %s: %v", req.Image, err)
	}
	return container
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(opts), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
