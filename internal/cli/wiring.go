package cli

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/app"
	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/config"
	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/infra/jsonfile"
	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/infra/memory"
	pgstore "github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/infra/postgres"
	redisstore "github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/infra/redis"
	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/infra/sqlite"
	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/progress"
)

// services is the wired application plus everything that must be closed.
type services struct {
	quiz    *app.QuizService
	closers []io.Closer
}

func (s *services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			log.Printf("close: %v", err)
		}
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// buildServices wires stores from cfg: Postgres (when configured) replaces
// the JSON catalog, Redis (when configured) caches the catalog and parks
// sessions, and progress.store picks the preference backend.
func buildServices(ctx context.Context, cfg config.Config) (*services, error) {
	svc := &services{}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		svc.closers = append(svc.closers, redisClient)
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		var err error
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			svc.Close()
			return nil, err
		}
		svc.closers = append(svc.closers, closerFunc(func() error { pool.Close(); return nil }))
	}

	var loader memory.CatalogLoader = jsonfile.NewLoader(cfg.Catalog.Path)
	if pool != nil {
		loader = pgstore.NewCatalogLoader(pool)
	}

	catalogTTL := config.TTLDuration(cfg.Catalog.TTL, 10*time.Minute)
	var catalog app.CatalogRepository
	if redisClient != nil {
		catalog = redisstore.NewCatalogRepository(redisClient, loader, catalogTTL)
	} else {
		catalog = memory.NewCatalogRepository(loader, catalogTTL)
	}

	var sessions app.SessionRepository
	if redisClient != nil {
		sessions = redisstore.NewSessionStore(redisClient, config.TTLDuration(cfg.Redis.TTL, 30*time.Minute))
	} else {
		sessions = memory.NewSessionStore()
	}

	var prefs progress.PreferenceStore
	switch cfg.Progress.Store {
	case config.StoreSQLite:
		store, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			svc.Close()
			return nil, err
		}
		svc.closers = append(svc.closers, store)
		prefs = store
	case config.StoreRedis:
		prefs = redisstore.NewPreferenceStore(redisClient)
	case config.StorePostgres:
		prefs = pgstore.NewPreferenceStore(pool)
	default:
		prefs = memory.NewPreferenceStore()
	}

	svc.quiz = app.NewQuizService(catalog, sessions, progress.NewRepository(prefs))
	log.Printf("wired catalog=%T sessions=%T progress=%s", loader, sessions, cfg.Progress.Store)
	return svc, nil
}

func loadServices(ctx context.Context, path string) (*services, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return buildServices(ctx, cfg)
}
