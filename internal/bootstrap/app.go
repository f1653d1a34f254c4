package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/site-builder-backend/config"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/logging"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/archive"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/content"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/repository"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/service"
)

// App holds the long-lived dependencies shared by the API server and the worker.
type App struct {
	Redis   *redis.Client
	DB      *pgxpool.Pool
	Repo    *repository.ProjectRepository
	Locker  repository.Locker
	Writer  *content.Orchestrator
	Engine  *service.Engine
	Sweeper *service.Sweeper
}

// NewApp connects to Redis (and Postgres when DB_DSN is set) and wires the engine.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.L()

	rdb, err := OpenRedis(ctx, RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, err
	}
	app := &App{Redis: rdb}

	provider, err := NewContentProvider(ctx, cfg.Content)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Writer = content.NewOrchestrator(provider, content.WithTimeout(cfg.Content.Timeout))

	app.Repo = repository.NewProjectRepository(rdb)
	switch cfg.Lock.Backend {
	case config.LockRedis:
		app.Locker = repository.NewRedisLocker(rdb, cfg.Lock.TTL)
	default:
		app.Locker = repository.NewKeyedMutex()
	}

	var opts []service.Option
	if cfg.Database.DSN != "" {
		db, err := OpenDB(ctx, DBOptions{DSN: cfg.Database.DSN, MaxConns: cfg.Database.MaxConns})
		if err != nil {
			app.Close()
			return nil, err
		}
		app.DB = db

		archiver := archive.NewRepo(db)
		if err := archiver.EnsureSchema(ctx); err != nil {
			app.Close()
			return nil, fmt.Errorf("archive schema: %w", err)
		}
		opts = append(opts, service.WithArchiver(archiver))
		log.Info("completed-site archive enabled")
	}

	app.Engine = service.NewEngine(app.Repo, app.Locker, app.Writer, opts...)
	app.Sweeper = service.NewSweeper(app.Repo, app.Locker, cfg.Sweeper.StaleAfter)

	log.Info("app wired",
		zap.String("content_provider", cfg.Content.Provider),
		zap.String("lock_backend", cfg.Lock.Backend),
	)
	return app, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
}
