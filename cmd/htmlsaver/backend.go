package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrymomot/htmlsaver/pkg/config"
	"github.com/dmitrymomot/htmlsaver/pkg/file"
	"github.com/dmitrymomot/htmlsaver/pkg/httpserver"
	"github.com/dmitrymomot/htmlsaver/pkg/logger"
	"github.com/dmitrymomot/htmlsaver/pkg/mongo"
	"github.com/dmitrymomot/htmlsaver/pkg/pg"
	"github.com/dmitrymomot/htmlsaver/pkg/redis"
	"github.com/dmitrymomot/htmlsaver/pkg/saver"
)

var errUnknownBackend = errors.New("unknown storage backend")

// backend is an opened storage with its readiness checks. close releases
// connections and must run after the saver has drained.
type backend struct {
	name    string
	storage saver.Storage
	checks  []httpserver.Check
	close   func(context.Context)
}

func openBackend(ctx context.Context, cfg appConfig, log *slog.Logger) (*backend, error) {
	log = log.With(logger.Backend(cfg.Backend))

	switch cfg.Backend {
	case backendLocal:
		return openLocal(cfg.LocalDir)
	case backendS3:
		return openS3(ctx)
	case backendRedis:
		return openRedis(ctx, log)
	case backendPostgres:
		return openPostgres(ctx, log)
	case backendMongo:
		return openMongo(ctx, log)
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownBackend, cfg.Backend)
	}
}

func openLocal(dir string) (*backend, error) {
	st, err := file.NewLocalStorage(dir)
	if err != nil {
		return nil, err
	}
	return &backend{
		name:    backendLocal,
		storage: st,
		checks: []httpserver.Check{{Name: backendLocal, Fn: func(context.Context) error {
			_, err := os.Stat(st.BaseDir())
			return err
		}}},
		close: func(context.Context) {},
	}, nil
}

func openS3(ctx context.Context) (*backend, error) {
	var cfg file.S3Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	st, err := file.NewS3Storage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &backend{name: backendS3, storage: st, close: func(context.Context) {}}, nil
}

func openRedis(ctx context.Context, log *slog.Logger) (*backend, error) {
	var cfg redis.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	client, err := redis.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &backend{
		name:    backendRedis,
		storage: redis.NewStorageFromConfig(client, cfg),
		checks:  []httpserver.Check{{Name: backendRedis, Fn: redis.Healthcheck(client)}},
		close: func(ctx context.Context) {
			if err := client.Close(); err != nil {
				log.ErrorContext(ctx, "failed to close redis client", logger.Error(err))
			}
		},
	}, nil
}

func openPostgres(ctx context.Context, log *slog.Logger) (*backend, error) {
	var cfg pg.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	pool, err := pg.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
		pool.Close()
		return nil, err
	}
	return &backend{
		name:    backendPostgres,
		storage: pg.NewStorage(pool),
		checks:  []httpserver.Check{{Name: backendPostgres, Fn: pg.Healthcheck(pool)}},
		close:   func(context.Context) { pool.Close() },
	}, nil
}

func openMongo(ctx context.Context, log *slog.Logger) (*backend, error) {
	var cfg mongo.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	client, err := mongo.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	coll := mongo.Documents(client, cfg)
	return &backend{
		name:    backendMongo,
		storage: mongo.NewStorage(coll),
		checks:  []httpserver.Check{{Name: backendMongo, Fn: mongo.Healthcheck(client)}},
		close: func(ctx context.Context) {
			if err := client.Disconnect(ctx); err != nil {
				log.ErrorContext(ctx, "failed to disconnect mongo client", logger.Error(err))
			}
		},
	}, nil
}
