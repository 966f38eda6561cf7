// Package bootstrap wires the client stack from configuration. Both the
// terminal UI and the command line tool start here.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Varun5711/cinerate/internal/api"
	"github.com/Varun5711/cinerate/internal/cache"
	"github.com/Varun5711/cinerate/internal/config"
	"github.com/Varun5711/cinerate/internal/httpclient"
	"github.com/Varun5711/cinerate/internal/logger"
	"github.com/Varun5711/cinerate/internal/models"
	"github.com/Varun5711/cinerate/internal/redis"
	"github.com/Varun5711/cinerate/internal/session"
	goredis "github.com/redis/go-redis/v9"
)

const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type App struct {
	Config *config.Config
	Core   *httpclient.Client
	API    *api.API
	Store  session.Store

	rdb *goredis.Client
	log *logger.Logger
}

// Open builds the session store, the detail cache and the API client. Redis
// is only dialled when a session or cache tier asks for it; a cache tier that
// cannot reach it falls back to memory, a session store cannot.
func Open(ctx context.Context, cfg *config.Config, opts ...httpclient.Option) (*App, error) {
	a := &App{Config: cfg, log: logger.New("bootstrap")}

	needRedis := cfg.Session.Backend == BackendRedis || cfg.Cache.UseRedis
	if needRedis {
		rdb, err := redis.Connect(ctx, cfg.Redis)
		switch {
		case err == nil:
			a.rdb = rdb
		case cfg.Session.Backend == BackendRedis:
			return nil, fmt.Errorf("session store: %w", err)
		default:
			a.log.Warn("Detail cache running without redis: %v", err)
		}
	}

	store, err := newStore(cfg.Session, a.rdb)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Store = store

	var l2 *goredis.Client
	if cfg.Cache.UseRedis {
		l2 = a.rdb
	}
	details := cache.NewDetailCache(cfg.Cache.L1Capacity, cfg.Cache.L1TTL, l2, cfg.Cache.L2TTL)

	a.Core = httpclient.NewFromConfig(cfg, store, opts...)
	a.API = api.New(a.Core, details, models.Images{
		BaseURL:     cfg.Images.BaseURL,
		Placeholder: cfg.Images.Placeholder,
	})
	return a, nil
}

func newStore(cfg config.SessionConfig, rdb *goredis.Client) (session.Store, error) {
	switch cfg.Backend {
	case BackendFile, "":
		return session.NewFileStore(cfg.File, cfg.TTL), nil
	case BackendMemory:
		return session.NewMemoryStore(), nil
	case BackendRedis:
		if rdb == nil {
			return nil, fmt.Errorf("session store: redis backend without a redis connection")
		}
		return session.NewRedisStore(rdb, cfg.KeyPrefix, cfg.TTL), nil
	}
	return nil, fmt.Errorf("session store: unknown backend %q", cfg.Backend)
}

func (a *App) Close() error {
	if a.rdb != nil {
		return a.rdb.Close()
	}
	return nil
}

// OpenLogFile appends to path, creating its directory. The TUI owns the
// terminal, so its logs go here instead of stdout.
func OpenLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
