package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"creatives/internal/config"
	"creatives/internal/db"
	"creatives/internal/db/mock"
	applog "creatives/internal/log"
	"creatives/internal/redis"
	"creatives/internal/server"
	"creatives/internal/storage"
)

type serverLifecycle interface {
	Start() error
	Stop() error
}

var (
	loadConfigFunc      = config.Load
	setLogLevelFunc     = applog.SetLevel
	newMockDatabaseFunc = mock.New
	configureDatabase   = db.Configure
	connectRedis        = redis.Connect
	newServerFunc       = func(cfg server.Config) (serverLifecycle, error) {
		return server.New(cfg)
	}
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		return ch, func() { signal.Stop(ch) }
	}
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	cfg, err := loadConfigFunc()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		return 1
	}

	applog.Configure(cfg.Logging.Pretty)
	defer func() { _ = applog.Sync() }()

	if err := setLogLevelFunc(cfg.Logging.Level); err != nil {
		applog.Error(ctx, "invalid log level", "level", cfg.Logging.Level, "error", err)
		return 1
	}

	backend, closeBackend, err := openBackend(ctx, cfg.Storage)
	if err != nil {
		applog.Error(ctx, "failed to open storage backend", "backend", cfg.Storage.Backend, "error", err)
		return 1
	}
	defer closeBackend()

	srv, err := newServerFunc(server.Config{
		Addr: cfg.Server.Addr,
		Session: server.SessionConfig{
			Lifetime:     cfg.Auth.Session.Lifetime,
			CookieName:   cfg.Auth.Session.CookieName,
			CookieDomain: cfg.Auth.Session.CookieDomain,
			CookieSecure: cfg.Auth.Session.CookieSecure,
		},
		Backend: backend,
		Auth: server.AuthConfig{
			SignInDelay: cfg.Auth.SignInDelay,
			SignUpDelay: cfg.Auth.SignUpDelay,
		},
		RateLimit: server.RateLimitConfig{
			PerSecond: cfg.Auth.RateLimit.PerSecond,
			Burst:     cfg.Auth.RateLimit.Burst,
		},
		MaxUploadBytes:    cfg.Upload.MaxFileBytes,
		ShutdownTimeout:   cfg.Server.ShutdownTimeout,
		TrustProxy:        cfg.Server.TrustProxy,
		OriginIdleTimeout: cfg.Server.OriginIdleTimeout,
	})
	if err != nil {
		applog.Error(ctx, "failed to build server", "error", err)
		return 1
	}

	shutdown, stopSignals := subscribeShutdownSig()
	defer stopSignals()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
		return 0
	case sig := <-shutdown:
		applog.Info(ctx, "shutting down http server", "signal", sig.String())
	case <-ctx.Done():
		applog.Info(ctx, "context cancelled, shutting down http server")
	}

	if err := srv.Stop(); err != nil {
		applog.Error(ctx, "graceful shutdown failed", "error", err)
		return 1
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		applog.Error(ctx, "server exited with error", "error", err)
		return 1
	}
	return 0
}

// openBackend connects the configured key-value backend. The returned close
// function is always safe to call.
func openBackend(ctx context.Context, cfg config.StorageConfig) (storage.Store, func(), error) {
	noop := func() {}
	switch cfg.Backend {
	case config.BackendMemory:
		applog.Info(ctx, "using in-memory storage; state is lost on restart")
		return storage.NewMemory(), noop, nil
	case config.BackendRedis:
		client, err := connectRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, noop, fmt.Errorf("connect redis: %w", err)
		}
		return redis.NewStore(client), closeRedis(ctx, client), nil
	case config.BackendDatabase, "":
		var database *gorm.DB
		var err error
		if cfg.Database.UseMock {
			applog.Info(ctx, "using mock database")
			database, err = newMockDatabaseFunc(ctx)
		} else {
			database, err = configureDatabase(cfg.Database)
		}
		if err != nil {
			return nil, noop, fmt.Errorf("configure database: %w", err)
		}
		return db.NewStore(database), closeDatabase(ctx, database), nil
	default:
		return nil, noop, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}

func closeRedis(ctx context.Context, client *goredis.Client) func() {
	return func() {
		if client == nil {
			return
		}
		if err := client.Close(); err != nil {
			applog.Error(ctx, "failed to close redis client", "error", err)
		}
	}
}

func closeDatabase(ctx context.Context, database *gorm.DB) func() {
	return func() {
		if database == nil || database.Config == nil {
			return
		}
		sqlDB, err := database.DB()
		if err != nil {
			return
		}
		if err := sqlDB.Close(); err != nil {
			applog.Error(ctx, "failed to close database", "error", err)
		}
	}
}
