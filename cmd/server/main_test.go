package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"creatives/internal/config"
	"creatives/internal/server"
	"creatives/internal/storage"
)

type stubServer struct {
	startErr       error
	stopErr        error
	blockUntilStop bool

	startCalled bool
	stopCalled  bool

	startGate   chan struct{}
	startNotify chan struct{}
}

func newStubServer(startErr, stopErr error, block bool) *stubServer {
	s := &stubServer{
		startErr:       startErr,
		stopErr:        stopErr,
		blockUntilStop: block,
		startNotify:    make(chan struct{}),
	}
	if block {
		s.startGate = make(chan struct{})
	}
	return s
}

func (s *stubServer) Start() error {
	s.startCalled = true
	close(s.startNotify)
	if s.blockUntilStop {
		<-s.startGate
	}
	return s.startErr
}

func (s *stubServer) Stop() error {
	s.stopCalled = true
	if s.blockUntilStop {
		close(s.startGate)
	}
	return s.stopErr
}

func restoreHooks(t *testing.T) {
	t.Helper()
	originalLoadConfig := loadConfigFunc
	originalSetLogLevel := setLogLevelFunc
	originalMock := newMockDatabaseFunc
	originalConfigure := configureDatabase
	originalRedis := connectRedis
	originalNewServer := newServerFunc
	originalSubscribe := subscribeShutdownSig

	t.Cleanup(func() {
		loadConfigFunc = originalLoadConfig
		setLogLevelFunc = originalSetLogLevel
		newMockDatabaseFunc = originalMock
		configureDatabase = originalConfigure
		connectRedis = originalRedis
		newServerFunc = originalNewServer
		subscribeShutdownSig = originalSubscribe
	})
}

func TestRunUsesMockDatabaseWhenConfigured(t *testing.T) {
	restoreHooks(t)

	cfg := config.Config{
		Server: config.ServerConfig{Addr: ":8080", OriginIdleTimeout: time.Minute},
		Storage: config.StorageConfig{
			Backend:  config.BackendDatabase,
			Database: config.DatabaseConfig{UseMock: true},
		},
		Logging: config.LoggingConfig{Level: "debug"},
		Auth: config.AuthConfig{
			Session: config.SessionConfig{
				Lifetime:     time.Hour,
				CookieName:   "test",
				CookieSecure: true,
			},
		},
	}

	var mockCalled bool
	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(level string) error { return nil }
	newMockDatabaseFunc = func(ctx context.Context) (*gorm.DB, error) {
		mockCalled = true
		return &gorm.DB{}, nil
	}
	configureDatabase = func(config.DatabaseConfig) (*gorm.DB, error) {
		t.Fatal("configureDatabase should not be called when mock is enabled")
		return nil, nil
	}

	var received server.Config
	serverStub := newStubServer(http.ErrServerClosed, nil, true)
	newServerFunc = func(cfg server.Config) (serverLifecycle, error) {
		received = cfg
		return serverStub, nil
	}

	shutdownCh := make(chan os.Signal, 1)
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		return shutdownCh, func() {}
	}

	go func() {
		<-serverStub.startNotify
		shutdownCh <- syscall.SIGTERM
	}()

	code := run(context.Background())
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !mockCalled {
		t.Fatal("expected mock database to be used")
	}
	if !serverStub.startCalled || !serverStub.stopCalled {
		t.Fatal("expected server start and stop to be invoked")
	}
	if received.Backend == nil || received.Session.CookieName != "test" {
		t.Fatalf("expected backend and session settings to reach the server, got %+v", received)
	}
	if received.OriginIdleTimeout != time.Minute {
		t.Fatalf("expected origin idle timeout to reach the server, got %s", received.OriginIdleTimeout)
	}
}

func TestRunReturnsErrorWhenServerStartFails(t *testing.T) {
	restoreHooks(t)

	cfg := config.Config{
		Server:  config.ServerConfig{Addr: ":8080"},
		Storage: config.StorageConfig{Backend: config.BackendMemory},
		Logging: config.LoggingConfig{Level: "info"},
		Auth:    config.AuthConfig{Session: config.SessionConfig{Lifetime: time.Hour}},
	}

	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(string) error { return nil }
	newMockDatabaseFunc = func(context.Context) (*gorm.DB, error) {
		t.Fatal("memory backend should not open a database")
		return nil, nil
	}

	serverStub := newStubServer(errors.New("listener failure"), nil, false)
	newServerFunc = func(server.Config) (serverLifecycle, error) {
		return serverStub, nil
	}

	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		return make(chan os.Signal), func() {}
	}

	code := run(context.Background())
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if serverStub.stopCalled {
		t.Fatal("server stop should not be called on start error")
	}
}

func TestRunHandlesDatabaseConfigurationError(t *testing.T) {
	restoreHooks(t)

	cfg := config.Config{
		Server: config.ServerConfig{Addr: ":8080"},
		Storage: config.StorageConfig{
			Backend:  config.BackendDatabase,
			Database: config.DatabaseConfig{URL: "postgres://example", UseMock: false},
		},
		Logging: config.LoggingConfig{Level: "info"},
	}

	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(string) error { return nil }
	newMockDatabaseFunc = func(context.Context) (*gorm.DB, error) {
		t.Fatal("mock database should not be used when URL is configured")
		return nil, nil
	}
	configureDatabase = func(config.DatabaseConfig) (*gorm.DB, error) {
		return nil, errors.New("db connection refused")
	}

	code := run(context.Background())
	if code != 1 {
		t.Fatalf("expected exit code 1 on database configuration failure, got %d", code)
	}
}

func TestRunHandlesRedisConnectionError(t *testing.T) {
	restoreHooks(t)

	cfg := config.Config{
		Storage: config.StorageConfig{Backend: config.BackendRedis},
		Logging: config.LoggingConfig{Level: "info"},
	}
	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(string) error { return nil }
	connectRedis = func(context.Context, config.RedisConfig) (*goredis.Client, error) {
		return nil, errors.New("connection refused")
	}
	newServerFunc = func(server.Config) (serverLifecycle, error) {
		t.Fatal("server should not be built without a backend")
		return nil, nil
	}

	if code := run(context.Background()); code != 1 {
		t.Fatalf("expected exit code 1 on redis failure, got %d", code)
	}
}

func TestRunReturnsErrorWhenLogLevelInvalid(t *testing.T) {
	restoreHooks(t)

	cfg := config.Config{Logging: config.LoggingConfig{Level: "invalid"}}
	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(string) error { return errors.New("invalid level") }

	code := run(context.Background())
	if code != 1 {
		t.Fatalf("expected exit code 1 for invalid log level, got %d", code)
	}
}

func TestOpenBackendMemory(t *testing.T) {
	backend, closeFn, err := openBackend(context.Background(), config.StorageConfig{Backend: config.BackendMemory})
	if err != nil {
		t.Fatalf("openBackend() error = %v", err)
	}
	defer closeFn()
	if _, ok := backend.(*storage.Memory); !ok {
		t.Fatalf("expected memory store, got %T", backend)
	}
	if _, _, err := openBackend(context.Background(), config.StorageConfig{Backend: "etcd"}); err == nil {
		t.Fatal("expected unknown backend to fail")
	}
}
