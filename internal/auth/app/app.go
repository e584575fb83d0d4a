package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/assertgrant/internal/auth/http"
	"github.com/aussiebroadwan/assertgrant/internal/auth/metrics"
	"github.com/aussiebroadwan/assertgrant/internal/auth/service"
	"github.com/aussiebroadwan/assertgrant/internal/auth/store"
	"github.com/aussiebroadwan/assertgrant/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/assertgrant/pkg/httpx"
	"github.com/aussiebroadwan/assertgrant/pkg/jwtx"
	"github.com/aussiebroadwan/assertgrant/pkg/lockx"
	"github.com/aussiebroadwan/assertgrant/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application encapsulates the assertion grant service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	key      *jwtx.Key
	redis    redis.UniversalClient
	locker   lockx.Locker
	registry *prometheus.Registry

	// Services
	grantService        *service.GrantService
	tokenService        *service.TokenService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "assertgrant",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config, logger *slog.Logger) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{cfg: cfg, logger: logger}

	db, err := OpenStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	app.db = db

	key, err := LoadAssertionKey(cfg, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	app.key = key

	if err := app.initLocker(); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		app.closeBackends()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler exposes the HTTP router, mostly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("assertgrant starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			app.closeBackends()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down assertgrant...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.closeBackends(); err != nil {
		return err
	}

	app.logger.Info("assertgrant stopped")
	return nil
}

func (app *Application) closeBackends() error {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}
	return nil
}

// OpenStore opens the SQLite database and applies migrations.
func OpenStore(cfg Config, logger *slog.Logger) (store.Store, error) {
	db, err := sqlite.NewStore(cfg.DatabaseFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}

	logger.Debug("database migrations applied successfully", "file", cfg.DatabaseFile)
	return db, nil
}

// initLocker sets up the issuance lock. With AUTH_REDIS_URL the in-process
// lock is backed by a Redis lock shared with every replica.
func (app *Application) initLocker() error {
	local := lockx.NewLocal()
	if app.cfg.RedisURL == "" {
		app.locker = local
		return nil
	}

	opts, err := redis.ParseURL(app.cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("invalid AUTH_REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to reach redis: %w", err)
	}

	app.redis = client
	app.locker = lockx.Multi(local, lockx.NewRedis(client, lockx.RedisConfig{}))
	app.logger.Info("distributed issuance lock enabled", "redis_addr", opts.Addr)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	app.registry = prometheus.NewRegistry()
	collector := metrics.NewCollector()
	app.registry.MustRegister(
		collector,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var owners service.ResourceOwnerResolver
	switch app.cfg.OwnerSource {
	case OwnerSourceSession:
		owners = service.ContextOwnerResolver{}
	default:
		owners = &service.SubjectOwnerResolver{Owners: app.db.Owners()}
	}

	grants, err := service.NewGrantService(service.GrantConfig{
		Key:                 app.key,
		UseIssuerAsClientID: app.cfg.UseIssuerAsClientID,
		Scopes: service.ScopePolicy{
			Server:  app.cfg.ServerScopes(),
			Default: app.cfg.DefaultScopeList(),
		},
		Lifetime: service.LifetimePolicy{
			Default: app.cfg.AccessTokenTTL,
			Max:     app.cfg.AccessTokenMaxTTL,
		},
		ReuseAccessToken: app.cfg.ReuseAccessToken,
		Leeway:           app.cfg.JWTLeeway,
	}, app.db, owners, app.locker, collector)
	if err != nil {
		return err
	}
	app.grantService = grants

	app.tokenService = &service.TokenService{Store: app.db}
	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
	app.housekeepingService.Retention = app.cfg.TokenRetention

	app.logger.Info("assertion grant configured",
		"use_issuer_as_client_id", app.cfg.UseIssuerAsClientID,
		"owner_source", app.cfg.OwnerSource,
		"scopes", app.cfg.ServerScopes(),
		"access_token_ttl", app.cfg.AccessTokenTTL,
		"reuse_access_token", app.cfg.ReuseAccessToken,
	)
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.key, BuildVersion, app.db, app.logger)

	router.GrantService = app.grantService
	router.TokenService = app.tokenService
	router.IntrospectionSecret = app.cfg.IntrospectionSecret
	router.Metrics = app.registry
	if app.cfg.OwnerSource == OwnerSourceSession {
		router.Session = &httpx.SessionConfig{
			OwnerHeader: app.cfg.OwnerHeader,
			ProxySecret: app.cfg.ProxySecret,
		}
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
}
