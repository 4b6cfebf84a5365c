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

	httpapi "github.com/SGK112/CRM-sub005/internal/crm/http"
	"github.com/SGK112/CRM-sub005/internal/crm/lock"
	"github.com/SGK112/CRM-sub005/internal/crm/metrics"
	"github.com/SGK112/CRM-sub005/internal/crm/service"
	"github.com/SGK112/CRM-sub005/internal/crm/store"
	"github.com/SGK112/CRM-sub005/internal/crm/store/drivers/postgres"
	"github.com/SGK112/CRM-sub005/internal/crm/store/drivers/sqlite"
	"github.com/SGK112/CRM-sub005/pkg/jwtx"
	"github.com/SGK112/CRM-sub005/pkg/otelx"
	"github.com/SGK112/CRM-sub005/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the CRM service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db            store.Store
	locker        lock.Locker
	keyManager    *jwtx.KeyManager
	metrics       *metrics.Metrics
	traceShutdown otelx.ShutdownFunc

	// Services
	invitationService   *service.InvitationService
	authService         *service.AuthService
	provisioningService *service.ProvisioningService
	usageService        *service.UsageService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "crm-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	ctx := context.Background()

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}
	if err := app.initLocker(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	keyManager, err := InitKeys(app.cfg, app.logger)
	if err != nil {
		app.closeBackends()
		return nil, err
	}
	app.keyManager = keyManager

	app.traceShutdown, err = otelx.Init(ctx, app.logger, otelx.Config{
		Endpoint:    cfg.OTLPEndpoint,
		ServiceName: "crm-service",
		Version:     BuildVersion,
		Environment: cfg.Env,
	})
	if err != nil {
		app.closeBackends()
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	app.metrics = metrics.New(prometheus.DefaultRegisterer)

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("crm service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"driver", app.cfg.DatabaseDriver,
		"provisioning", app.provisioningService.Enabled(),
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

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
	app.logger.Info("shutting down crm service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.traceShutdown(ctx); err != nil {
		app.logger.Error("error flushing traces", "error", err)
	}

	if err := app.closeBackends(); err != nil {
		return err
	}

	app.logger.Info("crm service stopped")
	return nil
}

// initDatabase opens the configured driver and applies migrations
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)
	switch app.cfg.DatabaseDriver {
	case DriverPostgres:
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseURL)
	default:
		db, err = sqlite.NewStore(app.cfg.DatabaseFile)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

// initLocker picks the Redis lock when CRM_REDIS_URL is set so replicas
// serialize on the same workspace key, and an in-process lock otherwise.
func (app *Application) initLocker() error {
	if app.cfg.RedisURL == "" {
		app.locker = lock.NewLocal()
		app.logger.Info("workspace lock is in-process")
		return nil
	}

	rl, err := lock.NewRedis(app.cfg.RedisURL, app.cfg.LockTTL)
	if err != nil {
		return fmt.Errorf("failed to initialize workspace lock: %w", err)
	}
	app.locker = rl
	app.logger.Info("workspace lock is redis-backed", "ttl", app.cfg.LockTTL)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	seats := service.SeatPolicy{Plans: app.cfg.PlanSeats}

	app.invitationService = &service.InvitationService{
		Store:      app.db,
		Seats:      seats,
		Locker:     app.locker,
		Metrics:    app.metrics,
		DefaultTTL: app.cfg.InvitationTTL,
	}
	app.authService = &service.AuthService{
		Store:   app.db,
		Keys:    app.keyManager,
		Issuer:  app.cfg.Issuer,
		TTL:     app.cfg.AccessTokenTTL,
		Metrics: app.metrics,
	}
	app.provisioningService = &service.ProvisioningService{
		Store: app.db,
		Token: app.cfg.ProvisioningToken,
	}
	app.usageService = &service.UsageService{Store: app.db, Seats: seats}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.Retention,
	)
	app.housekeepingService.Metrics = app.metrics
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager.KeySet,
		app.keyManager.Verifier,
		BuildVersion,
		app.db,
		app.logger,
		app.metrics,
	)

	router.InvitationService = app.invitationService
	router.AuthService = app.authService
	router.ProvisioningService = app.provisioningService
	router.UsageService = app.usageService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

// closeBackends closes the lock client and the database.
func (app *Application) closeBackends() error {
	if c, ok := app.locker.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			app.logger.Error("error closing lock backend", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}
	return nil
}
