// Package bootstrap assembles the economy service from configuration.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"gorm.io/gorm"

	grpcAdapter "github.com/andrescamacho/domnus-go/internal/adapters/grpc"
	"github.com/andrescamacho/domnus-go/internal/adapters/metrics"
	"github.com/andrescamacho/domnus-go/internal/adapters/persistence"
	"github.com/andrescamacho/domnus-go/internal/adapters/schema"
	"github.com/andrescamacho/domnus-go/internal/adapters/store"
	"github.com/andrescamacho/domnus-go/internal/application/common"
	"github.com/andrescamacho/domnus-go/internal/application/setup"
	"github.com/andrescamacho/domnus-go/internal/domain/catalog"
	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/production"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
	"github.com/andrescamacho/domnus-go/internal/infrastructure/config"
	"github.com/andrescamacho/domnus-go/internal/infrastructure/database"
)

// Store kinds accepted in store.kind
const (
	StoreKindHTTP     = "http"
	StoreKindDatabase = "database"
)

// App is a fully wired economy service
type App struct {
	Config   *config.Config
	Catalog  *catalog.Catalog
	DB       *gorm.DB
	Store    kingdom.Store
	Journal  production.Journal
	Logger   common.Logger
	Mediator common.Mediator

	server        *grpcAdapter.Server
	metricsServer *http.Server
	closers       []func() error
}

// Options overrides parts of the wiring, mainly for tests
type Options struct {
	// Clock used by handlers and adapters; nil uses the real clock
	Clock shared.Clock

	// Log destination; nil derives it from logging.output
	LogWriter io.Writer
}

// New wires every component described by cfg. The database is always opened:
// it holds the commit journal and order log even when kingdoms live in the
// remote store.
func New(cfg *config.Config, opts Options) (*App, error) {
	app := &App{Config: cfg}
	if opts.Clock == nil {
		opts.Clock = shared.NewRealClock()
	}

	// 1. Catalog
	cat, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	app.Catalog = cat

	// 2. Database
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	app.closers = append(app.closers, func() error { return database.Close(db) })
	if err := database.AutoMigrate(db); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// 3. Logging
	logger, err := app.buildLogger(opts)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Logger = logger

	// 4. Metrics
	var middleware []common.Middleware
	middleware = append(middleware, common.OrderContextMiddleware("grpc"))
	if cfg.Metrics.Enabled {
		commandCollector, err := app.initMetrics()
		if err != nil {
			app.Close()
			return nil, err
		}
		middleware = append(middleware, metrics.PrometheusMiddleware(commandCollector))
	}

	// 5. Kingdom store and journal
	app.Store, err = app.buildStore(opts.Clock)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Journal = persistence.NewGormCommitJournal(db)

	// 6. Mediator
	registry := setup.NewHandlerRegistry(app.Store, app.Journal, cat, opts.Clock)
	med, err := registry.CreateConfiguredMediator(middleware...)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to register handlers: %w", err)
	}
	app.Mediator = med

	// 7. gRPC server
	validator, err := schema.NewValidator()
	if err != nil {
		app.Close()
		return nil, err
	}
	server, err := grpcAdapter.NewServer(
		cfg.Server.Address,
		grpcAdapter.NewEconomyServer(med, validator, cat),
		logger,
		cfg.Server.ShutdownTimeout,
	)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.server = server

	return app, nil
}

func (a *App) buildLogger(opts Options) (common.Logger, error) {
	cfg := a.Config.Logging
	level := common.NormalizeLevel(cfg.Level)

	w := opts.LogWriter
	if w == nil {
		switch cfg.Output {
		case "stderr":
			w = os.Stderr
		case "file":
			f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return nil, fmt.Errorf("failed to open log file: %w", err)
			}
			a.closers = append(a.closers, f.Close)
			w = f
		default:
			w = os.Stdout
		}
	}

	var logger common.Logger = common.NewWriterLogger(w, level)
	if cfg.Persist {
		sink := persistence.NewOrderLogSink(persistence.NewGormOrderLogRepository(a.DB, opts.Clock), level)
		logger = common.MultiLogger{logger, sink}
	}
	return logger, nil
}

// initMetrics creates the registry, registers every collector and prepares
// the exposition endpoint
func (a *App) initMetrics() (*metrics.CommandMetricsCollector, error) {
	metrics.InitRegistry()

	commandCollector := metrics.NewCommandMetricsCollector()
	orderCollector := metrics.NewOrderMetricsCollector()
	storeCollector := metrics.NewStoreMetricsCollector()
	for _, register := range []func() error{commandCollector.Register, orderCollector.Register, storeCollector.Register} {
		if err := register(); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}
	metrics.SetGlobalOrderCollector(orderCollector)
	metrics.SetGlobalStoreCollector(storeCollector)

	cfg := a.Config.Metrics
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, metrics.Handler())
	a.metricsServer = &http.Server{
		Addr:              cfg.Address(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return commandCollector, nil
}

func (a *App) buildStore(clock shared.Clock) (kingdom.Store, error) {
	cfg := a.Config.Store
	if cfg.Kind == StoreKindDatabase {
		return persistence.NewGormKingdomStore(a.DB, clock), nil
	}

	naiveLoc := time.UTC
	if cfg.NaiveTimeZone != "" {
		loc, err := time.LoadLocation(cfg.NaiveTimeZone)
		if err != nil {
			return nil, fmt.Errorf("invalid store.naive_time_zone: %w", err)
		}
		naiveLoc = loc
	}

	return store.NewHTTPKingdomStore(store.Options{
		BaseURL:         cfg.BaseURL,
		FunctionsKey:    cfg.FunctionsKey,
		Timeout:         cfg.Timeout,
		RatePerSecond:   float64(cfg.RateLimit.Requests),
		Burst:           cfg.RateLimit.Burst,
		MaxFailures:     cfg.Circuit.MaxFailures,
		CircuitCooldown: cfg.Circuit.Cooldown,
		Clock:           clock,

		NaiveTimeLocation: naiveLoc,
	}), nil
}

// Server returns the gRPC server
func (a *App) Server() *grpcAdapter.Server {
	return a.server
}

// Run serves metrics (when enabled) and the economy service until a shutdown
// signal arrives
func (a *App) Run() error {
	if a.metricsServer != nil {
		go func() {
			a.Logger.Log(common.LevelInfo, "Metrics endpoint listening", map[string]interface{}{
				"address": a.metricsServer.Addr,
				"path":    a.Config.Metrics.Path,
			})
			if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.Logger.Log(common.LevelError, "Metrics endpoint stopped", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}()
	}

	return a.server.Start()
}

// Close stops the metrics endpoint and releases the database and log file
func (a *App) Close() error {
	var errs []error
	if a.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
