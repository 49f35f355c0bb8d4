package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/example/fare-engine/internal/config"
	"github.com/example/fare-engine/internal/distance"
	"github.com/example/fare-engine/internal/engine"
	"github.com/example/fare-engine/internal/fare"
	"github.com/example/fare-engine/internal/feed"
	httpapi "github.com/example/fare-engine/internal/http"
	"github.com/example/fare-engine/internal/incentive"
	"github.com/example/fare-engine/internal/lifecycle"
	"github.com/example/fare-engine/internal/logging"
	"github.com/example/fare-engine/internal/store"
)

func main() {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	logger := logging.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog := store.NewMemoryCatalog()
	store.Seed(catalog)

	var archive store.NotificationStore = catalog
	if cfg.PGDSN != "" {
		if cfg.RunMigrations {
			runMigrations(cfg.PGDSN, logger)
		}
		pg, err := store.NewPostgresArchive(cfg.PGDSN)
		if err != nil {
			logger.Error("postgres archive", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		archive = pg
	}

	var ledger incentive.Ledger = incentive.NewMemoryLedger()
	if cfg.RedisAddr != "" {
		rl := incentive.NewRedisLedger(cfg.RedisAddr, cfg.RedisPassword, cfg.PointsKey)
		defer rl.Close()
		ledger = rl
	}

	var publisher *feed.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher = feed.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		defer publisher.Close()
	}

	var provider distance.Provider
	if cfg.RouteEndpoint != "" {
		provider = distance.NewRoutedClient(cfg.RouteEndpoint, cfg.RouteTimeout)
	}
	resolver := &distance.Resolver{
		Provider:         provider,
		Cache:            distance.NewCache(5 * time.Minute),
		RoutedCorrection: cfg.RoutedCorrection,
		DirectCorrection: cfg.DirectCorrection,
		UrbanSpeedKmh:    cfg.UrbanSpeedKmh,
		Logger:           logger,
	}

	machine := lifecycle.NewMachine(cfg.ExpiryWindow, logger)
	wsreg := feed.NewWSRegistry(logger)

	eng := engine.New(engine.Deps{
		Drivers:  catalog,
		Rides:    catalog,
		Resolver: resolver,
		Fares:    &fare.Calculator{PlatformFeePct: cfg.PlatformFeePct},
		Ledger:   ledger,
		Machine:  machine,
		Archive:  archive,
		Feed:     wsreg,
		Events:   publisher,
		Logger:   logger,
	})

	sched := &lifecycle.Scheduler{Machine: machine, Interval: cfg.TickInterval, Logger: logger}
	go sched.Run(ctx)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewServer(eng, machine, ledger, wsreg, logger),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("fare engine listening", "addr", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		logger.Error("http server", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}

func runMigrations(dsn string, logger *slog.Logger) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Error("migration db open", "error", err)
		return
	}
	defer db.Close()

	b, err := os.ReadFile(filepath.Join("migrations", "001_create_notifications.sql"))
	if err != nil {
		logger.Error("migration read", "error", err)
		return
	}
	if _, err := db.Exec(string(b)); err != nil {
		logger.Error("migration exec", "error", err)
		return
	}
	logger.Info("migration applied", "file", "001_create_notifications.sql")
}
