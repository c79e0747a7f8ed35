package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"activities/internal/config"
	"activities/internal/logging"
	"activities/internal/metrics"
	"activities/internal/repository"
	"activities/internal/server"
	"activities/internal/storage"
	"activities/internal/storage/file"
	"activities/internal/storage/memory"
	"activities/internal/storage/redis"
	"activities/internal/storage/sqlite"
	"activities/internal/util"
	"activities/internal/validation"
)

func main() {
	configFlag := flag.String("config", util.EnvOrDefault("ACTIVITIES_CONFIG", ""), "Path to YAML config file")
	addrFlag := flag.String("addr", "", "HTTP listen address (overrides config)")
	storageFlag := flag.String("storage", "", "Storage driver: sqlite, redis, file or memory (overrides config)")
	staticFlag := flag.String("static", "", "Directory with built frontend (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	if *addrFlag != "" {
		cfg.HTTP.Addr = *addrFlag
	}
	if *storageFlag != "" {
		cfg.Storage.Driver = *storageFlag
	}
	if *staticFlag != "" {
		cfg.HTTP.StaticDir = *staticFlag
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, logCloser, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to configure logging: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)
	logger.Info("academic activities tracker starting", slog.String("storage", cfg.Storage.Driver))

	kv, err := openStorage(context.Background(), cfg.Storage, logger)
	if err != nil {
		logger.Error("unable to open storage", slog.String("driver", cfg.Storage.Driver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer kv.Close()

	loc, err := validation.LoadLocation(cfg.Validation.Timezone)
	if err != nil {
		logger.Error("unable to load timezone", slog.String("error", err.Error()))
		os.Exit(1)
	}

	m := metrics.New()
	repo := repository.New(
		repository.NewCollection(kv, cfg.Storage.Key),
		repository.WithRecorder(m),
		repository.WithLogger(logger),
	)

	srv := server.New(repo, server.Options{
		Validator: validation.New(validation.WithLocation(loc)),
		Metrics:   m,
		Logger:    logger,
		StaticDir: cfg.HTTP.StaticDir,
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}

// openStorage builds the key-value backend selected by configuration.
func openStorage(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (storage.KeyValue, error) {
	switch cfg.Driver {
	case storage.DriverSQLite:
		return sqlite.Open(cfg.SQLitePath, logger)
	case storage.DriverRedis:
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return redis.Open(ctx, redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	case storage.DriverFile:
		return file.New(cfg.FileDir, logger)
	case storage.DriverMemory:
		logger.Warn("memory storage selected; activities are lost on restart")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
