package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/erazemk/dostava/internal/api"
	"github.com/erazemk/dostava/internal/config"
	"github.com/erazemk/dostava/internal/db"
	"github.com/erazemk/dostava/internal/events"
	"github.com/erazemk/dostava/internal/service"
)

const shutdownTimeout = 5 * time.Second

func newLogger(cfg config.Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	return zc.Build()
}

func newPublisher(cfg config.Config, logger *zap.Logger) (events.Publisher, error) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("no kafka brokers configured, change events disabled")
		return events.Nop{}, nil
	}
	return events.DialKafka(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
}

func serve(ctx context.Context, cfg config.Config) error {
	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.EnsureSchema(ctx, database); err != nil {
		return err
	}
	logger.Info("database ready", zap.String("dialect", string(database.Dialect)))

	publisher, err := newPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	svcCfg := service.Config{Publisher: publisher, Logger: logger, MaxLimit: cfg.ListMaxLimit}
	router := api.NewRouter(database, api.Services{
		Items:     service.NewItems(svcCfg),
		Shipments: service.NewShipments(svcCfg),
		Orders:    service.NewOrders(svcCfg),
	}, cfg.APIPrefix, logger)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", zap.String("addr", cfg.Addr), zap.String("prefix", cfg.APIPrefix))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
