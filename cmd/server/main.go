package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/vmsuarez/usermap/api/routes"
	"github.com/vmsuarez/usermap/internal/records"
	"github.com/vmsuarez/usermap/internal/selection"
	"github.com/vmsuarez/usermap/internal/stream"
	"github.com/vmsuarez/usermap/pkg/config"
	"github.com/vmsuarez/usermap/pkg/gateway"
	"github.com/vmsuarez/usermap/pkg/logger"
	"github.com/vmsuarez/usermap/pkg/metrics"
	"github.com/vmsuarez/usermap/pkg/recordstore"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "usermap"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "usermap",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	store, err := recordstore.New(ctx, cfg.Redis, logg)
	requireResource(ctx, logg, "record store", err)

	gw, err := gateway.NewClient(cfg.Gateway.BaseURL, gateway.WithHTTPClient(&http.Client{Timeout: cfg.Gateway.Timeout}))
	requireResource(ctx, logg, "gateway client", err)

	registry := prometheus.NewRegistry()
	mtr := metrics.NewServiceMetrics(registry)

	set := records.NewSet()
	coord := selection.NewCoordinator()
	broker := stream.NewBroker(cfg.Stream.ClientBuffer)

	coord.OnChange(func(activeID string) {
		broker.Broadcast(stream.Event{
			Type: stream.EventSelection,
			Data: map[string]string{"id": activeID},
		})
	})

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	watchDone := make(chan error, 1)
	go func() {
		watchDone <- store.Watch(runCtx, func(snapshot recordstore.Snapshot) {
			count := set.Replace(snapshot)
			mtr.IncStorePush()
			mtr.SetRecordCount(count)
			broker.Broadcast(stream.Event{
				Type: stream.EventRecords,
				Data: map[string]int64{"revision": set.Revision()},
			})
			fields := map[string]any{"records": count, "revision": set.Revision()}
			logg.Info(logg.WithFields(runCtx, fields), "records.replaced")
		})
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, store, set, coord, broker, gw, mtr, registry),
	}

	serveCtx := logg.WithFields(runCtx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(serveCtx, "starting server")

	serveDone := make(chan error, 1)
	go func() {
		serveDone <- server.ListenAndServe()
	}()

	select {
	case err := <-serveDone:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(serveCtx, "server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(serveCtx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var closeErr error
	if err := server.Shutdown(shutdownCtx); err != nil {
		closeErr = multierr.Append(closeErr, fmt.Errorf("http server: %w", err))
	}
	if err := <-watchDone; err != nil && !errors.Is(err, context.Canceled) {
		closeErr = multierr.Append(closeErr, fmt.Errorf("record watch: %w", err))
	}
	if err := store.Close(); err != nil {
		closeErr = multierr.Append(closeErr, fmt.Errorf("record store: %w", err))
	}

	if closeErr != nil {
		logg.Error(serveCtx, "shutdown finished with errors", closeErr)
		os.Exit(1)
	}
	logg.Info(serveCtx, "shutdown complete")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
