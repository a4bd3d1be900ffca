package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reviewdesk-mobile/common/logger"
	"reviewdesk-mobile/internal/config"
	"reviewdesk-mobile/internal/stubapi"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "reviewdesk-stub")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	backend := stubapi.NewBackend(log)
	if cfg.Stub.Seed {
		stubapi.SeedDemo(backend)
		log.Info("Seeded demo data", zap.String("email", stubapi.DemoEmail))
	}
	router := backend.Handler()

	srv := stubapi.NewServer(cfg.Stub.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
	case err := <-errCh:
		if err != nil {
			log.Error("Stub API stopped", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Stop(shutdownCtx)
	log.Info("Stub API exited", zap.Int64("requests", router.Requests()))
}
