package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"reviewdesk-mobile/common/logger"
	"reviewdesk-mobile/internal/cli"
	"reviewdesk-mobile/internal/config"
	"reviewdesk-mobile/internal/screen"

	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "reviewdesk")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		fmt.Fprint(os.Stderr, screen.Alert(err))
		return 1
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Warn("Failed to close store", zap.Error(err))
		}
	}()

	if err := cli.Execute(ctx, app, os.Args[1:]); err != nil {
		return 1
	}
	return 0
}
