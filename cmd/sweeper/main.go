package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vancomm/sweeper/internal/app"
	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/mines"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("failed to load env", slog.Any("error", err))
		os.Exit(1)
	}

	logger := config.Logger()
	mines.Log = logger.With(slog.String("package", "mines"))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a := app.New(logger)
	if err := a.Start(ctx); err != nil {
		logger.Error("failed to start app", slog.Any("error", err))
		os.Exit(1)
	}
}
