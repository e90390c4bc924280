package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/viper"

	"hrpay/internal/app"
	"hrpay/internal/app/server"
	"hrpay/internal/platform/config"
	"hrpay/internal/platform/logger"
)

func main() {
	cfg, err := config.Load(viper.New(), os.Getenv("HRPAY_CONFIG"))
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}
	logger.Init(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("startup failed", "err", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := server.Run(ctx, a); err != nil {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}
