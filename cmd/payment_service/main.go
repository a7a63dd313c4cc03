package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tumbleweedd/frame_store/payment_service/internal/app"
	"github.com/tumbleweedd/frame_store/payment_service/internal/config"
	"github.com/tumbleweedd/frame_store/payment_service/pkg/logger"
)

func main() {
	cfg := config.InitConfig()

	log := logger.NewSlogLogger(logger.SlogEnvironment(cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	application, err := app.NewApp(ctx, log, &cfg)
	if err != nil {
		log.Error("failed to create app", logger.String("error", err.Error()))
		os.Exit(1)
	}

	if err = application.Run(ctx); err != nil {
		log.Error("application stopped with error", logger.String("error", err.Error()))
		os.Exit(1)
	}
}
