package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/nekolist/internal/client/cli"
	"github.com/dmitrijs2005/nekolist/internal/client/config"
	"github.com/dmitrijs2005/nekolist/internal/common"
	"github.com/dmitrijs2005/nekolist/internal/logging"
	"github.com/dmitrijs2005/nekolist/internal/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel)

	shutdown, err := telemetry.Setup(ctx, common.ServiceName, cfg.OtelEndpoint)
	if err != nil {
		logger.Warn(ctx, "tracing disabled", "error", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn(ctx, "tracing shutdown", "error", err)
		}
	}()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
