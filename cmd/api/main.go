package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"

	"github.com/mud2monarch/liquidity-depth-cli/internal/config"
	"github.com/mud2monarch/liquidity-depth-cli/internal/eth"
	"github.com/mud2monarch/liquidity-depth-cli/internal/handler"
	"github.com/mud2monarch/liquidity-depth-cli/internal/logging"
	"github.com/mud2monarch/liquidity-depth-cli/internal/oracle"
	"github.com/mud2monarch/liquidity-depth-cli/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	app := fiber.New()
	logger := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ethereumClient, err := eth.Dial(ctx, cfg.RPCEndpoint, cfg.DialTimeout)
	if err != nil {
		return fmt.Errorf("failed to connect to Ethereum node: %w", err)
	}

	reader := oracle.NewReader(logger, ethereumClient)

	estimateService := service.NewEstimateService(logger, reader)
	estimateHandler := handler.NewEstimateHandler(logger, estimateService)
	app.Get("/estimate", estimateHandler.Handle())

	depthService := service.NewDepthService(logger, reader, cfg.SearchTimeout)
	depthHandler := handler.NewDepthHandler(logger, depthService, cfg.DefaultTolerance, cfg.InitialProbe)
	app.Get("/depth", depthHandler.Handle())

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.Addr)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			_ = app.Shutdown()
			ethereumClient.Close()
			return fmt.Errorf("server error: %w", err)
		}
		ethereumClient.Close()
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_ = app.ShutdownWithContext(shutdownCtx)

	ethereumClient.Close()
	return nil
}
