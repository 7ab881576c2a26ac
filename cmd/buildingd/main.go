package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/hansol-kim/building-ledger/internal/common"
	"github.com/hansol-kim/building-ledger/internal/export"
	"github.com/hansol-kim/building-ledger/internal/extract"
	"github.com/hansol-kim/building-ledger/internal/llm/anthropic"
	"github.com/hansol-kim/building-ledger/internal/pipeline"
	"github.com/hansol-kim/building-ledger/internal/repository"
	"github.com/hansol-kim/building-ledger/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer repository.Close(db, logger)

	repo := repository.NewBuildingRepository(db, logger)

	extractor := anthropic.NewClient(anthropic.Config{
		APIKey:    cfg.LLM.APIKey,
		Model:     cfg.LLM.Model,
		MaxTokens: cfg.LLM.MaxTokens,
		Timeout:   cfg.LLM.Timeout,
	}, logger)
	proc := pipeline.NewProcessor(logger, extract.NewPDFExtractor(logger), extractor)

	e := echo.New()
	e.HideBanner = true
	server.New(e, repo, proc, export.NewService(repo, logger), logger)

	go func() {
		logger.Info("http serving", "addr", cfg.Server.HTTPAddr)
		if err := e.Start(cfg.Server.HTTPAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("http serve failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("stopped")
}
