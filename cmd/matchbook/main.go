package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/corex-exchange/matchbook/internal/config"
	"github.com/corex-exchange/matchbook/internal/engine"
	"github.com/corex-exchange/matchbook/internal/orderbook"
	"github.com/corex-exchange/matchbook/internal/server"
	"github.com/corex-exchange/matchbook/internal/validation"
	"github.com/corex-exchange/matchbook/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	minAmount, err := cfg.Book.MinAmountDecimal()
	if err != nil {
		zapLogger.Fatal("Invalid minimum amount", zap.Error(err))
	}

	book := orderbook.New(cfg.Book.Symbol)
	eng := engine.New(book, zapLogger)
	validator := validation.New(minAmount)

	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: server.NewServer(zapLogger, eng, validator).Router(),
	}

	go func() {
		zapLogger.Info("Starting HTTP server",
			zap.String("addr", cfg.Server.Addr()),
			zap.String("symbol", cfg.Book.Symbol))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Forced shutdown", zap.Error(err))
	}
}
