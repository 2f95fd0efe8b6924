package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"finsight/internal/advisor"
	"finsight/internal/amqp"
	"finsight/internal/config"
	apphttp "finsight/internal/http"
	"finsight/internal/services"
	"finsight/internal/store"
	storemem "finsight/internal/store/memory"
	storesqlite "finsight/internal/store/sqlite"

	"finsight/internal/advisor/openai"
)

func main() {
	// Load .env for local development (ignore errors in production/docker).
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	var txStore store.TransactionStore
	switch cfg.DataBackend {
	case "sqlite":
		st, err := storesqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite store", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		txStore = st
		logger.Info("Initialized SQLite backend", "path", cfg.SQLiteDBPath)
	default:
		txStore = storemem.New()
		logger.Info("Initialized memory backend")
	}
	defer txStore.Close()

	// Eventing is optional; without a broker mutations simply go unannounced.
	var events services.EventPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		events = client
		logger.Info("AMQP eventing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP eventing disabled - no AMQP_URL provided")
	}

	// The insight route stays mounted without a key; it reports the provider
	// as unavailable.
	var generator advisor.Generator
	if cfg.OpenAIAPIKey != "" {
		client, err := openai.NewFromEnv()
		if err != nil {
			logger.Error("Failed to initialize AI provider", "error", err)
			os.Exit(1)
		}
		generator = client
		logger.Info("AI insight enabled", "model", cfg.OpenAIModel)
	} else {
		logger.Info("AI insight disabled - no OPENAI_API_KEY provided")
	}

	txService := services.NewTransactionService(txStore, events)
	insightService := services.NewInsightService(txStore, generator)

	srv := apphttp.NewServer(":"+cfg.Port, txService, insightService)
	srv.ReadTimeout = 10 * time.Second
	// Insight responses wait on the AI provider, which allows itself up to
	// two minutes.
	srv.WriteTimeout = 3 * time.Minute
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting finsight server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
