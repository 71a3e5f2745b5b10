package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"smartbudget/internal/amqp"
	"smartbudget/internal/config"
	"smartbudget/internal/log"
	"smartbudget/internal/sheets"
	sheetsgoogle "smartbudget/internal/sheets/google"
	sheetsmemory "smartbudget/internal/sheets/memory"
	"smartbudget/internal/store"
	"smartbudget/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	logger.Info("Starting smartbudget-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	st, err := store.Open(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize entity store",
			log.FieldError, err,
			log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	defer st.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Export target: Google Sheets when configured, otherwise in-process.
	var exporter sheets.Exporter
	if cfg.GoogleSpreadsheetID != "" {
		client, err := sheetsgoogle.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
			os.Exit(1)
		}
		exporter = client
		logger.Info("Google Sheets export enabled",
			"spreadsheet_id", cfg.GoogleSpreadsheetID,
			"sheet", cfg.GoogleSheetName)
	} else {
		exporter = sheetsmemory.New()
		logger.Warn("No GOOGLE_SPREADSHEET_ID provided, exporting to in-process store")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	syncWorker := worker.NewSyncWorker(st, exporter, cfg.SyncBatchSize, cfg.SyncInterval, logger)

	// On startup, pick up anything missed while the worker was down.
	if err := syncWorker.ProcessPending(ctx); err != nil {
		logger.Error("Startup pending scan failed", log.FieldError, err)
		// Continue: the periodic scan retries.
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeWithReconnect(gctx, func(msg *amqp.TransactionSyncMessage) error {
			return syncWorker.HandleMessage(gctx, msg)
		})
	})
	g.Go(func() error {
		return syncWorker.RunPendingScan(gctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
