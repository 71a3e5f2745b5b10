// Package worker exports transactions from the entity store to the
// configured spreadsheet, driven by queue messages with a periodic pending
// scan as backup.
package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smartbudget/internal/amqp"
	"smartbudget/internal/core"
	"smartbudget/internal/log"
	"smartbudget/internal/sheets"
	"smartbudget/internal/store"
)

// SyncWorker applies sync and delete messages to the export target.
type SyncWorker struct {
	store     store.Store
	exporter  sheets.Exporter
	batchSize int
	interval  time.Duration
	logger    *log.Logger
}

func NewSyncWorker(s store.Store, exporter sheets.Exporter, batchSize int, interval time.Duration, logger *log.Logger) *SyncWorker {
	if batchSize <= 0 {
		batchSize = 10
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &SyncWorker{
		store:     s,
		exporter:  exporter,
		batchSize: batchSize,
		interval:  interval,
		logger:    logger.WithComponent(log.ComponentWorker),
	}
}

// HandleMessage processes one queue message. Errors are returned so the
// consumer can nack and requeue.
func (w *SyncWorker) HandleMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	switch msg.Action {
	case amqp.ActionSync:
		return w.exportTransaction(ctx, msg.ID)
	case amqp.ActionDelete:
		return w.removeTransaction(ctx, msg.ID)
	default:
		return fmt.Errorf("unknown sync action %q", msg.Action)
	}
}

func (w *SyncWorker) exportTransaction(ctx context.Context, id string) error {
	t, err := w.store.GetTransaction(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		// Deleted between publish and consume; nothing to export.
		w.logger.WarnContext(ctx, "Transaction gone before export",
			log.FieldTransactionID, id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get transaction %s: %w", id, err)
	}

	ref, err := w.exporter.Append(ctx, t)
	if err != nil {
		return fmt.Errorf("append transaction %s: %w", id, err)
	}

	if err := w.store.MarkTransactionSynced(ctx, id); err != nil && !errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("mark transaction synced %s: %w", id, err)
	}

	w.logger.InfoContext(ctx, "Transaction exported",
		log.FieldTransactionID, id,
		"row_ref", ref)
	return nil
}

func (w *SyncWorker) removeTransaction(ctx context.Context, id string) error {
	if err := w.exporter.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove transaction %s: %w", id, err)
	}

	w.logger.InfoContext(ctx, "Exported transaction removed",
		log.FieldTransactionID, id)
	return nil
}

// RunPendingScan exports unsynced transactions on a ticker until ctx ends.
// It backs up the queue: records whose publish failed still get exported.
func (w *SyncWorker) RunPendingScan(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.InfoContext(ctx, "Pending scan started",
		"interval", w.interval.String(),
		"batch_size", w.batchSize)

	for {
		select {
		case <-ctx.Done():
			w.logger.InfoContext(ctx, "Pending scan stopped", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			if err := w.ProcessPending(ctx); err != nil {
				w.logger.ErrorContext(ctx, "Pending scan cycle failed", log.FieldError, err)
			}
		}
	}
}

// ProcessPending exports one batch of unsynced transactions. A failing
// record is logged and skipped so one bad row cannot wedge the batch.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.store.ListUnsyncedTransactions(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list unsynced transactions: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	w.logger.InfoContext(ctx, "Processing pending exports", "count", len(pending))

	for _, t := range pending {
		if err := w.exportTransaction(ctx, t.ID); err != nil {
			w.logger.ErrorContext(ctx, "Failed to export pending transaction",
				log.FieldTransactionID, t.ID,
				log.FieldError, err)
		}
	}
	return nil
}
