// Package worker mirrors stored transactions into a spreadsheet. It consumes
// AMQP events and periodically reconciles against the store to recover
// messages missed while the worker was down.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"finsight/internal/amqp"
	"finsight/internal/sheets"
	"finsight/internal/store"
)

type ExportWorker struct {
	store     store.TransactionStore
	exporter  sheets.Exporter
	batchSize int

	mu       sync.Mutex
	exported map[int64]struct{}
}

func NewExportWorker(st store.TransactionStore, exporter sheets.Exporter, batchSize int) *ExportWorker {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &ExportWorker{
		store:     st,
		exporter:  exporter,
		batchSize: batchSize,
		exported:  make(map[int64]struct{}),
	}
}

// HandleCreatedMessage exports the transaction named by a created event. The
// event carries only the id; the row is read back from the store.
func (w *ExportWorker) HandleCreatedMessage(ctx context.Context, msg *amqp.TransactionCreatedMessage) error {
	slog.InfoContext(ctx, "Processing created event", "id", msg.ID)

	tx, err := w.store.Get(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get transaction %d: %w", msg.ID, err)
	}

	ref, err := w.exporter.AppendTransaction(ctx, tx)
	if err != nil {
		return fmt.Errorf("append transaction %d: %w", msg.ID, err)
	}
	w.markExported(msg.ID)

	slog.InfoContext(ctx, "Exported transaction", "id", msg.ID, "row_ref", ref)
	return nil
}

// HandleDeletedMessage removes the exported row for a deleted event. The
// event carries the full row but only the id is needed to locate it.
func (w *ExportWorker) HandleDeletedMessage(ctx context.Context, msg *amqp.TransactionDeletedMessage) error {
	slog.InfoContext(ctx, "Processing deleted event", "id", msg.ID)

	if err := w.exporter.RemoveTransaction(ctx, msg.ID); err != nil {
		return fmt.Errorf("remove transaction %d: %w", msg.ID, err)
	}
	w.unmarkExported(msg.ID)

	slog.InfoContext(ctx, "Removed exported transaction", "id", msg.ID)
	return nil
}

// ReconcileOnce exports stored transactions this worker has not exported yet,
// at most batchSize per call. It backs up the event stream against lost
// messages.
func (w *ExportWorker) ReconcileOnce(ctx context.Context) error {
	txs, err := w.store.List(ctx)
	if err != nil {
		return fmt.Errorf("list transactions: %w", err)
	}

	pending := 0
	for _, tx := range txs {
		if w.isExported(tx.ID) {
			continue
		}
		if pending >= w.batchSize {
			break
		}
		pending++

		ref, err := w.exporter.AppendTransaction(ctx, tx)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to export transaction", "id", tx.ID, "error", err)
			continue
		}
		w.markExported(tx.ID)
		slog.InfoContext(ctx, "Exported transaction during reconcile", "id", tx.ID, "row_ref", ref)
	}

	if pending > 0 {
		slog.InfoContext(ctx, "Reconcile pass finished", "attempted", pending)
	}
	return nil
}

// RunPeriodicReconcile runs ReconcileOnce at the given interval until ctx is
// cancelled. The first pass runs immediately.
func (w *ExportWorker) RunPeriodicReconcile(ctx context.Context, interval time.Duration) error {
	if err := w.ReconcileOnce(ctx); err != nil {
		slog.ErrorContext(ctx, "Initial reconcile failed", "error", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.ReconcileOnce(ctx); err != nil {
				slog.ErrorContext(ctx, "Reconcile pass failed", "error", err)
			}
		}
	}
}

func (w *ExportWorker) markExported(id int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.exported[id] = struct{}{}
}

func (w *ExportWorker) unmarkExported(id int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.exported, id)
}

func (w *ExportWorker) isExported(id int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.exported[id]
	return ok
}
