package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"finsight/internal/core"
	"finsight/internal/store"
)

// EventPublisher mirrors the AMQP client surface the service needs. A nil
// publisher disables eventing entirely.
type EventPublisher interface {
	PublishTransactionCreated(ctx context.Context, id int64) error
	PublishTransactionDeleted(ctx context.Context, tx core.Transaction) error
}

// TransactionService orchestrates transaction operations across the store
// and the event stream.
type TransactionService struct {
	store  store.TransactionStore
	events EventPublisher
}

func NewTransactionService(st store.TransactionStore, events EventPublisher) *TransactionService {
	return &TransactionService{store: st, events: events}
}

// List returns every transaction, newest first.
func (s *TransactionService) List(ctx context.Context) ([]core.Transaction, error) {
	txs, err := s.store.List(ctx)
	if err != nil {
		return nil, storeFailure("list transactions", err)
	}
	return txs, nil
}

// Create validates the input, persists it, and publishes a created event.
// Publish failures are logged but never fail the request; the row is saved.
func (s *TransactionService) Create(ctx context.Context, in core.TransactionInput) (core.Transaction, error) {
	if err := in.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	tx, err := s.store.Create(ctx, in)
	if err != nil {
		return core.Transaction{}, storeFailure("save transaction", err)
	}

	if s.events != nil {
		if err := s.events.PublishTransactionCreated(ctx, tx.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to publish created event",
				"id", tx.ID, "error", err)
		}
	}

	return tx, nil
}

// Delete removes a transaction by id. Deleting an absent id succeeds, so the
// operation is idempotent from the caller's point of view.
func (s *TransactionService) Delete(ctx context.Context, id int64) error {
	// Snapshot the row first so the deleted event can carry it. A miss just
	// means there is nothing to announce.
	var snapshot *core.Transaction
	if s.events != nil {
		if tx, err := s.store.Get(ctx, id); err == nil {
			snapshot = &tx
		}
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return storeFailure("delete transaction", err)
	}

	if s.events != nil && snapshot != nil {
		if err := s.events.PublishTransactionDeleted(ctx, *snapshot); err != nil {
			slog.ErrorContext(ctx, "Failed to publish deleted event",
				"id", id, "error", err)
		}
	}

	return nil
}

// IsInvalidInput reports whether err came from input validation.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
