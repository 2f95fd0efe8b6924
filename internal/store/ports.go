// Package store defines the persistence port for transactions.
package store

import (
	"context"

	"finsight/internal/core"
)

// TransactionStore is the outbound port every backend implements.
//
// List returns all transactions ordered by date descending (id descending as
// a tie-break). Create assigns id and date. Delete is idempotent: removing an
// absent id succeeds without error.
type TransactionStore interface {
	List(ctx context.Context) ([]core.Transaction, error)
	Create(ctx context.Context, in core.TransactionInput) (core.Transaction, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (core.Transaction, error)
	Close() error
}
