// Package sheets defines the outbound ports for the spreadsheet export.
package sheets

import (
	"context"

	"finsight/internal/core"
)

type (
	// RowAppender writes one transaction as a spreadsheet row and returns a
	// reference to it.
	RowAppender interface {
		AppendTransaction(ctx context.Context, tx core.Transaction) (rowRef string, err error)
	}

	// RowRemover deletes the exported row for a transaction id. Removing an
	// id that was never exported is not an error.
	RowRemover interface {
		RemoveTransaction(ctx context.Context, id int64) error
	}

	// Exporter is the full surface the export worker depends on.
	Exporter interface {
		RowAppender
		RowRemover
	}
)
