// Package sqlite implements the transaction store on an embedded SQLite
// database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"finsight/internal/core"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, description, amount_cents, type, category, date
		FROM transactions
		ORDER BY date DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var tx core.Transaction
		var txType string
		if err := rows.Scan(&tx.ID, &tx.Description, &tx.Amount.Cents, &txType, &tx.Category, &tx.Date); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Type = core.TxType(txType)
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}

func (s *Store) Create(ctx context.Context, in core.TransactionInput) (core.Transaction, error) {
	tx := core.Transaction{
		Description: in.Description,
		Amount:      in.Amount,
		Type:        in.Type,
		Category:    in.Category,
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO transactions (description, amount_cents, type, category)
		VALUES (?, ?, ?, ?)
		RETURNING id, date
	`, in.Description, in.Amount.Cents, string(in.Type), in.Category).Scan(&tx.ID, &tx.Date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", tx.ID,
		"description", tx.Description,
		"amount_cents", tx.Amount.Cents,
		"type", tx.Type,
		"category", tx.Category)

	return tx, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	// Zero affected rows is fine: delete-by-key on an absent id succeeds.
	if _, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id int64) (core.Transaction, error) {
	var tx core.Transaction
	var txType string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, description, amount_cents, type, category, date
		FROM transactions
		WHERE id = ?
	`, id).Scan(&tx.ID, &tx.Description, &tx.Amount.Cents, &txType, &tx.Category, &tx.Date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction %d: %w", id, err)
	}
	tx.Type = core.TxType(txType)
	return tx, nil
}
