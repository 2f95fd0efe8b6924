// Package memory provides an in-memory transaction store. It backs tests and
// the default no-database backend.
package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"finsight/internal/core"
)

type Store struct {
	mu   sync.Mutex
	next int64
	txs  []core.Transaction
}

func New() *Store {
	return &Store{next: 1}
}

func (s *Store) List(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]core.Transaction(nil), s.txs...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) Create(_ context.Context, in core.TransactionInput) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := core.Transaction{
		ID:          s.next,
		Description: in.Description,
		Amount:      in.Amount,
		Type:        in.Type,
		Category:    in.Category,
		Date:        time.Now().UTC(),
	}
	s.next++
	s.txs = append(s.txs, tx)
	return tx, nil
}

func (s *Store) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, tx := range s.txs {
		if tx.ID == id {
			s.txs = append(s.txs[:i], s.txs[i+1:]...)
			return nil
		}
	}
	// Absent ids are not an error, matching delete-by-key semantics.
	return nil
}

func (s *Store) Get(_ context.Context, id int64) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tx := range s.txs {
		if tx.ID == id {
			return tx, nil
		}
	}
	return core.Transaction{}, sql.ErrNoRows
}

func (s *Store) Close() error { return nil }
