package memory

import (
	"context"
	"testing"
	"time"

	"finsight/internal/core"
)

func input(desc string, cents int64, txType core.TxType) core.TransactionInput {
	return core.TransactionInput{
		Description: desc,
		Amount:      core.Money{Cents: cents},
		Type:        txType,
		Category:    "Food",
	}
}

func TestCreateAppearsInList(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.Create(ctx, input("Coffee", 2500000, core.Expense))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if created.Date.IsZero() {
		t.Fatal("expected assigned date")
	}

	txs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txs))
	}
	got := txs[0]
	if got.ID != created.ID || got.Description != "Coffee" ||
		got.Amount.Cents != 2500000 || got.Type != core.Expense || got.Category != "Food" {
		t.Fatalf("listed transaction mismatch: %+v", got)
	}
}

func TestListReverseInsertionOrder(t *testing.T) {
	s := New()
	ctx := context.Background()

	for i, desc := range []string{"first", "second", "third"} {
		if _, err := s.Create(ctx, input(desc, int64(100*(i+1)), core.Expense)); err != nil {
			t.Fatalf("create %s: %v", desc, err)
		}
	}

	txs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"third", "second", "first"}
	for i, w := range want {
		if txs[i].Description != w {
			t.Fatalf("position %d: expected %q, got %q", i, w, txs[i].Description)
		}
	}
}

func TestListOrdersByDateBeforeID(t *testing.T) {
	s := New()
	ctx := context.Background()

	old, _ := s.Create(ctx, input("old", 100, core.Income))
	recent, _ := s.Create(ctx, input("recent", 200, core.Income))

	// Force the first insert to carry the later date.
	s.mu.Lock()
	for i := range s.txs {
		if s.txs[i].ID == old.ID {
			s.txs[i].Date = recent.Date.Add(time.Hour)
		}
	}
	s.mu.Unlock()

	txs, _ := s.List(ctx)
	if txs[0].Description != "old" {
		t.Fatalf("expected date ordering to win, got %q first", txs[0].Description)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, _ := s.Create(ctx, input("Coffee", 100, core.Expense))
	keep, _ := s.Create(ctx, input("Salary", 200, core.Income))

	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete absent id: %v", err)
	}
	if err := s.Delete(ctx, 9999); err != nil {
		t.Fatalf("delete unknown id: %v", err)
	}

	txs, _ := s.List(ctx)
	if len(txs) != 1 || txs[0].ID != keep.ID {
		t.Fatalf("expected only %d to remain, got %+v", keep.ID, txs)
	}
}

func TestEmptyList(t *testing.T) {
	s := New()
	txs, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txs) != 0 {
		t.Fatalf("expected empty list, got %d", len(txs))
	}
}

func TestGet(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, _ := s.Create(ctx, input("Coffee", 100, core.Expense))
	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Description != "Coffee" {
		t.Fatalf("get mismatch: %+v", got)
	}
	if _, err := s.Get(ctx, 9999); err == nil {
		t.Fatal("expected error for unknown id")
	}
}
