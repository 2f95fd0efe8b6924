package services

import (
	"context"
	"errors"
	"testing"

	"finsight/internal/core"
	"finsight/internal/store/memory"
)

type failingStore struct{ err error }

func (f failingStore) List(context.Context) ([]core.Transaction, error) { return nil, f.err }
func (f failingStore) Create(context.Context, core.TransactionInput) (core.Transaction, error) {
	return core.Transaction{}, f.err
}
func (f failingStore) Delete(context.Context, int64) error { return f.err }
func (f failingStore) Get(context.Context, int64) (core.Transaction, error) {
	return core.Transaction{}, f.err
}
func (f failingStore) Close() error { return nil }

type recordingPublisher struct {
	created []int64
	deleted []core.Transaction
	err     error
}

func (p *recordingPublisher) PublishTransactionCreated(_ context.Context, id int64) error {
	if p.err != nil {
		return p.err
	}
	p.created = append(p.created, id)
	return nil
}

func (p *recordingPublisher) PublishTransactionDeleted(_ context.Context, tx core.Transaction) error {
	if p.err != nil {
		return p.err
	}
	p.deleted = append(p.deleted, tx)
	return nil
}

func validInput() core.TransactionInput {
	return core.TransactionInput{
		Description: "Coffee",
		Amount:      core.Money{Cents: 2500000},
		Type:        core.Expense,
		Category:    "Food",
	}
}

func TestCreateThenList(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewTransactionService(memory.New(), pub)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	txs, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txs) != 1 || txs[0].ID != created.ID {
		t.Fatalf("created transaction missing from list: %+v", txs)
	}

	if len(pub.created) != 1 || pub.created[0] != created.ID {
		t.Fatalf("expected created event for %d, got %v", created.ID, pub.created)
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc := NewTransactionService(memory.New(), nil)

	cases := []struct {
		name   string
		mutate func(*core.TransactionInput)
	}{
		{"empty description", func(in *core.TransactionInput) { in.Description = "" }},
		{"zero amount", func(in *core.TransactionInput) { in.Amount = core.Money{} }},
		{"bad type", func(in *core.TransactionInput) { in.Type = "loan" }},
		{"empty category", func(in *core.TransactionInput) { in.Category = " " }},
	}
	for _, tc := range cases {
		in := validInput()
		tc.mutate(&in)
		_, err := svc.Create(context.Background(), in)
		if !IsInvalidInput(err) {
			t.Fatalf("%s: expected invalid input error, got %v", tc.name, err)
		}
	}

	txs, _ := svc.List(context.Background())
	if len(txs) != 0 {
		t.Fatalf("rejected inputs must not be stored, got %d rows", len(txs))
	}
}

func TestStoreFailuresWrapKind(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewTransactionService(failingStore{err: boom}, nil)
	ctx := context.Background()

	if _, err := svc.List(ctx); !errors.Is(err, ErrStoreUnavailable) || !errors.Is(err, boom) {
		t.Fatalf("list: expected wrapped store failure, got %v", err)
	}
	if _, err := svc.Create(ctx, validInput()); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("create: expected store failure, got %v", err)
	}
	if err := svc.Delete(ctx, 1); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("delete: expected store failure, got %v", err)
	}
}

func TestPublishFailureDoesNotFailCreate(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := NewTransactionService(memory.New(), pub)

	created, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create must succeed despite publish failure: %v", err)
	}

	txs, _ := svc.List(context.Background())
	if len(txs) != 1 || txs[0].ID != created.ID {
		t.Fatal("transaction must be stored despite publish failure")
	}
}

func TestDeletePublishesRowAndIsIdempotent(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewTransactionService(memory.New(), pub)
	ctx := context.Background()

	created, _ := svc.Create(ctx, validInput())

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(pub.deleted) != 1 || pub.deleted[0].ID != created.ID {
		t.Fatalf("expected deleted event carrying the row, got %+v", pub.deleted)
	}

	// Second delete: no error, no extra event.
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("repeat delete: %v", err)
	}
	if len(pub.deleted) != 1 {
		t.Fatalf("absent id must not publish, got %d events", len(pub.deleted))
	}
}
