package amqp

import (
	"encoding/json"
	"testing"
	"time"

	"finsight/internal/core"
)

func TestCreatedMessageRoundTrip(t *testing.T) {
	body, err := encodeMessage(KindTransactionCreated, NewTransactionCreatedMessage(42))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	env, err := decodeEnvelope(body)
	if err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Kind != KindTransactionCreated {
		t.Fatalf("expected kind %q, got %q", KindTransactionCreated, env.Kind)
	}

	var msg TransactionCreatedMessage
	if err := json.Unmarshal(env.Payload, &msg); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if msg.ID != 42 {
		t.Fatalf("expected id 42, got %d", msg.ID)
	}
	if msg.Timestamp.IsZero() {
		t.Fatal("expected timestamp")
	}
}

func TestDeletedMessageCarriesRow(t *testing.T) {
	tx := core.Transaction{
		ID:          7,
		Description: "Coffee",
		Amount:      core.Money{Cents: 2500000},
		Type:        core.Expense,
		Category:    "Food",
		Date:        time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
	}

	body, err := encodeMessage(KindTransactionDeleted, NewTransactionDeletedMessage(tx))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	env, err := decodeEnvelope(body)
	if err != nil {
		t.Fatalf("decode envelope: %v", err)
	}

	var msg TransactionDeletedMessage
	if err := json.Unmarshal(env.Payload, &msg); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if msg.ID != 7 || msg.Description != "Coffee" || msg.Amount != "25000" ||
		msg.Type != "expense" || msg.Category != "Food" {
		t.Fatalf("payload mismatch: %+v", msg)
	}
	if !msg.Date.Equal(tx.Date) {
		t.Fatalf("date mismatch: %v", msg.Date)
	}
}

func TestDecodeEnvelopeRejectsMissingKind(t *testing.T) {
	if _, err := decodeEnvelope([]byte(`{"payload":{}}`)); err == nil {
		t.Fatal("expected error for missing kind")
	}
	if _, err := decodeEnvelope([]byte(`not json`)); err == nil {
		t.Fatal("expected error for invalid json")
	}
}
