package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"finsight/internal/core"
)

const (
	KindTransactionCreated = "transaction.created"
	KindTransactionDeleted = "transaction.deleted"
)

// envelope discriminates message kinds on a shared queue.
type envelope struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// TransactionCreatedMessage announces a new row. It carries only the id; the
// consumer fetches the full transaction from the store.
type TransactionCreatedMessage struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// TransactionDeletedMessage carries the full row because it is already gone
// from the store by the time the consumer runs.
type TransactionDeletedMessage struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewTransactionCreatedMessage(id int64) *TransactionCreatedMessage {
	return &TransactionCreatedMessage{ID: id, Timestamp: time.Now()}
}

func NewTransactionDeletedMessage(tx core.Transaction) *TransactionDeletedMessage {
	return &TransactionDeletedMessage{
		ID:          tx.ID,
		Description: tx.Description,
		Amount:      tx.Amount.Decimal(),
		Type:        string(tx.Type),
		Category:    tx.Category,
		Date:        tx.Date,
		Timestamp:   time.Now(),
	}
}

func encodeMessage(kind string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return json.Marshal(envelope{Kind: kind, Payload: raw})
}

func decodeEnvelope(data []byte) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Kind == "" {
		return nil, fmt.Errorf("message without kind")
	}
	return &env, nil
}
