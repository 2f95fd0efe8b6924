package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TxType = "income"
	Expense TxType = "expense"
)

type (
	// TxType partitions transactions into the two summary buckets.
	TxType string

	// Transaction is a single recorded income or expense event.
	// ID and Date are assigned by the store on creation.
	Transaction struct {
		ID          int64
		Description string
		Amount      Money
		Type        TxType
		Category    string
		Date        time.Time
	}

	// TransactionInput carries the caller-supplied fields of a new transaction.
	TransactionInput struct {
		Description string
		Amount      Money
		Type        TxType
		Category    string
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
)

// ParseTxType validates a transaction type string.
func ParseTxType(s string) (TxType, error) {
	switch TxType(strings.TrimSpace(s)) {
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	default:
		return "", ErrInvalidType
	}
}

// Categories returns the fixed list offered by the client. The server does
// not enforce membership; any non-empty category is stored as given.
func Categories() []string {
	return []string{"Food", "Transport", "Salary", "Entertainment", "Other"}
}

func (in TransactionInput) Validate() error {
	if len(strings.TrimSpace(in.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(in.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := in.Amount.Validate(); err != nil {
		return err
	}
	if _, err := ParseTxType(string(in.Type)); err != nil {
		return err
	}
	if strings.TrimSpace(in.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}
