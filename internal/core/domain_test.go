package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTransactionInputValidate(t *testing.T) {
	valid := TransactionInput{
		Description: "Coffee",
		Amount:      Money{Cents: 2500000},
		Type:        Expense,
		Category:    "Food",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*TransactionInput)
		want   error
	}{
		{"empty description", func(in *TransactionInput) { in.Description = "  " }, ErrEmptyDescription},
		{"zero amount", func(in *TransactionInput) { in.Amount = Money{} }, ErrInvalidAmount},
		{"negative amount", func(in *TransactionInput) { in.Amount = Money{Cents: -100} }, ErrInvalidAmount},
		{"bad type", func(in *TransactionInput) { in.Type = "transfer" }, ErrInvalidType},
		{"empty category", func(in *TransactionInput) { in.Category = "" }, ErrEmptyCategory},
	}
	for _, tc := range cases {
		in := valid
		tc.mutate(&in)
		err := in.Validate()
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	long := valid
	long.Description = strings.Repeat("x", 201)
	if err := long.Validate(); err == nil {
		t.Fatal("overlong description accepted")
	}
}

func TestParseTxType(t *testing.T) {
	if got, err := ParseTxType("income"); err != nil || got != Income {
		t.Fatalf("income: got %q err %v", got, err)
	}
	if got, err := ParseTxType(" expense "); err != nil || got != Expense {
		t.Fatalf("expense with spaces: got %q err %v", got, err)
	}
	for _, s := range []string{"", "Income", "transfer"} {
		if _, err := ParseTxType(s); !errors.Is(err, ErrInvalidType) {
			t.Fatalf("%q: expected ErrInvalidType, got %v", s, err)
		}
	}
}

func TestSummarize(t *testing.T) {
	txs := []Transaction{
		{Amount: Money{Cents: 10000}, Type: Income, Date: time.Now()},
		{Amount: Money{Cents: 3000}, Type: Expense},
		{Amount: Money{Cents: 2000}, Type: Expense},
	}
	s := Summarize(txs)
	if s.IncomeCents != 10000 {
		t.Fatalf("income total: expected 10000, got %d", s.IncomeCents)
	}
	if s.ExpenseCents != 5000 {
		t.Fatalf("expense total: expected 5000, got %d", s.ExpenseCents)
	}

	empty := Summarize(nil)
	if empty.IncomeCents != 0 || empty.ExpenseCents != 0 {
		t.Fatalf("empty summary not zero: %+v", empty)
	}
}
