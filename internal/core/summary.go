package core

// Summary holds the two aggregation buckets the client's pie chart renders.
type Summary struct {
	IncomeCents  int64
	ExpenseCents int64
}

// Summarize totals amounts by transaction type.
func Summarize(txs []Transaction) Summary {
	var s Summary
	for _, t := range txs {
		switch t.Type {
		case Income:
			s.IncomeCents += t.Amount.Cents
		case Expense:
			s.ExpenseCents += t.Amount.Cents
		}
	}
	return s
}
