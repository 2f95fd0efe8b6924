package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"finsight/internal/advisor"
	"finsight/internal/core"
	"finsight/internal/store"
)

// promptTemplate asks for the three fixed commentary points. The %s is the
// JSON-serialized transaction history.
const promptTemplate = `Act as a personal finance advisor.
Here is my transaction data in JSON format: %s
Please provide:
1. Total income vs. total expense.
2. The category I spend the most on.
3. One short, actionable suggestion to save money.
Answer in a casual tone.`

// InsightService turns the full transaction history into a natural-language
// spending commentary via an external text-generation provider.
//
// Every call re-reads the whole table and re-invokes the provider; nothing is
// cached and the payload is not capped, so a long history means a large
// prompt.
type InsightService struct {
	store     store.TransactionStore
	generator advisor.Generator
}

func NewInsightService(st store.TransactionStore, gen advisor.Generator) *InsightService {
	return &InsightService{store: st, generator: gen}
}

// promptTransaction is the serialization embedded in the prompt.
type promptTransaction struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Date        string `json:"date"`
}

// GenerateInsight returns the provider's raw commentary text. A store failure
// short-circuits before the provider is contacted.
func (s *InsightService) GenerateInsight(ctx context.Context) (string, error) {
	if s.generator == nil {
		return "", upstreamFailure("generate insight", fmt.Errorf("no provider configured"))
	}

	txs, err := s.store.List(ctx)
	if err != nil {
		return "", storeFailure("read transactions for insight", err)
	}

	prompt, err := buildPrompt(txs)
	if err != nil {
		return "", fmt.Errorf("build prompt: %w", err)
	}

	slog.InfoContext(ctx, "Requesting insight", "transactions", len(txs), "prompt_bytes", len(prompt))

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return "", upstreamFailure("generate insight", err)
	}
	return text, nil
}

func buildPrompt(txs []core.Transaction) (string, error) {
	serialized := make([]promptTransaction, len(txs))
	for i, tx := range txs {
		serialized[i] = promptTransaction{
			ID:          tx.ID,
			Description: tx.Description,
			Amount:      tx.Amount.Decimal(),
			Type:        string(tx.Type),
			Category:    tx.Category,
			Date:        tx.Date.Format(time.RFC3339),
		}
	}
	data, err := json.Marshal(serialized)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(promptTemplate, data), nil
}
