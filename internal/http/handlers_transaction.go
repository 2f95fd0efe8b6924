package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"finsight/internal/core"
	"finsight/internal/services"
)

// transactionJSON is the wire form of a transaction. Amounts travel as
// decimal strings.
type transactionJSON struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Date        string `json:"date"`
}

func toTransactionJSON(tx core.Transaction) transactionJSON {
	return transactionJSON{
		ID:          tx.ID,
		Description: tx.Description,
		Amount:      tx.Amount.Decimal(),
		Type:        string(tx.Type),
		Category:    tx.Category,
		Date:        tx.Date.UTC().Format(time.RFC3339),
	}
}

// amountField accepts either a JSON number or a JSON string.
type amountField string

func (a *amountField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = amountField(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = amountField(n.String())
	return nil
}

type createTransactionRequest struct {
	Description string      `json:"description"`
	Amount      amountField `json:"amount"`
	Type        string      `json:"type"`
	Category    string      `json:"category"`
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.cachedList(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions failed", "error", err)
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]transactionJSON, len(txs))
	for i, tx := range txs {
		out[i] = toTransactionJSON(tx)
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.WarnContext(r.Context(), "Malformed transaction body", "error", err)
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := core.ParseAmount(string(req.Amount))
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	in := core.TransactionInput{
		Description: strings.TrimSpace(req.Description),
		Amount:      amount,
		Type:        core.TxType(strings.TrimSpace(req.Type)),
		Category:    strings.TrimSpace(req.Category),
	}

	tx, err := s.transactions.Create(r.Context(), in)
	if err != nil {
		if services.IsInvalidInput(err) {
			writeError(w, r, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Create transaction failed", "error", err)
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	s.invalidateList()
	writeJSON(w, r, http.StatusOK, toTransactionJSON(tx))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid transaction id")
		return
	}

	if err := s.transactions.Delete(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Delete transaction failed", "id", id, "error", err)
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	s.invalidateList()
	writeJSON(w, r, http.StatusOK, "transaction deleted")
}
