package http

import (
	"log/slog"
	"net/http"
)

// insightFailureMessage is the fixed text returned for any insight failure;
// the underlying cause stays in the logs.
const insightFailureMessage = "failed to generate AI insight"

func (s *Server) handleInsight(w http.ResponseWriter, r *http.Request) {
	text, err := s.insights.GenerateInsight(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Insight generation failed", "error", err)
		writeError(w, r, http.StatusInternalServerError, insightFailureMessage)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"insight": text})
}
