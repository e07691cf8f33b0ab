package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aniket44788/Mahakal-Admin/internal/domain"
)

type HistoryReader interface {
	ListByOrder(ctx context.Context, orderID string) ([]domain.StatusTransition, error)
}

type Handler struct {
	history HistoryReader
	logger  *slog.Logger
}

func NewHandler(history HistoryReader, logger *slog.Logger) *Handler {
	return &Handler{history: history, logger: logger}
}

func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	transitions, err := h.history.ListByOrder(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to list status history", "error", err, "order_id", id)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("status history retrieved", "order_id", id, "count", len(transitions))
	h.writeJSON(w, http.StatusOK, map[string]any{
		"orderId":     id,
		"transitions": transitions,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
