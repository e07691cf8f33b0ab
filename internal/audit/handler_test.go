package audit

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aniket44788/Mahakal-Admin/internal/domain"
)

func TestHandler_HandleHistory(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	newMux := func(store *memoryStore) *http.ServeMux {
		handler := NewHandler(store, discardLogger())
		mux := http.NewServeMux()
		mux.HandleFunc("GET /orders/{id}/history", handler.HandleHistory)
		return mux
	}

	t.Run("returns transitions for the order", func(t *testing.T) {
		store := newMemoryStore()
		store.transitions = []domain.StatusTransition{
			{ID: "t1", EventID: "e1", OrderID: "o1", FromStatus: "pending", ToStatus: "shipped", OccurredAt: at},
			{ID: "t2", EventID: "e2", OrderID: "o2", FromStatus: "pending", ToStatus: "cancelled", OccurredAt: at},
			{ID: "t3", EventID: "e3", OrderID: "o1", FromStatus: "shipped", ToStatus: "delivered", OccurredAt: at.Add(time.Hour)},
		}

		rec := httptest.NewRecorder()
		newMux(store).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/o1/history", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body struct {
			OrderID     string                    `json:"orderId"`
			Transitions []domain.StatusTransition `json:"transitions"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "o1", body.OrderID)
		require.Len(t, body.Transitions, 2)
		assert.Equal(t, domain.DeliveryStatusDelivered, body.Transitions[1].ToStatus)
	})

	t.Run("empty history is an empty list", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newMux(newMemoryStore()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/o9/history", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"orderId":"o9","transitions":[]}`, rec.Body.String())
	})

	t.Run("store failure is a 500", func(t *testing.T) {
		store := newMemoryStore()
		store.err = errors.New("db down")

		rec := httptest.NewRecorder()
		newMux(store).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/o1/history", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	})
}
