package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aniket44788/Mahakal-Admin/internal/domain"
)

type TransitionStore interface {
	Insert(ctx context.Context, t *domain.StatusTransition) (bool, error)
}

// Recorder turns order.status.changed events into audit rows.
type Recorder struct {
	store  TransitionStore
	logger *slog.Logger
}

func NewRecorder(store TransitionStore, logger *slog.Logger) *Recorder {
	return &Recorder{store: store, logger: logger}
}

// Handle is a messaging.Handler. Malformed events are logged and skipped so
// one bad message cannot stall the partition.
func (r *Recorder) Handle(ctx context.Context, payload []byte) error {
	var event domain.OrderStatusChangedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		r.logger.Error("dropping malformed status changed event", "error", err)
		return nil
	}

	if event.EventID == "" || event.OrderID == "" || !event.From.Valid() || !event.To.Valid() {
		r.logger.Error("dropping incomplete status changed event", "event_id", event.EventID, "order_id", event.OrderID)
		return nil
	}

	created, err := r.store.Insert(ctx, &domain.StatusTransition{
		EventID:    event.EventID,
		OrderID:    event.OrderID,
		FromStatus: event.From,
		ToStatus:   event.To,
		OccurredAt: event.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("record transition for order %s: %w", event.OrderID, err)
	}

	if !created {
		r.logger.Info("duplicate status changed event ignored", "event_id", event.EventID, "order_id", event.OrderID)
		return nil
	}

	r.logger.Info("status transition recorded", "order_id", event.OrderID, "from", event.From, "to", event.To)
	return nil
}
