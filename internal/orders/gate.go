package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/aniket44788/Mahakal-Admin/internal/domain"
	"github.com/aniket44788/Mahakal-Admin/internal/session"
)

const meterName = "github.com/aniket44788/Mahakal-Admin/internal/orders"

var (
	ErrInvalidStatus      = errors.New("invalid delivery status")
	ErrOrderNotFound      = errors.New("order not found in view")
	ErrTransitionInFlight = errors.New("status update already in progress for order")
)

type StatusUpdater interface {
	UpdateDeliveryStatus(ctx context.Context, sess session.Session, orderID string, status domain.DeliveryStatus) error
}

type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

type Result struct {
	Order    domain.Order
	Previous domain.DeliveryStatus
	Changed  bool
}

type Gate struct {
	store       *Store
	updater     StatusUpdater
	guard       Guard
	publisher   Publisher
	logger      *slog.Logger
	transitions metric.Int64Counter
	now         func() time.Time
	peers       func() []*Store
}

type GateOption func(*Gate)

func WithPublisher(p Publisher) GateOption {
	return func(g *Gate) {
		g.publisher = p
	}
}

// WithPeers names other stores that may hold the same orders. A confirmed
// status is applied to each of them as well as the gate's own store.
func WithPeers(peers func() []*Store) GateOption {
	return func(g *Gate) {
		g.peers = peers
	}
}

func WithClock(now func() time.Time) GateOption {
	return func(g *Gate) {
		g.now = now
	}
}

func NewGate(store *Store, updater StatusUpdater, guard Guard, logger *slog.Logger, opts ...GateOption) *Gate {
	g := &Gate{
		store:   store,
		updater: updater,
		guard:   guard,
		logger:  logger,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}

	counter, err := otel.Meter(meterName).Int64Counter("admin.order.transitions",
		metric.WithDescription("Delivery status transitions requested through the admin console"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		logger.Warn("failed to create transitions counter", "error", err)
		counter = noop.Int64Counter{}
	}
	g.transitions = counter

	return g
}

// RequestTransition moves an order in the store to target. The remote write
// happens first and the store is only updated once it is confirmed. Requests
// that would not change anything never reach the network.
func (g *Gate) RequestTransition(ctx context.Context, sess session.Session, orderID string, target string) (Result, error) {
	status, err := domain.ParseDeliveryStatus(target)
	if err != nil {
		g.record(ctx, "rejected")
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidStatus, err)
	}

	if !sess.Authenticated() {
		return Result{}, session.ErrNotAuthenticated
	}

	current, ok := g.store.Find(orderID)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}

	if current.DeliveryStatus == status {
		g.record(ctx, "unchanged")
		return Result{Order: current, Previous: status}, nil
	}

	acquired, err := g.guard.TryAcquire(ctx, orderID)
	if err != nil {
		return Result{}, fmt.Errorf("acquire in-flight guard: %w", err)
	}
	if !acquired {
		g.record(ctx, "busy")
		return Result{}, fmt.Errorf("%w: %s", ErrTransitionInFlight, orderID)
	}
	defer func() {
		if err := g.guard.Release(context.WithoutCancel(ctx), orderID); err != nil {
			g.logger.Error("failed to release in-flight guard", "error", err, "order_id", orderID)
		}
	}()

	// a transition may have committed between the first read and the acquire
	current, ok = g.store.Find(orderID)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	if current.DeliveryStatus == status {
		g.record(ctx, "unchanged")
		return Result{Order: current, Previous: status}, nil
	}

	if err := g.updater.UpdateDeliveryStatus(ctx, sess, orderID, status); err != nil {
		err = fmt.Errorf("update delivery status of %s: %w", orderID, err)
		g.store.recordError(err)
		g.record(ctx, "failed")
		g.logger.Error("failed to update delivery status", "error", err, "order_id", orderID, "status", status)
		return Result{}, err
	}

	g.commit(orderID, status)
	g.record(ctx, "committed")

	g.publish(ctx, domain.OrderStatusChangedEvent{
		EventID:   uuid.NewString(),
		OrderID:   orderID,
		From:      current.DeliveryStatus,
		To:        status,
		Timestamp: g.now().UTC(),
	})

	g.logger.Info("delivery status updated", "order_id", orderID, "from", current.DeliveryStatus, "to", status)

	updated := current
	updated.DeliveryStatus = status
	return Result{Order: updated, Previous: current.DeliveryStatus, Changed: true}, nil
}

func (g *Gate) commit(orderID string, status domain.DeliveryStatus) {
	g.store.applyStatusUpdate(orderID, status)
	if g.peers == nil {
		return
	}
	for _, peer := range g.peers() {
		if peer != g.store {
			peer.applyStatusUpdate(orderID, status)
		}
	}
}

func (g *Gate) publish(ctx context.Context, event domain.OrderStatusChangedEvent) {
	if g.publisher == nil {
		return
	}
	if err := g.publisher.Publish(ctx, event.OrderID, event); err != nil {
		g.logger.Error("failed to publish status changed event", "error", err, "order_id", event.OrderID)
	}
}

func (g *Gate) record(ctx context.Context, result string) {
	g.transitions.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
