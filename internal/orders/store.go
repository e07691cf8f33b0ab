// Package orders holds the admin's view of orders for one scope and funnels
// every delivery-status change through a Gate.
package orders

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/aniket44788/Mahakal-Admin/internal/domain"
	"github.com/aniket44788/Mahakal-Admin/internal/session"
)

var (
	ErrUserIDRequired = errors.New("user id is required")
	ErrStoreClosed    = errors.New("order view is closed")
)

type OrderSource interface {
	ListUserOrders(ctx context.Context, sess session.Session, userID string) ([]domain.Order, error)
	ListRecentOrders(ctx context.Context, sess session.Session) ([]domain.Order, error)
}

type scopeKind int

const (
	scopeRecent scopeKind = iota
	scopeUser
)

// Scope selects which orders a Store holds: one user's orders or the most
// recent orders across all users.
type Scope struct {
	kind   scopeKind
	userID string
}

var RecentScope = Scope{kind: scopeRecent}

func UserScope(userID string) Scope {
	return Scope{kind: scopeUser, userID: userID}
}

func (s Scope) IsRecent() bool { return s.kind == scopeRecent }

func (s Scope) UserID() string { return s.userID }

func (s Scope) String() string {
	if s.IsRecent() {
		return "recent"
	}
	return "user:" + s.userID
}

type Store struct {
	source OrderSource

	mu     sync.RWMutex
	scope  Scope
	orders []domain.Order
	err    error
	loaded bool
	closed bool
}

func NewStore(source OrderSource) *Store {
	return &Store{
		source: source,
		orders: []domain.Order{},
	}
}

// Load fetches the orders for scope and replaces the held collection. On
// failure the previous collection stays and the error is recorded.
func (s *Store) Load(ctx context.Context, sess session.Session, scope Scope) error {
	if scope.kind == scopeUser && scope.userID == "" {
		s.recordError(ErrUserIDRequired)
		return ErrUserIDRequired
	}

	if s.Closed() {
		return ErrStoreClosed
	}

	var (
		fetched []domain.Order
		err     error
	)
	if scope.IsRecent() {
		fetched, err = s.source.ListRecentOrders(ctx, sess)
	} else {
		fetched, err = s.source.ListUserOrders(ctx, sess, scope.userID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// results landing after Close belong to a view nobody is looking at
	if s.closed {
		return ErrStoreClosed
	}

	if err != nil {
		err = fmt.Errorf("load %s orders: %w", scope, err)
		s.err = err
		return err
	}

	s.scope = scope
	s.orders = fetched
	s.err = nil
	s.loaded = true
	return nil
}

// Get returns the held orders in the order the service returned them.
func (s *Store) Get() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.orders)
}

func (s *Store) Find(orderID string) (domain.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.Find(s.orders, func(o domain.Order) bool {
		return o.ID == orderID
	})
}

func (s *Store) Scope() Scope {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scope
}

// Loaded reports whether any load has succeeded.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Err reports the last failure recorded by a load or a transition.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *Store) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// applyStatusUpdate is only called by Gate after the remote write succeeded.
// Unknown ids and closed stores are ignored.
func (s *Store) applyStatusUpdate(orderID string, status domain.DeliveryStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	for i := range s.orders {
		if s.orders[i].ID == orderID {
			s.orders[i].DeliveryStatus = status
			return
		}
	}
}

func (s *Store) recordError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.err = err
	}
}
