package console

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aniket44788/Mahakal-Admin/internal/orders"
	"github.com/aniket44788/Mahakal-Admin/internal/session"
)

const defaultMaxViews = 64

// view is one scope's store and the gate that writes to it.
type view struct {
	store    *orders.Store
	gate     *orders.Gate
	lastUsed time.Time
}

// Views keeps one order view per scope. All views share a guard so an order
// reached through two scopes still has a single in-flight transition, and a
// confirmed status is copied into every view that holds the order.
type Views struct {
	source   orders.OrderSource
	updater  orders.StatusUpdater
	guard    orders.Guard
	gateOpts []orders.GateOption
	logger   *slog.Logger
	maxViews int

	mu    sync.Mutex
	views map[orders.Scope]*view
}

func NewViews(source orders.OrderSource, updater orders.StatusUpdater, guard orders.Guard, logger *slog.Logger, gateOpts ...orders.GateOption) *Views {
	v := &Views{
		source:   source,
		updater:  updater,
		guard:    guard,
		logger:   logger,
		maxViews: defaultMaxViews,
		views:    make(map[orders.Scope]*view),
	}
	v.gateOpts = append(slices.Clone(gateOpts), orders.WithPeers(v.stores))
	return v
}

// Load refreshes the view for scope from the remote service, creating it
// first if needed. A failed refresh keeps whatever the view held before.
func (v *Views) Load(ctx context.Context, sess session.Session, scope orders.Scope) (*view, error) {
	vw := v.lookup(scope)
	if err := vw.store.Load(ctx, sess, scope); err != nil {
		return vw, err
	}
	return vw, nil
}

// Ensure returns the view for scope, loading it only when it does not exist
// yet or has never loaded successfully.
func (v *Views) Ensure(ctx context.Context, sess session.Session, scope orders.Scope) (*view, error) {
	vw := v.lookup(scope)
	if vw.store.Loaded() {
		return vw, nil
	}
	return v.Load(ctx, sess, scope)
}

func (v *Views) lookup(scope orders.Scope) *view {
	v.mu.Lock()
	defer v.mu.Unlock()

	now := time.Now()
	if vw, ok := v.views[scope]; ok {
		vw.lastUsed = now
		return vw
	}

	if len(v.views) >= v.maxViews {
		v.evictOldestLocked()
	}

	store := orders.NewStore(v.source)
	vw := &view{
		store:    store,
		gate:     orders.NewGate(store, v.updater, v.guard, v.logger, v.gateOpts...),
		lastUsed: now,
	}
	v.views[scope] = vw
	return vw
}

// stores lists every live view's store so a commit made through one scope
// reaches the others holding the same order.
func (v *Views) stores() []*orders.Store {
	v.mu.Lock()
	defer v.mu.Unlock()

	stores := make([]*orders.Store, 0, len(v.views))
	for _, vw := range v.views {
		stores = append(stores, vw.store)
	}
	return stores
}

func (v *Views) evictOldestLocked() {
	var (
		oldest   orders.Scope
		oldestVw *view
	)
	for scope, vw := range v.views {
		if oldestVw == nil || vw.lastUsed.Before(oldestVw.lastUsed) {
			oldest, oldestVw = scope, vw
		}
	}
	if oldestVw == nil {
		return
	}
	oldestVw.store.Close()
	delete(v.views, oldest)
	v.logger.Debug("order view evicted", "scope", oldest.String())
}

// Close tears down every view. Results still in flight are discarded.
func (v *Views) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	for scope, vw := range v.views {
		vw.store.Close()
		delete(v.views, scope)
	}
}

func (v *Views) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.views)
}
