package orders

import (
	"context"
	"sync"
)

// Guard marks order ids with a transition in flight. TryAcquire must check and
// insert atomically.
type Guard interface {
	TryAcquire(ctx context.Context, orderID string) (bool, error)
	Release(ctx context.Context, orderID string) error
}

type MemoryGuard struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{held: make(map[string]struct{})}
}

func (g *MemoryGuard) TryAcquire(_ context.Context, orderID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.held[orderID]; busy {
		return false, nil
	}
	g.held[orderID] = struct{}{}
	return true, nil
}

func (g *MemoryGuard) Release(_ context.Context, orderID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.held, orderID)
	return nil
}

func (g *MemoryGuard) Held(orderID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, busy := g.held[orderID]
	return busy
}
