package orders

import (
	"context"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	"github.com/aniket44788/Mahakal-Admin/internal/domain"
	"github.com/aniket44788/Mahakal-Admin/internal/session"
)

type statusUpdate struct {
	orderID string
	status  domain.DeliveryStatus
}

type fakeRemote struct {
	mu         sync.Mutex
	userOrders map[string][]domain.Order
	recent     []domain.Order
	listErr    error
	updateErr  error
	listCalls  int
	updates    []statusUpdate
	onList     func()
	// when set, UpdateDeliveryStatus signals started and waits for release
	started chan string
	release chan struct{}
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{userOrders: make(map[string][]domain.Order)}
}

func (f *fakeRemote) ListUserOrders(_ context.Context, _ session.Session, userID string) ([]domain.Order, error) {
	f.mu.Lock()
	f.listCalls++
	hook := f.onList
	orders, err := f.userOrders[userID], f.listErr
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	if err != nil {
		return nil, err
	}
	return append([]domain.Order(nil), orders...), nil
}

func (f *fakeRemote) ListRecentOrders(_ context.Context, _ session.Session) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.Order(nil), f.recent...), nil
}

func (f *fakeRemote) UpdateDeliveryStatus(ctx context.Context, _ session.Session, orderID string, status domain.DeliveryStatus) error {
	f.mu.Lock()
	f.updates = append(f.updates, statusUpdate{orderID: orderID, status: status})
	started, release, err := f.started, f.release, f.updateErr
	f.mu.Unlock()

	if started != nil {
		started <- orderID
	}
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Second):
		}
	}
	return err
}

func (f *fakeRemote) updateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updates)
}

type fakePublisher struct {
	mu     sync.Mutex
	events []domain.OrderStatusChangedEvent
	keys   []string
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, key)
	p.events = append(p.events, event.(domain.OrderStatusChangedEvent))
	return nil
}

func fakeOrder(id string, status domain.DeliveryStatus) domain.Order {
	return domain.Order{
		ID:             id,
		Amount:         decimal.NewFromFloat(gofakeit.Price(10, 5000)).Round(2),
		PaymentStatus:  domain.PaymentStatus(gofakeit.RandomString([]string{"paid", "pending", "failed"})),
		DeliveryStatus: status,
		Address: &domain.Address{
			FullName: gofakeit.Name(),
			Phone:    gofakeit.Phone(),
			Street:   gofakeit.Street(),
			City:     gofakeit.City(),
			State:    gofakeit.State(),
			Pincode:  gofakeit.Zip(),
		},
		Products: []domain.LineItem{
			{Name: "Laddu Prasad", Quantity: 2, Price: decimal.NewFromInt(50)},
			{Name: "Brass Diya", Quantity: 1, Price: decimal.NewFromInt(30)},
		},
		CreatedAt: gofakeit.PastDate().UTC(),
	}
}
