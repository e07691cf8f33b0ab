package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aniket44788/Mahakal-Admin/internal/domain"
	"github.com/aniket44788/Mahakal-Admin/internal/session"
)

func TestStore_Load(t *testing.T) {
	ctx := context.Background()
	sess := session.New("tok")

	t.Run("load and list", func(t *testing.T) {
		remote := newFakeRemote()
		remote.userOrders["user1"] = []domain.Order{fakeOrder("o1", domain.DeliveryStatusPending)}

		store := NewStore(remote)
		require.NoError(t, store.Load(ctx, sess, UserScope("user1")))

		got := store.Get()
		require.Len(t, got, 1)
		assert.Equal(t, "o1", got[0].ID)
		assert.Equal(t, UserScope("user1"), store.Scope())
		assert.True(t, store.Loaded())
		assert.NoError(t, store.Err())
	})

	t.Run("keeps service order", func(t *testing.T) {
		remote := newFakeRemote()
		remote.recent = []domain.Order{
			fakeOrder("o3", domain.DeliveryStatusShipped),
			fakeOrder("o1", domain.DeliveryStatusPending),
			fakeOrder("o2", domain.DeliveryStatusDelivered),
		}

		store := NewStore(remote)
		require.NoError(t, store.Load(ctx, sess, RecentScope))

		ids := make([]string, 0, 3)
		for _, o := range store.Get() {
			ids = append(ids, o.ID)
		}
		assert.Equal(t, []string{"o3", "o1", "o2"}, ids)
	})

	t.Run("failure keeps previous collection and records error", func(t *testing.T) {
		remote := newFakeRemote()
		remote.userOrders["user1"] = []domain.Order{fakeOrder("o1", domain.DeliveryStatusPending)}

		store := NewStore(remote)
		require.NoError(t, store.Load(ctx, sess, UserScope("user1")))

		remote.listErr = errors.New("connection reset")
		err := store.Load(ctx, sess, UserScope("user1"))
		require.Error(t, err)

		require.Len(t, store.Get(), 1)
		assert.Equal(t, "o1", store.Get()[0].ID)
		assert.ErrorContains(t, store.Err(), "connection reset")
	})

	t.Run("successful load clears the error", func(t *testing.T) {
		remote := newFakeRemote()
		remote.listErr = errors.New("boom")

		store := NewStore(remote)
		require.Error(t, store.Load(ctx, sess, RecentScope))
		require.Error(t, store.Err())
		assert.False(t, store.Loaded())

		remote.listErr = nil
		require.NoError(t, store.Load(ctx, sess, RecentScope))
		assert.NoError(t, store.Err())
	})

	t.Run("empty user id is rejected locally", func(t *testing.T) {
		remote := newFakeRemote()
		store := NewStore(remote)

		err := store.Load(ctx, sess, UserScope(""))
		require.ErrorIs(t, err, ErrUserIDRequired)
		assert.ErrorIs(t, store.Err(), ErrUserIDRequired)
		assert.Equal(t, 0, remote.listCalls)
	})

	t.Run("closed store ignores loads", func(t *testing.T) {
		remote := newFakeRemote()
		remote.recent = []domain.Order{fakeOrder("o1", domain.DeliveryStatusPending)}

		store := NewStore(remote)
		store.Close()

		require.ErrorIs(t, store.Load(ctx, sess, RecentScope), ErrStoreClosed)
		assert.Empty(t, store.Get())
	})

	t.Run("result landing after close is discarded", func(t *testing.T) {
		remote := newFakeRemote()
		remote.userOrders["user1"] = []domain.Order{fakeOrder("o1", domain.DeliveryStatusPending)}

		store := NewStore(remote)
		remote.onList = store.Close

		require.ErrorIs(t, store.Load(ctx, sess, UserScope("user1")), ErrStoreClosed)
		assert.Empty(t, store.Get())
	})
}

func TestStore_ApplyStatusUpdate(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	remote.userOrders["user1"] = []domain.Order{
		fakeOrder("o1", domain.DeliveryStatusPending),
		fakeOrder("o2", domain.DeliveryStatusPending),
	}

	store := NewStore(remote)
	require.NoError(t, store.Load(ctx, session.New("tok"), UserScope("user1")))

	t.Run("updates the matching order", func(t *testing.T) {
		store.applyStatusUpdate("o2", domain.DeliveryStatusShipped)

		o2, ok := store.Find("o2")
		require.True(t, ok)
		assert.Equal(t, domain.DeliveryStatusShipped, o2.DeliveryStatus)

		o1, _ := store.Find("o1")
		assert.Equal(t, domain.DeliveryStatusPending, o1.DeliveryStatus)
	})

	t.Run("unknown id is a silent no-op", func(t *testing.T) {
		before := store.Get()
		store.applyStatusUpdate("missing", domain.DeliveryStatusDelivered)
		assert.Equal(t, before, store.Get())
	})

	t.Run("get returns a copy", func(t *testing.T) {
		got := store.Get()
		got[0].DeliveryStatus = domain.DeliveryStatusCancelled

		o1, _ := store.Find("o1")
		assert.Equal(t, domain.DeliveryStatusPending, o1.DeliveryStatus)
	})
}

func TestScope_String(t *testing.T) {
	assert.Equal(t, "recent", RecentScope.String())
	assert.Equal(t, "user:u1", UserScope("u1").String())
	assert.NotEqual(t, RecentScope, UserScope(""))
}
