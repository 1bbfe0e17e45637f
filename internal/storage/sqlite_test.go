package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nutslove/otel-instrumentation-demo/internal/orders"
)

func newTestStore(t *testing.T) *OrderStore {
	t.Helper()
	store, err := NewOrderStore(filepath.Join(t.TempDir(), "orders.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestInsertAssignsIncreasingIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var lastID int64
	for i := 0; i < 5; i++ {
		id, err := store.Insert(ctx, 42, "Widget", 3, orders.StatusPending)
		require.NoError(t, err)
		assert.Greater(t, id, lastID)
		lastID = id
	}
}

func TestInsertedFieldsRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.Insert(ctx, 42, "Widget", 3, orders.StatusPending)
	require.NoError(t, err)

	list, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got := list[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, "Widget", got.ProductName)
	assert.Equal(t, 3, got.Quantity)
	assert.Equal(t, orders.StatusPending, got.Status)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestListAllNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Insert(ctx, 1, "Widget", 1, orders.StatusPending)
	require.NoError(t, err)
	second, err := store.Insert(ctx, 2, "Gadget", 2, orders.StatusPending)
	require.NoError(t, err)
	third, err := store.Insert(ctx, 3, "Gizmo", 3, orders.StatusPending)
	require.NoError(t, err)

	list, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, third, list[0].ID)
	assert.Equal(t, second, list[1].ID)
	assert.Equal(t, first, list[2].ID)
}

func TestConcurrentInsertsDoNotLoseRows(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	const workers = 8
	const perWorker = 5

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := 0; i < perWorker; i++ {
				if _, err := store.Insert(ctx, 42, "Widget", 1, orders.StatusPending); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	list, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, workers*perWorker)

	seen := make(map[int64]bool, len(list))
	for _, o := range list {
		assert.False(t, seen[o.ID], "duplicate id %d", o.ID)
		seen[o.ID] = true
	}
}
