package notifications

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"celta_back_end/internal/models"
	"celta_back_end/internal/store"
)

type fakeDispatcher struct {
	scheduled []string
}

func (f *fakeDispatcher) Schedule(_ context.Context, _, body string, _ map[string]string) error {
	f.scheduled = append(f.scheduled, body)
	return nil
}

func TestCheckLowStockThreshold(t *testing.T) {
	store.Init(store.NewMemoryKV())
	fake := &fakeDispatcher{}
	SetDispatcher(fake)
	defer SetDispatcher(logDispatcher{})
	ctx := context.Background()

	CheckLowStock(ctx, []models.Product{
		{ID: "1", Name: "Stylo", Quantity: 2},
		{ID: "2", Name: "Cahier", Quantity: 3},
		{ID: "3", Name: "Gomme", Quantity: 0},
	})

	// Seuls Stylo (2) et Gomme (0) sont sous le seuil
	assert.Len(t, fake.scheduled, 2)
	assert.Len(t, List(ctx), 2)
}

func TestCheckLowStockNoDedup(t *testing.T) {
	store.Init(store.NewMemoryKV())
	SetDispatcher(&fakeDispatcher{})
	defer SetDispatcher(logDispatcher{})
	ctx := context.Background()

	products := []models.Product{{ID: "1", Name: "Stylo", Quantity: 1}}
	CheckLowStock(ctx, products)
	CheckLowStock(ctx, products)

	// Pas de dédoublonnage: une entrée par passage
	assert.Len(t, List(ctx), 2)
}

func TestCheckLowStockNewestFirst(t *testing.T) {
	store.Init(store.NewMemoryKV())
	SetDispatcher(&fakeDispatcher{})
	defer SetDispatcher(logDispatcher{})
	ctx := context.Background()

	CheckLowStock(ctx, []models.Product{{ID: "1", Name: "Stylo", Quantity: 1}})
	CheckLowStock(ctx, []models.Product{{ID: "2", Name: "Cahier", Quantity: 0}})

	list := List(ctx)
	require.Len(t, list, 2)
	assert.Contains(t, list[0].Body, "Cahier")
	assert.Contains(t, list[1].Body, "Stylo")
}

func TestClearAll(t *testing.T) {
	store.Init(store.NewMemoryKV())
	SetDispatcher(&fakeDispatcher{})
	defer SetDispatcher(logDispatcher{})
	ctx := context.Background()

	CheckLowStock(ctx, []models.Product{{ID: "1", Name: "Stylo", Quantity: 0}})
	require.NotEmpty(t, List(ctx))

	require.NoError(t, ClearAll(ctx))
	assert.Empty(t, List(ctx))
}
