package store

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"celta_back_end/internal/models"
)

func TestMemoryKVGetSet(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	_, err := kv.Get(ctx, "absent")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, "products", "[]"))
	val, err := kv.Get(ctx, "products")
	require.NoError(t, err)
	assert.Equal(t, "[]", val)

	require.NoError(t, kv.Del(ctx, "products"))
	_, err = kv.Get(ctx, "products")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryKVMSet(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	require.NoError(t, kv.MSet(ctx, "a", "1", "b", "2"))
	val, err := kv.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "2", val)

	assert.Error(t, kv.MSet(ctx, "a"))
}

func TestMemoryKVPubSub(t *testing.T) {
	kv := NewMemoryKV()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := kv.Subscribe(ctx, ChannelStockChanged)
	require.NoError(t, kv.Publish(ctx, ChannelStockChanged, "products"))

	assert.Equal(t, "products", <-ch)
}

func TestAmountCommaFormat(t *testing.T) {
	Init(NewMemoryKV())
	ctx := context.Background()

	// Clé absente: zéro
	assert.True(t, Amount(ctx, KeyDailySales).IsZero())

	require.NoError(t, SetAmount(ctx, KeyDailySales, decimal.NewFromFloat(1234.5)))
	raw, err := client.Get(ctx, KeyDailySales)
	require.NoError(t, err)
	assert.Equal(t, "1234,50", raw)

	assert.True(t, Amount(ctx, KeyDailySales).Equal(decimal.NewFromFloat(1234.5)))
}

func TestCounterToleratesGarbage(t *testing.T) {
	Init(NewMemoryKV())
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, KeyTotalOutflow, "pas un nombre"))
	assert.Equal(t, 0, Counter(ctx, KeyTotalOutflow))

	require.NoError(t, SetCounter(ctx, KeyTotalOutflow, 42))
	assert.Equal(t, 42, Counter(ctx, KeyTotalOutflow))
}

func TestCorruptDocumentFallsBackToZeroValue(t *testing.T) {
	Init(NewMemoryKV())
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, KeyProducts, "{pas du json"))
	assert.Empty(t, Products(ctx))
}

func TestResetAll(t *testing.T) {
	Init(NewMemoryKV())
	ctx := context.Background()

	require.NoError(t, SaveProducts(ctx, []models.Product{{ID: "1", Name: "Stylo", Quantity: 3}}))
	require.NoError(t, SetCounter(ctx, KeyTotalOutflow, 7))
	require.NoError(t, SetAmount(ctx, KeyDailySales, decimal.NewFromInt(100)))

	require.NoError(t, ResetAll(ctx))

	assert.Empty(t, Products(ctx))
	assert.Equal(t, 0, Counter(ctx, KeyTotalOutflow))
	raw, err := client.Get(ctx, KeyDailySales)
	require.NoError(t, err)
	assert.Equal(t, "0,00", raw)
}

func TestCleanTracking(t *testing.T) {
	Init(NewMemoryKV())
	ctx := context.Background()

	require.NoError(t, AppendEditEvent(ctx, models.EditEvent{Name: "Stylo", EditDate: "2026-08-01T10:00:00Z"}))
	require.NoError(t, AppendZeroStockEvent(ctx, models.ZeroStockEvent{Name: "Stylo", Date: "2026-08-01T10:00:00Z"}))
	require.NoError(t, AppendNewlyAddedEvent(ctx, models.NewlyAddedEvent{Name: "Stylo", AddDate: "2026-08-01T10:00:00Z"}))

	require.NoError(t, CleanTracking(ctx))

	assert.Empty(t, EditEvents(ctx))
	assert.Empty(t, ZeroStockEvents(ctx))
	assert.Empty(t, NewlyAddedEvents(ctx))

	// Les listes sont réinitialisées à "[]", pas simplement supprimées
	raw, err := client.Get(ctx, KeyEditedProducts)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}
