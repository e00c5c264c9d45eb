package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*Service, *mockStore, *mockLookup) {
	store := newMockStore()
	lookup := testLookup()
	return NewService(store, lookup), store, lookup
}

func TestGet_EmptyCartWhenMissing(t *testing.T) {
	svc, _, _ := newTestService()

	cart, err := svc.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", cart.SessionID)
	assert.Empty(t, cart.Lines)
}

func TestAddItem_NewLine(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "sess-1", 1, 2)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)

	line := cart.Lines[0]
	assert.Equal(t, int64(1), line.ProductID)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, 80.0, line.UnitPrice)
	assert.Equal(t, 100.0, line.OriginalPrice)
	assert.Equal(t, 20.0, line.DiscountPercent)

	// persisted
	assert.Len(t, store.carts["sess-1"].Lines, 1)
}

func TestAddItem_MergesExistingLine(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", 1, 1)
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, "sess-1", 1, 2)
	require.NoError(t, err)

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 3, cart.Lines[0].Quantity)
}

func TestAddItem_QuantityFlooredAtOne(t *testing.T) {
	svc, _, _ := newTestService()

	cart, err := svc.AddItem(context.Background(), "sess-1", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Lines[0].Quantity)
}

func TestAddItem_RefreshesSnapshot(t *testing.T) {
	svc, _, lookup := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", 1, 1)
	require.NoError(t, err)

	// price changes between the two adds
	lookup.products[1].Price = 200
	cart, err := svc.AddItem(ctx, "sess-1", 1, 1)
	require.NoError(t, err)

	assert.Equal(t, 160.0, cart.Lines[0].UnitPrice)
	assert.Equal(t, 200.0, cart.Lines[0].OriginalPrice)
}

func TestAddItem_Unavailable(t *testing.T) {
	svc, _, lookup := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", 42, 1)
	assert.ErrorIs(t, err, ErrProductUnavailable)

	lookup.products[1].Stock = 0
	_, err = svc.AddItem(ctx, "sess-1", 1, 1)
	assert.ErrorIs(t, err, ErrProductUnavailable)

	// zero-priced products are not sellable
	_, err = svc.AddItem(ctx, "sess-1", 3, 1)
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestUpdateQuantity(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", 1, 1)
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity(ctx, "sess-1", 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Lines[0].Quantity)
}

func TestUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", 1, 2)
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity(ctx, "sess-1", 1, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
}

func TestUpdateQuantity_MissingLine(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpdateQuantity(context.Background(), "sess-1", 1, 2)
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestRemoveItem_KeepsOrder(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", 1, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "sess-1", 2, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "sess-1", 1, 1)
	require.NoError(t, err)

	cart, err := svc.RemoveItem(ctx, "sess-1", 1)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, int64(2), cart.Lines[0].ProductID)
}

func TestRemoveItem_AbsentLineIsNoError(t *testing.T) {
	svc, _, _ := newTestService()

	cart, err := svc.RemoveItem(context.Background(), "sess-1", 99)
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
}

func TestClear(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", 1, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "sess-1"))
	_, ok := store.carts["sess-1"]
	assert.False(t, ok)
}

func TestServiceTotals(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", 1, 2)
	require.NoError(t, err)

	totals, err := svc.Totals(ctx, "sess-1")
	require.NoError(t, err)
	assert.InDelta(t, 160.0, totals.TotalAmount, 1e-9)
	assert.InDelta(t, 189.9, totals.Payable, 1e-9)
}
