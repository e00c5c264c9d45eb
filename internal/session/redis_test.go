package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Omerrrrrrr/tamer-shop/internal/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client, time.Hour), mr
}

func TestGet_Success(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()

	cart := &domain.Cart{
		SessionID: "sess-1",
		Lines: []domain.CartLine{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 3},
		},
	}
	data, err := json.Marshal(cart)
	require.NoError(t, err)
	require.NoError(t, mr.Set(cartKey("sess-1"), string(data)))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", got.SessionID)
	require.Len(t, got.Lines, 2)
	assert.Equal(t, int64(1), got.Lines[0].ProductID)
}

func TestGet_NotFound(t *testing.T) {
	store, _ := setupTestStore(t)

	got, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, got)
}

func TestGet_CorruptJSON(t *testing.T) {
	store, mr := setupTestStore(t)
	require.NoError(t, mr.Set(cartKey("sess-1"), "{not json"))

	_, err := store.Get(context.Background(), "sess-1")
	require.ErrorContains(t, err, "unmarshal cart failed")
}

func TestSet_RoundTrip(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	cart := &domain.Cart{
		SessionID: "sess-2",
		Lines: []domain.CartLine{
			{ProductID: 10, Name: "Kettle", Quantity: 5, UnitPrice: 79.9},
		},
	}
	require.NoError(t, store.Set(ctx, "sess-2", cart))

	got, err := store.Get(ctx, "sess-2")
	require.NoError(t, err)
	assert.Equal(t, cart.Lines, got.Lines)
}

func TestSet_AppliesTTL(t *testing.T) {
	store, mr := setupTestStore(t)

	cart := &domain.Cart{SessionID: "sess-3"}
	require.NoError(t, store.Set(context.Background(), "sess-3", cart))

	ttl := mr.TTL(cartKey("sess-3"))
	assert.GreaterOrEqual(t, ttl, time.Hour)
	assert.LessOrEqual(t, ttl, time.Hour+5*time.Minute)
}

func TestDelete(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(cartKey("sess-4"), "{}"))
	require.NoError(t, store.Delete(ctx, "sess-4"))

	assert.False(t, mr.Exists(cartKey("sess-4")))
}

func TestDelete_MissingKeyIsNoError(t *testing.T) {
	store, _ := setupTestStore(t)
	assert.NoError(t, store.Delete(context.Background(), "never-existed"))
}
