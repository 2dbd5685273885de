package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aarya06/Bookwizard/internal/cart"
)

// setupTestRedis creates a miniredis server and returns a Store backed by it
func setupTestRedis(t *testing.T) (*Store, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := NewStore(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return store, mr, cleanup
}

func sampleCart() *cart.Cart {
	c := cart.New()
	c.Add(cart.ItemRef{ItemID: "b1", Name: "Dune", UnitPrice: decimal.RequireFromString("12.50")}, 2)
	c.Add(cart.ItemRef{ItemID: "b2", Name: "Hyperion", UnitPrice: decimal.RequireFromString("8.00")}, 1)
	return c
}

func TestCart_MissingSession(t *testing.T) {
	store, _, cleanup := setupTestRedis(t)
	defer cleanup()

	_, err := store.Cart(context.Background(), "nope")

	assert.ErrorIs(t, err, ErrNoCart)
}

func TestPutCartAndCart_RoundTrip(t *testing.T) {
	store, _, cleanup := setupTestRedis(t)
	defer cleanup()
	ctx := context.Background()

	want := sampleCart()
	require.NoError(t, store.PutCart(ctx, "sess-1", want))

	got, err := store.Cart(ctx, "sess-1")
	require.NoError(t, err)

	wantLines := want.Lines()
	gotLines := got.Lines()
	require.Len(t, gotLines, len(wantLines))
	for i := range wantLines {
		assert.Equal(t, wantLines[i].Item.ItemID, gotLines[i].Item.ItemID)
		assert.Equal(t, wantLines[i].Quantity, gotLines[i].Quantity)
	}
	assert.True(t, want.TotalPrice().Equal(got.TotalPrice()))
}

func TestPutCart_SetsSessionTTL(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, store.PutCart(context.Background(), "sess-1", sampleCart()))

	assert.Equal(t, TTL, mr.TTL("session:sess-1:cart"))

	// the cart is gone once the session lifetime passes
	mr.FastForward(TTL + time.Minute)
	_, err := store.Cart(context.Background(), "sess-1")
	assert.ErrorIs(t, err, ErrNoCart)
}

func TestClear(t *testing.T) {
	store, _, cleanup := setupTestRedis(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.PutCart(ctx, "sess-1", sampleCart()))
	require.NoError(t, store.Clear(ctx, "sess-1"))

	_, err := store.Cart(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNoCart)
}

func TestClear_MissingCartIsNoError(t *testing.T) {
	store, _, cleanup := setupTestRedis(t)
	defer cleanup()

	assert.NoError(t, store.Clear(context.Background(), "nope"))
}

func TestUserBinding(t *testing.T) {
	store, _, cleanup := setupTestRedis(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.User(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNoUser)

	require.NoError(t, store.SetUser(ctx, "sess-1", "user-42"))

	userID, err := store.User(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)

	require.NoError(t, store.ClearUser(ctx, "sess-1"))
	_, err = store.User(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNoUser)
}

func TestLogoutKeepsCart(t *testing.T) {
	store, _, cleanup := setupTestRedis(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.PutCart(ctx, "sess-1", sampleCart()))
	require.NoError(t, store.SetUser(ctx, "sess-1", "user-42"))
	require.NoError(t, store.ClearUser(ctx, "sess-1"))

	got, err := store.Cart(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())
}
