package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FavoritesStore {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := Dial(ctx, addr)
	if err != nil {
		t.Skipf("skipping Redis integration tests: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return NewFavoritesStore(client)
}

func TestFavoritesStore_Toggle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := "test-" + uuid.NewString()
	t.Cleanup(func() { store.client.Del(context.Background(), keyPrefix+owner) })

	on, err := store.Toggle(ctx, owner, 3)
	require.NoError(t, err)
	assert.True(t, on)

	on, err = store.Toggle(ctx, owner, 1)
	require.NoError(t, err)
	assert.True(t, on)

	ids, err := store.List(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, ids)

	on, err = store.Toggle(ctx, owner, 3)
	require.NoError(t, err)
	assert.False(t, on)

	ids, err = store.List(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids)
}
