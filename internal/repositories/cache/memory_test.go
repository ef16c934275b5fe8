package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Value int64  `json:"value"`
	Day   string `json:"day"`
}

func TestMemoryStoreGetSet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	hit, err := store.Get(ctx, "missing", &payload{})
	require.NoError(t, err)
	assert.False(t, hit, "absent key is a miss, not an error")

	in := payload{Value: 4200, Day: "2024-03-01"}
	require.NoError(t, store.Set(ctx, "k", in, time.Minute))

	var out payload
	hit, err = store.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, in, out, "temporal text fields round-trip exactly")

	// Repeated reads without an intervening write are identical.
	var again payload
	hit, err = store.Get(ctx, "k", &again)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, out, again)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "k", payload{Value: 1}, 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	hit, err := store.Get(ctx, "k", &payload{})
	require.NoError(t, err)
	assert.False(t, hit, "expired entry is treated as absent")
}

func TestMemoryStoreNoTTL(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "k", payload{Value: 1}, 0))

	var out payload
	hit, err := store.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.True(t, hit, "non-positive ttl stores without expiry")
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "a", payload{Value: 1}, time.Minute))
	require.NoError(t, store.Set(ctx, "b", payload{Value: 2}, time.Minute))

	require.NoError(t, store.Delete(ctx, "a", "b"))
	require.NoError(t, store.Delete(ctx, "a"), "deleting a missing key is a no-op")

	hit, err := store.Get(ctx, "a", &payload{})
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "k", payload{Value: 1}, time.Minute))
	require.NoError(t, store.Set(ctx, "k", payload{Value: 2}, time.Minute))

	var out payload
	hit, err := store.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, int64(2), out.Value, "set is a full overwrite")
}

func TestMemoryStoreExpiryDoesNotEraseConcurrentWrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for i := 0; i < 200; i++ {
		require.NoError(t, store.Set(ctx, "k", payload{Value: 1}, time.Nanosecond))
		time.Sleep(time.Microsecond)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			var out payload
			_, _ = store.Get(ctx, "k", &out)
		}()
		go func() {
			defer wg.Done()
			_ = store.Set(ctx, "k", payload{Value: 2}, time.Minute)
		}()
		wg.Wait()

		var out payload
		hit, err := store.Get(ctx, "k", &out)
		require.NoError(t, err)
		require.True(t, hit, "a fresh write must not be reaped by the expiry of the value it replaced")
		assert.Equal(t, int64(2), out.Value)
	}
}
