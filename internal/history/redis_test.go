package history

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T, capacity int) (*miniredis.Miniredis, *RedisStore) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisStore(client, capacity)
}

func TestRedisStore_AppendTrimsToCapacity(t *testing.T) {
	mr, store := setupRedisStore(t, 3)
	ctx := context.Background()

	var window []float64
	for i := 1; i <= 5; i++ {
		got, err := store.Append(ctx, sample("farm-1", i))
		require.NoError(t, err)
		window = oxygen(got)
	}
	assert.Equal(t, []float64{3, 4, 5}, window)

	items, err := mr.List(Key("farm-1"))
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestRedisStore_Recent(t *testing.T) {
	_, store := setupRedisStore(t, 24)
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		_, err := store.Append(ctx, sample("farm-1", i))
		require.NoError(t, err)
	}
	_, err := store.Append(ctx, sample("farm-2", 42))
	require.NoError(t, err)

	got, err := store.Recent(ctx, "farm-1", 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, oxygen(got))
	assert.Equal(t, sample("farm-1", 4).Timestamp, got[1].Timestamp)

	got, err = store.Recent(ctx, "farm-2", 10)
	require.NoError(t, err)
	assert.Equal(t, []float64{42}, oxygen(got))

	got, err = store.Recent(ctx, "missing", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisStore_CorruptEntry(t *testing.T) {
	mr, store := setupRedisStore(t, 24)
	_, err := mr.Push(Key("farm-1"), "not json")
	require.NoError(t, err)

	_, err = store.Recent(context.Background(), "farm-1", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode reading")
}

func TestRedisStore_Unavailable(t *testing.T) {
	mr, store := setupRedisStore(t, 24)
	mr.Close()

	_, err := store.Append(context.Background(), sample("farm-1", 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "append history for farm-1")
}
