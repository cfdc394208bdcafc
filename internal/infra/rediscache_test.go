package infra

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCacheSetGet(t *testing.T) {
	mr := miniredis.RunT(t)

	cache, err := NewRedisCache(mr.Addr())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("payload"), time.Minute))

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)
}

func TestRedisCacheMiss(t *testing.T) {
	mr := miniredis.RunT(t)

	cache, err := NewRedisCache(mr.Addr())
	require.NoError(t, err)

	_, err = cache.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCacheTTLExpiry(t *testing.T) {
	mr := miniredis.RunT(t)

	cache, err := NewRedisCache(mr.Addr())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Second))
	mr.FastForward(2 * time.Second)

	_, err = cache.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCacheUnreachable(t *testing.T) {
	_, err := NewRedisCache("127.0.0.1:1")
	assert.Error(t, err)
}
