package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finplan/backend/config"
)

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), config.RedisConfig{URL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	mr, client := newMiniredis(t)
	c := NewRedisCache(client, time.Minute)

	_, ok := c.Get(ctx, "calc:v1:sip")
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "calc:v1:sip", []byte(`{"MaturityValue":1}`)))
	got, ok := c.Get(ctx, "calc:v1:sip")
	require.True(t, ok)
	assert.JSONEq(t, `{"MaturityValue":1}`, string(got))
	assert.True(t, c.HealthCheck(ctx))

	mr.FastForward(2 * time.Minute)
	_, ok = c.Get(ctx, "calc:v1:sip")
	assert.False(t, ok, "entries expire after the ttl")
}

func TestRedisCache_ServerDown(t *testing.T) {
	mr, client := newMiniredis(t)
	c := NewRedisCache(client, time.Minute)
	mr.Close()

	_, ok := c.Get(context.Background(), "any")
	assert.False(t, ok)
	assert.Error(t, c.Set(context.Background(), "any", []byte("x")))
	assert.False(t, c.HealthCheck(context.Background()))
}

func TestRedisCounter(t *testing.T) {
	ctx := context.Background()
	mr, client := newMiniredis(t)
	counter := NewRedisCounter(client, "ratelimit:")

	for want := 1; want <= 3; want++ {
		n, err := counter.Hit(ctx, "10.0.0.1", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}

	n, err := counter.Hit(ctx, "10.0.0.2", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "keys are counted independently")

	mr.FastForward(61 * time.Second)
	n, err = counter.Hit(ctx, "10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "a new window starts after expiry")
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	_, err := NewRedisClient(context.Background(), config.RedisConfig{URL: "127.0.0.1:1"})
	assert.Error(t, err)
}
