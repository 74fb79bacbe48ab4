package cache

import (
	"context"
	"testing"
	"time"

	"github.com/jon4hz/attendance/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestThrottle(max int, window time.Duration) *LoginThrottle {
	return NewLoginThrottle(
		&config.CacheConfig{Type: config.CacheTypeMemory},
		&config.AuthConfig{MaxFailedLogins: max, LockoutWindow: window},
	)
}

func TestLoginThrottle_LocksAfterMax(t *testing.T) {
	ctx := context.Background()
	l := newTestThrottle(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allowed(ctx, "alice"), "attempt %d", i+1)
		l.Fail(ctx, "alice")
	}
	assert.False(t, l.Allowed(ctx, "alice"))
	assert.False(t, l.Allowed(ctx, " ALICE "), "usernames are normalized")
	assert.True(t, l.Allowed(ctx, "bob"))
}

func TestLoginThrottle_Reset(t *testing.T) {
	ctx := context.Background()
	l := newTestThrottle(2, time.Minute)

	l.Fail(ctx, "alice")
	l.Fail(ctx, "alice")
	require.False(t, l.Allowed(ctx, "alice"))

	l.Reset(ctx, "alice")
	assert.True(t, l.Allowed(ctx, "alice"))
}

func TestLoginThrottle_Expires(t *testing.T) {
	ctx := context.Background()
	l := newTestThrottle(1, 50*time.Millisecond)

	l.Fail(ctx, "alice")
	require.False(t, l.Allowed(ctx, "alice"))

	assert.Eventually(t, func() bool {
		return l.Allowed(ctx, "alice")
	}, time.Second, 10*time.Millisecond)
}

func TestLoginThrottle_Disabled(t *testing.T) {
	ctx := context.Background()
	l := newTestThrottle(0, 0)

	for i := 0; i < 10; i++ {
		l.Fail(ctx, "alice")
	}
	assert.True(t, l.Allowed(ctx, "alice"))
}

func TestPrefixedCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewPrefixedCache[map[string]int](newMemoryCache[any](), "test-")

	_, err := c.Get(ctx, "missing")
	assert.Error(t, err)

	require.NoError(t, c.Set(ctx, "k", map[string]int{"a": 1}))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1}, got)

	require.NoError(t, c.Delete(ctx, "k"))
	_, err = c.Get(ctx, "k")
	assert.Error(t, err)
}
