package cache

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/jon4hz/attendance/internal/config"
)

// LoginThrottlePrefix is the key prefix of failed login counters.
const LoginThrottlePrefix = "login-failures-"

// LoginThrottle counts failed logins per username.
// Each failure extends the window, so the counter expires once no failure
// happened for a whole window.
type LoginThrottle struct {
	failures *PrefixedCache[int]
	max      int
	window   time.Duration
}

// NewLoginThrottle creates a throttle backed by the configured cache engine.
func NewLoginThrottle(cacheCfg *config.CacheConfig, authCfg *config.AuthConfig) *LoginThrottle {
	return &LoginThrottle{
		failures: NewPrefixedCache[int](newCacheInstanceByType(cacheCfg), LoginThrottlePrefix),
		max:      authCfg.MaxFailedLogins,
		window:   authCfg.LockoutWindow,
	}
}

func normalize(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Allowed reports whether another login attempt is permitted for the username.
// Cache errors are logged and never lock a user out.
func (l *LoginThrottle) Allowed(ctx context.Context, username string) bool {
	if l.max <= 0 {
		return true
	}
	count, err := l.failures.Get(ctx, normalize(username))
	if err != nil {
		return true
	}
	return count < l.max
}

// Fail records a failed login for the username.
func (l *LoginThrottle) Fail(ctx context.Context, username string) {
	if l.max <= 0 {
		return
	}
	key := normalize(username)
	count, err := l.failures.Get(ctx, key)
	if err != nil {
		count = 0
	}
	count++
	if err := l.failures.Set(ctx, key, count, store.WithExpiration(l.window)); err != nil {
		log.Warn("failed to record failed login", "username", username, "error", err)
		return
	}
	if count == l.max {
		log.Warn("login locked after repeated failures", "username", username, "window", l.window)
	}
}

// Reset forgets the failed logins of the username.
func (l *LoginThrottle) Reset(ctx context.Context, username string) {
	if l.max <= 0 {
		return
	}
	if err := l.failures.Delete(ctx, normalize(username)); err != nil {
		log.Debug("failed to reset login failures", "username", username, "error", err)
	}
}
