package redisad

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tourism_api/internal/adapters/observability"
)

// Limiter is a fixed-window request limiter backed by Redis INCR+EXPIRE.
// The window key is created on first hit and expires with the window, so a
// restarted process shares state with its replicas.
type Limiter struct {
	c      *redis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewLimiter(addr, pass string, db, limit int, window time.Duration) *Limiter {
	return &Limiter{
		c:      redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		prefix: "rl",
		limit:  limit,
		window: window,
	}
}

// Allow reports whether the caller identified by key may proceed, and when
// blocked, how long until the window resets. A Redis error is returned to
// the caller, which decides whether to fail open.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	rkey := fmt.Sprintf("%s:%s", l.prefix, key)
	cnt, err := l.c.Incr(ctx, rkey).Result()
	if err != nil {
		observability.ObserveRateLimit("error")
		return false, 0, err
	}
	if cnt == 1 {
		_ = l.c.Expire(ctx, rkey, l.window).Err()
	}
	if cnt > int64(l.limit) {
		retry := l.window
		if ttl, err := l.c.TTL(ctx, rkey).Result(); err == nil && ttl > 0 {
			retry = ttl
		}
		observability.ObserveRateLimit("blocked")
		return false, retry, nil
	}
	observability.ObserveRateLimit("allowed")
	return true, 0, nil
}

func (l *Limiter) Close() error { return l.c.Close() }
