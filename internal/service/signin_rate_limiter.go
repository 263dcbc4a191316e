package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SigninRateLimiter limita los intentos de inicio de sesion por clave.
type SigninRateLimiter interface {
	Allow(ctx context.Context, key string) bool
}

type memorySigninRateLimiter struct {
	mu        sync.Mutex
	window    time.Duration
	max       int
	hits      map[string][]time.Time
	lastSweep time.Time
}

// NewMemorySigninRateLimiter crea un rate limiter de ventana deslizante en memoria.
func NewMemorySigninRateLimiter(window time.Duration, max int) SigninRateLimiter {
	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &memorySigninRateLimiter{
		window: window,
		max:    max,
		hits:   make(map[string][]time.Time),
	}
}

func (l *memorySigninRateLimiter) Allow(_ context.Context, key string) bool {
	key = normalizeKey(key)
	if key == "" {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now().UTC()
	cutoff := now.Add(-l.window)
	if now.Sub(l.lastSweep) >= l.window {
		l.sweep(cutoff)
		l.lastSweep = now
	}
	kept := prune(l.hits[key], cutoff)
	if len(kept) >= l.max {
		l.hits[key] = kept
		return false
	}
	l.hits[key] = append(kept, now)
	return true
}

// sweep borra las claves sin intentos dentro de la ventana.
func (l *memorySigninRateLimiter) sweep(cutoff time.Time) {
	for key, hits := range l.hits {
		if kept := prune(hits, cutoff); len(kept) == 0 {
			delete(l.hits, key)
		} else {
			l.hits[key] = kept
		}
	}
}

func prune(hits []time.Time, cutoff time.Time) []time.Time {
	kept := hits[:0]
	for _, ts := range hits {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	return kept
}

const redisSigninAllowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

type redisSigninRateLimiter struct {
	client redisEvaler
	window time.Duration
	max    int
	prefix string
}

// NewRedisSigninRateLimiter usa un contador de ventana fija compartido entre instancias.
func NewRedisSigninRateLimiter(client *redis.Client, window time.Duration, max int) SigninRateLimiter {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &redisSigninRateLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: "auth:signin:",
	}
}

func (l *redisSigninRateLimiter) Allow(ctx context.Context, key string) bool {
	if l == nil || l.client == nil {
		return true
	}
	key = normalizeKey(key)
	if key == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	seconds := int(l.window.Seconds())
	if seconds <= 0 {
		seconds = 60
	}
	count, err := l.client.Eval(ctx, redisSigninAllowScript, []string{l.prefix + key}, seconds).Int()
	if err != nil {
		// redis caido: no bloquear el login
		return true
	}
	return count <= l.max
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
