// internal/handlers/communication/enquiry-relay/cooldown.go
package enquiryrelay

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const cooldownKeyPrefix = "enquiry:cooldown:"

// CooldownStore limits submissions to one per window per client key.
type CooldownStore interface {
	// Reserve claims the window for key. When the key is already held it
	// returns false and the time left on the window.
	Reserve(ctx context.Context, key string, window time.Duration) (bool, time.Duration, error)
}

// RedisCooldown shares the window across replicas.
type RedisCooldown struct {
	client redis.Cmdable
}

func NewRedisCooldown(client redis.Cmdable) *RedisCooldown {
	return &RedisCooldown{client: client}
}

func (r *RedisCooldown) Reserve(ctx context.Context, key string, window time.Duration) (bool, time.Duration, error) {
	k := cooldownKeyPrefix + key
	ok, err := r.client.SetNX(ctx, k, "1", window).Result()
	if err != nil {
		return false, 0, fmt.Errorf("reserve cooldown: %w", err)
	}
	if ok {
		return true, 0, nil
	}

	ttl, err := r.client.PTTL(ctx, k).Result()
	if err != nil {
		return false, 0, fmt.Errorf("read cooldown ttl: %w", err)
	}
	if ttl < 0 {
		ttl = window
	}
	return false, ttl, nil
}

// sweepThreshold is the entry count above which expired keys are dropped.
const sweepThreshold = 1024

// MemoryCooldown is the single-process store used when redis is disabled.
type MemoryCooldown struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

func NewMemoryCooldown() *MemoryCooldown {
	return &MemoryCooldown{
		expires: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (m *MemoryCooldown) Reserve(_ context.Context, key string, window time.Duration) (bool, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if until, held := m.expires[key]; held && now.Before(until) {
		return false, until.Sub(now), nil
	}

	if len(m.expires) >= sweepThreshold {
		for k, until := range m.expires {
			if !now.Before(until) {
				delete(m.expires, k)
			}
		}
	}
	m.expires[key] = now.Add(window)
	return true, 0, nil
}
