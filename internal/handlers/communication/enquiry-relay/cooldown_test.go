// internal/handlers/communication/enquiry-relay/cooldown_test.go
package enquiryrelay

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Memory store
// ==========================

func TestMemoryCooldown_Reserve(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryCooldown()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	ok, _, err := store.Reserve(ctx, "192.0.2.1", 8*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(3 * time.Second)
	ok, remaining, err := store.Reserve(ctx, "192.0.2.1", 8*time.Second)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 5*time.Second, remaining)

	ok, _, _ = store.Reserve(ctx, "192.0.2.2", 8*time.Second)
	assert.True(t, ok, "other clients are unaffected")

	now = now.Add(5 * time.Second)
	ok, _, _ = store.Reserve(ctx, "192.0.2.1", 8*time.Second)
	assert.True(t, ok, "window has elapsed")
}

func TestMemoryCooldown_SweepsExpired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryCooldown()
	store.now = func() time.Time { return now }

	for i := 0; i < sweepThreshold; i++ {
		_, _, _ = store.Reserve(context.Background(), time.Duration(i).String(), time.Second)
	}
	require.Len(t, store.expires, sweepThreshold)

	now = now.Add(2 * time.Second)
	_, _, _ = store.Reserve(context.Background(), "fresh", time.Second)
	assert.Len(t, store.expires, 1)
}

func TestMemoryCooldown_Concurrent(t *testing.T) {
	store := NewMemoryCooldown()

	var wg sync.WaitGroup
	var mu sync.Mutex
	granted := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, _, _ := store.Reserve(context.Background(), "same-client", time.Minute)
			if ok {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, granted)
}

// ==========================
// Redis store
// ==========================

func TestRedisCooldown_Reserve(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisCooldown(client)
	ctx := context.Background()

	ok, _, err := store.Reserve(ctx, "192.0.2.1", 8*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, mr.Exists("enquiry:cooldown:192.0.2.1"))

	ok, remaining, err := store.Reserve(ctx, "192.0.2.1", 8*time.Second)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Greater(t, remaining, time.Duration(0))
	assert.LessOrEqual(t, remaining, 8*time.Second)

	mr.FastForward(9 * time.Second)
	ok, _, err = store.Reserve(ctx, "192.0.2.1", 8*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisCooldown_Errors(t *testing.T) {
	key := "enquiry:cooldown:192.0.2.1"

	t.Run("setnx fails", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectSetNX(key, "1", 8*time.Second).SetErr(errors.New("connection refused"))

		_, _, err := NewRedisCooldown(db).Reserve(context.Background(), "192.0.2.1", 8*time.Second)
		assert.ErrorContains(t, err, "reserve cooldown")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ttl lookup fails", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectSetNX(key, "1", 8*time.Second).SetVal(false)
		mock.ExpectPTTL(key).SetErr(errors.New("connection reset"))

		_, _, err := NewRedisCooldown(db).Reserve(context.Background(), "192.0.2.1", 8*time.Second)
		assert.ErrorContains(t, err, "read cooldown ttl")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("key without ttl", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectSetNX(key, "1", 8*time.Second).SetVal(false)
		mock.ExpectPTTL(key).SetVal(-1)

		ok, remaining, err := NewRedisCooldown(db).Reserve(context.Background(), "192.0.2.1", 8*time.Second)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 8*time.Second, remaining)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
