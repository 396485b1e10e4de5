package ratelimiter_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/apiguard/pkg/clock"
	"github.com/dmitrymomot/apiguard/pkg/ratelimiter"
)

func increment(r *ratelimiter.Record) *ratelimiter.Record {
	if r == nil {
		return &ratelimiter.Record{AttemptCount: 1, ExpiresAt: start + 1000}
	}
	r.AttemptCount++
	return r
}

func TestMemoryStore_Update(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("creates and updates records", func(t *testing.T) {
		store := ratelimiter.NewMemoryStore()

		rec, err := store.Update(ctx, "key", increment)
		require.NoError(t, err)
		assert.EqualValues(t, 1, rec.AttemptCount)

		rec, err = store.Update(ctx, "key", increment)
		require.NoError(t, err)
		assert.EqualValues(t, 2, rec.AttemptCount)

		stats := store.Stats()
		assert.Equal(t, int64(1), stats.RecordsCreated)
		assert.Equal(t, 1, stats.ActiveRecords)
	})

	t.Run("nil result deletes", func(t *testing.T) {
		store := ratelimiter.NewMemoryStore()

		_, err := store.Update(ctx, "key", increment)
		require.NoError(t, err)

		rec, err := store.Update(ctx, "key", func(*ratelimiter.Record) *ratelimiter.Record { return nil })
		require.NoError(t, err)
		assert.Nil(t, rec)

		got, err := store.Get(ctx, "key")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("callback receives a copy", func(t *testing.T) {
		store := ratelimiter.NewMemoryStore()

		_, err := store.Update(ctx, "key", increment)
		require.NoError(t, err)

		var leaked *ratelimiter.Record
		_, err = store.Update(ctx, "key", func(r *ratelimiter.Record) *ratelimiter.Record {
			leaked = r
			return r
		})
		require.NoError(t, err)

		leaked.AttemptCount = 99
		got, err := store.Get(ctx, "key")
		require.NoError(t, err)
		assert.EqualValues(t, 1, got.AttemptCount)
	})

	t.Run("respects cancelled context", func(t *testing.T) {
		store := ratelimiter.NewMemoryStore()

		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := store.Update(cctx, "key", increment)
		assert.ErrorIs(t, err, ratelimiter.ErrContextCancelled)
		assert.ErrorIs(t, store.Delete(cctx, "key"), ratelimiter.ErrContextCancelled)
		assert.Equal(t, 0, store.Stats().ActiveRecords)
	})
}

func TestMemoryStore_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("deletes existing record", func(t *testing.T) {
		store := ratelimiter.NewMemoryStore()

		_, err := store.Update(ctx, "key", increment)
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, "key"))
		assert.Equal(t, 0, store.Stats().ActiveRecords)
	})

	t.Run("delete non-existent key succeeds", func(t *testing.T) {
		store := ratelimiter.NewMemoryStore()
		assert.NoError(t, store.Delete(ctx, "non-existent"))
	})
}

func TestMemoryStore_StartStop(t *testing.T) {
	t.Parallel()

	t.Run("start and stop cleanup successfully", func(t *testing.T) {
		store := ratelimiter.NewMemoryStore(
			ratelimiter.WithCleanupInterval(50 * time.Millisecond),
		)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go func() {
			_ = store.Start(ctx)
		}()

		require.Eventually(t, func() bool { return store.Stats().IsRunning }, time.Second, 5*time.Millisecond)

		err := store.Stop()
		assert.NoError(t, err)
		assert.False(t, store.Stats().IsRunning)
	})

	t.Run("fails to start when already started", func(t *testing.T) {
		store := ratelimiter.NewMemoryStore(
			ratelimiter.WithCleanupInterval(50 * time.Millisecond),
		)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go func() {
			_ = store.Start(ctx)
		}()

		require.Eventually(t, func() bool { return store.Stats().IsRunning }, time.Second, 5*time.Millisecond)

		err := store.Start(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already started")

		_ = store.Stop()
	})

	t.Run("fails to stop when not started", func(t *testing.T) {
		store := ratelimiter.NewMemoryStore()

		err := store.Stop()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not started")
	})

	t.Run("fails to start with zero cleanup interval", func(t *testing.T) {
		store := ratelimiter.NewMemoryStore(
			ratelimiter.WithCleanupInterval(0),
		)

		err := store.Start(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not configured")
	})
}

func TestMemoryStore_Run(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(
		ratelimiter.WithCleanupInterval(50 * time.Millisecond),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- store.Run(ctx)()
	}()

	require.Eventually(t, func() bool { return store.Stats().IsRunning }, time.Second, 5*time.Millisecond)

	cancel()

	err := <-errCh
	assert.NoError(t, err)
	assert.False(t, store.Stats().IsRunning)
}

func TestMemoryStore_Cleanup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clk := clock.NewManual(start)
	cfg := ratelimiter.DefaultConfig()

	store := ratelimiter.NewMemoryStore(
		ratelimiter.WithCleanupInterval(10*time.Millisecond),
		ratelimiter.WithMemoryStoreClock(clk.Now),
	)
	limiter, err := ratelimiter.New(store, cfg, ratelimiter.WithClock(clk.Now))
	require.NoError(t, err)

	// One identifier blocked, one merely counting.
	for range 5 {
		_, err := limiter.RecordFailedAttempt(ctx, "blocked@example.com")
		require.NoError(t, err)
	}
	_, err = limiter.RecordFailedAttempt(ctx, "counting@example.com")
	require.NoError(t, err)
	require.Equal(t, 2, store.Stats().ActiveRecords)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		_ = store.Start(runCtx)
	}()
	defer func() { _ = store.Stop() }()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 2, store.Stats().ActiveRecords, "nothing has expired yet")

	clk.Advance(cfg.Window + time.Millisecond)

	assert.Eventually(t, func() bool {
		return store.Stats().ActiveRecords == 0
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, int64(2), store.Stats().RecordsExpired)
}

func TestMemoryStore_Healthcheck(t *testing.T) {
	t.Parallel()

	t.Run("healthy when cleanup disabled", func(t *testing.T) {
		store := ratelimiter.NewMemoryStore(
			ratelimiter.WithCleanupInterval(0),
		)
		assert.NoError(t, store.Healthcheck(context.Background()))
	})

	t.Run("unhealthy when cleanup configured but not running", func(t *testing.T) {
		store := ratelimiter.NewMemoryStore(
			ratelimiter.WithCleanupInterval(50 * time.Millisecond),
		)

		err := store.Healthcheck(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not running")
	})

	t.Run("healthy when cleanup running", func(t *testing.T) {
		store := ratelimiter.NewMemoryStore(
			ratelimiter.WithCleanupInterval(50 * time.Millisecond),
		)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go func() {
			_ = store.Start(ctx)
		}()

		require.Eventually(t, func() bool { return store.Stats().IsRunning }, time.Second, 5*time.Millisecond)
		assert.NoError(t, store.Healthcheck(context.Background()))

		_ = store.Stop()
	})
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("concurrent updates same key", func(t *testing.T) {
		store := ratelimiter.NewMemoryStore()

		goroutines := 50
		var wg sync.WaitGroup
		wg.Add(goroutines)

		for range goroutines {
			go func() {
				defer wg.Done()
				_, err := store.Update(ctx, "shared", increment)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		rec, err := store.Get(ctx, "shared")
		require.NoError(t, err)
		assert.EqualValues(t, goroutines, rec.AttemptCount)
		assert.Equal(t, int64(1), store.Stats().RecordsCreated)
	})

	t.Run("concurrent different keys", func(t *testing.T) {
		store := ratelimiter.NewMemoryStore()

		goroutines := 20
		var wg sync.WaitGroup
		wg.Add(goroutines)

		for i := range goroutines {
			go func(idx int) {
				defer wg.Done()
				key := "key-" + string(rune('a'+idx))

				for range 5 {
					_, err := store.Update(ctx, key, increment)
					assert.NoError(t, err)
				}

				if idx%2 == 0 {
					assert.NoError(t, store.Delete(ctx, key))
				}
			}(i)
		}
		wg.Wait()

		assert.Equal(t, goroutines/2, store.Stats().ActiveRecords)
	})
}
