package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newLocker(t *testing.T, ttl time.Duration) *OriginLocker {
	t.Helper()

	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL is not set")
	}

	pool := NewRedisPool(url, zap.NewNop().Sugar())
	t.Cleanup(func() { _ = pool.Close() })

	return NewOriginLocker(pool, zap.NewNop().Sugar(), ttl)
}

func TestOriginLockerExcludesSecondHolder(t *testing.T) {
	l := newLocker(t, time.Minute)
	id := time.Now().UnixNano()

	unlock, err := l.Lock(context.Background(), id)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, id)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()

	again, err := l.Lock(context.Background(), id)
	require.NoError(t, err)
	again()
}

func TestOriginLockerExpires(t *testing.T) {
	l := newLocker(t, 100*time.Millisecond)
	id := time.Now().UnixNano()

	_, err := l.Lock(context.Background(), id)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	unlock, err := l.Lock(ctx, id)
	require.NoError(t, err)
	unlock()
}
