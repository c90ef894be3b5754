package redis

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const lockPrefix = "jtxboard:origin-lock:"

// Only the holder may release a lock.
var unlockScript = redis.NewScript(1, `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// OriginLocker holds per-origin locks in Redis so that reconciliation of one
// origin runs in at most one process. A lock expires after ttl if its holder
// dies.
type OriginLocker struct {
	pool   *redis.Pool
	logger *zap.SugaredLogger
	ttl    time.Duration
	retry  time.Duration
}

func NewOriginLocker(pool *redis.Pool, logger *zap.SugaredLogger, ttl time.Duration) *OriginLocker {
	return &OriginLocker{
		pool:   pool,
		logger: logger,
		ttl:    ttl,
		retry:  50 * time.Millisecond,
	}
}

func (l *OriginLocker) Lock(ctx context.Context, originID int64) (func(), error) {
	key := lockPrefix + strconv.FormatInt(originID, 10)
	token := uuid.NewString()

	for {
		ok, err := l.tryLock(ctx, key, token)
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}

		wait := l.retry + time.Duration(rand.Int63n(int64(l.retry)))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}

	return func() {
		if err := l.unlock(key, token); err != nil {
			l.logger.Errorw("failed releasing origin lock", "origin_id", originID, "err", err)
		}
	}, nil
}

func (l *OriginLocker) tryLock(ctx context.Context, key, token string) (bool, error) {
	conn, err := l.pool.GetContext(ctx)
	if err != nil {
		return false, fmt.Errorf("get redis connection: %w", err)
	}
	defer conn.Close()

	_, err = redis.String(conn.Do("SET", key, token, "NX", "PX", l.ttl.Milliseconds()))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, redis.ErrNil):
		return false, nil
	default:
		return false, fmt.Errorf("redis SET: %w", err)
	}
}

func (l *OriginLocker) unlock(key, token string) error {
	conn := l.pool.Get()
	defer conn.Close()

	if _, err := unlockScript.Do(conn, key, token); err != nil {
		return fmt.Errorf("redis unlock: %w", err)
	}

	return nil
}
