package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/SGK112/CRM-sub005/pkg/cryptox"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultRedisTTL   = 10 * time.Second
	redisRetryBackoff = 25 * time.Millisecond
)

// unlockScript deletes the key only while it still holds our token, so a
// lease that expired and was taken by another replica is left alone.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a Locker backed by SET NX PX leases.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedis connects to url and checks it with a PING.
func NewRedis(url string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisFromClient(rdb, ttl), nil
}

func NewRedisFromClient(rdb *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultRedisTTL
	}
	return &Redis{rdb: rdb, ttl: ttl}
}

// Lock polls SET NX until it wins the lease or ctx ends. The lease expires
// after the TTL even if the holder dies without unlocking.
func (r *Redis) Lock(ctx context.Context, key string) (func(), error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return nil, err
	}

	ticker := time.NewTicker(redisRetryBackoff)
	defer ticker.Stop()

	for {
		ok, err := r.rdb.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("lock: redis SETNX %s: %w", key, err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %w", ErrNotAcquired, key, ctx.Err())
		case <-ticker.C:
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// Fresh context: the caller's may already be done.
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = unlockScript.Run(ctx, r.rdb, []string{key}, token).Err()
		})
	}, nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}
