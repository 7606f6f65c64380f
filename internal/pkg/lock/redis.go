package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lease only when it still carries our owner
// token, so an expired-and-reacquired lease is never released by a stale
// holder.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

// RedisManager implements Manager as a TTL lease (SET NX EX). The TTL bounds
// how long a crashed holder can block other instances; it should exceed the
// longest expected job run.
type RedisManager struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisManager(client *redis.Client, ttl time.Duration) *RedisManager {
	return &RedisManager{client: client, ttl: ttl}
}

func (m *RedisManager) TryAcquire(ctx context.Context, key int64) (*Lock, bool, error) {
	leaseKey := fmt.Sprintf("lock:%d", key)
	token := uuid.NewString()

	acquired, err := m.client.SetNX(ctx, leaseKey, token, m.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire lease %s: %w", leaseKey, err)
	}
	if !acquired {
		return nil, false, nil
	}

	release := func(ctx context.Context) error {
		if err := m.client.Eval(ctx, releaseScript, []string{leaseKey}, token).Err(); err != nil {
			return fmt.Errorf("release lease %s: %w", leaseKey, err)
		}
		return nil
	}

	return NewLock(key, release), true, nil
}
