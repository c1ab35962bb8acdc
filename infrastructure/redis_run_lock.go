package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// ErrLockHeld is returned by Acquire when another holder owns the key
var ErrLockHeld = errors.New("run lock is held by another process")

// releaseScript deletes the key only if it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisRunLock guards a run against overlapping executions across hosts
type RedisRunLock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	token  string
}

// NewRedisRunLock creates a lock on key. The TTL bounds how long a crashed
// holder can block the next run.
func NewRedisRunLock(client *redis.Client, key string, ttl time.Duration) *RedisRunLock {
	return &RedisRunLock{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

// NewRedisClient parses a redis:// URL and verifies the connection
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// Acquire takes the lock or returns ErrLockHeld
func (l *RedisRunLock) Acquire(ctx context.Context) error {
	token := uuid.New().String()

	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to acquire run lock %s: %w", l.key, err)
	}
	if !ok {
		holder, err := l.client.Get(ctx, l.key).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			log.WithError(err).Warn("Failed to read run lock holder")
		}
		log.WithFields(log.Fields{
			"key":    l.key,
			"holder": holder,
		}).Warn("Run lock already held")
		return ErrLockHeld
	}

	l.token = token
	log.WithFields(log.Fields{
		"key": l.key,
		"ttl": l.ttl.String(),
	}).Info("Acquired run lock")
	return nil
}

// Release drops the lock if this instance still owns it
func (l *RedisRunLock) Release(ctx context.Context) error {
	if l.token == "" {
		return nil
	}

	deleted, err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Int()
	if err != nil {
		return fmt.Errorf("failed to release run lock %s: %w", l.key, err)
	}
	l.token = ""

	if deleted == 0 {
		log.WithField("key", l.key).Warn("Run lock expired before release")
		return nil
	}

	log.WithField("key", l.key).Info("Released run lock")
	return nil
}
