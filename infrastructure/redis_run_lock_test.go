package infrastructure

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis test in short mode")
	}

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
			Labels: map[string]string{
				"test":      "treasury-run-lock",
				"test-name": t.Name(),
				"cleanup":   "auto",
			},
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Warning: Failed to terminate redis container: %v", err)
		}
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client, err := NewRedisClient(ctx, "redis://"+endpoint+"/0")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client
}

func TestRedisRunLock(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()

	first := NewRedisRunLock(client, "treasury:test:lock", time.Minute)
	second := NewRedisRunLock(client, "treasury:test:lock", time.Minute)

	require.NoError(t, first.Acquire(ctx))
	assert.ErrorIs(t, second.Acquire(ctx), ErrLockHeld)

	ttl, err := client.PTTL(ctx, "treasury:test:lock").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	// A non-holder release must not drop someone else's lock
	require.NoError(t, second.Release(ctx))
	exists, err := client.Exists(ctx, "treasury:test:lock").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)

	require.NoError(t, first.Release(ctx))
	exists, err = client.Exists(ctx, "treasury:test:lock").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), exists)

	require.NoError(t, second.Acquire(ctx))
	require.NoError(t, second.Release(ctx))
}

func TestRedisRunLock_ExpiredLockIsNotStolenBack(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()

	first := NewRedisRunLock(client, "treasury:test:expiry", 100*time.Millisecond)
	require.NoError(t, first.Acquire(ctx))

	time.Sleep(300 * time.Millisecond)

	second := NewRedisRunLock(client, "treasury:test:expiry", time.Minute)
	require.NoError(t, second.Acquire(ctx))

	// first's token no longer matches, so its release leaves second's lock alone
	require.NoError(t, first.Release(ctx))
	holder, err := client.Get(ctx, "treasury:test:expiry").Result()
	require.NoError(t, err)
	assert.NotEmpty(t, holder)

	require.NoError(t, second.Release(ctx))
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "not-a-url://")
	assert.Error(t, err)
}
