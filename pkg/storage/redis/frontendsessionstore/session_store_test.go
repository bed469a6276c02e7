/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package frontendsessionstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	dctest "github.com/ory/dockertest/v3"
	dc "github.com/ory/dockertest/v3/docker"
	redisapi "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/verifier-frontend/pkg/session"
	"github.com/trustbloc/verifier-frontend/pkg/storage/redis"
	"github.com/trustbloc/verifier-frontend/pkg/storage/redis/frontendsessionstore"
)

const (
	redisConnString  = "localhost:6389"
	dockerRedisImage = "redis"
	dockerRedisTag   = "alpine3.17"
	defaultTTL       = 3600
)

func TestSessionStore(t *testing.T) {
	pool, redisResource := startRedisContainer(t)
	defer func() {
		require.NoError(t, pool.Purge(redisResource), "failed to purge Redis resource")
	}()

	client, err := redis.New([]string{redisConnString})
	assert.NoError(t, err)

	store := frontendsessionstore.New(client, defaultTTL)

	record := &session.Record{
		PresentationID:          "presentation-1",
		Nonce:                   "nonce-1",
		EphemeralECDHPrivateJWK: "protected-jwk",
	}

	t.Run("Get not exist", func(t *testing.T) {
		_, err := store.Get(context.Background(), "absent")
		require.ErrorIs(t, err, session.ErrDataNotFound)
	})

	t.Run("Set and get", func(t *testing.T) {
		require.NoError(t, store.Set(context.Background(), "session-1", record))

		got, err := store.Get(context.Background(), "session-1")
		require.NoError(t, err)
		require.Equal(t, record, got)
	})

	t.Run("Set twice is last-write-wins", func(t *testing.T) {
		require.NoError(t, store.Set(context.Background(), "session-2", record))

		updated := &session.Record{
			PresentationID:          "presentation-2",
			Nonce:                   "nonce-2",
			EphemeralECDHPrivateJWK: "protected-jwk-2",
		}

		require.NoError(t, store.Set(context.Background(), "session-2", updated))

		got, err := store.Get(context.Background(), "session-2")
		require.NoError(t, err)
		require.Equal(t, updated, got)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Set(context.Background(), "session-3", record))
		require.NoError(t, store.Delete(context.Background(), "session-3"))

		_, err := store.Get(context.Background(), "session-3")
		require.ErrorIs(t, err, session.ErrDataNotFound)
	})

	t.Run("Delete absent is not an error", func(t *testing.T) {
		require.NoError(t, store.Delete(context.Background(), "never-written"))
	})

	t.Run("Keys", func(t *testing.T) {
		require.NoError(t, store.Set(context.Background(), "session-keys-1", record))
		require.NoError(t, store.Set(context.Background(), "session-keys-2", record))

		keys, err := store.Keys(context.Background())
		require.NoError(t, err)
		assert.Contains(t, keys, session.ID("session-keys-1"))
		assert.Contains(t, keys, session.ID("session-keys-2"))
	})

	t.Run("Get expired", func(t *testing.T) {
		storeExpired := frontendsessionstore.New(client, 1)

		require.NoError(t, storeExpired.Set(context.Background(), "session-expired", record))

		time.Sleep(time.Second * 2)

		_, err := storeExpired.Get(context.Background(), "session-expired")
		require.ErrorIs(t, err, session.ErrDataNotFound)
	})
}

func waitForRedisToBeUp() error {
	return backoff.Retry(pingRedis, backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Second), 30))
}

func pingRedis() error {
	rdb := redisapi.NewClient(&redisapi.Options{
		Addr: redisConnString,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return rdb.Ping(ctx).Err()
}

func startRedisContainer(t *testing.T) (*dctest.Pool, *dctest.Resource) {
	t.Helper()

	pool, err := dctest.NewPool("")
	require.NoError(t, err)

	redisResource, err := pool.RunWithOptions(&dctest.RunOptions{
		Repository: dockerRedisImage,
		Tag:        dockerRedisTag,
		PortBindings: map[dc.Port][]dc.PortBinding{
			"6379/tcp": {{HostIP: "", HostPort: "6389"}},
		},
	})
	require.NoError(t, err)

	require.NoError(t, waitForRedisToBeUp())

	return pool, redisResource
}
