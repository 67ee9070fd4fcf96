package session

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lycosidae/internal/auth/models"
	"lycosidae/internal/sentinel"
)

func newRedisTestStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, "test")
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store := newRedisTestStore(t)
	ctx := context.Background()

	user := models.User{ID: "1", Username: "alice", Email: "alice@gmail.com", PhoneNumber: "+5511999999999"}
	require.NoError(t, store.SaveUser(ctx, user))
	require.NoError(t, store.SaveToken(ctx, "tok-123"))

	got, err := store.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	token, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
}

func TestRedisStoreAbsentEntries(t *testing.T) {
	store := newRedisTestStore(t)
	ctx := context.Background()

	_, err := store.CurrentUser(ctx)
	assert.True(t, errors.Is(err, sentinel.ErrNotFound))

	_, err = store.Token(ctx)
	assert.True(t, errors.Is(err, sentinel.ErrNotFound))
}

func TestRedisStoreClear(t *testing.T) {
	store := newRedisTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveUser(ctx, models.User{ID: "1"}))
	require.NoError(t, store.Clear(ctx))

	_, err := store.CurrentUser(ctx)
	assert.True(t, errors.Is(err, sentinel.ErrNotFound))
}

func TestRedisStorePrefixIsolation(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	a := NewRedisStore(client, "a")
	b := NewRedisStore(client, "b")
	ctx := context.Background()

	require.NoError(t, a.SaveUser(ctx, models.User{ID: "1", Username: "alice"}))

	_, err := b.CurrentUser(ctx)
	assert.True(t, errors.Is(err, sentinel.ErrNotFound), "prefixes keep sessions apart")
}
