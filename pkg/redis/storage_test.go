package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/htmlsaver/pkg/redis"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd {
	args := m.Called(ctx, key, value, expiration)
	return goredis.NewStatusResult(args.String(0), args.Error(1))
}

func (m *mockClient) Ping(ctx context.Context) *goredis.StatusCmd {
	args := m.Called(ctx)
	return goredis.NewStatusResult(args.String(0), args.Error(1))
}

func TestStorage_Put(t *testing.T) {
	t.Parallel()

	t.Run("stores content and content type", func(t *testing.T) {
		t.Parallel()

		client := &mockClient{}
		client.On("Set", mock.Anything, "hs:v1/home.html", []byte("<p>hi</p>"), time.Hour).Return("OK", nil).Once()
		client.On("Set", mock.Anything, "hs:v1/home.html:content_type", "text/html", time.Hour).Return("OK", nil).Once()

		store := redis.NewStorage(client, redis.WithKeyPrefix("hs:"), redis.WithTTL(time.Hour))
		require.NoError(t, store.Put(context.Background(), "v1/home.html", []byte("<p>hi</p>"), "text/html"))
		client.AssertExpectations(t)
	})

	t.Run("skips empty content type", func(t *testing.T) {
		t.Parallel()

		client := &mockClient{}
		client.On("Set", mock.Anything, "a.html", []byte("x"), time.Duration(0)).Return("OK", nil).Once()

		store := redis.NewStorage(client)
		require.NoError(t, store.Put(context.Background(), "a.html", []byte("x"), ""))
		client.AssertExpectations(t)
		client.AssertNumberOfCalls(t, "Set", 1)
	})

	t.Run("wraps set failure", func(t *testing.T) {
		t.Parallel()

		down := errors.New("connection refused")
		client := &mockClient{}
		client.On("Set", mock.Anything, "a.html", mock.Anything, mock.Anything).Return("", down).Once()

		store := redis.NewStorage(client)
		err := store.Put(context.Background(), "a.html", []byte("x"), "text/html")
		assert.ErrorIs(t, err, redis.ErrPutFailed)
		assert.ErrorIs(t, err, down)
		client.AssertNumberOfCalls(t, "Set", 1)
	})

	t.Run("wraps content type failure", func(t *testing.T) {
		t.Parallel()

		down := errors.New("readonly replica")
		client := &mockClient{}
		client.On("Set", mock.Anything, "a.html", mock.Anything, mock.Anything).Return("OK", nil).Once()
		client.On("Set", mock.Anything, "a.html"+redis.ContentTypeSuffix, mock.Anything, mock.Anything).Return("", down).Once()

		store := redis.NewStorage(client)
		err := store.Put(context.Background(), "a.html", []byte("x"), "text/html")
		assert.ErrorIs(t, err, redis.ErrPutFailed)
		assert.ErrorIs(t, err, down)
	})
}

func TestNewStorageFromConfig(t *testing.T) {
	t.Parallel()

	client := &mockClient{}
	client.On("Set", mock.Anything, "pfx:k", mock.Anything, 2*time.Minute).Return("OK", nil).Once()

	store := redis.NewStorageFromConfig(client, redis.Config{KeyPrefix: "pfx:", TTL: 2 * time.Minute})
	require.NoError(t, store.Put(context.Background(), "k", []byte("x"), ""))
	client.AssertExpectations(t)
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	ok := &mockClient{}
	ok.On("Ping", mock.Anything).Return("PONG", nil)
	assert.NoError(t, redis.Healthcheck(ok)(context.Background()))

	down := errors.New("no route to host")
	bad := &mockClient{}
	bad.On("Ping", mock.Anything).Return("", down)
	err := redis.Healthcheck(bad)(context.Background())
	assert.ErrorIs(t, err, redis.ErrHealthcheckFailed)
	assert.ErrorIs(t, err, down)
}

func TestConnectInvalidURL(t *testing.T) {
	t.Parallel()

	_, err := redis.Connect(context.Background(), redis.Config{ConnectionURL: "not-a-url://"})
	assert.ErrorIs(t, err, redis.ErrFailedToParseRedisConnString)
}
