package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	otelMocks "cowork/infras/otel/mocks"
	"cowork/shared/cache"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedSpace struct {
	ID     string `json:"id"`
	Seater int    `json:"seater"`
}

func TestRedisCache_Get(t *testing.T) {
	client, mock := redismock.NewClientMock()
	redisCache := cache.NewRedisCache(client, otelMocks.NewOtel())
	ctx := context.Background()

	mock.ExpectGet("space:get:s-1").SetVal(`{"id":"s-1","seater":3}`)
	mock.ExpectGet("space:get:s-2").RedisNil()
	mock.ExpectGet("auth:revoked:tok-1").SetVal("true")
	mock.ExpectGet("raw").SetVal("plain text")
	mock.ExpectGet("broken").SetVal("{")

	var space cachedSpace
	require.NoError(t, redisCache.Get(ctx, "space:get:s-1", &space))
	assert.Equal(t, cachedSpace{ID: "s-1", Seater: 3}, space)

	err := redisCache.Get(ctx, "space:get:s-2", &space)
	assert.True(t, errors.Is(err, cache.Nil))

	var revoked bool
	require.NoError(t, redisCache.Get(ctx, "auth:revoked:tok-1", &revoked))
	assert.True(t, revoked)

	var raw string
	require.NoError(t, redisCache.Get(ctx, "raw", &raw))
	assert.Equal(t, "plain text", raw)

	err = redisCache.Get(ctx, "broken", &space)
	require.Error(t, err)
	assert.False(t, errors.Is(err, cache.Nil))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Save(t *testing.T) {
	client, mock := redismock.NewClientMock()
	redisCache := cache.NewRedisCache(client, otelMocks.NewOtel())
	ctx := context.Background()

	mock.ExpectSet("space:get:s-1", []byte(`{"id":"s-1","seater":5}`), time.Minute).SetVal("OK")
	mock.ExpectSet("limiter:api:ip", []byte("3"), 30*time.Second).SetVal("OK")
	mock.ExpectSet("greeting", []byte("hello"), time.Second).SetErr(errors.New("READONLY"))

	require.NoError(t, redisCache.Save(ctx, "space:get:s-1", cachedSpace{ID: "s-1", Seater: 5}, 60))
	require.NoError(t, redisCache.Save(ctx, "limiter:api:ip", 3, 30))
	assert.Error(t, redisCache.Save(ctx, "greeting", "hello", 1))

	assert.Error(t, redisCache.Save(ctx, "bad", make(chan int), 1))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_DeleteAndClear(t *testing.T) {
	client, mock := redismock.NewClientMock()
	redisCache := cache.NewRedisCache(client, otelMocks.NewOtel())
	ctx := context.Background()

	mock.ExpectDel("space:get:s-1").SetVal(1)
	mock.ExpectScan(0, "space:gets*", 100).SetVal([]string{"space:gets:1:10", "space:gets:2:10"}, 0)
	mock.ExpectDel("space:gets:1:10", "space:gets:2:10").SetVal(2)
	mock.ExpectScan(0, "space:count*", 100).SetVal([]string{}, 0)

	require.NoError(t, redisCache.Delete(ctx, "space:get:s-1"))
	require.NoError(t, redisCache.Clear(ctx, "space:gets*"))
	require.NoError(t, redisCache.Clear(ctx, "space:count*"))

	assert.NoError(t, mock.ExpectationsWereMet())
}
