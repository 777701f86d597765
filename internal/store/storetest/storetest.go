// Package storetest provides a Redis-backed store for package tests that
// need real atomic primitives.
package storetest

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"hiring-pipeline/internal/store/redisstore"
)

// NewRedis starts a miniredis server for the duration of t.
func NewRedis(t testing.TB) *redisstore.Store {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return redisstore.New(rdb, "test")
}
