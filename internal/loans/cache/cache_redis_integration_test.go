//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nftpawn/internal/loans/cache"
	"nftpawn/pkg/testutil/containers"
)

func TestRedisCache(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	rc := containers.NewRedisContainer(t)
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		c := cache.NewRedis(rc.Client, time.Hour)

		_, ok := c.Get(ctx, "erc20:0xdai")
		assert.False(t, ok)

		c.Set(ctx, "erc20:0xdai", `{"symbol":"DAI","decimals":18}`)
		val, ok := c.Get(ctx, "erc20:0xdai")
		assert.True(t, ok)
		assert.Equal(t, `{"symbol":"DAI","decimals":18}`, val)
	})

	t.Run("entries expire", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		c := cache.NewRedis(rc.Client, 50*time.Millisecond)

		c.Set(ctx, "erc20:0xdai", "v")
		time.Sleep(100 * time.Millisecond)

		_, ok := c.Get(ctx, "erc20:0xdai")
		assert.False(t, ok)
	})

	t.Run("keys are namespaced", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		c := cache.NewRedis(rc.Client, time.Hour)

		c.Set(ctx, "erc20:0xdai", "v")
		keys, err := rc.Client.Keys(ctx, "nftpawn:tokenmeta:*").Result()
		require.NoError(t, err)
		assert.Len(t, keys, 1)
	})
}
