package cache

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryRoundTrip(t *testing.T) {
	c := NewMemory(4)
	ctx := context.Background()

	_, ok := c.Get(ctx, "erc20:0xdai")
	assert.False(t, ok)

	c.Set(ctx, "erc20:0xdai", `{"symbol":"DAI","decimals":18}`)
	val, ok := c.Get(ctx, "erc20:0xdai")
	assert.True(t, ok)
	assert.Equal(t, `{"symbol":"DAI","decimals":18}`, val)
}

func TestMemoryEvictsOldestAtCapacity(t *testing.T) {
	c := NewMemory(3)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		c.Set(ctx, fmt.Sprintf("key-%d", i), "v")
	}

	_, ok := c.Get(ctx, "key-0")
	assert.False(t, ok, "oldest entry evicted")
	for i := 1; i < 4; i++ {
		_, ok := c.Get(ctx, fmt.Sprintf("key-%d", i))
		assert.True(t, ok)
	}
}

func TestMemoryOverwriteDoesNotGrow(t *testing.T) {
	c := NewMemory(2)
	ctx := context.Background()

	c.Set(ctx, "a", "1")
	c.Set(ctx, "b", "2")
	c.Set(ctx, "a", "3")

	val, ok := c.Get(ctx, "a")
	assert.True(t, ok)
	assert.Equal(t, "3", val)
	_, ok = c.Get(ctx, "b")
	assert.True(t, ok, "overwriting must not evict")
}
