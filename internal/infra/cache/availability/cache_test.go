package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryKey(t *testing.T) {
	date := time.Date(2026, 10, 20, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, "availability:v3:2026-10-20:120", EntryKey(3, date, 120))
	assert.NotEqual(t, EntryKey(3, date, 120), EntryKey(4, date, 120))
	assert.NotEqual(t, EntryKey(3, date, 120), EntryKey(3, date, 90))
}

func TestNopCache(t *testing.T) {
	var c NopCache
	ctx := context.Background()

	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, gen, time.Now(), 120, nil))
	slots, ok, err := c.Get(ctx, gen, time.Now(), 120)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, slots)
	assert.NoError(t, c.Invalidate(ctx))
}
