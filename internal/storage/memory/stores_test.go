package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techjobs/harvester/internal/harvest"
)

func TestSummaryStoreLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewSummaryStore()

	require.NoError(t, store.Save(ctx, harvest.ListingSummary{Industry: "IT", URL: "u1"}))
	require.NoError(t, store.Save(ctx, harvest.ListingSummary{Industry: "Design", URL: "u2"}))
	assert.Len(t, store.All(), 2)

	require.NoError(t, store.DeleteAll(ctx))
	assert.Empty(t, store.All())
}

func TestItemStoreLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewItemStore()

	require.NoError(t, store.Save(ctx, harvest.ListingItem{Title: "a", URL: "u1"}))
	require.NoError(t, store.DeleteAll(ctx))
	require.NoError(t, store.Save(ctx, harvest.ListingItem{Title: "b", URL: "u2"}))

	items := store.All()
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].Title)
}

func TestStatisticsStoreLatest(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStatisticsStore()

	_, err := store.Latest(ctx)
	require.Error(t, err)

	first := harvest.Statistics{TotalJobsParsed: 10, LastFetch: time.Unix(1, 0).UTC()}
	second := harvest.Statistics{TotalJobsParsed: 20, LastFetch: time.Unix(2, 0).UTC()}
	require.NoError(t, store.Save(ctx, first))
	require.NoError(t, store.Save(ctx, second))

	latest, err := store.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, latest)
	assert.Len(t, store.All(), 2)
}
