package analytics_test

import (
	"math"
	"testing"

	"fenrir/internal/analytics"
	"fenrir/internal/book"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSeries_Record_EmptyBookIsNaN(t *testing.T) {
	var ts analytics.TimeSeries
	b := book.New()

	ts.Record(1, b)

	require.Len(t, ts.T, 1)
	assert.True(t, math.IsNaN(ts.Mid[0]))
	assert.True(t, math.IsNaN(ts.Spread[0]))
	assert.True(t, math.IsNaN(ts.Imbalance[0]))
}

func TestTimeSeries_Record_PopulatedBook(t *testing.T) {
	var ts analytics.TimeSeries
	b := book.New()

	bid, err := book.NewOrder("bid", book.Buy, book.Limit, 99, 10, 1)
	require.NoError(t, err)
	ask, err := book.NewOrder("ask", book.Sell, book.Limit, 101, 5, 2)
	require.NoError(t, err)
	_, err = b.PlaceLimit(bid)
	require.NoError(t, err)
	_, err = b.PlaceLimit(ask)
	require.NoError(t, err)

	ts.Record(5, b)

	assert.Equal(t, []int64{5}, ts.T)
	assert.Equal(t, 100.0, ts.Mid[0])
	assert.Equal(t, 2.0, ts.Spread[0])
	assert.InDelta(t, 5.0/15.0, ts.Imbalance[0], 1e-9)
}

func TestImbalance_UndefinedWhenEmpty(t *testing.T) {
	b := book.New()
	_, ok := analytics.Imbalance(b, 3)
	assert.False(t, ok)
}
