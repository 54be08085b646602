package strategy_test

import (
	"testing"

	"fenrir/internal/book"
	"fenrir/internal/strategy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTWAPExecutor_SlicesEvenlyAndTerminates(t *testing.T) {
	tw := strategy.NewTWAPExecutor("twap", strategy.TWAPConfig{
		Side: book.Sell, Qty: 100, Start: 0, End: 40, TickInterval: 10,
	})
	b := book.New()

	var totalQty uint64
	var ticks int
	for now := int64(0); now <= 50; now += 10 {
		actions := tw.OnTick(now, b)
		for _, a := range actions {
			require.Equal(t, strategy.ActionSubmit, a.Type)
			require.Equal(t, book.Market, a.Order.Kind)
			require.Equal(t, book.Sell, a.Order.Side)
			totalQty += a.Order.Qty
			ticks++
		}
	}

	assert.Equal(t, uint64(100), totalQty)
	assert.GreaterOrEqual(t, ticks, 1)
}

func TestTWAPExecutor_IgnoresSnapshotsFinerThanTickInterval(t *testing.T) {
	tw := strategy.NewTWAPExecutor("twap", strategy.TWAPConfig{
		Side: book.Sell, Qty: 100, Start: 0, End: 40, TickInterval: 10,
	})
	b := book.New()

	var totalQty uint64
	var fires int
	for now := int64(0); now <= 40; now++ {
		actions := tw.OnTick(now, b)
		for _, a := range actions {
			require.Equal(t, strategy.ActionSubmit, a.Type)
			totalQty += a.Order.Qty
			fires++
		}
	}

	// Snapshots fire every tick, but TickInterval is 10: the executor must
	// still only slice at its own cadence (now=0,10,20,30,40), not once per
	// snapshot, or it would front-load the whole parent order.
	assert.Equal(t, 5, fires)
	assert.Equal(t, uint64(100), totalQty)
}

func TestTWAPExecutor_NoActionBeforeStart(t *testing.T) {
	tw := strategy.NewTWAPExecutor("twap", strategy.TWAPConfig{
		Side: book.Buy, Qty: 10, Start: 100, End: 200, TickInterval: 10,
	})
	b := book.New()

	actions := tw.OnTick(0, b)
	assert.Empty(t, actions)
}

func TestTWAPExecutor_DoneAfterFullyExecuted(t *testing.T) {
	tw := strategy.NewTWAPExecutor("twap", strategy.TWAPConfig{
		Side: book.Buy, Qty: 1, Start: 0, End: 10, TickInterval: 10,
	})
	b := book.New()

	first := tw.OnTick(0, b)
	require.Len(t, first, 1)
	assert.Equal(t, uint64(1), first[0].Order.Qty)

	second := tw.OnTick(10, b)
	assert.Empty(t, second)
}
