package strategy_test

import (
	"testing"

	"fenrir/internal/book"
	"fenrir/internal/strategy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adaptiveBook(t *testing.T) *book.Book {
	t.Helper()
	b := book.New()
	bid, err := book.NewOrder("seed_bid", book.Buy, book.Limit, 99, 5, 1)
	require.NoError(t, err)
	ask, err := book.NewOrder("seed_ask", book.Sell, book.Limit, 101, 5, 1)
	require.NoError(t, err)
	_, err = b.PlaceLimit(bid)
	require.NoError(t, err)
	_, err = b.PlaceLimit(ask)
	require.NoError(t, err)
	return b
}

func TestAdaptiveMarketMaker_QuotesWidenWithVolatility(t *testing.T) {
	cfg := strategy.AdaptiveMMConfig{
		TickSize: 1, BaseHalfSpreadTicks: 2, Size: 10, TickInterval: 1,
		InvTarget: 0, InvLimit: 1000, InvK: 0,
		VolWindow: 5, VolK: 4,
		ImbK: 0,
	}
	mm := strategy.NewAdaptiveMarketMaker("amm", cfg)
	b := adaptiveBook(t)

	first := mm.OnTick(0, b)
	require.Len(t, first, 4)
	firstBidPx := first[2].Order.Price

	// An ask at 100 rests without crossing the 99 bid and moves mid from 100
	// to 99.5; with VolK 4 the half spread grows from 2 to 4 ticks.
	ask2, _ := book.NewOrder("move_ask", book.Sell, book.Limit, 100, 5, 2)
	b.PlaceLimit(ask2)

	second := mm.OnTick(1, b)
	require.Len(t, second, 4)
	secondBidPx := second[2].Order.Price

	assert.NotEqual(t, firstBidPx, secondBidPx)
}

func TestAdaptiveMarketMaker_InventoryLimitStopsOneSide(t *testing.T) {
	cfg := strategy.AdaptiveMMConfig{
		TickSize: 1, BaseHalfSpreadTicks: 2, Size: 10, TickInterval: 1,
		InvTarget: 0, InvLimit: 5, InvK: 0,
		VolWindow: 5, VolK: 0,
		ImbK: 0,
	}
	mm := strategy.NewAdaptiveMarketMaker("amm", cfg)
	b := adaptiveBook(t)

	mm.Portfolio().OnFill(book.Fill{TakerOrderID: "x", MakerOrderID: "amm_bid", Price: 100, Qty: 10}, book.Buy)

	actions := mm.OnTick(0, b)
	var sawBuy bool
	for _, a := range actions {
		if a.Type == strategy.ActionSubmit && a.Order.Side == book.Buy {
			sawBuy = true
		}
	}
	assert.False(t, sawBuy)
}

func TestAdaptiveMarketMaker_NoQuoteWithoutMid(t *testing.T) {
	cfg := strategy.AdaptiveMMConfig{TickSize: 1, BaseHalfSpreadTicks: 2, Size: 10, TickInterval: 1, VolWindow: 5}
	mm := strategy.NewAdaptiveMarketMaker("amm", cfg)
	b := book.New()

	actions := mm.OnTick(0, b)
	assert.Empty(t, actions)
}
