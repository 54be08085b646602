package book_test

import (
	"testing"

	"fenrir/internal/book"

	"github.com/stretchr/testify/assert"
)

// Scenario 7: realized PnL on a long round trip.
func TestPortfolio_RealizedPnL_LongRoundTrip(t *testing.T) {
	p := book.NewPortfolio(0)

	p.OnFill(book.Fill{TakerOrderID: "t", MakerOrderID: "m", Price: 100, Qty: 10}, book.Buy)
	assert.Equal(t, int64(10), p.Position)
	assert.Equal(t, 100.0, p.AvgCost)

	p.OnFill(book.Fill{TakerOrderID: "t", MakerOrderID: "m", Price: 101, Qty: 10}, book.Sell)
	assert.Equal(t, int64(0), p.Position)
	assert.InDelta(t, 10.0, p.RealizedPnL, 1e-9)
}

func TestPortfolio_ShortCoverAndFlip(t *testing.T) {
	p := book.NewPortfolio(0)

	p.OnFill(book.Fill{Price: 100, Qty: 5}, book.Sell)
	assert.Equal(t, int64(-5), p.Position)
	assert.Equal(t, 100.0, p.AvgCost)

	// Cover the short and flip long with a single buy.
	p.OnFill(book.Fill{Price: 98, Qty: 8}, book.Buy)
	assert.Equal(t, int64(3), p.Position)
	assert.InDelta(t, 10.0, p.RealizedPnL, 1e-9) // (100-98)*5
	assert.Equal(t, 98.0, p.AvgCost)             // reset on flip
}

func TestPortfolio_FeeDeductedOnBothSides(t *testing.T) {
	p := book.NewPortfolio(0.01)
	p.OnFill(book.Fill{Price: 10, Qty: 100}, book.Buy)
	assert.InDelta(t, -1001.0, p.Cash, 1e-9)

	p.OnFill(book.Fill{Price: 11, Qty: 100}, book.Sell)
	assert.InDelta(t, -1001.0+1099.0, p.Cash, 1e-9)
}

func TestPortfolio_MarkToMarket_UndefinedWithoutMid(t *testing.T) {
	p := book.NewPortfolio(0)
	_, ok := p.MarkToMarket(0, false)
	assert.False(t, ok)
}

func TestPortfolio_MarkToMarket_Long(t *testing.T) {
	p := book.NewPortfolio(0)
	p.OnFill(book.Fill{Price: 100, Qty: 10}, book.Buy)

	mtm, ok := p.MarkToMarket(105, true)
	assert.True(t, ok)
	assert.InDelta(t, 50.0, mtm, 1e-9)
}
