// Package tests holds black-box scenarios over internal/book's public
// surface (Depth, PlaceLimit), one level up from the package's own unit
// tests, the way the original engine package's multi-level sweep scenarios
// were organized.
package tests

import (
	"testing"

	"fenrir/internal/book"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestOrderBook() *book.Book {
	return book.New()
}

// placeTestOrders inserts a batch of limit orders at a specific price/side,
// assigning each a distinct, increasing ts so FIFO order within the level
// matches insertion order.
func placeTestOrders(t *testing.T, b *book.Book, price float64, side book.Side, startTS int64, quantities ...uint64) {
	t.Helper()
	for i, qty := range quantities {
		o, err := book.NewOrder("test-id", side, book.Limit, price, qty, startTS+int64(i))
		require.NoError(t, err)
		_, err = b.PlaceLimit(o)
		require.NoError(t, err)
	}
}

func buildExpectedLevel(price float64, qty uint64) book.DepthLevel {
	return book.DepthLevel{Price: price, Qty: qty}
}

func TestPlaceOrder_Limit(t *testing.T) {
	b := createTestOrderBook()

	placeTestOrders(t, b, 99.0, book.Buy, 1, 100, 90, 80)
	placeTestOrders(t, b, 100.0, book.Sell, 1, 100, 90, 80)

	depth := b.Depth(5)
	assert.Equal(t, []book.DepthLevel{buildExpectedLevel(100.0, 270)}, depth.Asks)
	assert.Equal(t, []book.DepthLevel{buildExpectedLevel(99.0, 270)}, depth.Bids)
}

func TestPlaceOrder_Limit_MultipleLevels_WithMatch(t *testing.T) {
	b := createTestOrderBook()

	placeTestOrders(t, b, 99.0, book.Buy, 1, 100, 90, 80)
	placeTestOrders(t, b, 98.0, book.Buy, 10, 50)
	placeTestOrders(t, b, 100.0, book.Sell, 20, 100, 90)
	placeTestOrders(t, b, 101.0, book.Sell, 30, 20)

	depth := b.Depth(5)
	assert.Equal(t, []book.DepthLevel{
		buildExpectedLevel(100.0, 190), buildExpectedLevel(101.0, 20),
	}, depth.Asks)
	assert.Equal(t, []book.DepthLevel{
		buildExpectedLevel(99.0, 270), buildExpectedLevel(98.0, 50),
	}, depth.Bids)

	// Completely fills the first order at 100.0 (100), leaving the second
	// order (90) on the level.
	placeTestOrders(t, b, 100.0, book.Buy, 40, 100)
	depth = b.Depth(5)
	assert.Equal(t, []book.DepthLevel{
		buildExpectedLevel(100.0, 90), buildExpectedLevel(101.0, 20),
	}, depth.Asks)

	// Partial match leaves a remainder on 100.0.
	placeTestOrders(t, b, 100.0, book.Buy, 50, 20)
	depth = b.Depth(5)
	assert.Equal(t, []book.DepthLevel{
		buildExpectedLevel(100.0, 70), buildExpectedLevel(101.0, 20),
	}, depth.Asks)
}

func TestPlaceOrder_Limit_MultipleLevels_WithMatchSweep(t *testing.T) {
	b := createTestOrderBook()

	placeTestOrders(t, b, 99.0, book.Buy, 1, 100, 90, 80)
	placeTestOrders(t, b, 98.0, book.Buy, 10, 50)
	placeTestOrders(t, b, 100.0, book.Sell, 20, 100, 90)
	placeTestOrders(t, b, 101.0, book.Sell, 30, 20)

	// A limit price at 101.0 crosses both ask levels: fully sweeps 100.0
	// (190) and partially consumes 101.0.
	placeTestOrders(t, b, 101.0, book.Buy, 40, 200)
	depth := b.Depth(5)
	assert.Equal(t, []book.DepthLevel{
		buildExpectedLevel(101.0, 10),
	}, depth.Asks)

	// Finishes off the remaining liquidity on 101.0.
	placeTestOrders(t, b, 101.0, book.Buy, 50, 10)
	depth = b.Depth(5)
	assert.Empty(t, depth.Asks)
}
