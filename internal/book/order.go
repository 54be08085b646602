// Package book implements a price-time priority central limit order book:
// price levels keyed by a balanced tree, FIFO queues per level, and an
// order index for O(1) cancel/modify lookup.
package book

import (
	"errors"
	"fmt"
)

// Side is one of Buy or Sell.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "BUY"
	}
	return "SELL"
}

// Kind distinguishes a resting limit order from a sweep-only market order.
// This replaces a runtime "is market" marker with an explicit tagged field,
// so dispatch in PlaceOrder-style callers never has to inspect dynamic state.
type Kind int

const (
	Limit Kind = iota
	Market
)

func (k Kind) String() string {
	if k == Limit {
		return "LIMIT"
	}
	return "MARKET"
}

// ErrInvalidOrder is returned when an order is constructed or placed with a
// non-positive price or quantity.
var ErrInvalidOrder = errors.New("book: invalid order")

// Order is a resting or incoming instruction to trade. Quantity mutates as
// the order trades; ID, Side, and the resting Price are immutable once the
// order is placed.
type Order struct {
	ID    string
	Side  Side
	Kind  Kind
	Price float64
	Qty   uint64
	TS    int64
}

// NewOrder validates and constructs an Order. A non-positive price or
// quantity fails with ErrInvalidOrder and no Order is returned.
func NewOrder(id string, side Side, kind Kind, price float64, qty uint64, ts int64) (*Order, error) {
	if price <= 0 || qty == 0 {
		return nil, fmt.Errorf("%w: id=%s price=%v qty=%d", ErrInvalidOrder, id, price, qty)
	}
	return &Order{ID: id, Side: side, Kind: kind, Price: price, Qty: qty, TS: ts}, nil
}

// Fill is an immutable execution record. Taker is the incoming aggressor;
// Maker is the resting order it traded against.
type Fill struct {
	TakerOrderID string
	MakerOrderID string
	Price        float64
	Qty          uint64
}
