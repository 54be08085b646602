package book

import (
	"github.com/rs/zerolog/log"
	"github.com/tidwall/btree"
)

// indexEntry is the order index: order id -> (side, resting price), the
// handle cancel/modify use to locate an order's level in O(log n).
type indexEntry struct {
	side  Side
	price float64
}

// Book holds the two sides of a single instrument: bids sorted with the
// highest price first, asks sorted with the lowest price first. Each side
// is a balanced tree of price Levels, per the production-density guidance
// of preferring an ordered map over a linear-scanned price array.
type Book struct {
	bids *btree.BTreeG[*Level]
	asks *btree.BTreeG[*Level]

	index map[string]indexEntry
}

// New constructs an empty book.
func New() *Book {
	return &Book{
		bids:  btree.NewBTreeG(func(a, b *Level) bool { return a.Price > b.Price }),
		asks:  btree.NewBTreeG(func(a, b *Level) bool { return a.Price < b.Price }),
		index: make(map[string]indexEntry),
	}
}

func (b *Book) sideTree(side Side) *btree.BTreeG[*Level] {
	if side == Buy {
		return b.bids
	}
	return b.asks
}

func (b *Book) oppositeTree(side Side) *btree.BTreeG[*Level] {
	if side == Buy {
		return b.asks
	}
	return b.bids
}

// BestBid returns the highest resting bid price, if any.
func (b *Book) BestBid() (float64, bool) {
	lvl, ok := b.bids.Min()
	if !ok {
		return 0, false
	}
	return lvl.Price, true
}

// BestAsk returns the lowest resting ask price, if any.
func (b *Book) BestAsk() (float64, bool) {
	lvl, ok := b.asks.Min()
	if !ok {
		return 0, false
	}
	return lvl.Price, true
}

// Midprice is the arithmetic mean of best bid and best ask, undefined
// unless both sides are present.
func (b *Book) Midprice() (float64, bool) {
	bid, okBid := b.BestBid()
	ask, okAsk := b.BestAsk()
	if !okBid || !okAsk {
		return 0, false
	}
	return (bid + ask) / 2, true
}

// TopOfBook is the convenience aggregate of best bid, best ask, and mid.
type TopOfBook struct {
	BestBid  float64
	HasBid   bool
	BestAsk  float64
	HasAsk   bool
	Mid      float64
	HasMid   bool
}

func (b *Book) TopOfBook() TopOfBook {
	var top TopOfBook
	top.BestBid, top.HasBid = b.BestBid()
	top.BestAsk, top.HasAsk = b.BestAsk()
	top.Mid, top.HasMid = b.Midprice()
	return top
}

// DepthLevel is one (price, aggregate qty) pair in a Depth result.
type DepthLevel struct {
	Price float64
	Qty   uint64
}

// DepthResult is the top-k levels on each side, best price first.
type DepthResult struct {
	Bids []DepthLevel
	Asks []DepthLevel
}

// Depth returns up to `levels` entries per side, in priority order. Fewer
// than `levels` entries is expected on a thin book.
func (b *Book) Depth(levels int) DepthResult {
	var out DepthResult
	if levels <= 0 {
		return out
	}
	b.bids.Scan(func(lvl *Level) bool {
		out.Bids = append(out.Bids, DepthLevel{Price: lvl.Price, Qty: lvl.AggregateQty})
		return len(out.Bids) < levels
	})
	b.asks.Scan(func(lvl *Level) bool {
		out.Asks = append(out.Asks, DepthLevel{Price: lvl.Price, Qty: lvl.AggregateQty})
		return len(out.Asks) < levels
	})
	return out
}

// LogBook emits a debug-level snapshot of top-of-book depth, grounded on
// the teacher's LogBook wire command.
func (b *Book) LogBook() {
	top := b.TopOfBook()
	log.Debug().
		Bool("hasBid", top.HasBid).
		Float64("bestBid", top.BestBid).
		Bool("hasAsk", top.HasAsk).
		Float64("bestAsk", top.BestAsk).
		Msg("book snapshot")
}
