// Package analytics records per-snapshot book statistics as append-only,
// co-indexed time series, grounded on the simulator's analytics module.
package analytics

import (
	"math"

	"fenrir/internal/book"
)

// TimeSeries holds the snapshot history: time, mid, spread, and top-3-level
// imbalance, each co-indexed by snapshot sequence.
type TimeSeries struct {
	T         []int64
	Mid       []float64
	Spread    []float64
	Imbalance []float64
}

// Record appends one snapshot's worth of statistics. Spread and imbalance
// are NaN when undefined.
func (ts *TimeSeries) Record(now int64, b *book.Book) {
	ts.T = append(ts.T, now)

	if mid, ok := b.Midprice(); ok {
		ts.Mid = append(ts.Mid, mid)
	} else {
		ts.Mid = append(ts.Mid, math.NaN())
	}

	if bid, ok := b.BestBid(); ok {
		if ask, ok := b.BestAsk(); ok {
			ts.Spread = append(ts.Spread, ask-bid)
		} else {
			ts.Spread = append(ts.Spread, math.NaN())
		}
	} else {
		ts.Spread = append(ts.Spread, math.NaN())
	}

	if im, ok := Imbalance(b, 3); ok {
		ts.Imbalance = append(ts.Imbalance, im)
	} else {
		ts.Imbalance = append(ts.Imbalance, math.NaN())
	}
}

// Imbalance is the normalized difference of top-k bid vs ask quantity,
// undefined when total top-k quantity is zero.
func Imbalance(b *book.Book, levels int) (float64, bool) {
	d := b.Depth(levels)

	var bidsQty, asksQty uint64
	for _, l := range d.Bids {
		bidsQty += l.Qty
	}
	for _, l := range d.Asks {
		asksQty += l.Qty
	}

	total := bidsQty + asksQty
	if total == 0 {
		return 0, false
	}
	return (float64(bidsQty) - float64(asksQty)) / float64(total), true
}
