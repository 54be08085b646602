// Package metrics accumulates per-strategy execution quality counters,
// grounded on the teacher's book-keeping counters and on the execution
// metrics module of the simulator this engine drives.
package metrics

import "fenrir/internal/book"

// Execution is the set of volume counters tracked for one strategy.
// MarketVolume accumulates the qty of every fill the engine produces
// during a run, not only fills the strategy participated in — a baseline
// for share-of-flow analysis.
type Execution struct {
	MarketVolume uint64
	FilledQty    uint64
	BuyQty       uint64
	SellQty      uint64
}

// RecordMarketVolume adds the qty of every fill to the baseline counter.
func (e *Execution) RecordMarketVolume(fills []book.Fill) {
	for _, f := range fills {
		e.MarketVolume += f.Qty
	}
}

// OnFill records a fill in which the owning strategy held side.
func (e *Execution) OnFill(fill book.Fill, side book.Side) {
	e.FilledQty += fill.Qty
	if side == book.Buy {
		e.BuyQty += fill.Qty
	} else {
		e.SellQty += fill.Qty
	}
}
