// Package flow generates synthetic order flow for simulator runs: a seeded
// pseudo-Poisson process over discrete integer ticks, grounded on the
// simulator's synthetic flow generator.
package flow

import (
	"fmt"
	"math/rand"

	"fenrir/internal/book"
)

// FlowConfig parameterizes the synthetic order flow generator. Zero value
// is not useful; callers should set every field explicitly the way the
// original generator's dataclass defaults did.
type FlowConfig struct {
	Seed            int64
	IntensityPer100 float64
	MinQty          uint64
	MaxQty          uint64
	Tick            float64
	MaxTicksAway    int
	PMarket         float64
}

// ScheduledOrder pairs a generated order with the tick it should be
// submitted at.
type ScheduledOrder struct {
	T     int64
	Order *book.Order
}

// PoissonOrderFlow emits at most one order per integer tick, with
// probability min(1, IntensityPer100/100), using a single seeded rand
// source so the same seed always reproduces the same stream.
type PoissonOrderFlow struct {
	cfg FlowConfig
	rng *rand.Rand
	oid int
}

func NewPoissonOrderFlow(cfg FlowConfig) *PoissonOrderFlow {
	return &PoissonOrderFlow{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
}

func (f *PoissonOrderFlow) nextID() string {
	f.oid++
	return fmt.Sprintf("o%06d", f.oid)
}

// IterOrders generates the full order stream for ticks in [start, end]
// against a fixed reference mid. Non-market orders are placed strictly on
// the non-crossing side of refMid by construction: buys below, sells above.
func (f *PoissonOrderFlow) IterOrders(start, end int64, refMid float64) []ScheduledOrder {
	p := f.cfg.IntensityPer100 / 100.0
	if p > 1.0 {
		p = 1.0
	}

	var out []ScheduledOrder
	for t := start; t <= end; t++ {
		if f.rng.Float64() > p {
			continue
		}

		side := book.Sell
		if f.rng.Float64() < 0.5 {
			side = book.Buy
		}

		qty := f.randUint64Range(f.cfg.MinQty, f.cfg.MaxQty)

		isMarket := f.rng.Float64() < f.cfg.PMarket

		var kind book.Kind
		var price float64
		if isMarket {
			kind = book.Market
			price = 1.0
		} else {
			kind = book.Limit
			ticks := f.rng.Intn(f.cfg.MaxTicksAway) + 1
			if side == book.Buy {
				price = refMid - float64(ticks)*f.cfg.Tick
			} else {
				price = refMid + float64(ticks)*f.cfg.Tick
			}
		}

		o, err := book.NewOrder(f.nextID(), side, kind, price, qty, t)
		if err != nil {
			continue
		}
		out = append(out, ScheduledOrder{T: t, Order: o})
	}
	return out
}

func (f *PoissonOrderFlow) randUint64Range(lo, hi uint64) uint64 {
	if hi <= lo {
		return lo
	}
	return lo + uint64(f.rng.Int63n(int64(hi-lo+1)))
}
