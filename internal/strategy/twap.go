package strategy

import (
	"fmt"

	"fenrir/internal/book"
)

// TWAPConfig configures a time-weighted-average-price execution schedule:
// trade Qty shares on Side by End, slicing the remainder evenly over the
// ticks left each time it fires.
type TWAPConfig struct {
	Side         book.Side
	Qty          uint64
	Start        int64
	End          int64
	TickInterval int64
}

// TWAPExecutor slices a parent order into market-order children, sized so
// that a constant pace would exhaust the remaining quantity exactly at End.
// Each child is a fresh order id; TWAPExecutor does not track a resting
// order of its own, since market children fill immediately or not at all.
type TWAPExecutor struct {
	*Base
	cfg       TWAPConfig
	remaining uint64
	lastT     int64
	done      bool
}

func NewTWAPExecutor(name string, cfg TWAPConfig) *TWAPExecutor {
	return &TWAPExecutor{
		Base:      NewBase(name, 0),
		cfg:       cfg,
		remaining: cfg.Qty,
		lastT:     -1_000_000_000,
	}
}

func (tw *TWAPExecutor) OnTick(now int64, b *book.Book) []Action {
	if tw.done || now < tw.cfg.Start || now > tw.cfg.End || tw.remaining == 0 {
		return nil
	}
	if now-tw.lastT < tw.cfg.TickInterval {
		return nil
	}
	tw.lastT = now

	slicesLeft := (tw.cfg.End-now)/tw.cfg.TickInterval + 1
	if slicesLeft < 1 {
		slicesLeft = 1
	}

	qty := tw.remaining / uint64(slicesLeft)
	if qty < 1 {
		qty = 1
	}
	if qty > tw.remaining {
		qty = tw.remaining
	}

	id := fmt.Sprintf("%s_%d", tw.Name(), now)
	o, err := book.NewOrder(id, tw.cfg.Side, book.Market, 1.0, qty, tw.nextTS(now))
	if err != nil {
		return nil
	}
	tw.own(id)
	tw.remaining -= qty

	if now >= tw.cfg.End || tw.remaining == 0 {
		tw.done = true
	}

	return []Action{{Time: now, Type: ActionSubmit, Order: o}}
}
