package sim

import (
	"container/heap"
	"math"

	"fenrir/internal/analytics"
	"fenrir/internal/book"
	"fenrir/internal/metrics"
	"fenrir/internal/strategy"

	"github.com/rs/zerolog/log"
)

// SnapshotEntry is one recorded book state: time, top-of-book, and 5-level
// depth.
type SnapshotEntry struct {
	T     int64
	Top   book.TopOfBook
	Depth book.DepthResult
}

// Result accumulates everything a run produces: every fill in dispatch
// order, every snapshot taken, and, once at least one SNAPSHOT has fired,
// a co-indexed mark-to-market PnL series per strategy name.
type Result struct {
	Fills     []book.Fill
	Snapshots []SnapshotEntry

	PnLTimes  []int64
	PnLSeries map[string][]float64

	Analytics analytics.TimeSeries
	Metrics   map[string]*metrics.Execution
}

// Simulator owns the book, the event queue, and the strategy set. It is
// single-threaded and cooperative: the only mutation path into the book is
// the dispatch loop below.
type Simulator struct {
	book       *book.Book
	queue      eventHeap
	seq        int64
	strategies []strategy.Strategy

	owners     map[string]strategy.Strategy
	ownerSides map[string]book.Side

	result *Result
}

// New constructs a simulator over b, driving the given strategies. PnL
// series are pre-initialized (one empty slice per strategy name) so the
// result's PnLSeries map never needs a nil-check downstream, even for a run
// that never reaches a SNAPSHOT.
func New(b *book.Book, strategies []strategy.Strategy) *Simulator {
	s := &Simulator{
		book:       b,
		strategies: strategies,
		owners:     make(map[string]strategy.Strategy),
		ownerSides: make(map[string]book.Side),
		result: &Result{
			PnLSeries: make(map[string][]float64),
			Metrics:   make(map[string]*metrics.Execution),
		},
	}
	for _, st := range strategies {
		s.result.PnLSeries[st.Name()] = nil
		s.result.Metrics[st.Name()] = &metrics.Execution{}
	}
	heap.Init(&s.queue)
	return s
}

func (s *Simulator) schedule(e *Event) {
	e.Seq = s.seq
	s.seq++
	heap.Push(&s.queue, e)
}

// ScheduleSubmit schedules a SUBMIT of o at o's own ts.
func (s *Simulator) ScheduleSubmit(o *book.Order) {
	s.schedule(&Event{Time: o.TS, Type: Submit, Order: o})
}

// ScheduleCancel schedules a CANCEL of orderID at time t.
func (s *Simulator) ScheduleCancel(t int64, orderID string) {
	s.schedule(&Event{Time: t, Type: Cancel, OrderID: orderID})
}

// ScheduleModify schedules a MODIFY of orderID at time t.
func (s *Simulator) ScheduleModify(t int64, orderID string, opts book.ModifyOptions) {
	s.schedule(&Event{Time: t, Type: Modify, OrderID: orderID, Modify: opts})
}

// ScheduleSnapshot schedules a SNAPSHOT at time t.
func (s *Simulator) ScheduleSnapshot(t int64) {
	s.schedule(&Event{Time: t, Type: Snapshot})
}

// SchedulePeriodicSnapshots schedules one SNAPSHOT every interval ticks in
// [start, end], inclusive, a convenience the original example scripts
// constructed by hand.
func (s *Simulator) SchedulePeriodicSnapshots(start, end, interval int64) {
	for t := start; t <= end; t += interval {
		s.ScheduleSnapshot(t)
	}
}

// Run drains the queue while its head's time is <= until, dispatching each
// event in (time, seq) order, and returns the accumulated result.
func (s *Simulator) Run(until int64) *Result {
	for s.queue.Len() > 0 {
		if s.queue[0].Time > until {
			break
		}
		e := heap.Pop(&s.queue).(*Event)
		now := e.Time

		switch e.Type {
		case Submit:
			s.dispatchSubmit(now, e.Order)
		case Cancel:
			s.book.Cancel(e.OrderID)
			delete(s.owners, e.OrderID)
			delete(s.ownerSides, e.OrderID)
		case Modify:
			s.book.Modify(e.OrderID, e.Modify, now)
		case Snapshot:
			s.dispatchSnapshot(now)
		}
	}
	return s.result
}

func (s *Simulator) dispatchSubmit(now int64, o *book.Order) {
	if owner := s.findOwner(o.ID); owner != nil {
		s.owners[o.ID] = owner
		s.ownerSides[o.ID] = o.Side
	}

	var fills []book.Fill
	if o.Kind == book.Market {
		res, err := s.book.PlaceMarket(o)
		if err != nil {
			log.Error().Err(err).Str("orderID", o.ID).Msg("market order rejected")
			return
		}
		fills = res.Fills
	} else {
		var err error
		fills, err = s.book.PlaceLimit(o)
		if err != nil {
			log.Error().Err(err).Str("orderID", o.ID).Msg("limit order rejected")
			return
		}
	}

	s.result.Fills = append(s.result.Fills, fills...)
	if len(fills) == 0 {
		return
	}

	for _, st := range s.strategies {
		s.result.Metrics[st.Name()].RecordMarketVolume(fills)
	}

	for _, f := range fills {
		s.attributeFill(f, f.MakerOrderID)
		s.attributeFill(f, f.TakerOrderID)
	}
}

func (s *Simulator) attributeFill(f book.Fill, orderID string) {
	owner, ok := s.owners[orderID]
	if !ok {
		return
	}
	side, ok := s.ownerSides[orderID]
	if !ok {
		return
	}
	owner.Portfolio().OnFill(f, side)
	s.result.Metrics[owner.Name()].OnFill(f, side)
}

func (s *Simulator) findOwner(orderID string) strategy.Strategy {
	for _, st := range s.strategies {
		if _, ok := st.OwnedIDs()[orderID]; ok {
			return st
		}
	}
	return nil
}

func (s *Simulator) dispatchSnapshot(now int64) {
	s.result.Analytics.Record(now, s.book)
	s.result.Snapshots = append(s.result.Snapshots, SnapshotEntry{
		T:     now,
		Top:   s.book.TopOfBook(),
		Depth: s.book.Depth(5),
	})

	for _, st := range s.strategies {
		for _, a := range st.OnTick(now, s.book) {
			s.rescheduleAction(a)
		}
	}

	mid, hasMid := s.book.Midprice()
	s.result.PnLTimes = append(s.result.PnLTimes, now)
	for _, st := range s.strategies {
		var pnl float64
		if hasMid {
			pnl, _ = st.Portfolio().MarkToMarket(mid, true)
		} else {
			pnl = math.NaN()
		}
		s.result.PnLSeries[st.Name()] = append(s.result.PnLSeries[st.Name()], pnl)
	}
}

func (s *Simulator) rescheduleAction(a strategy.Action) {
	switch a.Type {
	case strategy.ActionSubmit:
		s.schedule(&Event{Time: a.Time, Type: Submit, Order: a.Order})
	case strategy.ActionCancel:
		s.schedule(&Event{Time: a.Time, Type: Cancel, OrderID: a.OrderID})
	case strategy.ActionModify:
		s.schedule(&Event{Time: a.Time, Type: Modify, OrderID: a.OrderID, Modify: a.Modify})
	}
}
