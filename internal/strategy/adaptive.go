package strategy

import (
	"math"

	"fenrir/internal/analytics"
	"fenrir/internal/book"
)

// AdaptiveMMConfig configures the volatility- and inventory-aware market
// maker.
type AdaptiveMMConfig struct {
	TickSize            float64
	BaseHalfSpreadTicks int
	Size                uint64
	TickInterval        int64

	InvTarget int64
	InvLimit  int64
	InvK      float64

	VolWindow int
	VolK      float64

	ImbK float64
}

// AdaptiveMarketMaker widens its spread with recent mid volatility and adds
// an inventory term and a top-of-book imbalance term to the half spread.
// The combined skew is applied with the same sign to both sides, so it
// widens or narrows the quote pair around mid rather than shifting it; the
// inventory limit stops quoting the side that would grow the position.
type AdaptiveMarketMaker struct {
	*Base
	cfg AdaptiveMMConfig

	bidID, askID string
	lastQuoteT   int64
	midHist      []float64
}

func NewAdaptiveMarketMaker(name string, cfg AdaptiveMMConfig) *AdaptiveMarketMaker {
	mm := &AdaptiveMarketMaker{
		Base:       NewBase(name, 0),
		cfg:        cfg,
		bidID:      name + "_bid",
		askID:      name + "_ask",
		lastQuoteT: -1_000_000_000,
	}
	mm.own(mm.bidID)
	mm.own(mm.askID)
	return mm
}

func (mm *AdaptiveMarketMaker) OnTick(now int64, b *book.Book) []Action {
	if now-mm.lastQuoteT < mm.cfg.TickInterval {
		return nil
	}

	mid, ok := b.Midprice()
	if !ok {
		return nil
	}
	mm.recordMid(mid)

	halfSpread := mm.cfg.BaseHalfSpreadTicks + int(math.Floor(mm.cfg.VolK*mm.volProxy()/mm.cfg.TickSize))

	inv := mm.Portfolio().Position
	invSkew := int(math.Floor(mm.cfg.InvK * float64(inv-mm.cfg.InvTarget)))
	maxSkew := mm.cfg.BaseHalfSpreadTicks + 5
	if invSkew > maxSkew {
		invSkew = maxSkew
	}
	if invSkew < -maxSkew {
		invSkew = -maxSkew
	}

	imbSkew := 0
	if im, ok := analytics.Imbalance(b, 3); ok {
		imbSkew = int(math.Floor(mm.cfg.ImbK * im))
	}

	totalSkew := invSkew + imbSkew
	bidPx := mid - float64(halfSpread+totalSkew)*mm.cfg.TickSize
	askPx := mid + float64(halfSpread+totalSkew)*mm.cfg.TickSize

	quoteBid := inv < mm.cfg.InvLimit
	quoteAsk := inv > -mm.cfg.InvLimit

	actions := []Action{
		{Time: now, Type: ActionCancel, OrderID: mm.bidID},
		{Time: now, Type: ActionCancel, OrderID: mm.askID},
	}

	if quoteBid {
		if o, err := book.NewOrder(mm.bidID, book.Buy, book.Limit, bidPx, mm.cfg.Size, mm.nextTS(now)); err == nil {
			actions = append(actions, Action{Time: now, Type: ActionSubmit, Order: o})
		}
	}
	if quoteAsk {
		if o, err := book.NewOrder(mm.askID, book.Sell, book.Limit, askPx, mm.cfg.Size, mm.nextTS(now)); err == nil {
			actions = append(actions, Action{Time: now, Type: ActionSubmit, Order: o})
		}
	}

	mm.lastQuoteT = now
	return actions
}

func (mm *AdaptiveMarketMaker) recordMid(mid float64) {
	mm.midHist = append(mm.midHist, mid)
	if len(mm.midHist) > mm.cfg.VolWindow {
		mm.midHist = mm.midHist[1:]
	}
}

// volProxy is the mean absolute mid change over the recorded window.
func (mm *AdaptiveMarketMaker) volProxy() float64 {
	if len(mm.midHist) < 2 {
		return 0
	}
	var sum float64
	for i := 1; i < len(mm.midHist); i++ {
		d := mm.midHist[i] - mm.midHist[i-1]
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum / float64(len(mm.midHist)-1)
}
