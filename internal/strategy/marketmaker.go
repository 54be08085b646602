package strategy

import "fenrir/internal/book"

// MarketMakerConfig configures the plain symmetric market maker.
type MarketMakerConfig struct {
	TickSize           float64
	HalfSpreadTicks    int
	Size               uint64
	TickInterval       int64
	InventorySkewTicks int
}

// MarketMaker is a simple symmetric quoter: one bid and one ask around mid,
// refreshed every TickInterval ticks, with a fixed inventory skew and no
// volatility or imbalance terms. Kept alongside AdaptiveMarketMaker as the
// simpler baseline strategy the original simulator also shipped.
type MarketMaker struct {
	*Base
	cfg MarketMakerConfig

	bidID, askID string
	lastQuoteT   int64
}

func NewMarketMaker(name string, cfg MarketMakerConfig) *MarketMaker {
	mm := &MarketMaker{
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

func (mm *MarketMaker) OnTick(now int64, b *book.Book) []Action {
	if now-mm.lastQuoteT < mm.cfg.TickInterval {
		return nil
	}
	mid, ok := b.Midprice()
	if !ok {
		return nil
	}

	skew := 0
	switch {
	case mm.Portfolio().Position > 0:
		skew = -mm.cfg.InventorySkewTicks
	case mm.Portfolio().Position < 0:
		skew = mm.cfg.InventorySkewTicks
	}

	bidPx := mid - float64(mm.cfg.HalfSpreadTicks-skew)*mm.cfg.TickSize
	askPx := mid + float64(mm.cfg.HalfSpreadTicks+skew)*mm.cfg.TickSize

	actions := []Action{
		{Time: now, Type: ActionCancel, OrderID: mm.bidID},
		{Time: now, Type: ActionCancel, OrderID: mm.askID},
	}

	if bidOrder, err := book.NewOrder(mm.bidID, book.Buy, book.Limit, bidPx, mm.cfg.Size, mm.nextTS(now)); err == nil {
		actions = append(actions, Action{Time: now, Type: ActionSubmit, Order: bidOrder})
	}
	if askOrder, err := book.NewOrder(mm.askID, book.Sell, book.Limit, askPx, mm.cfg.Size, mm.nextTS(now)); err == nil {
		actions = append(actions, Action{Time: now, Type: ActionSubmit, Order: askOrder})
	}

	mm.lastQuoteT = now
	return actions
}
