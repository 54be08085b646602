package book

import "github.com/rs/zerolog/log"

// MarketResult reports the fills a market order produced and how much of
// its quantity could not be filled, since a market order never rests and
// would otherwise leave the caller unable to distinguish a full fill from
// a partial one.
type MarketResult struct {
	Fills    []Fill
	Leftover uint64
}

// PlaceLimit matches the incoming order against the opposite side while it
// crosses, then rests any remainder at its price. Fills are returned in
// execution order.
func (b *Book) PlaceLimit(o *Order) ([]Fill, error) {
	if o.Price <= 0 || o.Qty == 0 {
		return nil, ErrInvalidOrder
	}
	fills := b.sweep(o, crossesLimit)
	if o.Qty > 0 {
		b.rest(o)
	}
	return fills, nil
}

// PlaceMarket matches the incoming order against all available liquidity on
// the opposite side regardless of price, as if the aggressor's price were
// +infinity (buy) or 0 (sell). It never rests; any unfilled quantity is
// reported as Leftover rather than silently discarded.
func (b *Book) PlaceMarket(o *Order) (MarketResult, error) {
	if o.Qty == 0 {
		return MarketResult{}, ErrInvalidOrder
	}
	fills := b.sweep(o, crossesMarket)
	return MarketResult{Fills: fills, Leftover: o.Qty}, nil
}

func crossesLimit(aggr *Order, oppositePrice float64) bool {
	if aggr.Side == Buy {
		return oppositePrice <= aggr.Price
	}
	return oppositePrice >= aggr.Price
}

func crossesMarket(*Order, float64) bool { return true }

// sweep walks the opposite side's best level repeatedly, consuming resting
// orders in FIFO order, while gate reports whether the current best
// opposite price still crosses the aggressor. It mutates aggr.Qty in place.
func (b *Book) sweep(aggr *Order, gate func(*Order, float64) bool) []Fill {
	var fills []Fill
	opp := b.oppositeTree(aggr.Side)

	for aggr.Qty > 0 {
		lvl, ok := opp.MinMut()
		if !ok || !gate(aggr, lvl.Price) {
			break
		}

		for aggr.Qty > 0 && len(lvl.Orders) > 0 {
			maker := lvl.Orders[0]
			traded := min(aggr.Qty, maker.Qty)

			fills = append(fills, Fill{
				TakerOrderID: aggr.ID,
				MakerOrderID: maker.ID,
				Price:        lvl.Price,
				Qty:          traded,
			})

			aggr.Qty -= traded
			maker.Qty -= traded
			lvl.AggregateQty -= traded

			if maker.Qty == 0 {
				lvl.popHead()
				delete(b.index, maker.ID)
			}
		}

		if len(lvl.Orders) == 0 {
			opp.Delete(lvl)
		}
	}

	return fills
}

// rest inserts a limit order with remaining quantity at the tail of its
// side's level, creating the level if it does not already exist.
func (b *Book) rest(o *Order) {
	levels := b.sideTree(o.Side)

	lvl, ok := levels.GetMut(&Level{Price: o.Price})
	if !ok {
		lvl = newLevel(o.Price)
		levels.Set(lvl)
	}
	lvl.append(o)
	b.index[o.ID] = indexEntry{side: o.Side, price: o.Price}
}

func (b *Book) warnStaleIndex(id string) {
	log.Warn().Str("orderID", id).Msg("order index pointed at a missing level, self-healing")
}
