package book

// ModifyOptions names the fields a Modify call wants to change. A nil
// pointer means "leave as is".
type ModifyOptions struct {
	NewPrice *float64
	NewQty   *uint64
}

// Modify applies the priority rules for an in-place order change.
//
// A pure quantity reduction (no price change, new qty strictly between 0
// and the current qty) decrements the order and its level's aggregate in
// place and preserves the order's position in its FIFO.
//
// Any other change — a price change, a quantity increase, or a reduction
// to exactly the current quantity — cancels the order and re-inserts it at
// the supplied ts, which sends it to the tail of its (possibly new) level.
// If the requested price or quantity after the change is non-positive, the
// re-insertion is rejected and Modify returns false; the prior cancel has
// already taken effect, so the order does not return to the book. Callers
// that need the order to survive a failed modify must validate before
// calling Modify.
func (b *Book) Modify(id string, opts ModifyOptions, ts int64) bool {
	entry, ok := b.index[id]
	if !ok {
		return false
	}

	levels := b.sideTree(entry.side)
	lvl, ok := levels.GetMut(&Level{Price: entry.price})
	if !ok {
		b.warnStaleIndex(id)
		delete(b.index, id)
		return false
	}

	var target *Order
	for _, o := range lvl.Orders {
		if o.ID == id {
			target = o
			break
		}
	}
	if target == nil {
		b.warnStaleIndex(id)
		delete(b.index, id)
		return false
	}

	if opts.NewPrice == nil && opts.NewQty != nil && *opts.NewQty > 0 && *opts.NewQty < target.Qty {
		delta := target.Qty - *opts.NewQty
		target.Qty = *opts.NewQty
		lvl.AggregateQty -= delta
		return true
	}

	newPrice := target.Price
	if opts.NewPrice != nil {
		newPrice = *opts.NewPrice
	}
	newQty := target.Qty
	if opts.NewQty != nil {
		newQty = *opts.NewQty
	}
	side := entry.side

	if !b.Cancel(id) {
		return false
	}
	if newPrice <= 0 || newQty == 0 {
		return false
	}

	b.rest(&Order{ID: id, Side: side, Kind: Limit, Price: newPrice, Qty: newQty, TS: ts})
	return true
}
