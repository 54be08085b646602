package book

// Portfolio is a single-asset, single-owner accounting record: cash,
// signed position, average cost of the open position, realized PnL, and a
// flat per-share fee. It is constructed once per owner and mutated only by
// OnFill.
type Portfolio struct {
	Cash        float64
	Position    int64
	AvgCost     float64
	RealizedPnL float64
	FeePerShare float64
}

// NewPortfolio constructs a flat portfolio with the given flat fee.
func NewPortfolio(feePerShare float64) *Portfolio {
	return &Portfolio{FeePerShare: feePerShare}
}

// OnFill updates the portfolio for a fill in which the owner held mySide.
func (p *Portfolio) OnFill(fill Fill, mySide Side) {
	qty := float64(fill.Qty)
	px := fill.Price
	fee := p.FeePerShare * qty

	if mySide == Buy {
		p.Cash -= px*qty + fee
		newPos := p.Position + int64(fill.Qty)

		switch {
		case p.Position == 0:
			p.AvgCost = px
		case p.Position > 0:
			p.AvgCost = (p.AvgCost*float64(p.Position) + px*qty) / float64(newPos)
		default:
			cover := fill.Qty
			if short := uint64(-p.Position); cover > short {
				cover = short
			}
			p.RealizedPnL += (p.AvgCost - px) * float64(cover)
			if newPos > 0 {
				p.AvgCost = px
			}
		}
		p.Position = newPos
		return
	}

	p.Cash += px*qty - fee
	newPos := p.Position - int64(fill.Qty)

	switch {
	case p.Position == 0:
		p.AvgCost = px
	case p.Position < 0:
		p.AvgCost = (p.AvgCost*float64(-p.Position) + px*qty) / float64(-newPos)
	default:
		sold := fill.Qty
		if long := uint64(p.Position); sold > long {
			sold = long
		}
		p.RealizedPnL += (px - p.AvgCost) * float64(sold)
		if newPos < 0 {
			p.AvgCost = px
		}
	}
	p.Position = newPos
}

// MarkToMarket is realized PnL plus the unrealized value of the open
// position at mid. Undefined when mid is undefined.
func (p *Portfolio) MarkToMarket(mid float64, hasMid bool) (float64, bool) {
	if !hasMid {
		return 0, false
	}
	var unrealized float64
	switch {
	case p.Position > 0:
		unrealized = (mid - p.AvgCost) * float64(p.Position)
	case p.Position < 0:
		unrealized = (p.AvgCost - mid) * float64(-p.Position)
	}
	return p.RealizedPnL + unrealized, true
}
