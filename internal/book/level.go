package book

// Level is the FIFO queue of orders resting at one price on one side.
// AggregateQty is an O(1) cache of the sum of resting quantities, kept in
// sync by every mutation that touches Orders.
type Level struct {
	Price        float64
	Orders       []*Order
	AggregateQty uint64
}

func newLevel(price float64) *Level {
	return &Level{Price: price}
}

func (l *Level) append(o *Order) {
	l.Orders = append(l.Orders, o)
	l.AggregateQty += o.Qty
}

// removeAt drops the order at index i from the FIFO, keeping the aggregate
// in sync. Used by Cancel, which may remove from the middle of the queue.
func (l *Level) removeAt(i int) {
	l.AggregateQty -= l.Orders[i].Qty
	l.Orders = append(l.Orders[:i], l.Orders[i+1:]...)
}

// popHead removes and returns the oldest order, the next in line to match.
func (l *Level) popHead() *Order {
	head := l.Orders[0]
	l.Orders = l.Orders[1:]
	return head
}
