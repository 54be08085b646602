// Package sim is the deterministic discrete-event driver: a min-heap event
// queue, a single-threaded dispatch loop, and the per-run result it
// accumulates, grounded on the simulator's event loop.
package sim

import "fenrir/internal/book"

// EventType names the four dispatchable event kinds.
type EventType int

const (
	Submit EventType = iota
	Cancel
	Modify
	Snapshot
)

// Event is one entry on the simulator's queue. Only the payload slots
// relevant to Type are populated; this mirrors the sum-type redesign used
// throughout the rest of the module in place of a kwargs map.
type Event struct {
	Time int64
	Seq  int64
	Type EventType

	Order   *book.Order        // Submit
	OrderID string             // Cancel, Modify
	Modify  book.ModifyOptions // Modify
}

// eventHeap implements container/heap.Interface, ordered by (Time, Seq).
type eventHeap []*Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}
	return h[i].Seq < h[j].Seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(*Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
