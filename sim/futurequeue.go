package sim

import "container/heap"

// FutureQueue is the kernel's set of not-yet-processed events ordered by
// (time ascending, serial ascending) — §3 Event, §4.1. Implemented over
// container/heap, keyed by (time, serial) via futureHeap's Less.
type FutureQueue struct {
	events futureHeap
}

// NewFutureQueue creates an empty, ready-to-use FutureQueue.
func NewFutureQueue() *FutureQueue {
	fq := &FutureQueue{}
	heap.Init(&fq.events)
	return fq
}

// Add inserts an event in (time, serial) order.
func (fq *FutureQueue) Add(ev Event) {
	heap.Push(&fq.events, ev)
}

// Len returns the number of pending events.
func (fq *FutureQueue) Len() int { return fq.events.Len() }

// Peek returns the earliest event without removing it. ok is false if empty.
func (fq *FutureQueue) Peek() (Event, bool) {
	if fq.events.Len() == 0 {
		return Event{}, false
	}
	return fq.events[0], true
}

// PopNext removes and returns the earliest event. ok is false if empty.
func (fq *FutureQueue) PopNext() (Event, bool) {
	if fq.events.Len() == 0 {
		return Event{}, false
	}
	return heap.Pop(&fq.events).(Event), true
}

// Remove deletes the first event matching src/predicate, returning it.
// Used by Cancel (§4.1). ok is false if no event matched.
func (fq *FutureQueue) Remove(src EntityID, p Predicate) (Event, bool) {
	for i, ev := range fq.events {
		if ev.Source == src && p(ev) {
			removed := heap.Remove(&fq.events, i).(Event)
			return removed, true
		}
	}
	return Event{}, false
}

// futureHeap implements heap.Interface over []Event.
type futureHeap []Event

func (h futureHeap) Len() int { return len(h) }

func (h futureHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}
	return h[i].Serial < h[j].Serial
}

func (h futureHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *futureHeap) Push(x any) {
	*h = append(*h, x.(Event))
}

func (h *futureHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
