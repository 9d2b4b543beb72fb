package sim

// DeferredQueue holds events that arrived for an entity which was not
// WAITING on a matching predicate when they were delivered (§4.1 SEND
// dispatch). Small N in practice, so a plain insertion-ordered slice with
// linear scans over a slice is the simplest fit.
type DeferredQueue struct {
	events []Event
}

// Add appends an event to the back of the deferred queue.
func (dq *DeferredQueue) Add(ev Event) {
	dq.events = append(dq.events, ev)
}

// Select returns and removes the first event matching destination and
// predicate, in FIFO order (§4.1 `select`).
func (dq *DeferredQueue) Select(dst EntityID, p Predicate) (Event, bool) {
	for i, ev := range dq.events {
		if ev.Destination == dst && p(ev) {
			dq.removeAt(i)
			return ev, true
		}
	}
	return Event{}, false
}

func (dq *DeferredQueue) removeAt(i int) {
	dq.events = append(dq.events[:i], dq.events[i+1:]...)
}

// Len returns the number of deferred events.
func (dq *DeferredQueue) Len() int { return len(dq.events) }
