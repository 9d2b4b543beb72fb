package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// NetworkDelay computes an additional delay to add on top of a logical send
// delay, e.g. from a BRITE topology (sim/topology). NewKernel installs a
// function that always returns 0, and SetNetworkDelay(nil) restores it,
// matching "Kernel defaults to zero added delay" (SPEC_FULL §3.9).
type NetworkDelay func(src, dst EntityID) float64

// Kernel is the discrete-event simulation engine of §4.1: a monotone clock,
// a future queue, a deferred queue, an entity registry, and the predicate
// each WAITING entity is blocked on.
type Kernel struct {
	Clock float64

	future   *FutureQueue
	deferred *DeferredQueue

	entitiesByID   map[EntityID]Entity
	entitiesByName map[string]EntityID
	nextEntityID   EntityID

	waiting map[EntityID]Predicate
	buffers map[EntityID][]Event

	nextSerial int64

	terminateAt    float64
	hasTerminateAt bool
	abrupt         bool
	running        bool

	networkDelay NetworkDelay

	Log *logrus.Logger
}

// NewKernel creates a Kernel with clock 0 and empty queues.
func NewKernel() *Kernel {
	return &Kernel{
		future:         NewFutureQueue(),
		deferred:       &DeferredQueue{},
		entitiesByID:   make(map[EntityID]Entity),
		entitiesByName: make(map[string]EntityID),
		waiting:        make(map[EntityID]Predicate),
		buffers:        make(map[EntityID][]Event),
		networkDelay:   func(EntityID, EntityID) float64 { return 0 },
		Log:            logrus.StandardLogger(),
	}
}

// SetNetworkDelay installs a topology-derived delay function (§4.1 "plus
// optional network-topology delay").
func (k *Kernel) SetNetworkDelay(fn NetworkDelay) {
	if fn == nil {
		fn = func(EntityID, EntityID) float64 { return 0 }
	}
	k.networkDelay = fn
}

// Register adds an entity to the kernel without scheduling a CREATE event;
// used for entities that exist from time 0 (datacenters, VMs' owning
// entities). Start is invoked immediately.
func (k *Kernel) Register(e Entity) EntityID {
	id := k.nextEntityID
	k.nextEntityID++
	k.entitiesByID[id] = e
	k.entitiesByName[e.Name()] = id
	e.SetState(StateRunnable)
	e.Start()
	return id
}

// Entity looks up a registered entity by id.
func (k *Kernel) Entity(id EntityID) (Entity, bool) {
	e, ok := k.entitiesByID[id]
	return e, ok
}

// EntityIDByName resolves an entity id from its registered name.
func (k *Kernel) EntityIDByName(name string) (EntityID, bool) {
	id, ok := k.entitiesByName[name]
	return id, ok
}

func (k *Kernel) nextSerialNumber() int64 {
	k.nextSerial++
	return k.nextSerial
}

// Send posts a SEND event at clock+delay+network-delay (§4.1 `send`).
// delay must be >= 0.
func (k *Kernel) Send(src, dst EntityID, delay float64, tag int, payload any) {
	if delay < 0 {
		panic(fmt.Sprintf("sim: Send delay must be >= 0, got %v", delay))
	}
	total := delay + k.networkDelay(src, dst)
	k.future.Add(Event{
		Type:        ESend,
		Time:        k.Clock + total,
		Source:      src,
		Destination: dst,
		Tag:         tag,
		Payload:     payload,
		Serial:      k.nextSerialNumber(),
	})
}

// SendFirst posts a SEND event with serial 0 so it precedes other events
// already scheduled for the same timestamp (§4.1 `send_first`).
func (k *Kernel) SendFirst(src, dst EntityID, delay float64, tag int, payload any) {
	if delay < 0 {
		panic(fmt.Sprintf("sim: SendFirst delay must be >= 0, got %v", delay))
	}
	total := delay + k.networkDelay(src, dst)
	k.future.Add(Event{
		Type:        ESend,
		Time:        k.Clock + total,
		Source:      src,
		Destination: dst,
		Tag:         tag,
		Payload:     payload,
		Serial:      0,
	})
}

// Hold posts a HOLD_DONE event at clock+delay and marks src HOLDING
// (§4.1 `hold`).
func (k *Kernel) Hold(src EntityID, delay float64) {
	if delay < 0 {
		panic(fmt.Sprintf("sim: Hold delay must be >= 0, got %v", delay))
	}
	e, ok := k.entitiesByID[src]
	if !ok {
		panic(fmt.Sprintf("sim: Hold from unknown entity %d", src))
	}
	e.SetState(StateHolding)
	k.future.Add(Event{
		Type:        EHoldDone,
		Time:        k.Clock + delay,
		Source:      src,
		Destination: src,
		Serial:      k.nextSerialNumber(),
	})
}

// Wait marks src WAITING on predicate p (§4.1 `wait`). If a matching event
// is already sitting in the deferred queue it is delivered immediately.
func (k *Kernel) Wait(src EntityID, p Predicate) {
	if ev, ok := k.deferred.Select(src, p); ok {
		k.deliver(src, ev)
		return
	}
	e, ok := k.entitiesByID[src]
	if !ok {
		panic(fmt.Sprintf("sim: Wait from unknown entity %d", src))
	}
	e.SetState(StateWaiting)
	k.waiting[src] = p
}

// Select scans the deferred queue and returns/removes the first event
// matching destination and predicate (§4.1 `select`).
func (k *Kernel) Select(dst EntityID, p Predicate) (Event, bool) {
	return k.deferred.Select(dst, p)
}

// Cancel removes the first future event whose source and predicate match
// (§4.1 `cancel`).
func (k *Kernel) Cancel(src EntityID, p Predicate) (Event, bool) {
	return k.future.Remove(src, p)
}

// Create schedules an ECREATE event that instantiates and registers an
// entity at clock+delay (§4.1 CREATE dispatch).
func (k *Kernel) Create(src EntityID, delay float64, factory func() Entity) {
	if delay < 0 {
		panic(fmt.Sprintf("sim: Create delay must be >= 0, got %v", delay))
	}
	k.future.Add(Event{
		Type:    ECreate,
		Time:    k.Clock + delay,
		Source:  src,
		Payload: factory,
		Serial:  k.nextSerialNumber(),
	})
}

// TerminateAt schedules the loop to exit at the first tick where
// clock >= t (§4.1 Termination).
func (k *Kernel) TerminateAt(t float64) {
	k.terminateAt = t
	k.hasTerminateAt = true
}

// AbruptTerminate exits at the next tick without draining remaining events.
func (k *Kernel) AbruptTerminate() {
	k.abrupt = true
}

// deliver pushes an event into an entity's buffer and flips it RUNNABLE.
func (k *Kernel) deliver(id EntityID, ev Event) {
	k.buffers[id] = append(k.buffers[id], ev)
	if e, ok := k.entitiesByID[id]; ok {
		e.SetState(StateRunnable)
	}
	delete(k.waiting, id)
}

// drainRunnable invokes Process on every RUNNABLE entity, first with the
// events in its buffer and then with deferred events addressed to it, until
// both are empty or it changes state (§4.1 dispatch step 1).
func (k *Kernel) drainRunnable() {
	for id, e := range k.entitiesByID {
		for e.State() == StateRunnable {
			var ev Event
			if len(k.buffers[id]) > 0 {
				ev = k.buffers[id][0]
				k.buffers[id] = k.buffers[id][1:]
			} else if deferredEv, ok := k.deferred.Select(id, PredicateAny()); ok {
				ev = deferredEv
			} else {
				break
			}
			e.Process(ev)
		}
	}
}

// processOne dispatches a single popped event by type (§4.1 "Event
// processing by type").
func (k *Kernel) processOne(ev Event) {
	switch ev.Type {
	case ECreate:
		factory, ok := ev.Payload.(func() Entity)
		if !ok {
			panic("sim: CREATE event payload is not a factory func")
		}
		e := factory()
		k.entitiesByID[e.ID()] = e
		k.entitiesByName[e.Name()] = e.ID()
		e.SetState(StateRunnable)
		e.Start()

	case ESend:
		if ev.Destination < 0 {
			panic("sim: SEND event has no destination")
		}
		e, ok := k.entitiesByID[ev.Destination]
		if !ok {
			// Destination doesn't exist (yet): defer, matching the
			// behavior of an entity not currently accepting events.
			k.deferred.Add(ev)
			return
		}
		if p, isWaiting := k.waiting[ev.Destination]; isWaiting {
			if p(ev) {
				k.deliver(ev.Destination, ev)
				return
			}
		} else if e.State() == StateWaiting {
			// Waiting with no recorded predicate: treat as "any".
			k.deliver(ev.Destination, ev)
			return
		}
		k.deferred.Add(ev)

	case EHoldDone:
		e, ok := k.entitiesByID[ev.Source]
		if !ok {
			panic(fmt.Sprintf("sim: HOLD_DONE for unknown entity %d", ev.Source))
		}
		if e.State() != StateHolding {
			return
		}
		e.SetState(StateRunnable)

	case ENull:
		panic("sim: ENULL event reached dispatch — programming error")

	default:
		panic(fmt.Sprintf("sim: unknown event type %v", ev.Type))
	}
}

// Run executes the kernel dispatch loop of §4.1 until the future queue
// empties, the terminate-at time is reached, or AbruptTerminate was called.
// On exit, Shutdown is invoked on every entity not already FINISHED.
func (k *Kernel) Run() error {
	k.running = true
	defer k.shutdownAll()

	for {
		k.drainRunnable()

		if k.abrupt {
			return nil
		}

		peeked, ok := k.future.Peek()
		if !ok {
			k.running = false
			return nil
		}
		if k.hasTerminateAt && peeked.Time >= k.terminateAt {
			return nil
		}

		ev, _ := k.future.PopNext()
		if ev.Time < k.Clock {
			panic(fmt.Sprintf("sim: event delivered to the past: %v < %v", ev.Time, k.Clock))
		}
		k.Clock = ev.Time
		k.processOne(ev)

		// Drain every subsequent future entry at the same timestamp before
		// advancing the clock further (§4.1 dispatch step 4).
		for {
			next, ok := k.future.Peek()
			if !ok || next.Time != k.Clock {
				break
			}
			if k.hasTerminateAt && next.Time >= k.terminateAt {
				break
			}
			ev, _ := k.future.PopNext()
			k.processOne(ev)
		}

		k.drainRunnable()
		if k.abrupt {
			return nil
		}
	}
}

func (k *Kernel) shutdownAll() {
	k.running = false
	for _, e := range k.entitiesByID {
		if e.State() != StateFinished {
			e.Shutdown()
			e.SetState(StateFinished)
		}
	}
}

// Running reports whether the kernel is mid-loop.
func (k *Kernel) Running() bool { return k.running }

// MinTimeBetweenEvents is the floor below which an estimated completion
// time is clamped upward, to avoid zero-length ticks (§4.2 step 5).
const MinTimeBetweenEvents = 0.1

// ClampToFloor returns max(estimate, floor) as used by the cloudlet
// scheduler's completion-time estimate (§4.2) and the datacenter's
// re-tick scheduling (§4.3).
func ClampToFloor(estimate, floor float64) float64 {
	if math.IsInf(estimate, 1) || math.IsNaN(estimate) {
		return floor
	}
	if estimate < floor {
		return floor
	}
	return estimate
}
