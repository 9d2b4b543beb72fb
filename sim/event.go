package sim

// EventType is the tag of a kernel event (§3 Event, §4.1).
type EventType int

const (
	// ENull is never a valid scheduled event; seeing one is a kernel
	// programming error (§4.1 "ENULL: programming error; fail hard").
	ENull EventType = iota
	ESend
	EHoldDone
	ECreate
)

func (t EventType) String() string {
	switch t {
	case ENull:
		return "ENULL"
	case ESend:
		return "SEND"
	case EHoldDone:
		return "HOLD_DONE"
	case ECreate:
		return "CREATE"
	default:
		return "UNKNOWN"
	}
}

// Event is the kernel's (type, time, source, destination, tag, payload,
// serial) tuple (§3). Payload is a tagged-union in spirit: the tag selects
// the expected shape, and domain packages type-assert Payload to the struct
// they registered for that tag.
type Event struct {
	Type        EventType
	Time        float64
	Source      EntityID
	Destination EntityID
	Tag         int
	Payload     any
	Serial      int64
}

// hasDestination reports whether the event is addressed to a specific
// entity, as opposed to a kernel-internal bookkeeping event.
func (e Event) hasDestination() bool {
	return e.Type == ESend || e.Type == ECreate
}
