package sim

// Predicate decides whether a pending event matches what an entity is
// waiting for, selecting from the deferred queue, or cancelling from the
// future queue (§4.1 wait/select/cancel). Modeled as a narrow function
// value rather than an interface hierarchy.
type Predicate func(Event) bool

// PredicateAny matches every event.
func PredicateAny() Predicate {
	return func(Event) bool { return true }
}

// PredicateNone matches no event; waiting on it blocks forever.
func PredicateNone() Predicate {
	return func(Event) bool { return false }
}

// PredicateFromSource matches events sent by one of the given sources.
func PredicateFromSource(sources ...EntityID) Predicate {
	set := make(map[EntityID]struct{}, len(sources))
	for _, s := range sources {
		set[s] = struct{}{}
	}
	return func(ev Event) bool {
		_, ok := set[ev.Source]
		return ok
	}
}

// PredicateNotFromSource matches events NOT sent by any of the given sources.
func PredicateNotFromSource(sources ...EntityID) Predicate {
	p := PredicateFromSource(sources...)
	return func(ev Event) bool { return !p(ev) }
}

// PredicateType matches events carrying one of the given tags.
func PredicateType(tags ...int) Predicate {
	set := make(map[int]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return func(ev Event) bool {
		_, ok := set[ev.Tag]
		return ok
	}
}

// PredicateNotType matches events NOT carrying any of the given tags.
func PredicateNotType(tags ...int) Predicate {
	p := PredicateType(tags...)
	return func(ev Event) bool { return !p(ev) }
}
