package heft

import (
	"sort"

	"github.com/workflowsim-go/workflowsim/sim/resource"
)

// interval is a busy window already committed to a VM's schedule.
type interval struct {
	start, finish float64
}

// vmSchedule tracks the committed busy intervals for one VM, kept sorted
// by start time so insertion search only needs a linear scan (§4.5 step 5).
type vmSchedule struct {
	vm        *resource.VM
	intervals []interval
}

// earliestSlot finds the earliest start time >= readyTime at which a block
// of the given duration fits without overlapping any committed interval,
// scanning the gaps between already-scheduled intervals in order.
func (s *vmSchedule) earliestSlot(readyTime, duration float64) float64 {
	start := readyTime
	for _, iv := range s.intervals {
		if start+duration <= iv.start {
			break
		}
		if start < iv.finish {
			start = iv.finish
		}
	}
	return start
}

// reserve commits a [start, start+duration) block and keeps intervals
// sorted by start time.
func (s *vmSchedule) reserve(start, duration float64) {
	s.intervals = append(s.intervals, interval{start: start, finish: start + duration})
	sort.Slice(s.intervals, func(i, j int) bool { return s.intervals[i].start < s.intervals[j].start })
}
