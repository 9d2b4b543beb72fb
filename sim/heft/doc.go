// Package heft implements the HEFT planning algorithm of §4.5: computation
// and transfer cost matrices, upward rank, and descending-rank insertion
// scheduling across a VM list.
//
// Task is a narrow view rather than a dependency on sim/workflow.Task
// directly, so sim/workflow (which needs to call Plan from its Planner
// entity) never forms an import cycle back into this package.
package heft
