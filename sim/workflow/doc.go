// Package workflow implements the multi-stage scheduling pipeline built on
// top of sim/resource and sim/datacenter: Task and Job data types, and the
// four entities of §4.4 (Planner -> ClusteringEngine -> Engine -> Scheduler)
// wired by well-known sim event tags.
package workflow
