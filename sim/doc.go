// Package sim provides the discrete-event simulation kernel that drives the
// workflow scheduling simulator.
//
// # Reading Guide
//
// Start with these files to understand the kernel:
//   - event.go: Event, EventType and the tagged-union payload convention
//   - predicate.go: Predicate matching used by Wait/Select/Cancel
//   - futurequeue.go / deferredqueue.go: the two event queues (§4.1)
//   - kernel.go: the entity registry, dispatch loop and send/hold/wait API
//
// # Architecture
//
// sim is single-threaded and cooperative: entities never block on I/O, they
// only Wait on a predicate or Hold for a delay. All mutable simulation state
// is owned by exactly one entity; the only cross-entity channel is event
// delivery through the Kernel (§5 Shared resource policy).
//
// Domain packages build on top of this kernel:
//   - sim/resource: hosts, VMs, PEs, provisioners, cloudlet/VM schedulers
//   - sim/datacenter: the Datacenter entity
//   - sim/workflow: Task/Job model and the Planner/Clustering/Engine/Scheduler pipeline
//   - sim/heft: the HEFT planning algorithm
//   - sim/catalog: the replica catalog and file-transfer cost model
//   - sim/failure: failure sampling and reclustering
//   - sim/dax, sim/topology: external input readers
//   - sim/config, sim/metrics: configuration and output reporting
package sim
