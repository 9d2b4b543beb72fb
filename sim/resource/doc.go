// Package resource implements the Resource Model (C2): hosts, VMs,
// processing elements, RAM/BW/MIPS provisioners, a time-shared VM
// scheduler and a space-shared cloudlet scheduler.
//
// Ownership follows §5 Shared resource policy: a Host owns its PE list and
// RAM/BW provisioners, a VM owns its CloudletScheduler. Nothing here mutates
// another package's state directly.
package resource

// MILLION scales cloudlet length (millions of instructions) to raw
// instruction counts when accumulating work-done-so-far (§3 ResCloudlet).
const MILLION = 1e6
