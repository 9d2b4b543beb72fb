package config

import "fmt"

// SchedulingAlgorithm is the closed set of §6.
type SchedulingAlgorithm string

const (
	MAXMIN     SchedulingAlgorithm = "MAXMIN"
	MINMIN     SchedulingAlgorithm = "MINMIN"
	MCT        SchedulingAlgorithm = "MCT"
	DATA       SchedulingAlgorithm = "DATA"
	STATIC     SchedulingAlgorithm = "STATIC"
	FCFS       SchedulingAlgorithm = "FCFS"
	ROUNDROBIN SchedulingAlgorithm = "ROUNDROBIN"
)

// Valid reports whether s is one of the closed scheduling keywords.
func (s SchedulingAlgorithm) Valid() error {
	switch s {
	case MAXMIN, MINMIN, MCT, DATA, STATIC, FCFS, ROUNDROBIN:
		return nil
	default:
		return fmt.Errorf("config: unrecognized scheduling algorithm %q", string(s))
	}
}

// PlanningAlgorithm is the closed set of §6. Only HEFT and the implicit
// STATIC pass-through (INVALID/RANDOM/DHEFT are stubs) are fully specified.
type PlanningAlgorithm string

const (
	PlanningInvalid PlanningAlgorithm = "INVALID"
	PlanningRandom  PlanningAlgorithm = "RANDOM"
	PlanningHEFT    PlanningAlgorithm = "HEFT"
	PlanningDHEFT   PlanningAlgorithm = "DHEFT"
)

func (p PlanningAlgorithm) Valid() error {
	switch p {
	case PlanningInvalid, PlanningRandom, PlanningHEFT, PlanningDHEFT:
		return nil
	default:
		return fmt.Errorf("config: unrecognized planning algorithm %q", string(p))
	}
}

// CostModel selects which entity's per-second/per-bit cost figures a job's
// resource-cost parameters are drawn from (§4.3 "attach resource cost
// parameters").
type CostModel string

const (
	CostModelDatacenter CostModel = "DATACENTER"
	CostModelVM         CostModel = "VM"
)

func (c CostModel) Valid() error {
	switch c {
	case CostModelDatacenter, CostModelVM:
		return nil
	default:
		return fmt.Errorf("config: unrecognized cost model %q", string(c))
	}
}

// FileSystemMode selects the replica catalog implementation (§4.6).
type FileSystemMode string

const (
	FileSystemShared FileSystemMode = "SHARED"
	FileSystemLocal  FileSystemMode = "LOCAL"
)

func (f FileSystemMode) Valid() error {
	switch f {
	case FileSystemShared, FileSystemLocal:
		return nil
	default:
		return fmt.Errorf("config: unrecognized file system mode %q", string(f))
	}
}

// ReclusteringPolicy names the five policies of §4.7, at the design level.
type ReclusteringPolicy string

const (
	ReclusterNOOP      ReclusteringPolicy = "NOOP"
	ReclusterDynamic   ReclusteringPolicy = "DYNAMIC"
	ReclusterSelective ReclusteringPolicy = "SELECTIVE"
	ReclusterBlock     ReclusteringPolicy = "BLOCK"
	ReclusterVertical  ReclusteringPolicy = "VERTICAL"
)

func (r ReclusteringPolicy) Valid() error {
	switch r {
	case ReclusterNOOP, ReclusterDynamic, ReclusterSelective, ReclusterBlock, ReclusterVertical:
		return nil
	default:
		return fmt.Errorf("config: unrecognized reclustering policy %q", string(r))
	}
}
