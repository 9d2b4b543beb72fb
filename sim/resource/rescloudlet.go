package resource

import "math"

// CloudletStatus is the ResCloudlet state machine of §4.2:
//
//	CREATED -> READY -> QUEUED <-> INEXEC -> SUCCESS (terminal)
//	                       v          ^
//	                    PAUSED <- RESUMED
//	                       v
//	                 CANCELED / FAILED / FAILED_RESOURCE_UNAVAILABLE (terminal)
type CloudletStatus int

const (
	StatusCreated CloudletStatus = iota
	StatusReady
	StatusQueued
	StatusInExec
	StatusSuccess
	StatusPaused
	StatusResumed
	StatusCanceled
	StatusFailed
	StatusFailedResourceUnavailable
)

func (s CloudletStatus) String() string {
	switch s {
	case StatusCreated:
		return "CREATED"
	case StatusReady:
		return "READY"
	case StatusQueued:
		return "QUEUED"
	case StatusInExec:
		return "INEXEC"
	case StatusSuccess:
		return "SUCCESS"
	case StatusPaused:
		return "PAUSED"
	case StatusResumed:
		return "RESUMED"
	case StatusCanceled:
		return "CANCELED"
	case StatusFailed:
		return "FAILED"
	case StatusFailedResourceUnavailable:
		return "FAILED_RESOURCE_UNAVAILABLE"
	default:
		return "UNKNOWN"
	}
}

// IsTerminal reports whether the status ends the cloudlet's lifecycle.
func (s CloudletStatus) IsTerminal() bool {
	switch s {
	case StatusSuccess, StatusCanceled, StatusFailed, StatusFailedResourceUnavailable:
		return true
	default:
		return false
	}
}

// Cloudlet is the minimal shape a unit of work must have to run under a
// CloudletSchedulerSpaceShared. sim/workflow.Job implements this, keeping
// sim/resource free of any dependency on the workflow pipeline.
type Cloudlet interface {
	CloudletID() string
	Length() float64 // millions of instructions (MI)
	SetLength(float64)
	NumPEs() int
}

// ResCloudlet is the runtime wrapper for a Cloudlet inside a
// CloudletSchedulerSpaceShared (§3 ResCloudlet).
type ResCloudlet struct {
	Job Cloudlet

	MachineID int
	PEIDs     []int

	ArrivalTime         float64
	ExecStartTime       float64
	FinishTime          float64
	TotalCompletionTime float64

	// FinishedSoFar is work done, in raw instructions (scaled by MILLION).
	FinishedSoFar float64

	Status CloudletStatus
}

// NewResCloudlet wraps a Cloudlet for admission into a cloudlet scheduler at
// the given arrival time.
func NewResCloudlet(job Cloudlet, arrivalTime float64) *ResCloudlet {
	return &ResCloudlet{
		Job:         job,
		MachineID:   -1,
		PEIDs:       make([]int, 0, job.NumPEs()),
		ArrivalTime: arrivalTime,
		FinishTime:  -1,
		Status:      StatusCreated,
	}
}

// RemainingInstructions returns the instructions left to execute, clamped to
// zero (§3 invariant "remaining_length >= 0").
func (r *ResCloudlet) RemainingInstructions() float64 {
	total := r.Job.Length() * MILLION
	remaining := total - r.FinishedSoFar
	if remaining < 0 {
		return 0
	}
	return remaining
}

// RemainingLengthMI returns the remaining length in millions of instructions.
func (r *ResCloudlet) RemainingLengthMI() float64 {
	return r.RemainingInstructions() / MILLION
}

// SetStatus transitions the cloudlet status, updating TotalCompletionTime
// and ExecStartTime exactly as §4.2 describes:
//
//   - Entering INEXEC (fresh, or PAUSED->RESUMED) sets ExecStartTime = now.
//   - Leaving INEXEC into SUCCESS/CANCELED/PAUSED adds (now - ExecStartTime)
//     to TotalCompletionTime.
//   - RESUMED->SUCCESS also adds (now - ExecStartTime).
func (r *ResCloudlet) SetStatus(status CloudletStatus, now float64) bool {
	prev := r.Status
	if prev == status {
		return false
	}
	r.Status = status

	if prev == StatusInExec && (status == StatusCanceled || status == StatusPaused || status == StatusSuccess || status == StatusFailed || status == StatusFailedResourceUnavailable) {
		r.TotalCompletionTime += now - r.ExecStartTime
	}
	if prev == StatusResumed && status == StatusSuccess {
		r.TotalCompletionTime += now - r.ExecStartTime
	}
	if status == StatusInExec || (prev == StatusPaused && status == StatusResumed) {
		r.ExecStartTime = now
	}
	return true
}

// EstimatedFinish returns now + remaining/(capacity*pes), with remaining in
// MI and capacity in MIPS, or +Inf if capacity*pes is zero.
func (r *ResCloudlet) EstimatedFinish(now, capacity float64) float64 {
	denom := capacity * float64(r.Job.NumPEs())
	if denom <= 0 {
		return math.Inf(1)
	}
	return now + r.RemainingLengthMI()/denom
}
