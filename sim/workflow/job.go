package workflow

import (
	"github.com/workflowsim-go/workflowsim/sim/catalog"
	"github.com/workflowsim-go/workflowsim/sim/failure"
)

// JobClass is the four-way job classification of §3/§4.3.
type JobClass int

const (
	ClassStageIn JobClass = iota
	ClassCompute
	ClassStageOut
	ClassCleanup
)

func (c JobClass) String() string {
	switch c {
	case ClassStageIn:
		return "STAGE_IN"
	case ClassCompute:
		return "COMPUTE"
	case ClassStageOut:
		return "STAGE_OUT"
	case ClassCleanup:
		return "CLEANUP"
	default:
		return "UNKNOWN"
	}
}

// JobStatus is the job-level status machine of §3 (superset of
// resource.CloudletStatus with FAILED and RESUMED as distinct terminal/
// intermediate states tracked at the workflow layer).
type JobStatus int

const (
	JobCreated JobStatus = iota
	JobReady
	JobQueued
	JobInExec
	JobSuccess
	JobFailed
	JobCanceled
	JobPaused
	JobResumed
	JobFailedResourceUnavailable
)

// Job is a container of one or more tasks executed as a single cloudlet
// (§3 "Job"). It implements resource.Cloudlet via CloudletID/
// Length/SetLength/NumPEs, and failure.Job/failure.ReplacementJob via
// Tasks/MarkTaskFailed/MarkFailed/FailedTaskIDs/Clone.
type Job struct {
	ID    string
	Class JobClass
	Status JobStatus

	VMID   string
	UserID string

	TaskIDs []string
	arena   map[string]*Task

	ParentJobIDs []string
	DepthLevel   int

	length    float64
	failedIDs []string

	// stagedFiles holds the explicit file list for jobs with no member
	// tasks of their own — the synthetic STAGE_IN root job (§4.4).
	stagedFiles []catalog.FileItem

	ArrivalTime   float64
	ExecStartTime float64
	FinishTime    float64
}

// NewJob builds a job from a set of tasks drawn from a shared arena. Length
// is the sum of member task lengths; PE requirement is the maximum across
// members (the job occupies that many PEs while any member task runs).
func NewJob(id string, class JobClass, tasks []*Task, arena map[string]*Task) *Job {
	j := &Job{
		ID:         id,
		Class:      class,
		Status:     JobCreated,
		arena:      arena,
		FinishTime: -1,
	}
	if len(tasks) > 0 {
		j.UserID = tasks[0].UserID
		j.DepthLevel = tasks[0].Depth
	}
	for _, t := range tasks {
		j.TaskIDs = append(j.TaskIDs, t.ID)
		j.length += t.Length
	}
	return j
}

// CloudletID implements resource.Cloudlet.
func (j *Job) CloudletID() string { return j.ID }

// Length implements resource.Cloudlet.
func (j *Job) Length() float64 { return j.length }

// SetLength implements resource.Cloudlet — the cloudlet scheduler amortizes
// file-transfer time into this value on submit (§4.2).
func (j *Job) SetLength(l float64) { j.length = l }

// NumPEs implements resource.Cloudlet.
func (j *Job) NumPEs() int {
	maxPEs := 1
	for _, id := range j.TaskIDs {
		if t, ok := j.arena[id]; ok && t.NumPEs > maxPEs {
			maxPEs = t.NumPEs
		}
	}
	return maxPEs
}

// Tasks implements failure.Job, returning adapter views of member tasks.
func (j *Job) Tasks() []failure.Task {
	out := make([]failure.Task, 0, len(j.TaskIDs))
	for _, id := range j.TaskIDs {
		if t, ok := j.arena[id]; ok {
			out = append(out, taskFailureView{t})
		}
	}
	return out
}

// JobID implements failure.Job.
func (j *Job) JobID() string { return j.ID }

// MarkTaskFailed implements failure.Job.
func (j *Job) MarkTaskFailed(taskID string) {
	if t, ok := j.arena[taskID]; ok {
		t.Status = TaskFailed
	}
	j.failedIDs = append(j.failedIDs, taskID)
}

// MarkFailed implements failure.Job.
func (j *Job) MarkFailed() { j.Status = JobFailed }

// FailedTaskIDs implements failure.Job.
func (j *Job) FailedTaskIDs() []string { return j.failedIDs }

// Depth implements failure.ReplacementJob.
func (j *Job) Depth() int { return j.DepthLevel }

// Clone implements failure.ReplacementJob, building a fresh job over the
// given subset of this job's task ids, sharing the same task arena.
func (j *Job) Clone(newID string, taskIDs []string) failure.ReplacementJob {
	var tasks []*Task
	for _, id := range taskIDs {
		if t, ok := j.arena[id]; ok {
			tasks = append(tasks, t)
		}
	}
	clone := NewJob(newID, j.Class, tasks, j.arena)
	clone.ParentJobIDs = j.ParentJobIDs
	return clone
}

// SetExecWindow records the job's actual start/finish times once its
// cloudlet wrapper completes, feeding makespan/utilisation computation in
// sim/metrics. It also stamps the same window onto every member task, so
// failure.Generator.Sample (which reads windows per-task) sees the real
// simulated execution window rather than the Planner's pre-run HEFT
// estimate.
func (j *Job) SetExecWindow(start, finish float64) {
	j.ExecStartTime = start
	j.FinishTime = finish
	for _, id := range j.TaskIDs {
		if t, ok := j.arena[id]; ok {
			t.ExecStartTime = start
			t.FinishTime = finish
		}
	}
}

// IsFinished reports whether the job has reached a terminal status other
// than FAILED.
func (j *Job) IsFinished() bool {
	return j.Status == JobSuccess || j.Status == JobCanceled
}

// Files returns the union of member tasks' file lists, plus any explicitly
// staged files (the synthetic STAGE_IN job has no member tasks).
func (j *Job) Files() []catalog.FileItem {
	var out []catalog.FileItem
	seen := make(map[string]bool)
	add := func(f catalog.FileItem) {
		key := f.Name + "|" + f.Type.String()
		if !seen[key] {
			seen[key] = true
			out = append(out, f)
		}
	}
	for _, f := range j.stagedFiles {
		add(f)
	}
	for _, id := range j.TaskIDs {
		t, ok := j.arena[id]
		if !ok {
			continue
		}
		for _, f := range t.Files {
			add(f)
		}
	}
	return out
}

// taskFailureView adapts *Task to failure.Task without a field/method name
// collision on VMID/Depth (Task keeps those as plain fields for planner
// and clustering code).
type taskFailureView struct{ t *Task }

func (v taskFailureView) TaskID() string                  { return v.t.TaskID() }
func (v taskFailureView) VMID() string                    { return v.t.VMID }
func (v taskFailureView) Depth() int                      { return v.t.Depth }
func (v taskFailureView) ExecWindow() (float64, float64) { return v.t.ExecWindow() }
