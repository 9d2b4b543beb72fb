package failure

import "strconv"

// Mode selects how the (VM id, depth) failure array of §4.7 is indexed.
type Mode int

const (
	// ModeTask indexes by the full (VM id, depth) pair — the default.
	ModeTask Mode = iota
	// ModeVM indexes by VM id only (FAILURE_VM).
	ModeVM
	// ModeJob indexes the whole run under the same single bucket as
	// ModeAll (FAILURE_JOB).
	ModeJob
	// ModeAll indexes the whole run under a single bucket (FAILURE_ALL).
	ModeAll
)

// Task is the minimal shape a workflow task must expose for failure
// sampling, kept narrow so this package never imports sim/workflow.
type Task interface {
	TaskID() string
	VMID() string
	Depth() int
	ExecWindow() (start, finish float64)
}

// Job is the minimal shape a workflow job must expose for failure
// sampling and re-marking.
type Job interface {
	JobID() string
	Tasks() []Task
	MarkTaskFailed(taskID string)
	MarkFailed()
	FailedTaskIDs() []string
}

const searchCap = 1 << 20

// Generator samples failures against a bucketed set of Distributions,
// consuming each matched sample so it is never reused (§4.7).
type Generator struct {
	mode     Mode
	buckets  map[string]Distribution
	consumed map[string]int
	newDist  func() Distribution
}

// NewGenerator creates a Generator whose buckets are lazily created via
// newDist the first time a (vmID, depth) combination (per mode) is seen —
// this lets every bucket share the same family/params. Each bucket draws
// from whatever *rand.Rand newDist builds it on; if newDist reuses one
// *rand.Rand, all buckets consume a single shared stream.
func NewGenerator(mode Mode, newDist func() Distribution) *Generator {
	return &Generator{
		mode:     mode,
		buckets:  make(map[string]Distribution),
		consumed: make(map[string]int),
		newDist:  newDist,
	}
}

func (g *Generator) bucketKey(vmID string, depth int) string {
	switch g.mode {
	case ModeAll, ModeJob:
		return "ALL"
	case ModeVM:
		return vmID
	default:
		return vmID + "|" + strconv.Itoa(depth)
	}
}

func (g *Generator) dist(key string) Distribution {
	d, ok := g.buckets[key]
	if !ok {
		d = g.newDist()
		g.buckets[key] = d
	}
	return d
}

// hasFailureInWindow reports whether any not-yet-consumed cumulative
// sample of the bucket's distribution falls in [start, finish], consuming
// it if so.
func (g *Generator) hasFailureInWindow(key string, start, finish float64) bool {
	d := g.dist(key)
	cursor := g.consumed[key]

	n := cursor + 8
	for n < searchCap {
		cums := d.CumulativeSamples(n)
		for i := cursor; i < len(cums); i++ {
			if cums[i] > finish {
				return false
			}
			if cums[i] >= start {
				g.consumed[key] = i + 1
				return true
			}
		}
		if cums[len(cums)-1] > finish {
			return false
		}
		n *= 2
	}
	return false
}

// Sample walks every member task of job against its bucket's cumulative
// failure stream, marking a task (and the job) FAILED when its execution
// window contains a sample. Returns whether the job failed.
func (g *Generator) Sample(job Job) bool {
	failed := false
	for _, task := range job.Tasks() {
		key := g.bucketKey(task.VMID(), task.Depth())
		start, finish := task.ExecWindow()
		if g.hasFailureInWindow(key, start, finish) {
			job.MarkTaskFailed(task.TaskID())
			failed = true
		}
	}
	if failed {
		job.MarkFailed()
	}
	return failed
}
