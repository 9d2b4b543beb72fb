package failure

import "math"

// ReplacementJob is the minimal shape Reclustering needs to split or
// resubmit a FAILED job — one replacement per returned element, each a
// fresh copy with a caller-assigned id.
type ReplacementJob interface {
	Job
	Depth() int
	Clone(newID string, taskIDs []string) ReplacementJob
}

// Reclustering turns a FAILED job into zero or more replacement jobs to
// re-submit (§4.7).
type Reclustering interface {
	Process(job ReplacementJob, nextID func() string) []ReplacementJob
}

// NOOPReclustering resubmits the job identically under a fresh id — the
// baseline policy, and the one ClusteringEngine's initial pass shares with
// this package's zero-transform behavior.
type NOOPReclustering struct{}

func (NOOPReclustering) Process(job ReplacementJob, nextID func() string) []ReplacementJob {
	ids := make([]string, 0, len(job.Tasks()))
	for _, t := range job.Tasks() {
		ids = append(ids, t.TaskID())
	}
	return []ReplacementJob{job.Clone(nextID(), ids)}
}

// SelectiveReclustering resubmits only the tasks that actually failed,
// leaving surviving tasks out of the replacement job.
type SelectiveReclustering struct{}

func (SelectiveReclustering) Process(job ReplacementJob, nextID func() string) []ReplacementJob {
	failedIDs := job.FailedTaskIDs()
	if len(failedIDs) == 0 {
		return nil
	}
	return []ReplacementJob{job.Clone(nextID(), failedIDs)}
}

// BlockReclustering splits the job by depth band, resubmitting only bands
// that contained a failure.
type BlockReclustering struct {
	FailedDepths map[int]bool
}

func (b BlockReclustering) Process(job ReplacementJob, nextID func() string) []ReplacementJob {
	failedDepths := b.FailedDepths
	if failedDepths == nil {
		// No explicit bands: take them from the job's own failed tasks.
		failed := make(map[string]bool)
		for _, id := range job.FailedTaskIDs() {
			failed[id] = true
		}
		failedDepths = make(map[int]bool)
		for _, t := range job.Tasks() {
			if failed[t.TaskID()] {
				failedDepths[t.Depth()] = true
			}
		}
	}
	byDepth := make(map[int][]string)
	for _, t := range job.Tasks() {
		byDepth[t.Depth()] = append(byDepth[t.Depth()], t.TaskID())
	}
	var out []ReplacementJob
	for depth, ids := range byDepth {
		if failedDepths[depth] {
			out = append(out, job.Clone(nextID(), ids))
		}
	}
	return out
}

// VerticalReclustering bisects the job once at the midpoint of its depth
// range: tasks with depth at most the midpoint form one replacement job,
// deeper tasks another. The halves are not split further, and Monitor is not consulted.
type VerticalReclustering struct {
	Monitor *FailureMonitor
}

func (v VerticalReclustering) Process(job ReplacementJob, nextID func() string) []ReplacementJob {
	tasks := job.Tasks()
	if len(tasks) <= 1 {
		return NOOPReclustering{}.Process(job, nextID)
	}
	minDepth, maxDepth := tasks[0].Depth(), tasks[0].Depth()
	for _, t := range tasks {
		if t.Depth() < minDepth {
			minDepth = t.Depth()
		}
		if t.Depth() > maxDepth {
			maxDepth = t.Depth()
		}
	}
	mid := (minDepth + maxDepth) / 2

	var lower, upper []string
	for _, t := range tasks {
		if t.Depth() <= mid {
			lower = append(lower, t.TaskID())
		} else {
			upper = append(upper, t.TaskID())
		}
	}
	var out []ReplacementJob
	if len(lower) > 0 {
		out = append(out, job.Clone(nextID(), lower))
	}
	if len(upper) > 0 {
		out = append(out, job.Clone(nextID(), upper))
	}
	return out
}

// FailureMonitor tracks the observed failure rate alpha and cumulative
// delay d per (depth, VM) bucket, feeding DynamicClustering's K-search.
type FailureMonitor struct {
	alpha map[string]float64
	delay map[string]float64
}

func NewFailureMonitor() *FailureMonitor {
	return &FailureMonitor{alpha: make(map[string]float64), delay: make(map[string]float64)}
}

func (m *FailureMonitor) Observe(key string, failed bool, delay float64) {
	const smoothing = 0.1
	obs := 0.0
	if failed {
		obs = 1.0
	}
	m.alpha[key] = m.alpha[key]*(1-smoothing) + obs*smoothing
	m.delay[key] += delay
}

func (m *FailureMonitor) Alpha(key string) float64 { return m.alpha[key] }
func (m *FailureMonitor) Delay(key string) float64 { return m.delay[key] }

// DynamicClustering picks a clustering factor K in [1,200] minimizing
//
//	f(K) = (K*t + d)*(phi-1)/K * exp(((K*t+d)/theta)^gamma)
//
// via linear scan (§4.7).
type DynamicClustering struct {
	Monitor            *FailureMonitor
	Key                string
	TaskRuntime        float64
	Phi, Theta, Gamma  float64
}

// BestK returns the K in [1,200] minimizing f(K).
func (d DynamicClustering) BestK() int {
	delay := 0.0
	if d.Monitor != nil {
		delay = d.Monitor.Delay(d.Key)
	}
	bestK, bestVal := 1, math.Inf(1)
	for k := 1; k <= 200; k++ {
		x := float64(k)*d.TaskRuntime + delay
		val := x * (d.Phi - 1) / float64(k) * math.Exp(math.Pow(x/d.Theta, d.Gamma))
		if val < bestVal {
			bestVal, bestK = val, k
		}
	}
	return bestK
}

// Process groups the job's tasks into ceil(len/K) replacement jobs of up
// to K tasks each, in the order job.Tasks() returns them.
func (d DynamicClustering) Process(job ReplacementJob, nextID func() string) []ReplacementJob {
	k := d.BestK()
	tasks := job.Tasks()
	var out []ReplacementJob
	for i := 0; i < len(tasks); i += k {
		end := i + k
		if end > len(tasks) {
			end = len(tasks)
		}
		ids := make([]string, 0, end-i)
		for _, t := range tasks[i:end] {
			ids = append(ids, t.TaskID())
		}
		out = append(out, job.Clone(nextID(), ids))
	}
	return out
}
