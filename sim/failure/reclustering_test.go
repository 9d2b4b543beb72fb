package failure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeReplacementJob struct {
	fakeJob
	depth int
}

func (j *fakeReplacementJob) Depth() int { return j.depth }

func (j *fakeReplacementJob) Clone(newID string, taskIDs []string) ReplacementJob {
	var tasks []Task
	for _, id := range taskIDs {
		for _, t := range j.tasks {
			if t.TaskID() == id {
				tasks = append(tasks, t)
			}
		}
	}
	return &fakeReplacementJob{fakeJob: fakeJob{id: newID, tasks: tasks}}
}

func newReplJob(tasks ...Task) *fakeReplacementJob {
	return &fakeReplacementJob{fakeJob: fakeJob{id: "orig", tasks: tasks}}
}

func idGen() func() string {
	n := 0
	return func() string {
		n++
		return "gen" + string(rune('0'+n))
	}
}

// Round-trip property (§8): NOOP reclustering returns a single job with
// the same task set as the original.
func TestNOOPReclustering_PreservesTaskSet(t *testing.T) {
	job := newReplJob(&fakeTask{id: "a"}, &fakeTask{id: "b"})
	out := NOOPReclustering{}.Process(job, idGen())
	assert.Len(t, out, 1)
	assert.Len(t, out[0].Tasks(), 2)
}

func TestSelectiveReclustering_OnlyFailedTasks(t *testing.T) {
	job := newReplJob(&fakeTask{id: "a"}, &fakeTask{id: "b"})
	job.failedID = []string{"b"}
	out := SelectiveReclustering{}.Process(job, idGen())
	assert.Len(t, out, 1)
	assert.Len(t, out[0].Tasks(), 1)
	assert.Equal(t, "b", out[0].Tasks()[0].TaskID())
}

func TestSelectiveReclustering_EmptyWhenNoFailures(t *testing.T) {
	job := newReplJob(&fakeTask{id: "a"})
	out := SelectiveReclustering{}.Process(job, idGen())
	assert.Empty(t, out)
}

func TestBlockReclustering_SplitsByDepth(t *testing.T) {
	job := newReplJob(
		&fakeTask{id: "a", depth: 0},
		&fakeTask{id: "b", depth: 1},
		&fakeTask{id: "c", depth: 1},
	)
	r := BlockReclustering{FailedDepths: map[int]bool{1: true}}
	out := r.Process(job, idGen())
	assert.Len(t, out, 1)
	assert.Len(t, out[0].Tasks(), 2)
}

func TestVerticalReclustering_BisectsAtMidDepth(t *testing.T) {
	job := newReplJob(
		&fakeTask{id: "a", depth: 0},
		&fakeTask{id: "b", depth: 1},
		&fakeTask{id: "c", depth: 2},
		&fakeTask{id: "d", depth: 3},
	)
	out := VerticalReclustering{}.Process(job, idGen())
	assert.Len(t, out, 2)
}

func TestDynamicClustering_BestKWithinBounds(t *testing.T) {
	d := DynamicClustering{TaskRuntime: 10, Phi: 2, Theta: 100, Gamma: 1}
	k := d.BestK()
	assert.GreaterOrEqual(t, k, 1)
	assert.LessOrEqual(t, k, 200)
}

func TestDynamicClustering_GroupsTasksIntoKBatches(t *testing.T) {
	job := newReplJob(
		&fakeTask{id: "a"}, &fakeTask{id: "b"}, &fakeTask{id: "c"},
	)
	d := DynamicClustering{TaskRuntime: 1, Phi: 1.5, Theta: 1000, Gamma: 1}
	out := d.Process(job, idGen())
	total := 0
	for _, j := range out {
		total += len(j.Tasks())
	}
	assert.Equal(t, 3, total)
}

func TestFailureMonitor_TracksAlphaAndDelay(t *testing.T) {
	m := NewFailureMonitor()
	m.Observe("k", true, 5)
	m.Observe("k", false, 3)
	assert.Greater(t, m.Alpha("k"), 0.0)
	assert.Equal(t, 8.0, m.Delay("k"))
}
