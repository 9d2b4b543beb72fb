package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeJob struct {
	id     string
	length float64
	pes    int
}

func (f *fakeJob) CloudletID() string   { return f.id }
func (f *fakeJob) Length() float64      { return f.length }
func (f *fakeJob) SetLength(l float64)  { f.length = l }
func (f *fakeJob) NumPEs() int          { return f.pes }

// Scenario 1 (§8): single task, single VM, 1000 MI at 1000 MIPS, one PE.
func TestCloudletScheduler_SingleJobSingleVM(t *testing.T) {
	s := NewCloudletSchedulerSpaceShared()
	job := &fakeJob{id: "t0", length: 1000, pes: 1}

	s.UpdateVMProcessing(0, []float64{1000}, 0.01)
	est := s.Submit(job, 0, 0)
	assert.Equal(t, 1.0, est)

	next := s.UpdateVMProcessing(1, []float64{1000}, 0.01)
	assert.Equal(t, 0.0, next)
	assert.True(t, s.HasFinished())
	fin := s.NextFinished()
	assert.Equal(t, StatusSuccess, fin.Status)
	assert.Equal(t, 0.0, fin.RemainingInstructions())
}

// Scenario 4 (§8): one VM, 2 PEs @ 1000 MIPS. Three 1-PE 1000MI jobs at t=0:
// two start at 0 finish at 1, third starts at 1 finishes at 2.
func TestCloudletScheduler_SpaceSharedContention(t *testing.T) {
	s := NewCloudletSchedulerSpaceShared()
	s.UpdateVMProcessing(0, []float64{1000, 1000}, 0.01)

	j1 := &fakeJob{id: "j1", length: 1000, pes: 1}
	j2 := &fakeJob{id: "j2", length: 1000, pes: 1}
	j3 := &fakeJob{id: "j3", length: 1000, pes: 1}
	s.Submit(j1, 0, 0)
	s.Submit(j2, 0, 0)
	s.Submit(j3, 0, 0)

	assert.Equal(t, 2, s.ExecCount())
	assert.Equal(t, 1, s.WaitingCount())

	s.UpdateVMProcessing(1, []float64{1000, 1000}, 0.01)
	assert.True(t, s.HasFinished())
	f1 := s.NextFinished()
	f2 := s.NextFinished()
	assert.NotNil(t, f1)
	assert.NotNil(t, f2)
	assert.Equal(t, 1, s.ExecCount()) // j3 promoted into the freed slot
	assert.Equal(t, 0, s.WaitingCount())

	s.UpdateVMProcessing(2, []float64{1000, 1000}, 0.01)
	assert.True(t, s.HasFinished())
	f3 := s.NextFinished()
	assert.Equal(t, "j3", f3.Job.CloudletID())
}

func TestCloudletScheduler_NoRoundingUp(t *testing.T) {
	s := NewCloudletSchedulerSpaceShared()
	s.UpdateVMProcessing(0, []float64{1000}, 0.01)
	job := &fakeJob{id: "t0", length: 1000, pes: 1}
	s.Submit(job, 0, 0)

	// After 0.5s at 1000 MIPS/PE: 500,000,000 instructions done, not rounded.
	s.UpdateVMProcessing(0.5, []float64{1000}, 0.01)
	rcl := s.exec[0]
	assert.Equal(t, float64(500_000_000), rcl.FinishedSoFar)
}

func TestCloudletScheduler_PauseResumeCancel(t *testing.T) {
	s := NewCloudletSchedulerSpaceShared()
	s.UpdateVMProcessing(0, []float64{1000}, 0.01)
	job := &fakeJob{id: "t0", length: 1000, pes: 1}
	s.Submit(job, 0, 0)

	assert.True(t, s.Pause("t0", 0.2))
	status, ok := s.Status("t0")
	assert.True(t, ok)
	assert.Equal(t, StatusPaused, status)

	est := s.Resume("t0", 0.2)
	assert.Greater(t, est, 0.0)
	status, _ = s.Status("t0")
	assert.Equal(t, StatusInExec, status)

	cancelled := s.Cancel("t0", 0.3)
	assert.NotNil(t, cancelled)
	assert.Equal(t, StatusCanceled, cancelled.Status)
}

func TestCloudletScheduler_SubmitAmortizesFileTransfer(t *testing.T) {
	s := NewCloudletSchedulerSpaceShared()
	s.UpdateVMProcessing(0, []float64{1000}, 0.01)
	job := &fakeJob{id: "t0", length: 1000, pes: 1}

	// file transfer time of 0.1s at capacity 1000 adds 100 MI to length.
	s.Submit(job, 0, 0.1)
	assert.Equal(t, 1100.0, job.length)
}
