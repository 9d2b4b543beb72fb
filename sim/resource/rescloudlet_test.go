package resource

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResCloudlet_RemainingInstructionsClampsToZero(t *testing.T) {
	job := &fakeJob{id: "t0", length: 10, pes: 1}
	rcl := NewResCloudlet(job, 0)
	rcl.FinishedSoFar = 20 * MILLION
	assert.Equal(t, 0.0, rcl.RemainingInstructions())
}

func TestResCloudlet_SetStatusAccumulatesExecTime(t *testing.T) {
	job := &fakeJob{id: "t0", length: 10, pes: 1}
	rcl := NewResCloudlet(job, 0)

	rcl.SetStatus(StatusInExec, 1.0)
	assert.Equal(t, 1.0, rcl.ExecStartTime)

	rcl.SetStatus(StatusPaused, 3.5)
	assert.Equal(t, 2.5, rcl.TotalCompletionTime)

	rcl.SetStatus(StatusResumed, 3.5)
	assert.Equal(t, 3.5, rcl.ExecStartTime)

	rcl.SetStatus(StatusSuccess, 5.0)
	assert.Equal(t, 4.0, rcl.TotalCompletionTime)
}

func TestResCloudlet_SetStatusNoOpOnSameStatus(t *testing.T) {
	job := &fakeJob{id: "t0", length: 10, pes: 1}
	rcl := NewResCloudlet(job, 0)
	rcl.SetStatus(StatusInExec, 1.0)
	changed := rcl.SetStatus(StatusInExec, 2.0)
	assert.False(t, changed)
	assert.Equal(t, 1.0, rcl.ExecStartTime)
}

func TestResCloudlet_EstimatedFinishInfiniteWhenNoCapacity(t *testing.T) {
	job := &fakeJob{id: "t0", length: 10, pes: 1}
	rcl := NewResCloudlet(job, 0)
	assert.True(t, math.IsInf(rcl.EstimatedFinish(0, 0), 1))
}

func TestResCloudlet_EstimatedFinish(t *testing.T) {
	job := &fakeJob{id: "t0", length: 1000, pes: 2}
	rcl := NewResCloudlet(job, 0)
	assert.Equal(t, 500.0, rcl.EstimatedFinish(0, 1000))
}
