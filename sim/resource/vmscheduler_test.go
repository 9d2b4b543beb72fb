package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func twoPEs(mips float64) []*PE {
	return []*PE{NewPE(0, mips), NewPE(1, mips)}
}

func TestVMScheduler_AllocateWithinCapacity(t *testing.T) {
	s := NewVMSchedulerTimeShared(twoPEs(1000))
	assert.True(t, s.Allocate("vm1", []float64{1000}))
	assert.Equal(t, 1000.0, s.AvailableMIPS())
}

func TestVMScheduler_RejectsOverPECapacity(t *testing.T) {
	s := NewVMSchedulerTimeShared(twoPEs(1000))
	assert.False(t, s.Allocate("vm1", []float64{1500}))
}

func TestVMScheduler_RejectsOverTotalAvailable(t *testing.T) {
	s := NewVMSchedulerTimeShared(twoPEs(1000))
	assert.True(t, s.Allocate("vm1", []float64{1000, 1000}))
	assert.False(t, s.Allocate("vm2", []float64{1000}))
}

func TestVMScheduler_SpansMultiplePEs(t *testing.T) {
	s := NewVMSchedulerTimeShared(twoPEs(1000))
	// 700 fits on PE 0; the 500 share takes PE 0's last 300 and 200 of PE 1.
	assert.True(t, s.Allocate("vm1", []float64{700, 500}))
	ids := s.peMap["vm1"]
	assert.Len(t, ids, 3)
}

func TestVMScheduler_MigrationScaling(t *testing.T) {
	s := NewVMSchedulerTimeShared(twoPEs(1000))
	s.SetMigratingIn("vm1", true)
	assert.True(t, s.Allocate("vm1", []float64{1000}))
	assert.Equal(t, 100.0, s.TotalAllocatedMIPSFor("vm1"))
}

func TestVMScheduler_DeallocateReprovisionsRemaining(t *testing.T) {
	s := NewVMSchedulerTimeShared(twoPEs(1000))
	s.Allocate("vm1", []float64{1000})
	s.Allocate("vm2", []float64{1000})
	s.DeallocatePEsForVM("vm1")

	assert.Nil(t, s.AllocatedMIPSFor("vm1"))
	assert.Equal(t, 1000.0, s.TotalAllocatedMIPSFor("vm2"))
	assert.Equal(t, 1000.0, s.AvailableMIPS())
}

func TestVMScheduler_NoPEs(t *testing.T) {
	s := NewVMSchedulerTimeShared(nil)
	assert.False(t, s.Allocate("vm1", []float64{100}))
}
