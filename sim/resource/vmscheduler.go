package resource

// VMSchedulerTimeShared is the host-level VM scheduler of §4.2: it accepts
// a requested MIPS vector per VM, applies migration scaling, and greedily
// re-provisions PEs across all currently-placed VMs whenever anything
// changes (§4.2 "design property, not an optimisation").
type VMSchedulerTimeShared struct {
	pes []*PE

	requestedMIPS map[string][]float64
	allocatedMIPS map[string][]float64
	peMap         map[string][]int // VM UID -> PE ids holding a share

	migratingIn  map[string]bool
	migratingOut map[string]bool

	availableMIPS float64
}

// NewVMSchedulerTimeShared creates a scheduler over the given PE list.
func NewVMSchedulerTimeShared(pes []*PE) *VMSchedulerTimeShared {
	total := 0.0
	for _, pe := range pes {
		total += pe.MIPS
	}
	return &VMSchedulerTimeShared{
		pes:           pes,
		requestedMIPS: make(map[string][]float64),
		allocatedMIPS: make(map[string][]float64),
		peMap:         make(map[string][]int),
		migratingIn:   make(map[string]bool),
		migratingOut:  make(map[string]bool),
		availableMIPS: total,
	}
}

// SetMigratingIn marks a VM as migrating in (true) or clears its
// migrating-in mark (false). It never marks a VM as migrating out.
func (v *VMSchedulerTimeShared) SetMigratingIn(vmUID string, in bool) {
	if in {
		v.migratingIn[vmUID] = true
		delete(v.migratingOut, vmUID)
	} else {
		delete(v.migratingIn, vmUID)
	}
}

// Allocate accepts a requested MIPS vector for vmUID, one entry per VM-PE.
// Rejects (returning false, no mutation) if any single entry exceeds a PE's
// capacity or if the total exceeds available MIPS. On success, applies
// migration scaling (10% migrating-in, 90% migrating-out, 100% otherwise)
// and re-provisions every VM's PEs (§4.2).
func (v *VMSchedulerTimeShared) Allocate(vmUID string, mipsShareRequested []float64) bool {
	peCapacity := 0.0
	if len(v.pes) > 0 {
		peCapacity = v.pes[0].MIPS
	}

	total := 0.0
	for _, mips := range mipsShareRequested {
		if mips > peCapacity {
			return false
		}
		total += mips
	}
	if total > v.availableMIPS {
		return false
	}

	v.requestedMIPS[vmUID] = mipsShareRequested
	v.availableMIPS -= total

	scale := 1.0
	if v.migratingOut[vmUID] {
		scale = 0.9
	} else if v.migratingIn[vmUID] {
		scale = 0.1
	}
	allocated := make([]float64, len(mipsShareRequested))
	for i, mips := range mipsShareRequested {
		allocated[i] = mips * scale
	}
	v.allocatedMIPS[vmUID] = allocated

	v.reprovisionPEs()
	return true
}

// reprovisionPEs implements the greedy walk of §4.2: PEs are scanned in
// order, and a VM's allocation may span multiple PEs, each PE recording a
// per-VM share list.
func (v *VMSchedulerTimeShared) reprovisionPEs() {
	for _, pe := range v.pes {
		pe.Provisioner.DeallocateAll()
	}
	v.peMap = make(map[string][]int)

	if len(v.pes) == 0 {
		return
	}
	peIdx := 0
	pe := v.pes[peIdx]

	for vmUID, shares := range v.allocatedMIPS {
		for _, share := range shares {
			remaining := share
			for remaining >= 0.1 {
				available := pe.Provisioner.AvailableMIPS()
				if available >= remaining {
					pe.Provisioner.Allocate(vmUID, remaining)
					v.peMap[vmUID] = append(v.peMap[vmUID], pe.ID)
					remaining = 0
					break
				}
				pe.Provisioner.Allocate(vmUID, available)
				v.peMap[vmUID] = append(v.peMap[vmUID], pe.ID)
				remaining -= available
				if remaining <= 0.1 {
					break
				}
				peIdx++
				if peIdx >= len(v.pes) {
					// Out of PEs: remaining demand goes unsatisfied.
					return
				}
				pe = v.pes[peIdx]
			}
		}
	}
}

// DeallocatePEsForVM frees vmUID's allocation and re-runs provisioning for
// every remaining VM's requested MIPS, so freeing one VM may compact the
// others (§4.2 "tests must see residual VMs re-provisioned").
func (v *VMSchedulerTimeShared) DeallocatePEsForVM(vmUID string) {
	delete(v.requestedMIPS, vmUID)
	delete(v.allocatedMIPS, vmUID)

	total := 0.0
	for _, pe := range v.pes {
		total += pe.MIPS
		pe.Provisioner.DeallocateAll()
	}
	v.availableMIPS = total
	v.peMap = make(map[string][]int)

	remaining := v.requestedMIPS
	v.requestedMIPS = make(map[string][]float64)
	v.allocatedMIPS = make(map[string][]float64)
	for uid, shares := range remaining {
		v.Allocate(uid, shares)
	}
}

// AllocatedMIPSFor returns the (possibly migration-scaled) MIPS shares
// currently allocated to vmUID.
func (v *VMSchedulerTimeShared) AllocatedMIPSFor(vmUID string) []float64 {
	return v.allocatedMIPS[vmUID]
}

// TotalAllocatedMIPSFor sums the allocated shares for vmUID.
func (v *VMSchedulerTimeShared) TotalAllocatedMIPSFor(vmUID string) float64 {
	total := 0.0
	for _, m := range v.allocatedMIPS[vmUID] {
		total += m
	}
	return total
}

// AvailableMIPS returns the scheduler's remaining unallocated MIPS.
func (v *VMSchedulerTimeShared) AvailableMIPS() float64 { return v.availableMIPS }
