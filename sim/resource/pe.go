package resource

import "fmt"

// PEStatus is the status of a single processing element (§3 PE).
type PEStatus int

const (
	PEFree PEStatus = iota
	PEBusy
	PEFailed
)

// PE is a single CPU slot with a MIPS rating and a provisioner tracking
// per-VM MIPS allocations (§3, §4.2).
type PE struct {
	ID          int
	MIPS        float64
	Status      PEStatus
	Provisioner *MIPSProvisionerSimple
}

// NewPE creates a free PE with its own simple MIPS provisioner.
func NewPE(id int, mips float64) *PE {
	return &PE{
		ID:          id,
		MIPS:        mips,
		Status:      PEFree,
		Provisioner: NewMIPSProvisionerSimple(mips),
	}
}

// MIPSProvisionerSimple allocates MIPS shares of a single PE across VMs.
// Invariant: sum of allocated MIPS on a PE <= its total MIPS (§4.2).
type MIPSProvisionerSimple struct {
	totalMIPS     float64
	availableMIPS float64
	allocations   map[string][]float64 // VM UID -> list of allocated shares
}

// NewMIPSProvisionerSimple creates a provisioner with the PE's total MIPS
// as its full available capacity.
func NewMIPSProvisionerSimple(totalMIPS float64) *MIPSProvisionerSimple {
	return &MIPSProvisionerSimple{
		totalMIPS:     totalMIPS,
		availableMIPS: totalMIPS,
		allocations:   make(map[string][]float64),
	}
}

// Allocate assigns an additional MIPS share to vmUID. Returns false without
// mutating state if capacity is insufficient.
func (p *MIPSProvisionerSimple) Allocate(vmUID string, mips float64) bool {
	if mips > p.availableMIPS {
		return false
	}
	p.availableMIPS -= mips
	p.allocations[vmUID] = append(p.allocations[vmUID], mips)
	return true
}

// Deallocate removes every share allocated to vmUID, returning capacity.
func (p *MIPSProvisionerSimple) Deallocate(vmUID string) {
	for _, share := range p.allocations[vmUID] {
		p.availableMIPS += share
	}
	delete(p.allocations, vmUID)
}

// DeallocateAll clears every allocation, restoring full capacity.
func (p *MIPSProvisionerSimple) DeallocateAll() {
	p.allocations = make(map[string][]float64)
	p.availableMIPS = p.totalMIPS
}

// AvailableMIPS returns the unallocated MIPS capacity.
func (p *MIPSProvisionerSimple) AvailableMIPS() float64 { return p.availableMIPS }

// TotalMIPS returns the PE's total MIPS rating.
func (p *MIPSProvisionerSimple) TotalMIPS() float64 { return p.totalMIPS }

// Utilization returns allocated/total, in [0, 1].
func (p *MIPSProvisionerSimple) Utilization() float64 {
	if p.totalMIPS == 0 {
		return 0
	}
	return (p.totalMIPS - p.availableMIPS) / p.totalMIPS
}

func (p *MIPSProvisionerSimple) String() string {
	return fmt.Sprintf("MIPSProvisioner(total=%.2f, available=%.2f)", p.totalMIPS, p.availableMIPS)
}
