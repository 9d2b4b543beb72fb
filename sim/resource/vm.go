package resource

// VM is a virtual machine placed on at most one Host at a time (§3 VM).
type VM struct {
	ID    string
	Owner string

	MIPSPerPE float64
	NumPEs    int
	RAM       int64
	BW        int64
	ImageSize int64

	// InMigration biases the allocated MIPS the host's VMSchedulerTimeShared
	// gives this VM (§4.2).
	InMigration bool

	// Cost fields, populated when the cost model is VM-based (§3).
	CostPerSecond   float64
	CostPerMemoryMB float64
	CostPerStorGB   float64
	CostPerBW       float64

	HostID string

	Scheduler *CloudletSchedulerSpaceShared
}

// NewVM creates a VM with its own space-shared cloudlet scheduler.
func NewVM(id, owner string, mipsPerPE float64, numPEs int, ram, bw, imageSize int64) *VM {
	return &VM{
		ID:        id,
		Owner:     owner,
		MIPSPerPE: mipsPerPE,
		NumPEs:    numPEs,
		RAM:       ram,
		BW:        bw,
		ImageSize: imageSize,
		Scheduler: NewCloudletSchedulerSpaceShared(),
	}
}

// UID returns the VM's unique identifier used as a provisioner map key,
// "user#vm" when an owner is set.
func (v *VM) UID() string {
	if v.Owner == "" {
		return v.ID
	}
	return v.Owner + "#" + v.ID
}

// TotalMIPS returns the VM's declared peak MIPS across all its PEs.
func (v *VM) TotalMIPS() float64 {
	return v.MIPSPerPE * float64(v.NumPEs)
}

// RequestedMIPSShare returns an equal share of MIPSPerPE across NumPEs, the
// vector a VM requests from its host's VMSchedulerTimeShared.
func (v *VM) RequestedMIPSShare() []float64 {
	share := make([]float64, v.NumPEs)
	for i := range share {
		share[i] = v.MIPSPerPE
	}
	return share
}
