package resource

import "fmt"

// Host is a physical machine holding VMs and PE resources (§3 Host).
//
// Invariants: sum of allocated MIPS across VMs <= total PE MIPS; sum of
// allocated RAM <= host RAM; sum of allocated BW <= host BW; sum of VM
// image sizes <= storage.
type Host struct {
	ID int

	PEs            []*PE
	RAMProvisioner *RAMProvisionerSimple
	BWProvisioner  *BWProvisionerSimple
	StorageBytes   int64
	usedStorage    int64
	VMScheduler    *VMSchedulerTimeShared
	vms            map[string]*VM
}

// NewHost creates a host with the given PEs, RAM, BW and storage capacity.
func NewHost(id int, pes []*PE, ram, bw, storage int64) *Host {
	return &Host{
		ID:             id,
		PEs:            pes,
		RAMProvisioner: NewRAMProvisionerSimple(ram),
		BWProvisioner:  NewBWProvisionerSimple(bw),
		StorageBytes:   storage,
		VMScheduler:    NewVMSchedulerTimeShared(pes),
		vms:            make(map[string]*VM),
	}
}

// TotalMIPS sums the MIPS capacity of every PE (used for free-PE/capacity
// inquiries and HEFT VM selection).
func (h *Host) TotalMIPS() float64 {
	total := 0.0
	for _, pe := range h.PEs {
		total += pe.MIPS
	}
	return total
}

// VMCreate attempts to place vm on this host, allocating RAM, BW, storage
// and MIPS in that order. On any failure it rolls back whatever already
// succeeded — RAM, then BW, then storage — before returning false (§7
// "Resource over-commit").
func (h *Host) VMCreate(vm *VM) bool {
	if _, exists := h.vms[vm.UID()]; exists {
		return false
	}

	ramOK := h.RAMProvisioner.Allocate(vm.UID(), vm.RAM, vm.RAM)
	if !ramOK {
		return false
	}

	bwOK := h.BWProvisioner.Allocate(vm.UID(), vm.BW, vm.BW)
	if !bwOK {
		h.rollback(vm, true, false, false)
		return false
	}

	if h.usedStorage+vm.ImageSize > h.StorageBytes {
		h.rollback(vm, true, true, false)
		return false
	}
	h.usedStorage += vm.ImageSize

	if !h.VMScheduler.Allocate(vm.UID(), vm.RequestedMIPSShare()) {
		h.rollback(vm, true, true, true)
		return false
	}

	vm.HostID = fmt.Sprint(h.ID)
	h.vms[vm.UID()] = vm
	return true
}

func (h *Host) rollback(vm *VM, ram, bw, storage bool) {
	if ram {
		h.RAMProvisioner.Deallocate(vm.UID())
	}
	if bw {
		h.BWProvisioner.Deallocate(vm.UID())
	}
	if storage {
		h.usedStorage -= vm.ImageSize
	}
}

// VMDestroy removes vm from the host, freeing its RAM/BW/storage/MIPS.
func (h *Host) VMDestroy(vm *VM) {
	if _, exists := h.vms[vm.UID()]; !exists {
		return
	}
	h.RAMProvisioner.Deallocate(vm.UID())
	h.BWProvisioner.Deallocate(vm.UID())
	h.usedStorage -= vm.ImageSize
	h.VMScheduler.DeallocatePEsForVM(vm.UID())
	delete(h.vms, vm.UID())
}

// VMs returns the VMs currently placed on this host.
func (h *Host) VMs() []*VM {
	out := make([]*VM, 0, len(h.vms))
	for _, vm := range h.vms {
		out = append(out, vm)
	}
	return out
}

// FreePEs reports how many PEs have at least one MIPS of spare capacity.
func (h *Host) FreePEs() int {
	free := 0
	for _, pe := range h.PEs {
		if pe.Provisioner.AvailableMIPS() > 0 {
			free++
		}
	}
	return free
}
