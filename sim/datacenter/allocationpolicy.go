package datacenter

import "github.com/workflowsim-go/workflowsim/sim/resource"

// VMAllocationPolicy chooses a host for a VM (ported from
// cloudsim/VmAllocationPolicy.py per SPEC_FULL §3.3).
type VMAllocationPolicy interface {
	Allocate(vm *resource.VM) (*resource.Host, bool)
	Deallocate(vm *resource.VM)
}

// SimpleAllocationPolicy places a VM on the first host with enough free
// capacity to accept it, scanning hosts in registration order.
type SimpleAllocationPolicy struct {
	hosts     []*resource.Host
	placedOn  map[string]*resource.Host
}

// NewSimpleAllocationPolicy creates a first-fit policy over the given hosts.
func NewSimpleAllocationPolicy(hosts []*resource.Host) *SimpleAllocationPolicy {
	return &SimpleAllocationPolicy{
		hosts:    hosts,
		placedOn: make(map[string]*resource.Host),
	}
}

// Allocate tries each host in order, returning the first that accepts the
// VM via Host.VMCreate.
func (p *SimpleAllocationPolicy) Allocate(vm *resource.VM) (*resource.Host, bool) {
	for _, h := range p.hosts {
		if h.VMCreate(vm) {
			p.placedOn[vm.UID()] = h
			return h, true
		}
	}
	return nil, false
}

// Deallocate removes vm from whichever host holds it, if any.
func (p *SimpleAllocationPolicy) Deallocate(vm *resource.VM) {
	h, ok := p.placedOn[vm.UID()]
	if !ok {
		return
	}
	h.VMDestroy(vm)
	delete(p.placedOn, vm.UID())
}
