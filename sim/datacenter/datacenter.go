package datacenter

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/workflowsim-go/workflowsim/sim"
	"github.com/workflowsim-go/workflowsim/sim/catalog"
	"github.com/workflowsim-go/workflowsim/sim/resource"
)

// MinTimeBetweenEvents mirrors sim.MinTimeBetweenEvents so the datacenter's
// re-tick scheduling uses the same floor as the cloudlet scheduler (§4.2,
// §4.3 step 6).
const MinTimeBetweenEvents = sim.MinTimeBetweenEvents

// Datacenter is the C3 entity of §4.3: a named host collection behind a
// VM allocation policy, dispatching the fixed tag set on Process.
type Datacenter struct {
	sim.BaseEntity

	Name            string
	Hosts           []*resource.Host
	Characteristics Characteristics
	Policy          VMAllocationPolicy
	Catalog         catalog.Catalog
	StorageRates    []float64 // SHARED-mode local storage volume rates (§4.6)

	kernel *sim.Kernel

	vmOwner  map[string]sim.EntityID // VM uid -> owning scheduler entity
	vmByUID  map[string]*resource.VM
	vmByID   map[string]*resource.VM
	log      *logrus.Logger
}

// New creates a Datacenter entity with the given kernel-assigned id, to be
// registered with a kernel via kernel.Register(id must match the kernel's
// next registration slot, per sim.BaseEntity's construction convention).
func New(id sim.EntityID, name string, hosts []*resource.Host, characteristics Characteristics, policy VMAllocationPolicy, cat catalog.Catalog, k *sim.Kernel) *Datacenter {
	return &Datacenter{
		BaseEntity:      sim.NewBaseEntity(id, name),
		Name:            name,
		Hosts:           hosts,
		Characteristics: characteristics,
		Policy:          policy,
		Catalog:         cat,
		kernel:          k,
		vmOwner:         make(map[string]sim.EntityID),
		vmByUID:         make(map[string]*resource.VM),
		vmByID:          make(map[string]*resource.VM),
		log:             logrus.StandardLogger(),
	}
}

func (d *Datacenter) Start()    {}
func (d *Datacenter) Shutdown() {}

// CharacteristicsSync returns the datacenter's static characteristics
// directly, bypassing the simulated event round trip — the Workflow
// Scheduler's startup fan-out reads every configured datacenter's
// characteristics this way before the kernel loop starts (§4.4 "requesting
// resource characteristics from each datacenter").
func (d *Datacenter) CharacteristicsSync() (Characteristics, error) {
	if len(d.Hosts) == 0 {
		return Characteristics{}, fmt.Errorf("datacenter %s: no hosts configured", d.Name)
	}
	return d.Characteristics, nil
}

// Process dispatches a single delivered event by tag (§4.3).
func (d *Datacenter) Process(ev sim.Event) {
	switch ev.Tag {
	case sim.TagResourceCharacteristicsRequest:
		d.kernel.Send(d.ID(), ev.Source, 0, sim.TagResourceCharacteristics, CharacteristicsReply{Characteristics: d.Characteristics})

	case sim.TagResourceNumPE:
		d.kernel.Send(d.ID(), ev.Source, 0, sim.TagResourceNumFreePE, d.numPEReply())

	case sim.TagVMCreate:
		d.processVMCreate(ev)

	case sim.TagVMDestroy:
		d.processVMDestroy(ev)

	case sim.TagCloudletSubmit:
		d.processCloudletSubmit(ev)

	case sim.TagCloudletCancel:
		d.processCloudletCancel(ev)

	case sim.TagCloudletPause:
		d.processCloudletPause(ev)

	case sim.TagCloudletResume:
		d.processCloudletResume(ev)

	case sim.TagCloudletStatus:
		d.processCloudletStatus(ev)

	case sim.TagVMDatacenterEvent:
		d.updateCloudletProcessing()
		d.completionSweep()

	default:
		d.log.Warnf("datacenter %s: unhandled tag %d", d.Name, ev.Tag)
	}
}

func (d *Datacenter) numPEReply() NumPEReply {
	var total, free int
	for _, h := range d.Hosts {
		total += len(h.PEs)
		free += h.FreePEs()
	}
	return NumPEReply{NumPEs: total, NumFreePEs: free}
}

func (d *Datacenter) processVMCreate(ev sim.Event) {
	req, ok := ev.Payload.(VMCreateRequest)
	if !ok {
		panic("datacenter: VMCreate payload has unexpected shape")
	}
	vm := req.VM
	_, success := d.Policy.Allocate(vm)
	if success {
		d.vmOwner[vm.UID()] = ev.Source
		d.vmByUID[vm.UID()] = vm
		d.vmByID[vm.ID] = vm
		d.updateCloudletProcessing()
	}
	d.kernel.Send(d.ID(), ev.Source, 0, sim.TagVMCreateAck, VMCreateReply{VMID: vm.ID, Success: success})
}

func (d *Datacenter) processVMDestroy(ev sim.Event) {
	req, ok := ev.Payload.(VMDestroyRequest)
	if !ok {
		panic("datacenter: VMDestroy payload has unexpected shape")
	}
	d.Policy.Deallocate(req.VM)
	delete(d.vmOwner, req.VM.UID())
	delete(d.vmByUID, req.VM.UID())
	delete(d.vmByID, req.VM.ID)
}

// processCloudletSubmit implements the 6-step sequence of §4.3 verbatim.
func (d *Datacenter) processCloudletSubmit(ev sim.Event) {
	req, ok := ev.Payload.(CloudletSubmitRequest)
	if !ok {
		panic("datacenter: CloudletSubmit payload has unexpected shape")
	}

	// Step 1: advance every VM to the current clock before admitting the
	// new cloudlet, and schedule the next internal tick.
	d.updateCloudletProcessing()

	vm, ok := d.vmByID[req.VMID]
	if !ok {
		d.kernel.Send(d.ID(), ev.Source, 0, sim.TagCloudletSubmitAck, CloudletSubmitAck{CloudletID: req.Cloudlet.CloudletID(), Accepted: false})
		return
	}

	// Step 2: nothing to re-check here — a brand-new ResCloudlet can never
	// already be finished; the check exists in the source for cloudlets
	// resubmitted after a MOVE, which this simulator models as a fresh
	// Submit on the destination VM instead.

	// Step 3: resource cost parameters live on Characteristics/VM already;
	// nothing further to attach since sim/resource.Cloudlet carries no
	// cost fields of its own.

	// Step 4: STAGE_IN file materialization.
	for _, f := range req.Files {
		if f.Type == catalog.FileOutput {
			continue
		}
		d.Catalog.AddFile(f.Name, d.registrationKey(vm))
	}

	// Step 5: submit to the target VM's cloudlet scheduler, folding the
	// file-transfer time into the cloudlet's length.
	transferTime := d.transferTime(vm, req.Files)
	estimate := vm.Scheduler.Submit(req.Cloudlet, d.kernel.Clock, transferTime)

	d.vmOwner[vm.UID()] = ev.Source

	// Step 6: re-tick if the estimate is meaningful.
	if estimate > 0 {
		tick := sim.ClampToFloor(d.kernel.Clock+estimate+transferTime, d.kernel.Clock+MinTimeBetweenEvents+0.01)
		d.kernel.Send(d.ID(), d.ID(), tick-d.kernel.Clock, sim.TagVMDatacenterEvent, nil)
	}

	d.kernel.Send(d.ID(), ev.Source, 0, sim.TagCloudletSubmitAck, CloudletSubmitAck{CloudletID: req.Cloudlet.CloudletID(), Accepted: true})
	d.completionSweep()
}

// registrationKey is the catalog key a file is registered under: the VM id
// for LOCAL catalogs, the datacenter name for SHARED catalogs. Both
// catalog.LocalCatalog and catalog.SharedCatalog accept a plain string key,
// so the datacenter doesn't need to know which mode is active here.
func (d *Datacenter) registrationKey(vm *resource.VM) string {
	if _, ok := d.Catalog.(*catalog.LocalCatalog); ok {
		return vm.ID
	}
	return d.Name
}

// transferTime sums the transfer-time contribution of every real input
// file against the target VM, per §4.6.
func (d *Datacenter) transferTime(vm *resource.VM, files []catalog.FileItem) float64 {
	var total float64
	reals := catalog.RealInputs(files)
	switch c := d.Catalog.(type) {
	case *catalog.SharedCatalog:
		for _, f := range reals {
			if !c.HasFile(f.Name, d.Name) {
				continue
			}
			total += catalog.TransferTimeShared(f, d.StorageRates)
		}
	case *catalog.LocalCatalog:
		for _, f := range reals {
			locations := c.Locations(f.Name)
			total += catalog.TransferTimeLocal(f, vm.ID, float64(vm.BW), locations, d.bwForVM)
		}
	}
	return total
}

func (d *Datacenter) bwForVM(vmID string) (float64, bool) {
	vm, ok := d.vmByID[vmID]
	if !ok {
		return 0, false
	}
	return float64(vm.BW), true
}

func (d *Datacenter) processCloudletCancel(ev sim.Event) {
	req, ok := ev.Payload.(CloudletCancelRequest)
	if !ok {
		panic("datacenter: CloudletCancel payload has unexpected shape")
	}
	if vm, ok := d.vmByID[req.VMID]; ok {
		vm.Scheduler.Cancel(req.CloudletID, d.kernel.Clock)
	}
}

func (d *Datacenter) processCloudletPause(ev sim.Event) {
	req, ok := ev.Payload.(CloudletPauseRequest)
	if !ok {
		panic("datacenter: CloudletPause payload has unexpected shape")
	}
	ok2 := false
	if vm, found := d.vmByID[req.VMID]; found {
		ok2 = vm.Scheduler.Pause(req.CloudletID, d.kernel.Clock)
	}
	d.kernel.Send(d.ID(), ev.Source, 0, sim.TagCloudletPauseAck, CloudletStatusReply{CloudletID: req.CloudletID, Found: ok2})
}

func (d *Datacenter) processCloudletResume(ev sim.Event) {
	req, ok := ev.Payload.(CloudletResumeRequest)
	if !ok {
		panic("datacenter: CloudletResume payload has unexpected shape")
	}
	var estimate float64
	if vm, found := d.vmByID[req.VMID]; found {
		estimate = vm.Scheduler.Resume(req.CloudletID, d.kernel.Clock)
	}
	if estimate > 0 {
		tick := sim.ClampToFloor(estimate, d.kernel.Clock+MinTimeBetweenEvents+0.01)
		d.kernel.Send(d.ID(), d.ID(), tick-d.kernel.Clock, sim.TagVMDatacenterEvent, nil)
	}
	d.kernel.Send(d.ID(), ev.Source, 0, sim.TagCloudletResumeAck, nil)
}

func (d *Datacenter) processCloudletStatus(ev sim.Event) {
	req, ok := ev.Payload.(CloudletStatusRequest)
	if !ok {
		panic("datacenter: CloudletStatus payload has unexpected shape")
	}
	var status resource.CloudletStatus
	var found bool
	if vm, ok := d.vmByID[req.VMID]; ok {
		status, found = vm.Scheduler.Status(req.CloudletID)
	}
	d.kernel.Send(d.ID(), ev.Source, 0, sim.TagCloudletStatus, CloudletStatusReply{CloudletID: req.CloudletID, Status: status, Found: found})
}

// updateCloudletProcessing advances every host's VMs' cloudlet schedulers
// to the current clock and reschedules the next internal tick at the
// earliest resulting completion estimate (§4.3 step 1).
func (d *Datacenter) updateCloudletProcessing() {
	minNext := -1.0
	for _, h := range d.Hosts {
		for _, vm := range h.VMs() {
			est := vm.Scheduler.UpdateVMProcessing(d.kernel.Clock, h.VMScheduler.AllocatedMIPSFor(vm.UID()), MinTimeBetweenEvents)
			if est > 0 && (minNext < 0 || est < minNext) {
				minNext = est
			}
		}
	}
	if minNext >= 0 {
		tick := sim.ClampToFloor(minNext, d.kernel.Clock+MinTimeBetweenEvents+0.01)
		d.kernel.Send(d.ID(), d.ID(), tick-d.kernel.Clock, sim.TagVMDatacenterEvent, nil)
	}
}

// completionSweep walks hosts -> VMs -> finished cloudlets, drains each
// completed cloudlet back to its owning scheduler entity, and registers its
// output files in the replica catalog (§4.3 "Completion check").
func (d *Datacenter) completionSweep() {
	for _, h := range d.Hosts {
		for _, vm := range h.VMs() {
			for vm.Scheduler.HasFinished() {
				rcl := vm.Scheduler.NextFinished()
				d.registerOutputs(vm, rcl.Job)
				if w, ok := rcl.Job.(interface{ SetExecWindow(float64, float64) }); ok {
					w.SetExecWindow(rcl.ExecStartTime, rcl.FinishTime)
				}

				owner, ok := d.vmOwner[vm.UID()]
				if !ok {
					continue
				}
				d.kernel.Send(d.ID(), owner, 0, sim.TagCloudletReturn, CloudletReturn{Cloudlet: rcl.Job, VMID: vm.ID})
			}
		}
	}
}

func (d *Datacenter) registerOutputs(vm *resource.VM, job resource.Cloudlet) {
	outputsOf, ok := job.(interface{ Files() []catalog.FileItem })
	if !ok {
		return
	}
	key := d.registrationKey(vm)
	for _, f := range outputsOf.Files() {
		if f.Type == catalog.FileOutput {
			d.Catalog.AddFile(f.Name, key)
		}
	}
}
