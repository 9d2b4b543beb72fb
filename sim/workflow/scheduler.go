package workflow

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/workflowsim-go/workflowsim/sim"
	"github.com/workflowsim-go/workflowsim/sim/config"
	"github.com/workflowsim-go/workflowsim/sim/datacenter"
	"github.com/workflowsim-go/workflowsim/sim/failure"
	"github.com/workflowsim-go/workflowsim/sim/resource"
)

// BrokerDatacenter pairs a datacenter reference with the kernel entity id
// events are addressed to — the direct reference serves the Start-time
// characteristics fan-out, the id serves every in-simulation Send.
type BrokerDatacenter struct {
	DC *datacenter.Datacenter
	ID sim.EntityID
}

// Scheduler is the per-DatacenterBroker C4 entity of §4.4: drives VM
// creation across its configured datacenters, then accepts cloudlet
// submissions from the Workflow Engine, dispatches them to the chosen
// target VM's datacenter, and on return forwards the finished job back to
// the Engine.
type Scheduler struct {
	sim.BaseEntity

	Datacenters []BrokerDatacenter
	VMs         []*resource.VM
	Algo        config.SchedulingAlgorithm
	Engine      sim.EntityID

	kernel      *sim.Kernel
	queueDelay  failure.Distribution
	postDelay   failure.Distribution
	failures    *failure.Generator
	log         *logrus.Logger

	vmStatus map[string]int
	vmHome   map[string]sim.EntityID // VM id -> owning datacenter's entity id
}

// NewScheduler creates a Scheduler with the given kernel-assigned id.
// queueDelay, postDelay and failures may all be nil (no delay / no
// failure injection).
func NewScheduler(id sim.EntityID, dcs []BrokerDatacenter, vms []*resource.VM, algo config.SchedulingAlgorithm, engine sim.EntityID, queueDelay, postDelay failure.Distribution, failures *failure.Generator, k *sim.Kernel) *Scheduler {
	return &Scheduler{
		BaseEntity:  sim.NewBaseEntity(id, "workflow-scheduler"),
		Datacenters: dcs,
		VMs:         vms,
		Algo:        algo,
		Engine:      engine,
		kernel:      k,
		queueDelay:  queueDelay,
		postDelay:   postDelay,
		failures:    failures,
		log:         logrus.StandardLogger(),
		vmStatus:    make(map[string]int),
		vmHome:      make(map[string]sim.EntityID),
	}
}

// Start fans out the resource-characteristics inquiry across every
// configured datacenter concurrently via errgroup, failing fast on the
// first datacenter that reports an error, then places every configured VM
// once all have responded (§4.4 "requesting resource characteristics from
// each datacenter... placing VMs once all datacenters have responded").
// This runs once at kernel.Register time, before the event loop starts, so
// it talks to each *datacenter.Datacenter directly rather than over Send.
func (s *Scheduler) Start() {
	if len(s.Datacenters) == 0 {
		return
	}
	g, _ := errgroup.WithContext(context.Background())
	for _, bd := range s.Datacenters {
		bd := bd
		g.Go(func() error {
			_, err := bd.DC.CharacteristicsSync()
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Warnf("scheduler: datacenter characteristics fan-out: %v", err)
		return
	}

	for i, vm := range s.VMs {
		target := s.Datacenters[i%len(s.Datacenters)]
		s.vmHome[vm.ID] = target.ID
		s.kernel.Send(s.ID(), target.ID, 0, sim.TagVMCreate, datacenter.VMCreateRequest{VM: vm})
	}
}

func (s *Scheduler) Shutdown() {}

func (s *Scheduler) Process(ev sim.Event) {
	switch ev.Tag {
	case sim.TagVMCreateAck:
		if ack, ok := ev.Payload.(datacenter.VMCreateReply); ok && ack.Success {
			s.vmStatus[ack.VMID] = sim.VMStatusIdle
		}

	case sim.TagJobSubmit:
		if batch, ok := ev.Payload.(JobBatch); ok {
			s.submitBatch(batch.Jobs)
		}

	case sim.TagCloudletReturn:
		if ret, ok := ev.Payload.(datacenter.CloudletReturn); ok {
			s.handleReturn(ret)
		}
	}
}

// submitBatch applies the configured scheduling algorithm to assign each
// job a VM, then sends each to its VM's owning datacenter with any
// queue-delay (§4.4 Workflow Scheduler, CLOUDLET_SUBMIT handling).
func (s *Scheduler) submitBatch(jobs []*Job) {
	vmIDs := make([]string, len(s.VMs))
	for i, vm := range s.VMs {
		vmIDs[i] = vm.ID
	}
	assignment := schedule(s.Algo, jobs, vmIDs)

	for _, j := range jobs {
		vmID, ok := assignment[j.ID]
		if !ok {
			s.log.Warnf("scheduler: job %s has no VM assignment, dropped", j.ID)
			continue
		}
		dcID, ok := s.vmHome[vmID]
		if !ok {
			s.log.Warnf("scheduler: job %s assigned to unknown VM %s, dropped", j.ID, vmID)
			continue
		}
		j.VMID = vmID
		s.vmStatus[vmID] = sim.VMStatusBusy

		delay := 0.0
		if s.queueDelay != nil {
			delay = s.queueDelay.Next()
		}
		s.kernel.Send(s.ID(), dcID, delay, sim.TagCloudletSubmit, datacenter.CloudletSubmitRequest{
			Cloudlet: j,
			VMID:     vmID,
			Files:    j.Files(),
		})
	}
}

// handleReturn flips the owning VM back to IDLE, invokes the Failure
// Generator against the finished job (§4.7 "On each job return the
// scheduler invokes the Failure Generator"), and forwards it to the
// Workflow Engine after the post-delay.
func (s *Scheduler) handleReturn(ret datacenter.CloudletReturn) {
	s.vmStatus[ret.VMID] = sim.VMStatusIdle

	job, ok := ret.Cloudlet.(*Job)
	if !ok {
		s.log.Warnf("scheduler: cloudlet return %s has unexpected type %T", ret.Cloudlet.CloudletID(), ret.Cloudlet)
		return
	}
	if s.failures != nil {
		s.failures.Sample(job)
	}
	if job.Status != JobFailed {
		job.Status = JobSuccess
	}

	delay := 0.0
	if s.postDelay != nil {
		delay = s.postDelay.Next()
	}
	s.kernel.Send(s.ID(), s.Engine, delay, sim.TagCloudletReturn, JobReturn{Job: job})
}
