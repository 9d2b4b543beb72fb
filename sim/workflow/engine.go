package workflow

import (
	"github.com/google/uuid"

	"github.com/workflowsim-go/workflowsim/sim"
	"github.com/workflowsim-go/workflowsim/sim/failure"
)

// JobBatch is the payload the Workflow Engine sends downstream to the
// Workflow Scheduler — at most WEDInterval jobs from one ready-set pass.
type JobBatch struct {
	Jobs []*Job
}

// JobReturn is the payload a Scheduler sends back to the Engine once a
// job has finished (or failed) on a datacenter, tag sim.TagCloudletReturn.
type JobReturn struct {
	Job *Job
}

// Engine is the C4 "Workflow Engine" of §4.4: holds the full job list and,
// when the job list arrives and after every job return, computes the ready
// set (jobs not yet dispatched whose every parent has already been
// received) and delivers
// it to the Scheduler in WEDInterval-sized batches, each delayed by an
// independent draw from the WED-delay distribution.
type Engine struct {
	sim.BaseEntity

	Next        sim.EntityID
	WEDInterval int

	kernel       *sim.Kernel
	wedDelay     failure.Distribution
	reclustering failure.Reclustering
	nextID       func() string

	jobs       []*Job
	byID       map[string]*Job
	received   map[string]bool
	dispatched map[string]bool
	inFlight   int
}

// NewEngine creates an Engine with the given kernel-assigned id. wedDelay
// may be nil (no delay). reclustering defaults to failure.NOOPReclustering
// when nil.
func NewEngine(id sim.EntityID, next sim.EntityID, wedInterval int, wedDelay failure.Distribution, reclustering failure.Reclustering, k *sim.Kernel) *Engine {
	if wedInterval <= 0 {
		wedInterval = 1
	}
	if reclustering == nil {
		reclustering = failure.NOOPReclustering{}
	}
	return &Engine{
		BaseEntity:   sim.NewBaseEntity(id, "workflow-engine"),
		Next:         next,
		WEDInterval:  wedInterval,
		kernel:       k,
		wedDelay:     wedDelay,
		reclustering: reclustering,
		nextID:       uuid.NewString,
		received:     make(map[string]bool),
		dispatched:   make(map[string]bool),
	}
}

func (e *Engine) Start()    {}
func (e *Engine) Shutdown() {}

func (e *Engine) Process(ev sim.Event) {
	switch ev.Tag {
	case sim.TagJobSubmit:
		submit, ok := ev.Payload.(JobListSubmit)
		if !ok {
			return
		}
		e.init(submit.Jobs)
		e.tick()
	case sim.TagCloudletReturn:
		if ret, ok := ev.Payload.(JobReturn); ok {
			e.handleReturn(ret.Job)
		}
	}
}

// Jobs returns the engine's full job list, including any reclustered
// replacements appended after a FAILED return — used by callers that
// compute output metrics once the kernel run finishes.
func (e *Engine) Jobs() []*Job { return e.jobs }

func (e *Engine) init(jobs []*Job) {
	e.jobs = jobs
	e.byID = make(map[string]*Job, len(jobs))
	for _, j := range jobs {
		e.byID[j.ID] = j
	}
}

// tick computes the ready set — jobs not yet dispatched whose every parent
// has already been received (returned, whether or not it failed) — against the index
// built by init. Reclustered replacements from handleReturn are appended
// to e.jobs before the next tick, never mid-scan, so this never observes
// a half-updated job list.
func (e *Engine) tick() {
	var ready []*Job
	for _, j := range e.jobs {
		if e.dispatched[j.ID] {
			continue
		}
		allParentsReceived := true
		for _, pid := range j.ParentJobIDs {
			if !e.received[pid] {
				allParentsReceived = false
				break
			}
		}
		if allParentsReceived {
			ready = append(ready, j)
		}
	}
	for _, j := range ready {
		e.dispatched[j.ID] = true
	}

	for i := 0; i < len(ready); i += e.WEDInterval {
		end := i + e.WEDInterval
		if end > len(ready) {
			end = len(ready)
		}
		batch := ready[i:end]
		delay := 0.0
		if e.wedDelay != nil {
			delay = e.wedDelay.Next()
		}
		e.inFlight += len(batch)
		e.kernel.Send(e.ID(), e.Next, delay, sim.TagJobSubmit, JobBatch{Jobs: batch})
	}
}

// handleReturn marks job received, reclustering it into replacement jobs
// appended to the job list when it FAILED, then re-ticks.
func (e *Engine) handleReturn(job *Job) {
	e.inFlight--
	e.received[job.ID] = true

	if job.Status == JobFailed {
		for _, replacement := range e.reclustering.Process(job, e.nextID) {
			rj, ok := replacement.(*Job)
			if !ok {
				continue
			}
			rj.ParentJobIDs = job.ParentJobIDs
			e.jobs = append(e.jobs, rj)
			e.byID[rj.ID] = rj
		}
	}
	e.tick()
}
