package workflow

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/workflowsim-go/workflowsim/sim"
	"github.com/workflowsim-go/workflowsim/sim/config"
	"github.com/workflowsim-go/workflowsim/sim/heft"
	"github.com/workflowsim-go/workflowsim/sim/resource"
)

// TaskListSubmit is the payload the Planner sends downstream to the
// Clustering Engine once planning and impact propagation complete.
type TaskListSubmit struct {
	Tasks []*Task
}

// Planner is the C4 entity of §4.4: on START_SIMULATION it runs the
// configured planning algorithm, propagates impact weights from exit nodes
// upward, then forwards the task list to the Clustering Engine.
type Planner struct {
	sim.BaseEntity

	Tasks    []*Task
	VMs      []*resource.VM
	Algo     config.PlanningAlgorithm
	Next     sim.EntityID

	kernel *sim.Kernel
	log    *logrus.Logger
}

// NewPlanner creates a Planner with the given kernel-assigned id.
func NewPlanner(id sim.EntityID, tasks []*Task, vms []*resource.VM, algo config.PlanningAlgorithm, next sim.EntityID, k *sim.Kernel) *Planner {
	return &Planner{
		BaseEntity: sim.NewBaseEntity(id, "planner"),
		Tasks:      tasks,
		VMs:        vms,
		Algo:       algo,
		Next:       next,
		kernel:     k,
		log:        logrus.StandardLogger(),
	}
}

func (p *Planner) Start()    {}
func (p *Planner) Shutdown() {}

func (p *Planner) Process(ev sim.Event) {
	if ev.Tag != sim.TagStartSimulation {
		return
	}
	if err := p.plan(); err != nil {
		p.log.Warnf("planner: %v — proceeding with unplanned tasks", err)
	}
	propagateImpact(p.Tasks)
	p.kernel.Send(p.ID(), p.Next, 0, sim.TagJobSubmit, TaskListSubmit{Tasks: p.Tasks})
}

// plan runs the configured algorithm, HEFT by default; any other value is
// treated as a pass-through (tasks keep whatever VM id they already carry,
// e.g. from a prior static assignment) since only HEFT and STATIC
// pass-through are fully specified (§6).
func (p *Planner) plan() error {
	if p.Algo != config.PlanningHEFT {
		return nil
	}
	views := make([]heft.Task, len(p.Tasks))
	for i, t := range p.Tasks {
		views[i] = heftTaskView{t}
	}
	assignments, err := heft.Plan(views, p.VMs)
	if err != nil {
		return err
	}
	for _, t := range p.Tasks {
		a, ok := assignments[t.ID]
		if !ok {
			continue
		}
		t.VMID = a.VMID
		t.ExecStartTime = a.Start
		t.FinishTime = a.Finish
	}
	return nil
}

// propagateImpact assigns each exit task (no children) impact 1/|exits|,
// then walks tasks in descending depth order so every child's impact is
// settled before its parents average over them (§4.4 "propagates impact
// weights from exit nodes upward").
func propagateImpact(tasks []*Task) {
	byID := make(map[string]*Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	var exits []*Task
	for _, t := range tasks {
		if len(t.Children) == 0 {
			exits = append(exits, t)
		}
	}
	if len(exits) == 0 {
		return
	}
	for _, t := range exits {
		t.Impact = 1.0 / float64(len(exits))
	}

	ordered := make([]*Task, len(tasks))
	copy(ordered, tasks)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Depth > ordered[j].Depth })

	for _, t := range ordered {
		if len(t.Children) == 0 {
			continue
		}
		var sum float64
		for _, cid := range t.Children {
			if c, ok := byID[cid]; ok {
				sum += c.Impact
			}
		}
		t.Impact = sum / float64(len(t.Children))
	}
}
