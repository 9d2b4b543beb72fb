package workflow

import (
	"github.com/google/uuid"

	"github.com/workflowsim-go/workflowsim/sim"
	"github.com/workflowsim-go/workflowsim/sim/catalog"
)

// JobListSubmit is the payload the Clustering Engine sends downstream to
// the Workflow Engine.
type JobListSubmit struct {
	Jobs []*Job
}

// ClusteringEngine is the C4 entity of §4.4: converts tasks to jobs under
// the default 1:1 policy, injects a synthetic STAGE_IN root job carrying
// the union of "real input" files, then forwards the job list onward.
type ClusteringEngine struct {
	sim.BaseEntity

	Next sim.EntityID

	kernel *sim.Kernel
	arena  map[string]*Task
}

// NewClusteringEngine creates a ClusteringEngine with the given
// kernel-assigned id.
func NewClusteringEngine(id sim.EntityID, next sim.EntityID, k *sim.Kernel) *ClusteringEngine {
	return &ClusteringEngine{
		BaseEntity: sim.NewBaseEntity(id, "clustering-engine"),
		Next:       next,
		kernel:     k,
	}
}

func (c *ClusteringEngine) Start()    {}
func (c *ClusteringEngine) Shutdown() {}

func (c *ClusteringEngine) Process(ev sim.Event) {
	submit, ok := ev.Payload.(TaskListSubmit)
	if !ok {
		return
	}
	jobs := c.cluster(submit.Tasks)
	c.kernel.Send(c.ID(), c.Next, 0, sim.TagJobSubmit, JobListSubmit{Jobs: jobs})
}

// cluster implements the default 1:1 task->job policy plus the synthetic
// STAGE_IN root job of §4.4.
func (c *ClusteringEngine) cluster(tasks []*Task) []*Job {
	c.arena = make(map[string]*Task, len(tasks))
	for _, t := range tasks {
		c.arena[t.ID] = t
	}

	jobByID := make(map[string]*Job, len(tasks))
	jobs := make([]*Job, 0, len(tasks)+1)

	for _, t := range tasks {
		j := NewJob(uuid.NewString(), ClassCompute, []*Task{t}, c.arena)
		j.VMID = t.VMID // inherit the planner's placement along with depth/files
		jobByID[t.ID] = j
		jobs = append(jobs, j)
	}

	for _, t := range tasks {
		j := jobByID[t.ID]
		seen := make(map[string]bool)
		for _, pid := range t.Parents {
			if parentJob, ok := jobByID[pid]; ok && !seen[parentJob.ID] {
				j.ParentJobIDs = append(j.ParentJobIDs, parentJob.ID)
				seen[parentJob.ID] = true
			}
		}
	}

	var rootless []*Job
	var allInputs []catalog.FileItem
	for _, t := range tasks {
		j := jobByID[t.ID]
		if len(j.ParentJobIDs) == 0 {
			rootless = append(rootless, j)
		}
		allInputs = append(allInputs, t.Files...)
	}

	if len(rootless) == 0 {
		return jobs
	}

	stageIn := NewJob(uuid.NewString(), ClassStageIn, nil, c.arena)
	stageIn.DepthLevel = 0
	seenFile := make(map[string]bool)
	for _, f := range catalog.RealInputs(allInputs) {
		key := f.Name + "|" + f.Type.String()
		if seenFile[key] {
			continue
		}
		seenFile[key] = true
		stageIn.stagedFiles = append(stageIn.stagedFiles, f)
	}

	for _, j := range rootless {
		j.ParentJobIDs = append(j.ParentJobIDs, stageIn.ID)
	}
	// STAGE_IN has no member task of its own to inherit a placement from;
	// default it to wherever the workflow's first root job will run.
	stageIn.VMID = rootless[0].VMID

	return append([]*Job{stageIn}, jobs...)
}
