package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workflowsim-go/workflowsim/sim"
	"github.com/workflowsim-go/workflowsim/sim/catalog"
	"github.com/workflowsim-go/workflowsim/sim/config"
	"github.com/workflowsim-go/workflowsim/sim/datacenter"
	"github.com/workflowsim-go/workflowsim/sim/resource"
)

func newTestDatacenter(t *testing.T, id sim.EntityID, k *sim.Kernel, numPEs int, mips float64) *datacenter.Datacenter {
	t.Helper()
	var pes []*resource.PE
	for i := 0; i < numPEs; i++ {
		pes = append(pes, resource.NewPE(i, mips))
	}
	host := resource.NewHost(0, pes, 1<<30, 1<<30, 1<<30)
	policy := datacenter.NewSimpleAllocationPolicy([]*resource.Host{host})
	cat := catalog.NewSharedCatalog()
	return datacenter.New(id, "dc0", []*resource.Host{host}, datacenter.DefaultCharacteristics(), policy, cat, k)
}

// TestPipeline_TwoTaskChainRunsEndToEnd wires Planner -> ClusteringEngine ->
// Engine -> Scheduler -> Datacenter exactly as §4.4's diagram and asserts
// both jobs complete successfully.
func TestPipeline_TwoTaskChainRunsEndToEnd(t *testing.T) {
	k := sim.NewKernel()

	dcID := sim.EntityID(0)
	dc := newTestDatacenter(t, dcID, k, 2, 1000)
	k.Register(dc)

	vm := resource.NewVM("vm0", "", 1000, 1, 1024, 1000, 1024)

	schedulerID := sim.EntityID(1)
	engineID := sim.EntityID(2)
	clusteringID := sim.EntityID(3)
	plannerID := sim.EntityID(4)

	scheduler := NewScheduler(schedulerID, []BrokerDatacenter{{DC: dc, ID: dcID}}, []*resource.VM{vm}, config.STATIC, engineID, nil, nil, nil, k)
	k.Register(scheduler)

	engine := NewEngine(engineID, schedulerID, 10, nil, nil, k)
	k.Register(engine)

	clustering := NewClusteringEngine(clusteringID, engineID, k)
	k.Register(clustering)

	a, err := NewTask("A", "a", 1000, 1)
	require.NoError(t, err)
	b, err := NewTask("B", "b", 1000, 1)
	require.NoError(t, err)
	b.Parents = []string{"A"}
	a.Children = []string{"B"}

	planner := NewPlanner(plannerID, []*Task{a, b}, []*resource.VM{vm}, config.PlanningHEFT, clusteringID, k)
	k.Register(planner)

	k.Send(plannerID, plannerID, 0, sim.TagStartSimulation, nil)
	k.TerminateAt(100)
	require.NoError(t, k.Run())

	require.Len(t, engine.jobs, 3) // STAGE_IN + A + B
	for _, j := range engine.jobs {
		assert.Equal(t, JobSuccess, j.Status, "job %s should have completed successfully", j.ID)
	}
	assert.True(t, engine.received[engine.jobs[0].ID])
}
