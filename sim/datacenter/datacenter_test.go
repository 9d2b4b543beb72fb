package datacenter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workflowsim-go/workflowsim/sim"
	"github.com/workflowsim-go/workflowsim/sim/catalog"
	"github.com/workflowsim-go/workflowsim/sim/datacenter"
	"github.com/workflowsim-go/workflowsim/sim/resource"
)

type fakeJob struct {
	id     string
	length float64
	pes    int
}

func (f *fakeJob) CloudletID() string    { return f.id }
func (f *fakeJob) Length() float64       { return f.length }
func (f *fakeJob) SetLength(l float64)   { f.length = l }
func (f *fakeJob) NumPEs() int           { return f.pes }

type recorder struct {
	sim.BaseEntity
	returns []datacenter.CloudletReturn
}

func (r *recorder) Start()    {}
func (r *recorder) Shutdown() {}
func (r *recorder) Process(ev sim.Event) {
	if cr, ok := ev.Payload.(datacenter.CloudletReturn); ok {
		r.returns = append(r.returns, cr)
	}
}

func newSingleHostDC(t *testing.T, k *sim.Kernel, id sim.EntityID, numPEs int, mips float64) *datacenter.Datacenter {
	t.Helper()
	var pes []*resource.PE
	for i := 0; i < numPEs; i++ {
		pes = append(pes, resource.NewPE(i, mips))
	}
	host := resource.NewHost(0, pes, 1<<30, 1<<30, 1<<30)
	policy := datacenter.NewSimpleAllocationPolicy([]*resource.Host{host})
	cat := catalog.NewSharedCatalog()
	dc := datacenter.New(id, "dc0", []*resource.Host{host}, datacenter.DefaultCharacteristics(), policy, cat, k)
	return dc
}

func newRecorder(id sim.EntityID) *recorder {
	return &recorder{BaseEntity: sim.NewBaseEntity(id, "recorder")}
}

func TestDatacenter_SingleTaskSingleVM(t *testing.T) {
	k := sim.NewKernel()
	dc := newSingleHostDC(t, k, 0, 1, 1000)
	dcID := k.Register(dc)

	rec := newRecorder(1)
	recID := k.Register(rec)

	vm := resource.NewVM("vm0", "", 1000, 1, 1024, 1000, 1024)
	k.Send(recID, dcID, 0, sim.TagVMCreate, datacenter.VMCreateRequest{VM: vm})

	job := &fakeJob{id: "job0", length: 1000, pes: 1}
	k.Send(recID, dcID, 0, sim.TagCloudletSubmit, datacenter.CloudletSubmitRequest{Cloudlet: job, VMID: "vm0"})

	k.TerminateAt(10)
	require.NoError(t, k.Run())

	require.Len(t, rec.returns, 1)
	assert.Equal(t, "job0", rec.returns[0].Cloudlet.CloudletID())
	assert.Equal(t, 1.0, k.Clock)
}

func TestDatacenter_SpaceSharedContention(t *testing.T) {
	k := sim.NewKernel()
	dc := newSingleHostDC(t, k, 0, 2, 1000)
	dcID := k.Register(dc)

	rec := newRecorder(1)
	recID := k.Register(rec)

	vm := resource.NewVM("vm0", "", 1000, 2, 1024, 1000, 1024)
	k.Send(recID, dcID, 0, sim.TagVMCreate, datacenter.VMCreateRequest{VM: vm})

	for i := 0; i < 3; i++ {
		job := &fakeJob{id: idFor(i), length: 1000, pes: 1}
		k.Send(recID, dcID, 0, sim.TagCloudletSubmit, datacenter.CloudletSubmitRequest{Cloudlet: job, VMID: "vm0"})
	}

	k.TerminateAt(10)
	require.NoError(t, k.Run())

	require.Len(t, rec.returns, 3)
}

func idFor(i int) string {
	return []string{"a", "b", "c"}[i]
}
