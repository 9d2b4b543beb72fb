package datacenter

import (
	"github.com/workflowsim-go/workflowsim/sim/catalog"
	"github.com/workflowsim-go/workflowsim/sim/resource"
)

// CharacteristicsRequest is the payload for sim.TagResourceCharacteristicsRequest.
type CharacteristicsRequest struct{}

// CharacteristicsReply is the payload for sim.TagResourceCharacteristics.
type CharacteristicsReply struct {
	Characteristics Characteristics
}

// NumPERequest is the payload for sim.TagResourceNumPE.
type NumPERequest struct{}

// NumPEReply is the payload for sim.TagResourceNumFreePE.
type NumPEReply struct {
	NumPEs     int
	NumFreePEs int
}

// VMCreateRequest is the payload for sim.TagVMCreate.
type VMCreateRequest struct {
	VM *resource.VM
}

// VMCreateReply is the payload for sim.TagVMCreateAck.
type VMCreateReply struct {
	VMID    string
	Success bool
}

// VMDestroyRequest is the payload for sim.TagVMDestroy.
type VMDestroyRequest struct {
	VM *resource.VM
}

// CloudletSubmitRequest is the payload for sim.TagCloudletSubmit. Files is
// the set of "real inputs" the cloudlet needs staged before it can run
// (§4.6); the datacenter converts their transfer time into extra cloudlet
// length via the VM's cloudlet scheduler (§4.2 Submit).
type CloudletSubmitRequest struct {
	Cloudlet resource.Cloudlet
	VMID     string
	Files    []catalog.FileItem
}

// CloudletSubmitAck is the payload for sim.TagCloudletSubmitAck.
type CloudletSubmitAck struct {
	CloudletID string
	Accepted   bool
}

// CloudletReturn is the payload for sim.TagCloudletReturn, delivered back
// to the cloudlet's originating scheduler entity once it finishes.
type CloudletReturn struct {
	Cloudlet resource.Cloudlet
	VMID     string
}

// CloudletCancelRequest is the payload for sim.TagCloudletCancel.
type CloudletCancelRequest struct {
	CloudletID string
	VMID       string
}

// CloudletPauseRequest is the payload for sim.TagCloudletPause.
type CloudletPauseRequest struct {
	CloudletID string
	VMID       string
}

// CloudletResumeRequest is the payload for sim.TagCloudletResume.
type CloudletResumeRequest struct {
	CloudletID string
	VMID       string
}

// CloudletStatusRequest is the payload for sim.TagCloudletStatus.
type CloudletStatusRequest struct {
	CloudletID string
	VMID       string
}

// CloudletStatusReply is the payload returned against sim.TagCloudletStatus.
type CloudletStatusReply struct {
	CloudletID string
	Status     resource.CloudletStatus
	Found      bool
}
