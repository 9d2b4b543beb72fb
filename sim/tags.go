package sim

// Event tags (§6 "Event tag set"). Values are stable integer constants
// grouped by subsystem; the groups mirror CloudSimTags/WorkflowSimTags from
// the source but the numeric values themselves are this module's own.
const (
	TagInsignificant = iota

	// Datacenter resource inquiry and VM lifecycle (§4.3).
	TagResourceCharacteristics
	TagResourceCharacteristicsRequest
	TagResourceNumPE
	TagResourceNumFreePE
	TagVMCreate
	TagVMCreateAck
	TagVMDestroy
	TagVMDestroyAck
	TagVMMigrate
	TagVMMigrateAck
	TagVMDataAdd
	TagVMDataAddAck
	TagVMDataDel
	TagVMDataDelAck
	TagVMDatacenterEvent // internal re-drive tick

	// Cloudlet lifecycle (§4.3).
	TagCloudletSubmit
	TagCloudletSubmitAck
	TagCloudletReturn
	TagCloudletCancel
	TagCloudletStatus
	TagCloudletPause
	TagCloudletPauseAck
	TagCloudletResume
	TagCloudletResumeAck
	TagCloudletMove
	TagCloudletMoveAck

	// Network ping (§4.3).
	TagInfoPktSubmit
	TagInfoPktReturn

	// Workflow pipeline (§4.4).
	TagStartSimulation
	TagJobSubmit
	TagCloudletUpdate
	TagCloudletCheck
	TagVMBrokerEvent // internal re-drive tick for the scheduler/engine

	TagEndOfSimulation
)

// VM status values carried in ack payloads and Scheduler-side VM bookkeeping.
const (
	VMStatusReady = iota
	VMStatusBusy
	VMStatusIdle
)
