package workflow

import "github.com/workflowsim-go/workflowsim/sim/catalog"

// TaskStatus mirrors a job's status for the member task it belongs to.
type TaskStatus int

const (
	TaskCreated TaskStatus = iota
	TaskReady
	TaskRunning
	TaskSuccess
	TaskFailed
)

// Task is a unit of abstract work (§3 "Task"). Parent/child edges are
// stored as id-to-id adjacency rather than pointers — an arena of *Task
// owned elsewhere (the Planner) resolves ids back to nodes.
type Task struct {
	ID      string
	Name    string
	Length  float64 // millions of instructions
	NumPEs  int
	Files   []catalog.FileItem
	Parents []string
	Children []string

	Depth  int
	UserID string
	Impact float64

	// Completion fields, set as the simulation advances.
	ExecStartTime float64
	FinishTime    float64
	Status        TaskStatus

	// VMID is the HEFT-assigned placement, echoed onto the owning Job.
	VMID string
}

// TaskID implements failure.Task and heft.Task.
func (t *Task) TaskID() string { return t.ID }

// ExecWindow implements failure.Task.
func (t *Task) ExecWindow() (float64, float64) { return t.ExecStartTime, t.FinishTime }

// heftTaskView adapts *Task to heft.Task without a field/method name
// collision (Task already has Length/NumPEs/Parents/Children/Files
// fields).
type heftTaskView struct{ t *Task }

func (v heftTaskView) TaskID() string                 { return v.t.ID }
func (v heftTaskView) TaskLength() float64             { return v.t.Length }
func (v heftTaskView) TaskNumPEs() int                 { return v.t.NumPEs }
func (v heftTaskView) TaskParents() []string           { return v.t.Parents }
func (v heftTaskView) TaskChildren() []string          { return v.t.Children }
func (v heftTaskView) TaskFiles() []catalog.FileItem   { return v.t.Files }

// NewTask creates a task with zero-value completion fields. Negative
// length or PE count are rejected at construction (§7 "Input validation").
func NewTask(id, name string, length float64, numPEs int) (*Task, error) {
	if length < 0 {
		return nil, errInvalidf("task %s: negative length %v", id, length)
	}
	if numPEs <= 0 {
		return nil, errInvalidf("task %s: non-positive PE count %d", id, numPEs)
	}
	return &Task{ID: id, Name: name, Length: length, NumPEs: numPEs, FinishTime: -1}, nil
}
