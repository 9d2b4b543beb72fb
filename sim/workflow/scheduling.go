package workflow

import "github.com/workflowsim-go/workflowsim/sim/config"

// scheduleStatic honors each job's planner-assigned VM id verbatim — the
// default algorithm of §4.4 ("STATIC... honor each cloudlet's pre-set VM
// id from the planner").
func scheduleStatic(jobs []*Job) map[string]string {
	out := make(map[string]string, len(jobs))
	for _, j := range jobs {
		if j.VMID != "" {
			out[j.ID] = j.VMID
		}
	}
	return out
}

// scheduleRoundRobin cycles jobs across the VM list in order, ignoring any
// planner-assigned placement — the one other scheduling keyword given a
// full implementation here (§6 names MAXMIN/MINMIN/MCT/DATA/FCFS as stubs).
func scheduleRoundRobin(jobs []*Job, vmIDs []string) map[string]string {
	out := make(map[string]string, len(jobs))
	if len(vmIDs) == 0 {
		return out
	}
	for i, j := range jobs {
		out[j.ID] = vmIDs[i%len(vmIDs)]
	}
	return out
}

// schedule dispatches to the configured keyword. MAXMIN, MINMIN, MCT, DATA
// and FCFS are closed-set stubs (§6 "Only HEFT and STATIC are fully
// specified here; others are stubs") that fall back to STATIC's
// pass-through so a cloudlet with no planner assignment is simply never
// scheduled rather than silently misrouted.
func schedule(algo config.SchedulingAlgorithm, jobs []*Job, vmIDs []string) map[string]string {
	if algo == config.ROUNDROBIN {
		return scheduleRoundRobin(jobs, vmIDs)
	}
	return scheduleStatic(jobs)
}
