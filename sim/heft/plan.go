package heft

import (
	"math"
	"sort"

	"github.com/workflowsim-go/workflowsim/sim/resource"
)

// Assignment is the outcome Plan computes for one task: its chosen VM and
// the [start, finish) window it occupies there.
type Assignment struct {
	VMID   string
	Start  float64
	Finish float64
}

// Plan assigns each task a VM id and a finish time via HEFT: computation
// and transfer cost matrices, upward-rank priority order, then
// insertion-based scheduling that picks the VM minimizing finish time with
// ties broken by lowest VM id (§4.5). It does not mutate tasks — the caller
// (sim/workflow.Planner) applies the returned assignments back onto its own
// Task records.
func Plan(tasks []Task, vms []*resource.VM) (map[string]Assignment, error) {
	out := make(map[string]Assignment, len(tasks))
	if len(tasks) == 0 {
		return out, nil
	}
	if len(vms) == 0 {
		return nil, errNoVMs
	}

	compCost := computationCosts(tasks, vms)
	avgBW := averageBandwidth(vms)
	transferCost := transferCosts(tasks, avgBW)
	rank := upwardRanks(tasks, compCost, transferCost)

	ordered := make([]Task, len(tasks))
	copy(ordered, tasks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return rank[ordered[i].TaskID()] > rank[ordered[j].TaskID()]
	})

	sortedVMs := make([]*resource.VM, len(vms))
	copy(sortedVMs, vms)
	sort.Slice(sortedVMs, func(i, j int) bool { return sortedVMs[i].ID < sortedVMs[j].ID })

	schedules := make(map[string]*vmSchedule, len(vms))
	for _, vm := range sortedVMs {
		schedules[vm.ID] = &vmSchedule{vm: vm}
	}

	for _, t := range ordered {
		bestVMID := ""
		bestStart, bestFinish := 0.0, math.Inf(1)

		for _, vm := range sortedVMs {
			cost := compCost[t.TaskID()][vm.ID]
			if math.IsInf(cost, 1) {
				continue
			}

			ready := 0.0
			for _, parentID := range t.TaskParents() {
				pa, ok := out[parentID]
				if !ok {
					continue
				}
				candidate := pa.Finish
				if pa.VMID != vm.ID {
					candidate += transferCost[parentID][t.TaskID()]
				}
				if candidate > ready {
					ready = candidate
				}
			}

			start := schedules[vm.ID].earliestSlot(ready, cost)
			finish := start + cost

			if finish < bestFinish {
				bestFinish = finish
				bestStart = start
				bestVMID = vm.ID
			}
		}

		if bestVMID == "" {
			return nil, errNoFeasibleVM(t.TaskID())
		}

		schedules[bestVMID].reserve(bestStart, compCost[t.TaskID()][bestVMID])
		out[t.TaskID()] = Assignment{VMID: bestVMID, Start: bestStart, Finish: bestFinish}
	}

	return out, nil
}
