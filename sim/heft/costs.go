package heft

import (
	"math"

	"github.com/workflowsim-go/workflowsim/sim/catalog"
	"github.com/workflowsim-go/workflowsim/sim/resource"
	"gonum.org/v1/gonum/stat"
)

// Task is the narrow shape Plan needs from a workflow task: identity,
// computation demand, DAG edges by id, and its file list.
type Task interface {
	TaskID() string
	TaskLength() float64
	TaskNumPEs() int
	TaskParents() []string
	TaskChildren() []string
	TaskFiles() []catalog.FileItem
}

// computationCosts returns comp_cost[taskID][vmID] = task.Length/vm.mips,
// or +Inf when the VM has fewer PEs than the task requires (§4.5 step 2).
func computationCosts(tasks []Task, vms []*resource.VM) map[string]map[string]float64 {
	costs := make(map[string]map[string]float64, len(tasks))
	for _, t := range tasks {
		row := make(map[string]float64, len(vms))
		for _, vm := range vms {
			if vm.NumPEs < t.TaskNumPEs() {
				row[vm.ID] = math.Inf(1)
				continue
			}
			row[vm.ID] = t.TaskLength() / vm.MIPSPerPE
		}
		costs[t.TaskID()] = row
	}
	return costs
}

// averageBandwidth returns the mean VM bandwidth (§4.5 step 1).
func averageBandwidth(vms []*resource.VM) float64 {
	if len(vms) == 0 {
		return 0
	}
	bw := make([]float64, len(vms))
	for i, vm := range vms {
		bw[i] = float64(vm.BW)
	}
	return stat.Mean(bw, nil)
}

// transferCosts returns transfer_cost[parentID][childID] for every
// directed edge, computed from the intersection of the parent's output
// files and the child's input files by name (§4.5 step 3).
func transferCosts(tasks []Task, avgBW float64) map[string]map[string]float64 {
	byID := make(map[string]Task, len(tasks))
	for _, t := range tasks {
		byID[t.TaskID()] = t
	}

	costs := make(map[string]map[string]float64)
	for _, parent := range tasks {
		outputs := make(map[string]int64)
		for _, f := range parent.TaskFiles() {
			if f.Type == catalog.FileOutput {
				outputs[f.Name] = f.Size
			}
		}
		for _, childID := range parent.TaskChildren() {
			child, ok := byID[childID]
			if !ok {
				continue
			}
			var totalBytes int64
			for _, f := range child.TaskFiles() {
				if f.Type == catalog.FileInput {
					if size, produced := outputs[f.Name]; produced {
						totalBytes += size
					}
				}
			}
			if costs[parent.TaskID()] == nil {
				costs[parent.TaskID()] = make(map[string]float64)
			}
			if avgBW <= 0 {
				costs[parent.TaskID()][childID] = 0
				continue
			}
			costs[parent.TaskID()][childID] = float64(totalBytes) * 8 / avgBW / resource.MILLION
		}
	}
	return costs
}

// upwardRanks computes rank(t) for every task, recursively and memoized
// (§4.5 step 4). Exit nodes (no children) rank at their mean computation
// cost across feasible VMs.
func upwardRanks(tasks []Task, compCost map[string]map[string]float64, transferCost map[string]map[string]float64) map[string]float64 {
	byID := make(map[string]Task, len(tasks))
	for _, t := range tasks {
		byID[t.TaskID()] = t
	}
	memo := make(map[string]float64, len(tasks))

	var rank func(id string) float64
	rank = func(id string) float64 {
		if v, ok := memo[id]; ok {
			return v
		}
		t := byID[id]
		mean := meanFiniteCost(compCost[id])

		best := 0.0
		for _, childID := range t.TaskChildren() {
			if _, ok := byID[childID]; !ok {
				continue
			}
			candidate := transferCost[id][childID] + rank(childID)
			if candidate > best {
				best = candidate
			}
		}
		memo[id] = mean + best
		return memo[id]
	}

	for _, t := range tasks {
		rank(t.TaskID())
	}
	return memo
}

// meanFiniteCost averages the finite entries of a VM-cost row, treating an
// all-infeasible row as zero (it will never be chosen by the scheduler).
func meanFiniteCost(row map[string]float64) float64 {
	total, count := 0.0, 0
	for _, c := range row {
		if !math.IsInf(c, 1) {
			total += c
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}
