// Package metrics computes the four summary numbers of a finished
// simulation run: makespan, total cost, fleet utilisation, and energy
// (spec §6 "Output metrics").
package metrics

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/workflowsim-go/workflowsim/sim/config"
	"github.com/workflowsim-go/workflowsim/sim/resource"
	"github.com/workflowsim-go/workflowsim/sim/workflow"
)

// Energy dissipation constants for the active/idle duty-cycle model of
// §6 ("active VMs dissipate f·V²·activeTime at their max frequency; idle
// VMs dissipate the same formula at min frequency over idle time").
const (
	maxFrequency = 3.0
	maxVoltage   = 1.2
	minFrequency = 1.0
	minVoltage   = 0.8
)

// Report is the four-number summary of §6.
type Report struct {
	Makespan    float64
	TotalCost   float64
	Utilization float64 // percent, 0-100
	Energy      float64
}

// Print renders the report to stdout as a plain table.
func (r Report) Print() {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Makespan      : %.4f s\n", r.Makespan)
	fmt.Printf("Total Cost    : %.4f\n", r.TotalCost)
	fmt.Printf("Utilization   : %.2f%%\n", r.Utilization)
	fmt.Printf("Energy        : %.4f\n", r.Energy)
}

type interval struct{ start, end float64 }

// Compute derives the report from a finished job list and the VM fleet
// they ran on. Only jobs that reached a terminal, scheduled state (a
// non-negative FinishTime) contribute to makespan/utilisation/cost; the
// cost model (§6 costModel) is read from params only to decide whether
// per-VM or per-datacenter cost fields would have been attached upstream
// — by the time jobs reach here, the resolved per-second/per-bit rates
// already live on the VM (cmd wires datacenter rates onto each VM at
// startup when costModel is DATACENTER).
func Compute(jobs []*workflow.Job, vms []*resource.VM, params *config.Parameters) Report {
	vmByID := make(map[string]*resource.VM, len(vms))
	for _, vm := range vms {
		vmByID[vm.ID] = vm
	}

	minStart := 0.0
	maxFinish := 0.0
	haveAny := false
	totalCost := 0.0
	intervalsByVM := make(map[string][]interval)

	for _, j := range jobs {
		if j.FinishTime < 0 {
			continue
		}
		if !haveAny || j.ExecStartTime < minStart {
			minStart = j.ExecStartTime
		}
		if !haveAny || j.FinishTime > maxFinish {
			maxFinish = j.FinishTime
		}
		haveAny = true

		intervalsByVM[j.VMID] = append(intervalsByVM[j.VMID], interval{j.ExecStartTime, j.FinishTime})

		if vm, ok := vmByID[j.VMID]; ok {
			duration := j.FinishTime - j.ExecStartTime
			totalCost += duration * vm.CostPerSecond
			for _, f := range j.Files() {
				totalCost += float64(f.Size*8) * vm.CostPerBW
			}
		}
	}

	makespan := maxFinish - minStart
	if !haveAny {
		return Report{}
	}

	activeByVM := make(map[string]float64, len(intervalsByVM))
	for vmID, ivs := range intervalsByVM {
		activeByVM[vmID] = mergedDuration(ivs)
	}

	var utilRatios []float64
	energy := 0.0
	for _, vm := range vms {
		active := activeByVM[vm.ID]
		if active == 0 && makespan == 0 {
			continue
		}
		idle := makespan - active
		if idle < 0 {
			idle = 0
		}
		energy += maxFrequency*maxVoltage*maxVoltage*active + minFrequency*minVoltage*minVoltage*idle

		if makespan > 0 {
			utilRatios = append(utilRatios, active/makespan)
		}
	}

	utilization := 0.0
	if len(utilRatios) > 0 {
		utilization = stat.Mean(utilRatios, nil) * 100
	}

	return Report{
		Makespan:    makespan,
		TotalCost:   totalCost,
		Utilization: utilization,
		Energy:      energy,
	}
}

// mergedDuration returns the total length of the union of ivs, so
// concurrently executing jobs on the same space-shared VM don't double
// count its active time.
func mergedDuration(ivs []interval) float64 {
	if len(ivs) == 0 {
		return 0
	}
	sorted := append([]interval(nil), ivs...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].start < sorted[j-1].start; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	total := 0.0
	cur := sorted[0]
	for _, iv := range sorted[1:] {
		if iv.start <= cur.end {
			if iv.end > cur.end {
				cur.end = iv.end
			}
			continue
		}
		total += cur.end - cur.start
		cur = iv
	}
	total += cur.end - cur.start
	return total
}
