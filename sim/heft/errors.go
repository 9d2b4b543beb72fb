package heft

import (
	"errors"
	"fmt"
)

var errNoVMs = errors.New("heft: no VMs available for planning")

func errNoFeasibleVM(taskID string) error {
	return fmt.Errorf("heft: task %s fits no VM's PE count", taskID)
}
