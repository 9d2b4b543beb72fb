package workflow

import "fmt"

// errInvalidf builds a construction-time validation error (§7 "Input
// validation").
func errInvalidf(format string, args ...any) error {
	return fmt.Errorf("workflow: "+format, args...)
}
