package main

import (
	"github.com/workflowsim-go/workflowsim/cmd"
)

func main() {
	cmd.Execute()
}
