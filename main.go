// ./main.go
package main

import (
	"github.com/nghalot5-hub/crm.vtiger/cmd"
)

// main is the entry point for the crmqa application.
func main() {
	// Execute the root command defined in the cmd package.
	// This handles all command-line parsing, configuration, and execution.
	cmd.Execute()
}
