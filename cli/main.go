// ABOUTME: Entry point for the shift-analyzer CLI
// ABOUTME: Command-line tool for shift schedule analytics and CI/CD integration

package main

import (
	"fmt"
	"os"

	"github.com/markalston/warehouse-shift-analyzer/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
