// ABOUTME: Entry point for evse-calc CLI
// ABOUTME: Command-line tool for charge point circuit sizing and CI compliance gates

package main

import (
	"fmt"
	"os"

	"github.com/markalston/evse-calc/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
