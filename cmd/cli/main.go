// Package main is the entry point for the sparkyestimate CLI.
package main

import (
	"os"

	"sparkyestimate/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
