// Package main is the entry point for the echolens CLI.
package main

import (
	"os"

	"github.com/echolens/echolens/cmd/echolens/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
