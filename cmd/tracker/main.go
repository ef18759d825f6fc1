// Package main is the entry point for the tracker CLI.
package main

import (
	"os"

	"financetracker/cmd/tracker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
