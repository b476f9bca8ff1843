// Package main is the entry point for the scout CLI.
package main

import (
	"os"

	"github.com/jmylchreest/scout/cmd/scout/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
