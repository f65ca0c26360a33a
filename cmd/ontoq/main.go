// Package main is the entry point for the ontoq CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/ontoq/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
