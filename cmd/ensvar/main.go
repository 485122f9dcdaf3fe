// Package main provides the ensvar command.
package main

import (
	"os"

	"github.com/leapstack-labs/ensvar/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
