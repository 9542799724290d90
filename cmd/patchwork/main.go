// Command patchwork is the CLI entry point: plan, show, list, render, and
// serve subcommands over the deterministic physical-termination allocator.
package main

import (
	"fmt"
	"os"

	"github.com/icecake0141/patchwork-beta/internal/cli"
)

func main() {
	if err := cli.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
