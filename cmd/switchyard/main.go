// Command switchyard discovers annotated route handlers and guards and
// generates the routing table that wires them together.
//
// Usage:
//
//	switchyard generate [--check]
//	switchyard routes
//	switchyard clean
//
// It is usually run through a go:generate directive next to the
// switchyard.yaml of an application.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code
func run(args []string, out, errOut io.Writer) int {
	root := newRootCmd(out, errOut)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(errOut, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}
