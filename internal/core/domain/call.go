// Package domain contains the core value objects for command memoization.
package domain

import "strings"

// Call is the memoizable unit of work: a command plus the files it declares
// as inputs and outputs, anchored at a working directory.
//
// Path lists are order-significant and may contain duplicates. Two calls are
// the same call only if all four fields are structurally equal.
type Call struct {
	// WorkingDir is the absolute directory the command runs in and the base
	// for resolving relative input and output paths.
	WorkingDir string
	// Inputs are the declared input paths, in declaration order.
	Inputs []string
	// Outputs are the declared output paths, in declaration order.
	Outputs []string
	// Command is the program to run followed by its arguments.
	Command []string
}

// CommandLine renders the command tokens as a single shell-style line for
// display purposes only.
func (c Call) CommandLine() string {
	return strings.Join(c.Command, " ")
}
