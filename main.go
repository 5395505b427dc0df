// Package main is the entry point for the ragflow CLI application.
// It signs users in to a RagFlow backend and manages the stored session token.
package main

import (
	"ragflow/cli/cmd"
)

// main is the entry point for the ragflow CLI application.
// It initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}
