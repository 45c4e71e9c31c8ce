// Package main is the entry point for the pkgmon CLI application.
//
// This file bootstraps the application by invoking the command execution
// logic defined in the cmd package. The pkgmon tool watches package-manager
// workspaces and reports package installations in real time.
package main

import "github.com/pkgmon/pkgmon/cmd"

// main initializes and runs the pkgmon CLI application.
//
// It delegates all command parsing and execution to the cmd package,
// which handles subcommands like watch, report, clean, and trim.
func main() {
	cmd.Execute()
}
