package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"redline/internal/cli"
	"redline/internal/log"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Set up global panic handler first
	defer func() {
		if r := recover(); r != nil {
			log.Error("GLOBAL PANIC recovered", "error", r, "stack", string(debug.Stack()))
			fmt.Fprintf(os.Stderr, "redline crashed: %v\nSee redline_debug.log in the data directory for details.\n", r)
			os.Exit(1)
		}
	}()

	root := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit, Date: date})
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, cli.ErrNoTerminal) {
			fmt.Fprintln(os.Stderr, "Run redline in a terminal, or use a subcommand such as 'redline save show'.")
		}
		os.Exit(1)
	}
}
