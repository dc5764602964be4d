// The main package for the hostharvest executable.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/probelab/hostharvest/cmd"
)

// main is the entry point of the application. It defers all execution to
// the Cobra CLI library; SIGINT/SIGTERM stop replenishment and let
// in-flight fetches drain.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
