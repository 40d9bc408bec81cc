// Package main provides a CLI that plays a scripted game of Hanto.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	hantocmd "github.com/corentings/hanto/internal/cmd/hanto"
)

func main() {
	cfg, err := hantocmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := hantocmd.Run(ctx, cfg, os.Stdin, os.Stdout, os.Stderr); err != nil {
		exitf("Error: %v", err)
	}
}

// exitf writes a formatted error message to stderr and exits with code 1.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
