package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"grammarbot/internal/cli"
)

func main() {
	// Ctrl+C / SIGTERM cancel the context; serve shuts down gracefully.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "grammarbot:", err)
		stop()
		os.Exit(1)
	}
}
