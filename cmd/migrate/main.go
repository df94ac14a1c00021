// Command migrate manages the MathCatch schema and offline data maintenance.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/MathCatch_Go/internal/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	logger.InitLoggerWithWriter(logger.NewConfig("warn", "text", logger.DefaultServiceName, "", "", false), os.Stderr)

	registry := newRegistry(out)
	if len(args) < 1 {
		registry.PrintHelp()
		return 1
	}

	cmd, ok := registry.Get(args[0])
	if !ok {
		printError(out, "unknown command: %s", args[0])
		registry.PrintHelp()
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, args[1:]); err != nil {
		printError(out, "%s: %v", cmd.Name(), err)
		return 1
	}
	return 0
}

func newRegistry(out io.Writer) *Registry {
	r := NewRegistry(out)
	r.Register(&UpCommand{out: out})
	r.Register(&DownCommand{out: out})
	r.Register(&StatusCommand{out: out})
	r.Register(&ImportRulesCommand{out: out})
	r.Register(&PruneCommand{out: out})
	r.Register(&DeadLettersCommand{out: out})
	return r
}
