package main

import (
	"context"
	"fmt"
	"io"
	"sort"
)

const (
	appName          = "migrate"
	colorGreen       = "\033[0;32m"
	colorRed         = "\033[0;31m"
	colorBlue        = "\033[0;34m"
	colorReset       = "\033[0m"
	statusApplied    = "applied"
	statusPending    = "pending"
	timestampLayout  = "2006-01-02 15:04:05"
	errMsgFileNeeded = "rule file path required"
)

// Command is a single migrate subcommand
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, args []string) error
}

// Registry manages the available commands
type Registry struct {
	commands map[string]Command
	out      io.Writer
}

// NewRegistry creates a command registry that prints to out
func NewRegistry(out io.Writer) *Registry {
	return &Registry{
		commands: make(map[string]Command),
		out:      out,
	}
}

// Register adds a command to the registry
func (r *Registry) Register(cmd Command) {
	r.commands[cmd.Name()] = cmd
}

// Get retrieves a command by name
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns the registered commands sorted by name
func (r *Registry) List() []Command {
	cmds := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].Name() < cmds[j].Name()
	})
	return cmds
}

// PrintHelp prints the usage information
func (r *Registry) PrintHelp() {
	fmt.Fprintf(r.out, "Usage: %s <command> [args...]\n", appName)
	fmt.Fprintln(r.out, "\nAvailable Commands:")

	cmds := r.List()
	maxLen := 0
	for _, cmd := range cmds {
		if len(cmd.Name()) > maxLen {
			maxLen = len(cmd.Name())
		}
	}

	for _, cmd := range cmds {
		padding := maxLen - len(cmd.Name()) + 2
		fmt.Fprintf(r.out, "  %s%*s%s\n", cmd.Name(), padding, "", cmd.Description())
	}
}

func printInfo(w io.Writer, format string, a ...any) {
	fmt.Fprintf(w, colorBlue+"ℹ "+format+colorReset+"\n", a...)
}

func printSuccess(w io.Writer, format string, a ...any) {
	fmt.Fprintf(w, colorGreen+"✓ "+format+colorReset+"\n", a...)
}

func printError(w io.Writer, format string, a ...any) {
	fmt.Fprintf(w, colorRed+"✗ "+format+colorReset+"\n", a...)
}
