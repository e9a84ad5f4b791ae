package main

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"text/tabwriter"
)

// Command is one crates subcommand
type Command interface {
	Name() string
	Usage() string
	Description() string
	Run(ctx context.Context, args []string) error
}

// Registry maps subcommand names to commands
type Registry struct {
	out      io.Writer
	commands map[string]Command
}

// NewRegistry writes help and dispatch errors to out
func NewRegistry(out io.Writer, cmds ...Command) *Registry {
	r := &Registry{out: out, commands: make(map[string]Command, len(cmds))}
	for _, c := range cmds {
		r.commands[c.Name()] = c
	}
	return r
}

// Get retrieves a command by name
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names lists the registered commands alphabetically
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.commands))
}

// Resolve picks the command named by args[0]. Help flags and unknown names print help and return false.
func (r *Registry) Resolve(args []string) (Command, []string, bool) {
	if len(args) == 0 {
		r.PrintHelp()
		return nil, nil, false
	}
	if isHelpArg(args[0]) {
		r.PrintHelp()
		return nil, nil, false
	}
	cmd, ok := r.Get(args[0])
	if !ok {
		fmt.Fprintf(r.out, "unknown command %q\n\n", args[0])
		r.PrintHelp()
		return nil, nil, false
	}
	return cmd, args[1:], true
}

// PrintHelp prints the usage line of every command
func (r *Registry) PrintHelp() {
	fmt.Fprintln(r.out, "Usage: crates <command> [args...]")
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Commands:")

	tw := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	for _, name := range r.Names() {
		cmd := r.commands[name]
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.Usage(), cmd.Description())
	}
	_ = tw.Flush()
}

func isHelpArg(arg string) bool {
	switch arg {
	case "help", "-h", "-help", "--help":
		return true
	}
	return false
}
