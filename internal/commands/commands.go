package commands

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
)

const prefix = "cmd "

// Command is a subcommand with its own flags and a Run function.
// Flags are defined on FlagSet. Each call parses into a fresh set sharing those flag values,
// and Run receives that set so Arg and isSet only see the current call.
type Command struct {
	Name    string
	Usage   string
	FlagSet *flag.FlagSet
	Run     func(fs *flag.FlagSet) error
}

// Registry holds subcommands by name. Add commands with Register; run with Execute.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// NewFlagSet returns a FlagSet that reports errors instead of exiting and prints nothing.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// Register adds a subcommand. name is the first token after "cmd" (e.g. "spawn").
// fs defines that command's flags; run is called with the parsed set once args[1:] parse.
func (r *Registry) Register(name, usage string, fs *flag.FlagSet, run func(fs *flag.FlagSet) error) {
	if fs == nil {
		fs = NewFlagSet(name)
	}
	r.cmds[name] = &Command{Name: name, Usage: usage, FlagSet: fs, Run: run}
}

// Names returns registered command names in order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for n := range r.cmds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Help returns one "name: usage" line per command.
func (r *Registry) Help() []string {
	var lines []string
	for _, n := range r.Names() {
		lines = append(lines, fmt.Sprintf("%s: %s", n, r.cmds[n].Usage))
	}
	return lines
}

// Parse interprets line as a terminal line. If line starts with "cmd " (case-sensitive),
// the rest is tokenized by spaces and returned with ok true. Otherwise nil, false.
func Parse(line string) (args []string, ok bool) {
	if !strings.HasPrefix(line, prefix) {
		return nil, false
	}
	rest := strings.TrimSpace(line[len(prefix):])
	if rest == "" {
		return nil, true
	}
	return strings.Fields(rest), true
}

// Execute runs the subcommand in args[0] with args[1:] as flag/positional arguments.
// Flag values start from their defaults on every call.
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("commands: missing subcommand")
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("commands: unknown command: %s", name)
	}
	reset(cmd.FlagSet)
	defer reset(cmd.FlagSet)
	fs := cmd.parseSet()
	if err := fs.Parse(args[1:]); err != nil {
		return fmt.Errorf("commands: %s: %w", name, err)
	}
	return cmd.Run(fs)
}

// parseSet returns an unparsed FlagSet bound to the same flag values as c.FlagSet.
// flag.FlagSet never forgets which flags a Parse saw, so every call gets its own.
func (c *Command) parseSet() *flag.FlagSet {
	fs := NewFlagSet(c.Name)
	c.FlagSet.VisitAll(func(f *flag.Flag) { fs.Var(f.Value, f.Name, f.Usage) })
	return fs
}

func reset(fs *flag.FlagSet) {
	fs.VisitAll(func(f *flag.Flag) { _ = f.Value.Set(f.DefValue) })
}

// isSet reports whether the named flag was given on the command line.
func isSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
