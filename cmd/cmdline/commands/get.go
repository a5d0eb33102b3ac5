package commands

import (
	"flag"
	"fmt"
	"io"
)

// RunGet runs the get command. It prints the value of the last occurrence
// of a parameter. A parameter without a value prints an empty line unless
// -all is given, which prints every occurrence as written.
func RunGet(env *Env, args []string) int {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	file := fs.String("file", "", "Command line file (default: configured source)")
	all := fs.Bool("all", false, "Print every occurrence")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(env.Stderr, "Error: %v\n", err)
		printGetUsage(env.Stderr)
		return exitCommandError
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(env.Stderr, "Error: exactly one parameter name required")
		printGetUsage(env.Stderr)
		return exitCommandError
	}
	name := fs.Arg(0)

	params, _, err := env.parseSource(*file)
	if err != nil {
		fmt.Fprintf(env.Stderr, "Error: %v\n", err)
		return exitCommandError
	}

	if *all {
		matches := params.All(name)
		if len(matches) == 0 {
			return exitCommandError
		}
		for _, p := range matches {
			fmt.Fprintln(env.Stdout, p.String())
		}
		return exitSuccess
	}

	p, ok := params.Lookup(name)
	if !ok {
		env.Logger.Debug("parameter not found", "name", name)
		return exitCommandError
	}
	fmt.Fprintln(env.Stdout, string(p.Value))
	return exitSuccess
}

func printGetUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: cmdline get [options] NAME

Options:
  -file FILE  Command line file (default /proc/cmdline)
  -all        Print every occurrence as name or name=value

Exits 1 if NAME is not present.

Examples:
  cmdline get root
  cmdline get -all console`)
}
