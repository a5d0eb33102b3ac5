package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/bootline/cmdline/pkg/cmdline"
)

// DiffChange is the JSON form of a single change.
type DiffChange struct {
	Kind string         `json:"kind"`
	Name string         `json:"name"`
	Old  *cmdline.Entry `json:"old,omitempty"`
	New  *cmdline.Entry `json:"new,omitempty"`
}

// DiffOutput represents the diff results.
type DiffOutput struct {
	Old     string       `json:"old"`
	New     string       `json:"new"`
	Changes []DiffChange `json:"changes"`
}

// RunDiff runs the diff command. Either input may be a command line or a
// CBOR snapshot written by "show -format cbor". It exits 2 if they differ.
func RunDiff(env *Env, args []string) int {
	fs := flag.NewFlagSet("diff", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	jsonOut := fs.Bool("json", false, "Output results as JSON")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(env.Stderr, "Error: %v\n", err)
		printDiffUsage(env.Stderr)
		return exitCommandError
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(env.Stderr, "Error: two inputs required")
		printDiffUsage(env.Stderr)
		return exitCommandError
	}
	if fs.Arg(0) == "-" && fs.Arg(1) == "-" {
		fmt.Fprintln(env.Stderr, "Error: only one input may be stdin")
		return exitCommandError
	}

	oldParams, oldSource, err := env.loadParams(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(env.Stderr, "Error: %v\n", err)
		return exitCommandError
	}
	newParams, newSource, err := env.loadParams(fs.Arg(1))
	if err != nil {
		fmt.Fprintf(env.Stderr, "Error: %v\n", err)
		return exitCommandError
	}

	changes := cmdline.Diff(oldParams, newParams)

	if *jsonOut {
		output := DiffOutput{Old: oldSource, New: newSource, Changes: []DiffChange{}}
		for _, c := range changes {
			output.Changes = append(output.Changes, toDiffChange(c))
		}
		out, _ := json.MarshalIndent(output, "", "  ")
		fmt.Fprintln(env.Stdout, string(out))
	} else {
		for _, c := range changes {
			fmt.Fprintln(env.Stdout, formatChange(c))
		}
	}

	if len(changes) > 0 {
		return exitValidation
	}
	return exitSuccess
}

// loadParams reads path as a CBOR snapshot if it looks like one, and parses
// it as a command line otherwise.
func (e *Env) loadParams(path string) (cmdline.Params, string, error) {
	data, source, err := e.readSource(path)
	if err != nil {
		return nil, "", err
	}

	if cmdline.IsSnapshot(data) {
		params, err := cmdline.DecodeCBOR(data)
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", source, err)
		}
		e.Logger.Debug("loaded snapshot", "source", source, "params", params.Len())
		return params, source, nil
	}

	p, closeTrace, err := e.NewParser(source)
	if err != nil {
		return nil, "", err
	}
	defer closeTrace()
	return p.Parse(data), source, nil
}

// formatChange renders a change as "+ param", "- param" or
// "~ name: old -> new".
func formatChange(c cmdline.Change) string {
	switch c.Kind {
	case cmdline.ChangeAdded:
		return "+ " + c.New.String()
	case cmdline.ChangeRemoved:
		return "- " + c.Old.String()
	default:
		return fmt.Sprintf("~ %s: %s -> %s", c.Name, c.Old.String(), c.New.String())
	}
}

func toDiffChange(c cmdline.Change) DiffChange {
	dc := DiffChange{Kind: string(c.Kind), Name: c.Name}
	if c.Kind != cmdline.ChangeAdded {
		e := cmdline.Params{c.Old}.Entries()[0]
		dc.Old = &e
	}
	if c.Kind != cmdline.ChangeRemoved {
		e := cmdline.Params{c.New}.Entries()[0]
		dc.New = &e
	}
	return dc
}

func printDiffUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: cmdline diff [options] OLD NEW

Options:
  -json   Output results as JSON

OLD and NEW are command line files, CBOR snapshots, or "-" for stdin.
Parameters are compared by name using their last occurrence.
Exits 2 if the command lines differ.

Examples:
  cmdline diff before.cbor /proc/cmdline
  cmdline diff /boot/cmdline.txt /boot/cmdline.txt.new`)
}
