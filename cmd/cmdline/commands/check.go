package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/bootline/cmdline/pkg/cmdline/rules"
)

// CheckOutput represents the rule check results.
type CheckOutput struct {
	Source     string            `json:"source"`
	RuleSet    string            `json:"rule_set,omitempty"`
	Violations []rules.Violation `json:"violations"`
	Passed     bool              `json:"passed"`
}

// RunCheck runs the check command. It exits 2 if any rule is violated.
func RunCheck(env *Env, args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	rulesPath := fs.String("rules", env.Config.Rules, "YAML rule file")
	jsonOut := fs.Bool("json", false, "Output results as JSON")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(env.Stderr, "Error: %v\n", err)
		printCheckUsage(env.Stderr)
		return exitCommandError
	}
	if *rulesPath == "" {
		fmt.Fprintln(env.Stderr, "Error: no rule file specified")
		printCheckUsage(env.Stderr)
		return exitCommandError
	}

	rs, err := rules.Load(*rulesPath)
	if err != nil {
		fmt.Fprintf(env.Stderr, "Error: %v\n", err)
		return exitCommandError
	}

	params, source, err := env.parseSource(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(env.Stderr, "Error: %v\n", err)
		return exitCommandError
	}

	violations := rs.Check(params)
	output := CheckOutput{
		Source:     source,
		RuleSet:    rs.Name,
		Violations: violations,
		Passed:     len(violations) == 0,
	}
	if output.Violations == nil {
		output.Violations = []rules.Violation{}
	}

	if *jsonOut {
		out, _ := json.MarshalIndent(output, "", "  ")
		fmt.Fprintln(env.Stdout, string(out))
	} else if output.Passed {
		fmt.Fprintf(env.Stdout, "%s: OK\n", source)
	} else {
		fmt.Fprintf(env.Stdout, "%s: %d violation(s)\n", source, len(violations))
		for _, v := range violations {
			fmt.Fprintf(env.Stdout, "  %s\n", v)
		}
	}

	if !output.Passed {
		return exitValidation
	}
	return exitSuccess
}

func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: cmdline check -rules FILE [options] [file|-]

Options:
  -rules FILE  YAML rule file (required unless set in config)
  -json        Output results as JSON

Examples:
  cmdline check -rules production.yaml
  cmdline check -rules production.yaml /boot/cmdline.txt`)
}
