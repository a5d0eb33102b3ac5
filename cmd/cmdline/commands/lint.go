package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/bootline/cmdline/pkg/cmdline"
	"github.com/fatih/color"
)

// LintOptions configures the lint command.
type LintOptions struct {
	JSON   bool
	Strict bool
	File   string
}

// LintIssue represents a single lint issue.
type LintIssue struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Offset   int    `json:"offset"`
	Message  string `json:"message"`
}

// LintOutput represents the lint results for a command line.
type LintOutput struct {
	Source string      `json:"source"`
	Issues []LintIssue `json:"issues"`
	Clean  bool        `json:"clean"`
}

var severityColors = map[cmdline.Severity]*color.Color{
	cmdline.SeverityError:   color.New(color.FgRed, color.Bold),
	cmdline.SeverityWarning: color.New(color.FgYellow),
	cmdline.SeverityInfo:    color.New(color.FgCyan),
}

// RunLint runs the lint command. It exits 2 if any error is found, or any
// warning in strict mode.
func RunLint(env *Env, args []string) int {
	opts, err := parseLintArgs(args)
	if err != nil {
		fmt.Fprintf(env.Stderr, "Error: %v\n", err)
		printLintUsage(env.Stderr)
		return exitCommandError
	}

	data, source, err := env.readSource(opts.File)
	if err != nil {
		fmt.Fprintf(env.Stderr, "Error: %v\n", err)
		return exitCommandError
	}

	issues := cmdline.Lint(data)
	output := LintOutput{Source: source, Clean: len(issues) == 0, Issues: []LintIssue{}}
	failed := false
	for _, i := range issues {
		output.Issues = append(output.Issues, LintIssue{
			Code:     i.Code,
			Severity: string(i.Severity),
			Offset:   i.Offset,
			Message:  i.Message,
		})
		if i.Severity == cmdline.SeverityError || (opts.Strict && i.Severity == cmdline.SeverityWarning) {
			failed = true
		}
	}

	if opts.JSON {
		out, _ := json.MarshalIndent(output, "", "  ")
		fmt.Fprintln(env.Stdout, string(out))
	} else {
		printLintResult(env.Stdout, output)
	}

	if failed {
		return exitValidation
	}
	return exitSuccess
}

func printLintResult(w io.Writer, output LintOutput) {
	if output.Clean {
		fmt.Fprintf(w, "%s: OK\n", output.Source)
		return
	}

	fmt.Fprintf(w, "%s:\n", output.Source)
	for _, i := range output.Issues {
		sev := i.Severity
		if c, ok := severityColors[cmdline.Severity(i.Severity)]; ok {
			sev = c.Sprint(i.Severity)
		}
		fmt.Fprintf(w, "  offset %d: %s [%s] %s\n", i.Offset, sev, i.Code, i.Message)
	}
}

func parseLintArgs(args []string) (LintOptions, error) {
	fs := flag.NewFlagSet("lint", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	opts := LintOptions{}

	fs.BoolVar(&opts.JSON, "json", false, "Output results as JSON")
	fs.BoolVar(&opts.Strict, "strict", false, "Treat warnings as failures")
	fs.StringVar(&opts.File, "file", "", "Command line file (default: configured source)")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		opts.File = fs.Arg(0)
	}
	return opts, nil
}

func printLintUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: cmdline lint [options] [file|-]

Options:
  -json     Output results as JSON
  -strict   Treat warnings as failures

Reports unbalanced quotes, dropped names and values, repeated
parameters and empty values. Exits 2 on errors.

Examples:
  cmdline lint
  cmdline lint -strict /etc/kernel/cmdline`)
}
