// Command cmdline inspects Linux kernel command lines.
//
// Usage:
//
//	cmdline [-config FILE] [-log-level LEVEL] <command> [options] [args]
//
// Commands:
//
//	show     Display parsed parameters as a table, JSON, YAML or CBOR
//	get      Print the value of one parameter
//	lint     Report suspicious syntax
//	check    Check parameters against a YAML rule file
//	diff     Compare two command lines or snapshots
//	trace    View a parse trace file
//	shell    Parse command lines interactively
//
// Without a file argument, commands read /proc/cmdline.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/bootline/cmdline/cmd/cmdline/commands"
	"github.com/bootline/cmdline/cmd/cmdline/interactive"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("cmdline", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("config", os.Getenv("CMDLINE_CONFIG"), "YAML config file")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(os.Stdout)
			return exitSuccess
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		printUsage(os.Stderr)
		return exitCommandError
	}
	if fs.NArg() < 1 {
		printUsage(os.Stderr)
		return exitCommandError
	}

	cfg, err := commands.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCommandError
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logger, err := commands.NewLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCommandError
	}
	env := commands.NewEnv(cfg, logger)

	cmd := fs.Arg(0)
	cmdArgs := fs.Args()[1:]

	switch cmd {
	case "show":
		return commands.RunShow(env, cmdArgs)
	case "get":
		return commands.RunGet(env, cmdArgs)
	case "lint":
		return commands.RunLint(env, cmdArgs)
	case "check":
		return commands.RunCheck(env, cmdArgs)
	case "diff":
		return commands.RunDiff(env, cmdArgs)
	case "trace":
		return commands.RunTrace(env, cmdArgs)
	case "shell":
		return runShell(env)
	case "help":
		printUsage(os.Stdout)
		return exitSuccess
	case "version":
		fmt.Printf("cmdline version %s\n", version)
		return exitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage(os.Stderr)
		return exitCommandError
	}
}

func runShell(env *commands.Env) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	parser, closeTrace, err := env.NewParser("shell")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer closeTrace()

	sh, err := interactive.New(parser)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCommandError
	}
	sh.Run(ctx)
	return exitSuccess
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `cmdline - kernel command line inspector

Usage:
  cmdline [global options] <command> [options] [args]

Commands:
  show     Display parsed parameters (text, line, json, yaml, cbor)
  get      Print the value of one parameter
  lint     Report unbalanced quotes, dropped input and repeated parameters
  check    Check parameters against a YAML rule file
  diff     Compare two command lines or CBOR snapshots
  trace    View a parse trace file
  shell    Parse command lines interactively

Global options:
  -config FILE      YAML config file (default $CMDLINE_CONFIG)
  -log-level LEVEL  debug, info, warn or error
  -h                Show this help message

Exit status is 0 on success, 1 on usage or I/O errors and 2 when lint,
check or diff find a problem.

Examples:
  cmdline show
  cmdline get root
  cmdline lint -strict /boot/cmdline.txt
  cmdline show -format cbor > boot.cbor && cmdline diff boot.cbor /proc/cmdline`)
}
