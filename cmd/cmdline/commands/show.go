package commands

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/bootline/cmdline/pkg/cmdline"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"gopkg.in/yaml.v3"
)

// ShowOptions configures the show command.
type ShowOptions struct {
	Format string // text, line, json, yaml, cbor, digest
	Trace  string
	File   string
}

// ShowOutput is the JSON/YAML form of a parsed command line.
type ShowOutput struct {
	Source string          `json:"source" yaml:"source"`
	Params []cmdline.Entry `json:"params" yaml:"params"`
}

// RunShow runs the show command.
func RunShow(env *Env, args []string) int {
	opts, err := parseShowArgs(args, env.Config)
	if err != nil {
		fmt.Fprintf(env.Stderr, "Error: %v\n", err)
		printShowUsage(env.Stderr)
		return exitCommandError
	}
	env.Config.Trace = opts.Trace

	params, source, err := env.parseSource(opts.File)
	if err != nil {
		fmt.Fprintf(env.Stderr, "Error: %v\n", err)
		return exitCommandError
	}

	switch opts.Format {
	case "json":
		data, _ := json.MarshalIndent(ShowOutput{Source: source, Params: params.Entries()}, "", "  ")
		fmt.Fprintln(env.Stdout, string(data))
	case "yaml":
		data, _ := yaml.Marshal(ShowOutput{Source: source, Params: params.Entries()})
		fmt.Fprint(env.Stdout, string(data))
	case "cbor":
		data, err := cmdline.EncodeCBOR(params)
		if err != nil {
			fmt.Fprintf(env.Stderr, "Error: %v\n", err)
			return exitCommandError
		}
		_, _ = env.Stdout.Write(data)
	case "digest":
		sum, err := cmdline.Fingerprint(params)
		if err != nil {
			fmt.Fprintf(env.Stderr, "Error: %v\n", err)
			return exitCommandError
		}
		fmt.Fprintf(env.Stdout, "%s  %s\n", hex.EncodeToString(sum[:]), source)
	case "line":
		fmt.Fprintln(env.Stdout, params.String())
	default:
		if err := printShowText(env.Stdout, params); err != nil {
			fmt.Fprintf(env.Stderr, "Error: %v\n", err)
			return exitCommandError
		}
	}

	return exitSuccess
}

// printShowText renders params as an ASCII table. Values are shown quoted so
// that an empty value is distinguishable from a parameter without one.
func printShowText(w io.Writer, params cmdline.Params) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithRenderer(
			renderer.NewBlueprint(tw.Rendition{Symbols: tw.NewSymbols(tw.StyleASCII)})),
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithTrimSpace(tw.Off),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	table.Header([]string{"#", "NAME", "VALUE"})

	for i, p := range params {
		value := "-"
		if p.HasValue {
			value = strconv.Quote(string(p.Value))
		}
		if err := table.Append([]string{strconv.Itoa(i), string(p.Name), value}); err != nil {
			return err
		}
	}
	return table.Render()
}

var showFormats = map[string]bool{"text": true, "line": true, "json": true, "yaml": true, "cbor": true, "digest": true}

func parseShowArgs(args []string, cfg Config) (ShowOptions, error) {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	opts := ShowOptions{}

	fs.StringVar(&opts.Format, "format", cfg.Format, "Output format: text, line, json, yaml, cbor, digest")
	fs.StringVar(&opts.Trace, "trace", cfg.Trace, "Write parse trace events to this file")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.Format == "" {
		opts.Format = "text"
	}
	if !showFormats[opts.Format] {
		return opts, fmt.Errorf("unknown format %q", opts.Format)
	}
	if fs.NArg() > 1 {
		return opts, fmt.Errorf("too many arguments")
	}
	opts.File = fs.Arg(0)
	return opts, nil
}

func printShowUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: cmdline show [options] [file|-]

Options:
  -format F    Output format: text, line, json, yaml, cbor, digest
               (default text)
  -trace FILE  Write parse trace events to FILE

Without a file, the configured source (default /proc/cmdline) is read.
The digest format prints a BLAKE2b-256 fingerprint of the parameters,
equal for command lines that differ only in spacing or quoting.

Examples:
  cmdline show
  cmdline show -format json /boot/cmdline.txt
  cmdline show -format cbor > before.cbor`)
}
