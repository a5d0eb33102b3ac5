package commands

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/bootline/cmdline/pkg/trace"
)

// TraceOptions configures the trace command.
type TraceOptions struct {
	Path   string
	Filter trace.Filter
	Stats  bool
}

// RunTrace runs the trace command, printing the events of a trace file.
func RunTrace(env *Env, args []string) int {
	opts, err := parseTraceArgs(args, env.Config)
	if err != nil {
		fmt.Fprintf(env.Stderr, "Error: %v\n", err)
		printTraceUsage(env.Stderr)
		return exitCommandError
	}

	reader, err := trace.NewFilteredReader(opts.Path, opts.Filter)
	if err != nil {
		fmt.Fprintf(env.Stderr, "Error: failed to open trace file: %v\n", err)
		return exitCommandError
	}
	defer reader.Close()

	counts := make(map[trace.Category]int)
	sessions := make(map[string]bool)
	for event, err := range reader.All() {
		if err != nil {
			fmt.Fprintf(env.Stderr, "Error: %v\n", err)
			return exitCommandError
		}

		if opts.Stats {
			counts[event.Category]++
			sessions[event.SessionID] = true
			continue
		}
		formatEvent(env.Stdout, event)
	}

	if opts.Stats {
		printTraceStats(env.Stdout, counts, len(sessions))
	}
	return exitSuccess
}

// formatEvent writes a one-line description of the event to w:
// timestamp [session] CATEGORY details.
func formatEvent(w io.Writer, event trace.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [%s] %-7s ", ts, shortenSessionID(event.SessionID), event.Category)

	switch {
	case event.State != nil:
		fmt.Fprintf(w, "@%d %s -> %s", event.State.Offset, event.State.From, event.State.To)
	case event.Token != nil:
		fmt.Fprintf(w, "@%d %s %s", event.Token.Offset, event.Token.Kind, strconv.Quote(string(event.Token.Data)))
	case event.Dropped != nil:
		fmt.Fprintf(w, "@%d %s", event.Dropped.Offset, event.Dropped.Reason)
		if len(event.Dropped.Data) > 0 {
			fmt.Fprintf(w, " %s", strconv.Quote(string(event.Dropped.Data)))
		}
	case event.Param != nil:
		fmt.Fprintf(w, "#%d %s", event.Param.Index, event.Param.Name)
		if event.Param.HasValue {
			fmt.Fprintf(w, "=%s", strconv.Quote(string(event.Param.Value)))
		}
	}

	if event.Source != "" {
		fmt.Fprintf(w, " (%s)", event.Source)
	}
	fmt.Fprintln(w)
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func printTraceStats(w io.Writer, counts map[trace.Category]int, sessions int) {
	total := 0
	cats := make([]trace.Category, 0, len(counts))
	for c, n := range counts {
		cats = append(cats, c)
		total += n
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })

	fmt.Fprintf(w, "Sessions: %d\n", sessions)
	fmt.Fprintf(w, "Events:   %d\n", total)
	for _, c := range cats {
		fmt.Fprintf(w, "  %-7s %d\n", c, counts[c])
	}
}

func parseTraceArgs(args []string, cfg Config) (TraceOptions, error) {
	fs := flag.NewFlagSet("trace", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	opts := TraceOptions{}

	session := fs.String("session", "", "Filter by session ID")
	source := fs.String("source", "", "Filter by source")
	category := fs.String("category", "", "Filter by category (state, token, dropped, param)")
	fs.BoolVar(&opts.Stats, "stats", false, "Print event counts instead of events")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.Filter.SessionID = *session
	opts.Filter.Source = *source
	if *category != "" {
		c, ok := trace.ParseCategory(strings.ToLower(*category))
		if !ok {
			return opts, fmt.Errorf("invalid category: %s (must be state, token, dropped, or param)", *category)
		}
		opts.Filter.Category = &c
	}

	switch fs.NArg() {
	case 0:
		opts.Path = cfg.Trace
	case 1:
		opts.Path = fs.Arg(0)
	default:
		return opts, fmt.Errorf("too many arguments")
	}
	if opts.Path == "" {
		return opts, fmt.Errorf("trace file path required")
	}
	return opts, nil
}

func printTraceUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: cmdline trace [options] [file]

Options:
  -session ID   Filter by session ID
  -source S     Filter by source
  -category C   Filter by category (state, token, dropped, param)
  -stats        Print event counts instead of events

Without a file, the configured trace file is read.

Examples:
  cmdline show -trace parse.trace /proc/cmdline
  cmdline trace -category dropped parse.trace`)
}
