// Package trace provides structured event tracing for command line parsing.
//
// This package defines the Logger interface and Event types for capturing
// what the tokenizer and pair assembler do while parsing a command line:
// mode transitions, emitted tokens, dropped input and assembled parameters.
// It is separate from operational logging (slog) - tracing provides a
// complete machine-readable record for debugging odd boot command lines.
//
// # Basic Usage
//
// Parsers are configured with a Logger implementation:
//
//	// For development: log to console via slog
//	p := cmdline.NewParser(cmdline.WithLogger(trace.NewSlogAdapter(slog.Default())))
//
//	// For later analysis: write to binary file
//	fl, _ := trace.NewFileLogger("/tmp/boot.ctrace")
//	p := cmdline.NewParser(cmdline.WithLogger(fl))
//
//	// Both: use MultiLogger
//	p := cmdline.NewParser(cmdline.WithLogger(trace.NewMultiLogger(
//	    trace.NewSlogAdapter(slog.Default()),
//	    fl,
//	)))
//
// # Event Types
//
// Every event carries a session ID shared by all events of one parse:
//   - State: tokenizer mode transitions (StateEvent)
//   - Token: emitted name and value tokens (TokenEvent)
//   - Dropped: input that produced no token or pair (DroppedEvent)
//   - Param: assembled name/value pairs (ParamEvent)
//
// # File Format
//
// Trace files are a stream of CBOR-encoded events, conventionally with the
// .ctrace extension. The cmdline CLI "trace" command views them.
package trace
