// Package commands implements the cmdline CLI commands.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bootline/cmdline/pkg/cmdline"
	"github.com/bootline/cmdline/pkg/trace"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitValidation   = 2
)

// Env carries configuration and I/O shared by all commands.
type Env struct {
	Config Config
	Logger *slog.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewEnv creates an Env using the process standard streams.
func NewEnv(cfg Config, logger *slog.Logger) *Env {
	return &Env{
		Config: cfg,
		Logger: logger,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// readSource returns the raw command line at path and a name for it.
// An empty path falls back to the configured source; "-" reads stdin.
func (e *Env) readSource(path string) ([]byte, string, error) {
	if path == "" {
		path = e.Config.Source
	}
	if path == "" {
		path = cmdline.ProcPath
	}

	if path == "-" {
		data, err := io.ReadAll(e.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, "stdin", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}
	e.Logger.Debug("read command line", "source", path, "bytes", len(data))
	return data, path, nil
}

// NewParser returns a parser traced according to the configuration: to the
// configured trace file, and to the logger when debug logging is enabled.
// The returned function closes the trace file.
func (e *Env) NewParser(source string) (*cmdline.Parser, func(), error) {
	var loggers []trace.Logger
	closeTrace := func() {}

	if e.Config.Trace != "" {
		fl, err := trace.NewFileLogger(e.Config.Trace)
		if err != nil {
			return nil, nil, err
		}
		loggers = append(loggers, fl)
		closeTrace = func() {
			if err := fl.Close(); err != nil {
				e.Logger.Warn("trace incomplete", "path", fl.Path(), "error", err)
				return
			}
			e.Logger.Debug("trace written", "path", fl.Path(), "events", fl.Events())
		}
	}

	if e.Logger.Enabled(context.Background(), slog.LevelDebug) {
		loggers = append(loggers, trace.NewSlogAdapter(e.Logger))
	}

	opts := []cmdline.Option{cmdline.WithSource(source)}
	if len(loggers) > 0 {
		opts = append(opts, cmdline.WithLogger(trace.NewMultiLogger(loggers...)))
	}
	return cmdline.NewParser(opts...), closeTrace, nil
}

// parseSource reads and parses the command line at path, returning the
// parameters and the name of the source that was read.
func (e *Env) parseSource(path string) (cmdline.Params, string, error) {
	data, source, err := e.readSource(path)
	if err != nil {
		return nil, "", err
	}

	p, closeTrace, err := e.NewParser(source)
	if err != nil {
		return nil, "", err
	}
	defer closeTrace()

	return p.Parse(data), source, nil
}
