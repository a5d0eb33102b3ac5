// Package interactive provides the interactive shell of the cmdline tool.
//
// Every line entered is parsed as a kernel command line and its parameters
// are printed. Lines starting with ':' are shell commands.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bootline/cmdline/pkg/cmdline"
	"github.com/chzyer/readline"
)

// Shell handles interactive mode.
type Shell struct {
	parser *cmdline.Parser
	rl     *readline.Instance

	showTokens bool
	showLint   bool
}

// New creates a shell that parses lines with parser.
func New(parser *cmdline.Parser) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "cmdline> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	s := newShell(parser)
	s.rl = rl
	return s, nil
}

func newShell(parser *cmdline.Parser) *Shell {
	if parser == nil {
		parser = cmdline.NewParser()
	}
	return &Shell{parser: parser}
}

// Stdout returns a writer that coordinates with the readline input.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Run starts the read loop. It returns when the input ends, ctx is done or
// the user quits.
func (s *Shell) Run(ctx context.Context) {
	defer s.rl.Close()

	out := s.rl.Stdout()
	printHelp(out)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(out, "Exiting...")
			return
		}

		if s.HandleLine(out, line) {
			fmt.Fprintln(out, "Exiting...")
			return
		}
	}
}

// HandleLine processes one line of input, writing results to w. It reports
// whether the shell should exit.
func (s *Shell) HandleLine(w io.Writer, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	if strings.HasPrefix(input, ":") {
		return s.command(w, strings.Fields(input[1:]))
	}

	data := []byte(line)
	if s.showTokens {
		for _, tok := range cmdline.Tokenize(data) {
			fmt.Fprintf(w, "  token @%d %-5s %s\n", tok.Offset, tok.Kind, strconv.Quote(string(tok.Data)))
		}
	}

	params := s.parser.Parse(data)
	if len(params) == 0 {
		fmt.Fprintln(w, "(no parameters)")
	}
	for i, p := range params {
		if p.HasValue {
			fmt.Fprintf(w, "%d: %s = %s\n", i, p.Name, strconv.Quote(string(p.Value)))
		} else {
			fmt.Fprintf(w, "%d: %s\n", i, p.Name)
		}
	}

	if s.showLint {
		for _, issue := range cmdline.Lint(data) {
			fmt.Fprintf(w, "  lint %s\n", issue)
		}
	}
	return false
}

func (s *Shell) command(w io.Writer, parts []string) bool {
	if len(parts) == 0 {
		printHelp(w)
		return false
	}

	switch strings.ToLower(parts[0]) {
	case "help", "h", "?":
		printHelp(w)

	case "tokens", "t":
		s.showTokens = toggle(s.showTokens, parts[1:])
		fmt.Fprintf(w, "tokens: %s\n", onOff(s.showTokens))

	case "lint", "l":
		s.showLint = toggle(s.showLint, parts[1:])
		fmt.Fprintf(w, "lint: %s\n", onOff(s.showLint))

	case "quit", "exit", "q":
		return true

	default:
		fmt.Fprintf(w, "Unknown command: :%s (type ':help' for commands)\n", parts[0])
	}
	return false
}

// toggle flips v, or sets it when an explicit "on" or "off" is given.
func toggle(v bool, args []string) bool {
	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "on":
			return true
		case "off":
			return false
		}
	}
	return !v
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, `
Type a kernel command line to parse it.

Commands:
  :tokens [on|off]  - Show the tokens of each line
  :lint [on|off]    - Show lint issues for each line
  :help             - Show this help
  :quit             - Exit`)
}
