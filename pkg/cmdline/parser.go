package cmdline

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bootline/cmdline/pkg/trace"
	"github.com/google/uuid"
)

// ProcPath is the location of the running kernel's command line.
var ProcPath = "/proc/cmdline"

// Parse parses a kernel command line. It never fails: malformed input such
// as unbalanced quotes or stray '=' maps to a best-effort result.
func Parse(data []byte) Params {
	return assemble(Tokenize(data), nil)
}

// ParseString parses a kernel command line held in a string.
func ParseString(s string) Params {
	return Parse([]byte(s))
}

// ParseFile reads and parses the command line stored at path.
func ParseFile(path string) (Params, error) {
	return NewParser().ParseFile(path)
}

// ParseProc reads and parses the running kernel's command line from ProcPath.
func ParseProc() (Params, error) {
	return ParseFile(ProcPath)
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger reports parse decisions to logger.
func WithLogger(logger trace.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// WithSource sets the source name recorded in trace events. ParseFile
// overrides it with the file path.
func WithSource(source string) Option {
	return func(p *Parser) {
		p.source = source
	}
}

// Parser parses command lines with optional tracing.
// A Parser is safe for concurrent use if its logger is.
type Parser struct {
	logger trace.Logger
	source string
	now    func() time.Time
}

// NewParser creates a new Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses data. The result is identical to the package-level Parse.
func (p *Parser) Parse(data []byte) Params {
	return p.parse(data, p.source)
}

// ParseReader reads all of r and parses it.
func (p *Parser) ParseReader(r io.Reader) (Params, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	return p.Parse(data), nil
}

// ParseFile reads the file at path and parses it.
func (p *Parser) ParseFile(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return p.parse(data, path), nil
}

func (p *Parser) parse(data []byte, source string) Params {
	if p.logger == nil {
		return Parse(data)
	}

	tr := &tracer{
		logger:  p.logger,
		session: uuid.New().String(),
		source:  source,
		now:     p.now,
	}
	return assemble(newTokenizer(data, tr).run(), tr)
}
