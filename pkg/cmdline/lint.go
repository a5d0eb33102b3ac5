package cmdline

import (
	"fmt"
	"sort"
)

// Severity ranks a lint issue.
type Severity string

const (
	SeverityError   Severity = "error"   // input was lost or misread
	SeverityWarning Severity = "warning" // accepted, but probably a mistake
	SeverityInfo    Severity = "info"    // worth knowing
)

// Issue codes reported by Lint.
const (
	IssueUnbalancedQuote = "unbalanced-quote"
	IssueEmptyName       = "empty-name"
	IssueOrphanValue     = "orphan-value"
	IssueDuplicate       = "duplicate"
	IssueEmptyValue      = "empty-value"
)

// Issue is a problem found in a command line. Parsing still succeeds;
// issues describe how the input was interpreted.
type Issue struct {
	Severity Severity
	Code     string
	Offset   int
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("offset %d: %s: %s: %s", i.Offset, i.Severity, i.Code, i.Message)
}

// Lint parses data and reports suspicious constructs, ordered by offset.
func Lint(data []byte) []Issue {
	l := &linter{firstSeen: make(map[string]int)}
	assemble(newTokenizer(data, l).run(), l)

	sort.SliceStable(l.issues, func(i, j int) bool {
		return l.issues[i].Offset < l.issues[j].Offset
	})
	return l.issues
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

type linter struct {
	issues    []Issue
	firstSeen map[string]int
}

func (l *linter) add(sev Severity, code string, offset int, format string, args ...any) {
	l.issues = append(l.issues, Issue{
		Severity: sev,
		Code:     code,
		Offset:   offset,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (l *linter) transition(state, state, int) {}

func (l *linter) token(Token) {}

func (l *linter) emptyName(offset int) {
	l.add(SeverityWarning, IssueEmptyName, offset, "parameter name is empty and was dropped")
}

func (l *linter) unbalancedQuote(offset int) {
	l.add(SeverityError, IssueUnbalancedQuote, offset, "quote is never closed; the rest of the line is quoted")
}

func (l *linter) orphanValue(tok Token) {
	l.add(SeverityError, IssueOrphanValue, tok.Offset, "value %q has no parameter name and was dropped", tok.Data)
}

func (l *linter) param(_ int, p Param, offset int) {
	name := string(p.Name)
	if first, ok := l.firstSeen[name]; ok {
		l.add(SeverityWarning, IssueDuplicate, offset, "parameter %q repeated (first at offset %d)", name, first)
	} else {
		l.firstSeen[name] = offset
	}

	if p.HasValue && len(p.Value) == 0 {
		l.add(SeverityInfo, IssueEmptyValue, offset, "parameter %q has an empty value", name)
	}
}

var _ observer = (*linter)(nil)
