package cmdline

// TokenKind distinguishes the two token types produced by the tokenizer.
type TokenKind uint8

const (
	// TokenName is a parameter name. It is never empty.
	TokenName TokenKind = iota
	// TokenValue is the value of the immediately preceding name. It may be empty.
	TokenValue
)

// String returns the token kind name.
func (k TokenKind) String() string {
	switch k {
	case TokenName:
		return "name"
	case TokenValue:
		return "value"
	default:
		return "unknown"
	}
}

// Token is a name or value scanned from a command line, with quotes removed.
type Token struct {
	Kind TokenKind
	Data []byte
	// Offset is the input position where the scan of this token started.
	Offset int
}

// state is the tokenizer mode.
type state uint8

const (
	stateName state = iota
	stateValue
	stateDone
)

func (s state) String() string {
	switch s {
	case stateName:
		return "name"
	case stateValue:
		return "value"
	case stateDone:
		return "done"
	default:
		return "unknown"
	}
}

// observer receives tokenizer and assembler decisions. Implemented by the
// trace bridge and the linter; a nil observer is never called.
type observer interface {
	transition(from, to state, offset int)
	token(tok Token)
	emptyName(offset int)
	unbalancedQuote(offset int)
	orphanValue(tok Token)
	param(index int, p Param, offset int)
}

// tokenizer is a two-mode scanner over an immutable byte slice.
type tokenizer struct {
	data   []byte
	pos    int
	state  state
	tokens []Token
	obs    observer
}

func newTokenizer(data []byte, obs observer) *tokenizer {
	return &tokenizer{data: data, state: stateName, obs: obs}
}

// Tokenize scans data into an ordered sequence of name and value tokens.
func Tokenize(data []byte) []Token {
	return newTokenizer(data, nil).run()
}

func (t *tokenizer) run() []Token {
	for t.state != stateDone {
		t.step()
	}
	return t.tokens
}

// step performs one name or value scan and moves to the next mode.
func (t *tokenizer) step() {
	var next state
	switch t.state {
	case stateName:
		next = t.scanName()
	case stateValue:
		next = t.scanValue()
	default:
		return
	}

	if next != t.state && t.obs != nil {
		t.obs.transition(t.state, next, t.pos)
	}
	t.state = next
}

func (t *tokenizer) scanName() state {
	if t.pos >= len(t.data) {
		return stateDone
	}

	start := t.pos
	s := t.scan(true)

	if len(s.data) > 0 {
		t.emit(Token{Kind: TokenName, Data: s.data, Offset: start})
	} else if (s.equals || s.quoted) && t.obs != nil {
		t.obs.emptyName(start)
	}

	if s.equals {
		return stateValue
	}
	return stateName
}

func (t *tokenizer) scanValue() state {
	start := t.pos
	s := t.scan(false)

	// Emitted even when empty: "name=" carries an explicit empty value.
	if s.data == nil {
		s.data = []byte{}
	}
	t.emit(Token{Kind: TokenValue, Data: s.data, Offset: start})

	return stateName
}

func (t *tokenizer) emit(tok Token) {
	t.tokens = append(t.tokens, tok)
	if t.obs != nil {
		t.obs.token(tok)
	}
}

// scanResult is the outcome of a single name or value scan.
type scanResult struct {
	data   []byte
	equals bool // scan ended at an unquoted '='
	quoted bool // at least one quote was consumed
}

// scan consumes bytes up to and including the terminating separator.
// Quotes toggle the quoted flag and are dropped. Unquoted whitespace ends
// the scan; so does an unquoted '=' when stopAtEquals is set.
func (t *tokenizer) scan(stopAtEquals bool) scanResult {
	var r scanResult
	start := t.pos
	inQuote := false

	for t.pos < len(t.data) {
		c := t.data[t.pos]
		t.pos++

		switch {
		case c == '"':
			inQuote = !inQuote
			r.quoted = true
		case inQuote:
			r.data = append(r.data, c)
		case stopAtEquals && c == '=':
			r.equals = true
			return r
		case isSpace(c):
			return r
		default:
			r.data = append(r.data, c)
		}
	}

	if inQuote && t.obs != nil {
		t.obs.unbalancedQuote(start)
	}
	return r
}
