package trace

import "time"

// Event represents a single parse trace event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies one parse (UUID). All events produced while
	// parsing the same input share it.
	SessionID string `cbor:"2,keyasint"`

	// Source names the input, e.g. "/proc/cmdline" or "stdin".
	Source string `cbor:"3,keyasint,omitempty"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Type-specific payload (one of these will be set).
	State   *StateEvent   `cbor:"10,keyasint,omitempty"`
	Token   *TokenEvent   `cbor:"11,keyasint,omitempty"`
	Dropped *DroppedEvent `cbor:"12,keyasint,omitempty"`
	Param   *ParamEvent   `cbor:"13,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryState indicates a tokenizer mode transition.
	CategoryState Category = 0
	// CategoryToken indicates an emitted token.
	CategoryToken Category = 1
	// CategoryDropped indicates input that was discarded.
	CategoryDropped Category = 2
	// CategoryParam indicates an assembled parameter.
	CategoryParam Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryState:
		return "STATE"
	case CategoryToken:
		return "TOKEN"
	case CategoryDropped:
		return "DROPPED"
	case CategoryParam:
		return "PARAM"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory returns the category for a lower-case name such as "token".
func ParseCategory(s string) (Category, bool) {
	switch s {
	case "state":
		return CategoryState, true
	case "token":
		return CategoryToken, true
	case "dropped":
		return CategoryDropped, true
	case "param":
		return CategoryParam, true
	default:
		return 0, false
	}
}

// StateEvent captures a tokenizer mode transition.
type StateEvent struct {
	// From is the previous mode ("name" or "value").
	From string `cbor:"1,keyasint"`

	// To is the new mode ("name", "value" or "done").
	To string `cbor:"2,keyasint"`

	// Offset is the input position at the transition.
	Offset int `cbor:"3,keyasint"`
}

// TokenKind distinguishes name and value tokens.
type TokenKind uint8

const (
	// TokenName is a parameter name.
	TokenName TokenKind = 0
	// TokenValue is a parameter value.
	TokenValue TokenKind = 1
)

// String returns the token kind name.
func (k TokenKind) String() string {
	switch k {
	case TokenName:
		return "NAME"
	case TokenValue:
		return "VALUE"
	default:
		return "UNKNOWN"
	}
}

// TokenEvent captures an emitted token.
type TokenEvent struct {
	// Kind is name or value.
	Kind TokenKind `cbor:"1,keyasint"`

	// Offset is where the token scan started.
	Offset int `cbor:"2,keyasint"`

	// Data is the token content with quotes stripped.
	Data []byte `cbor:"3,keyasint,omitempty"`
}

// DropReason explains why input was discarded.
type DropReason uint8

const (
	// DropEmptyName indicates a name that was empty after quote stripping.
	DropEmptyName DropReason = 0
	// DropOrphanValue indicates a value with no name to bind to.
	DropOrphanValue DropReason = 1
)

// String returns the drop reason name.
func (r DropReason) String() string {
	switch r {
	case DropEmptyName:
		return "EMPTY_NAME"
	case DropOrphanValue:
		return "ORPHAN_VALUE"
	default:
		return "UNKNOWN"
	}
}

// DroppedEvent captures discarded input.
type DroppedEvent struct {
	// Reason for discarding.
	Reason DropReason `cbor:"1,keyasint"`

	// Offset is where the discarded span started.
	Offset int `cbor:"2,keyasint"`

	// Data is the discarded content, if any.
	Data []byte `cbor:"3,keyasint,omitempty"`
}

// ParamEvent captures an assembled parameter.
type ParamEvent struct {
	// Index is the position of the parameter in the result.
	Index int `cbor:"1,keyasint"`

	// Name is the parameter name.
	Name []byte `cbor:"2,keyasint"`

	// Value is the parameter value (only meaningful if HasValue).
	Value []byte `cbor:"3,keyasint,omitempty"`

	// HasValue is true if the parameter was written as name=value.
	HasValue bool `cbor:"4,keyasint,omitempty"`
}
