package cmdline

import (
	"time"

	"github.com/bootline/cmdline/pkg/trace"
)

// tracer forwards tokenizer and assembler decisions to a trace.Logger.
type tracer struct {
	logger  trace.Logger
	session string
	source  string
	now     func() time.Time
}

func (t *tracer) event(cat trace.Category) trace.Event {
	return trace.Event{
		Timestamp: t.now(),
		SessionID: t.session,
		Source:    t.source,
		Category:  cat,
	}
}

func (t *tracer) transition(from, to state, offset int) {
	e := t.event(trace.CategoryState)
	e.State = &trace.StateEvent{From: from.String(), To: to.String(), Offset: offset}
	t.logger.Log(e)
}

func (t *tracer) token(tok Token) {
	kind := trace.TokenName
	if tok.Kind == TokenValue {
		kind = trace.TokenValue
	}
	e := t.event(trace.CategoryToken)
	e.Token = &trace.TokenEvent{Kind: kind, Offset: tok.Offset, Data: tok.Data}
	t.logger.Log(e)
}

func (t *tracer) emptyName(offset int) {
	e := t.event(trace.CategoryDropped)
	e.Dropped = &trace.DroppedEvent{Reason: trace.DropEmptyName, Offset: offset}
	t.logger.Log(e)
}

// unbalancedQuote is not traced; the token event already shows the result.
func (t *tracer) unbalancedQuote(int) {}

func (t *tracer) orphanValue(tok Token) {
	e := t.event(trace.CategoryDropped)
	e.Dropped = &trace.DroppedEvent{Reason: trace.DropOrphanValue, Offset: tok.Offset, Data: tok.Data}
	t.logger.Log(e)
}

func (t *tracer) param(index int, p Param, _ int) {
	e := t.event(trace.CategoryParam)
	e.Param = &trace.ParamEvent{Index: index, Name: p.Name, Value: p.Value, HasValue: p.HasValue}
	t.logger.Log(e)
}

var _ observer = (*tracer)(nil)
