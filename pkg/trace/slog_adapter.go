package trace

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger.
// Useful during development to see parser decisions on the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.String("category", event.Category.String()),
	}

	if event.Source != "" {
		attrs = append(attrs, slog.String("source", event.Source))
	}

	switch {
	case event.State != nil:
		attrs = append(attrs,
			slog.String("from", event.State.From),
			slog.String("to", event.State.To),
			slog.Int("offset", event.State.Offset),
		)
	case event.Token != nil:
		attrs = append(attrs,
			slog.String("kind", event.Token.Kind.String()),
			slog.Int("offset", event.Token.Offset),
			slog.String("data", string(event.Token.Data)),
		)
	case event.Dropped != nil:
		attrs = append(attrs,
			slog.String("reason", event.Dropped.Reason.String()),
			slog.Int("offset", event.Dropped.Offset),
		)
		if len(event.Dropped.Data) > 0 {
			attrs = append(attrs, slog.String("data", string(event.Dropped.Data)))
		}
	case event.Param != nil:
		attrs = append(attrs,
			slog.Int("index", event.Param.Index),
			slog.String("name", string(event.Param.Name)),
			slog.Bool("has_value", event.Param.HasValue),
		)
		if event.Param.HasValue {
			attrs = append(attrs, slog.String("value", string(event.Param.Value)))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "cmdline", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
