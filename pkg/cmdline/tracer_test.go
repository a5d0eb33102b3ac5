package cmdline

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bootline/cmdline/pkg/trace"
	"github.com/bootline/cmdline/pkg/trace/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

type recordingLogger struct {
	mu     sync.Mutex
	events []trace.Event
}

func (r *recordingLogger) Log(e trace.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func TestParserTracesDecisions(t *testing.T) {
	rec := &recordingLogger{}
	fixed := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	p := NewParser(WithLogger(rec), WithSource("test"))
	p.now = func() time.Time { return fixed }

	params := p.Parse([]byte("a=b c"))
	assert.Equal(t, "a=b c", params.String())

	require.Len(t, rec.events, 8)

	cats := make([]trace.Category, len(rec.events))
	for i, e := range rec.events {
		cats[i] = e.Category
		assert.Equal(t, rec.events[0].SessionID, e.SessionID)
		assert.Equal(t, "test", e.Source)
		assert.True(t, e.Timestamp.Equal(fixed))
	}
	assert.Equal(t, []trace.Category{
		trace.CategoryToken, trace.CategoryState,
		trace.CategoryToken, trace.CategoryState,
		trace.CategoryToken, trace.CategoryState,
		trace.CategoryParam, trace.CategoryParam,
	}, cats)

	_, err := uuid.Parse(rec.events[0].SessionID)
	assert.NoError(t, err, "session ID should be a UUID")

	assert.Equal(t, &trace.StateEvent{From: "name", To: "value", Offset: 2}, rec.events[1].State)
	assert.Equal(t, &trace.StateEvent{From: "value", To: "name", Offset: 4}, rec.events[3].State)
	assert.Equal(t, &trace.StateEvent{From: "name", To: "done", Offset: 5}, rec.events[5].State)

	assert.Equal(t, trace.TokenValue, rec.events[2].Token.Kind)
	assert.Equal(t, "b", string(rec.events[2].Token.Data))
	assert.Equal(t, 2, rec.events[2].Token.Offset)

	assert.Equal(t, 1, rec.events[7].Param.Index)
	assert.Equal(t, "c", string(rec.events[7].Param.Name))
	assert.False(t, rec.events[7].Param.HasValue)
}

func TestParserTracesDroppedInput(t *testing.T) {
	logger := mocks.NewMockLogger(t)
	logger.EXPECT().Log(mock.MatchedBy(func(e trace.Event) bool {
		return e.Dropped == nil
	})).Return()
	logger.EXPECT().Log(mock.MatchedBy(func(e trace.Event) bool {
		return e.Dropped != nil && e.Dropped.Reason == trace.DropEmptyName && e.Dropped.Offset == 0
	})).Return().Once()
	logger.EXPECT().Log(mock.MatchedBy(func(e trace.Event) bool {
		return e.Dropped != nil && e.Dropped.Reason == trace.DropOrphanValue &&
			e.Dropped.Offset == 1 && string(e.Dropped.Data) == "x"
	})).Return().Once()

	params := NewParser(WithLogger(logger)).Parse([]byte("=x y"))
	assert.Equal(t, "y", params.String())
}

func TestParserSessionsDiffer(t *testing.T) {
	rec := &recordingLogger{}
	p := NewParser(WithLogger(rec))
	p.Parse([]byte("a"))
	p.Parse([]byte("b"))

	require.NotEmpty(t, rec.events)
	assert.NotEqual(t, rec.events[0].SessionID, rec.events[len(rec.events)-1].SessionID)
}

func TestParserTracingDoesNotChangeResult(t *testing.T) {
	inputs := []string{"", "foo bar", "foo= bar=baz", `"f o" "b ar"="ba z"`, "=foo a =b", `x="y`}
	for _, in := range inputs {
		traced := NewParser(WithLogger(trace.NoopLogger{})).Parse([]byte(in))
		assert.True(t, ParseString(in).Equal(traced), "input %q", in)
	}
}

func TestParserFileTraceUsesPathAsSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "cmdline")
	require.NoError(t, writeFile(src, "quiet"))

	tracePath := filepath.Join(dir, "out.ctrace")
	fl, err := trace.NewFileLogger(tracePath)
	require.NoError(t, err)

	var buf bytes.Buffer
	slogger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	p := NewParser(WithLogger(trace.NewMultiLogger(fl, trace.NewSlogAdapter(slogger))), WithSource("ignored"))
	_, err = p.ParseFile(src)
	require.NoError(t, err)
	require.NoError(t, fl.Close())

	reader, err := trace.NewReader(tracePath)
	require.NoError(t, err)
	defer reader.Close()

	events, err := reader.ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, events)
	for _, e := range events {
		assert.Equal(t, src, e.Source)
	}
	assert.Contains(t, buf.String(), "name=quiet")
}
