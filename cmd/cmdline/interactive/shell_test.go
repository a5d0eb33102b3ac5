package interactive

import (
	"bytes"
	"testing"

	"github.com/bootline/cmdline/pkg/cmdline"
	"github.com/stretchr/testify/assert"
)

func TestHandleLine_Parse(t *testing.T) {
	s := newShell(nil)
	var buf bytes.Buffer

	quit := s.HandleLine(&buf, `root=/dev/sda1 ro msg="hello world"`)
	assert.False(t, quit)
	assert.Equal(t, "0: root = \"/dev/sda1\"\n1: ro\n2: msg = \"hello world\"\n", buf.String())
}

func TestHandleLine_Empty(t *testing.T) {
	s := newShell(nil)
	var buf bytes.Buffer

	assert.False(t, s.HandleLine(&buf, "   "))
	assert.Empty(t, buf.String())

	assert.False(t, s.HandleLine(&buf, `""`))
	assert.Equal(t, "(no parameters)\n", buf.String())
}

func TestHandleLine_Tokens(t *testing.T) {
	s := newShell(cmdline.NewParser())
	var buf bytes.Buffer

	s.HandleLine(&buf, ":tokens")
	assert.Equal(t, "tokens: on\n", buf.String())
	buf.Reset()

	s.HandleLine(&buf, "a=b")
	assert.Contains(t, buf.String(), `token @0 name  "a"`)
	assert.Contains(t, buf.String(), `token @2 value "b"`)

	buf.Reset()
	s.HandleLine(&buf, ":tokens off")
	assert.Equal(t, "tokens: off\n", buf.String())
}

func TestHandleLine_Lint(t *testing.T) {
	s := newShell(nil)
	var buf bytes.Buffer

	s.HandleLine(&buf, ":lint on")
	buf.Reset()

	s.HandleLine(&buf, `a="b`)
	assert.Contains(t, buf.String(), "0: a = \"b\"")
	assert.Contains(t, buf.String(), "lint offset 2: error: "+cmdline.IssueUnbalancedQuote)
}

func TestHandleLine_Commands(t *testing.T) {
	s := newShell(nil)
	var buf bytes.Buffer

	assert.False(t, s.HandleLine(&buf, ":help"))
	assert.Contains(t, buf.String(), ":tokens")

	buf.Reset()
	assert.False(t, s.HandleLine(&buf, ":bogus"))
	assert.Contains(t, buf.String(), "Unknown command: :bogus")

	assert.True(t, s.HandleLine(&buf, ":quit"))
	assert.True(t, s.HandleLine(&buf, ":q"))
}
