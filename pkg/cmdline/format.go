package cmdline

import "bytes"

// Format serializes params as a command line: parameters separated by a
// single space, each written as name or name=value. A name containing
// whitespace or '=' is quoted, as is a value containing whitespace.
//
// Parsing the output yields params again, provided no name or value
// contains a literal '"', which the format cannot express.
func Format(params Params) []byte {
	var buf bytes.Buffer
	for i, p := range params {
		if i > 0 {
			buf.WriteByte(' ')
		}
		p.appendTo(&buf)
	}
	return buf.Bytes()
}

// String returns the command line representation of params.
func (ps Params) String() string {
	return string(Format(ps))
}

// String returns the command line representation of p.
func (p Param) String() string {
	var buf bytes.Buffer
	p.appendTo(&buf)
	return buf.String()
}

func (p Param) appendTo(buf *bytes.Buffer) {
	writeQuoted(buf, p.Name, func(c byte) bool { return isSpace(c) || c == '=' })
	if p.HasValue {
		buf.WriteByte('=')
		writeQuoted(buf, p.Value, isSpace)
	}
}

// writeQuoted writes b, wrapped in quotes if any byte satisfies special.
func writeQuoted(buf *bytes.Buffer, b []byte, special func(byte) bool) {
	for _, c := range b {
		if special(c) {
			buf.WriteByte('"')
			buf.Write(b)
			buf.WriteByte('"')
			return
		}
	}
	buf.Write(b)
}
