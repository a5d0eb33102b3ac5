package cmdline

// isSpace reports whether c separates parameters: space, \f, \n, \r, \t or \v.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\f', '\n', '\r', '\t', '\v':
		return true
	default:
		return false
	}
}
