// Package cmdline parses Linux kernel boot command lines, the contents of
// /proc/cmdline, into an ordered list of parameters.
//
// # Format
//
// A command line is a sequence of whitespace-separated parameters, each
// either a bare name or a name=value pair:
//
//	BOOT_IMAGE=/vmlinuz root=/dev/sda1 ro quiet console="ttyS0 115200"
//
// Double quotes may appear anywhere inside a name or value. They toggle a
// quoted span in which whitespace and '=' are ordinary content; the quote
// characters themselves are never part of the result. Unbalanced quotes are
// accepted: the quoted span simply runs to the end of the input.
//
// Only ASCII space, \t, \n, \v, \f and \r separate parameters. The input is
// treated as raw bytes and need not be valid UTF-8.
//
// # Parsing
//
// Parsing never fails. Every input, including the empty one, maps to a
// result:
//
//	params := cmdline.ParseString(`foo= bar=baz "f o"`)
//	// foo="" (value present but empty), bar="baz", "f o" (no value)
//
// The parser works in two stages. A tokenizer scans the bytes with a
// two-mode state machine (scanning a name, scanning a value) and emits
// name and value tokens. The pair assembler then binds each value to the
// name before it. Names that are empty after quote stripping are dropped,
// so a Param name is never empty.
//
// # Tracing
//
// A Parser created with WithLogger reports every mode transition, token,
// dropped span and assembled parameter to a trace.Logger.
package cmdline
