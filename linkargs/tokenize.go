// Package linkargs turns the link command printed by `rustc --print
// link-args` into the argument files consumed by separate linker and
// archiver invocations.
package linkargs

import "strings"

// Tokenize splits a printed command line into its arguments.  Spaces outside
// of double quotes separate arguments.  Inside double quotes, a backslash
// escapes the character after it (including another backslash or a quote).
// Empty arguments are never produced: runs of spaces and empty quoted strings
// are both dropped.  Bytes that are not valid UTF-8 are kept as they are.
func Tokenize(line string) []string {
	var (
		tokens   []string
		current  strings.Builder
		inString bool
		escaping bool
	)

	// flush appends the accumulated text as a token if there is any
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
		}

		current.Reset()
	}

	// every delimiter is ASCII so the line is scanned byte by byte: paths
	// printed in a legacy code page pass through unchanged
	for i := 0; i < len(line); i++ {
		c := line[i]

		if inString {
			switch {
			case c == '\\' && !escaping:
				escaping = true
			case c == '"' && !escaping:
				flush()
				inString = false
			default:
				current.WriteByte(c)
				escaping = false
			}
		} else {
			switch c {
			case ' ':
				flush()
			case '"':
				flush()
				inString = true
			default:
				current.WriteByte(c)
			}
		}
	}

	flush()
	return tokens
}
