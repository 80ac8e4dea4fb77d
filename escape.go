package liner

import "strings"

// escapeHistory encodes a history entry for on-disk storage using the
// editor's own three-escape scheme: backslash, line feed, and carriage
// return are escaped so that one entry always occupies exactly one line of
// the history file. Everything else, including raw UTF-8 and control
// bytes, passes through unchanged.
func escapeHistory(s string) string {
	var buf strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		default:
			buf.WriteByte(c)
		}
	}
	return buf.String()
}

// unescapeHistory reverses escapeHistory. Any backslash not followed by
// one of \, n, or r is passed through byte-for-byte rather than rejected,
// so a history file written by a future version with a wider escape set,
// or simply corrupted, still loads instead of failing outright — the same
// is true of any byte sequence that doesn't form valid UTF-8, which is
// preserved as-is rather than decoded.
func unescapeHistory(s string) string {
	var buf strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			buf.WriteByte(c)
			continue
		}
		switch s[i+1] {
		case '\\':
			buf.WriteByte('\\')
			i++
		case 'n':
			buf.WriteByte('\n')
			i++
		case 'r':
			buf.WriteByte('\r')
			i++
		default:
			buf.WriteByte(c)
		}
	}
	return buf.String()
}
