package liner

import (
	"bytes"
	"strconv"
)

// Display attributes used to render C0 control bytes in reverse video
// (§4.3). Color escapes in a caller-supplied prompt are skipped by
// promptWidth's own scan, not by these constants.
const (
	attrReverse = "\x1b[7m"
	attrReset   = "\x1b[0m"
)

// emitEraseToEOL appends the escape sequence that erases from the cursor to
// the end of the current line.
func emitEraseToEOL(buf *bytes.Buffer) {
	buf.WriteString("\x1b[K")
}

// emitClearScreen appends the escape sequence that homes the cursor and
// erases the full screen (§6 ClearScreen).
func emitClearScreen(buf *bytes.Buffer) {
	buf.WriteString("\x1b[H\x1b[2J")
}

// emitMoveColumn appends the escape sequence that moves the cursor to
// column n (1-based) of the current row, the only cursor motion the
// single-row display model needs.
func emitMoveColumn(buf *bytes.Buffer, n int) {
	buf.WriteString("\x1b[")
	buf.WriteString(strconv.Itoa(n))
	buf.WriteString("G")
}

// emitControl appends the reverse-video rendering of a C0 control byte c
// (rendered as ^X, two display columns), per §4.3's control-byte rule.
func emitControl(buf *bytes.Buffer, c byte) {
	buf.WriteString(attrReverse)
	buf.WriteByte('^')
	buf.WriteByte(c ^ 0x40)
	buf.WriteString(attrReset)
}
