package liner

import "errors"

// ErrInterrupted is returned by ReadLine when the user presses Ctrl-C.
var ErrInterrupted = errors.New("liner: interrupted")

// ErrNotATerminal is defined in terminal.go; re-exported here in spirit via
// that declaration (kept together with the raw-mode code that detects it).

// Note: end-of-input (Ctrl-D on an empty line, or the underlying reader
// reaching EOF) is reported as io.EOF directly rather than a distinct
// sentinel, matching the teacher's own use of io.EOF as its line-reading
// completion signal.
