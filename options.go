package liner

import (
	"io"
	"os"
)

// Option configures a Session at construction time via New.
type Option interface {
	apply(s *Session, in *io.Reader, out *io.Writer)
}

type optionFunc func(s *Session, in *io.Reader, out *io.Writer)

func (f optionFunc) apply(s *Session, in *io.Reader, out *io.Writer) { f(s, in, out) }

// WithTTY configures a Session to read from and write to the same TTY file,
// the common case for programs that want line editing on a controlling
// terminal other than os.Stdin/os.Stdout.
func WithTTY(tty *os.File) Option {
	return optionFunc(func(s *Session, in *io.Reader, out *io.Writer) {
		*in = tty
		*out = tty
	})
}

// WithInput configures the input reader for a Session. Primarily useful
// for tests.
func WithInput(r io.Reader) Option {
	return optionFunc(func(s *Session, in *io.Reader, out *io.Writer) {
		*in = r
	})
}

// WithOutput configures the output writer for a Session. Primarily useful
// for tests.
func WithOutput(w io.Writer) Option {
	return optionFunc(func(s *Session, in *io.Reader, out *io.Writer) {
		*out = w
	})
}

// WithSize fixes the column width a Session assumes, bypassing the
// terminal width query entirely. Primarily useful for tests in
// conjunction with WithInput and WithOutput.
func WithSize(cols int) Option {
	return optionFunc(func(s *Session, in *io.Reader, out *io.Writer) {
		s.fixedCols = cols
	})
}

// WithCompleter installs the callback invoked on Tab to produce completion
// candidates for the word under the cursor (§4.5).
func WithCompleter(fn CompletionFunc) Option {
	return optionFunc(func(s *Session, in *io.Reader, out *io.Writer) {
		s.completer = fn
	})
}

// WithCompletionFilter installs a callback applied to a candidate
// immediately before it is inserted into the buffer or shown in a
// listing-mode column listing, e.g. to append a trailing space.
func WithCompletionFilter(fn FilterFunc) Option {
	return optionFunc(func(s *Session, in *io.Reader, out *io.Writer) {
		s.filter = fn
	})
}

// WithListAll selects readline-style completion (common-prefix insertion
// plus a column listing of the candidates) instead of the default
// DOS-style rotation through candidates.
func WithListAll(listAll bool) Option {
	return optionFunc(func(s *Session, in *io.Reader, out *io.Writer) {
		s.listAll = listAll
	})
}

// WithMultiLine is reserved for a future multi-row display mode. The
// value is stored but currently has no effect on ReadLine.
func WithMultiLine(multiLine bool) Option {
	return optionFunc(func(s *Session, in *io.Reader, out *io.Writer) {
		s.multiLine = multiLine
	})
}

// WithCompletionAppendChar sets the character inserted after a completion
// that resolves to exactly one candidate (§4.5). The default, set by New,
// is a space; pass 0 to disable the append entirely.
func WithCompletionAppendChar(c rune) Option {
	return optionFunc(func(s *Session, in *io.Reader, out *io.Writer) {
		s.appendChar = c
	})
}

// WithMaskMode enables password-style entry: every printed character in
// the edit buffer is rendered as '*' regardless of what was typed.
func WithMaskMode(mask bool) Option {
	return optionFunc(func(s *Session, in *io.Reader, out *io.Writer) {
		s.maskMode = mask
	})
}
