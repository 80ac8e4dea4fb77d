package liner

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// errLineDone is the internal signal that Enter (accept-line) completed
// the current line. It is distinct from io.EOF, which is
// reserved for genuine end-of-input (Ctrl-D on an empty buffer, or the
// underlying reader actually closing).
var errLineDone = errors.New("liner: line done")

// Session holds everything needed to read one line at a time from a
// terminal: the raw-mode driver, the edit buffer, the single-row display,
// history, and the completion/key-binding configuration. A Session is not
// safe for concurrent use — ReadLine is meant to be called from a single
// goroutine at a time, matching the teacher's own single-threaded read
// loop (the mutex that loop used is unnecessary here since nothing else
// touches the state between ReadLine calls).
type Session struct {
	term *terminal
	out  *bufio.Writer
	disp *display
	buf  buffer
	hist *history

	bindings map[rune]command
	pending  []byte

	completer  CompletionFunc
	filter     FilterFunc
	listAll    bool
	multiLine  bool
	maskMode   bool
	fixedCols  int
	compl      completionState
	appendChar rune

	literalNext  bool
	lastArgIndex int
	lastArgLen   int
}

// New creates a Session using the supplied options. With no options, it
// reads from os.Stdin and writes to os.Stdout.
func New(options ...Option) *Session {
	in := io.Reader(os.Stdin)
	out := io.Writer(os.Stdout)

	s := &Session{
		hist:         newHistory(),
		bindings:     make(map[rune]command),
		lastArgIndex: -1,
		appendChar:   ' ',
	}
	if err := parseBindings(s.bindings, defaultBindings); err != nil {
		panic(err)
	}

	for _, opt := range options {
		opt.apply(s, &in, &out)
	}

	s.term = newTerminal(in, out)
	s.out = bufio.NewWriter(out)
	s.disp = newDisplay(s.out)
	s.disp.maskMode = s.maskMode
	return s
}

// Close releases resources held by the Session. HistoryLoad and
// HistorySave close their files before returning, so no history file
// handle is held open.
func (s *Session) Close() error {
	return s.hist.Close()
}

// ReadLine prints prompt and reads a single line of input, returning it
// without the trailing newline. It returns io.EOF when the input stream
// ends (Ctrl-D on an empty line, or the underlying reader closing) and
// ErrInterrupted on Ctrl-C.
func (s *Session) ReadLine(prompt string) (string, error) {
	if err := s.term.enableRaw(); err != nil && !errors.Is(err, ErrNotATerminal) {
		return "", err
	}
	defer s.term.disableRaw()

	if s.fixedCols > 0 {
		s.disp.cols = s.fixedCols
	} else {
		s.disp.cols = s.term.queryWidth()
	}
	s.buf.reset()
	s.pending = nil
	s.literalNext = false
	s.lastArgIndex = -1
	s.resetCompletion()

	s.disp.setPrompt(prompt)
	s.disp.setOverride("")
	s.refresh()

	for {
		key, err := s.nextKey()
		if err != nil {
			return "", err
		}

		dispatchErr := s.dispatch(key)
		if dispatchErr == nil {
			continue
		}

		switch {
		case errors.Is(dispatchErr, errLineDone):
			s.out.WriteString("\r\n")
			_ = s.out.Flush()
			text := s.text()
			if text != "" {
				s.hist.add(text)
			}
			return text, nil
		case errors.Is(dispatchErr, io.EOF):
			s.out.WriteString("\r\n")
			_ = s.out.Flush()
			return "", io.EOF
		case errors.Is(dispatchErr, ErrInterrupted):
			s.out.WriteString("\r\n")
			_ = s.out.Flush()
			return "", ErrInterrupted
		default:
			return "", dispatchErr
		}
	}
}

// dispatch resolves key to a command via the binding table and runs it.
// A key with no binding inserts itself as literal text, unless it is a
// non-printable symbolic key (an arrow, function key, etc. nobody bound),
// in which case it rings the bell instead of inserting garbage.
func (s *Session) dispatch(key rune) error {
	debugPrintf("dispatch: %s\n", debugKey(key))

	if s.literalNext {
		s.literalNext = false
		return s.insertRune(key &^ (keyCtrl | keyAlt))
	}

	// Esc during rotation completion puts back the text from before the
	// first Tab.
	if key == keyEscape && s.compl.active && !s.listAll {
		s.compl.index = -1
		err := s.applyCompletion()
		s.resetCompletion()
		return err
	}

	cmd := s.bindings[key]
	if cmd == "" {
		if key >= keyUnknown && key < keyCtrl {
			s.bell()
			return nil
		}
		cmd = cmdInsertChar
	}

	if cmd != cmdComplete {
		s.resetCompletion()
	}
	if cmd != cmdInsertLastArg {
		s.lastArgIndex = -1
		s.lastArgLen = 0
	}

	if ok, err := s.hist.dispatch(s, cmd, key); err != nil {
		return err
	} else if ok {
		return nil
	}

	if fn, ok := baseCommands[cmd]; ok {
		_, err := fn(s, key)
		return err
	}
	return nil
}

// nextKey reads and parses the next input event, waiting up to
// escapeTimeout for a follow-up byte after a lone ESC before treating it
// as a standalone Escape keypress (§4.1).
func (s *Session) nextKey() (rune, error) {
	for {
		if key, rest := parseKey(s.pending); key != utf8.RuneError {
			s.pending = rest
			return key, nil
		}

		if len(s.pending) == 1 && s.pending[0] == keyEscape {
			b, timedOut, err := s.term.readByte(escapeTimeout)
			if err != nil {
				return 0, err
			}
			if timedOut {
				s.pending = nil
				return keyEscape, nil
			}
			s.pending = append(s.pending, b)
			continue
		}

		b, _, err := s.term.readByte(0)
		if err != nil {
			return 0, err
		}
		s.pending = append(s.pending, b)
	}
}

// text returns the current buffer contents.
func (s *Session) text() string { return s.buf.String() }

// position returns the cursor's scalar offset into text().
func (s *Session) position() int { return s.buf.pos }

func (s *Session) moveTo(pos int) {
	s.buf.pos = s.buf.clampPos(pos)
	s.refresh()
}

func (s *Session) deleteChar(pos int) {
	if pos < 0 || pos >= s.buf.chars {
		s.bell()
		return
	}
	if s.buf.removeChar(pos, s.disp.promptLen, s.disp.cols) == editFastPath {
		s.disp.eraseLastFast()
		return
	}
	s.refresh()
}

// killRange erases [from,to), saving the erased text into the single
// capture slot consumed by yank (Ctrl-Y).
func (s *Session) killRange(from, to int) {
	if to <= from {
		return
	}
	s.buf.removeChars(from, to)
	s.buf.pos = s.buf.clampPos(from)
	s.refresh()
}

// yank re-inserts the capture slot at the cursor (Ctrl-Y).
func (s *Session) yank() {
	if s.buf.capture == "" {
		s.bell()
		return
	}
	s.buf.insertChars(s.buf.pos, s.buf.capture, s.disp.promptLen, s.disp.cols)
	s.buf.pos = s.buf.clampPos(s.buf.pos + utf8.RuneCountInString(s.buf.capture))
	s.refresh()
}

// transposeChars swaps the scalar before the cursor with the one at (or,
// at end of line, also before) the cursor (Ctrl-T).
func (s *Session) transposeChars() {
	pos := s.buf.pos
	if pos >= s.buf.chars {
		pos = s.buf.chars - 1
	}
	if pos < 1 {
		s.bell()
		return
	}
	a, _ := s.buf.runeAt(pos - 1)
	b, _ := s.buf.runeAt(pos)
	s.buf.removeChar(pos, s.disp.promptLen, s.disp.cols)
	s.buf.removeChar(pos-1, s.disp.promptLen, s.disp.cols)
	s.buf.insertChar(pos-1, b, 0, 1<<30)
	s.buf.insertChar(pos, a, 0, 1<<30)
	s.buf.pos = s.buf.clampPos(pos + 1)
	s.refresh()
}

// insertLastArg implements Meta-. (insert-last-arg): it inserts the last
// whitespace-delimited word of the previous history entry, and repeated
// presses replace that insertion with the last word of progressively
// older entries.
func (s *Session) insertLastArg() {
	if s.lastArgIndex+1 >= len(s.hist.entries) {
		s.bell()
		return
	}
	s.lastArgIndex++
	words := strings.Fields(s.hist.entry(s.lastArgIndex))
	if len(words) == 0 {
		s.bell()
		return
	}
	arg := words[len(words)-1]

	if s.lastArgLen > 0 {
		// removeChars fills the capture slot; keep the Ctrl-W/U/K cut.
		capture := s.buf.capture
		s.buf.removeChars(s.buf.pos-s.lastArgLen, s.buf.pos)
		s.buf.capture = capture
	}
	s.buf.insertChars(s.buf.pos, arg, s.disp.promptLen, s.disp.cols)
	s.lastArgLen = utf8.RuneCountInString(arg)
	s.refresh()
}

func (s *Session) insertRune(c rune) error {
	code := s.buf.insertChar(s.buf.pos, c, s.disp.promptLen, s.disp.cols)
	switch code {
	case editNoRoom:
		s.bell()
	case editFastPath:
		s.disp.appendFast(c)
	default:
		s.refresh()
	}
	return nil
}

func (s *Session) refresh() { s.disp.refresh(&s.buf) }

func (s *Session) bell() {
	s.out.WriteString("\a")
	_ = s.out.Flush()
}

// ClearScreen erases the screen and redraws the current line (Ctrl-L).
func (s *Session) ClearScreen() { s.disp.clearAndRefresh(&s.buf) }

// Columns returns the terminal width last measured for this Session.
func (s *Session) Columns() int { return s.disp.cols }

// HistoryAdd appends line to history directly, as if the user had entered
// and submitted it.
func (s *Session) HistoryAdd(line string) { s.hist.add(line) }

// HistorySetMaxLen sets the maximum number of retained history entries,
// clamping to at least 1, and returns the effective value applied.
func (s *Session) HistorySetMaxLen(n int) int { return s.hist.setMaxLen(n) }

// HistorySave writes the current history to path, one entry per line.
func (s *Session) HistorySave(path string) error { return s.hist.save(path) }

// HistoryLoad reads history entries from path, appending them in file
// order. A missing file is not an error.
func (s *Session) HistoryLoad(path string) error { return s.hist.load(path) }

// HistoryEntries returns every retained entry, oldest first.
func (s *Session) HistoryEntries() []string { return s.hist.all() }
