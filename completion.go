package liner

import (
	"bytes"
	"sort"
	"strings"
	"unicode"
)

// CompletionFunc is supplied by the host application via WithCompleter. It
// receives the full input line and the scalar offsets of the word under the
// cursor, and adds zero or more candidates to list.
type CompletionFunc func(line []rune, wordStart, wordEnd int, list *Completions)

// FilterFunc post-processes a single candidate before it is offered to the
// user or inserted, e.g. to append a trailing space or strip a prefix.
type FilterFunc func(candidate string) string

// Completions accumulates candidates from a CompletionFunc invocation. Add
// is the only way to populate it; candidates are kept in case-insensitive
// sorted order with duplicates removed.
type Completions struct {
	items []string
}

// Add appends a candidate, keeping items case-insensitively sorted and
// free of exact duplicates.
func (c *Completions) Add(s string) {
	c.items = append(c.items, s)
	sort.SliceStable(c.items, func(a, b int) bool {
		return strings.ToLower(c.items[a]) < strings.ToLower(c.items[b])
	})
	out := c.items[:0]
	for i, it := range c.items {
		if i > 0 && strings.EqualFold(out[len(out)-1], it) {
			continue
		}
		out = append(out, it)
	}
	c.items = out
}

// completionState is the per-Session completion cycle: which candidates
// are live, which one is currently shown (rotation mode), and what the
// buffer looked like before completion started so Esc, or a Tab past the
// last candidate, can restore it (any other key keeps what is shown).
type completionState struct {
	active    bool
	items     []string
	index     int // rotation mode: currently displayed candidate, -1 = original text
	listed    bool // listing mode: candidates have already been printed once
	wordStart int
	wordEnd   int
	origText  string
	origPos   int
}

// wordBounds returns the scalar [start,end) of the word the cursor sits in
// or immediately after, words being runs of non-space characters.
func wordBounds(text []rune, pos int) (start, end int) {
	start = pos
	for start > 0 && !unicode.IsSpace(text[start-1]) {
		start--
	}
	end = pos
	for end < len(text) && !unicode.IsSpace(text[end]) {
		end++
	}
	return start, end
}

// complete is bound to Tab (cmdComplete). On the first Tab it asks the
// host completer for candidates; with no completer installed, or with the
// cursor mid-line in rotation mode (where there is no line left of the
// cursor to cycle), Tab inserts a literal tab character instead, matching
// linenoise's own fallback.
func (s *Session) complete(key rune) (bool, error) {
	atEnd := s.position() == len([]rune(s.text()))
	if s.completer == nil || !(s.listAll || atEnd) {
		return true, s.insertRune('\t')
	}

	if !s.compl.active {
		text := []rune(s.text())
		start, end := wordBounds(text, s.position())
		var list Completions
		s.completer(text, start, end, &list)
		if len(list.items) == 0 {
			s.bell()
			return true, nil
		}
		s.compl = completionState{
			active:    true,
			items:     list.items,
			index:     -1,
			wordStart: start,
			wordEnd:   end,
			origText:  string(text),
			origPos:   s.position(),
		}

		// A single candidate completes immediately in either mode — there
		// is nothing to rotate through or list.
		if len(list.items) == 1 {
			s.compl.index = 0
			if err := s.applyCompletion(); err != nil {
				return true, err
			}
			s.insertCompletionAppendChar()
			s.resetCompletion()
			return true, nil
		}
	}

	if s.listAll {
		return true, s.completeList()
	}
	return true, s.completeRotate()
}

// insertCompletionAppendChar inserts s.appendChar after a just-completed
// single candidate, unless the knob is disabled (0) or that character is
// already what follows the cursor.
func (s *Session) insertCompletionAppendChar() {
	if s.appendChar == 0 {
		return
	}
	text := []rune(s.text())
	pos := s.position()
	if pos < len(text) && text[pos] == s.appendChar {
		return
	}
	_ = s.insertRune(s.appendChar)
}

// completeRotate implements DOS-style completion: each Tab press replaces
// the word with the next candidate, wrapping back to the original text
// after the last one and ringing the bell.
func (s *Session) completeRotate() error {
	s.compl.index++
	if s.compl.index >= len(s.compl.items) {
		s.compl.index = -1
		s.bell()
	}
	return s.applyCompletion()
}

// completeList implements readline-style completion: Tab inserts the
// longest common prefix of all candidates, lists every candidate in
// columns below the prompt, and redraws the line. The bell rings when the
// prefix adds nothing to what is already typed.
func (s *Session) completeList() error {
	prefix := commonPrefix(s.compl.items)
	typed := string([]rune(s.compl.origText)[s.compl.wordStart:s.compl.wordEnd])

	extends := prefix != typed && len(prefix) > len(typed)
	if extends && !s.compl.listed {
		if err := s.insertCompletionText(prefix); err != nil {
			return err
		}
	}

	s.compl.listed = true
	s.printColumns(s.compl.items)
	if !extends {
		s.bell()
	}
	s.refresh()
	return nil
}

// printColumns writes candidates below the current row in as many columns
// as fit s.disp.cols, using the width of the widest candidate plus two
// spaces of padding, per the listing-mode layout. Each candidate is shown
// through the completion filter, if one is installed.
func (s *Session) printColumns(items []string) {
	if s.filter != nil {
		shown := make([]string, len(items))
		for i, it := range items {
			shown[i] = s.filter(it)
		}
		items = shown
	}
	widest := 0
	for _, it := range items {
		if n := len([]rune(it)); n > widest {
			widest = n
		}
	}
	colWidth := widest + 2
	cols := s.disp.cols / colWidth
	if cols < 1 {
		cols = 1
	}

	var buf bytes.Buffer
	buf.WriteString("\r\n")
	for i, it := range items {
		buf.WriteString(it)
		if (i+1)%cols == 0 || i == len(items)-1 {
			buf.WriteString("\r\n")
		} else {
			buf.WriteString(strings.Repeat(" ", colWidth-len([]rune(it))))
		}
	}
	s.out.WriteString(buf.String())
	_ = s.out.Flush()
}

func (s *Session) applyCompletion() error {
	if s.compl.index == -1 {
		s.buf.set(s.compl.origText)
		s.buf.pos = s.buf.clampPos(s.compl.origPos)
		s.refresh()
		return nil
	}
	return s.insertCompletionText(s.compl.items[s.compl.index])
}

// insertCompletionText replaces the word under the cursor with cand,
// running it through the completion filter if one is installed, and
// leaves the cursor immediately after the inserted text.
func (s *Session) insertCompletionText(cand string) error {
	if s.compl.index >= 0 && s.filter != nil {
		cand = s.filter(cand)
	}
	text := []rune(s.compl.origText)
	head := string(text[:s.compl.wordStart])
	tail := string(text[s.compl.wordEnd:])
	s.buf.set(head + cand + tail)
	s.buf.pos = s.buf.clampPos(len([]rune(head + cand)))
	s.refresh()
	return nil
}

// resetCompletion clears any in-progress completion cycle; called whenever
// a non-Tab command is dispatched.
func (s *Session) resetCompletion() {
	s.compl = completionState{}
}

func commonPrefix(items []string) string {
	if len(items) == 0 {
		return ""
	}
	prefix := []rune(items[0])
	for _, it := range items[1:] {
		r := []rune(it)
		n := len(prefix)
		if len(r) < n {
			n = len(r)
		}
		i := 0
		for i < n && prefix[i] == r[i] {
			i++
		}
		prefix = prefix[:i]
		if len(prefix) == 0 {
			break
		}
	}
	return string(prefix)
}
