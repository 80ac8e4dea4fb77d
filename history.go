package liner

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// defaultHistoryMaxLen matches linenoise's own default cap before a caller
// ever calls HistorySetMaxLen.
const defaultHistoryMaxLen = 100

var historyCommands = map[command]commandFunc{
	cmdAbort: func(s *Session, key rune) (bool, error) {
		return s.hist.abortSearch(s)
	},
	cmdBeginningOfHistory: func(s *Session, key rune) (bool, error) {
		return s.hist.jumpOldest(s)
	},
	cmdEndOfHistory: func(s *Session, key rune) (bool, error) {
		return s.hist.jumpCurrent(s)
	},
	cmdBackwardDeleteChar: func(s *Session, key rune) (bool, error) {
		return s.hist.truncateSearchKey(s)
	},
	cmdCancel: func(s *Session, key rune) (bool, error) {
		return s.hist.cancelSearch(s)
	},
	cmdForwardSearchHistory: func(s *Session, key rune) (bool, error) {
		return s.hist.forwardSearch(s)
	},
	cmdInsertChar: func(s *Session, key rune) (bool, error) {
		return s.hist.appendSearchKey(s, key)
	},
	cmdReverseSearchHistory: func(s *Session, key rune) (bool, error) {
		return s.hist.reverseSearch(s)
	},
	cmdNextHistory: func(s *Session, key rune) (bool, error) {
		return s.hist.next(s)
	},
	cmdPreviousHistory: func(s *Session, key rune) (bool, error) {
		return s.hist.previous(s)
	},
}

// history is a fixed-size circular list of entries plus the state needed to
// drive Ctrl-P/Ctrl-N navigation and Ctrl-R/Ctrl-S incremental search.
// Adjacent duplicate entries are suppressed on Add.
type history struct {
	path    string
	pending string
	entries []string
	head    int
	maxSize int
	index   int

	searchDir        int
	searchMatched    bool
	searchKey        string
	searchMatchedKey string
}

func newHistory() *history {
	return &history{maxSize: defaultHistoryMaxLen, index: -1}
}

// Close is a no-op: save/load are one-shot operations rather than a file
// kept open across the Session's lifetime, so there is nothing to release.
func (h *history) Close() error { return nil }

// setMaxLen sets the maximum number of retained entries, clamping to at
// least 1 the way linenoiseHistorySetMaxLen does, and returns the
// effective value actually applied.
func (h *history) setMaxLen(n int) int {
	if n < 1 {
		n = 1
	}
	h.maxSize = n
	// Lay the ring out oldest first with head on the newest entry, dropping
	// the oldest entries beyond n, so later adds grow or wrap it in order.
	all := h.all()
	if len(all) > n {
		all = all[len(all)-n:]
	}
	h.entries = append([]string(nil), all...)
	h.head = len(h.entries) - 1
	return n
}

// load reads history entries from path, one per line, applying
// unescapeHistory to each. A missing file is not an error — it is created
// on first save.
func (h *history) load(path string) error {
	h.path = path
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	for s := bufio.NewScanner(f); s.Scan(); {
		h.add(unescapeHistory(s.Text()))
	}
	return nil
}

// save writes every retained entry to path, oldest first, one per line.
func (h *history) save(path string) error {
	h.path = path
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i := len(h.entries) - 1; i >= 0; i-- {
		if _, err := fmt.Fprintln(w, escapeHistory(h.entry(i))); err != nil {
			return err
		}
	}
	return w.Flush()
}

// add appends a new entry, evicting the oldest once maxSize is reached,
// and elides an entry identical to the immediately preceding one.
func (h *history) add(s string) {
	if h.maxSize <= 0 {
		return
	}
	if h.entry(0) == s {
		return
	}
	if len(h.entries) < h.maxSize {
		h.entries = append(h.entries, "")
	}
	h.head = (h.head + 1) % len(h.entries)
	h.entries[h.head] = s
	h.index = -1
}

// all returns every retained entry, oldest first.
func (h *history) all() []string {
	out := make([]string, len(h.entries))
	for i := range out {
		out[len(out)-1-i] = h.entry(i)
	}
	return out
}

func (h *history) entry(n int) string {
	if n == -1 {
		return h.pending
	}
	i := h.entryIndex(n)
	if i == -1 {
		return ""
	}
	return h.entries[i]
}

func (h *history) entryIndex(n int) int {
	if n >= len(h.entries) {
		return -1
	}
	index := h.head - n
	if index < 0 {
		index += len(h.entries)
	}
	return index
}

func (h *history) saveCurrent(cur string) {
	if h.index == -1 {
		h.pending = cur
		return
	}
	if i := h.entryIndex(h.index); i != -1 {
		h.entries[i] = cur
	}
}

// next moves toward the most recent entry (Ctrl-N), or advances a forward
// search if one is active.
func (h *history) next(s *Session) (bool, error) {
	if h.searchDir != 0 {
		return h.forwardSearch(s)
	}
	if h.index == -1 {
		return false, nil
	}
	h.saveCurrent(s.text())
	h.index--
	s.buf.set(h.entry(h.index))
	s.refresh()
	return true, nil
}

// previous moves toward the oldest entry (Ctrl-P), or advances a reverse
// search if one is active.
func (h *history) previous(s *Session) (bool, error) {
	if h.searchDir != 0 {
		return h.reverseSearch(s)
	}
	if h.index+1 >= len(h.entries) {
		return false, nil
	}
	h.saveCurrent(s.text())
	h.index++
	s.buf.set(h.entry(h.index))
	s.refresh()
	return true, nil
}

// jumpOldest moves directly to the oldest retained entry (Page-Up),
// cancelling any active search first.
func (h *history) jumpOldest(s *Session) (bool, error) {
	if h.searchDir != 0 {
		if _, err := h.cancelSearch(s); err != nil {
			return true, err
		}
	}
	if len(h.entries) == 0 {
		s.bell()
		return true, nil
	}
	h.saveCurrent(s.text())
	h.index = len(h.entries) - 1
	s.buf.set(h.entry(h.index))
	s.refresh()
	return true, nil
}

// jumpCurrent moves directly back to the in-progress scratch line
// (Page-Down), cancelling any active search first.
func (h *history) jumpCurrent(s *Session) (bool, error) {
	if h.searchDir != 0 {
		if _, err := h.cancelSearch(s); err != nil {
			return true, err
		}
	}
	h.saveCurrent(s.text())
	h.index = -1
	s.buf.set(h.entry(h.index))
	s.refresh()
	return true, nil
}

// abortSearch restores the last-matched search key if the current one
// failed to match, otherwise cancels search entirely (Ctrl-G).
func (h *history) abortSearch(s *Session) (bool, error) {
	if h.searchDir == 0 {
		return false, nil
	}
	if !h.searchMatched {
		h.searchKey = h.searchMatchedKey
		h.updateSearch(s, false)
		return true, nil
	}
	return h.cancelSearch(s)
}

// cancelSearch leaves search mode, restoring the normal prompt.
func (h *history) cancelSearch(s *Session) (bool, error) {
	if h.searchDir == 0 {
		return false, nil
	}
	s.disp.setOverride("")
	h.searchDir = 0
	h.searchMatched = false
	h.searchKey = ""
	h.searchMatchedKey = ""
	s.refresh()
	return true, nil
}

func (h *history) reverseSearch(s *Session) (bool, error) {
	h.maybeInitSearch(s)
	h.searchDir = -1
	h.updateSearch(s, true)
	return true, nil
}

func (h *history) forwardSearch(s *Session) (bool, error) {
	h.maybeInitSearch(s)
	h.searchDir = +1
	h.updateSearch(s, true)
	return true, nil
}

func (h *history) appendSearchKey(s *Session, key rune) (bool, error) {
	if h.searchDir == 0 {
		return false, nil
	}
	if key >= 0x20 && key != utf8.RuneError {
		h.searchKey += string(key)
		h.updateSearch(s, false)
	}
	return true, nil
}

func (h *history) truncateSearchKey(s *Session) (bool, error) {
	if h.searchDir == 0 {
		return false, nil
	}
	if len(h.searchKey) > 0 {
		_, size := utf8.DecodeLastRuneInString(h.searchKey)
		h.searchKey = h.searchKey[:len(h.searchKey)-size]
		h.updateSearch(s, false)
	}
	return true, nil
}

// dispatch routes cmd through the history commands while a search is
// active, or whenever cmd is itself history-related. Any other command
// cancels an active search first, then falls through to normal dispatch.
func (h *history) dispatch(s *Session, cmd command, key rune) (bool, error) {
	if fn, ok := historyCommands[cmd]; ok {
		return fn(s, key)
	}
	if h.searchDir != 0 {
		if _, err := h.cancelSearch(s); err != nil {
			return true, err
		}
	}
	return false, nil
}

func (h *history) searchEntry(s *Session, i int, advance bool) bool {
	entry := h.entry(i)
	var pos int

	switch h.searchDir {
	case +1:
		n := 0
		if i == h.index {
			n = s.position()
			if advance {
				n++
			}
		}
		if n > len(entry) {
			n = len(entry)
		}
		idx := strings.Index(entry[n:], h.searchKey)
		if idx == -1 {
			return false
		}
		pos = n + idx

	case -1:
		n := len(entry)
		if i == h.index {
			n = s.position() + len(h.searchKey)
			if advance {
				n--
			}
			if n < 0 {
				n = 0
			}
			if n > len(entry) {
				n = len(entry)
			}
		}
		idx := strings.LastIndex(entry[:n], h.searchKey)
		if idx == -1 {
			return false
		}
		pos = idx
	}

	h.saveCurrent(s.text())
	h.index = i
	s.buf.set(entry)
	s.buf.pos = s.buf.clampPos(utf8.RuneCountInString(entry[:pos]))
	s.refresh()
	return true
}

func (h *history) updateSearch(s *Session, advance bool) {
	h.searchMatched = false
	if len(h.searchKey) > 0 {
		switch h.searchDir {
		case +1:
			for i := h.index; i >= -1; i-- {
				if h.searchEntry(s, i, advance) {
					h.searchMatched = true
					h.searchMatchedKey = h.searchKey
					break
				}
			}
		case -1:
			for i := h.index; i < len(h.entries); i++ {
				if h.searchEntry(s, i, advance) {
					h.searchMatched = true
					h.searchMatchedKey = h.searchKey
					break
				}
			}
		}
	}

	label := "reverse-i-search"
	if h.searchDir > 0 {
		label = "i-search"
	}
	mark := "failed "
	if len(h.searchKey) == 0 || h.searchMatched {
		mark = ""
	}
	s.disp.setOverride(fmt.Sprintf("(%s%s)'%s': ", mark, label, h.searchKey))
	s.refresh()
}

func (h *history) maybeInitSearch(s *Session) {
	if h.searchDir != 0 {
		return
	}
	h.saveCurrent(s.text())
	h.searchKey = ""
	h.searchMatchedKey = ""
}
