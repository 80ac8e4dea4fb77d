package liner

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

type command string

const (
	cmdAbort                command = "abort"
	cmdBackwardChar                 = "backward-char"
	cmdBackwardDeleteChar           = "backward-delete-char"
	cmdBackwardKillLine             = "backward-kill-line"
	cmdBackwardKillWord             = "backward-kill-word"
	cmdBackwardWord                 = "backward-word"
	cmdBeginningOfHistory           = "beginning-of-history"
	cmdBeginningOfLine              = "beginning-of-line"
	cmdCancel                       = "cancel"
	cmdClearScreen                  = "clear-screen"
	cmdComplete                     = "complete"
	cmdDeleteChar                   = "delete-char"
	cmdEndOfHistory                 = "end-of-history"
	cmdEndOfLine                    = "end-of-line"
	cmdExitOrDeleteChar             = "exit-or-delete-char"
	cmdForwardChar                  = "forward-char"
	cmdForwardSearchHistory         = "forward-search-history"
	cmdForwardWord                  = "forward-word"
	cmdInsertChar                   = "insert-char"
	cmdInsertLastArg                = "insert-last-arg"
	cmdKillLine                     = "kill-line"
	cmdKillWord                     = "kill-word"
	cmdLiteralNext                  = "literal-next"
	cmdNewline                      = "accept-line"
	cmdNextHistory                  = "next-history"
	cmdPreviousHistory              = "previous-history"
	cmdReverseSearchHistory         = "reverse-search-history"
	cmdTransposeChars               = "transpose-chars"
	cmdYank                         = "yank"
)

const defaultBindings = string(`
bind Backspace       ` + cmdBackwardDeleteChar + `
bind Delete          ` + cmdDeleteChar + `
bind Down            ` + cmdNextHistory + `
bind End             ` + cmdEndOfLine + `
bind Enter           ` + cmdNewline + `
bind Home            ` + cmdBeginningOfLine + `
bind Left            ` + cmdBackwardChar + `
bind Right           ` + cmdForwardChar + `
bind Up              ` + cmdPreviousHistory + `
bind Page-Up         ` + cmdBeginningOfHistory + `
bind Page-Down       ` + cmdEndOfHistory + `
bind Tab             ` + cmdComplete + `
bind Control-a       ` + cmdBeginningOfLine + `
bind Control-b       ` + cmdBackwardChar + `
bind Control-c       ` + cmdCancel + `
bind Control-d       ` + cmdExitOrDeleteChar + `
bind Control-e       ` + cmdEndOfLine + `
bind Control-f       ` + cmdForwardChar + `
bind Control-g       ` + cmdAbort + `
bind Control-h       ` + cmdBackwardDeleteChar + `
bind Control-k       ` + cmdKillLine + `
bind Control-l       ` + cmdClearScreen + `
bind Control-n       ` + cmdNextHistory + `
bind Control-p       ` + cmdPreviousHistory + `
bind Control-r       ` + cmdReverseSearchHistory + `
bind Control-s       ` + cmdForwardSearchHistory + `
bind Control-t       ` + cmdTransposeChars + `
bind Control-u       ` + cmdBackwardKillLine + `
bind Control-v       ` + cmdLiteralNext + `
bind Control-w       ` + cmdBackwardKillWord + `
bind Control-y       ` + cmdYank + `
bind Meta-Backspace  ` + cmdBackwardKillWord + `
bind Meta-Control-h  ` + cmdBackwardKillWord + `
bind Meta-b          ` + cmdBackwardWord + `
bind Meta-d          ` + cmdKillWord + `
bind Meta-f          ` + cmdForwardWord + `
bind Meta-.          ` + cmdInsertLastArg + `
`)

var namedKeys = map[string]rune{
	"backspace": keyBackspace,
	"delete":    keyDelete,
	"down":      keyDown,
	"end":       keyEnd,
	"enter":     keyEnter,
	"home":      keyHome,
	"insert":    keyInsert,
	"left":      keyLeft,
	"page-down": keyPageDown,
	"page-up":   keyPageUp,
	"right":     keyRight,
	"space":     ' ',
	"tab":       '\t',
	"up":        keyUp,
}

type commandFunc func(s *Session, key rune) (bool, error)

var baseCommands = map[command]commandFunc{
	cmdBackwardChar: func(s *Session, key rune) (bool, error) {
		s.moveTo(s.position() - 1)
		return true, nil
	},
	cmdBackwardDeleteChar: func(s *Session, key rune) (bool, error) {
		s.deleteChar(s.position() - 1)
		return true, nil
	},
	cmdBackwardKillLine: func(s *Session, key rune) (bool, error) {
		s.killRange(0, s.position())
		return true, nil
	},
	cmdBackwardKillWord: func(s *Session, key rune) (bool, error) {
		text := []rune(s.text())
		start, _ := wordBounds(text, s.position())
		s.killRange(start, s.position())
		return true, nil
	},
	cmdBackwardWord: func(s *Session, key rune) (bool, error) {
		text := []rune(s.text())
		start, _ := wordBounds(text, s.position())
		if start == s.position() && start > 0 {
			start, _ = wordBounds(text, start-1)
		}
		s.moveTo(start)
		return true, nil
	},
	cmdBeginningOfLine: func(s *Session, key rune) (bool, error) {
		s.moveTo(0)
		return true, nil
	},
	cmdCancel: func(s *Session, key rune) (bool, error) {
		return true, ErrInterrupted
	},
	cmdClearScreen: func(s *Session, key rune) (bool, error) {
		s.ClearScreen()
		return true, nil
	},
	cmdComplete: func(s *Session, key rune) (bool, error) {
		return s.complete(key)
	},
	cmdDeleteChar: func(s *Session, key rune) (bool, error) {
		s.deleteChar(s.position())
		return true, nil
	},
	cmdEndOfLine: func(s *Session, key rune) (bool, error) {
		s.moveTo(len([]rune(s.text())))
		return true, nil
	},
	cmdExitOrDeleteChar: func(s *Session, key rune) (bool, error) {
		if len(s.text()) == 0 {
			return true, io.EOF
		}
		s.deleteChar(s.position())
		return true, nil
	},
	cmdForwardChar: func(s *Session, key rune) (bool, error) {
		s.moveTo(s.position() + 1)
		return true, nil
	},
	cmdForwardWord: func(s *Session, key rune) (bool, error) {
		text := []rune(s.text())
		_, end := wordBounds(text, s.position())
		if end == s.position() && end < len(text) {
			_, end = wordBounds(text, end+1)
		}
		s.moveTo(end)
		return true, nil
	},
	cmdInsertChar: func(s *Session, key rune) (bool, error) {
		return true, s.insertRune(key)
	},
	cmdInsertLastArg: func(s *Session, key rune) (bool, error) {
		s.insertLastArg()
		return true, nil
	},
	cmdKillLine: func(s *Session, key rune) (bool, error) {
		s.killRange(s.position(), len([]rune(s.text())))
		return true, nil
	},
	cmdKillWord: func(s *Session, key rune) (bool, error) {
		text := []rune(s.text())
		_, end := wordBounds(text, s.position())
		s.killRange(s.position(), end)
		return true, nil
	},
	cmdLiteralNext: func(s *Session, key rune) (bool, error) {
		s.literalNext = true
		return true, nil
	},
	cmdNewline: func(s *Session, key rune) (bool, error) {
		return true, errLineDone
	},
	cmdTransposeChars: func(s *Session, key rune) (bool, error) {
		s.transposeChars()
		return true, nil
	},
	cmdYank: func(s *Session, key rune) (bool, error) {
		s.yank()
		return true, nil
	},
}

func isValidCommand(cmd command) bool {
	if _, ok := baseCommands[cmd]; ok {
		return true
	}
	if _, ok := historyCommands[cmd]; ok {
		return true
	}
	return false
}

func parseBinding(binding string) (key rune, cmd command, err error) {
	const (
		controlPrefix = "Control-"
		metaPrefix    = "Meta-"
	)

	parts := strings.Fields(binding)
	if len(parts) != 3 || parts[0] != "bind" {
		return utf8.RuneError, "", fmt.Errorf("invalid binding: [%s]", binding)
	}

	cmd = command(parts[2])
	if !isValidCommand(cmd) {
		return utf8.RuneError, "", fmt.Errorf("unknown command: %s", cmd)
	}

	origKey := parts[1]
	var mods rune
	for s := parts[1]; len(s) > 0; {
		if strings.HasPrefix(s, controlPrefix) {
			if (mods & keyCtrl) != 0 {
				return utf8.RuneError, "", fmt.Errorf("invalid key: %q", origKey)
			}
			mods |= keyCtrl
			s = s[len(controlPrefix):]
			continue
		}
		if strings.HasPrefix(s, metaPrefix) {
			if (mods & keyAlt) != 0 {
				return utf8.RuneError, "", fmt.Errorf("invalid key: %q", origKey)
			}
			mods |= keyAlt
			s = s[len(metaPrefix):]
			continue
		}
		if key = namedKeys[strings.ToLower(s)]; key == 0 {
			var l int
			key, l = utf8.DecodeRuneInString(s)
			if l != len(s) {
				return utf8.RuneError, "", fmt.Errorf("invalid key: %q", origKey)
			}
		}
		break
	}

	// Translate Control-<letter> into the corresponding C0 control byte.
	if (mods & keyCtrl) != 0 {
		if key >= 'a' && key <= 'z' {
			key -= 0x60
			mods ^= keyCtrl
		} else if key >= 'A' && key <= 'Z' {
			key -= 0x40
			mods ^= keyCtrl
		}
	}

	return key | mods, cmd, nil
}

func parseBindings(m map[rune]command, data string) error {
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		key, cmd, err := parseBinding(line)
		if err != nil {
			return err
		}
		m[key] = cmd
		if (key & keyAlt) != 0 {
			b := key & ^(keyAlt | keyCtrl)
			switch {
			case unicode.IsLower(b):
				b = unicode.ToUpper(b)
			case unicode.IsUpper(b):
				b = unicode.ToLower(b)
			}
			key = b | (key & (keyAlt | keyCtrl))
			m[key] = cmd
		}
	}
	return nil
}
