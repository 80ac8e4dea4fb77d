package liner

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	var sequences = map[string]rune{
		"\x7f":    keyBackspace,
		"a":       rune('a'),
		"b":       rune('b'),
		"«":       rune('«'),
		"»":       rune('»'),
		"\x1bb":   rune('b') | keyAlt,
		"\x1bf":   rune('f') | keyAlt,
		"\x1b«":   rune('«') | keyAlt,
		"\x1b»":   rune('»') | keyAlt,
		"\x1b.":   rune('.') | keyAlt,
		"\x01":    keyCtrlA,
		"\x02":    keyCtrlB,
		"\x05":    keyCtrlE,
		"\x06":    keyCtrlF,
		"\x08":    keyCtrlH,
		"\x0b":    keyCtrlK,
		"\x0c":    keyCtrlL,
		"\x10":    keyCtrlP,
		"\x17":    keyCtrlW,
		"\x1bOA":  keyUp,
		"\x1bOB":  keyDown,
		"\x1bOC":  keyRight,
		"\x1bOD":  keyLeft,
		"\x1bOH":  keyHome,
		"\x1bOF":  keyEnd,
		"\x1b[A":  keyUp,
		"\x1b[B":  keyDown,
		"\x1b[C":  keyRight,
		"\x1b[D":  keyLeft,
		"\x1b[H":  keyHome,
		"\x1b[F":  keyEnd,
		"\x1b[1~": keyHome,
		"\x1b[2~": keyInsert,
		"\x1b[3~": keyDelete,
		"\x1b[4~": keyEnd,
		"\x1b[5~": keyPageUp,
		"\x1b[6~": keyPageDown,
		"\x1b[7~": keyHome,
		"\x1b[8~": keyEnd,
	}

	incomplete := map[string]rune{
		"":        utf8.RuneError,
		"\x1b":    utf8.RuneError,
		"\x1b[G":  keyUnknown,
		"\x1b[10": utf8.RuneError,
		"\x1b[9":  utf8.RuneError,
	}

	for seq, key := range sequences {
		k, _ := parseKey([]byte(seq))
		require.Equalf(t, key, k, "%q", seq)

		// An escape prefix on an escape sequence adds the keyAlt modifier.
		seq2 := "\x1b" + seq
		k, _ = parseKey([]byte(seq2))
		require.Equalf(t, key|keyAlt, k, "%q", seq2)
	}

	for seq, key := range incomplete {
		k, _ := parseKey([]byte(seq))
		require.Equal(t, key, k, "%q", seq)
	}
}

func TestParseKeyConsumesBytes(t *testing.T) {
	buf := []byte("\x1b[Aab")
	k, rest := parseKey(buf)
	require.Equal(t, keyUp, k)
	require.Equal(t, []byte("ab"), rest)

	k, rest = parseKey(rest)
	require.Equal(t, rune('a'), k)
	require.Equal(t, []byte("b"), rest)
}
