package liner

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// PrintKeyCodes is the diagnostic mode described in §6: it echoes each
// byte read from in, decoded through the same key parser ReadLine uses,
// until Ctrl-C is pressed. It puts in into raw mode first if in is a
// terminal, restoring it before returning.
func PrintKeyCodes(in io.Reader, out io.Writer) error {
	t := newTerminal(in, out)
	if err := t.enableRaw(); err != nil && err != ErrNotATerminal {
		return err
	}
	defer t.disableRaw()

	fmt.Fprintf(out, "Type keys to see their codes (Ctrl-C to exit).\r\n")

	var pending []byte
	for {
		b, _, err := t.readByte(0)
		if err != nil {
			return err
		}
		pending = append(pending, b)

		for len(pending) > 0 {
			key, rest := parseKey(pending)
			if key == utf8.RuneError && len(rest) == len(pending) {
				break // partial sequence, need another byte
			}
			pending = rest
			fmt.Fprintf(out, "%s\r\n", debugKey(key))
			if key == keyCtrlC {
				return nil
			}
		}
	}
}
