package liner

import (
	"fmt"
	"io"
	"os"
	"sync"
	"unicode/utf8"
)

var dbg = struct {
	sync.Once
	w io.WriteCloser
}{}

func initDebug() {
	path := os.Getenv("LINER_DEBUG")
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		return
	}
	dbg.w = f
}

func debugPrintf(format string, args ...interface{}) {
	dbg.Do(initDebug)
	if dbg.w == nil {
		return
	}
	fmt.Fprintf(dbg.w, format, args...)
}

func debugKey(r rune) string {
	if r < 32 {
		return "Control-" + string(rune(r+0x60))
	}

	var s string
	switch b := r & ^(keyAlt | keyCtrl); b {
	case utf8.RuneError:
		s = "<incomplete>"
	case keyBackspace:
		s = "<backspace>"
	case keyUnknown:
		s = "<unknown>"
	case keyUp:
		s = "<up>"
	case keyDown:
		s = "<down>"
	case keyLeft:
		s = "<left>"
	case keyRight:
		s = "<right>"
	case keyHome:
		s = "<home>"
	case keyEnd:
		s = "<end>"
	case keyPageUp:
		s = "<page-up>"
	case keyPageDown:
		s = "<page-down>"
	case keyDelete:
		s = "<delete>"
	case keyInsert:
		s = "<insert>"
	default:
		s = string(b)
	}

	if (r & keyAlt) != 0 {
		s = "Meta-" + s
	}
	if (r & keyCtrl) != 0 {
		s = "Control-" + s
	}
	return s
}
