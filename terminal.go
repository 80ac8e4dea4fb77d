package liner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrNotATerminal is returned by enableRaw when the input is not a TTY, or
// is a terminal type known not to support raw-mode editing (§4.1).
var ErrNotATerminal = errors.New("liner: not a terminal")

// unsupportedTerms lists $TERM values known not to cooperate with raw mode
// and cursor-addressing escapes, matching linenoise's own rejection list.
var unsupportedTerms = map[string]bool{
	"dumb":   true,
	"cons25": true,
}

// escapeTimeout bounds how long nextKey waits for the byte following a
// lone ESC before deciding it was a standalone Escape keypress.
const escapeTimeout = 50 * time.Millisecond

// terminal is the raw-mode driver: it owns the file descriptor (when one is
// available), enables/disables raw mode, queries width, and turns a byte
// stream into single bytes with optional read deadlines for escape-sequence
// disambiguation.
type terminal struct {
	fd     int
	in     io.Reader
	out    io.Writer
	saved  *term.State
	isReal bool // fd refers to an actual tty we put into raw mode
}

type fdGetter interface {
	Fd() uintptr
}

type deadliner interface {
	SetReadDeadline(t time.Time) error
}

func newTerminal(in io.Reader, out io.Writer) *terminal {
	t := &terminal{fd: -1, in: in, out: out}
	if f, ok := in.(fdGetter); ok {
		t.fd = int(f.Fd())
	}
	return t
}

// enableRaw puts the terminal into raw mode: no line buffering, no echo,
// signal characters delivered as bytes, VMIN=1/VTIME=0 reads. It is
// idempotent — calling it twice without an intervening disableRaw is a
// no-op.
func (t *terminal) enableRaw() error {
	if t.saved != nil {
		return nil
	}
	if t.fd < 0 || !term.IsTerminal(t.fd) {
		return ErrNotATerminal
	}
	if name := os.Getenv("TERM"); unsupportedTerms[name] {
		return ErrNotATerminal
	}
	saved, err := term.MakeRaw(t.fd)
	if err != nil {
		return err
	}
	t.saved = saved
	t.isReal = true
	registerRawTerminal(t)
	return nil
}

// disableRaw restores the terminal's original attributes, if enableRaw
// succeeded earlier.
func (t *terminal) disableRaw() {
	if t.saved == nil {
		return
	}
	_ = term.Restore(t.fd, t.saved)
	t.saved = nil
	unregisterRawTerminal(t)
}

// queryWidth returns the terminal's current column count, defaulting to 80
// on any failure per §4.1. It first tries term.GetSize, then a direct
// TIOCGWINSZ ioctl (some ptys report a size to one path but not the other
// mid-resize), falling back to the ESC[6n cursor-position probe used by
// linenoise-class editors when neither ioctl path succeeds (e.g. input
// redirected from a pipe sharing a controlling tty on the output side).
func (t *terminal) queryWidth() int {
	if t.fd >= 0 {
		if w, _, err := term.GetSize(t.fd); err == nil && w > 0 {
			return w
		}
		if w, ok := t.queryWidthByIoctl(); ok {
			return w
		}
	}
	if w, ok := t.queryWidthByCursor(); ok {
		return w
	}
	return 80
}

// queryWidthByIoctl asks the kernel directly via TIOCGWINSZ, bypassing
// term.GetSize's own ioctl call — a second attempt for terminals that
// briefly return an error through x/term immediately after a resize.
func (t *terminal) queryWidthByIoctl() (int, bool) {
	ws, err := unix.IoctlGetWinsize(t.fd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return 0, false
	}
	return int(ws.Col), true
}

// queryWidthByCursor saves the cursor, moves it far to the right, asks the
// terminal to report its position, and restores the saved cursor, per §4.1.
func (t *terminal) queryWidthByCursor() (int, bool) {
	br, ok := t.in.(io.Reader)
	if !ok {
		return 0, false
	}
	if _, err := io.WriteString(t.out, "\x1b7\x1b[999C\x1b[6n"); err != nil {
		return 0, false
	}
	defer func() { _, _ = io.WriteString(t.out, "\x1b8") }()
	r := bufio.NewReader(br)
	resp, err := r.ReadString('R')
	if err != nil {
		return 0, false
	}
	var row, col int
	if _, err := fmt.Sscanf(resp, "\x1b[%d;%dR", &row, &col); err != nil {
		return 0, false
	}
	if col <= 0 {
		return 0, false
	}
	return col, true
}

// readByte reads a single byte from the input. If timeout > 0 and the
// underlying reader supports read deadlines, the read is bounded by
// timeout; a timeout is reported via the second return value rather than
// as an error.
func (t *terminal) readByte(timeout time.Duration) (b byte, timedOut bool, err error) {
	if timeout > 0 {
		if d, ok := t.in.(deadliner); ok {
			_ = d.SetReadDeadline(time.Now().Add(timeout))
			defer func() { _ = d.SetReadDeadline(time.Time{}) }()
		}
	}

	var buf [1]byte
	n, err := t.in.Read(buf[:])
	if n == 1 {
		return buf[0], false, nil
	}
	if err != nil {
		if isTimeout(err) {
			return 0, true, nil
		}
		return 0, false, err
	}
	return 0, false, io.ErrNoProgress
}

func isTimeout(err error) bool {
	type timeouter interface{ Timeout() bool }
	var te timeouter
	if errors.As(err, &te) {
		return te.Timeout()
	}
	return false
}

// clearScreen emits the wire sequence that homes the cursor and erases the
// visible screen (§6).
func (t *terminal) clearScreen() {
	_, _ = io.WriteString(t.out, "\x1b[H\x1b[2J")
}

// --- process-wide raw-mode restore hook (§5) ---
//
// Only one terminal is normally active at a time, but the registry allows
// an abnormal exit (SIGINT/SIGTERM reaching the process outside of raw-mode
// byte delivery) to still restore every terminal that was left in raw mode.
// A panic unwinding through ReadLine is covered by its deferred disableRaw,
// not by this hook.

var rawRegistry struct {
	sync.Mutex
	active map[*terminal]struct{}
	once   sync.Once
}

func registerRawTerminal(t *terminal) {
	rawRegistry.once.Do(installRawModeRestoreHook)
	rawRegistry.Lock()
	defer rawRegistry.Unlock()
	if rawRegistry.active == nil {
		rawRegistry.active = make(map[*terminal]struct{})
	}
	rawRegistry.active[t] = struct{}{}
}

func unregisterRawTerminal(t *terminal) {
	rawRegistry.Lock()
	defer rawRegistry.Unlock()
	delete(rawRegistry.active, t)
}

func restoreAllRawTerminals() {
	rawRegistry.Lock()
	defer rawRegistry.Unlock()
	for t := range rawRegistry.active {
		if t.saved != nil {
			_ = term.Restore(t.fd, t.saved)
			t.saved = nil
		}
	}
}

func installRawModeRestoreHook() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		for sig := range ch {
			restoreAllRawTerminals()
			signal.Stop(ch)
			p, err := os.FindProcess(os.Getpid())
			if err == nil {
				_ = p.Signal(sig)
			}
			return
		}
	}()
}
