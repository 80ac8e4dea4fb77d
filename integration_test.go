package liner

import (
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/require"
)

// TestIntegrationPTYReadLine drives a Session against a real pseudo-terminal
// rather than a bytes.Reader/bytes.Buffer pair, so term.MakeRaw/term.GetSize
// and the raw-mode restore path actually run against a tty file descriptor
// instead of being skipped via ErrNotATerminal.
func TestIntegrationPTYReadLine(t *testing.T) {
	ptm, pts, err := pty.Open()
	require.NoError(t, err)
	defer ptm.Close()
	defer pts.Close()

	require.NoError(t, pty.Setsize(ptm, &pty.Winsize{Rows: 24, Cols: 80}))

	type result struct {
		line string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		s := New(WithInput(pts), WithOutput(pts))
		line, err := s.ReadLine("> ")
		done <- result{line, err}
	}()

	_, err = ptm.Write([]byte("hello\r"))
	require.NoError(t, err)

	select {
	case r := <-done:
		require.NoError(t, r.err)
		require.Equal(t, "hello", r.line)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for ReadLine over pty")
	}
}

// TestIntegrationPTYRawModeRestored checks that enableRaw puts a real pty
// into raw mode and disableRaw releases the saved state, then that a
// ReadLine with cursor-motion input still completes over the same pty.
func TestIntegrationPTYRawModeRestored(t *testing.T) {
	ptm, pts, err := pty.Open()
	require.NoError(t, err)
	defer ptm.Close()
	defer pts.Close()

	require.NoError(t, pty.Setsize(ptm, &pty.Winsize{Rows: 24, Cols: 80}))

	term := newTerminal(pts, pts)
	require.NoError(t, term.enableRaw())
	require.True(t, term.isReal)
	term.disableRaw()
	require.Nil(t, term.saved)

	done := make(chan struct{})
	go func() {
		s := New(WithInput(pts), WithOutput(pts))
		_, _ = s.ReadLine("> ")
		close(done)
	}()

	_, err = ptm.Write([]byte("abc\x1b[D\x1b[DX\r"))
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for ReadLine over pty")
	}
}
