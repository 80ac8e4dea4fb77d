package liner

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestDisplay() (*display, *bytes.Buffer) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	d := newDisplay(w)
	return d, &buf
}

func TestPromptWidthSkipsANSIEscapes(t *testing.T) {
	require.Equal(t, 6, promptWidth("prompt"))
	require.Equal(t, 6, promptWidth("\x1b[32mprompt\x1b[0m"))
}

func TestCharWidthControlBytesAreTwoColumns(t *testing.T) {
	require.Equal(t, 2, charWidth(0x01))
	require.Equal(t, 2, charWidth('\t'))
	require.Equal(t, 1, charWidth('a'))
}

func TestFitWindowKeepsCursorVisible(t *testing.T) {
	d, _ := newTestDisplay()
	d.cols = 80
	runes := []rune("0123456789")
	start, end := d.fitWindow(runes, 5, 5)
	require.LessOrEqual(t, start, 5)
	require.GreaterOrEqual(t, end, 5)
	require.LessOrEqual(t, d.colsOf(runes[start:end]), 5)
}

func TestFitWindowScrollsWhenCursorPastRightEdge(t *testing.T) {
	d, _ := newTestDisplay()
	runes := []rune("0123456789")
	start, end := d.fitWindow(runes, 9, 4)
	require.Equal(t, 6, start)
	require.Equal(t, 10, end)
	require.LessOrEqual(t, start, 9)
	require.GreaterOrEqual(t, end, 9)
}

func TestRefreshWritesPromptAndLine(t *testing.T) {
	d, out := newTestDisplay()
	d.cols = 80
	d.setPrompt("> ")
	var b buffer
	b.set("hello")

	d.refresh(&b)
	require.NoError(t, d.out.Flush())

	written := out.String()
	require.Contains(t, written, "> hello")
	require.Contains(t, written, "\x1b[K")
}

func TestSetOverrideReplacesActivePrompt(t *testing.T) {
	d, _ := newTestDisplay()
	d.setPrompt("demo> ")
	p, n := d.activePrompt()
	require.Equal(t, "demo> ", p)
	require.Equal(t, 6, n)

	d.setOverride("(reverse-i-search)'': ")
	p, _ = d.activePrompt()
	require.Equal(t, "(reverse-i-search)'': ", p)

	d.setOverride("")
	p, _ = d.activePrompt()
	require.Equal(t, "demo> ", p)
}
