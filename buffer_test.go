package liner

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferInsertRemove(t *testing.T) {
	var b buffer

	require.Equal(t, editFastPath, b.insertChar(0, 'h', 0, 80))
	require.Equal(t, editFastPath, b.insertChar(1, 'i', 0, 80))
	require.Equal(t, "hi", b.String())
	require.Equal(t, 2, b.pos)

	require.Equal(t, editRefresh, b.insertChar(0, 'O', 0, 80))
	require.Equal(t, "Ohi", b.String())
	require.Equal(t, 3, b.pos)

	require.Equal(t, editRefresh, b.removeChar(0, 0, 80))
	require.Equal(t, "hi", b.String())
	require.Equal(t, 2, b.pos)

	require.Equal(t, editFastPath, b.removeChar(1, 0, 80))
	require.Equal(t, "h", b.String())
}

func TestBufferRemoveCharControlByteNoFastPath(t *testing.T) {
	var b buffer
	b.insertChar(0, 'a', 0, 80)
	b.insertChar(1, keyCtrlA, 0, 80)
	require.Equal(t, 2, b.chars)

	require.Equal(t, editRefresh, b.removeChar(1, 0, 80))
	require.Equal(t, "a", b.String())
}

func TestBufferUTF8(t *testing.T) {
	var b buffer
	b.insertChar(0, '«', 0, 80)
	b.insertChar(1, '日', 0, 80)
	b.insertChar(2, '»', 0, 80)
	require.Equal(t, "«日»", b.String())
	require.Equal(t, 3, b.chars)

	r, ok := b.runeAt(1)
	require.True(t, ok)
	require.Equal(t, '日', r)

	require.Equal(t, 2, b.byteOffset(1))

	b.removeChar(1, 0, 80)
	require.Equal(t, "«»", b.String())
	require.Equal(t, 2, b.chars)
}

func TestBufferRemoveChars(t *testing.T) {
	var b buffer
	b.set("hello world")
	n := b.removeChars(5, 11)
	require.Equal(t, 6, n)
	require.Equal(t, "hello", b.String())
	require.Equal(t, " world", b.capture)
	require.Equal(t, 5, b.pos)
}

func TestBufferRemoveCharsClampsRange(t *testing.T) {
	var b buffer
	b.set("hi")
	n := b.removeChars(-5, 50)
	require.Equal(t, 2, n)
	require.Equal(t, "", b.String())
	require.Equal(t, "hi", b.capture)
}

func TestBufferSetTruncatesAtCapacity(t *testing.T) {
	var b buffer
	long := make([]byte, maxLineLength+10)
	for i := range long {
		long[i] = 'x'
	}
	b.set(string(long))
	require.LessOrEqual(t, len(b.data), maxLineLength-1)
	require.Equal(t, b.chars, b.pos)
}

func TestBufferSetPreservesValidUTF8Boundary(t *testing.T) {
	var b buffer
	s := string(make([]rune, 0)) + "日本語"
	b.set(s)
	require.Equal(t, s, b.String())
}

func TestBufferClampPos(t *testing.T) {
	var b buffer
	b.set("abc")
	require.Equal(t, 0, b.clampPos(-10))
	require.Equal(t, 3, b.clampPos(100))
	require.Equal(t, 2, b.clampPos(2))
}

func TestBufferInsertChars(t *testing.T) {
	var b buffer
	b.set("ac")
	n := b.insertChars(1, "b", 0, 80)
	require.Equal(t, 1, n)
	require.Equal(t, "abc", b.String())
}

func TestBufferResetPreservesCapture(t *testing.T) {
	var b buffer
	b.set("hello")
	b.removeChars(0, 5)
	require.Equal(t, "hello", b.capture)
	b.set("new")
	b.reset()
	require.Equal(t, "", b.String())
	require.Equal(t, "hello", b.capture)
}
