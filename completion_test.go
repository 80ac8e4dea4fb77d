package liner

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompletionsAddSortsCaseInsensitiveAndDedupes(t *testing.T) {
	var c Completions
	c.Add("banana")
	c.Add("Apple")
	c.Add("apple")
	c.Add("Cherry")
	require.Equal(t, []string{"Apple", "banana", "Cherry"}, c.items)
}

func TestWordBounds(t *testing.T) {
	text := []rune("select * from foo")
	start, end := wordBounds(text, len(text))
	require.Equal(t, "foo", string(text[start:end]))

	start, end = wordBounds(text, 6)
	require.Equal(t, "select", string(text[start:end]))

	start, end = wordBounds(text, 0)
	require.Equal(t, "select", string(text[start:end]))
}

func TestCommonPrefix(t *testing.T) {
	require.Equal(t, "sel", commonPrefix([]string{"select", "seldom", "selfish"}))
	require.Equal(t, "", commonPrefix([]string{"select", "from"}))
	require.Equal(t, "only", commonPrefix([]string{"only"}))
	require.Equal(t, "", commonPrefix(nil))
}

func TestSessionCompleteRotatesAndRestoresOriginal(t *testing.T) {
	completer := func(line []rune, wordStart, wordEnd int, list *Completions) {
		list.Add("select")
		list.Add("set")
	}
	s := New(WithCompleter(completer), WithSize(80), WithOutput(io.Discard))
	s.disp.cols = 80
	s.buf.set("se")
	s.buf.pos = 2

	ok, err := s.complete('\t')
	require.True(t, ok)
	require.NoError(t, err)
	require.Equal(t, "select", s.text())

	ok, err = s.complete('\t')
	require.True(t, ok)
	require.NoError(t, err)
	require.Equal(t, "set", s.text())

	// Third tab wraps back to the original typed text.
	ok, err = s.complete('\t')
	require.True(t, ok)
	require.NoError(t, err)
	require.Equal(t, "se", s.text())
}

func TestSessionCompleteNoCandidatesBells(t *testing.T) {
	completer := func(line []rune, wordStart, wordEnd int, list *Completions) {}
	s := New(WithCompleter(completer), WithSize(80), WithOutput(io.Discard))
	s.disp.cols = 80
	s.buf.set("zz")
	s.buf.pos = 2

	ok, err := s.complete('\t')
	require.True(t, ok)
	require.NoError(t, err)
	require.Equal(t, "zz", s.text())
}

func TestSessionCompleteNoCompleterInsertsTab(t *testing.T) {
	s := New(WithSize(80), WithOutput(io.Discard))
	s.disp.cols = 80
	ok, err := s.complete('\t')
	require.True(t, ok)
	require.NoError(t, err)
	require.Equal(t, "\t", s.text())
}

func TestSessionCompleteMidLineInsertsLiteralTabInRotationMode(t *testing.T) {
	completer := func(line []rune, wordStart, wordEnd int, list *Completions) {
		list.Add("select")
	}
	s := New(WithCompleter(completer), WithSize(80), WithOutput(io.Discard))
	s.disp.cols = 80
	s.buf.set("se x")
	s.buf.pos = 2 // mid-line, not at end-of-line

	ok, err := s.complete('\t')
	require.True(t, ok)
	require.NoError(t, err)
	require.Equal(t, "se\t x", s.text())
}

func TestSessionCompleteMidLineStillCompletesInListingMode(t *testing.T) {
	completer := func(line []rune, wordStart, wordEnd int, list *Completions) {
		list.Add("select")
	}
	s := New(WithCompleter(completer), WithListAll(true), WithSize(80), WithOutput(io.Discard))
	s.disp.cols = 80
	s.buf.set("se x")
	s.buf.pos = 2

	ok, err := s.complete('\t')
	require.True(t, ok)
	require.NoError(t, err)
	require.Equal(t, "select x", s.text())
}

func TestSessionCompleteSingleCandidateAppendsSpace(t *testing.T) {
	completer := func(line []rune, wordStart, wordEnd int, list *Completions) {
		list.Add("select")
	}
	s := New(WithCompleter(completer), WithSize(80), WithOutput(io.Discard))
	s.disp.cols = 80
	s.buf.set("se")
	s.buf.pos = 2

	ok, err := s.complete('\t')
	require.True(t, ok)
	require.NoError(t, err)
	require.Equal(t, "select ", s.text())
}

func TestSessionCompleteSingleCandidateAppendCharDisabled(t *testing.T) {
	completer := func(line []rune, wordStart, wordEnd int, list *Completions) {
		list.Add("select")
	}
	s := New(WithCompleter(completer), WithCompletionAppendChar(0), WithSize(80), WithOutput(io.Discard))
	s.disp.cols = 80
	s.buf.set("se")
	s.buf.pos = 2

	ok, err := s.complete('\t')
	require.True(t, ok)
	require.NoError(t, err)
	require.Equal(t, "select", s.text())
}
