package liner

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHistoryAddAndAll(t *testing.T) {
	h := newHistory()
	h.add("one")
	h.add("two")
	h.add("three")
	require.Equal(t, []string{"one", "two", "three"}, h.all())
}

func TestHistoryAddElidesAdjacentDuplicate(t *testing.T) {
	h := newHistory()
	h.add("one")
	h.add("one")
	h.add("two")
	require.Equal(t, []string{"one", "two"}, h.all())
}

func TestHistorySetMaxLenShrinksRing(t *testing.T) {
	h := newHistory()
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		h.add(s)
	}
	got := h.setMaxLen(2)
	require.Equal(t, 2, got)
	require.Equal(t, []string{"d", "e"}, h.all())
}

func TestHistorySetMaxLenClampsToOne(t *testing.T) {
	h := newHistory()
	require.Equal(t, 1, h.setMaxLen(0))
	require.Equal(t, 1, h.setMaxLen(-5))
}

func TestHistoryEvictsOldestAtCapacity(t *testing.T) {
	h := newHistory()
	h.setMaxLen(2)
	h.add("a")
	h.add("b")
	h.add("c")
	require.Equal(t, []string{"b", "c"}, h.all())
}

func TestHistorySaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history")

	h := newHistory()
	h.add("first line")
	h.add("line with\nnewline")
	h.add(`back\slash`)
	require.NoError(t, h.save(path))

	h2 := newHistory()
	require.NoError(t, h2.load(path))
	require.Equal(t, h.all(), h2.all())
}

func TestHistoryLoadMissingFileIsNotError(t *testing.T) {
	h := newHistory()
	err := h.load(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	require.Empty(t, h.all())
}

func TestHistoryEntryIndexing(t *testing.T) {
	h := newHistory()
	h.add("oldest")
	h.add("middle")
	h.add("newest")
	require.Equal(t, "newest", h.entry(0))
	require.Equal(t, "middle", h.entry(1))
	require.Equal(t, "oldest", h.entry(2))
	require.Equal(t, "", h.entry(99))
}
