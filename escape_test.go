package liner

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEscapeHistoryRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"plain text",
		"line\nwith\nnewlines",
		"carriage\rreturn",
		`back\slash`,
		"mixed \\ \n \r soup",
		"unicode 日本語 «»",
	}
	for _, c := range cases {
		encoded := escapeHistory(c)
		require.NotContains(t, encoded, "\n")
		require.NotContains(t, encoded, "\r")
		require.Equal(t, c, unescapeHistory(encoded))
	}
}

func TestUnescapeHistoryPassesThroughUnknownEscapes(t *testing.T) {
	require.Equal(t, `\q`, unescapeHistory(`\q`))
	require.Equal(t, `\`, unescapeHistory(`\`))
}

func TestUnescapeHistoryPassesThroughInvalidUTF8(t *testing.T) {
	raw := "abc\xff\xfedef"
	require.Equal(t, raw, unescapeHistory(raw))
}
