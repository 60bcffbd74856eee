package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanTextCollapsesNewlines(t *testing.T) {
	in := "first line\nsecond line\r\nthird\rline"
	require.Equal(t, "first line second line third line", CleanText(in))
}

func TestCleanTextCollapsesRuns(t *testing.T) {
	require.Equal(t, "a b c", CleanText("  a \n\n b \t c  "))
}

func TestCleanTextTruncates(t *testing.T) {
	in := strings.Repeat("x", MaxCellTextLen+100)
	out := CleanText(in)
	require.Len(t, out, MaxCellTextLen)
}

func TestCleanTextTruncatesRuneSafe(t *testing.T) {
	in := strings.Repeat("م", MaxCellTextLen+5)
	out := CleanText(in)
	require.Equal(t, MaxCellTextLen, len([]rune(out)))
	require.True(t, strings.HasPrefix(in, out))
}

func TestCleanTextShortUnchanged(t *testing.T) {
	require.Equal(t, "short text", CleanText("short text"))
}

func TestEscapeMarkdownV2(t *testing.T) {
	require.Equal(t, `https://x\.com/user/status/1`, EscapeMarkdownV2("https://x.com/user/status/1"))
	require.Equal(t, `\*bold\* \_and\_ \[link\]\(x\)`, EscapeMarkdownV2("*bold* _and_ [link](x)"))
	require.Equal(t, "plain text", EscapeMarkdownV2("plain text"))
}
