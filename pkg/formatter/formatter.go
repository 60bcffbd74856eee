package formatter

import (
	"strings"
	"unicode/utf8"
)

// MaxCellTextLen bounds the post text stored in a single spreadsheet cell.
const MaxCellTextLen = 1000

// CleanText collapses newlines into spaces and truncates the result so it
// fits a single spreadsheet cell. Truncation is rune-safe.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.Join(strings.Fields(s), " ")

	if utf8.RuneCountInString(s) <= MaxCellTextLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:MaxCellTextLen])
}

// EscapeMarkdownV2 escapes special characters in Markdown V2 format
func EscapeMarkdownV2(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			sb.WriteRune('\\')
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
