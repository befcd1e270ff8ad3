package util

import "strings"

var drawtextEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`:`, `\:`,
	`%`, `\%`,
)

// EscapeFfmpegText quotes a headline for use inside a drawtext filter
// expression.
func EscapeFfmpegText(text string) string {
	return drawtextEscaper.Replace(text)
}
