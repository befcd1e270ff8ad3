package util

import (
	"fmt"
	"strings"
	"time"
)

// FormatSrtTime renders a clip-relative offset in SRT's HH:MM:SS,mmm form.
func FormatSrtTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	d := time.Duration(seconds * float64(time.Second))
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// WrapSubtitleText breaks a transcript line into display lines of at most
// maxChars runes, splitting on word boundaries. Words longer than maxChars
// stay on their own line rather than being cut mid-word.
func WrapSubtitleText(text string, maxChars int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if maxChars <= 0 {
		return []string{strings.Join(words, " ")}
	}

	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		if len([]rune(current))+1+len([]rune(w)) > maxChars {
			lines = append(lines, current)
			current = w
			continue
		}
		current += " " + w
	}
	return append(lines, current)
}
