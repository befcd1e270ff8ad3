package util

import (
	"math/rand"
	"regexp"
	"strings"
)

const randCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandStringWithUpperLowerNum returns a random alphanumeric string
// of length n, used for task directories and file names.
func GenerateRandStringWithUpperLowerNum(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = randCharset[rand.Intn(len(randCharset))]
	}
	return string(b)
}

var unsafePathChars = regexp.MustCompile(`[\\/:*?"<>|\s]+`)

// SanitizePathName makes a video title safe to use as a file name.
func SanitizePathName(name string) string {
	cleaned := unsafePathChars.ReplaceAllString(strings.TrimSpace(name), "_")
	cleaned = strings.Trim(cleaned, "._")
	if cleaned == "" {
		return "untitled"
	}
	return cleaned
}

// TruncateRunes shortens s to at most n runes, appending an ellipsis when
// anything was cut.
func TruncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return string(runes[:n])
	}
	return string(runes[:n-1]) + "…"
}
