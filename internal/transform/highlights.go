package transform

import (
	"regexp"
	"strings"
)

var highlightPattern = regexp.MustCompile(`={2,3}([^=]+)={2,3}`)

// Highlights returns the trimmed text of every ==marked== or ===marked===
// span in input.
func Highlights(input string) []string {
	var out []string
	for _, m := range highlightPattern.FindAllStringSubmatch(input, -1) {
		out = append(out, strings.TrimSpace(m[1]))
	}
	return out
}

// CropHighlights replaces input with its highlights joined by spaces.
func CropHighlights(input string) string {
	return strings.Join(Highlights(input), " ")
}
