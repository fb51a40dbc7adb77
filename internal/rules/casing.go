package rules

import (
	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UpperFirst upper-cases the first character of s and leaves the rest alone.
//
// The first character is the first grapheme cluster, so combining marks stay
// attached, and full case mapping applies (ß becomes SS).
func UpperFirst(s string) string {
	if s == "" {
		return s
	}
	first, rest, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)

	// Casers must not be shared between goroutines.
	return cases.Upper(language.Und).String(first) + rest
}
