package rules

import (
	"fmt"
	"strings"
)

// Flags configures how a rule pattern matches.
type Flags struct {
	// Global replaces every match instead of only the first.
	Global bool

	// IgnoreCase matches letters case-insensitively.
	IgnoreCase bool

	// Multiline makes ^ and $ match at line boundaries.
	Multiline bool

	// DotAll lets . match newlines.
	DotAll bool

	// Unicode and Indices are accepted for compatibility. Matching is always
	// Unicode aware and match indices are always available.
	Unicode bool
	Indices bool
}

// DefaultFlags is used when a rule gives no pattern flags.
var DefaultFlags = Flags{Global: true, Multiline: true}

// ParseFlags converts pattern flag letters into Flags.
// Empty letters yield DefaultFlags. Unknown or repeated letters return
// ErrInvalidFlags.
func ParseFlags(letters string) (Flags, error) {
	if letters == "" {
		return DefaultFlags, nil
	}

	var f Flags
	seen := make(map[rune]bool, len(letters))
	for _, r := range letters {
		if seen[r] {
			return Flags{}, fmt.Errorf("%w: repeated %q in %q", ErrInvalidFlags, r, letters)
		}
		seen[r] = true

		switch r {
		case 'g':
			f.Global = true
		case 'i':
			f.IgnoreCase = true
		case 'm':
			f.Multiline = true
		case 's':
			f.DotAll = true
		case 'u':
			f.Unicode = true
		case 'd':
			f.Indices = true
		default:
			return Flags{}, fmt.Errorf("%w: unsupported %q in %q", ErrInvalidFlags, r, letters)
		}
	}
	return f, nil
}

// String returns the flag letters in canonical order.
func (f Flags) String() string {
	var sb strings.Builder
	if f.Indices {
		sb.WriteByte('d')
	}
	if f.Global {
		sb.WriteByte('g')
	}
	if f.IgnoreCase {
		sb.WriteByte('i')
	}
	if f.Multiline {
		sb.WriteByte('m')
	}
	if f.DotAll {
		sb.WriteByte('s')
	}
	if f.Unicode {
		sb.WriteByte('u')
	}
	return sb.String()
}

// inline returns the RE2 inline flag group for f, or "" if none applies.
func (f Flags) inline() string {
	var letters string
	if f.IgnoreCase {
		letters += "i"
	}
	if f.Multiline {
		letters += "m"
	}
	if f.DotAll {
		letters += "s"
	}
	if letters == "" {
		return ""
	}
	return "(?" + letters + ")"
}

// ReplacementFlags configures what happens to a match.
type ReplacementFlags struct {
	// Delete removes the match and ignores the replacement text.
	Delete bool
}

// ParseReplacementFlags converts replacement flag letters.
// Only the exact letters "x" mean delete; anything else is ignored.
func ParseReplacementFlags(letters string) ReplacementFlags {
	return ReplacementFlags{Delete: letters == "x"}
}
