package rules

import (
	"fmt"
	"regexp"
)

// Compile compiles the pattern of r into a regular expression.
//
// When wholeWords is set the pattern is wrapped in \b assertions. The pattern
// flags are translated into inline flags; without flags the expression is
// multi-line. Failures wrap ErrInvalidFlags or ErrInvalidPattern.
func Compile(r Rule, wholeWords bool) (*regexp.Regexp, error) {
	flags, err := r.Flags()
	if err != nil {
		return nil, err
	}
	return compilePattern(r.Pattern, flags, wholeWords)
}

// compilePattern builds the expression for pattern under flags.
func compilePattern(pattern string, flags Flags, wholeWords bool) (*regexp.Regexp, error) {
	// Add word boundaries if whole word matching
	if wholeWords {
		pattern = `\b` + pattern + `\b`
	}

	pattern = flags.inline() + pattern

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return re, nil
}

// Escape quotes all regular expression metacharacters in s, so the result
// matches s literally when used as a rule pattern.
func Escape(s string) string {
	return regexp.QuoteMeta(s)
}

// BuildRule returns a rule that replaces the literal selection with itself,
// ready for the user to edit the replacement part. With wordBoundaryAtStart
// the pattern only matches at the start of a word.
func BuildRule(selection string, wordBoundaryAtStart bool) string {
	boundary := ""
	if wordBoundaryAtStart {
		boundary = `\b`
	}
	return `"` + boundary + Escape(selection) + `"gm->"` + selection + `"`
}
