package rules

import (
	"regexp"
	"strings"
)

// replace substitutes matches of re in subject with repl. Only the first
// match is replaced unless global is set.
func replace(re *regexp.Regexp, subject, repl string, global bool) string {
	n := -1
	if !global {
		n = 1
	}
	matches := re.FindAllStringSubmatchIndex(subject, n)
	if len(matches) == 0 {
		return subject
	}

	var sb strings.Builder
	sb.Grow(len(subject))
	last := 0
	for _, m := range matches {
		sb.WriteString(subject[last:m[0]])
		expand(&sb, re, subject, repl, m)
		last = m[1]
	}
	sb.WriteString(subject[last:])
	return sb.String()
}

// expand writes the replacement template repl for match m to sb.
//
// The template syntax is the one rule sets are written in:
//
//	$$       a literal $
//	$&       the whole match
//	$`       the text before the match
//	$'       the text after the match
//	$n, $nn  capture group n (1-99), if the expression has that group
//	$<name>  named capture group, if the expression has named groups
//
// Any other $ is literal. Groups that did not participate expand to "".
func expand(sb *strings.Builder, re *regexp.Regexp, subject, repl string, m []int) {
	groups := re.NumSubexp()
	for i := 0; i < len(repl); i++ {
		c := repl[i]
		if c != '$' || i+1 == len(repl) {
			sb.WriteByte(c)
			continue
		}

		next := repl[i+1]
		switch {
		case next == '$':
			sb.WriteByte('$')
			i++
		case next == '&':
			sb.WriteString(subject[m[0]:m[1]])
			i++
		case next == '`':
			sb.WriteString(subject[:m[0]])
			i++
		case next == '\'':
			sb.WriteString(subject[m[1]:])
			i++
		case isDigit(next):
			n, width := groupRef(repl[i+1:], groups)
			if width == 0 {
				sb.WriteByte(c)
				continue
			}
			writeGroup(sb, subject, m, n)
			i += width
		case next == '<' && hasNamedGroups(re):
			end := strings.IndexByte(repl[i+2:], '>')
			if end < 0 {
				sb.WriteByte(c)
				continue
			}
			name := repl[i+2 : i+2+end]
			if n := re.SubexpIndex(name); n > 0 {
				writeGroup(sb, subject, m, n)
			}
			i += 2 + end
		default:
			sb.WriteByte(c)
		}
	}
}

// groupRef resolves the group number at the start of s. Two digits are used
// when they name an existing group, otherwise one. It returns the number of
// digits consumed, or 0 if no existing group is referenced.
func groupRef(s string, groups int) (n, width int) {
	if len(s) >= 2 && isDigit(s[1]) {
		if two := int(s[0]-'0')*10 + int(s[1]-'0'); two >= 1 && two <= groups {
			return two, 2
		}
	}
	if one := int(s[0] - '0'); one >= 1 && one <= groups {
		return one, 1
	}
	return 0, 0
}

// writeGroup writes capture group n of match m, if it participated.
func writeGroup(sb *strings.Builder, subject string, m []int, n int) {
	if start, end := m[2*n], m[2*n+1]; start >= 0 {
		sb.WriteString(subject[start:end])
	}
}

func hasNamedGroups(re *regexp.Regexp) bool {
	for _, name := range re.SubexpNames() {
		if name != "" {
			return true
		}
	}
	return false
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
