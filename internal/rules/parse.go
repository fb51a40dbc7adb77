package rules

import (
	"regexp"
	"strings"
)

// Rule is a single find/replace instruction taken from a rule set.
type Rule struct {
	// Pattern is the regular expression between the first pair of quotes.
	Pattern string

	// PatternFlags are the letters following the pattern.
	PatternFlags string

	// Replacement is the text between the second pair of quotes.
	Replacement string

	// ReplacementFlags are the letters following the replacement.
	ReplacementFlags string

	// Raw is the rule as written, without its trailing line break.
	Raw string

	// Offset is the byte offset of Raw in the normalized rule set text.
	Offset int
}

// Flags returns the parsed pattern flags.
func (r Rule) Flags() (Flags, error) {
	return ParseFlags(r.PatternFlags)
}

// Deletes returns true if matches of r are removed.
func (r Rule) Deletes() bool {
	return ParseReplacementFlags(r.ReplacementFlags).Delete
}

// String returns the rule in rule set syntax.
func (r Rule) String() string {
	return `"` + r.Pattern + `"` + r.PatternFlags + `->"` + r.Replacement + `"` + r.ReplacementFlags
}

// ruleParser matches one rule anchored at the start of a line. Pattern and
// replacement are lazy so a rule ends at the first closing quote that can be
// followed by flags, the arrow or the end of the line.
var ruleParser = regexp.MustCompile(`(?ms)^"(.+?)"([a-z]*?)\n?->\n?"(.*?)"([a-z]*?)\n?$`)

// normalizeNewlines converts CRLF and CR line breaks to LF.
func normalizeNewlines(text string) string {
	if !strings.Contains(text, "\r") {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// Parse returns the rules of a rule set in order.
// Text that does not form a rule is skipped.
func Parse(text string) []Rule {
	text = normalizeNewlines(text)

	matches := ruleParser.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	out := make([]Rule, 0, len(matches))
	for _, m := range matches {
		out = append(out, ruleAt(text, m))
	}
	return out
}

// ruleAt builds the rule for submatch indices m of ruleParser.
func ruleAt(text string, m []int) Rule {
	return Rule{
		Pattern:          text[m[2]:m[3]],
		PatternFlags:     text[m[4]:m[5]],
		Replacement:      text[m[6]:m[7]],
		ReplacementFlags: text[m[8]:m[9]],
		Raw:              strings.TrimSuffix(text[m[0]:m[1]], "\n"),
		Offset:           m[0],
	}
}

// Lint reports problems in a rule set that Apply would silently skip:
// non-blank text that is not part of any rule, and rules whose flags or
// pattern do not compile. Lint never changes how rules are applied.
func Lint(text string, wholeWords bool) []Diagnostic {
	text = normalizeNewlines(text)

	var diags []Diagnostic
	last := 0
	addGap := func(gap string) {
		for _, line := range strings.Split(gap, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				diags = append(diags, Diagnostic{Ordinal: -1, Rule: line, Err: ErrMalformedRule})
			}
		}
	}

	for i, m := range ruleParser.FindAllStringSubmatchIndex(text, -1) {
		addGap(text[last:m[0]])
		last = m[1]

		rule := ruleAt(text, m)
		if _, err := Compile(rule, wholeWords); err != nil {
			diags = append(diags, Diagnostic{Ordinal: i, Rule: rule.Raw, Err: err})
		}
	}
	addGap(text[last:])
	return diags
}
