package rules

import (
	"regexp"
	"strconv"
	"strings"
)

// Options controls how a rule set is applied.
type Options struct {
	// WholeWords restricts matches to whole words.
	WholeWords bool

	// PreserveCase applies every rule a second time with the first letter of
	// pattern and replacement upper-cased.
	PreserveCase bool

	// Log records which rules matched.
	Log bool

	// Diagnostics collects rules that were skipped because they do not compile.
	Diagnostics bool
}

// Result is the outcome of applying a rule set.
type Result struct {
	// Text is the transformed subject.
	Text string

	// Log holds one "ordinal rule" line per rule that matched, when enabled.
	Log string

	// Diagnostics lists skipped rules, when enabled.
	Diagnostics []Diagnostic
}

// Diagnostic describes a rule that could not be used.
type Diagnostic struct {
	// Ordinal is the position of the rule in the application sequence,
	// or -1 for text that is not a rule at all.
	Ordinal int

	// Rule is the offending rule text.
	Rule string

	// Err is the reason.
	Err error
}

func (d Diagnostic) Error() string {
	if d.Ordinal < 0 {
		return d.Err.Error() + ": " + d.Rule
	}
	return "rule " + strconv.Itoa(d.Ordinal) + ": " + d.Err.Error() + ": " + d.Rule
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}

// step is one compiled pass over the subject. Preserve-case rule sets have
// two steps per rule.
type step struct {
	raw         string
	re          *regexp.Regexp
	replacement string
	global      bool
	delete      bool
	err         error
}

// compileSteps compiles rules into the passes Apply runs for them.
func compileSteps(rules []Rule, wholeWords, preserveCase bool) []step {
	n := len(rules)
	if preserveCase {
		n *= 2
	}
	steps := make([]step, 0, n)

	for _, r := range rules {
		steps = append(steps, compileStep(r, r.Pattern, r.Replacement, wholeWords))
		if preserveCase {
			steps = append(steps, compileStep(r, UpperFirst(r.Pattern), UpperFirst(r.Replacement), wholeWords))
		}
	}
	return steps
}

func compileStep(r Rule, pattern, replacement string, wholeWords bool) step {
	s := step{
		raw:         r.Raw,
		replacement: replacement,
		delete:      r.Deletes(),
	}

	flags, err := r.Flags()
	if err != nil {
		s.err = err
		return s
	}
	s.global = flags.Global
	s.re, s.err = compilePattern(pattern, flags, wholeWords)
	return s
}

// run applies compiled steps to subject in order.
func run(subject string, steps []step, opts Options) Result {
	var log strings.Builder
	var diags []Diagnostic

	for ordinal, s := range steps {
		if s.err != nil {
			if opts.Diagnostics {
				diags = append(diags, Diagnostic{Ordinal: ordinal, Rule: s.raw, Err: s.err})
			}
			continue
		}

		if s.re.FindStringIndex(subject) == nil {
			continue
		}
		if opts.Log {
			log.WriteString(strconv.Itoa(ordinal))
			log.WriteByte(' ')
			log.WriteString(s.raw)
			log.WriteByte('\n')
		}

		if s.delete {
			subject = replace(s.re, subject, "", s.global)
		} else {
			subject = replace(s.re, subject, s.replacement, s.global)
		}
	}

	return Result{Text: subject, Log: log.String(), Diagnostics: diags}
}

// Apply parses rules and applies them to subject in order.
//
// Each rule, and its upper-case variant when opts.PreserveCase is set, gets
// the next ordinal whether it matches or not. A rule that does not compile
// is skipped.
func Apply(subject, rules string, opts Options) Result {
	return run(subject, compileSteps(Parse(rules), opts.WholeWords, opts.PreserveCase), opts)
}

// ReplaceRules applies a rule set with plain matching.
type ReplaceRules struct {
	Rules string
}

// ApplyTo returns subject with the rules applied.
func (r ReplaceRules) ApplyTo(subject string) string {
	return Apply(subject, r.Rules, Options{}).Text
}

// ApplyToWithLog returns the result including the match log.
func (r ReplaceRules) ApplyToWithLog(subject string) Result {
	return Apply(subject, r.Rules, Options{Log: true})
}

// WholeWordRules applies a rule set to whole words only.
type WholeWordRules struct {
	Rules string
}

// ApplyTo returns subject with the rules applied.
func (r WholeWordRules) ApplyTo(subject string) string {
	return Apply(subject, r.Rules, Options{WholeWords: true}).Text
}

// ApplyToWithLog returns the result including the match log.
func (r WholeWordRules) ApplyToWithLog(subject string) Result {
	return Apply(subject, r.Rules, Options{WholeWords: true, Log: true})
}

// WholeWordPreserveCaseRules applies a rule set to whole words, including
// occurrences that start with a capital letter.
type WholeWordPreserveCaseRules struct {
	Rules string
}

// ApplyTo returns subject with the rules applied.
func (r WholeWordPreserveCaseRules) ApplyTo(subject string) string {
	return Apply(subject, r.Rules, Options{WholeWords: true, PreserveCase: true}).Text
}

// ApplyToWithLog returns the result including the match log.
func (r WholeWordPreserveCaseRules) ApplyToWithLog(subject string) Result {
	return Apply(subject, r.Rules, Options{WholeWords: true, PreserveCase: true, Log: true})
}
