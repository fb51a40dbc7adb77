package rules

import "errors"

// Errors reported by rule parsing, compilation and rule libraries.
var (
	// ErrInvalidPattern indicates a rule pattern is not a valid regular expression.
	ErrInvalidPattern = errors.New("invalid rule pattern")

	// ErrInvalidFlags indicates unknown or repeated pattern flag letters.
	ErrInvalidFlags = errors.New("invalid rule flags")

	// ErrMalformedRule indicates text in a rule set that is not a rule.
	ErrMalformedRule = errors.New("malformed rule")

	// ErrUnknownRuleSet indicates a rule set name is not in the library.
	ErrUnknownRuleSet = errors.New("unknown rule set")

	// ErrDuplicateRuleSet indicates two rule sets in a library share a name.
	ErrDuplicateRuleSet = errors.New("duplicate rule set")

	// ErrEmptyRuleSetName indicates a library rule set without a name.
	ErrEmptyRuleSetName = errors.New("rule set name is empty")
)
