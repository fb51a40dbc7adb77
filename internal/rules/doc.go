// Package rules parses and applies textual find/replace rule sets.
//
// A rule set is free text made of rules in the regex-pipeline format:
//
//	"<pattern>"<flags>->
//	"<replacement>"<flags>
//
// The arrow may sit on its own line or between the two quoted parts. Pattern
// flags are letters such as i or m; no letters means global, multi-line
// matching. The replacement flag x deletes every match regardless of the
// replacement text. Quotes have no escape mechanism.
//
// Rules are applied one after another, so later rules see the output of
// earlier ones. Text that does not parse as a rule is ignored, and a rule
// whose pattern or flags cannot be compiled is skipped; neither aborts the
// remaining rules. Options.Diagnostics collects the skipped rules.
//
// Basic usage:
//
//	res := rules.Apply("the cat sat", `"cat"->"dog"`, rules.Options{WholeWords: true, Log: true})
//	fmt.Print(res.Text) // the dog sat
//	fmt.Print(res.Log)  // 0 "cat"->"dog"
//
// Patterns are compiled with the standard regexp package. Its RE2 syntax
// covers the constructs rule sets use in practice and guarantees linear time
// matching; constructs it lacks, such as lookaround, make the rule invalid.
//
// Apply is a pure function. Engine adds a concurrency safe cache of compiled
// rule sets for callers that apply the same rules repeatedly.
package rules
