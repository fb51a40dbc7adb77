// Package transform provides note transforms built from the note and rules
// packages.
package transform

import (
	"github.com/dshills/scratchpad/internal/note"
	"github.com/dshills/scratchpad/internal/rules"
)

// engine caches compiled rule sets across transforms.
var engine = rules.NewEngine(0)

// Note applies a rule set to the note around cursor and puts the result back
// in the buffer. It returns the new buffer, the cursor after the transformed
// note and the rule result for the note text.
func Note(s *note.Searcher, text string, cursor int, ruleSet string, opts rules.Options) (string, int, rules.Result) {
	var res rules.Result
	out, newCursor := s.Replace(text, cursor, func(body string) string {
		res = engine.Apply(body, ruleSet, opts)
		return res.Text
	})
	return out, newCursor, res
}
