package transform

import (
	_ "embed"

	"github.com/dshills/scratchpad/internal/note"
	"github.com/dshills/scratchpad/internal/rules"
)

// du2ichRules turns German second person verb forms and pronouns into first
// person ones. Only whole words are replaced: "du" and "hast" also occur as
// word endings.
//
//go:embed du2ich.rules
var du2ichRules string

// Du2IchRules returns the embedded du-to-ich rule set.
func Du2IchRules() string {
	return du2ichRules
}

// du2ichOptions are the options the du-to-ich rules are applied with.
func du2ichOptions(log bool) rules.Options {
	return rules.Options{WholeWords: true, PreserveCase: true, Log: log}
}

// Du2Ich rewrites input from second to first person.
func Du2Ich(input string, log bool) rules.Result {
	return engine.Apply(input, du2ichRules, du2ichOptions(log))
}

// Du2IchNote rewrites the note around cursor from second to first person.
func Du2IchNote(s *note.Searcher, text string, cursor int, log bool) (string, int, rules.Result) {
	return Note(s, text, cursor, du2ichRules, du2ichOptions(log))
}
