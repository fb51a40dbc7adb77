package rules

import (
	"errors"
	"testing"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		rules   string
		opts    Options
		want    string
	}{
		{"empty rule set", "unchanged text", "", Options{}, "unchanged text"},
		{"sequential chaining", "a", "\"a\"->\"b\"\n\"b\"->\"c\"", Options{}, "c"},
		{"whole words leave partial matches", "concatenate", `"cat"->"dog"`, Options{WholeWords: true}, "concatenate"},
		{"whole words replace words", "the cat sat", `"cat"->"dog"`, Options{WholeWords: true}, "the dog sat"},
		{"partial match without whole words", "concatenate", `"cat"->"dog"`, Options{}, "condogenate"},
		{"preserve case", "Du bist", `"du"->"ich"`, Options{WholeWords: true, PreserveCase: true}, "Ich bist"},
		{"preserve case lower", "du bist", `"du"->"ich"`, Options{WholeWords: true, PreserveCase: true}, "ich bist"},
		{"delete flag", "axxxb", `"xxx"->""x`, Options{}, "ab"},
		{"delete flag ignores replacement", "axxxb", `"xxx"->"keep"x`, Options{}, "ab"},
		{"default flags are global", "a a a", `"a"->"b"`, Options{}, "b b b"},
		{"default flags are multi-line", "a\nb\nb", `"^b"->"X"`, Options{}, "a\nX\nX"},
		{"explicit flags replace defaults", "b\nb", `"^b"g->"X"`, Options{}, "X\nb"},
		{"non-global replaces first match", "AaA", `"a"i->"x"`, Options{}, "xaA"},
		{"ignore case global", "AaA", `"a"gi->"x"`, Options{}, "xxx"},
		{"dot excludes newline by default", "a\nb", `"a.b"->"X"`, Options{}, "a\nb"},
		{"dot all flag", "a\nb", `"a.b"gs->"X"`, Options{}, "X"},
		{"capture groups", "joe@site", `"(\w+)@(\w+)"->"$2 at $1"`, Options{}, "site at joe"},
		{"whole match reference", "cat", `"cat"->"[$&]"`, Options{}, "[cat]"},
		{"invalid pattern skipped", "a(", "\"(\"->\"x\"\n\"a\"->\"b\"", Options{}, "b("},
		{"invalid flags skipped", "ab", "\"a\"y->\"x\"\n\"b\"->\"c\"", Options{}, "ac"},
		{"multi-line pattern", "one\ntwo", "\"one\ntwo\"->\"both\"", Options{}, "both"},
		{"umlaut word", "Überweisung über", `"über"->"via"`, Options{PreserveCase: true}, "Viaweisung via"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Apply(tt.subject, tt.rules, tt.opts)
			if res.Text != tt.want {
				t.Errorf("Apply = %q, want %q", res.Text, tt.want)
			}
			if res.Log != "" {
				t.Errorf("log should be empty when disabled, got %q", res.Log)
			}
		})
	}
}

func TestApplyLog(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		rules   string
		opts    Options
		want    string
	}{
		{"matching rule first", "abc", "\"a\"->\"b\"\n\"zzz\"->\"y\"", Options{Log: true}, "0 \"a\"->\"b\"\n"},
		{"matching rule second", "abc", "\"zzz\"->\"y\"\n\"a\"->\"b\"", Options{Log: true}, "1 \"a\"->\"b\"\n"},
		{"log sees current subject", "a", "\"a\"->\"b\"\n\"b\"->\"c\"", Options{Log: true}, "0 \"a\"->\"b\"\n1 \"b\"->\"c\"\n"},
		{"no match", "abc", `"zzz"->"y"`, Options{Log: true}, ""},
		{"preserve case doubles ordinals", "Du", `"du"->"ich"`, Options{WholeWords: true, PreserveCase: true, Log: true}, "1 \"du\"->\"ich\"\n"},
		{"multi-line rule logged as written", "a", "\"a\"->\n\"b\"", Options{Log: true}, "0 \"a\"->\n\"b\"\n"},
		{"invalid rule consumes ordinal", "b", "\"(\"->\"x\"\n\"b\"->\"c\"", Options{Log: true}, "1 \"b\"->\"c\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Apply(tt.subject, tt.rules, tt.opts).Log; got != tt.want {
				t.Errorf("Log = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyDiagnostics(t *testing.T) {
	rules := "\"(\"->\"x\"\n\"a\"y->\"b\"\n\"c\"->\"d\""

	res := Apply("c", rules, Options{Diagnostics: true})
	if res.Text != "d" {
		t.Errorf("Text = %q, want %q", res.Text, "d")
	}
	if len(res.Diagnostics) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(res.Diagnostics))
	}
	if !errors.Is(res.Diagnostics[0], ErrInvalidPattern) || res.Diagnostics[0].Ordinal != 0 {
		t.Errorf("unexpected diagnostic %+v", res.Diagnostics[0])
	}
	if !errors.Is(res.Diagnostics[1], ErrInvalidFlags) || res.Diagnostics[1].Ordinal != 1 {
		t.Errorf("unexpected diagnostic %+v", res.Diagnostics[1])
	}
	if res.Diagnostics[1].Error() == "" {
		t.Error("diagnostic message should not be empty")
	}

	if quiet := Apply("c", rules, Options{}); quiet.Diagnostics != nil {
		t.Error("diagnostics should only be collected on request")
	}
}

func TestApplyIsDeterministic(t *testing.T) {
	rules := "\"a\"->\"b\"\n\"b+\"->\"c\"\n\"c\"i->\"$&$&\""
	subject := "aaa bbb ccc"
	opts := Options{Log: true, PreserveCase: true}

	first := Apply(subject, rules, opts)
	for i := 0; i < 10; i++ {
		next := Apply(subject, rules, opts)
		if next.Text != first.Text || next.Log != first.Log {
			t.Fatalf("run %d differs: %+v vs %+v", i, next, first)
		}
	}
}

func TestRuleSetWrappers(t *testing.T) {
	const rs = `"du"->"ich"`

	if got := (ReplaceRules{Rules: rs}).ApplyTo("dudu"); got != "ichich" {
		t.Errorf("ReplaceRules = %q", got)
	}
	if got := (WholeWordRules{Rules: rs}).ApplyTo("dudu du"); got != "dudu ich" {
		t.Errorf("WholeWordRules = %q", got)
	}
	if got := (WholeWordPreserveCaseRules{Rules: rs}).ApplyTo("Du und du"); got != "Ich und ich" {
		t.Errorf("WholeWordPreserveCaseRules = %q", got)
	}

	res := (WholeWordPreserveCaseRules{Rules: rs}).ApplyToWithLog("Du und du")
	if res.Log != "0 \"du\"->\"ich\"\n1 \"du\"->\"ich\"\n" {
		t.Errorf("log = %q", res.Log)
	}
	if res := (ReplaceRules{Rules: rs}).ApplyToWithLog("x"); res.Log != "" || res.Text != "x" {
		t.Errorf("unexpected result %+v", res)
	}
	if res := (WholeWordRules{Rules: rs}).ApplyToWithLog("du"); res.Log != "0 \"du\"->\"ich\"\n" {
		t.Errorf("log = %q", res.Log)
	}
}
