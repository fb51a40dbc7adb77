package rules

import (
	"errors"
	"testing"
)

func TestParseSingleRule(t *testing.T) {
	got := Parse(`"a"->"b"`)
	if len(got) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(got))
	}

	r := got[0]
	if r.Pattern != "a" || r.PatternFlags != "" || r.Replacement != "b" || r.ReplacementFlags != "" {
		t.Errorf("unexpected rule %+v", r)
	}
	if r.Raw != `"a"->"b"` {
		t.Errorf("Raw = %q", r.Raw)
	}
	if r.String() != r.Raw {
		t.Errorf("String() = %q, want %q", r.String(), r.Raw)
	}
}

func TestParseArrowOnSeparateLines(t *testing.T) {
	got := Parse("\"a\"i->\n\"b\"x")
	if len(got) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(got))
	}
	r := got[0]
	if r.Pattern != "a" || r.PatternFlags != "i" || r.Replacement != "b" || r.ReplacementFlags != "x" {
		t.Errorf("unexpected rule %+v", r)
	}
	if !r.Deletes() {
		t.Error("expected delete rule")
	}
}

func TestParseMultipleRules(t *testing.T) {
	text := `
"one"->"1"

"two"gi->
"2"

"three"->""x
`
	got := Parse(text)
	if len(got) != 3 {
		t.Fatalf("expected 3 rules, got %d: %+v", len(got), got)
	}

	want := []struct{ pattern, flags, repl, rflags string }{
		{"one", "", "1", ""},
		{"two", "gi", "2", ""},
		{"three", "", "", "x"},
	}
	for i, w := range want {
		r := got[i]
		if r.Pattern != w.pattern || r.PatternFlags != w.flags || r.Replacement != w.repl || r.ReplacementFlags != w.rflags {
			t.Errorf("rule %d = %+v, want %+v", i, r, w)
		}
	}
	if got[1].Offset <= got[0].Offset || got[2].Offset <= got[1].Offset {
		t.Error("offsets should increase")
	}
}

func TestParseCRLF(t *testing.T) {
	got := Parse("\"a\"->\"b\"\r\n\"c\"->\r\n\"d\"\r\n")
	if len(got) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(got))
	}
	if got[1].Pattern != "c" || got[1].Replacement != "d" {
		t.Errorf("unexpected rule %+v", got[1])
	}
}

func TestParseSkipsMalformedText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"empty", "", 0},
		{"prose", "just some words", 0},
		{"missing arrow", `"a""b"`, 0},
		{"unterminated replacement", `"a"->"b`, 0},
		{"empty pattern", `""->"b"`, 0},
		{"indented rule", `  "a"->"b"`, 0},
		{"garbage before rule", "garbage line\n\"d\"->\"e\"", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.input); len(got) != tt.want {
				t.Errorf("Parse(%q) returned %d rules, want %d", tt.input, len(got), tt.want)
			}
		})
	}
}

func TestParseQuotesInsidePattern(t *testing.T) {
	got := Parse(`"say "hi""->"x"`)
	if len(got) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(got))
	}
	if got[0].Pattern != `say "hi"` {
		t.Errorf("Pattern = %q", got[0].Pattern)
	}
}

func TestLint(t *testing.T) {
	text := "garbage line\n\"d\"->\"e\"\n\"(\"->\"x\"\n\"f\"q->\"g\"\n"
	diags := Lint(text, false)
	if len(diags) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d: %v", len(diags), diags)
	}

	if diags[0].Ordinal != -1 || diags[0].Rule != "garbage line" || !errors.Is(diags[0], ErrMalformedRule) {
		t.Errorf("unexpected first diagnostic %+v", diags[0])
	}
	if diags[1].Ordinal != 1 || !errors.Is(diags[1], ErrInvalidPattern) {
		t.Errorf("unexpected second diagnostic %+v", diags[1])
	}
	if diags[2].Ordinal != 2 || !errors.Is(diags[2], ErrInvalidFlags) {
		t.Errorf("unexpected third diagnostic %+v", diags[2])
	}
}

func TestLintCleanRuleSet(t *testing.T) {
	if diags := Lint("\"a\"->\"b\"\n\n\"c\"i->\n\"d\"\n", true); len(diags) != 0 {
		t.Errorf("expected no diagnostics, got %v", diags)
	}
}
