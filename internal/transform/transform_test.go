package transform

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dshills/scratchpad/internal/note"
	"github.com/dshills/scratchpad/internal/rules"
)

func TestDu2Ich(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Du bist", "Ich bin"},
		{"du bist", "ich bin"},
		{"Kannst du mir helfen? Du hast dich verlaufen.", "Kann ich mir helfen? Ich habe mich verlaufen."},
		{"Willst du das?", "Will ich das?"},
		{"Duisburg und Kanu", "Duisburg und Kanu"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Du2Ich(tt.input, false).Text; got != tt.want {
			t.Errorf("Du2Ich(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDu2IchLog(t *testing.T) {
	res := Du2Ich("du bist", true)
	if !strings.Contains(res.Log, `"du"->"ich"`) || !strings.Contains(res.Log, `"bist"->"bin"`) {
		t.Errorf("log misses matched rules: %q", res.Log)
	}
	if strings.Count(res.Log, "\n") != 2 {
		t.Errorf("expected 2 log entries, got %q", res.Log)
	}
}

func TestDu2IchRulesParse(t *testing.T) {
	parsed := rules.Parse(Du2IchRules())
	if len(parsed) < 500 {
		t.Fatalf("expected the full rule list, got %d rules", len(parsed))
	}
	if diags := rules.Lint(Du2IchRules(), true); len(diags) != 0 {
		t.Errorf("embedded rules have problems: %v", diags)
	}
}

func TestDu2IchNote(t *testing.T) {
	d := note.DefaultDelimiter
	s := note.MustNewSearcher(d)
	text := "Hallo" + d + "Du bist da" + d + "Ende"

	got, cursor, res := Du2IchNote(s, text, strings.Index(text, "bist"), false)
	if want := "Hallo" + d + "Ich bin da" + d + "Ende"; got != want {
		t.Errorf("Du2IchNote = %q, want %q", got, want)
	}
	if want := len("Hallo") + len(d) + len("Ich bin da") + len(d); cursor != want {
		t.Errorf("cursor = %d, want %d", cursor, want)
	}
	if res.Text != "Ich bin da" {
		t.Errorf("result text = %q", res.Text)
	}
}

func TestNoteTransformWithLog(t *testing.T) {
	s := note.MustNewSearcher("|")
	out, _, res := Note(s, "a cat|the cat", 8, `"cat"->"dog"`, rules.Options{Log: true})
	if out != "a cat|the dog" {
		t.Errorf("Note = %q", out)
	}
	if res.Log != "0 \"cat\"->\"dog\"\n" {
		t.Errorf("log = %q", res.Log)
	}
}

func TestHighlights(t *testing.T) {
	input := "intro ==first== middle === second === and ==third==="

	got := Highlights(input)
	if want := []string{"first", "second", "third"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Highlights = %q, want %q", got, want)
	}
	if got := CropHighlights(input); got != "first second third" {
		t.Errorf("CropHighlights = %q", got)
	}
	if got := CropHighlights("nothing marked"); got != "" {
		t.Errorf("CropHighlights = %q, want empty", got)
	}
}
