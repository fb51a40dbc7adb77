package note

import (
	"strings"
	"testing"
)

const testDelim = DefaultDelimiter

func threeNotes() string {
	return "first" + testDelim + "second" + testDelim + "third"
}

func TestCurrentNote(t *testing.T) {
	s := MustNewSearcher(testDelim)
	text := threeNotes()
	cursor := strings.Index(text, "second") + 2

	n := s.Current(text, cursor)
	if n.Text != "second" {
		t.Errorf("Text = %q, want %q", n.Text, "second")
	}
	if n.Start != len("first")+len(testDelim) {
		t.Errorf("Start = %d", n.Start)
	}
	if n.Len() != len("second") || n.IsEmpty() {
		t.Errorf("unexpected length %d", n.Len())
	}
}

func TestDeleteCurrentNote(t *testing.T) {
	s := MustNewSearcher(testDelim)
	text := threeNotes()
	cursor := strings.Index(text, "second") + 2

	got, newCursor := s.Delete(text, cursor)
	if want := "first" + testDelim + "third"; got != want {
		t.Errorf("Delete = %q, want %q", got, want)
	}
	if want := len("first") + len(testDelim); newCursor != want {
		t.Errorf("cursor = %d, want %d", newCursor, want)
	}
}

func TestDeleteLastNoteClampsCursor(t *testing.T) {
	s := MustNewSearcher(testDelim)
	text := "first" + testDelim + "second"

	got, cursor := s.Delete(text, len(text))
	if got != "first" {
		t.Errorf("Delete = %q, want %q", got, "first")
	}
	if cursor != len("first") {
		t.Errorf("cursor = %d, want %d", cursor, len("first"))
	}
}

func TestSelection(t *testing.T) {
	s := MustNewSearcher(testDelim)
	text := threeNotes()

	r := s.Selection(text, strings.Index(text, "second")+1)
	if r.Start != len("first") {
		t.Errorf("Start = %d, want %d", r.Start, len("first"))
	}
	if got := text[r.Start:r.End]; got != testDelim+"second" {
		t.Errorf("selected %q", got)
	}

	// The first note has no delimiter in front of it.
	r = s.Selection(text, 1)
	if r.Start != 0 || r.End != len("first") {
		t.Errorf("first note selection = %+v", r)
	}
}

func TestCut(t *testing.T) {
	s := MustNewSearcher(testDelim)
	text := "a" + testDelim + " b \n" + testDelim + "c"

	clip, rest, cursor := s.Cut(text, len("a")+len(testDelim)+1, ClozePrefix, ClozeSuffix)
	if clip != "{{c1::b}}" {
		t.Errorf("clip = %q", clip)
	}
	if rest != "a"+testDelim+"c" {
		t.Errorf("rest = %q", rest)
	}
	if cursor != len("a")+len(testDelim) {
		t.Errorf("cursor = %d", cursor)
	}
}

func TestReplaceMiddleNote(t *testing.T) {
	s := MustNewSearcher(testDelim)
	text := threeNotes()

	got, cursor := s.Replace(text, strings.Index(text, "second")+2, strings.ToUpper)
	want := "first" + testDelim + "SECOND" + testDelim + "third"
	if got != want {
		t.Errorf("Replace = %q, want %q", got, want)
	}
	if wantCursor := len("first") + len(testDelim) + len("SECOND") + len(testDelim); cursor != wantCursor {
		t.Errorf("cursor = %d, want %d", cursor, wantCursor)
	}
}

func TestReplaceLastNote(t *testing.T) {
	s := MustNewSearcher(testDelim)
	text := "first" + testDelim + "second"

	got, cursor := s.Replace(text, len(text), strings.ToUpper)
	if want := "first" + testDelim + "SECOND"; got != want {
		t.Errorf("Replace = %q, want %q", got, want)
	}
	if cursor != len(got) {
		t.Errorf("cursor = %d, want %d", cursor, len(got))
	}
}

func TestPrefix(t *testing.T) {
	s := MustNewSearcher(testDelim)
	text := "first" + testDelim + "second"

	if got := s.Prefix(text, len("first")+len(testDelim)+3); got != "sec" {
		t.Errorf("Prefix = %q, want %q", got, "sec")
	}
	if got := s.Prefix(text, 2); got != "fi" {
		t.Errorf("Prefix = %q, want %q", got, "fi")
	}
}

func TestAppendDelimiter(t *testing.T) {
	s := MustNewSearcher(testDelim)

	if got := s.AppendDelimiter("abc  "); got != "abc\n"+testDelim {
		t.Errorf("AppendDelimiter = %q", got)
	}
	if got := s.AppendDelimiter("abc \n\n"); got != "abc\n\n"+testDelim {
		t.Errorf("AppendDelimiter = %q", got)
	}
}

func TestSplit(t *testing.T) {
	s := MustNewSearcher("|")

	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{""}},
		{"abc", []string{"abc"}},
		{"a|b|c", []string{"a", "b", "c"}},
		{"|a|b|", []string{"a", "b"}},
		{"a||b", []string{"a", "", "b"}},
		{"|", nil},
	}

	for _, tt := range tests {
		notes := s.Split(tt.input)
		if len(notes) != len(tt.want) {
			t.Errorf("Split(%q) returned %d notes, want %d", tt.input, len(notes), len(tt.want))
			continue
		}
		for i, n := range notes {
			if n.Text != tt.want[i] {
				t.Errorf("Split(%q)[%d] = %q, want %q", tt.input, i, n.Text, tt.want[i])
			}
			if tt.input[n.Start:n.End] != n.Text {
				t.Errorf("Split(%q)[%d] offsets %d:%d do not match text", tt.input, i, n.Start, n.End)
			}
		}
	}
}

func TestTrimExceptSingleNewline(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"  abc  ", "abc"},
		{"abc  \n  ", "abc\n"},
		{"  abc\n\n", "  abc\n"},
		{"", ""},
		{"\n", "\n"},
	}
	for _, tt := range tests {
		if got := TrimExceptSingleNewline(tt.input); got != tt.want {
			t.Errorf("TrimExceptSingleNewline(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
