package note

import (
	"fmt"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func notesGenerator(minLen int) *rapid.Generator[[]string] {
	return rapid.SliceOfN(rapid.StringMatching(fmt.Sprintf(`[a-z .]{%d,8}`, minLen)), 1, 6)
}

// insideDelimiter reports whether cursor lies strictly inside an occurrence of delim.
func insideDelimiter(text, delim string, cursor int) bool {
	for i := 0; i < len(text); i++ {
		if strings.HasPrefix(text[i:], delim) && i < cursor && cursor < i+len(delim) {
			return true
		}
	}
	return false
}

func testBoundaries_ContainCursor_Properties(t *rapid.T) {
	s := MustNewSearcher(testDelim)
	text := strings.Join(notesGenerator(0).Draw(t, "notes"), testDelim)
	cursor := rapid.IntRange(0, len(text)).Draw(t, "cursor")

	left := s.LeftIndex(text, cursor)
	right := s.RightIndex(text, cursor)

	if right < cursor {
		t.Fatalf("RightIndex %d before cursor %d", right, cursor)
	}
	if !insideDelimiter(text, testDelim, cursor) && left > cursor {
		t.Fatalf("LeftIndex %d after cursor %d", left, cursor)
	}
	if strings.Contains(s.Current(text, cursor).Text, testDelim) {
		t.Fatalf("note around %d contains the delimiter", cursor)
	}
}

func TestBoundaries_ContainCursor_Properties(t *testing.T) {
	rapid.Check(t, testBoundaries_ContainCursor_Properties)
}

func testRepeatedDelete_NoDoubledDelimiter_Properties(t *rapid.T) {
	s := MustNewSearcher(testDelim)
	text := strings.Join(notesGenerator(1).Draw(t, "notes"), testDelim)
	deletions := rapid.IntRange(1, 6).Draw(t, "deletions")

	for i := 0; i < deletions; i++ {
		cursor := rapid.IntRange(0, len(text)).Draw(t, "cursor")
		text, _ = s.Delete(text, cursor)
		if strings.Contains(text, testDelim+testDelim) {
			t.Fatalf("doubled delimiter after deletion %d: %q", i, text)
		}
	}
}

func TestRepeatedDelete_NoDoubledDelimiter_Properties(t *testing.T) {
	rapid.Check(t, testRepeatedDelete_NoDoubledDelimiter_Properties)
}

func testSplit_AgreesWithCurrent_Properties(t *rapid.T) {
	s := MustNewSearcher(testDelim)
	text := strings.Join(notesGenerator(0).Draw(t, "notes"), testDelim)

	for _, n := range s.Split(text) {
		if got := s.Current(text, n.Start); got != n {
			t.Fatalf("Current(%d) = %+v, Split gave %+v", n.Start, got, n)
		}
	}
}

func TestSplit_AgreesWithCurrent_Properties(t *testing.T) {
	rapid.Check(t, testSplit_AgreesWithCurrent_Properties)
}
