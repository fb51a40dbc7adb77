package note

import "strings"

// DefaultDelimiter separates notes in a scratchpad buffer.
const DefaultDelimiter = ")))---(((\n"

// Searcher finds note boundaries for a fixed delimiter.
//
// text[LeftIndex(text, c):RightIndex(text, c)] is the note around cursor c.
// A Searcher holds no mutable state and is safe for concurrent use.
type Searcher struct {
	delimiter string
}

// NewSearcher creates a Searcher for the given delimiter.
// Returns ErrEmptyDelimiter if delimiter is empty.
func NewSearcher(delimiter string) (*Searcher, error) {
	if delimiter == "" {
		return nil, ErrEmptyDelimiter
	}
	return &Searcher{delimiter: delimiter}, nil
}

// MustNewSearcher is like NewSearcher but panics on an empty delimiter.
// It is intended for package level variables initialised from constants.
func MustNewSearcher(delimiter string) *Searcher {
	s, err := NewSearcher(delimiter)
	if err != nil {
		panic(err)
	}
	return s
}

// Delimiter returns the delimiter this Searcher looks for.
func (s *Searcher) Delimiter() string {
	return s.delimiter
}

// LeftIndex returns the offset just after the nearest delimiter before start,
// or 0 if there is none.
//
// The scan begins one byte before start. A cursor placed exactly at the
// beginning of a delimiter therefore resolves to the note in front of that
// delimiter, and a delimiter that straddles the cursor is found as well.
func (s *Searcher) LeftIndex(text string, start int) int {
	start = clamp(start, len(text))
	if start == 0 {
		return 0
	}
	for i := start - 1; i >= 0; i-- {
		if strings.HasPrefix(text[i:], s.delimiter) {
			return i + len(s.delimiter)
		}
	}
	return 0
}

// RightIndex returns the offset of the nearest delimiter at or after start,
// or len(text) if there is none.
func (s *Searcher) RightIndex(text string, start int) int {
	start = clamp(start, len(text))
	for i := start; i < len(text); i++ {
		if strings.HasPrefix(text[i:], s.delimiter) {
			return i
		}
	}
	return len(text)
}

// DeleteNote removes input[left:right] and collapses the delimiters that end
// up next to each other.
//
// Doubled delimiters become single ones. A result consisting of exactly two
// delimiters becomes empty, otherwise one leading delimiter, or failing that
// one trailing delimiter, is stripped. Repeated deletions therefore never
// accumulate orphan delimiters.
//
// delimiter must not be empty.
func DeleteNote(input string, left, right int, delimiter string) string {
	left = clamp(left, len(input))
	right = clamp(right, len(input))

	double := delimiter + delimiter
	out := strings.ReplaceAll(input[:left]+input[right:], double, delimiter)
	if out == double {
		return ""
	}
	if strings.HasPrefix(out, delimiter) {
		return out[len(delimiter):]
	}
	if strings.HasSuffix(out, delimiter) {
		return out[:len(out)-len(delimiter)]
	}
	return out
}

// clamp limits offset to the range [0, n].
func clamp(offset, n int) int {
	if offset < 0 {
		return 0
	}
	if offset > n {
		return n
	}
	return offset
}

// substring returns text between a and b after clamping both offsets and
// ordering them, so reversed bounds select the same span.
func substring(text string, a, b int) string {
	a = clamp(a, len(text))
	b = clamp(b, len(text))
	if a > b {
		a, b = b, a
	}
	return text[a:b]
}
