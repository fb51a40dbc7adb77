package note

import (
	"strings"
	"unicode"
)

// Cloze wrapping applied by the cut shortcut.
const (
	ClozePrefix = "{{c1::"
	ClozeSuffix = "}}"
)

// Note is the text between two delimiters at the moment of a query.
type Note struct {
	Start int
	End   int
	Text  string
}

// Len returns the length of the note text in bytes.
func (n Note) Len() int {
	return len(n.Text)
}

// IsEmpty returns true if the note has no text.
func (n Note) IsEmpty() bool {
	return n.Text == ""
}

// Range is a half-open span [Start, End) of buffer offsets.
type Range struct {
	Start int
	End   int
}

// Current returns the note around cursor.
func (s *Searcher) Current(text string, cursor int) Note {
	left := s.LeftIndex(text, cursor)
	right := s.RightIndex(text, cursor)
	return Note{
		Start: left,
		End:   right,
		Text:  substring(text, left, right),
	}
}

// Delete removes the note around cursor.
// It returns the new buffer and the cursor, placed where the note started.
func (s *Searcher) Delete(text string, cursor int) (string, int) {
	left := s.LeftIndex(text, cursor)
	out := DeleteNote(text, left, s.RightIndex(text, cursor), s.delimiter)
	return out, clamp(left, len(out))
}

// Selection returns the span that selects the note around cursor together
// with the delimiter in front of it, when there is room for one.
func (s *Searcher) Selection(text string, cursor int) Range {
	left := s.LeftIndex(text, cursor)
	start := left
	if left > len(s.delimiter) {
		start -= len(s.delimiter)
	}
	return Range{Start: start, End: s.RightIndex(text, cursor)}
}

// Cut removes the note around cursor and returns it as a clip.
// The clip is the trimmed note text wrapped in prefix and suffix.
func (s *Searcher) Cut(text string, cursor int, prefix, suffix string) (clip, rest string, newCursor int) {
	n := s.Current(text, cursor)
	clip = prefix + strings.TrimSpace(n.Text) + suffix
	rest, newCursor = s.Delete(text, cursor)
	return clip, rest, newCursor
}

// Replace transforms the note around cursor with fn.
//
// The note is deleted and the transformed text is inserted where the cursor
// lands after the deletion, separated by a delimiter: in front of it when
// that position is the end of the buffer, behind it otherwise. The returned
// cursor sits right after the inserted text.
func (s *Searcher) Replace(text string, cursor int, fn func(string) string) (string, int) {
	changed := fn(s.Current(text, cursor).Text)
	rest, at := s.Delete(text, cursor)

	var inserted string
	if at == len(rest) {
		inserted = s.delimiter + changed
	} else {
		inserted = changed + s.delimiter
	}
	return rest[:at] + inserted + rest[at:], at + len(inserted)
}

// Prefix returns the part of the current note in front of cursor.
func (s *Searcher) Prefix(text string, cursor int) string {
	return substring(text, s.LeftIndex(text, cursor), cursor)
}

// AppendDelimiter starts a new note at the end of the buffer.
func (s *Searcher) AppendDelimiter(text string) string {
	return TrimExceptSingleNewline(text) + "\n" + s.delimiter
}

// Split returns all notes of text in buffer order.
// An empty segment before a leading delimiter or after a trailing delimiter
// is not a note.
func (s *Searcher) Split(text string) []Note {
	var notes []Note
	start := 0
	for {
		i := strings.Index(text[start:], s.delimiter)
		if i < 0 {
			break
		}
		end := start + i
		if end > 0 {
			notes = append(notes, Note{Start: start, End: end, Text: text[start:end]})
		}
		start = end + len(s.delimiter)
	}
	if start < len(text) || (start == 0 && len(notes) == 0) {
		notes = append(notes, Note{Start: start, End: len(text), Text: text[start:]})
	}
	return notes
}

// TrimExceptSingleNewline trims whitespace from both ends of input, but when
// the trailing whitespace contains a newline it is replaced by a single
// newline and leading whitespace is left alone.
func TrimExceptSingleNewline(input string) string {
	body := strings.TrimRightFunc(input, unicode.IsSpace)
	if strings.Contains(input[len(body):], "\n") {
		return body + "\n"
	}
	return strings.TrimSpace(input)
}
