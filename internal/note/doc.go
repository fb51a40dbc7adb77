// Package note addresses notes inside a single scratchpad buffer.
//
// A buffer is carved into notes by a literal delimiter string:
//
//	[delimiter] note0 delimiter note1 delimiter ... [delimiter]
//
// Notes have no identity of their own. Every lookup re-derives the note
// boundaries from the current buffer text and a cursor offset, so all
// functions in this package are pure: they take the buffer as a string and
// return new strings and offsets without retaining anything.
//
// Offsets are byte offsets into the buffer. Cursor offsets outside the
// buffer are clamped to [0, len(text)].
//
// Basic usage:
//
//	s, _ := note.NewSearcher(note.DefaultDelimiter)
//	n := s.Current(buf, cursor)       // note under the cursor
//	buf, cursor = s.Delete(buf, cursor) // remove it, collapsing delimiters
//
// The Searcher never accepts an empty delimiter. The package level
// DeleteNote takes the delimiter as an argument and requires callers to
// guarantee it is non-empty.
package note
