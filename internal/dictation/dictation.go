// Package dictation decides where transcribed speech goes in a buffer and
// which buffer text is passed to the transcriber as context.
//
// The transcription call itself is not part of this package.
package dictation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/scratchpad/internal/note"
)

// MaxPromptChars is the default prompt size. The last words before the
// cursor must fit so the transcriber can continue an unfinished sentence.
const MaxPromptChars = 500

// ErrUnknownMode is returned by ParseMode for unknown mode names.
var ErrUnknownMode = errors.New("unknown insert mode")

// Mode selects where a transcript is placed.
type Mode int

const (
	// InsertAtCursor inserts the transcript at the cursor.
	InsertAtCursor Mode = iota
	// AppendAtEnd appends the transcript to the end of the buffer.
	AppendAtEnd
)

// String returns the mode name as used in configuration.
func (m Mode) String() string {
	switch m {
	case InsertAtCursor:
		return "insertAtCursor"
	case AppendAtEnd:
		return "appendAtEnd"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode name. Matching is case-insensitive.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "insertatcursor", "cursor":
		return InsertAtCursor, nil
	case "appendatend", "end":
		return AppendAtEnd, nil
	default:
		return InsertAtCursor, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// EditorPrefix returns the text of the current note up to the insertion
// point: the cursor for InsertAtCursor, the end of the buffer otherwise.
func EditorPrefix(s *note.Searcher, text string, cursor int, mode Mode) string {
	end := len(text)
	if mode == InsertAtCursor {
		end = max(0, min(cursor, len(text)))
	}
	return s.Prefix(text, end)
}

// Prompt returns base followed by as much of the end of editorPrefix as fits
// in maxChars bytes. The cut never splits a UTF-8 sequence.
func Prompt(base, editorPrefix string, maxChars int) string {
	n := maxChars - len(base)
	if n <= 0 {
		return base
	}
	if n >= len(editorPrefix) {
		return base + editorPrefix
	}

	start := len(editorPrefix) - n
	for start < len(editorPrefix) && !utf8.RuneStart(editorPrefix[start]) {
		start++
	}
	return base + editorPrefix[start:]
}

// Insert places transcript in text according to mode and returns the new
// text and the cursor after the inserted transcript.
//
// At the cursor, a space is added when the preceding character is not
// whitespace, and a final period is replaced by a space unless the cursor is
// at the end of the buffer. At the end, buffer and transcript are trimmed
// first.
func Insert(text string, cursor int, transcript string, mode Mode) (string, int) {
	if mode == AppendAtEnd {
		out := note.TrimExceptSingleNewline(text) + strings.TrimSpace(transcript)
		return out, len(out)
	}

	cursor = max(0, min(cursor, len(text)))
	if cursor < len(text) && strings.HasSuffix(transcript, ".") {
		transcript = strings.TrimSuffix(transcript, ".") + " "
	}
	if cursor > 0 {
		if r, _ := utf8.DecodeLastRuneInString(text[:cursor]); !unicode.IsSpace(r) {
			transcript = " " + transcript
		}
	}
	return text[:cursor] + transcript + text[cursor:], cursor + len(transcript)
}
