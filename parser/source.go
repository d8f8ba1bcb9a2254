package parser

import (
	"os"
	"strings"
)

// Source is a source file loaded into an ordered sequence of lines. It is
// immutable after load; only its accompanying Position (tracked by the
// tokenizer, not here) advances as a caller walks the file.
type Source struct {
	Filename string
	lines    []string
}

// LoadSource reads a file from disk and splits it into lines without
// terminators.
func LoadSource(path string) (*Source, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided assembly source path
	if err != nil {
		return nil, err
	}
	return NewSource(path, string(content)), nil
}

// NewSource builds a Source directly from text, splitting on newlines.
// LoadSource calls it after reading a file; callers that already hold the
// text in memory can call it directly.
func NewSource(filename, text string) *Source {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return &Source{Filename: filename, lines: strings.Split(text, "\n")}
}

// LineCount returns the number of lines in the source.
func (s *Source) LineCount() int { return len(s.lines) }

// Line returns the 1-based line's text, or "" if out of range.
func (s *Source) Line(n int) string {
	if n < 1 || n > len(s.lines) {
		return ""
	}
	return s.lines[n-1]
}

// IgnoreMode controls which characters FindNext treats as matching. It is a
// bitmask so future modes can be OR'd together; RESET clears all of them.
type IgnoreMode uint8

const (
	IgnoreReset          IgnoreMode = 0
	IgnoreEscapeSequence IgnoreMode = 1 << iota
)

// NotFound is returned by FindNext/FindIf in place of the C++ source's
// SIZE_MAX sentinel; idiomatic Go pairs it with a bool rather than relying
// on callers to compare against a magic index.
const NotFound = -1

// LineCursor walks a single line of source text one byte at a time. It is
// the per-character substrate the tokenizer (C5) drives: peek/next/skip,
// skip_while, find_next, find_if, and substr, plus an ignore mode used by
// the (currently unused by the core grammar, but spec-mandated) escape
// handling in find_next.
type LineCursor struct {
	text    string
	index   int
	ignores IgnoreMode
}

// NewLineCursor creates a cursor positioned at the start of line.
func NewLineCursor(line string) *LineCursor {
	return &LineCursor{text: line}
}

// Ignore sets (RESET clears) the ignore mode used by FindNext.
func (l *LineCursor) Ignore(mode IgnoreMode) {
	if mode == IgnoreReset {
		l.ignores = IgnoreReset
		return
	}
	l.ignores |= mode
}

// At returns the byte at index, or 0 if out of range.
func (l *LineCursor) At(index int) byte {
	if index < 0 || index >= len(l.text) {
		return 0
	}
	return l.text[index]
}

// Peek returns the next byte without advancing, or 0 at end of line.
func (l *LineCursor) Peek() byte { return l.At(l.index) }

// Next returns the next byte and advances past it; returns 0 at end of
// line without advancing further.
func (l *LineCursor) Next() byte {
	c := l.Peek()
	if c != 0 {
		l.index++
	}
	return c
}

// Skip advances past one byte unconditionally.
func (l *LineCursor) Skip() { l.index++ }

// SkipWhile advances while pred holds for the current byte.
func (l *LineCursor) SkipWhile(pred func(byte) bool) {
	for !l.AtEnd() {
		if !pred(l.Peek()) {
			return
		}
		l.Skip()
	}
}

// FindNext searches forward for needle, honoring the current ignore mode:
// under IgnoreEscapeSequence, a needle preceded by '\\' does not count as a
// match. Returns (index, true) on success, (NotFound, false) otherwise; the
// cursor is left just past the match.
func (l *LineCursor) FindNext(needle byte) (int, bool) {
	for !l.AtEnd() {
		if l.Peek() == needle {
			if l.ignores == IgnoreReset || l.At(l.index-1) != '\\' {
				idx := l.index
				l.index++
				return idx, true
			}
		}
		l.Skip()
	}
	return NotFound, false
}

// FindIf searches forward for the first byte satisfying pred, without
// consuming it. Returns (index, true) on success, (NotFound, false) if pred
// never holds before the line ends.
func (l *LineCursor) FindIf(pred func(byte) bool) (int, bool) {
	for !l.AtEnd() {
		if pred(l.Peek()) {
			return l.index, true
		}
		l.Skip()
	}
	return NotFound, false
}

// Substr returns text[begin:end]; end == NotFound means "to the end of the
// line".
func (l *LineCursor) Substr(begin, end int) string {
	if end == NotFound {
		return l.text[begin:]
	}
	return l.text[begin:end]
}

// AtEnd reports whether the cursor has consumed the whole line.
func (l *LineCursor) AtEnd() bool { return l.index >= len(l.text) }

// Index returns the cursor's current byte offset.
func (l *LineCursor) Index() int { return l.index }
