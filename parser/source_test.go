package parser

import "testing"

func TestSourceLineCount(t *testing.T) {
	src := NewSource("test.asm", "LOAD A\nSTORE B\n.END")
	if got := src.LineCount(); got != 3 {
		t.Errorf("LineCount() = %d, want 3", got)
	}
}

func TestSourceLineOutOfRange(t *testing.T) {
	src := NewSource("test.asm", "LOAD A")
	if got := src.Line(0); got != "" {
		t.Errorf("Line(0) = %q, want empty", got)
	}
	if got := src.Line(5); got != "" {
		t.Errorf("Line(5) = %q, want empty", got)
	}
}

func TestSourceNormalizesCRLF(t *testing.T) {
	src := NewSource("test.asm", "A\r\nB\r\n")
	if got := src.LineCount(); got != 3 {
		t.Fatalf("LineCount() = %d, want 3", got)
	}
	if got := src.Line(1); got != "A" {
		t.Errorf("Line(1) = %q, want %q", got, "A")
	}
}

func TestLineCursorSkipWhile(t *testing.T) {
	cur := NewLineCursor("   LOAD")
	cur.SkipWhile(func(c byte) bool { return c == ' ' })
	if cur.Index() != 3 {
		t.Errorf("Index() = %d, want 3", cur.Index())
	}
	if cur.Peek() != 'L' {
		t.Errorf("Peek() = %q, want 'L'", cur.Peek())
	}
}

func TestLineCursorFindIfLeavesIndexAtMatch(t *testing.T) {
	cur := NewLineCursor("ABC123")
	end, ok := cur.FindIf(isDigit)
	if !ok || end != 3 {
		t.Fatalf("FindIf() = (%d, %v), want (3, true)", end, ok)
	}
	if cur.Index() != 3 {
		t.Errorf("Index() after FindIf = %d, want 3 (cursor must land exactly at the match)", cur.Index())
	}
}

func TestLineCursorFindIfNoMatch(t *testing.T) {
	cur := NewLineCursor("ABCDEF")
	end, ok := cur.FindIf(isDigit)
	if ok || end != NotFound {
		t.Errorf("FindIf() = (%d, %v), want (%d, false)", end, ok, NotFound)
	}
	if !cur.AtEnd() {
		t.Error("cursor should be exhausted after an unmatched FindIf scan")
	}
}

func TestLineCursorFindNextEscapeIgnore(t *testing.T) {
	cur := NewLineCursor(`a\"b"`)
	cur.Ignore(IgnoreEscapeSequence)
	idx, ok := cur.FindNext('"')
	if !ok || idx != 4 {
		t.Errorf("FindNext() = (%d, %v), want (4, true) skipping the escaped quote", idx, ok)
	}
}

func TestLineCursorSubstr(t *testing.T) {
	cur := NewLineCursor("HELLO")
	if got := cur.Substr(1, 3); got != "EL" {
		t.Errorf("Substr(1,3) = %q, want %q", got, "EL")
	}
	if got := cur.Substr(1, NotFound); got != "ELLO" {
		t.Errorf("Substr(1,NotFound) = %q, want %q", got, "ELLO")
	}
}
