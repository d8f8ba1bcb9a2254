package parser

import (
	"strings"
	"testing"
)

func TestDiagnosticRenderNoColor(t *testing.T) {
	pos := Position{Filename: "f.asm", Line: 2, Column: 4}
	d := NewDiagnostic(pos, 3, "  LOAD XYZ", "Invalid token: XYZ")

	out := d.Render(true)
	if !strings.Contains(out, "f.asm:2:4: Invalid token: XYZ") {
		t.Errorf("Render(true) = %q, missing file:line:col header", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("Render(true) should not contain ANSI escapes")
	}
	if !strings.Contains(out, "^~~") {
		t.Errorf("Render(true) = %q, want a caret plus two tildes for Length=3", out)
	}
}

func TestDiagnosticRenderColor(t *testing.T) {
	pos := Position{Filename: "f.asm", Line: 1, Column: 0}
	d := NewDiagnostic(pos, 1, "X", "stray")

	out := d.Render(false)
	if !strings.Contains(out, "\x1b[32m") {
		t.Error("Render(false) should colour the file name green")
	}
}

func TestDiagnosticRenderEmptyLineHasNoHighlighter(t *testing.T) {
	pos := Position{Filename: "f.asm", Line: 1, Column: 0}
	d := NewDiagnostic(pos, 0, "", "Unable to open file")

	out := d.Render(true)
	if strings.Contains(out, "^") {
		t.Error("a diagnostic with no source line should not render a caret")
	}
}
