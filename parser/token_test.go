package parser

import "testing"

func TestOpcodeTable(t *testing.T) {
	tests := []struct {
		kind TokenKind
		want uint16
	}{
		{KindLoad, 0x0},
		{KindStore, 0x1},
		{KindCompare, 0x7},
		{KindJumpNEQ, 0xC},
		{KindHalt, 0xF},
	}
	for _, tt := range tests {
		got, ok := Opcode(tt.kind)
		if !ok || got != tt.want {
			t.Errorf("Opcode(%s) = (%#x, %v), want (%#x, true)", tt.kind, got, ok, tt.want)
		}
	}
}

func TestOpcodeNonInstruction(t *testing.T) {
	if _, ok := Opcode(KindLabel); ok {
		t.Error("Opcode(KindLabel) should report ok=false")
	}
}

func TestMemoryRequired(t *testing.T) {
	if MemoryRequired(KindLabel) != 0 {
		t.Error("a LABEL occupies no memory")
	}
	if MemoryRequired(KindHalt) != 1 {
		t.Error("HALT occupies one word")
	}
	if MemoryRequired(KindData) != 1 {
		t.Error(".DATA occupies one word")
	}
}

func TestRequirementsForInstructionTakesOneLabel(t *testing.T) {
	req := RequirementsFor(KindLoad)
	if req.Min != 1 || req.Max != 1 {
		t.Fatalf("RequirementsFor(KindLoad) = %+v, want Min=Max=1", req)
	}
	if !req.Patterns[0].Has(KindLabel) {
		t.Error("LOAD's operand pattern should accept LABEL")
	}
	if req.Patterns[0].Has(KindDecimal) {
		t.Error("LOAD's operand pattern should not accept DECIMAL")
	}
}

func TestRequirementsForDataTakesOneDecimal(t *testing.T) {
	req := RequirementsFor(KindData)
	if req.Min != 1 || req.Max != 1 || !req.Patterns[0].Has(KindDecimal) {
		t.Fatalf(".DATA requirements = %+v, want exactly one DECIMAL", req)
	}
}

func TestRequirementsForHaltIsNone(t *testing.T) {
	req := RequirementsFor(KindHalt)
	if req.Min != 0 || req.Max != 0 {
		t.Errorf("HALT requirements = %+v, want Min=Max=0", req)
	}
}

func TestMatchOr(t *testing.T) {
	m := MatchKind(KindLabel).Or(MatchKind(KindDecimal))
	if !m.Has(KindLabel) || !m.Has(KindDecimal) {
		t.Error("Or() should accept both member kinds")
	}
	if m.Has(KindHalt) {
		t.Error("Or() should not accept a non-member kind")
	}
}

func TestTokenAST(t *testing.T) {
	tok := NewToken(KindLoad, "LOAD", "f.asm", Position{Filename: "f.asm", Line: 3, Column: 0})
	tok.Operands = []*Token{NewToken(KindLabel, "X", "f.asm", Position{Filename: "f.asm", Line: 3, Column: 5})}

	ast := tok.AST()
	if ast == "" {
		t.Fatal("AST() should not be empty")
	}
}
