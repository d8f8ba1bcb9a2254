package parser

import "testing"

func assemblePass(t *testing.T, text string) ([]*Token, *SymbolTable, *Bus, bool) {
	t.Helper()
	bus := NewBus()
	src := NewSource("f.asm", text)
	tz := NewTokenizer("f.asm", bus)
	tokens := tz.TokenizeSource(src)
	tokens = BindOperands(tokens, src, bus)
	symbols, ok := BuildSymbols(tokens, src, bus)
	return tokens, symbols, bus, ok
}

func TestBuildSymbolsEmptyProgram(t *testing.T) {
	_, symbols, bus, ok := assemblePass(t, ".BEGIN\n.END")
	if !ok || bus.Errors.Count() != 0 {
		t.Fatalf("ok=%v errors=%d, want ok=true with no errors", ok, bus.Errors.Count())
	}
	if len(symbols.Names()) != 0 {
		t.Errorf("symbols = %v, want none", symbols.Names())
	}
}

func TestBuildSymbolsAssignsAddress(t *testing.T) {
	_, symbols, _, ok := assemblePass(t, ".BEGIN\nX\n.DATA 42\n.END")
	if !ok {
		t.Fatal("expected a clean build")
	}
	sym, found := symbols.Lookup("X")
	if !found || sym.Address != 1 {
		t.Errorf("X = %+v, want address 1 (the .BEGIN origin word occupies address 0)", sym)
	}
}

func TestBuildSymbolsInstructionBeforeBegin(t *testing.T) {
	_, _, bus, ok := assemblePass(t, "HALT\n.BEGIN\n.END")
	if ok {
		t.Fatal("expected the walk to report not-okay")
	}
	if bus.Errors.Count() != 1 {
		t.Fatalf("errors = %d, want 1", bus.Errors.Count())
	}
}

func TestBuildSymbolsDuplicateBegin(t *testing.T) {
	_, _, bus, ok := assemblePass(t, ".BEGIN\n.BEGIN\n.END")
	if ok {
		t.Fatal("expected not-okay")
	}
	if bus.Errors.Count() != 1 {
		t.Fatalf("errors = %d, want 1", bus.Errors.Count())
	}
}

func TestBuildSymbolsDuplicateLabelName(t *testing.T) {
	_, symbols, bus, ok := assemblePass(t, ".BEGIN\nX\nHALT\nX\nHALT\n.END")
	if ok {
		t.Fatal("expected not-okay on a duplicate label name")
	}
	if bus.Errors.Count() != 2 {
		t.Fatalf("errors = %d, want 2 (the duplicate plus its companion)", bus.Errors.Count())
	}
	sym, found := symbols.Lookup("X")
	if !found || sym.Address != 1 {
		t.Errorf("the first definition of X should win, got %+v", sym)
	}
}

func TestBuildSymbolsDuplicateAddress(t *testing.T) {
	_, _, bus, ok := assemblePass(t, ".BEGIN\nA\nB\nHALT\n.END")
	if ok {
		t.Fatal("expected not-okay: two labels at the same address")
	}
	if bus.Errors.Count() != 2 {
		t.Fatalf("errors = %d, want 2", bus.Errors.Count())
	}
}

func TestBuildSymbolsExtraEndWarns(t *testing.T) {
	_, _, bus, ok := assemblePass(t, ".BEGIN\nHALT\n.END\nHALT")
	if !ok {
		t.Fatal("an instruction after .END is a warning, not an error")
	}
	if bus.Warnings.Count() != 1 {
		t.Fatalf("warnings = %d, want 1", bus.Warnings.Count())
	}
}

func TestBuildSymbolsLabelAfterEndWarns(t *testing.T) {
	_, _, bus, ok := assemblePass(t, ".BEGIN\nHALT\n.END\nY")
	if !ok {
		t.Fatal("a label after .END is a warning, not an error")
	}
	if bus.Warnings.Count() != 1 {
		t.Fatalf("warnings = %d, want 1", bus.Warnings.Count())
	}
}
