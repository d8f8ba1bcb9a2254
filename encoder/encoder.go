// Package encoder implements the assembler's third walk (C8): it turns a
// symbol-resolved token stream into 16-bit machine words and the listing
// text that accompanies each one.
package encoder

import (
	"fmt"

	"github.com/pyxxil/mnemonic/parser"
)

// Encoder produces AssembledWord values against a resolved symbol table,
// formatting listing text to a configured label column width.
type Encoder struct {
	Symbols *parser.SymbolTable
	Width   int
}

// NewEncoder returns an Encoder that resolves labels against symbols and
// pads listing label columns to width.
func NewEncoder(symbols *parser.SymbolTable, width int) *Encoder {
	return &Encoder{Symbols: symbols, Width: width}
}

// Encode walks tokens with a fresh program counter, setting Assembled on
// every emitting token. LABEL and .END occupy no word in the final image
// and are left untouched.
func (e *Encoder) Encode(tokens []*parser.Token) {
	var pc uint16
	for _, tok := range tokens {
		switch tok.Kind {
		case parser.KindLabel, parser.KindEnd:
			continue
		case parser.KindBegin:
			e.encodeBegin(tok, &pc)
		case parser.KindData:
			e.encodeData(tok, &pc)
		case parser.KindHalt:
			e.encodeHalt(tok, &pc)
		default:
			e.encodeInstruction(tok, &pc)
		}
	}
}

// encodeBegin assembles the origin word. Its value is always the current
// program counter (0 in a well-formed program, since .BEGIN must be the
// first emitting token); the label column is left blank regardless of
// what symbol, if any, sits at address 0.
func (e *Encoder) encodeBegin(tok *parser.Token, pc *uint16) {
	bin := *pc
	listing := fmt.Sprintf("(0000) %04X %016b (%4d) %-*s .BEGIN 0x%04X",
		bin, bin, tok.Pos.Line, e.Width, "", bin)
	tok.Assembled = &parser.AssembledWord{Bin: bin, Listing: listing}
	*pc++
}

func (e *Encoder) encodeData(tok *parser.Token, pc *uint16) {
	bin := uint16(tok.Operands[0].Value)
	listing := fmt.Sprintf("(%04X) %04X %016b (%4d) %-*s .DATA %d",
		*pc, bin, bin, tok.Pos.Line, e.Width, e.labelAt(*pc), bin)
	tok.Assembled = &parser.AssembledWord{Bin: bin, Listing: listing}
	*pc++
}

func (e *Encoder) encodeHalt(tok *parser.Token, pc *uint16) {
	const bin uint16 = 0xF000
	listing := fmt.Sprintf("(%04X) F000 1111000000000000 (%4d) %-*s HALT",
		*pc, tok.Pos.Line, e.Width, e.labelAt(*pc))
	tok.Assembled = &parser.AssembledWord{Bin: bin, Listing: listing}
	*pc++
}

// encodeInstruction handles every instruction taking a single LABEL
// operand: bin = opcode<<12 | (target address & 0xFFF).
func (e *Encoder) encodeInstruction(tok *parser.Token, pc *uint16) {
	opcode, _ := parser.Opcode(tok.Kind)
	operand := tok.Operands[0]

	var addr uint16
	if sym, ok := e.Symbols.Lookup(operand.Lexeme); ok {
		addr = sym.Address
	}

	bin := (opcode << 12) | (addr & 0xFFF)
	listing := fmt.Sprintf("(%04X) %04X %016b (%4d) %-*s %s %s",
		*pc, bin, bin, tok.Pos.Line, e.Width, e.labelAt(*pc), tok.Mnemonic(), operand.Lexeme)
	tok.Assembled = &parser.AssembledWord{Bin: bin, Listing: listing}
	*pc++
}

func (e *Encoder) labelAt(pc uint16) string {
	if sym, ok := e.Symbols.AtAddress(pc); ok {
		return sym.Name
	}
	return ""
}
