package parser

// BuildSymbols is the second walk over the token stream (C7): it assigns
// addresses, builds the symbol table, and enforces the structural rules
// of the grammar (origin before code, one .BEGIN, no duplicate labels).
//
// It returns the symbol table and whether the walk completed without
// raising a new error on bus (the walk always runs to completion; errors
// never abort it, matching the tokenizer and operand binder).
func BuildSymbols(tokens []*Token, src *Source, bus *Bus) (*SymbolTable, bool) {
	symbols := NewSymbolTable()
	errorsBefore := bus.Errors.Count()

	var pc uint16
	originSeen := false
	endSeen := false

	for _, tok := range tokens {
		switch tok.Kind {
		case KindLabel:
			bindLabel(tok, pc, originSeen, endSeen, symbols, src, bus)

		case KindBegin:
			if originSeen {
				reportStructural(tok, src, bus, ".BEGIN repeated")
			} else {
				originSeen = true
				// The origin word occupies address 0 of the final image.
				pc++
			}

		case KindEnd:
			endSeen = true

		default:
			if !originSeen {
				reportStructural(tok, src, bus, "Instruction found before .BEGIN directive")
				continue
			}
			if endSeen {
				reportWarning(tok, src, bus, "Extra .END directive found")
				continue
			}
			pc += uint16(MemoryRequired(tok.Kind))
		}
	}

	return symbols, bus.Errors.Count() == errorsBefore
}

func bindLabel(tok *Token, pc uint16, originSeen, endSeen bool, symbols *SymbolTable, src *Source, bus *Bus) {
	if !originSeen {
		reportStructural(tok, src, bus, "Label found before .BEGIN directive")
		return
	}
	if endSeen {
		reportWarning(tok, src, bus, "Label found after .END directive, ignoring.")
		return
	}

	if prior, ok := symbols.AtAddress(pc); ok {
		reportStructural(tok, src, bus, "Multiple labels found for address")
		reportStructuralAt(symbolPosition(prior), len(prior.Name), prior.File, src, bus, "Previous label found here")
	}

	if prior, ok := symbols.Lookup(tok.Lexeme); ok {
		reportStructural(tok, src, bus, "Multiple definitions of label")
		reportStructuralAt(symbolPosition(prior), len(prior.Name), prior.File, src, bus, "Previous definition found here")
		return
	}

	symbols.Define(tok.Lexeme, pc, tok.Pos)
}

func symbolPosition(s *Symbol) Position {
	return Position{Filename: s.File, Line: s.Line, Column: s.Column}
}

func reportStructural(tok *Token, src *Source, bus *Bus, message string) {
	bus.Error(NewDiagnostic(tok.Pos, len(tok.Lexeme), lineOf(src, tok.Pos.Line), message))
}

func reportStructuralAt(pos Position, length int, file string, src *Source, bus *Bus, message string) {
	bus.Error(NewDiagnostic(pos, length, lineOf(src, pos.Line), message))
}

func reportWarning(tok *Token, src *Source, bus *Bus, message string) {
	bus.Warning(NewDiagnostic(tok.Pos, len(tok.Lexeme), lineOf(src, tok.Pos.Line), message))
}

func lineOf(src *Source, lineNo int) string {
	if src == nil {
		return ""
	}
	return src.Line(lineNo)
}
