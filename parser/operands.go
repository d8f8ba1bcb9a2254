package parser

import "fmt"

// BindOperands walks tok, a flat token sequence, attaching operands to each
// instruction/directive per its Requirements (C6). Tokens that were
// consumed as operands are removed from the returned slice.
//
// A binding failure does not abort the walk: the pass continues past the
// owning token and the token immediately after it (the mismatched or
// missing operand candidate), so a single bad line does not cascade into a
// second, redundant diagnostic for the token that failed to bind.
func BindOperands(tokens []*Token, src *Source, bus *Bus) []*Token {
	var out []*Token
	i := 0
	for i < len(tokens) {
		tok := tokens[i]
		req := RequirementsFor(tok.Kind)

		if req.Min == 0 {
			checkStray(tok, src, bus)
			out = append(out, tok)
			i++
			continue
		}

		ops, ok := bindOne(tokens, i, req, src, bus)
		out = append(out, tok)
		if ok {
			tok.Operands = ops
			i += 1 + len(ops)
		} else {
			if next := successorAt(tokens, i+1); next != nil {
				out = append(out, next)
			}
			i += 2
		}
	}
	return out
}

// bindOne attempts to satisfy tokens[i]'s requirements from its
// successors, per the bounded/unbounded consumption algorithm in spec
// §4.4: bounded requirements check one pattern slot per successor up to
// Max; unbounded requirements (Max == Unbounded) consume every successor
// matching Patterns[0], requiring at least Min.
func bindOne(tokens []*Token, i int, req Requirements, src *Source, bus *Bus) ([]*Token, bool) {
	owner := tokens[i]

	if req.Max == Unbounded {
		var ops []*Token
		for i+1+len(ops) < len(tokens) && req.Patterns[0].Has(tokens[i+1+len(ops)].Kind) {
			ops = append(ops, tokens[i+1+len(ops)])
		}
		if len(ops) < req.Min {
			emitOperandMismatch(owner, req.Patterns[0], successorAt(tokens, i+1+len(ops)), src, bus)
			return nil, false
		}
		return ops, true
	}

	var ops []*Token
	for k := 0; k < req.Max; k++ {
		cand := successorAt(tokens, i+1+k)
		if cand != nil && req.Patterns[k].Has(cand.Kind) {
			ops = append(ops, cand)
			continue
		}
		if k >= req.Min {
			return ops, true
		}
		emitOperandMismatch(owner, req.Patterns[k], cand, src, bus)
		return nil, false
	}
	return ops, true
}

func successorAt(tokens []*Token, idx int) *Token {
	if idx < 0 || idx >= len(tokens) {
		return nil
	}
	return tokens[idx]
}

func emitOperandMismatch(owner *Token, pattern Match, found *Token, src *Source, bus *Bus) {
	lexeme, kind, pos := "", KindNone.String(), owner.Pos
	if found != nil {
		lexeme, kind, pos = found.Lexeme, found.Kind.String(), found.Pos
	}
	line := ""
	if src != nil {
		line = src.Line(pos.Line)
	}
	bus.Error(NewDiagnostic(pos, len(lexeme), line,
		fmt.Sprintf("Expected %s, but found '%s' (with type %s)", pattern, lexeme, kind)))
}

// checkStray reports a top-level token that takes no operands of its own
// (requirements.min == 0) but is not one of the kinds actually allowed to
// stand alone: LABEL, .BEGIN, .END, HALT.
func checkStray(tok *Token, src *Source, bus *Bus) {
	switch tok.Kind {
	case KindLabel, KindBegin, KindEnd, KindHalt:
		return
	}
	line := ""
	if src != nil {
		line = src.Line(tok.Pos.Line)
	}
	bus.Error(NewDiagnostic(tok.Pos, len(tok.Lexeme), line,
		fmt.Sprintf("Expected Label, Instruction, or Directive, but found '%s' (type %s)", tok.Lexeme, tok.Kind)))
}
