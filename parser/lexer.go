package parser

import (
	"fmt"
	"strconv"
	"strings"
)

func isAlnum(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isWordChar(c byte) bool { return isAlnum(c) || c == '_' }

// isValidDecimalLiteral reports whether s is an acceptable decimal literal
// spelling: optional leading '#' (with an optional '-' after it) or a bare
// optional leading '-', followed by one or more digits.
func isValidDecimalLiteral(s string) bool {
	if s == "" {
		return false
	}
	rest := s
	if rest[0] == '#' {
		rest = rest[1:]
	}
	if rest != "" && rest[0] == '-' {
		rest = rest[1:]
	}
	if rest == "" {
		return false
	}
	for i := 0; i < len(rest); i++ {
		if !isDigit(rest[i]) {
			return false
		}
	}
	return true
}

// isValidLabel reports whether s is an acceptable label spelling: an
// optional leading '.' followed by one or more alphanumerics/underscores.
func isValidLabel(s string) bool {
	if s == "" {
		return false
	}
	rest := s
	if rest[0] == '.' {
		rest = rest[1:]
	}
	if rest == "" {
		return false
	}
	for i := 0; i < len(rest); i++ {
		if !isWordChar(rest[i]) {
			return false
		}
	}
	return true
}

// parseDecimal parses a literal already validated by isValidDecimalLiteral
// into a signed 16-bit value. tooBig is set on overflow (|value| > 32767)
// or on a lexeme longer than 7 characters (the widest representable form,
// e.g. "#-12345").
func parseDecimal(lexeme string) (int16, bool) {
	if len(lexeme) > 7 {
		return 0, true
	}
	s := lexeme
	if strings.HasPrefix(s, "#") {
		s = s[1:]
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, true
	}
	if n > 32767 || n < -32767 {
		return 0, true
	}
	return int16(n), false
}

// Tokenizer maps source lines to tokens (C5). It carries the notification
// bus every stage reports diagnostics through and the file name every
// produced token is stamped with.
type Tokenizer struct {
	File string
	Bus  *Bus
}

// NewTokenizer creates a tokenizer for file, reporting through bus.
func NewTokenizer(file string, bus *Bus) *Tokenizer {
	return &Tokenizer{File: file, Bus: bus}
}

// TokenizeSource tokenizes every line of src in order, returning the flat
// token sequence.
func (tz *Tokenizer) TokenizeSource(src *Source) []*Token {
	var tokens []*Token
	for lineNo := 1; lineNo <= src.LineCount(); lineNo++ {
		tokens = append(tokens, tz.TokenizeLine(src.Line(lineNo), lineNo)...)
	}
	return tokens
}

// TokenizeLine tokenizes one physical line, per the algorithm in spec
// §4.3: skip whitespace, read a word run, and dispatch on the first
// non-word character when the run is empty.
func (tz *Tokenizer) TokenizeLine(line string, lineNo int) []*Token {
	cur := NewLineCursor(line)
	var tokens []*Token

	pos := func(column int) Position {
		return Position{Filename: tz.File, Line: lineNo, Column: column}
	}

	for !cur.AtEnd() {
		cur.SkipWhile(func(c byte) bool { return c == ' ' || c == '\t' })
		if cur.AtEnd() {
			break
		}

		start := cur.Index()
		end, found := cur.FindIf(func(c byte) bool { return !isWordChar(c) })
		if !found {
			end = len(line)
		}
		word := cur.Substr(start, end)

		if word != "" {
			tok := tz.tokenizeWord(word, pos(start), line)
			tokens = append(tokens, tok)
			continue
		}

		column := cur.Index()
		switch next := cur.Next(); next {
		case '.':
			bodyStart := cur.Index()
			bodyEnd, ok := cur.FindIf(func(c byte) bool { return !isAlnum(c) })
			if !ok {
				bodyEnd = len(line)
			}
			body := "." + cur.Substr(bodyStart, bodyEnd)
			tokens = append(tokens, tz.tokenizeDirective(body, pos(column), line))

		case '-':
			digitsStart := cur.Index()
			digitsEnd, ok := cur.FindIf(func(c byte) bool { return !isDigit(c) })
			if !ok {
				digitsEnd = len(line)
			}
			digits := cur.Substr(digitsStart, digitsEnd)
			if digits == "" {
				tz.Bus.Warning(NewDiagnostic(pos(column), 0, line, "Extraneous '-' found"))
			} else {
				tokens = append(tokens, tz.tokenizeImmediate(digits, pos(column), line))
			}

		case '/':
			if cur.Peek() == '/' {
				cur.Skip()
			} else {
				tz.Bus.Warning(NewDiagnostic(pos(column), 0, line, "Found '/', acting as if '//'"))
			}
			cur.SkipWhile(func(byte) bool { return true })

		case ';':
			cur.SkipWhile(func(byte) bool { return true })

		case ':':
			// Allows `LABEL:` syntax; nothing to do.

		default:
			// No-op: stray punctuation is silently discarded.
		}
	}

	return tokens
}

// tokenizeWord classifies a non-empty word run: a keyword (case-folded),
// else a decimal literal, else a label, else an invalid-token diagnostic
// producing a NONE token.
func (tz *Tokenizer) tokenizeWord(word string, pos Position, sourceLine string) *Token {
	if kind, ok := keywords[strings.ToUpper(word)]; ok {
		return NewToken(kind, word, tz.File, pos)
	}

	if isValidDecimalLiteral(word) {
		value, tooBig := parseDecimal(word)
		tok := NewToken(KindDecimal, word, tz.File, pos)
		tok.Value, tok.TooBig = value, tooBig
		if tooBig {
			tz.Bus.Error(NewDiagnostic(pos, len(word), sourceLine,
				"Immediate literal requires more than 16 bits to represent"))
		}
		return tok
	}

	if isValidLabel(word) {
		return NewToken(KindLabel, word, tz.File, pos)
	}

	tz.Bus.Error(NewDiagnostic(pos, len(word), sourceLine, fmt.Sprintf("Invalid token: %s", word)))
	return NewToken(KindNone, word, tz.File, pos)
}

// tokenizeDirective classifies a "." + body lexeme: a known directive
// keyword, else a (dot-prefixed local) label, else a bare NONE token.
func (tz *Tokenizer) tokenizeDirective(lexeme string, pos Position, sourceLine string) *Token {
	if kind, ok := keywords[strings.ToUpper(lexeme)]; ok {
		return NewToken(kind, lexeme, tz.File, pos)
	}
	if isValidLabel(lexeme) {
		return NewToken(KindLabel, lexeme, tz.File, pos)
	}
	return NewToken(KindNone, lexeme, tz.File, pos)
}

// tokenizeImmediate classifies a digit run following a standalone '-' as a
// negative decimal literal.
func (tz *Tokenizer) tokenizeImmediate(digits string, pos Position, sourceLine string) *Token {
	lexeme := "-" + digits
	value, tooBig := parseDecimal(lexeme)
	tok := NewToken(KindDecimal, lexeme, tz.File, pos)
	tok.Value, tok.TooBig = value, tooBig
	if tooBig {
		tz.Bus.Error(NewDiagnostic(pos, len(lexeme), sourceLine,
			"Decimal literal is too big to fit inside 16 bits"))
	}
	return tok
}
