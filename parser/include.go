package parser

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Includer implements the optional `.include "path"` extension (§4.7):
// tokenizing path in a nested lexer and splicing its token stream in
// place of the include line. It guards against recursive includes with a
// set of currently open file paths, scoped to the lifetime of the
// recursive TokenizeFile call that opened them.
type Includer struct {
	Bus  *Bus
	open map[string]bool
}

// NewIncluder returns an Includer reporting diagnostics through bus.
func NewIncluder(bus *Bus) *Includer {
	return &Includer{Bus: bus, open: make(map[string]bool)}
}

// TokenizeFile loads and tokenizes path, recursively splicing in the
// token stream of every `.include`d file at the point it appears.
func (inc *Includer) TokenizeFile(path string) ([]*Token, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if inc.open[absPath] {
		return nil, fmt.Errorf("File is already open (probable recursive include)")
	}

	src, err := LoadSource(path)
	if err != nil {
		return nil, fmt.Errorf("Unable to open file %s: %w", path, err)
	}

	inc.open[absPath] = true
	defer delete(inc.open, absPath)

	tz := NewTokenizer(path, inc.Bus)
	var tokens []*Token

	for lineNo := 1; lineNo <= src.LineCount(); lineNo++ {
		line := src.Line(lineNo)

		if includePath, ok := parseIncludeDirective(line); ok {
			nested := includePath
			if !filepath.IsAbs(nested) {
				nested = filepath.Join(filepath.Dir(path), includePath)
			}
			nestedTokens, err := inc.TokenizeFile(nested)
			if err != nil {
				pos := Position{Filename: path, Line: lineNo, Column: 0}
				inc.Bus.Error(NewDiagnostic(pos, len(line), line, err.Error()))
				continue
			}
			tokens = append(tokens, nestedTokens...)
			continue
		}

		tokens = append(tokens, tz.TokenizeLine(line, lineNo)...)
	}

	return tokens, nil
}

// parseIncludeDirective reports whether line is a `.include "path"`
// directive and, if so, the quoted path.
func parseIncludeDirective(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	const keyword = ".include"
	if len(trimmed) < len(keyword) || !strings.EqualFold(trimmed[:len(keyword)], keyword) {
		return "", false
	}

	rest := strings.TrimSpace(trimmed[len(keyword):])
	if len(rest) < 2 || rest[0] != '"' {
		return "", false
	}

	end := strings.IndexByte(rest[1:], '"')
	if end < 0 {
		return "", false
	}
	return rest[1 : 1+end], true
}
