package parser

import "sort"

// Symbol is a label definition: its name, the address it was defined at,
// and the source position of that definition (for "Previous definition
// found here" companion diagnostics).
type Symbol struct {
	Name    string
	Address uint16
	File    string
	Line    int
	Column  int
}

// SymbolTable maps label names to addresses and supports the reverse
// lookup (address -> symbol) the encoder's listing column needs.
type SymbolTable struct {
	byName    map[string]*Symbol
	byAddress map[uint16]*Symbol
}

// NewSymbolTable returns an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		byName:    make(map[string]*Symbol),
		byAddress: make(map[uint16]*Symbol),
	}
}

// Lookup returns the symbol named name, if defined.
func (st *SymbolTable) Lookup(name string) (*Symbol, bool) {
	sym, ok := st.byName[name]
	return sym, ok
}

// AtAddress returns the symbol defined at addr, if any. The reverse index
// holds one symbol per address: when two labels share an address (which
// the parser reports as an error), the later definition is returned.
func (st *SymbolTable) AtAddress(addr uint16) (*Symbol, bool) {
	sym, ok := st.byAddress[addr]
	return sym, ok
}

// Define records a new symbol. It does not check for duplicates; the
// parser (C7) performs that check itself, since a duplicate by name and
// a duplicate by address need distinct diagnostics.
func (st *SymbolTable) Define(name string, address uint16, pos Position) *Symbol {
	sym := &Symbol{Name: name, Address: address, File: pos.Filename, Line: pos.Line, Column: pos.Column}
	st.byName[name] = sym
	st.byAddress[address] = sym
	return sym
}

// Names returns every defined symbol's name in sorted order, the
// iteration order the .sym output uses.
func (st *SymbolTable) Names() []string {
	names := make([]string, 0, len(st.byName))
	for name := range st.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
