package parser

import (
	"fmt"
	"sort"
)

// SymbolKind represents the role of a symbol table entry
type SymbolKind int

const (
	SymbolCode SymbolKind = iota
	SymbolData
	SymbolExternal
	SymbolExternalReference
	SymbolEntry
)

var symbolKindNames = map[SymbolKind]string{
	SymbolCode:              "code",
	SymbolData:              "data",
	SymbolExternal:          "external",
	SymbolExternalReference: "external reference",
	SymbolEntry:             "entry",
}

func (k SymbolKind) String() string {
	if name, ok := symbolKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// isPrimary reports whether the kind defines a name rather than
// annotating one. At most one primary entry may exist per name.
func (k SymbolKind) isPrimary() bool {
	return k == SymbolCode || k == SymbolData || k == SymbolExternal
}

// Symbol is one (name, value, kind) entry
type Symbol struct {
	Name  string
	Value int32
	Kind  SymbolKind
}

// SymbolTable is an ordered collection of symbols, kept ascending by
// value so output emission can walk it directly.
type SymbolTable struct {
	symbols []*Symbol
}

// NewSymbolTable creates an empty symbol table
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make([]*Symbol, 0)}
}

// Insert adds a symbol, enforcing the table invariants: a single
// primary entry per name, no entry promotion of an external, and an
// entry promotion only for a defined code or data symbol.
func (st *SymbolTable) Insert(name string, value int32, kind SymbolKind) error {
	switch {
	case kind.isPrimary():
		if existing, ok := st.Lookup(name, SymbolCode, SymbolData, SymbolExternal); ok {
			return fmt.Errorf("symbol %q already defined as %s", name, existing.Kind)
		}
		if kind == SymbolExternal {
			if _, ok := st.Lookup(name, SymbolEntry); ok {
				return fmt.Errorf("symbol %q is declared entry and cannot be external", name)
			}
		}

	case kind == SymbolEntry:
		if _, ok := st.Lookup(name, SymbolExternal); ok {
			return fmt.Errorf("symbol %q is external and cannot be entry", name)
		}
		if _, ok := st.Lookup(name, SymbolCode, SymbolData); !ok {
			return fmt.Errorf("entry symbol %q is not defined", name)
		}
		if _, ok := st.Lookup(name, SymbolEntry); ok {
			return nil // already promoted
		}
	}

	sym := &Symbol{Name: name, Value: value, Kind: kind}
	i := sort.Search(len(st.symbols), func(i int) bool {
		return st.symbols[i].Value > value
	})
	st.symbols = append(st.symbols, nil)
	copy(st.symbols[i+1:], st.symbols[i:])
	st.symbols[i] = sym
	return nil
}

// Lookup finds the first symbol with the given name whose kind is one
// of kinds; with no kinds given, any kind matches.
func (st *SymbolTable) Lookup(name string, kinds ...SymbolKind) (*Symbol, bool) {
	for _, sym := range st.symbols {
		if sym.Name != name {
			continue
		}
		if len(kinds) == 0 {
			return sym, true
		}
		for _, kind := range kinds {
			if sym.Kind == kind {
				return sym, true
			}
		}
	}
	return nil, false
}

// AddToKind adds offset to the value of every symbol of the given kind
func (st *SymbolTable) AddToKind(kind SymbolKind, offset int32) {
	for _, sym := range st.symbols {
		if sym.Kind == kind {
			sym.Value += offset
		}
	}
	sort.SliceStable(st.symbols, func(i, j int) bool {
		return st.symbols[i].Value < st.symbols[j].Value
	})
}

// ByKind returns all symbols of the given kind in ascending value order
func (st *SymbolTable) ByKind(kind SymbolKind) []*Symbol {
	matched := make([]*Symbol, 0)
	for _, sym := range st.symbols {
		if sym.Kind == kind {
			matched = append(matched, sym)
		}
	}
	return matched
}

// Len returns the number of entries in the table
func (st *SymbolTable) Len() int {
	return len(st.symbols)
}
