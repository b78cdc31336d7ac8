package compiler

import "tinygo.org/x/go-llvm"

// Symbol binds a name to its compiled LLVM value. Variables hold the
// address of their storage slot and carry a Ptr type; function symbols
// hold the llvm function value directly.
type Symbol struct {
	Val     llvm.Value
	Type    Type
	IsParam bool
}

// SymbolTable is one lexical scope. Lookups walk outward through the
// parent chain; definitions always land in the innermost scope, so an
// inner definition shadows an outer one without disturbing it.
type SymbolTable struct {
	parent  *SymbolTable
	symbols map[string]*Symbol
}

func NewSymbolTable(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{
		parent:  parent,
		symbols: make(map[string]*Symbol),
	}
}

func (st *SymbolTable) Parent() *SymbolTable {
	return st.parent
}

// Define inserts sym into this scope. Redefining a name replaces the
// earlier binding in this scope only.
func (st *SymbolTable) Define(name string, sym *Symbol) {
	st.symbols[name] = sym
}

// Lookup resolves name against this scope and then each enclosing
// scope in turn, returning the innermost binding.
func (st *SymbolTable) Lookup(name string) (*Symbol, bool) {
	for s := st; s != nil; s = s.parent {
		if sym, ok := s.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// LookupLocal resolves name in this scope alone, ignoring parents.
func (st *SymbolTable) LookupLocal(name string) (*Symbol, bool) {
	sym, ok := st.symbols[name]
	return sym, ok
}
