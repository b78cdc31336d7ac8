package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopeLookupWalksOutward(t *testing.T) {
	global := NewSymbolTable(nil)
	inner := NewSymbolTable(global)

	global.Define("x", &Symbol{Type: I32})
	sym, ok := inner.Lookup("x")
	require.True(t, ok)
	require.Equal(t, I32, sym.Type)

	_, ok = inner.LookupLocal("x")
	require.False(t, ok)
}

func TestScopeShadowing(t *testing.T) {
	global := NewSymbolTable(nil)
	inner := NewSymbolTable(global)

	global.Define("x", &Symbol{Type: I32})
	inner.Define("x", &Symbol{Type: I1})

	sym, ok := inner.Lookup("x")
	require.True(t, ok)
	require.Equal(t, I1, sym.Type)

	// the outer binding is untouched
	sym, ok = global.Lookup("x")
	require.True(t, ok)
	require.Equal(t, I32, sym.Type)
}

func TestScopeRedefineReplacesInSameScope(t *testing.T) {
	scope := NewSymbolTable(nil)
	scope.Define("x", &Symbol{Type: I32})
	scope.Define("x", &Symbol{Type: I1})

	sym, ok := scope.Lookup("x")
	require.True(t, ok)
	require.Equal(t, I1, sym.Type)
}

func TestTypeEqual(t *testing.T) {
	require.True(t, TypeEqual(I32, Int{Width: 32}))
	require.False(t, TypeEqual(I32, I1))
	require.True(t, TypeEqual(Ptr{Elem: I32}, Ptr{Elem: I32}))
	require.False(t, TypeEqual(Ptr{Elem: I32}, Ptr{Elem: I1}))
	require.False(t, TypeEqual(I32, Ptr{Elem: I32}))
	require.True(t, TypeEqual(Func{Name: "f", ParamCount: 2}, Func{Name: "f", ParamCount: 2}))
	require.False(t, TypeEqual(Func{Name: "f", ParamCount: 2}, Func{Name: "f", ParamCount: 1}))
}
