package compiler

import (
	"fmt"
	"strings"
)

type Kind int

const (
	IntKind Kind = iota
	FloatKind
	StrKind
	PtrKind
	FuncKind
)

// Type describes the language-level type of a compiled value. Storage
// slots carry Ptr so that loads and stores stay explicit in the
// generator instead of being inferred from LLVM value kinds.
type Type interface {
	Kind() Kind
	String() string
}

var (
	I1  = Int{Width: 1}
	I32 = Int{Width: 32}
)

type Int struct {
	Width uint32
}

func (i Int) Kind() Kind {
	return IntKind
}

func (i Int) String() string {
	return fmt.Sprintf("i%d", i.Width)
}

type Float struct {
	Width uint32
}

func (f Float) Kind() Kind {
	return FloatKind
}

func (f Float) String() string {
	return fmt.Sprintf("f%d", f.Width)
}

type Str struct{}

func (s Str) Kind() Kind {
	return StrKind
}

func (s Str) String() string {
	return "str"
}

// Ptr is the type of a storage slot holding an Elem value.
type Ptr struct {
	Elem Type
}

func (p Ptr) Kind() Kind {
	return PtrKind
}

func (p Ptr) String() string {
	return "ptr " + p.Elem.String()
}

// Func carries the signature of a defined function. Every function
// takes ParamCount integer arguments and returns an integer.
type Func struct {
	Name       string
	ParamCount int
}

func (f Func) Kind() Kind {
	return FuncKind
}

func (f Func) String() string {
	params := make([]string, f.ParamCount)
	for i := range params {
		params[i] = I32.String()
	}
	return fmt.Sprintf("func(%s) %s", strings.Join(params, ", "), I32.String())
}

func TypeEqual(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch at := a.(type) {
	case Int:
		return at.Width == b.(Int).Width
	case Float:
		return at.Width == b.(Float).Width
	case Str:
		return true
	case Ptr:
		return TypeEqual(at.Elem, b.(Ptr).Elem)
	case Func:
		bt := b.(Func)
		return at.Name == bt.Name && at.ParamCount == bt.ParamCount
	}
	return false
}
