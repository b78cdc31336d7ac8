package compiler

import "tinygo.org/x/go-llvm"

const PRINTF = "printf"

// GetFnType returns the llvm signature of a supported C library
// function.
func (c *Compiler) GetFnType(fnName string) llvm.Type {
	switch fnName {
	case PRINTF:
		i8Ptr := llvm.PointerType(c.Context.Int8Type(), 0)
		return llvm.FunctionType(c.Context.Int32Type(), []llvm.Type{i8Ptr}, true)
	}
	panic("unknown C function " + fnName)
}

// GetCFunc declares fnName in the module on first use and returns the
// existing declaration afterwards.
func (c *Compiler) GetCFunc(fnName string) (llvm.Type, llvm.Value) {
	fnType := c.GetFnType(fnName)
	fn := c.Module.NamedFunction(fnName)
	if fn.IsNil() {
		fn = llvm.AddFunction(c.Module, fnName, fnType)
	}
	return fnType, fn
}
