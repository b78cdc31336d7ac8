package compiler

import (
	"fmt"

	"github.com/M-Haseeb01/CC-Project/ast"
	"github.com/M-Haseeb01/CC-Project/token"
	"tinygo.org/x/go-llvm"
)

// Compiler lowers an AST into an LLVM module. It accumulates
// diagnostics instead of stopping at the first failure so one pass
// reports everything it can.
type Compiler struct {
	Context llvm.Context
	Module  llvm.Module
	builder llvm.Builder

	// globals holds function symbols and module-level variables.
	// scope is the innermost scope at the current compile point.
	globals *SymbolTable
	scope   *SymbolTable

	// function is the function currently being emitted into. It is a
	// nil value outside any function body.
	function llvm.Value

	// piped is the value most recently threaded in by a pipeline, nil
	// when no pipeline is active.
	piped *Symbol

	// loopInc and loopExit are the active loop's continue and break
	// targets. They nest with the loops themselves and are nil values
	// outside any loop.
	loopInc  llvm.BasicBlock
	loopExit llvm.BasicBlock

	formatCounter int

	Errors []*token.CompileError
}

func NewCompiler(ctx llvm.Context, moduleName string) *Compiler {
	c := &Compiler{
		Context: ctx,
		Module:  ctx.NewModule(moduleName),
		builder: ctx.NewBuilder(),
	}
	c.globals = NewSymbolTable(nil)
	c.scope = c.globals
	return c
}

func (c *Compiler) Dispose() {
	c.builder.Dispose()
}

func (c *Compiler) errorf(at token.Token, format string, args ...interface{}) {
	c.Errors = append(c.Errors, &token.CompileError{
		Token: at,
		Msg:   fmt.Sprintf(format, args...),
	})
}

func (c *Compiler) ConstI32(val int64) llvm.Value {
	return llvm.ConstInt(c.Context.Int32Type(), uint64(val), true)
}

func (c *Compiler) mapToLLVMType(t Type) llvm.Type {
	switch typ := t.(type) {
	case Int:
		return c.Context.IntType(int(typ.Width))
	case Float:
		if typ.Width == 32 {
			return c.Context.FloatType()
		}
		return c.Context.DoubleType()
	case Str:
		return llvm.PointerType(c.Context.Int8Type(), 0)
	case Ptr:
		return llvm.PointerType(c.mapToLLVMType(typ.Elem), 0)
	case Func:
		params := make([]llvm.Type, typ.ParamCount)
		for i := range params {
			params[i] = c.Context.Int32Type()
		}
		return llvm.FunctionType(c.Context.Int32Type(), params, false)
	}
	panic("cannot map type " + t.String())
}

func (c *Compiler) setInstAlignment(inst llvm.Value, t Type) {
	switch typ := t.(type) {
	case Int:
		if typ.Width == 1 {
			inst.SetAlignment(1)
			return
		}
		inst.SetAlignment(int(typ.Width >> 3))
	case Float:
		inst.SetAlignment(int(typ.Width >> 3))
	case Str, Ptr:
		inst.SetAlignment(8)
	}
}

// createEntryBlockAlloca creates an alloca in the entry block of the
// current function so that mem2reg can promote it.
func (c *Compiler) createEntryBlockAlloca(t llvm.Type, name string) llvm.Value {
	curBlock := c.builder.GetInsertBlock()
	fn := curBlock.Parent()
	entry := fn.EntryBasicBlock()

	tmpBuilder := c.Context.NewBuilder()
	defer tmpBuilder.Dispose()
	if firstInst := entry.FirstInstruction(); !firstInst.IsNil() {
		tmpBuilder.SetInsertPointBefore(firstInst)
	} else {
		tmpBuilder.SetInsertPointAtEnd(entry)
	}
	return tmpBuilder.CreateAlloca(t, name)
}

func (c *Compiler) createStore(val, ptr llvm.Value, t Type) {
	store := c.builder.CreateStore(val, ptr)
	c.setInstAlignment(store, t)
}

func (c *Compiler) createLoad(ptr llvm.Value, t Type, name string) llvm.Value {
	load := c.builder.CreateLoad(c.mapToLLVMType(t), ptr, name)
	c.setInstAlignment(load, t)
	return load
}

// blockTerminated reports whether the builder's current block already
// ends in a terminator, in which case no further instructions may be
// appended to it.
func (c *Compiler) blockTerminated() bool {
	block := c.builder.GetInsertBlock()
	if block.IsNil() {
		return false
	}
	last := block.LastInstruction()
	if last.IsNil() {
		return false
	}
	switch last.InstructionOpcode() {
	case llvm.Ret, llvm.Br, llvm.Switch, llvm.IndirectBr, llvm.Invoke, llvm.Unreachable:
		return true
	}
	return false
}

// toBool narrows a value to i1 for use as a branch condition. Anything
// nonzero counts as true.
func (c *Compiler) toBool(sym *Symbol, name string) llvm.Value {
	if intType, ok := sym.Type.(Int); ok && intType.Width == 1 {
		return sym.Val
	}
	if sym.Type.Kind() == FloatKind {
		return c.builder.CreateFCmp(llvm.FloatONE, sym.Val, llvm.ConstNull(sym.Val.Type()), name)
	}
	return c.builder.CreateICmp(llvm.IntNE, sym.Val, llvm.ConstNull(sym.Val.Type()), name)
}

// compileExpression dispatches on the node kind and returns the
// compiled value, or nil when the node produced no value. A nil result
// with no appended error means the failure was already reported.
func (c *Compiler) compileExpression(node ast.Node) *Symbol {
	if node == nil {
		return nil
	}
	switch n := node.(type) {
	case *ast.IntegerLiteral:
		return &Symbol{Val: c.ConstI32(n.Value), Type: I32}
	case *ast.Identifier:
		return c.compileIdentifier(n)
	case *ast.InfixExpression:
		return c.compileInfixExpression(n)
	case *ast.PrefixExpression:
		return c.compilePrefixExpression(n)
	case *ast.Assignment:
		return c.compileAssignment(n)
	case *ast.CallExpression:
		return c.compileCall(n, nil)
	case *ast.Pipeline:
		return c.compilePipeline(n)
	case *ast.IfElse:
		return c.compileIfElse(n)
	case *ast.PrintCall:
		return c.compilePrintCall(n)
	case *ast.RangeLiteral:
		return c.compileRangeLiteral(n)
	case *ast.StatementList:
		c.compileStatementList(n)
		return nil
	}
	c.errorf(node.Tok(), "node is not a recognized expression")
	return nil
}

func (c *Compiler) compileIdentifier(ident *ast.Identifier) *Symbol {
	sym, ok := c.scope.Lookup(ident.Name)
	if !ok {
		c.errorf(ident.Token, "Undeclared identifier '%s'.", ident.Name)
		return nil
	}
	if ptrType, ok := sym.Type.(Ptr); ok {
		loaded := c.createLoad(sym.Val, ptrType.Elem, ident.Name)
		return &Symbol{Val: loaded, Type: ptrType.Elem}
	}
	return sym
}

func (c *Compiler) compileAssignment(assign *ast.Assignment) *Symbol {
	val := c.compileExpression(assign.Value)
	if val == nil {
		c.errorf(assign.Token, "Error evaluating value for assignment to '%s'.", assign.Name)
		return nil
	}

	sym, ok := c.scope.Lookup(assign.Name)
	if !ok {
		// First assignment declares the variable in the current scope.
		llvmType := c.mapToLLVMType(val.Type)
		var storage llvm.Value
		if !c.function.IsNil() {
			storage = c.createEntryBlockAlloca(llvmType, assign.Name)
		} else {
			global := llvm.AddGlobal(c.Module, llvmType, assign.Name)
			global.SetInitializer(llvm.ConstNull(llvmType))
			storage = global
		}
		c.scope.Define(assign.Name, &Symbol{Val: storage, Type: Ptr{Elem: val.Type}})
		c.createStore(val.Val, storage, val.Type)
		return val
	}

	ptrType, isPtr := sym.Type.(Ptr)
	if !isPtr {
		c.errorf(assign.Token, "Cannot assign to '%s': not a variable.", assign.Name)
		return nil
	}
	if !TypeEqual(ptrType.Elem, val.Type) {
		c.errorf(assign.Token, "Type mismatch in assignment to '%s'. Expected %s, got %s.", assign.Name, ptrType.Elem, val.Type)
		return nil
	}
	c.createStore(val.Val, sym.Val, val.Type)
	return val
}

// compileStatementList lowers statements in order. Statements after a
// terminator are unreachable and skipped; a return statement ends the
// list.
func (c *Compiler) compileStatementList(list *ast.StatementList) {
	if list == nil {
		return
	}
	for _, stmt := range list.Statements {
		if c.blockTerminated() {
			return
		}
		switch s := stmt.(type) {
		case *ast.FunctionDef:
			c.compileFunctionDef(s)
		case *ast.Return:
			c.compileReturn(s)
			return
		case *ast.ForLoop:
			c.compileForLoop(s, s.Range)
		case *ast.StatementList:
			c.compileStatementList(s)
		default:
			c.compileExpression(stmt)
		}
	}
}

func (c *Compiler) compileReturn(ret *ast.Return) {
	if c.function.IsNil() {
		c.errorf(ret.Token, "Return statement found outside of a function.")
		return
	}
	if ret.Value == nil {
		c.builder.CreateRet(c.ConstI32(0))
		return
	}
	val := c.compileExpression(ret.Value)
	if val == nil {
		c.errorf(ret.Token, "Error evaluating return value.")
		return
	}
	c.builder.CreateRet(val.Val)
}

// compileRangeLiteral evaluates the bounds for their side effects. A
// range yields no value of its own outside a for loop.
func (c *Compiler) compileRangeLiteral(rangeLit *ast.RangeLiteral) *Symbol {
	start := c.compileExpression(rangeLit.Start)
	end := c.compileExpression(rangeLit.End)
	if start == nil || end == nil {
		c.errorf(rangeLit.Token, "Error evaluating start/end expressions within range.")
	}
	return nil
}

func (c *Compiler) compilePrintCall(printCall *ast.PrintCall) *Symbol {
	var arg *Symbol
	switch {
	case printCall.Expression != nil:
		arg = c.compileExpression(printCall.Expression)
		if arg == nil {
			c.errorf(printCall.Token, "Error evaluating argument for print().")
			return nil
		}
	case c.piped != nil:
		arg = c.piped
	default:
		c.errorf(printCall.Token, "print() called with no argument (neither explicit nor piped).")
		return nil
	}

	fnType, fn := c.GetCFunc(PRINTF)
	var format string
	val := arg.Val
	switch argType := arg.Type.(type) {
	case Int:
		format = "%d\n"
	case Float:
		format = "%f\n"
		if argType.Width == 32 {
			val = c.builder.CreateFPExt(val, c.Context.DoubleType(), "toDouble")
		}
	case Str:
		format = "%s\n"
	default:
		fmtPtr := c.createPrintFormatGlobal("Value(type_unhandled_by_print)\n")
		call := c.builder.CreateCall(fnType, fn, []llvm.Value{fmtPtr}, "printtmp")
		return &Symbol{Val: call, Type: I32}
	}

	fmtPtr := c.createPrintFormatGlobal(format)
	call := c.builder.CreateCall(fnType, fn, []llvm.Value{fmtPtr, val}, "printtmp")
	return &Symbol{Val: call, Type: I32}
}

func (c *Compiler) createPrintFormatGlobal(format string) llvm.Value {
	formatStr := c.Context.ConstString(format, true)
	globalName := fmt.Sprintf("printf_fmt_%d", c.formatCounter)
	c.formatCounter++

	arrayType := llvm.ArrayType(c.Context.Int8Type(), len(format)+1)
	formatGlobal := llvm.AddGlobal(c.Module, arrayType, globalName)
	formatGlobal.SetInitializer(formatStr)
	formatGlobal.SetGlobalConstant(true)
	formatGlobal.SetLinkage(llvm.PrivateLinkage)

	zero := llvm.ConstInt(c.Context.Int32Type(), 0, false)
	return c.builder.CreateGEP(arrayType, formatGlobal, []llvm.Value{zero, zero}, "fmt_ptr")
}

// GenerateIR returns the textual IR of the compiled module.
func (c *Compiler) GenerateIR() string {
	return c.Module.String()
}
