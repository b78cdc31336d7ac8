package compiler

import (
	"github.com/M-Haseeb01/CC-Project/ast"
	"tinygo.org/x/go-llvm"
)

// compileFunctionDef emits a function and registers it in the global
// scope before lowering the body, so recursive calls resolve. The
// body compiles in a fresh scope chained to the globals only. The
// generator state (current function, scope, insert point) is restored
// afterwards even when the body fails.
func (c *Compiler) compileFunctionDef(funcDef *ast.FunctionDef) *Symbol {
	paramCount := len(funcDef.Params)
	params := make([]llvm.Type, paramCount)
	for i := range params {
		params[i] = c.Context.Int32Type()
	}
	fnType := llvm.FunctionType(c.Context.Int32Type(), params, false)
	fn := llvm.AddFunction(c.Module, funcDef.Name, fnType)

	fnSym := &Symbol{Val: fn, Type: Func{Name: funcDef.Name, ParamCount: paramCount}}
	c.globals.Define(funcDef.Name, fnSym)

	prevBlock := c.builder.GetInsertBlock()
	prevFn := c.function
	prevScope := c.scope
	defer func() {
		c.function = prevFn
		c.scope = prevScope
		if prevBlock.IsNil() {
			c.builder.ClearInsertionPoint()
		} else {
			c.builder.SetInsertPointAtEnd(prevBlock)
		}
	}()

	c.function = fn
	c.scope = NewSymbolTable(c.globals)

	entry := c.Context.AddBasicBlock(fn, "entry")
	c.builder.SetInsertPointAtEnd(entry)

	for i, name := range funcDef.Params {
		param := fn.Param(i)
		param.SetName(name)
		alloca := c.builder.CreateAlloca(c.Context.Int32Type(), name)
		c.createStore(param, alloca, I32)
		c.scope.Define(name, &Symbol{Val: alloca, Type: Ptr{Elem: I32}, IsParam: true})
	}

	c.compileStatementList(funcDef.Body)
	if !c.blockTerminated() {
		c.builder.CreateRet(c.ConstI32(0))
	}

	if llvm.VerifyFunction(fn, llvm.ReturnStatusAction) != nil {
		c.errorf(funcDef.Token, "Function '%s' failed verification.", funcDef.Name)
	}
	return fnSym
}

// compileCall lowers a function call. When piped is non-nil it becomes
// the implicit first argument and counts toward the arity check.
// Functions resolve against the global scope only, local variables
// never shadow them.
func (c *Compiler) compileCall(call *ast.CallExpression, piped *Symbol) *Symbol {
	sym, ok := c.globals.Lookup(call.Name)
	if !ok {
		c.errorf(call.Token, "Call to undefined function '%s'.", call.Name)
		return nil
	}
	fnType, isFunc := sym.Type.(Func)
	if !isFunc {
		c.errorf(call.Token, "'%s' is not a function.", call.Name)
		return nil
	}

	given := len(call.Arguments)
	if piped != nil {
		given++
	}
	if given != fnType.ParamCount {
		c.errorf(call.Token, "Incorrect number of arguments for function '%s'. Expected %d, got %d.", call.Name, fnType.ParamCount, given)
		return nil
	}

	args := make([]llvm.Value, 0, given)
	if piped != nil {
		args = append(args, piped.Val)
	}
	for i, argNode := range call.Arguments {
		arg := c.compileExpression(argNode)
		if arg == nil {
			c.errorf(argNode.Tok(), "Error evaluating argument %d for function '%s'.", i+1, call.Name)
			return nil
		}
		args = append(args, arg.Val)
	}

	result := c.builder.CreateCall(c.mapToLLVMType(fnType), sym.Val, args, "calltmp")
	return &Symbol{Val: result, Type: I32}
}
