package compiler

import (
	"github.com/M-Haseeb01/CC-Project/ast"
	"github.com/M-Haseeb01/CC-Project/token"
	"tinygo.org/x/go-llvm"
)

// ScriptCompiler wraps a program's top-level statements in a main
// function and drives the module-level lowering.
type ScriptCompiler struct {
	Compiler *Compiler
	Program  ast.Node
}

func NewScriptCompiler(ctx llvm.Context, moduleName string, program ast.Node) *ScriptCompiler {
	return &ScriptCompiler{
		Compiler: NewCompiler(ctx, moduleName),
		Program:  program,
	}
}

// Compile lowers the program into the module and returns the
// accumulated diagnostics. A malformed root still produces a runnable
// module whose main reports failure with exit code 1. Module
// verification failures are reported as diagnostics, the textual IR
// stays available for inspection either way.
func (sc *ScriptCompiler) Compile() []*token.CompileError {
	c := sc.Compiler

	mainType := llvm.FunctionType(c.Context.Int32Type(), nil, false)
	mainFn := llvm.AddFunction(c.Module, "main", mainType)

	root, ok := sc.Program.(*ast.StatementList)
	if !ok {
		c.errorf(token.Token{}, "Program root is not a statement list, cannot generate code.")
		errBlock := c.Context.AddBasicBlock(mainFn, "main_ast_error")
		c.builder.SetInsertPointAtEnd(errBlock)
		c.builder.CreateRet(c.ConstI32(1))
		return c.Errors
	}

	entry := c.Context.AddBasicBlock(mainFn, "main_script_entry")
	c.builder.SetInsertPointAtEnd(entry)

	prevScope := c.scope
	c.function = mainFn
	c.scope = NewSymbolTable(c.globals)

	c.compileStatementList(root)
	if !c.blockTerminated() {
		c.builder.CreateRet(c.ConstI32(0))
	}

	c.function = llvm.Value{}
	c.scope = prevScope

	if err := llvm.VerifyModule(c.Module, llvm.ReturnStatusAction); err != nil {
		c.errorf(token.Token{}, "Module verification failed: %v", err)
	}
	return c.Errors
}

func (sc *ScriptCompiler) GenerateIR() string {
	return sc.Compiler.GenerateIR()
}
