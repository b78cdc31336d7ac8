package compiler

import (
	"github.com/M-Haseeb01/CC-Project/ast"
)

// compileForLoop lowers a counted loop over rangeNode, which must be a
// range literal. The range is passed in explicitly so a pipeline can
// supply its left side as the loop source without mutating the AST.
//
// The loop uses four blocks: loop.cond tests the counter against the
// end bound, loop.body runs the statements, loop.inc advances the
// counter, and loop.end receives control when the range is exhausted.
// Bounds are evaluated once, before the loop entry. The end bound is
// exclusive.
func (c *Compiler) compileForLoop(forLoop *ast.ForLoop, rangeNode ast.Node) *Symbol {
	if c.function.IsNil() {
		c.errorf(forLoop.Token, "For loop found outside of a function.")
		return nil
	}
	rangeLit, ok := rangeNode.(*ast.RangeLiteral)
	if !ok {
		c.errorf(forLoop.Token, "For loop requires a range (start..end) as its source.")
		return nil
	}

	start := c.compileExpression(rangeLit.Start)
	end := c.compileExpression(rangeLit.End)
	if start == nil || end == nil {
		c.errorf(rangeLit.Token, "Error evaluating start/end expressions within range.")
		return nil
	}

	varName := forLoop.VarName()
	counter := c.createEntryBlockAlloca(c.Context.Int32Type(), varName)

	prevScope := c.scope
	c.scope = NewSymbolTable(prevScope)
	defer func() { c.scope = prevScope }()
	c.scope.Define(varName, &Symbol{Val: counter, Type: Ptr{Elem: I32}})

	c.createStore(start.Val, counter, I32)

	fn := c.builder.GetInsertBlock().Parent()
	condBlock := c.Context.AddBasicBlock(fn, "loop.cond")
	bodyBlock := c.Context.AddBasicBlock(fn, "loop.body")
	incBlock := c.Context.AddBasicBlock(fn, "loop.inc")
	endBlock := c.Context.AddBasicBlock(fn, "loop.end")

	prevInc, prevExit := c.loopInc, c.loopExit
	c.loopInc, c.loopExit = incBlock, endBlock
	defer func() { c.loopInc, c.loopExit = prevInc, prevExit }()

	c.builder.CreateBr(condBlock)

	c.builder.SetInsertPointAtEnd(condBlock)
	current := c.createLoad(counter, I32, varName)
	cond := intOps["<"](c, &Symbol{Val: current, Type: I32}, end)
	c.builder.CreateCondBr(cond.Val, bodyBlock, endBlock)

	c.builder.SetInsertPointAtEnd(bodyBlock)
	bodyVal := c.createLoad(counter, I32, varName)
	prevPiped := c.piped
	c.piped = &Symbol{Val: bodyVal, Type: I32}
	c.compileStatementList(forLoop.Body)
	c.piped = prevPiped
	if !c.blockTerminated() {
		c.builder.CreateBr(incBlock)
	}

	c.builder.SetInsertPointAtEnd(incBlock)
	next := c.createLoad(counter, I32, varName)
	stepped := c.builder.CreateAdd(next, c.ConstI32(1), "nextval")
	c.createStore(stepped, counter, I32)
	c.builder.CreateBr(condBlock)

	c.builder.SetInsertPointAtEnd(endBlock)
	return nil
}
