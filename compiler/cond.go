package compiler

import (
	"github.com/M-Haseeb01/CC-Project/ast"
	"tinygo.org/x/go-llvm"
)

// compileIfElse lowers a conditional statement. Both branches join at
// a merge block; a branch that already terminated (via return) does
// not jump to the merge. The conditional yields no value.
func (c *Compiler) compileIfElse(ifElse *ast.IfElse) *Symbol {
	if c.function.IsNil() {
		c.errorf(ifElse.Token, "If statement found outside of a function.")
		return nil
	}
	cond := c.compileExpression(ifElse.Condition)
	if cond == nil {
		c.errorf(ifElse.Token, "Error evaluating if condition.")
		return nil
	}
	condBool := c.toBool(cond, "ifcond")

	fn := c.builder.GetInsertBlock().Parent()
	thenBlock := c.Context.AddBasicBlock(fn, "then")
	var elseBlock llvm.BasicBlock
	if ifElse.Else != nil {
		elseBlock = c.Context.AddBasicBlock(fn, "else")
	}
	merge := c.Context.AddBasicBlock(fn, "ifcont")

	if ifElse.Else != nil {
		c.builder.CreateCondBr(condBool, thenBlock, elseBlock)
	} else {
		c.builder.CreateCondBr(condBool, thenBlock, merge)
	}

	c.builder.SetInsertPointAtEnd(thenBlock)
	c.compileStatementList(ifElse.Then)
	if !c.blockTerminated() {
		c.builder.CreateBr(merge)
	}

	if ifElse.Else != nil {
		c.builder.SetInsertPointAtEnd(elseBlock)
		c.compileStatementList(ifElse.Else)
		if !c.blockTerminated() {
			c.builder.CreateBr(merge)
		}
	}

	c.builder.SetInsertPointAtEnd(merge)
	return nil
}
