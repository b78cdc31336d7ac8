package compiler

import (
	"github.com/M-Haseeb01/CC-Project/ast"
	"tinygo.org/x/go-llvm"
)

type opFunc func(c *Compiler, left, right *Symbol) *Symbol

// intOps lowers the binary operators over integer operands.
// Comparisons yield i1, arithmetic keeps the operand width.
var intOps = map[string]opFunc{
	"+": func(c *Compiler, l, r *Symbol) *Symbol {
		return &Symbol{Val: c.builder.CreateAdd(l.Val, r.Val, "addtmp"), Type: l.Type}
	},
	"-": func(c *Compiler, l, r *Symbol) *Symbol {
		return &Symbol{Val: c.builder.CreateSub(l.Val, r.Val, "subtmp"), Type: l.Type}
	},
	"*": func(c *Compiler, l, r *Symbol) *Symbol {
		return &Symbol{Val: c.builder.CreateMul(l.Val, r.Val, "multmp"), Type: l.Type}
	},
	"/": func(c *Compiler, l, r *Symbol) *Symbol {
		return &Symbol{Val: c.builder.CreateSDiv(l.Val, r.Val, "divtmp"), Type: l.Type}
	},
	"<": func(c *Compiler, l, r *Symbol) *Symbol {
		return &Symbol{Val: c.builder.CreateICmp(llvm.IntSLT, l.Val, r.Val, "lttmp"), Type: I1}
	},
	">": func(c *Compiler, l, r *Symbol) *Symbol {
		return &Symbol{Val: c.builder.CreateICmp(llvm.IntSGT, l.Val, r.Val, "gttmp"), Type: I1}
	},
	"<=": func(c *Compiler, l, r *Symbol) *Symbol {
		return &Symbol{Val: c.builder.CreateICmp(llvm.IntSLE, l.Val, r.Val, "ltetmp"), Type: I1}
	},
	">=": func(c *Compiler, l, r *Symbol) *Symbol {
		return &Symbol{Val: c.builder.CreateICmp(llvm.IntSGE, l.Val, r.Val, "gtetmp"), Type: I1}
	},
	"==": func(c *Compiler, l, r *Symbol) *Symbol {
		return &Symbol{Val: c.builder.CreateICmp(llvm.IntEQ, l.Val, r.Val, "eqtmp"), Type: I1}
	},
	"!=": func(c *Compiler, l, r *Symbol) *Symbol {
		return &Symbol{Val: c.builder.CreateICmp(llvm.IntNE, l.Val, r.Val, "neqtmp"), Type: I1}
	},
}

func (c *Compiler) compileInfixExpression(infix *ast.InfixExpression) *Symbol {
	switch infix.Operator {
	case "&&":
		return c.compileLogicalAnd(infix)
	case "||":
		return c.compileLogicalOr(infix)
	}

	left := c.compileExpression(infix.Left)
	right := c.compileExpression(infix.Right)
	if left == nil || right == nil {
		c.errorf(infix.Token, "Error in operand(s) for binary operation '%s'.", infix.Operator)
		return nil
	}
	op, ok := intOps[infix.Operator]
	if !ok {
		c.errorf(infix.Token, "Unknown binary operator '%s'.", infix.Operator)
		return nil
	}
	if left.Type.Kind() != IntKind || right.Type.Kind() != IntKind {
		c.errorf(infix.Token, "Operator '%s' requires integer operands, got %s and %s.", infix.Operator, left.Type, right.Type)
		return nil
	}
	left, right = c.widenOperands(left, right)
	return op(c, left, right)
}

// widenOperands zero-extends the narrower integer operand so i1
// results participate in arithmetic as 0 or 1.
func (c *Compiler) widenOperands(left, right *Symbol) (*Symbol, *Symbol) {
	lw := left.Type.(Int).Width
	rw := right.Type.(Int).Width
	if lw == rw {
		return left, right
	}
	if lw < rw {
		widened := c.builder.CreateZExt(left.Val, c.mapToLLVMType(right.Type), "zexttmp")
		return &Symbol{Val: widened, Type: right.Type}, right
	}
	widened := c.builder.CreateZExt(right.Val, c.mapToLLVMType(left.Type), "zexttmp")
	return left, &Symbol{Val: widened, Type: left.Type}
}

func (c *Compiler) compilePrefixExpression(prefix *ast.PrefixExpression) *Symbol {
	operand := c.compileExpression(prefix.Operand)
	if operand == nil {
		c.errorf(prefix.Token, "Error in operand for unary operation '%s'.", prefix.Operator)
		return nil
	}
	switch prefix.Operator {
	case "!":
		result := c.builder.CreateICmp(llvm.IntEQ, operand.Val, llvm.ConstNull(operand.Val.Type()), "nottmp")
		return &Symbol{Val: result, Type: I1}
	case "-":
		return &Symbol{Val: c.builder.CreateNeg(operand.Val, "negtmp"), Type: operand.Type}
	}
	c.errorf(prefix.Token, "Unknown unary operator '%s'.", prefix.Operator)
	return nil
}

// compileLogicalAnd lowers && with short-circuit evaluation. The right
// operand is emitted into its own block that only runs when the left
// operand is true; a phi in the merge block selects the result. The
// incoming block for the right value is captured after emitting it,
// since emission may end in a different block than it started in.
func (c *Compiler) compileLogicalAnd(infix *ast.InfixExpression) *Symbol {
	left := c.compileExpression(infix.Left)
	if left == nil {
		c.errorf(infix.Token, "Error in left operand of '&&'.")
		return nil
	}
	leftBool := c.toBool(left, "tobool.l")
	leftEnd := c.builder.GetInsertBlock()
	fn := leftEnd.Parent()

	evalRight := c.Context.AddBasicBlock(fn, "and.rhs")
	merge := c.Context.AddBasicBlock(fn, "and.merge")
	c.builder.CreateCondBr(leftBool, evalRight, merge)

	c.builder.SetInsertPointAtEnd(evalRight)
	rightBool := llvm.ConstInt(c.Context.Int1Type(), 0, false)
	if right := c.compileExpression(infix.Right); right != nil {
		rightBool = c.toBool(right, "tobool.r")
	} else {
		c.errorf(infix.Token, "Error in right operand of '&&'.")
	}
	rightEnd := c.builder.GetInsertBlock()
	c.builder.CreateBr(merge)

	c.builder.SetInsertPointAtEnd(merge)
	phi := c.builder.CreatePHI(c.Context.Int1Type(), "and.result")
	phi.AddIncoming(
		[]llvm.Value{llvm.ConstInt(c.Context.Int1Type(), 0, false), rightBool},
		[]llvm.BasicBlock{leftEnd, rightEnd},
	)
	return &Symbol{Val: phi, Type: I1}
}

// compileLogicalOr mirrors compileLogicalAnd with the branch sense
// inverted: the right operand only runs when the left is false.
func (c *Compiler) compileLogicalOr(infix *ast.InfixExpression) *Symbol {
	left := c.compileExpression(infix.Left)
	if left == nil {
		c.errorf(infix.Token, "Error in left operand of '||'.")
		return nil
	}
	leftBool := c.toBool(left, "tobool.l")
	leftEnd := c.builder.GetInsertBlock()
	fn := leftEnd.Parent()

	evalRight := c.Context.AddBasicBlock(fn, "or.rhs")
	merge := c.Context.AddBasicBlock(fn, "or.merge")
	c.builder.CreateCondBr(leftBool, merge, evalRight)

	c.builder.SetInsertPointAtEnd(evalRight)
	rightBool := llvm.ConstInt(c.Context.Int1Type(), 0, false)
	if right := c.compileExpression(infix.Right); right != nil {
		rightBool = c.toBool(right, "tobool.r")
	} else {
		c.errorf(infix.Token, "Error in right operand of '||'.")
	}
	rightEnd := c.builder.GetInsertBlock()
	c.builder.CreateBr(merge)

	c.builder.SetInsertPointAtEnd(merge)
	phi := c.builder.CreatePHI(c.Context.Int1Type(), "or.result")
	phi.AddIncoming(
		[]llvm.Value{llvm.ConstInt(c.Context.Int1Type(), 1, false), rightBool},
		[]llvm.BasicBlock{leftEnd, rightEnd},
	)
	return &Symbol{Val: phi, Type: I1}
}
