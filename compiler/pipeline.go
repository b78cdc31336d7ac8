package compiler

import (
	"github.com/M-Haseeb01/CC-Project/ast"
)

// compilePipeline threads the left value into the right side. A call
// receives it as an implicit first argument; a conditional or print
// sees it through the ambient piped value; a for loop consumes the
// left side as its range directly, before any evaluation. A left side
// that yields no value (a range, or a failed expression) is published
// as absent and the right side lowers with its own diagnostics. The
// previous piped value is restored on exit so nested pipelines do not
// leak.
func (c *Compiler) compilePipeline(pipeline *ast.Pipeline) *Symbol {
	if forLoop, ok := pipeline.Right.(*ast.ForLoop); ok {
		return c.compileForLoop(forLoop, pipeline.Left)
	}

	left := c.compileExpression(pipeline.Left)

	prevPiped := c.piped
	c.piped = left
	defer func() { c.piped = prevPiped }()

	switch right := pipeline.Right.(type) {
	case *ast.CallExpression:
		return c.compileCall(right, left)
	case *ast.IfElse:
		return c.compileIfElse(right)
	case *ast.PrintCall:
		return c.compilePrintCall(right)
	}
	c.errorf(pipeline.Token, "Invalid operation on right side of pipeline.")
	return nil
}
