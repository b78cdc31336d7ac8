package compiler

import (
	"strings"
	"testing"

	"github.com/M-Haseeb01/CC-Project/ast"
	"github.com/M-Haseeb01/CC-Project/token"
	"github.com/stretchr/testify/require"
	"tinygo.org/x/go-llvm"
)

func tok(t token.TokenType, lit string, line int) token.Token {
	return token.Token{Type: t, Literal: lit, Line: line}
}

func num(v int64, line int) *ast.IntegerLiteral {
	return &ast.IntegerLiteral{Token: tok(token.NUMBER, "", line), Value: v}
}

func ident(name string, line int) *ast.Identifier {
	return &ast.Identifier{Token: tok(token.IDENT, name, line), Name: name}
}

func infix(op string, left, right ast.Node, line int) *ast.InfixExpression {
	return &ast.InfixExpression{Token: tok(token.ILLEGAL, op, line), Operator: op, Left: left, Right: right}
}

func assign(name string, value ast.Node, line int) *ast.Assignment {
	return &ast.Assignment{Token: tok(token.ASSIGN, "=", line), Name: name, Value: value}
}

func program(stmts ...ast.Node) *ast.StatementList {
	list := ast.NewStatementList(token.Token{})
	for _, s := range stmts {
		list.Add(s)
	}
	return list
}

func compileProgram(t *testing.T, prog ast.Node) (string, []*token.CompileError) {
	t.Helper()
	ctx := llvm.NewContext()
	defer ctx.Dispose()
	sc := NewScriptCompiler(ctx, "test_module", prog)
	defer sc.Compiler.Dispose()
	errs := sc.Compile()
	return sc.GenerateIR(), errs
}

func TestArithmeticAndPrint(t *testing.T) {
	prog := program(
		assign("a", num(3, 1), 1),
		assign("b", num(4, 2), 2),
		&ast.Pipeline{
			Token: tok(token.PIPE, "|>", 3),
			Left:  infix("+", ident("a", 3), ident("b", 3), 3),
			Right: &ast.PrintCall{Token: tok(token.PRINT, "print", 3)},
		},
	)
	ir, errs := compileProgram(t, prog)
	require.Empty(t, errs)
	require.Contains(t, ir, "main_script_entry")
	require.Contains(t, ir, "addtmp")
	require.Contains(t, ir, "@printf")
	require.Contains(t, ir, `c"%d\0A\00"`)
	require.Contains(t, ir, "ret i32 0")
}

func TestFunctionDefAndPipelineCall(t *testing.T) {
	body := ast.NewStatementList(token.Token{})
	body.Add(&ast.Return{
		Token: tok(token.RETURN, "return", 2),
		Value: infix("+", ident("x", 2), ident("y", 2), 2),
	})
	prog := program(
		&ast.FunctionDef{
			Token:  tok(token.DEF, "def", 1),
			Name:   "add",
			Params: []string{"x", "y"},
			Body:   body,
		},
		&ast.Pipeline{
			Token: tok(token.PIPE, "|>", 4),
			Left: &ast.Pipeline{
				Token: tok(token.PIPE, "|>", 4),
				Left:  num(10, 4),
				Right: &ast.CallExpression{
					Token:     tok(token.IDENT, "add", 4),
					Name:      "add",
					Arguments: []ast.Node{num(5, 4)},
				},
			},
			Right: &ast.PrintCall{Token: tok(token.PRINT, "print", 4)},
		},
	)
	ir, errs := compileProgram(t, prog)
	require.Empty(t, errs)
	require.Contains(t, ir, "define i32 @add(i32 %x, i32 %y)")
	require.Contains(t, ir, "calltmp")
	require.Contains(t, ir, "call i32 @add(i32 10, i32 5)")
}

func TestUndefinedFunctionReportedOnce(t *testing.T) {
	prog := program(
		&ast.CallExpression{
			Token:     tok(token.IDENT, "foo", 1),
			Name:      "foo",
			Arguments: []ast.Node{num(1, 1)},
		},
	)
	_, errs := compileProgram(t, prog)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), "undefined function 'foo'")
	require.Contains(t, errs[0].Error(), "Line 1")
}

func TestArityMismatch(t *testing.T) {
	body := ast.NewStatementList(token.Token{})
	body.Add(&ast.Return{Token: tok(token.RETURN, "return", 1), Value: ident("x", 1)})
	prog := program(
		&ast.FunctionDef{Token: tok(token.DEF, "def", 1), Name: "id", Params: []string{"x"}, Body: body},
		&ast.CallExpression{
			Token:     tok(token.IDENT, "id", 2),
			Name:      "id",
			Arguments: []ast.Node{num(1, 2), num(2, 2)},
		},
	)
	_, errs := compileProgram(t, prog)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), "Incorrect number of arguments for function 'id'. Expected 1, got 2.")
}

func TestPipedArgumentCountsTowardArity(t *testing.T) {
	body := ast.NewStatementList(token.Token{})
	body.Add(&ast.Return{Token: tok(token.RETURN, "return", 1), Value: ident("x", 1)})
	prog := program(
		&ast.FunctionDef{Token: tok(token.DEF, "def", 1), Name: "id", Params: []string{"x"}, Body: body},
		&ast.Pipeline{
			Token: tok(token.PIPE, "|>", 2),
			Left:  num(7, 2),
			Right: &ast.CallExpression{Token: tok(token.IDENT, "id", 2), Name: "id"},
		},
	)
	ir, errs := compileProgram(t, prog)
	require.Empty(t, errs)
	require.Contains(t, ir, "call i32 @id(i32 7)")
}

func TestShortCircuitAnd(t *testing.T) {
	prog := program(
		assign("a", num(0, 1), 1),
		assign("b", num(1, 2), 2),
		assign("r", infix("&&", ident("a", 3), ident("b", 3), 3), 3),
	)
	ir, errs := compileProgram(t, prog)
	require.Empty(t, errs)
	require.Contains(t, ir, "and.rhs")
	require.Contains(t, ir, "and.merge")
	require.Contains(t, ir, "phi i1")
}

func TestShortCircuitOrRhsOnlyInOwnBlock(t *testing.T) {
	body := ast.NewStatementList(token.Token{})
	body.Add(&ast.Return{Token: tok(token.RETURN, "return", 1), Value: ident("x", 1)})
	prog := program(
		&ast.FunctionDef{Token: tok(token.DEF, "def", 1), Name: "id", Params: []string{"x"}, Body: body},
		assign("r", infix("||",
			num(1, 2),
			&ast.CallExpression{Token: tok(token.IDENT, "id", 2), Name: "id", Arguments: []ast.Node{num(1, 2)}},
			2), 2),
	)
	ir, errs := compileProgram(t, prog)
	require.Empty(t, errs)
	require.Contains(t, ir, "or.rhs")
	require.Contains(t, ir, "or.merge")

	// the guarded call must sit after the or.rhs label, not before it
	rhsIdx := strings.Index(ir, "or.rhs:")
	callIdx := strings.Index(ir, "call i32 @id")
	require.Greater(t, callIdx, rhsIdx)
}

func TestForLoopStructure(t *testing.T) {
	body := ast.NewStatementList(token.Token{})
	body.Add(&ast.PrintCall{Token: tok(token.PRINT, "print", 1)})
	prog := program(
		&ast.Pipeline{
			Token: tok(token.PIPE, "|>", 1),
			Left: &ast.RangeLiteral{
				Token: tok(token.RANGE, "..", 1),
				Start: num(1, 1),
				End:   num(5, 1),
			},
			Right: &ast.ForLoop{Token: tok(token.FOR, "for", 1), Body: body},
		},
	)
	ir, errs := compileProgram(t, prog)
	require.Empty(t, errs)
	require.Contains(t, ir, "loop.cond")
	require.Contains(t, ir, "loop.body")
	require.Contains(t, ir, "loop.inc")
	require.Contains(t, ir, "loop.end")
	require.Contains(t, ir, "icmp slt i32")
	require.Contains(t, ir, "nextval")
	// the loop variable is piped into print
	require.Contains(t, ir, `c"%d\0A\00"`)
}

func TestForLoopNamedVariable(t *testing.T) {
	body := ast.NewStatementList(token.Token{})
	body.Add(&ast.PrintCall{
		Token:      tok(token.PRINT, "print", 1),
		Expression: ident("i", 1),
	})
	prog := program(
		&ast.Pipeline{
			Token: tok(token.PIPE, "|>", 1),
			Left: &ast.RangeLiteral{
				Token: tok(token.RANGE, "..", 1),
				Start: num(0, 1),
				End:   num(3, 1),
			},
			Right: &ast.ForLoop{Token: tok(token.FOR, "for", 1), Var: "i", Body: body},
		},
	)
	ir, errs := compileProgram(t, prog)
	require.Empty(t, errs)
	require.Contains(t, ir, "%i")
}

func TestStatementsAfterReturnSkipped(t *testing.T) {
	body := ast.NewStatementList(token.Token{})
	body.Add(&ast.Return{Token: tok(token.RETURN, "return", 2), Value: num(1, 2)})
	body.Add(&ast.PrintCall{Token: tok(token.PRINT, "print", 3), Expression: num(2, 3)})
	prog := program(
		&ast.FunctionDef{Token: tok(token.DEF, "def", 1), Name: "f", Params: nil, Body: body},
	)
	ir, errs := compileProgram(t, prog)
	require.Empty(t, errs)
	require.NotContains(t, ir, "@printf")
	require.Contains(t, ir, "ret i32 1")
}

func TestIfElseBlocks(t *testing.T) {
	thenList := ast.NewStatementList(token.Token{})
	thenList.Add(&ast.PrintCall{Token: tok(token.PRINT, "print", 2), Expression: num(1, 2)})
	elseList := ast.NewStatementList(token.Token{})
	elseList.Add(&ast.PrintCall{Token: tok(token.PRINT, "print", 3), Expression: num(2, 3)})
	prog := program(
		assign("x", num(1, 1), 1),
		&ast.IfElse{
			Token:     tok(token.IF, "if", 2),
			Condition: infix("<", ident("x", 2), num(2, 2), 2),
			Then:      thenList,
			Else:      elseList,
		},
	)
	ir, errs := compileProgram(t, prog)
	require.Empty(t, errs)
	require.Contains(t, ir, "then")
	require.Contains(t, ir, "else")
	require.Contains(t, ir, "ifcont")
	require.Contains(t, ir, "br i1")
}

func TestAssignmentTypeMismatch(t *testing.T) {
	prog := program(
		assign("x", num(1, 1), 1),
		assign("x", infix("<", ident("x", 2), num(1, 2), 2), 2),
	)
	_, errs := compileProgram(t, prog)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), "Type mismatch in assignment to 'x'.")
}

func TestUndeclaredIdentifier(t *testing.T) {
	prog := program(
		&ast.PrintCall{Token: tok(token.PRINT, "print", 1), Expression: ident("ghost", 1)},
	)
	_, errs := compileProgram(t, prog)
	require.NotEmpty(t, errs)
	require.Contains(t, errs[0].Error(), "Undeclared identifier 'ghost'")
}

func TestMalformedRootProducesErrorStub(t *testing.T) {
	ir, errs := compileProgram(t, ident("oops", 1))
	require.NotEmpty(t, errs)
	require.Contains(t, errs[0].Error(), "Program root is not a statement list")
	require.Contains(t, ir, "main_ast_error")
	require.Contains(t, ir, "ret i32 1")
}

func TestDeterministicOutput(t *testing.T) {
	build := func() ast.Node {
		return program(
			assign("a", num(3, 1), 1),
			&ast.Pipeline{
				Token: tok(token.PIPE, "|>", 2),
				Left:  infix("*", ident("a", 2), num(2, 2), 2),
				Right: &ast.PrintCall{Token: tok(token.PRINT, "print", 2)},
			},
		)
	}
	ir1, errs1 := compileProgram(t, build())
	ir2, errs2 := compileProgram(t, build())
	require.Empty(t, errs1)
	require.Empty(t, errs2)
	require.Equal(t, ir1, ir2)
}

func TestFunctionScopeDoesNotSeeMainLocals(t *testing.T) {
	body := ast.NewStatementList(token.Token{})
	body.Add(&ast.Return{Token: tok(token.RETURN, "return", 2), Value: ident("a", 2)})
	prog := program(
		assign("a", num(1, 1), 1),
		&ast.FunctionDef{Token: tok(token.DEF, "def", 2), Name: "f", Params: nil, Body: body},
	)
	_, errs := compileProgram(t, prog)
	require.NotEmpty(t, errs)
	require.Contains(t, errs[0].Error(), "Undeclared identifier 'a'")
}

func TestPrintedModuleVerifies(t *testing.T) {
	prog := program(
		&ast.PrintCall{Token: tok(token.PRINT, "print", 1), Expression: num(42, 1)},
	)
	ir, errs := compileProgram(t, prog)
	require.Empty(t, errs)
	require.Contains(t, ir, "@printf_fmt_0")
	require.Contains(t, ir, `c"%d\0A\00"`)
}

func TestRangePipedIntoZeroArgCall(t *testing.T) {
	body := ast.NewStatementList(token.Token{})
	body.Add(&ast.Return{Token: tok(token.RETURN, "return", 1), Value: num(7, 1)})
	prog := program(
		&ast.FunctionDef{Token: tok(token.DEF, "def", 1), Name: "seven", Params: nil, Body: body},
		&ast.Pipeline{
			Token: tok(token.PIPE, "|>", 2),
			Left: &ast.RangeLiteral{
				Token: tok(token.RANGE, "..", 2),
				Start: num(0, 2),
				End:   num(3, 2),
			},
			Right: &ast.CallExpression{Token: tok(token.IDENT, "seven", 2), Name: "seven"},
		},
	)
	ir, errs := compileProgram(t, prog)
	require.Empty(t, errs)
	require.Contains(t, ir, "call i32 @seven()")
}

func TestNilChildNodesReportInsteadOfPanicking(t *testing.T) {
	prog := program(
		&ast.Assignment{Token: tok(token.ASSIGN, "=", 1), Name: "x", Value: nil},
		&ast.Pipeline{
			Token: tok(token.PIPE, "|>", 2),
			Left:  nil,
			Right: &ast.PrintCall{Token: tok(token.PRINT, "print", 2)},
		},
	)
	_, errs := compileProgram(t, prog)
	require.Len(t, errs, 2)
	require.Contains(t, errs[0].Error(), "Error evaluating value for assignment to 'x'.")
	require.Contains(t, errs[1].Error(), "print() called with no argument")
}

func TestNestedLoops(t *testing.T) {
	innerBody := ast.NewStatementList(token.Token{})
	innerBody.Add(&ast.PrintCall{Token: tok(token.PRINT, "print", 2), Expression: ident("j", 2)})
	inner := &ast.ForLoop{
		Token: tok(token.FOR, "for", 2),
		Range: &ast.RangeLiteral{Token: tok(token.RANGE, "..", 2), Start: num(0, 2), End: num(2, 2)},
		Var:   "j",
		Body:  innerBody,
	}
	outerBody := ast.NewStatementList(token.Token{})
	outerBody.Add(inner)
	prog := program(
		&ast.ForLoop{
			Token: tok(token.FOR, "for", 1),
			Range: &ast.RangeLiteral{Token: tok(token.RANGE, "..", 1), Start: num(0, 1), End: num(2, 1)},
			Var:   "i",
			Body:  outerBody,
		},
	)
	ir, errs := compileProgram(t, prog)
	require.Empty(t, errs)
	require.GreaterOrEqual(t, strings.Count(ir, "loop.body"), 2)
	require.GreaterOrEqual(t, strings.Count(ir, "loop.inc"), 2)
}

func TestBareReturnYieldsZero(t *testing.T) {
	body := ast.NewStatementList(token.Token{})
	body.Add(&ast.Return{Token: tok(token.RETURN, "return", 2)})
	prog := program(
		&ast.FunctionDef{Token: tok(token.DEF, "def", 1), Name: "f", Params: nil, Body: body},
	)
	ir, errs := compileProgram(t, prog)
	require.Empty(t, errs)
	require.Contains(t, ir, "define i32 @f()")
	require.Contains(t, ir, "ret i32 0")
}
