package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/M-Haseeb01/CC-Project/token"
)

// Node is the interface all AST nodes implement. String renders the
// structural tree dump used for diagnostics; it has no semantic role.
type Node interface {
	Tok() token.Token
	String() string
	tree(out *bytes.Buffer, indent int)
}

// DefaultLoopVar names the loop variable when a for-loop omits one.
const DefaultLoopVar = "_item"

func writeIndent(out *bytes.Buffer, indent int) {
	for i := 0; i < indent; i++ {
		out.WriteString("  ")
	}
}

func render(n Node) string {
	var out bytes.Buffer
	n.tree(&out, 0)
	return out.String()
}

func treeChild(out *bytes.Buffer, n Node, indent int) {
	if n == nil {
		writeIndent(out, indent)
		out.WriteString("NULL\n")
		return
	}
	n.tree(out, indent)
}

// IntegerLiteral is a numeric literal.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) Tok() token.Token { return il.Token }
func (il *IntegerLiteral) String() string   { return render(il) }
func (il *IntegerLiteral) tree(out *bytes.Buffer, indent int) {
	writeIndent(out, indent)
	fmt.Fprintf(out, "NUMBER: %d (Line %d)\n", il.Value, il.Token.Line)
}

// Identifier is a variable or function name in read position.
type Identifier struct {
	Token token.Token
	Name  string
}

func (i *Identifier) Tok() token.Token { return i.Token }
func (i *Identifier) String() string   { return render(i) }
func (i *Identifier) tree(out *bytes.Buffer, indent int) {
	writeIndent(out, indent)
	fmt.Fprintf(out, "IDENTIFIER: %s (Line %d)\n", i.Name, i.Token.Line)
}

// InfixExpression is a binary operation. Operator is the source spelling
// ("+", "==", "&&", ...).
type InfixExpression struct {
	Token    token.Token
	Operator string
	Left     Node
	Right    Node
}

func (ie *InfixExpression) Tok() token.Token { return ie.Token }
func (ie *InfixExpression) String() string   { return render(ie) }
func (ie *InfixExpression) tree(out *bytes.Buffer, indent int) {
	writeIndent(out, indent)
	fmt.Fprintf(out, "BINARY_OP: %s (Line %d)\n", ie.Operator, ie.Token.Line)
	treeChild(out, ie.Left, indent+1)
	treeChild(out, ie.Right, indent+1)
}

// PrefixExpression is a unary operation: logical not or arithmetic negation.
type PrefixExpression struct {
	Token    token.Token
	Operator string
	Operand  Node
}

func (pe *PrefixExpression) Tok() token.Token { return pe.Token }
func (pe *PrefixExpression) String() string   { return render(pe) }
func (pe *PrefixExpression) tree(out *bytes.Buffer, indent int) {
	writeIndent(out, indent)
	fmt.Fprintf(out, "UNARY_OP: %s (Line %d)\n", pe.Operator, pe.Token.Line)
	treeChild(out, pe.Operand, indent+1)
}

// Assignment binds the value of an expression to a name. The first
// assignment to a name implicitly declares it.
type Assignment struct {
	Token token.Token
	Name  string
	Value Node
}

func (a *Assignment) Tok() token.Token { return a.Token }
func (a *Assignment) String() string   { return render(a) }
func (a *Assignment) tree(out *bytes.Buffer, indent int) {
	writeIndent(out, indent)
	fmt.Fprintf(out, "ASSIGN: %s (Line %d)\n", a.Name, a.Token.Line)
	treeChild(out, a.Value, indent+1)
}

// FunctionDef declares a named function with a fixed parameter list.
type FunctionDef struct {
	Token  token.Token
	Name   string
	Params []string
	Body   *StatementList
}

func (fd *FunctionDef) Tok() token.Token { return fd.Token }
func (fd *FunctionDef) String() string   { return render(fd) }
func (fd *FunctionDef) tree(out *bytes.Buffer, indent int) {
	writeIndent(out, indent)
	fmt.Fprintf(out, "FUNC_DEF: %s(%s) (Line %d)\n", fd.Name, strings.Join(fd.Params, ", "), fd.Token.Line)
	writeIndent(out, indent+1)
	out.WriteString("BODY:\n")
	treeChild(out, fd.Body, indent+2)
}

// CallExpression calls a named function with positional arguments.
type CallExpression struct {
	Token     token.Token
	Name      string
	Arguments []Node
}

func (ce *CallExpression) Tok() token.Token { return ce.Token }
func (ce *CallExpression) String() string   { return render(ce) }
func (ce *CallExpression) tree(out *bytes.Buffer, indent int) {
	writeIndent(out, indent)
	fmt.Fprintf(out, "FUNC_CALL: %s (Args: %d) (Line %d)\n", ce.Name, len(ce.Arguments), ce.Token.Line)
	for _, arg := range ce.Arguments {
		treeChild(out, arg, indent+1)
	}
}

// Pipeline threads the value of Left into the operation Right. Right must be
// a call, conditional, for-loop, or print node; the code generator enforces
// this.
type Pipeline struct {
	Token token.Token
	Left  Node
	Right Node
}

func (p *Pipeline) Tok() token.Token { return p.Token }
func (p *Pipeline) String() string   { return render(p) }
func (p *Pipeline) tree(out *bytes.Buffer, indent int) {
	writeIndent(out, indent)
	fmt.Fprintf(out, "PIPELINE (Line %d):\n", p.Token.Line)
	writeIndent(out, indent+1)
	out.WriteString("INPUT:\n")
	treeChild(out, p.Left, indent+2)
	writeIndent(out, indent+1)
	out.WriteString("OPERATION:\n")
	treeChild(out, p.Right, indent+2)
}

// IfElse is a conditional with an optional else branch.
type IfElse struct {
	Token     token.Token
	Condition Node
	Then      *StatementList
	Else      *StatementList // may be nil
}

func (ie *IfElse) Tok() token.Token { return ie.Token }
func (ie *IfElse) String() string   { return render(ie) }
func (ie *IfElse) tree(out *bytes.Buffer, indent int) {
	writeIndent(out, indent)
	fmt.Fprintf(out, "IF (Line %d):\n", ie.Token.Line)
	writeIndent(out, indent+1)
	out.WriteString("CONDITION:\n")
	treeChild(out, ie.Condition, indent+2)
	writeIndent(out, indent+1)
	out.WriteString("THEN:\n")
	treeChild(out, ie.Then, indent+2)
	if ie.Else != nil {
		writeIndent(out, indent+1)
		out.WriteString("ELSE:\n")
		ie.Else.tree(out, indent+2)
	}
}

// ForLoop iterates a loop variable over a half-open range. Range is nil when
// the loop is the right-hand side of a pipeline; the piped range supplies it.
type ForLoop struct {
	Token token.Token
	Range Node // expected *RangeLiteral, may be nil for piped loops
	Var   string
	Body  *StatementList
}

func (fl *ForLoop) Tok() token.Token { return fl.Token }

// VarName returns the loop variable name, substituting the fixed placeholder
// when the source omitted one.
func (fl *ForLoop) VarName() string {
	if fl.Var == "" {
		return DefaultLoopVar
	}
	return fl.Var
}

func (fl *ForLoop) String() string { return render(fl) }
func (fl *ForLoop) tree(out *bytes.Buffer, indent int) {
	writeIndent(out, indent)
	fmt.Fprintf(out, "FOR_LOOP (var: %s) (Line %d):\n", fl.VarName(), fl.Token.Line)
	writeIndent(out, indent+1)
	out.WriteString("RANGE:\n")
	treeChild(out, fl.Range, indent+2)
	writeIndent(out, indent+1)
	out.WriteString("BODY:\n")
	treeChild(out, fl.Body, indent+2)
}

// RangeLiteral is a half-open range start..end. It is structural: consuming
// constructs (for-loops, pipelines into for-loops) evaluate its bounds.
type RangeLiteral struct {
	Token token.Token
	Start Node
	End   Node
}

func (rl *RangeLiteral) Tok() token.Token { return rl.Token }
func (rl *RangeLiteral) String() string   { return render(rl) }
func (rl *RangeLiteral) tree(out *bytes.Buffer, indent int) {
	writeIndent(out, indent)
	fmt.Fprintf(out, "RANGE (Line %d):\n", rl.Token.Line)
	writeIndent(out, indent+1)
	out.WriteString("START:\n")
	treeChild(out, rl.Start, indent+2)
	writeIndent(out, indent+1)
	out.WriteString("END:\n")
	treeChild(out, rl.End, indent+2)
}

// Return exits the enclosing function, optionally with a value.
type Return struct {
	Token token.Token
	Value Node // may be nil
}

func (r *Return) Tok() token.Token { return r.Token }
func (r *Return) String() string   { return render(r) }
func (r *Return) tree(out *bytes.Buffer, indent int) {
	writeIndent(out, indent)
	fmt.Fprintf(out, "RETURN (Line %d):\n", r.Token.Line)
	if r.Value != nil {
		r.Value.tree(out, indent+1)
	}
}

// StatementList is an ordered sequence of statements. It is itself a node so
// it can nest as a function, branch, or loop body.
type StatementList struct {
	Token      token.Token
	Statements []Node
}

func NewStatementList(tok token.Token) *StatementList {
	return &StatementList{Token: tok}
}

// Add appends a statement, preserving insertion order. Nil statements and
// nil lists are ignored.
func (sl *StatementList) Add(stmt Node) {
	if sl == nil || stmt == nil {
		return
	}
	sl.Statements = append(sl.Statements, stmt)
}

func (sl *StatementList) Tok() token.Token { return sl.Token }
func (sl *StatementList) String() string   { return render(sl) }
func (sl *StatementList) tree(out *bytes.Buffer, indent int) {
	writeIndent(out, indent)
	fmt.Fprintf(out, "STATEMENT_LIST (Count: %d) (Line %d)\n", len(sl.Statements), sl.Token.Line)
	for _, stmt := range sl.Statements {
		treeChild(out, stmt, indent+1)
	}
}

// PrintCall prints its expression, or the currently piped value when the
// expression is absent.
type PrintCall struct {
	Token      token.Token
	Expression Node // may be nil
}

func (pc *PrintCall) Tok() token.Token { return pc.Token }
func (pc *PrintCall) String() string   { return render(pc) }
func (pc *PrintCall) tree(out *bytes.Buffer, indent int) {
	writeIndent(out, indent)
	fmt.Fprintf(out, "PRINT_CALL (Line %d):\n", pc.Token.Line)
	if pc.Expression != nil {
		pc.Expression.tree(out, indent+1)
	}
}
