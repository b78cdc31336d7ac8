package token

import (
	"fmt"
	"strconv"
)

type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF

	literal_beg
	// Identifiers + literals
	IDENT  // add, foobar, x, y, ...
	NUMBER // 1343456
	literal_end

	operator_beg
	// Operators and delimiters
	ASSIGN // =
	NOT    // !

	ADD // +
	SUB // -
	MUL // *
	QUO // /

	LAND // &&
	LOR  // ||

	PIPE // |>

	LPAREN // (
	RPAREN // )
	LBRACE // {
	RBRACE // }
	COMMA  // ,
	RANGE  // ..
	operator_end

	comparison_beg
	EQL // ==
	NEQ // !=
	LSS // <
	GTR // >
	LEQ // <=
	GEQ // >=
	comparison_end

	keyword_beg
	DEF    // def
	IF     // if
	ELSE   // else
	FOR    // for
	IN     // in
	RETURN // return
	PRINT  // print
	keyword_end
)

var tokens = [...]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",

	ASSIGN: "=",
	NOT:    "!",

	ADD: "+",
	SUB: "-",
	MUL: "*",
	QUO: "/",

	LAND: "&&",
	LOR:  "||",

	PIPE: "|>",

	LPAREN: "(",
	RPAREN: ")",
	LBRACE: "{",
	RBRACE: "}",
	COMMA:  ",",
	RANGE:  "..",

	EQL: "==",
	NEQ: "!=",
	LSS: "<",
	GTR: ">",
	LEQ: "<=",
	GEQ: ">=",

	DEF:    "def",
	IF:     "if",
	ELSE:   "else",
	FOR:    "for",
	IN:     "in",
	RETURN: "return",
	PRINT:  "print",
}

// Token is the source handle every AST node carries. Line is what
// diagnostics report; the parser fills it in from its position tracking.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
}

func (t Token) IsComparison() bool {
	return comparison_beg < t.Type && t.Type < comparison_end
}

func (t Token) String() string {
	return t.Type.String()
}

func (tokenType TokenType) String() string {
	s := ""
	if 0 <= tokenType && tokenType < TokenType(len(tokens)) {
		s = tokens[tokenType]
	}

	if s == "" {
		s = "token(" + strconv.Itoa(int(tokenType)) + ")"
	}

	return s
}

// CompileError is a diagnostic tied to a source line. The rendered form is
// the stable interface consumed by callers and tests.
type CompileError struct {
	Token Token
	Msg   string
}

func (ce *CompileError) Error() string {
	return fmt.Sprintf("Line %d: %s", ce.Token.Line, ce.Msg)
}
