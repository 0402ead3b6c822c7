package calc

import (
	"strconv"
	"strings"
)

// Operator is one of the four binary operators.
type Operator byte

const (
	Add Operator = '+'
	Sub Operator = '-'
	Mul Operator = '*'
	Div Operator = '/'
)

// Prec returns the operator's precedence. Higher is more binding. Operators
// of equal precedence are left-associative. Prec is 0 for invalid operators.
func (op Operator) Prec() int {
	switch op {
	case Add, Sub:
		return 1
	case Mul, Div:
		return 2
	default:
		return 0
	}
}

func (op Operator) String() string {
	return string(rune(op))
}

// TokenKind identifies which field of a Token holds its value.
type TokenKind int8

const (
	// TokenNum is a number; Num holds its value.
	TokenNum TokenKind = iota + 1
	// TokenOp is an operator; Op holds it.
	TokenOp
)

func (k TokenKind) String() string {
	switch k {
	case TokenNum:
		return "Num"
	case TokenOp:
		return "Op"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Token is an element of a postfix expression.
type Token struct {
	Kind TokenKind
	Num  float64
	Op   Operator
	// Pos is the position of the token in the source as a 1-based count of
	// runes.
	Pos int
}

// NumToken creates a number token.
func NumToken(x float64, pos int) Token {
	return Token{Kind: TokenNum, Num: x, Pos: pos}
}

// OpToken creates an operator token.
func OpToken(op Operator, pos int) Token {
	return Token{Kind: TokenOp, Op: op, Pos: pos}
}

func (t Token) String() string {
	switch t.Kind {
	case TokenNum:
		return strconv.FormatFloat(t.Num, 'g', -1, 64)
	case TokenOp:
		return t.Op.String()
	default:
		return "$" + t.Kind.String()
	}
}

// formatTokens writes tokens separated by single spaces.
func formatTokens(toks []Token) string {
	var b strings.Builder
	for i, tok := range toks {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok.String())
	}
	return b.String()
}
