package calc

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// Expr is a compiled expression in postfix order. An Expr is immutable, so it
// is safe to evaluate concurrently.
type Expr struct {
	toks []Token
}

// Compile tokenizes an expression and converts it to postfix order. Errors
// from operands that are missing or left over are only detected by Eval.
func Compile(src io.RuneScanner) (*Expr, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	return &Expr{toks: postfix(toks)}, nil
}

// CompileString is a shortcut to compile a string expression.
func CompileString(src string) (*Expr, error) {
	return Compile(strings.NewReader(src))
}

// postfix converts tokens in infix order to postfix order using the
// shunting-yard algorithm. An operator on the stack is moved to the output
// when it binds at least as tightly as the incoming one, which makes operators
// of equal precedence left-associative.
func postfix(toks []lexToken) []Token {
	out := make([]Token, 0, len(toks))
	var ops []Token
	for _, tok := range toks {
		switch tok.kind {
		case tokenNum:
			out = append(out, NumToken(num(tok.text), tok.pos))
		case tokenOp:
			op := Operator(tok.text[0])
			for len(ops) > 0 && ops[len(ops)-1].Op.Prec() >= op.Prec() {
				out = append(out, ops[len(ops)-1])
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, OpToken(op, tok.pos))
		default:
			panic("calc: unknown token: " + tok.String())
		}
	}
	for len(ops) > 0 {
		out = append(out, ops[len(ops)-1])
		ops = ops[:len(ops)-1]
	}
	return out
}

// num parses the text of a number token. Numbers too large for a float64
// become +Inf.
func num(s string) float64 {
	r, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		panic("calc: invalid number: " + s + " (" + err.Error() + ")")
	}
	return r
}

// Tokens returns a copy of the expression's tokens in postfix order.
func (e *Expr) Tokens() []Token {
	return append(([]Token)(nil), e.toks...)
}

// String renders the expression in postfix notation, e.g. "2 3 4 * +".
func (e *Expr) String() string {
	return formatTokens(e.toks)
}
