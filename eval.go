package calc

import (
	"io"
	"strings"
)

// value is an entry on the evaluation stack. pos is the position of the token
// that produced it.
type value struct {
	x   float64
	pos int
}

type stack []value

func (s *stack) push(x float64, pos int) {
	*s = append(*s, value{x, pos})
}

// pop removes the top from the stack and returns it.
func (s *stack) pop() value {
	r := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return r
}

// Eval evaluates the expression. Each operator takes the two values below it
// on the stack, with the deeper one as its left operand. Exactly one value
// must remain once every token is consumed.
func (e *Expr) Eval() (float64, error) {
	s := make(stack, 0, len(e.toks)/2+1)
	for _, tok := range e.toks {
		switch tok.Kind {
		case TokenNum:
			s.push(tok.Num, tok.Pos)
		case TokenOp:
			if len(s) < 2 {
				return 0, &OperandError{Col: tok.Pos, Operator: tok.Op.String(), Have: len(s)}
			}
			r := s.pop()
			l := s.pop()
			x, err := apply(tok, l.x, r.x)
			if err != nil {
				return 0, err
			}
			// The result is attributed to its left operand so that leftover
			// values point at the start of their subexpression.
			s.push(x, l.pos)
		default:
			panic("calc: invalid token " + tok.Kind.String() + " in postfix expression")
		}
	}
	if len(s) != 1 {
		err := &ExcessOperandsError{Count: len(s)}
		if len(s) > 1 {
			err.Col = s[1].pos
		}
		return 0, err
	}
	return s[0].x, nil
}

func apply(tok Token, l, r float64) (float64, error) {
	switch tok.Op {
	case Add:
		return l + r, nil
	case Sub:
		return l - r, nil
	case Mul:
		return l * r, nil
	case Div:
		if r == 0 {
			return 0, &DivisionError{Col: tok.Pos, X: l}
		}
		return l / r, nil
	default:
		panic("calc: invalid operator " + tok.Op.String())
	}
}

// Eval is a shortcut to compile an expression and return its result.
func Eval(src io.RuneScanner) (float64, error) {
	e, err := Compile(src)
	if err != nil {
		return 0, err
	}
	return e.Eval()
}

// EvalString is a shortcut to compile and evaluate a string expression.
func EvalString(src string) (float64, error) {
	return Eval(strings.NewReader(src))
}
