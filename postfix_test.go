package calc

import (
	"math"
	"strings"
	"testing"

	"github.com/alecthomas/repr"
)

func TestPostfix(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []Token
	}{
		{"num", "1", []Token{NumToken(1, 1)}},
		{"add", "1+2", []Token{NumToken(1, 1), NumToken(2, 3), OpToken(Add, 2)}},
		{"mul-first", "2+3*4", []Token{
			NumToken(2, 1), NumToken(3, 3), NumToken(4, 5), OpToken(Mul, 4), OpToken(Add, 2),
		}},
		{"mul-last", "2*3+4", []Token{
			NumToken(2, 1), NumToken(3, 3), OpToken(Mul, 2), NumToken(4, 5), OpToken(Add, 4),
		}},
		{"left-assoc", "8-3-2", []Token{
			NumToken(8, 1), NumToken(3, 3), OpToken(Sub, 2), NumToken(2, 5), OpToken(Sub, 4),
		}},
		{"mixed-equal", "8/4*2", []Token{
			NumToken(8, 1), NumToken(4, 3), OpToken(Div, 2), NumToken(2, 5), OpToken(Mul, 4),
		}},
		{"pop-all", "1+2*3-4", []Token{
			NumToken(1, 1), NumToken(2, 3), NumToken(3, 5), OpToken(Mul, 4), OpToken(Add, 2),
			NumToken(4, 7), OpToken(Sub, 6),
		}},
		// Structure errors are left for evaluation.
		{"no-op", "2 3", []Token{NumToken(2, 1), NumToken(3, 3)}},
		{"trailing-op", "2+", []Token{NumToken(2, 1), OpToken(Add, 2)}},
		{"double-op", "2*/3", []Token{NumToken(2, 1), OpToken(Mul, 2), NumToken(3, 4), OpToken(Div, 3)}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := Compile(strings.NewReader(c.src))
			if err != nil {
				t.Fatalf("%q failed to compile: %v", c.src, err)
			}
			got := e.Tokens()
			if len(got) != len(c.want) {
				t.Fatalf("%q: want %s, got %s", c.src, repr.String(c.want), repr.String(got))
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Errorf("%q: token %d differs\nwant %s\ngot  %s", c.src, i, repr.String(c.want), repr.String(got))
					break
				}
			}
		})
	}
}

func TestExprString(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1", "1"},
		{"2+3*4", "2 3 4 * +"},
		{"8-3-2", "8 3 - 2 -"},
		{"1.50 / 0.25", "1.5 0.25 /"},
		{"10/2-3", "10 2 / 3 -"},
		{"2 3", "2 3"},
	}
	for _, c := range cases {
		e, err := CompileString(c.src)
		if err != nil {
			t.Errorf("%q failed to compile: %v", c.src, err)
			continue
		}
		if got := e.String(); got != c.want {
			t.Errorf("%q: want %q, got %q", c.src, c.want, got)
		}
	}
}

func TestExprTokensCopy(t *testing.T) {
	e, err := CompileString("1+2")
	if err != nil {
		t.Fatal(err)
	}
	toks := e.Tokens()
	toks[0] = NumToken(100, 1)
	if r, err := e.Eval(); err != nil || r != 3 {
		t.Errorf("modifying Tokens result changed the expression: got %g, %v", r, err)
	}
}

func TestNum(t *testing.T) {
	cases := []struct {
		text string
		want float64
	}{
		{"0", 0},
		{"007", 7},
		{"2.", 2},
		{"2.50", 2.5},
		{"1" + strings.Repeat("0", 400), math.Inf(1)},
	}
	for _, c := range cases {
		if got := num(c.text); got != c.want {
			t.Errorf("num(%q): want %g, got %g", c.text, c.want, got)
		}
	}
}

func TestOperatorPrec(t *testing.T) {
	if Add.Prec() != Sub.Prec() || Mul.Prec() != Div.Prec() {
		t.Error("operators of the same group have different precedences")
	}
	if Mul.Prec() <= Add.Prec() {
		t.Error("multiplication binds no tighter than addition")
	}
	for _, r := range Operators {
		if Operator(r).Prec() == 0 {
			t.Errorf("operator %c has no precedence", r)
		}
	}
	if Operator('^').Prec() != 0 {
		t.Error("^ has a precedence")
	}
}
