package calc

import (
	"errors"
	"strconv"
)

// ErrorKind classifies errors from compiling or evaluating an expression.
type ErrorKind int8

const (
	// NoError is the kind of a nil error.
	NoError ErrorKind = iota
	// EmptyExpression means the input held nothing but whitespace.
	EmptyExpression
	// MalformedExpression means the input held a rune that is not part of a
	// valid number or operator.
	MalformedExpression
	// InsufficientOperands means an operator had fewer than two values to
	// operate on.
	InsufficientOperands
	// DivisionByZero means the right operand of a division was zero.
	DivisionByZero
	// ExcessOperands means evaluation finished with other than exactly one
	// value, e.g. two numbers with no operator between them.
	ExcessOperands
	// UnknownError is the kind of errors not created by this package.
	UnknownError
)

var kindnames = [...]string{
	NoError:              "NoError",
	EmptyExpression:      "EmptyExpression",
	MalformedExpression:  "MalformedExpression",
	InsufficientOperands: "InsufficientOperands",
	DivisionByZero:       "DivisionByZero",
	ExcessOperands:       "ExcessOperands",
	UnknownError:         "UnknownError",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(kindnames) {
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindnames[k]
}

// MarshalText encodes the kind as its name.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind from its name.
func (k *ErrorKind) UnmarshalText(text []byte) error {
	r, err := ParseErrorKind(string(text))
	if err != nil {
		return err
	}
	*k = r
	return nil
}

// ParseErrorKind returns the kind with the given name.
func ParseErrorKind(name string) (ErrorKind, error) {
	for k, s := range kindnames {
		if s == name {
			return ErrorKind(k), nil
		}
	}
	return UnknownError, errors.New("calc: unknown error kind " + strconv.Quote(name))
}

// KindOf returns the kind of err. The result is NoError if err is nil and
// UnknownError if err does not wrap an error from this package.
func KindOf(err error) ErrorKind {
	if err == nil {
		return NoError
	}
	var k interface{ ErrorKind() ErrorKind }
	if errors.As(err, &k) {
		return k.ErrorKind()
	}
	return UnknownError
}

// EmptyExpressionError is an error indicating an input with no tokens.
type EmptyExpressionError struct {
	// Col is the position of the end of the input.
	Col int
}

func (err *EmptyExpressionError) Error() string {
	return errpos(err.Col, "no expression")
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

func (err *EmptyExpressionError) ErrorKind() ErrorKind {
	return EmptyExpression
}

// OperandError is an error indicating an operator without two operands, as
// in "2+" or "2*/3". It implements InputError.
type OperandError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the operator that lacked operands.
	Operator string
	// Have is the number of operands that were available.
	Have int
}

func (err *OperandError) Error() string {
	return errpos(err.Col, "operator "+strconv.Quote(err.Operator)+" needs two operands, have "+strconv.Itoa(err.Have))
}

func (err *OperandError) Pos() int {
	return err.Col
}

func (err *OperandError) ErrorKind() ErrorKind {
	return InsufficientOperands
}

// DivisionError is an error indicating a division by exactly zero. It
// implements InputError.
type DivisionError struct {
	// Col is the position of the division operator.
	Col int
	// X is the dividend.
	X float64
}

func (err *DivisionError) Error() string {
	return errpos(err.Col, "division by zero: "+strconv.FormatFloat(err.X, 'g', -1, 64)+" / 0")
}

func (err *DivisionError) Pos() int {
	return err.Col
}

func (err *DivisionError) ErrorKind() ErrorKind {
	return DivisionByZero
}

// ExcessOperandsError is an error indicating that evaluation did not reduce
// the expression to a single value. It implements InputError.
type ExcessOperandsError struct {
	// Col is the position of the first value beyond the one expected, or 0 if
	// no values remained.
	Col int
	// Count is the number of values that remained.
	Count int
}

func (err *ExcessOperandsError) Error() string {
	msg := "expression leaves " + strconv.Itoa(err.Count) + " values, want 1"
	if err.Col <= 0 {
		return msg
	}
	return errpos(err.Col, msg)
}

func (err *ExcessOperandsError) Pos() int {
	return err.Col
}

func (err *ExcessOperandsError) ErrorKind() ErrorKind {
	return ExcessOperands
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
	// ErrorKind classifies the error.
	ErrorKind() ErrorKind
}

var (
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*LexError)(nil)
	_ InputError = (*OperandError)(nil)
	_ InputError = (*DivisionError)(nil)
	_ InputError = (*ExcessOperandsError)(nil)
)
