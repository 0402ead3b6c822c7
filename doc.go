// Package calc evaluates arithmetic expressions over float64.
//
// An expression is a sequence of numbers separated by the binary operators
// +, -, * and /. Multiplication and division bind tighter than addition and
// subtraction, and operators of equal precedence group left to right, so
// "8-3-2" is "(8-3)-2" and "2+3*4" is 14. Numbers are decimal digits with an
// optional fractional part, e.g. "12", "1.5", or "3.". Whitespace between
// tokens is ignored. There are no parentheses, unary operators, variables, or
// functions.
//
// Evaluation happens in three steps: the source is split into tokens, the
// tokens are rearranged into postfix (reverse Polish) order with the
// shunting-yard algorithm, and the postfix sequence is evaluated on a stack.
// Compile performs the first two steps once so that the resulting Expr can be
// evaluated repeatedly; EvalString does all three.
//
// Every error resulting from invalid input implements InputError, and KindOf
// classifies errors into the ErrorKind values EmptyExpression,
// MalformedExpression, InsufficientOperands, DivisionByZero, and
// ExcessOperands.
//
package calc
