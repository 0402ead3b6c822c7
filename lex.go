package calc

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int8

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is a decimal number, e.g. 12 or 1.5.
	tokenNum
	// tokenOp is one of the binary operators.
	tokenOp
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenNum:
		return "Num"
	case tokenOp:
		return "Op"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/"

type lexer struct {
	src io.RuneScanner
	buf strings.Builder
	// col is the number of runes read so far.
	col int
	eof bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{src: src}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.col++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.col--
}

// next scans the next token from the input. The first time EOF is reached,
// the result is an EOF token with a nil error. Subsequent calls return an
// empty token with io.EOF.
func (l *lexer) next() (lexToken, error) {
	if l.eof {
		return lexToken{}, io.EOF
	}
	defer l.buf.Reset()
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				l.eof = true
				return lexToken{kind: tokenEOF, pos: l.col + 1}, nil
			}
			return lexToken{}, err
		}
		pos := l.col
		switch {
		case unicode.IsSpace(r):
			continue
		case isDigit(r):
			l.unreadRune()
			if err := l.scanNum(pos); err != nil {
				return lexToken{pos: pos}, err
			}
			return lexToken{text: l.buf.String(), kind: tokenNum, pos: pos}, nil
		default:
			if k := strings.IndexRune(Operators, r); k >= 0 {
				return lexToken{text: Operators[k : k+1], kind: tokenOp, pos: pos}, nil
			}
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return lexToken{pos: pos}, l.error(pos, "")
		}
	}
}

// scanNum scans a run of digits, optionally followed by a decimal point and
// another run of digits. The first rune must be a digit.
func (l *lexer) scanNum(pos int) error {
	var dot bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		switch {
		case isDigit(r):
			l.buf.WriteRune(r)
		case r == '.':
			l.buf.WriteRune(r)
			if dot {
				return l.error(pos, "number")
			}
			dot = true
		default:
			// Anything else ends the number. next reports it if it is not
			// whitespace or an operator.
			l.unreadRune()
			return nil
		}
	}
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func (l *lexer) error(pos int, kind string) error {
	return &LexError{
		Text:  l.buf.String(),
		Kind:  kind,
		Col:   pos,
		Found: l.col,
	}
}

// tokenize scans all tokens from src. It fails if the input holds no tokens
// at all or if any rune cannot be part of a number or operator.
func tokenize(src io.RuneScanner) ([]lexToken, error) {
	scan := lex(src)
	var toks []lexToken
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenEOF {
			if len(toks) == 0 {
				return nil, &EmptyExpressionError{Col: tok.pos}
			}
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This is "number" or
	// the empty string if a token kind hadn't been decided.
	Kind string
	// Col is the position of the first rune of the invalid token.
	Col int
	// Found is the position of the invalid rune itself.
	Found int
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return errpos(err.Col, "invalid token "+strconv.Quote(err.Text))
	}
	return errpos(err.Col, "invalid "+err.Kind+" token "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}

// ErrorKind is MalformedExpression for all LexErrors.
func (err *LexError) ErrorKind() ErrorKind {
	return MalformedExpression
}
