package types

import (
	"fmt"
)

type Position struct {
	Line     int
	Column   int
	Filename string
}

type Span struct {
	From Position
	To   Position
}

type TokenKind int

const (
	EOF TokenKind = iota

	// literals
	NUMBER
	STRING
	CHAR
	IDENT

	// keywords
	FN
	IF
	ELIF
	ELSE
	RETURN
	INT
	FLOAT
	BOOL
	STRINGTYPE
	TRUE
	FALSE

	// special characters
	COLON
	LBRACKET
	RBRACKET
	LBRACE
	RBRACE
	LPAREN
	RPAREN
	SEMICOLON
	COMMA
	ASSIGN

	// arithmetic
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT

	// relational
	EQUALS
	NOT_EQ
	LESS
	LESS_EQ
	GREATER
	GREATER_EQ

	// logical, unary and bitwise
	AND_LOGICAL
	OR_LOGICAL
	NOT
	AND
	PIPE
	PLUS_PLUS
	MINUS_MINUS
	POWER
)

var tokenNames = [...]string{
	EOF:         "EOF",
	NUMBER:      "NUMBER",
	STRING:      "STRING",
	CHAR:        "CHAR",
	IDENT:       "IDENT",
	FN:          "FN",
	IF:          "IF",
	ELIF:        "ELIF",
	ELSE:        "ELSE",
	RETURN:      "RETURN",
	INT:         "INT",
	FLOAT:       "FLOAT",
	BOOL:        "BOOL",
	STRINGTYPE:  "STRINGTYPE",
	TRUE:        "TRUE",
	FALSE:       "FALSE",
	COLON:       "COLON",
	LBRACKET:    "LBRACKET",
	RBRACKET:    "RBRACKET",
	LBRACE:      "LBRACE",
	RBRACE:      "RBRACE",
	LPAREN:      "LPAREN",
	RPAREN:      "RPAREN",
	SEMICOLON:   "SEMICOLON",
	COMMA:       "COMMA",
	ASSIGN:      "ASSIGN",
	PLUS:        "PLUS",
	MINUS:       "MINUS",
	STAR:        "STAR",
	SLASH:       "SLASH",
	PERCENT:     "PERCENT",
	EQUALS:      "EQUALS",
	NOT_EQ:      "NOT_EQ",
	LESS:        "LESS",
	LESS_EQ:     "LESS_EQ",
	GREATER:     "GREATER",
	GREATER_EQ:  "GREATER_EQ",
	AND_LOGICAL: "AND_LOGICAL",
	OR_LOGICAL:  "OR_LOGICAL",
	NOT:         "NOT",
	AND:         "AND",
	PIPE:        "PIPE",
	PLUS_PLUS:   "PLUS_PLUS",
	MINUS_MINUS: "MINUS_MINUS",
	POWER:       "POWER",
}

func (t TokenKind) String() string {
	if int(t) >= 0 && int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenKind(%d)", int(t))
}

// IsType reports whether the kind is one of the type keywords.
func (t TokenKind) IsType() bool {
	switch t {
	case INT, FLOAT, BOOL, STRINGTYPE:
		return true
	}
	return false
}

// IsArithmetic reports whether the kind is one of + - * / %.
func (t TokenKind) IsArithmetic() bool {
	switch t {
	case PLUS, MINUS, STAR, SLASH, PERCENT:
		return true
	}
	return false
}

func (p Position) String() string {
	if p.Filename == "" {
		p.Filename = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%d:%d", s.From, s.To.Line, s.To.Column)
}

func SingleCharSpan(p Position) Span {
	return Span{p, p}
}

// Token carries the matched source text, not a converted value. String and
// char literals hold their contents without the surrounding quotes.
type Token struct {
	Kind     TokenKind
	Lexeme   string
	Location Span
}

func (t Token) String() string {
	return fmt.Sprintf("%-11s %-14q %s", t.Kind, t.Lexeme, t.Location.From)
}
