package parser

import "github.com/pontaoski/idkc/types"

type Associativity int

const (
	LeftAssociative Associativity = iota
	RightAssociative
)

// NotAnOperator is the precedence of every token the expression grammar does
// not treat as a binary operator.
const NotAnOperator = -1

type operator struct {
	precedence    int
	associativity Associativity
}

var operators = map[types.TokenKind]operator{
	types.PLUS:    {1, LeftAssociative},
	types.MINUS:   {1, LeftAssociative},
	types.STAR:    {2, LeftAssociative},
	types.SLASH:   {2, LeftAssociative},
	types.PERCENT: {2, LeftAssociative},
}

func Precedence(kind types.TokenKind) int {
	if op, ok := operators[kind]; ok {
		return op.precedence
	}
	return NotAnOperator
}

func AssociativityOf(kind types.TokenKind) Associativity {
	return operators[kind].associativity
}

// yields reports whether top, sitting on the operator stack, has to be moved
// to the output before incoming is pushed.
func yields(top, incoming types.TokenKind) bool {
	tp, ip := Precedence(top), Precedence(incoming)
	return tp > ip || (tp == ip && AssociativityOf(incoming) == LeftAssociative)
}
