//go:generate sh -c "cd ../tool && go run . ../ast/nodes.adt ../ast/nodes_gen.go ast"

package ast

import "github.com/pontaoski/idkc/types"

// Type is a declared variable, parameter or return type.
type Type int

const (
	Void Type = iota
	Int
	Float
	Bool
	String
)

// TypeOf maps a type keyword to its Type.
func TypeOf(kind types.TokenKind) (Type, bool) {
	switch kind {
	case types.INT:
		return Int, true
	case types.FLOAT:
		return Float, true
	case types.BOOL:
		return Bool, true
	case types.STRINGTYPE:
		return String, true
	}
	return Void, false
}

type IntLit struct {
	Value int64
}

type FloatLit struct {
	Value float64
}

type StringLit struct {
	Value string
}

type CharLit struct {
	Value rune
}

type BoolLit struct {
	Value bool
}

// BinaryExpr always has one of PLUS, MINUS, STAR, SLASH or PERCENT as Op.
type BinaryExpr struct {
	Left  Expression
	Op    types.TokenKind
	Right Expression
}

// Assignment is a `type name = value;` statement.
type Assignment struct {
	Type  Type
	Name  string
	Value Expression
}

type Parameter struct {
	Type Type
	Name string
}

// Block owns its statements and the table of names they declare.
type Block struct {
	Statements []Node
	Symbols    *SymbolTable
}

// Function has a nil Returns when it returns nothing.
type Function struct {
	Name       string
	Parameters []Parameter
	Body       Block
	Returns    *Type
}

// Program is the parsed contents of one source file.
type Program struct {
	Toplevels []Node
	Symbols   *SymbolTable
}

// Clone deep-copies an expression tree.
func Clone(e Expression) Expression {
	switch v := e.(type) {
	case BinaryExpr:
		return BinaryExpr{
			Left:  Clone(v.Left),
			Op:    v.Op,
			Right: Clone(v.Right),
		}
	default:
		return v
	}
}
