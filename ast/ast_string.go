package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pontaoski/idkc/types"
)

func (t Type) String() string {
	switch t {
	case Void:
		return "void"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case String:
		return "string"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

var opSymbols = map[types.TokenKind]string{
	types.PLUS:    "+",
	types.MINUS:   "-",
	types.STAR:    "*",
	types.SLASH:   "/",
	types.PERCENT: "%",
}

// OpSymbol returns the source spelling of an arithmetic operator.
func OpSymbol(op types.TokenKind) string {
	if s, ok := opSymbols[op]; ok {
		return s
	}
	return op.String()
}

func (v IntLit) String() string    { return strconv.FormatInt(v.Value, 10) }
func (v FloatLit) String() string  { return strconv.FormatFloat(v.Value, 'g', -1, 64) }
func (v StringLit) String() string { return `"` + v.Value + `"` }
func (v CharLit) String() string   { return "'" + string(v.Value) + "'" }
func (v BoolLit) String() string   { return strconv.FormatBool(v.Value) }

// String fully parenthesizes the tree, so grouping is always visible.
func (v BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", v.Left, OpSymbol(v.Op), v.Right)
}

func (a Assignment) String() string {
	return fmt.Sprintf("%s %s = %s;", a.Type, a.Name, a.Value)
}

func (f Function) String() string {
	var args []string
	for _, arg := range f.Parameters {
		args = append(args, arg.Type.String()+" "+arg.Name)
	}
	sig := fmt.Sprintf("fn %s(%s)", f.Name, strings.Join(args, ", "))
	if f.Returns != nil {
		sig += ": " + f.Returns.String()
	}
	return sig
}
