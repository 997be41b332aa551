// Package c lowers a parsed program to C source.
package c

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pontaoski/idkc/ast"
	"github.com/pontaoski/idkc/errors"
	"github.com/pontaoski/idkc/eval"
)

var includes = []string{"stdio.h", "stdlib.h", "stdbool.h"}

func cType(t ast.Type) (string, error) {
	switch t {
	case ast.Void:
		return "void", nil
	case ast.Int:
		return "int", nil
	case ast.Float:
		return "float", nil
	case ast.Bool:
		return "bool", nil
	case ast.String:
		return "char *", nil
	}
	return "", fmt.Errorf("no C type for %s", t)
}

// declare joins a type and a name, keeping pointer stars next to the name.
func declare(t ast.Type, name string) (string, error) {
	ct, err := cType(t)
	if err != nil {
		return "", err
	}
	if strings.HasSuffix(ct, "*") {
		return ct + name, nil
	}
	return ct + " " + name, nil
}

// escape renders s for use between C quotes. Bytes outside printable ASCII
// become three digit octal escapes.
func escape(s string, quote byte) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b == '\\' || b == quote:
			sb.WriteByte('\\')
			sb.WriteByte(b)
		case b == '\n':
			sb.WriteString(`\n`)
		case b == '\t':
			sb.WriteString(`\t`)
		case b < ' ' || b > '~':
			fmt.Fprintf(&sb, "\\%03o", b)
		default:
			sb.WriteByte(b)
		}
	}
	return sb.String()
}

// value renders an assignment's value. Arithmetic is folded to a constant.
func value(t ast.Type, e ast.Expression) (string, error) {
	switch v := e.(type) {
	case ast.StringLit:
		return `"` + escape(v.Value, '"') + `"`, nil
	case ast.CharLit:
		if v.Value >= utf8.RuneSelf {
			return strconv.Itoa(int(v.Value)), nil
		}
		return "'" + escape(string(v.Value), '\'') + "'", nil
	case ast.BoolLit:
		return strconv.FormatBool(v.Value), nil
	}

	n, err := eval.Evaluate(e)
	if err != nil {
		return "", err
	}
	if t == ast.Int {
		return strconv.FormatInt(int64(n), 10), nil
	}
	return strconv.FormatFloat(n, 'g', -1, 64), nil
}

func assignment(a ast.Assignment) (string, error) {
	decl, err := declare(a.Type, a.Name)
	if err != nil {
		return "", err
	}
	val, err := value(a.Type, a.Value)
	if err != nil {
		return "", fmt.Errorf("%s: %w", a.Name, err)
	}
	return fmt.Sprintf("%s = %s;\n", decl, val), nil
}

func block(b ast.Block) (string, error) {
	var sb strings.Builder
	for _, statement := range b.Statements {
		a, ok := statement.(ast.Assignment)
		if !ok {
			return "", errors.UnsupportedExpression{What: fmt.Sprintf("statement %T", statement)}
		}
		line, err := assignment(a)
		if err != nil {
			return "", err
		}
		sb.WriteString("\t" + line)
	}
	return sb.String(), nil
}

func function(f ast.Function) (string, error) {
	var params []string
	for _, param := range f.Parameters {
		p, err := declare(param.Type, param.Name)
		if err != nil {
			return "", err
		}
		params = append(params, p)
	}

	ret := ast.Void
	if f.Returns != nil {
		ret = *f.Returns
	}
	retType, err := cType(ret)
	if err != nil {
		return "", err
	}

	body, err := block(f.Body)
	if err != nil {
		return "", fmt.Errorf("%s: %w", f.Name, err)
	}

	return fmt.Sprintf("%s %s(%s) {\n%s}\n", retType, f.Name, strings.Join(params, ", "), body), nil
}

// Generate emits a translation unit: the include prelude, then every top
// level node in source order.
func Generate(prog ast.Program) (string, error) {
	var sb strings.Builder

	for _, inc := range includes {
		fmt.Fprintf(&sb, "#include <%s>\n", inc)
	}

	for _, node := range prog.Toplevels {
		var (
			out string
			err error
		)
		switch n := node.(type) {
		case ast.Assignment:
			out, err = assignment(n)
		case ast.Function:
			out, err = function(n)
		default:
			err = errors.UnsupportedExpression{What: fmt.Sprintf("top level %T", node)}
		}
		if err != nil {
			return "", err
		}
		sb.WriteString("\n" + out)
	}

	return sb.String(), nil
}
