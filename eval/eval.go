// Package eval reduces closed arithmetic expression trees to a number. It is
// used to check parsed expressions and to fold constants in the backends.
package eval

import (
	"fmt"
	"math"

	"github.com/pontaoski/idkc/ast"
	"github.com/pontaoski/idkc/errors"
	"github.com/pontaoski/idkc/types"
)

// Evaluate widens integers to float64 and follows IEEE semantics, so x/0
// yields an infinity rather than an error.
func Evaluate(e ast.Expression) (float64, error) {
	switch v := e.(type) {
	case ast.IntLit:
		return float64(v.Value), nil
	case ast.FloatLit:
		return v.Value, nil
	case ast.BinaryExpr:
		left, err := Evaluate(v.Left)
		if err != nil {
			return 0, err
		}
		right, err := Evaluate(v.Right)
		if err != nil {
			return 0, err
		}

		switch v.Op {
		case types.PLUS:
			return left + right, nil
		case types.MINUS:
			return left - right, nil
		case types.STAR:
			return left * right, nil
		case types.SLASH:
			return left / right, nil
		case types.PERCENT:
			return math.Mod(left, right), nil
		}
		return 0, errors.UnsupportedExpression{What: "operator " + v.Op.String()}
	case nil:
		return 0, errors.UnsupportedExpression{What: "empty expression"}
	}

	return 0, errors.UnsupportedExpression{What: fmt.Sprintf("%T", e)}
}
