package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pontaoski/idkc/ast"
	"github.com/pontaoski/idkc/errors"
	"github.com/pontaoski/idkc/types"
)

func isOperand(kind types.TokenKind) bool {
	switch kind {
	case types.NUMBER, types.IDENT, types.STRING, types.CHAR, types.TRUE, types.FALSE:
		return true
	}
	return false
}

// expressionEnd holds the tokens that can never appear inside an expression.
// The scan stops at them so a missing SEMICOLON is reported by the statement.
var expressionEnd = []types.TokenKind{
	types.SEMICOLON, types.EOF,
	types.LBRACE, types.RBRACE, types.FN, types.ASSIGN, types.COMMA,
	types.INT, types.FLOAT, types.BOOL, types.STRINGTYPE,
}

// parseExpression consumes tokens up to, but not including, the SEMICOLON
// that ends the statement. Identifiers are resolved against table.
func (p *Parser) parseExpression(table *ast.SymbolTable) ast.Expression {
	start := p.peek()

	var infix []types.Token
	for !p.PeekIs(expressionEnd...) {
		infix = append(infix, p.advance())
	}

	postfix := toPostfix(infix)
	p.tracef("PARSING EXPRESSION: %s", lexemes(postfix))

	return reduce(postfix, table, start.Location)
}

// toPostfix reorders an infix token run into reverse polish notation using
// the shunting-yard algorithm.
func toPostfix(infix []types.Token) []types.Token {
	var ops, out []types.Token

	pop := func() types.Token {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		return top
	}

	for _, tok := range infix {
		switch {
		case isOperand(tok.Kind):
			out = append(out, tok)
		case tok.Kind == types.LPAREN:
			ops = append(ops, tok)
		case tok.Kind == types.RPAREN:
			for {
				if len(ops) == 0 {
					panic(errors.MismatchedParenthesis{Location: tok.Location})
				}
				top := pop()
				if top.Kind == types.LPAREN {
					break
				}
				out = append(out, top)
			}
		case Precedence(tok.Kind) != NotAnOperator:
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.Kind == types.LPAREN || !yields(top.Kind, tok.Kind) {
					break
				}
				out = append(out, pop())
			}
			ops = append(ops, tok)
		default:
			panic(errors.InvalidToken{Got: tok.Kind, Lexeme: tok.Lexeme, Location: tok.Location})
		}
	}

	for len(ops) > 0 {
		top := pop()
		if top.Kind == types.LPAREN {
			panic(errors.MismatchedParenthesis{Location: top.Location})
		}
		out = append(out, top)
	}

	return out
}

// reduce folds a postfix token run into a single expression tree.
func reduce(postfix []types.Token, table *ast.SymbolTable, at types.Span) ast.Expression {
	var values []ast.Expression

	for _, tok := range postfix {
		switch tok.Kind {
		case types.NUMBER:
			values = append(values, number(tok))
		case types.STRING:
			values = append(values, ast.StringLit{Value: tok.Lexeme})
		case types.CHAR:
			values = append(values, ast.CharLit{Value: []rune(tok.Lexeme)[0]})
		case types.TRUE:
			values = append(values, ast.BoolLit{Value: true})
		case types.FALSE:
			values = append(values, ast.BoolLit{Value: false})
		case types.IDENT:
			values = append(values, resolve(table, tok))
		default:
			if len(values) < 2 {
				panic(errors.InvalidExpression{
					Reason:   fmt.Sprintf("operator %s needs two operands", tok.Lexeme),
					Location: tok.Location,
				})
			}
			right, left := values[len(values)-1], values[len(values)-2]
			values = append(values[:len(values)-2], ast.BinaryExpr{
				Left:  left,
				Op:    tok.Kind,
				Right: right,
			})
		}
	}

	switch len(values) {
	case 0:
		panic(errors.InvalidExpression{Reason: "empty expression", Location: at})
	case 1:
		return values[0]
	default:
		panic(errors.InvalidExpression{
			Reason:   fmt.Sprintf("%d values without an operator between them", len(values)),
			Location: at,
		})
	}
}

// number keeps a literal without a '.' as an integer.
func number(tok types.Token) ast.Expression {
	if strings.Contains(tok.Lexeme, ".") {
		v, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			panic(errors.InvalidNumber{Lexeme: tok.Lexeme, Err: err, Location: tok.Location})
		}
		return ast.FloatLit{Value: v}
	}

	v, err := strconv.ParseInt(tok.Lexeme, 10, 64)
	if err != nil {
		panic(errors.InvalidNumber{Lexeme: tok.Lexeme, Err: err, Location: tok.Location})
	}
	return ast.IntLit{Value: v}
}

// resolve substitutes a copy of the expression the name was assigned.
func resolve(table *ast.SymbolTable, tok types.Token) ast.Expression {
	n, ok := table.Lookup(tok.Lexeme)
	if !ok {
		panic(errors.UndeclaredIdentifier{Name: tok.Lexeme, Location: tok.Location})
	}
	a, ok := n.(ast.Assignment)
	if !ok {
		panic(errors.NotAValue{Name: tok.Lexeme, Location: tok.Location})
	}
	return ast.Clone(a.Value)
}

func lexemes(toks []types.Token) string {
	parts := make([]string, len(toks))
	for i, tok := range toks {
		parts[i] = tok.Lexeme
	}
	return strings.Join(parts, " ")
}
