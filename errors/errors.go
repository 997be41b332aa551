package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/pontaoski/idkc/types"
	"github.com/ztrue/tracerr"
)

// Kind groups errors by the compiler stage that raised them.
type Kind int

const (
	Lexical Kind = iota
	Syntax
	NameResolution
	ExpressionShape
	MalformedDeclaration
	Unsupported
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical error"
	case Syntax:
		return "syntax error"
	case NameResolution:
		return "name resolution error"
	case ExpressionShape:
		return "invalid expression"
	case MalformedDeclaration:
		return "malformed declaration"
	case Unsupported:
		return "unsupported"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is implemented by every error the lexer, parser and evaluator raise.
type Error interface {
	error
	Kind() Kind
	Span() types.Span
}

// KindOf digs the structured error out of err, looking through tracerr and
// fmt.Errorf wrapping.
func KindOf(err error) (Error, bool) {
	if err == nil {
		return nil, false
	}
	var e Error
	if stderrors.As(tracerr.Unwrap(err), &e) {
		return e, true
	}
	return nil, false
}

type IllegalCharacter struct {
	Char     rune
	Location types.Span
}

func (e IllegalCharacter) Error() string {
	return fmt.Sprintf("invalid token '%c'. %s", e.Char, e.Location)
}
func (e IllegalCharacter) Kind() Kind       { return Lexical }
func (e IllegalCharacter) Span() types.Span { return e.Location }

type UnterminatedLiteral struct {
	What     string
	Location types.Span
}

func (e UnterminatedLiteral) Error() string {
	return fmt.Sprintf("unterminated %s literal. %s", e.What, e.Location)
}
func (e UnterminatedLiteral) Kind() Kind       { return Lexical }
func (e UnterminatedLiteral) Span() types.Span { return e.Location }

type InvalidNumber struct {
	Lexeme   string
	Err      error
	Location types.Span
}

func (e InvalidNumber) Error() string {
	return fmt.Sprintf("invalid number %q: %s. %s", e.Lexeme, e.Err, e.Location)
}
func (e InvalidNumber) Kind() Kind       { return Lexical }
func (e InvalidNumber) Span() types.Span { return e.Location }
func (e InvalidNumber) Unwrap() error    { return e.Err }

type ExpectedOneOfKindGotKind struct {
	Expected []types.TokenKind
	Got      types.TokenKind
	Lexeme   string
	Location types.Span
}

func (e ExpectedOneOfKindGotKind) Error() string {
	names := make([]string, len(e.Expected))
	for i, k := range e.Expected {
		names[i] = k.String()
	}
	if len(names) == 1 {
		return fmt.Sprintf("got a %s (%q), expected a %s. %s", e.Got, e.Lexeme, names[0], e.Location)
	}
	return fmt.Sprintf("got a %s (%q), expected one of %s. %s", e.Got, e.Lexeme, strings.Join(names, ", "), e.Location)
}
func (e ExpectedOneOfKindGotKind) Kind() Kind       { return Syntax }
func (e ExpectedOneOfKindGotKind) Span() types.Span { return e.Location }

type UndeclaredIdentifier struct {
	Name     string
	Location types.Span
}

func (e UndeclaredIdentifier) Error() string {
	return fmt.Sprintf("undeclared identifier %s. %s", e.Name, e.Location)
}
func (e UndeclaredIdentifier) Kind() Kind       { return NameResolution }
func (e UndeclaredIdentifier) Span() types.Span { return e.Location }

// NotAValue is raised when an expression names something other than an
// assignment, such as a function.
type NotAValue struct {
	Name     string
	Location types.Span
}

func (e NotAValue) Error() string {
	return fmt.Sprintf("%s does not name a value. %s", e.Name, e.Location)
}
func (e NotAValue) Kind() Kind       { return NameResolution }
func (e NotAValue) Span() types.Span { return e.Location }

type Redeclaration struct {
	Name     string
	Location types.Span
}

func (e Redeclaration) Error() string {
	return fmt.Sprintf("%s declared more than once in the same block. %s", e.Name, e.Location)
}
func (e Redeclaration) Kind() Kind       { return NameResolution }
func (e Redeclaration) Span() types.Span { return e.Location }

type MismatchedParenthesis struct {
	Location types.Span
}

func (e MismatchedParenthesis) Error() string {
	return fmt.Sprintf("mismatched parenthesis. %s", e.Location)
}
func (e MismatchedParenthesis) Kind() Kind       { return ExpressionShape }
func (e MismatchedParenthesis) Span() types.Span { return e.Location }

// InvalidToken is raised for tokens the expression grammar does not accept,
// including the relational and logical operators.
type InvalidToken struct {
	Got      types.TokenKind
	Lexeme   string
	Location types.Span
}

func (e InvalidToken) Error() string {
	return fmt.Sprintf("invalid token %s (%q) in expression. %s", e.Got, e.Lexeme, e.Location)
}
func (e InvalidToken) Kind() Kind       { return ExpressionShape }
func (e InvalidToken) Span() types.Span { return e.Location }

type InvalidExpression struct {
	Reason   string
	Location types.Span
}

func (e InvalidExpression) Error() string {
	return fmt.Sprintf("invalid expression: %s. %s", e.Reason, e.Location)
}
func (e InvalidExpression) Kind() Kind       { return ExpressionShape }
func (e InvalidExpression) Span() types.Span { return e.Location }

type MalformedSignature struct {
	Function string
	Reason   string
	Location types.Span
}

func (e MalformedSignature) Error() string {
	return fmt.Sprintf("malformed signature for function %s: %s. %s", e.Function, e.Reason, e.Location)
}
func (e MalformedSignature) Kind() Kind       { return MalformedDeclaration }
func (e MalformedSignature) Span() types.Span { return e.Location }

// UnsupportedExpression carries no location; expression nodes do not keep
// their source spans.
type UnsupportedExpression struct {
	What string
}

func (e UnsupportedExpression) Error() string {
	return fmt.Sprintf("expression kind not supported: %s", e.What)
}
func (e UnsupportedExpression) Kind() Kind       { return Unsupported }
func (e UnsupportedExpression) Span() types.Span { return types.Span{} }
