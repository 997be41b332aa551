package errors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pontaoski/idkc/types"
	"github.com/ztrue/tracerr"
)

func TestKindOf(t *testing.T) {
	at := types.SingleCharSpan(types.Position{Line: 3, Column: 7, Filename: "a.idk"})
	base := UndeclaredIdentifier{Name: "x", Location: at}

	for _, err := range []error{
		base,
		tracerr.Wrap(base),
		fmt.Errorf("while parsing: %w", base),
	} {
		e, ok := KindOf(err)
		if !ok {
			t.Fatalf("%v: not recognised", err)
		}
		if e.Kind() != NameResolution || e.Span() != at {
			t.Errorf("%v: kind %s span %s", err, e.Kind(), e.Span())
		}
	}

	if _, ok := KindOf(nil); ok {
		t.Error("nil recognised")
	}
	if _, ok := KindOf(fmt.Errorf("plain")); ok {
		t.Error("plain error recognised")
	}
}

func TestMessages(t *testing.T) {
	at := types.SingleCharSpan(types.Position{Line: 1, Column: 2, Filename: "m.idk"})
	tests := []struct {
		err  error
		want string
	}{
		{IllegalCharacter{Char: '@', Location: at}, "invalid token '@'. m.idk:1:2"},
		{ExpectedOneOfKindGotKind{Expected: []types.TokenKind{types.SEMICOLON}, Got: types.EOF, Location: at}, "got a EOF (\"\"), expected a SEMICOLON"},
		{ExpectedOneOfKindGotKind{Expected: []types.TokenKind{types.RBRACE, types.INT}, Got: types.IDENT, Lexeme: "x", Location: at}, "expected one of RBRACE, INT"},
		{MismatchedParenthesis{Location: at}, "mismatched parenthesis"},
		{MalformedSignature{Function: "f", Reason: "no type", Location: at}, "malformed signature for function f: no type"},
		{UnsupportedExpression{What: "ast.StringLit"}, "expression kind not supported: ast.StringLit"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); !strings.Contains(got, tt.want) {
			t.Errorf("%q does not contain %q", got, tt.want)
		}
	}
}
