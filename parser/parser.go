package parser

import (
	"log"
	"strings"

	"github.com/pontaoski/idkc/ast"
	"github.com/pontaoski/idkc/errors"
	"github.com/pontaoski/idkc/lexer"
	"github.com/pontaoski/idkc/types"
	"github.com/ztrue/tracerr"
)

type Options struct {
	// Trace, when set, receives a line for every statement and expression
	// parsed.
	Trace *log.Logger

	// StrictRedeclaration rejects a second declaration of a name in the same
	// block instead of letting it replace the first.
	StrictRedeclaration bool
}

var typeKinds = []types.TokenKind{types.INT, types.FLOAT, types.BOOL, types.STRINGTYPE}

type Parser struct {
	tokens []types.Token
	pos    int
	opts   Options
	ast    ast.Program
}

func NewParser(tokens []types.Token, opts Options) *Parser {
	return &Parser{
		tokens: tokens,
		opts:   opts,
		ast:    ast.Program{Symbols: ast.NewSymbolTable()},
	}
}

// Parse parses a whole token stream.
func Parse(tokens []types.Token, opts Options) (ast.Program, error) {
	p := NewParser(tokens, opts)
	if err := p.Parse(); err != nil {
		return ast.Program{}, err
	}
	return p.Program(), nil
}

// ParseSource lexes and parses src.
func ParseSource(src, filename string, opts Options) (ast.Program, error) {
	toks, err := lexer.Tokenize(src, filename)
	if err != nil {
		return ast.Program{}, err
	}
	return Parse(toks, opts)
}

func (p *Parser) Program() ast.Program {
	return p.ast
}

func (p *Parser) tracef(format string, args ...interface{}) {
	if p.opts.Trace != nil {
		p.opts.Trace.Printf(format, args...)
	}
}

func recoverInto(err *error) {
	if r := recover(); r != nil {
		rerr, ok := r.(error)
		if !ok {
			panic(r)
		}
		*err = tracerr.Wrap(rerr)
	}
}

// peek returns the current token. Running off the end of a stream that lacks
// its EOF yields a synthetic EOF.
func (p *Parser) peek() types.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	if len(p.tokens) > 0 {
		last := p.tokens[len(p.tokens)-1]
		return types.Token{Kind: types.EOF, Location: types.SingleCharSpan(last.Location.To)}
	}
	return types.Token{Kind: types.EOF}
}

func (p *Parser) advance() types.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) PeekIs(k ...types.TokenKind) bool {
	token := p.peek()
	for _, kind := range k {
		if token.Kind == kind {
			return true
		}
	}

	return false
}

func (p *Parser) LexExpecting(k ...types.TokenKind) types.Token {
	token := p.peek()
	for _, kind := range k {
		if token.Kind == kind {
			return p.advance()
		}
	}

	panic(errors.ExpectedOneOfKindGotKind{
		Expected: k,
		Got:      token.Kind,
		Lexeme:   token.Lexeme,
		Location: token.Location,
	})
}

// Parse reads top level assignments and functions until EOF. Nothing is
// kept from a program that fails to parse.
func (p *Parser) Parse() (err error) {
	defer func() {
		if err != nil {
			p.ast = ast.Program{Symbols: ast.NewSymbolTable()}
		}
	}()
	defer recoverInto(&err)

	for {
		tok := p.peek()
		p.tracef("PARSING STATEMENT: %s", tok)

		switch {
		case tok.Kind == types.EOF:
			return
		case tok.Kind == types.FN:
			p.ast.Toplevels = append(p.ast.Toplevels, p.parseFunction(p.ast.Symbols))
		case tok.Kind.IsType():
			p.ast.Toplevels = append(p.ast.Toplevels, p.parseAssignment(p.ast.Symbols))
		default:
			p.LexExpecting(append([]types.TokenKind{types.FN, types.EOF}, typeKinds...)...)
		}
	}
}

// ParseExpression parses a single expression running up to a SEMICOLON or the
// end of the stream, resolving names in table.
func (p *Parser) ParseExpression(table *ast.SymbolTable) (expr ast.Expression, err error) {
	defer recoverInto(&err)

	return p.parseExpression(table), nil
}

func (p *Parser) declare(table *ast.SymbolTable, name string, n ast.Node, at types.Span) {
	if p.opts.StrictRedeclaration {
		if _, exists := table.Lookup(name); exists {
			panic(errors.Redeclaration{Name: name, Location: at})
		}
	}
	if table.Insert(name, n) {
		p.tracef("REDECLARED: %s", name)
	}
}

func (p *Parser) parseType() ast.Type {
	tok := p.LexExpecting(typeKinds...)
	t, _ := ast.TypeOf(tok.Kind)
	return t
}

// parseAssignment parses `type name = expression;` and binds name in table
// once the statement is complete.
func (p *Parser) parseAssignment(table *ast.SymbolTable) ast.Assignment {
	kind := p.parseType()
	name := p.LexExpecting(types.IDENT)
	p.LexExpecting(types.ASSIGN)
	value := p.parseExpression(table)
	p.LexExpecting(types.SEMICOLON)

	a := ast.Assignment{
		Type:  kind,
		Name:  name.Lexeme,
		Value: value,
	}
	p.tracef("PARSED ASSIGNMENT: %s", a)
	p.declare(table, a.Name, a, name.Location)

	return a
}

func (p *Parser) parseParameters() []ast.Parameter {
	var params []ast.Parameter

	p.LexExpecting(types.LPAREN)
	if !p.PeekIs(types.RPAREN) {
		for {
			kind := p.parseType()
			name := p.LexExpecting(types.IDENT)
			params = append(params, ast.Parameter{Type: kind, Name: name.Lexeme})

			if !p.PeekIs(types.COMMA) {
				break
			}
			p.LexExpecting(types.COMMA)
		}
	}
	p.LexExpecting(types.RPAREN)

	return params
}

// parseFunction parses `fn name(params) [: type] { ... }`. The function's
// name is bound in outer after its body, so a body cannot refer to it.
func (p *Parser) parseFunction(outer *ast.SymbolTable) ast.Function {
	p.LexExpecting(types.FN)
	name := p.LexExpecting(types.IDENT)
	params := p.parseParameters()

	var ret *ast.Type
	if p.PeekIs(types.COLON) {
		colon := p.advance()
		tok := p.peek()
		t, ok := ast.TypeOf(tok.Kind)
		if !ok {
			panic(errors.MalformedSignature{
				Function: name.Lexeme,
				Reason:   "expected a return type after ':', got " + describe(tok),
				Location: types.Span{From: colon.Location.From, To: tok.Location.To},
			})
		}
		p.advance()
		ret = &t
	} else if !p.PeekIs(types.LBRACE) {
		tok := p.peek()
		panic(errors.MalformedSignature{
			Function: name.Lexeme,
			Reason:   "expected ':' or '{' after the parameter list, got " + describe(tok),
			Location: tok.Location,
		})
	}

	fn := ast.Function{
		Name:       name.Lexeme,
		Parameters: params,
		Body:       p.parseBlock(),
		Returns:    ret,
	}
	p.tracef("PARSED FUNCTION: %s", fn)
	p.declare(outer, fn.Name, fn, name.Location)

	return fn
}

// parseBlock parses `{ assignment* }` into a block with its own table.
func (p *Parser) parseBlock() ast.Block {
	block := ast.Block{Symbols: ast.NewSymbolTable()}

	p.LexExpecting(types.LBRACE)
	for !p.PeekIs(types.RBRACE) {
		if !p.PeekIs(typeKinds...) {
			p.LexExpecting(append([]types.TokenKind{types.RBRACE}, typeKinds...)...)
		}
		block.Statements = append(block.Statements, p.parseAssignment(block.Symbols))
	}
	p.LexExpecting(types.RBRACE)

	return block
}

func describe(tok types.Token) string {
	if tok.Kind == types.EOF {
		return "end of input"
	}
	return tok.Kind.String() + " " + strings.TrimSpace(tok.Lexeme)
}
