package lexer

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"github.com/pontaoski/idkc/errors"
	"github.com/pontaoski/idkc/types"
	"github.com/ztrue/tracerr"
)

var keywords = map[string]types.TokenKind{
	"fn":     types.FN,
	"if":     types.IF,
	"elif":   types.ELIF,
	"else":   types.ELSE,
	"return": types.RETURN,
	"int":    types.INT,
	"float":  types.FLOAT,
	"bool":   types.BOOL,
	"string": types.STRINGTYPE,
	"true":   types.TRUE,
	"false":  types.FALSE,
}

var specials = map[rune]types.TokenKind{
	':': types.COLON,
	'[': types.LBRACKET,
	']': types.RBRACKET,
	'{': types.LBRACE,
	'}': types.RBRACE,
	'(': types.LPAREN,
	')': types.RPAREN,
	';': types.SEMICOLON,
	',': types.COMMA,
	'/': types.SLASH,
	'%': types.PERCENT,
}

// doubles lists the operators that have a two character form. The second
// character is matched greedily.
var doubles = map[rune]struct {
	single types.TokenKind
	next   rune
	double types.TokenKind
}{
	'=': {types.ASSIGN, '=', types.EQUALS},
	'>': {types.GREATER, '=', types.GREATER_EQ},
	'<': {types.LESS, '=', types.LESS_EQ},
	'!': {types.NOT, '=', types.NOT_EQ},
	'&': {types.AND, '&', types.AND_LOGICAL},
	'|': {types.PIPE, '|', types.OR_LOGICAL},
	'+': {types.PLUS, '+', types.PLUS_PLUS},
	'-': {types.MINUS, '-', types.MINUS_MINUS},
	'*': {types.STAR, '*', types.POWER},
}

// Classify maps identifier text to its keyword kind, or IDENT.
func Classify(lit string) types.TokenKind {
	if kind, ok := keywords[lit]; ok {
		return kind
	}
	return types.IDENT
}

type Lexer struct {
	pos    types.Position
	reader *bufio.Reader
}

func NewLexer(reader io.Reader, filename string) *Lexer {
	return &Lexer{
		pos:    types.Position{Line: 1, Column: 0, Filename: filename},
		reader: bufio.NewReader(reader),
	}
}

// Tokenize lexes src in one go.
func Tokenize(src, filename string) ([]types.Token, error) {
	return NewLexer(strings.NewReader(src), filename).Tokenize()
}

// read consumes one rune, reporting ok=false at the end of input.
func (l *Lexer) read() (rune, bool) {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return 0, false
		}
		panic(err)
	}

	if r == '\n' {
		l.pos.Line++
		l.pos.Column = 0
	} else {
		l.pos.Column++
	}
	return r, true
}

// peek looks at the next rune without consuming it.
func (l *Lexer) peek() (rune, bool) {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return 0, false
		}
		panic(err)
	}
	if err := l.reader.UnreadRune(); err != nil {
		panic(err)
	}
	return r, true
}

func (l *Lexer) kinded(t types.TokenKind, lit string) types.Token {
	return types.Token{
		Kind:     t,
		Lexeme:   lit,
		Location: types.SingleCharSpan(l.pos),
	}
}

func identChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// lexIdent expects the first letter to have been consumed already.
func (l *Lexer) lexIdent(first rune) types.Token {
	from := l.pos
	var sb strings.Builder
	sb.WriteRune(first)

	for {
		r, ok := l.peek()
		if !ok || !identChar(r) {
			break
		}
		l.read()
		sb.WriteRune(r)
	}

	lit := sb.String()
	return types.Token{Kind: Classify(lit), Lexeme: lit, Location: types.Span{From: from, To: l.pos}}
}

// lexNumber accepts digits and at most one '.'.
func (l *Lexer) lexNumber(first rune) types.Token {
	from := l.pos
	var sb strings.Builder
	sb.WriteRune(first)
	seenDot := false

	for {
		r, ok := l.peek()
		if !ok {
			break
		}
		if r == '.' && !seenDot {
			seenDot = true
		} else if !isDigit(r) {
			break
		}
		l.read()
		sb.WriteRune(r)
	}

	return types.Token{Kind: types.NUMBER, Lexeme: sb.String(), Location: types.Span{From: from, To: l.pos}}
}

// lexString expects the opening quote to have been consumed. Escapes are
// kept as written.
func (l *Lexer) lexString() types.Token {
	from := l.pos
	var sb strings.Builder

	for {
		r, ok := l.read()
		if !ok {
			panic(errors.UnterminatedLiteral{What: "string", Location: types.Span{From: from, To: l.pos}})
		}
		if r == '"' {
			return types.Token{Kind: types.STRING, Lexeme: sb.String(), Location: types.Span{From: from, To: l.pos}}
		}
		sb.WriteRune(r)
	}
}

// lexChar expects the opening quote to have been consumed.
func (l *Lexer) lexChar() types.Token {
	from := l.pos

	r, ok := l.read()
	if !ok || r == '\'' {
		panic(errors.UnterminatedLiteral{What: "character", Location: types.Span{From: from, To: l.pos}})
	}
	closing, ok := l.read()
	if !ok || closing != '\'' {
		panic(errors.UnterminatedLiteral{What: "character", Location: types.Span{From: from, To: l.pos}})
	}

	return types.Token{Kind: types.CHAR, Lexeme: string(r), Location: types.Span{From: from, To: l.pos}}
}

// Lex returns the next token. Once the input is exhausted it keeps returning
// EOF. Lexical errors are raised as panics carrying an errors.Error; use
// Tokenize to get them back as values.
func (l *Lexer) Lex() types.Token {
	for {
		r, ok := l.read()
		if !ok {
			return l.kinded(types.EOF, "")
		}

		if unicode.IsSpace(r) {
			continue
		}

		if kind, ok := specials[r]; ok {
			return l.kinded(kind, string(r))
		}

		if op, ok := doubles[r]; ok {
			from := l.pos
			if next, ok := l.peek(); ok && next == op.next {
				l.read()
				return types.Token{Kind: op.double, Lexeme: string([]rune{r, next}), Location: types.Span{From: from, To: l.pos}}
			}
			return l.kinded(op.single, string(r))
		}

		switch {
		case r == '"':
			return l.lexString()
		case r == '\'':
			return l.lexChar()
		case isDigit(r):
			return l.lexNumber(r)
		case unicode.IsLetter(r):
			return l.lexIdent(r)
		}

		panic(errors.IllegalCharacter{Char: r, Location: types.SingleCharSpan(l.pos)})
	}
}

// Tokenize lexes the rest of the input. The result always ends with exactly
// one EOF token.
func (l *Lexer) Tokenize() (toks []types.Token, err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if !ok {
				panic(r)
			}
			toks = nil
			err = tracerr.Wrap(rerr)
		}
	}()

	for {
		tok := l.Lex()
		toks = append(toks, tok)
		if tok.Kind == types.EOF {
			return toks, nil
		}
	}
}
