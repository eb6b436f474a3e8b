// Package parser implements the three cooperating sub-parsers described
// in spec §4.2: a Pratt/precedence-climbing expression parser, a
// condition parser built on top of it, and a statement-style action
// parser, plus a document-level parser that classifies a decoded YAML
// map into one of the three rule-document shapes.
package parser

import (
	"github.com/fireflyframework/rule-engine-go/internal/diag"
	"github.com/fireflyframework/rule-engine-go/internal/lexer"
	"github.com/fireflyframework/rule-engine-go/internal/token"
)

// cursor is the shared token stream walked by the expression, condition,
// and action sub-parsers. All three embed *cursor so they can be
// combined freely (the condition parser calls into the expression parser
// for comparison operands, the action parser calls into both).
type cursor struct {
	tokens []token.Token
	pos    int
	errs   []*diag.Diagnostic
}

func newCursor(source string) *cursor {
	l := lexer.New(source)
	toks := l.Tokenize()
	c := &cursor{tokens: toks}
	for _, e := range l.Errors() {
		c.errs = append(c.errs, e.Diagnostic())
	}
	return c
}

func (c *cursor) cur() token.Token {
	if c.pos >= len(c.tokens) {
		return token.Token{Type: token.EOF}
	}
	return c.tokens[c.pos]
}

func (c *cursor) peek(n int) token.Token {
	i := c.pos + n
	if i >= len(c.tokens) {
		return token.Token{Type: token.EOF}
	}
	return c.tokens[i]
}

func (c *cursor) advance() token.Token {
	t := c.cur()
	if c.pos < len(c.tokens) {
		c.pos++
	}
	return t
}

func (c *cursor) at(t token.Type) bool {
	return c.cur().Type == t
}

func (c *cursor) atEOF() bool {
	return c.at(token.EOF)
}

func (c *cursor) expect(t token.Type) (token.Token, bool) {
	if c.at(t) {
		return c.advance(), true
	}
	c.errorf("PARSE_UNEXPECTED", c.cur().Location, "expected %s, got %q", t, c.cur().Lexeme)
	return c.cur(), false
}

func (c *cursor) errorf(code string, loc diag.Location, format string, args ...any) {
	c.errs = append(c.errs, diag.Newf(code, loc, format, args...))
}

// Errors returns all diagnostics accumulated by this cursor (lexical and
// syntactic).
func (c *cursor) Errors() []*diag.Diagnostic {
	return c.errs
}
