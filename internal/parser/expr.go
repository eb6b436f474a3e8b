package parser

import (
	"github.com/fireflyframework/rule-engine-go/internal/ast"
	"github.com/fireflyframework/rule-engine-go/internal/diag"
	"github.com/fireflyframework/rule-engine-go/internal/token"
)

// precedence levels, lowest first (spec §4.2).
const (
	precLowest = iota
	precOr
	precAnd
	precComparison
	precAdditive
	precMultiplicative
	precPower
	precUnary
)

var binaryPrecedence = map[token.Type]int{
	token.OR:      precOr,
	token.AND:     precAnd,
	token.EQ:      precComparison,
	token.NEQ:     precComparison,
	token.GT:      precComparison,
	token.LT:      precComparison,
	token.GTE:     precComparison,
	token.LTE:     precComparison,
	token.PLUS:    precAdditive,
	token.MINUS:   precAdditive,
	token.STAR:    precMultiplicative,
	token.SLASH:   precMultiplicative,
	token.PERCENT: precMultiplicative,
	token.POWER:   precPower,
}

var binaryOpSymbol = map[token.Type]ast.BinaryOp{
	token.OR: ast.BinOr, token.AND: ast.BinAnd,
	token.EQ: ast.BinEq, token.NEQ: ast.BinNeq,
	token.GT: ast.BinGt, token.LT: ast.BinLt, token.GTE: ast.BinGte, token.LTE: ast.BinLte,
	token.PLUS: ast.BinAdd, token.MINUS: ast.BinSub,
	token.STAR: ast.BinMul, token.SLASH: ast.BinDiv, token.PERCENT: ast.BinMod,
	token.POWER: ast.BinPow,
}

// exprParser is a Pratt/precedence-climbing parser over a shared cursor.
type exprParser struct {
	*cursor
}

// ParseExpressionString parses a standalone expression from DSL source
// text (e.g. the right-hand side of `calculate X as EXPR`).
func ParseExpressionString(source string) (ast.Expression, []*diag.Diagnostic) {
	c := newCursor(source)
	p := &exprParser{c}
	expr := p.parseExpression(precLowest)
	if !p.atEOF() {
		p.errorf("PARSE_UNEXPECTED", p.cur().Location, "unexpected trailing token %q", p.cur().Lexeme)
	}
	return expr, p.Errors()
}

func bat(loc diag.Location) ast.Base { return ast.Base{Loc: loc} }

func (p *exprParser) parseExpression(minPrec int) ast.Expression {
	left := p.parseUnary()
	for {
		prec, ok := binaryPrecedence[p.cur().Type]
		if !ok || prec < minPrec {
			break
		}
		opTok := p.advance()
		// power is right-associative; everything else left-associative
		nextMin := prec + 1
		if opTok.Type == token.POWER {
			nextMin = prec
		}
		right := p.parseExpression(nextMin)
		left = &ast.Binary{
			Base:  bat(left.Location()),
			Op:    binaryOpSymbol[opTok.Type],
			Left:  left,
			Right: right,
		}
	}
	return left
}

func (p *exprParser) parseUnary() ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case token.MINUS:
		p.advance()
		return &ast.Unary{Base: bat(tok.Location), Op: ast.OpNeg, Operand: p.parseExpression(precUnary)}
	case token.PLUS:
		p.advance()
		return &ast.Unary{Base: bat(tok.Location), Op: ast.OpPos, Operand: p.parseExpression(precUnary)}
	case token.NOT:
		p.advance()
		return &ast.Unary{Base: bat(tok.Location), Op: ast.OpNot, Operand: p.parseExpression(precUnary)}
	}
	return p.parsePostfix(p.parsePrimary())
}

// parsePostfix absorbs trailing `.methodName()` style unary-as-method
// calls (`email.is_email()`, `name.trim()`) on top of a primary
// expression; the bare prefix forms (`trim(name)`) go through
// parseCallOrArithmetic instead.
func (p *exprParser) parsePostfix(e ast.Expression) ast.Expression {
	for p.at(token.DOT) {
		p.advance()
		name, _ := p.expect(token.IDENTIFIER)
		if p.at(token.LPAREN) {
			p.parseArgList() // unary method calls take no arguments; discard empty parens
		}
		e = &ast.Unary{Base: bat(name.Location), Op: ast.UnaryOp(name.Lexeme), Operand: e}
	}
	return e
}

func (p *exprParser) parsePrimary() ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case token.KW_ADD, token.KW_SUBTRACT, token.KW_MULTIPLY, token.KW_DIVIDE:
		// The arithmetic action keywords double as n-ary function names
		// in expression position: add(a, b, c).
		if p.peek(1).Type == token.LPAREN {
			p.advance()
			return p.parseCallOrArithmetic(tok)
		}
	}
	switch tok.Type {
	case token.NUMBER:
		p.advance()
		return &ast.Literal{Base: bat(tok.Location), Value: tok.Literal, Type: ast.NUMBER}
	case token.STRING:
		p.advance()
		return &ast.Literal{Base: bat(tok.Location), Value: tok.Literal, Type: ast.STRING}
	case token.BOOLEAN:
		p.advance()
		return &ast.Literal{Base: bat(tok.Location), Value: tok.Literal, Type: ast.BOOLEAN}
	case token.NULL:
		p.advance()
		return &ast.Literal{Base: bat(tok.Location), Value: nil, Type: ast.NULLTYPE}
	case token.LPAREN:
		p.advance()
		e := p.parseExpression(precLowest)
		p.expect(token.RPAREN)
		return e
	case token.LBRACKET:
		return p.parseListLiteral()
	case token.IDENTIFIER:
		p.advance()
		if p.at(token.LPAREN) {
			return p.parseCallOrArithmetic(tok)
		}
		v := &ast.Variable{Base: bat(tok.Location), Name: tok.Lexeme, DeclaredType: ast.ANY}
		if p.at(token.LBRACKET) {
			p.advance()
			v.IndexExpression = p.parseExpression(precLowest)
			p.expect(token.RBRACKET)
		}
		return v
	default:
		p.errorf("PARSE_UNEXPECTED", tok.Location, "unexpected token %q in expression", tok.Lexeme)
		p.advance()
		return &ast.Literal{Base: bat(tok.Location), Value: nil, Type: ast.NULLTYPE}
	}
}

func (p *exprParser) parseListLiteral() ast.Expression {
	start := p.cur().Location
	p.expect(token.LBRACKET)
	var items []any
	var exprs []ast.Expression
	allLiteral := true
	for !p.at(token.RBRACKET) && !p.atEOF() {
		e := p.parseExpression(precLowest)
		exprs = append(exprs, e)
		if lit, ok := e.(*ast.Literal); ok {
			items = append(items, lit.Value)
		} else {
			allLiteral = false
		}
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBRACKET)
	if allLiteral {
		return &ast.Literal{Base: bat(start), Value: items, Type: ast.LIST}
	}
	// contains non-literal elements: represent as a list-builder call so
	// the evaluator can still build it dynamically.
	return &ast.FunctionCall{Base: bat(start), Name: "__list", Args: exprs}
}

func (p *exprParser) parseArgList() []ast.Expression {
	p.expect(token.LPAREN)
	var args []ast.Expression
	for !p.at(token.RPAREN) && !p.atEOF() {
		args = append(args, p.parseExpression(precLowest))
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return args
}

func (p *exprParser) parseCallOrArithmetic(name token.Token) ast.Expression {
	args := p.parseArgList()
	if op, ok := ast.ArithmeticOps[name.Lexeme]; ok {
		if len(args) < op.Min || (op.Max >= 0 && len(args) > op.Max) {
			p.errorf("PARSE_VALIDATION_001", name.Location, "%s expects between %d and %d operands, got %d",
				name.Lexeme, op.Min, op.Max, len(args))
		}
		return &ast.Arithmetic{Base: bat(name.Location), Op: op, Operands: args}
	}
	return &ast.FunctionCall{Base: bat(name.Location), Name: name.Lexeme, Args: args}
}
