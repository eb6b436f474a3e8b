package parser

import (
	"github.com/fireflyframework/rule-engine-go/internal/ast"
	"github.com/fireflyframework/rule-engine-go/internal/diag"
	"github.com/fireflyframework/rule-engine-go/internal/token"
)

// actionParser parses one action statement (spec §4.2), dispatched by its
// leading keyword. Multi-action bodies (the ACTIONS list after `then`,
// `else`, `do`, ...) are assembled at the document-parser level from a
// YAML action list; inline single-line forms here recurse into exactly
// one nested action per branch, matching the grammar in spec §4.2.
type actionParser struct {
	*cursor
}

// ParseActionString parses a single DSL action statement.
func ParseActionString(source string) (ast.Action, []*diag.Diagnostic) {
	c := newCursor(source)
	p := &actionParser{c}
	act := p.parseAction()
	if !p.atEOF() {
		p.errorf("PARSE_UNEXPECTED", p.cur().Location, "unexpected trailing token %q", p.cur().Lexeme)
	}
	return act, p.Errors()
}

func (p *actionParser) parseAction() ast.Action {
	tok := p.cur()
	switch tok.Type {
	case token.KW_SET:
		return p.parseSet()
	case token.KW_CALCULATE:
		return p.parseCalculate()
	case token.KW_RUN:
		return p.parseRun()
	case token.KW_ADD:
		return p.parseAddSubtract(ast.ArithActionAdd, token.KW_TO)
	case token.KW_SUBTRACT:
		return p.parseAddSubtract(ast.ArithActionSubtract, token.KW_FROM)
	case token.KW_MULTIPLY:
		return p.parseMulDivide(ast.ArithActionMultiply)
	case token.KW_DIVIDE:
		return p.parseMulDivide(ast.ArithActionDivide)
	case token.KW_APPEND:
		return p.parseListAction(ast.ListAppend, token.KW_TO)
	case token.KW_PREPEND:
		return p.parseListAction(ast.ListPrepend, token.KW_TO)
	case token.KW_REMOVE:
		return p.parseListAction(ast.ListRemove, token.KW_FROM)
	case token.KW_CALL:
		return p.parseCall()
	case token.KW_IF:
		return p.parseConditional()
	case token.KW_FOREACH:
		return p.parseForEach()
	case token.KW_WHILE:
		return p.parseWhile()
	case token.KW_DO:
		return p.parseDoWhile()
	case token.KW_CIRCUIT_BREAKER:
		return p.parseCircuitBreaker()
	default:
		p.errorf("PARSE_UNEXPECTED", tok.Location, "expected an action keyword, got %q", tok.Lexeme)
		p.advance()
		return nil
	}
}

func (p *actionParser) exprUntil(stops ...token.Type) ast.Expression {
	ep := &exprParser{p.cursor}
	// Expression parsing naturally stops at tokens it has no precedence
	// entry for, so keywords like `to`/`from`/`by` already terminate the
	// expression; stops is unused by the climbing parser itself but
	// documents intent at call sites.
	_ = stops
	return ep.parseExpression(precLowest)
}

func (p *actionParser) parseSet() ast.Action {
	start, _ := p.expect(token.KW_SET)
	name, _ := p.expect(token.IDENTIFIER)
	p.expect(token.KW_TO)
	val := p.exprUntil()
	return &ast.Set{Base: bat(start.Location), VarName: name.Lexeme, ValueExpr: val}
}

func (p *actionParser) parseCalculate() ast.Action {
	start, _ := p.expect(token.KW_CALCULATE)
	name, _ := p.expect(token.IDENTIFIER)
	p.expect(token.KW_AS)
	val := p.exprUntil()
	return &ast.Calculate{Base: bat(start.Location), ResultVarName: name.Lexeme, Expr: val}
}

func (p *actionParser) parseRun() ast.Action {
	start, _ := p.expect(token.KW_RUN)
	name, _ := p.expect(token.IDENTIFIER)
	p.expect(token.KW_AS)
	val := p.exprUntil()
	return &ast.Run{Base: bat(start.Location), ResultVarName: name.Lexeme, Expr: val}
}

func (p *actionParser) parseAddSubtract(op ast.ArithmeticActionOp, sep token.Type) ast.Action {
	start := p.advance() // add | subtract
	val := p.exprUntil()
	p.expect(sep)
	name, _ := p.expect(token.IDENTIFIER)
	return &ast.ArithmeticAction{Base: bat(start.Location), VarName: name.Lexeme, Op: op, ValueExpr: val}
}

func (p *actionParser) parseMulDivide(op ast.ArithmeticActionOp) ast.Action {
	start := p.advance() // multiply | divide
	name, _ := p.expect(token.IDENTIFIER)
	p.expect(token.KW_BY)
	val := p.exprUntil()
	return &ast.ArithmeticAction{Base: bat(start.Location), VarName: name.Lexeme, Op: op, ValueExpr: val}
}

func (p *actionParser) parseListAction(op ast.ListOp, sep token.Type) ast.Action {
	start := p.advance() // append | prepend | remove
	val := p.exprUntil()
	p.expect(sep)
	name, _ := p.expect(token.IDENTIFIER)
	return &ast.List{Base: bat(start.Location), Op: op, ValueExpr: val, ListVarName: name.Lexeme}
}

func (p *actionParser) parseCall() ast.Action {
	start, _ := p.expect(token.KW_CALL)
	name, _ := p.expect(token.IDENTIFIER)
	var args []ast.Expression
	if p.at(token.KW_WITH) {
		p.advance()
		if p.at(token.LBRACKET) {
			ep := &exprParser{p.cursor}
			p.advance()
			for !p.at(token.RBRACKET) && !p.atEOF() {
				args = append(args, ep.parseExpression(precLowest))
				if p.at(token.COMMA) {
					p.advance()
					continue
				}
				break
			}
			p.expect(token.RBRACKET)
		}
	}
	act := &ast.FunctionCallAction{Base: bat(start.Location), Name: name.Lexeme, Args: args}
	if p.at(token.ARROW) {
		p.advance()
		resName, _ := p.expect(token.IDENTIFIER)
		act.ResultVarName = resName.Lexeme
	}
	return act
}

func (p *actionParser) parseConditional() ast.Action {
	start, _ := p.expect(token.KW_IF)
	cp := &condParser{p.cursor}
	cond := cp.parseOr()
	p.expect(token.KW_THEN)
	thenAct := p.parseAction()
	c := &ast.Conditional{Base: bat(start.Location), Cond: cond, ThenActions: []ast.Action{thenAct}}
	if p.at(token.KW_ELSE) {
		p.advance()
		elseAct := p.parseAction()
		c.ElseActions = []ast.Action{elseAct}
	}
	return c
}

func (p *actionParser) parseForEach() ast.Action {
	start, _ := p.expect(token.KW_FOREACH)
	iter, _ := p.expect(token.IDENTIFIER)
	fe := &ast.ForEach{Base: bat(start.Location), IterVar: iter.Lexeme}
	if p.at(token.COMMA) {
		p.advance()
		idx, _ := p.expect(token.IDENTIFIER)
		fe.IndexVar = idx.Lexeme
	}
	p.expect(token.KW_IN)
	ep := &exprParser{p.cursor}
	fe.ListExpr = ep.parseExpression(precLowest)
	p.expect(token.COLON)
	body := p.parseAction()
	fe.Body = []ast.Action{body}
	return fe
}

func (p *actionParser) parseWhile() ast.Action {
	start, _ := p.expect(token.KW_WHILE)
	cp := &condParser{p.cursor}
	cond := cp.parseOr()
	p.expect(token.COLON)
	body := p.parseAction()
	return &ast.While{Base: bat(start.Location), Cond: cond, Body: []ast.Action{body}, MaxIterations: ast.DefaultMaxIterations}
}

func (p *actionParser) parseDoWhile() ast.Action {
	start, _ := p.expect(token.KW_DO)
	p.expect(token.COLON)
	body := p.parseAction()
	p.expect(token.KW_WHILE)
	cp := &condParser{p.cursor}
	cond := cp.parseOr()
	return &ast.DoWhile{Base: bat(start.Location), Body: []ast.Action{body}, Cond: cond, MaxIterations: ast.DefaultMaxIterations}
}

func (p *actionParser) parseCircuitBreaker() ast.Action {
	start, _ := p.expect(token.KW_CIRCUIT_BREAKER)
	ep := &exprParser{p.cursor}
	msg := ep.parseExpression(precLowest)
	return &ast.CircuitBreaker{Base: bat(start.Location), MessageExpr: msg}
}
