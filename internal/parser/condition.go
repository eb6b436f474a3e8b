package parser

import (
	"github.com/fireflyframework/rule-engine-go/internal/ast"
	"github.com/fireflyframework/rule-engine-go/internal/diag"
	"github.com/fireflyframework/rule-engine-go/internal/token"
)

// condParser builds Logical(AND/OR/NOT) trees over comparison atoms
// (spec §4.2).
type condParser struct {
	*cursor
}

// ParseConditionString parses one condition string, e.g.
// `creditScore at_least 650` or `(a and b) or not c`.
func ParseConditionString(source string) (ast.Condition, []*diag.Diagnostic) {
	c := newCursor(source)
	p := &condParser{c}
	cond := p.parseOr()
	if !p.atEOF() {
		p.errorf("PARSE_UNEXPECTED", p.cur().Location, "unexpected trailing token %q", p.cur().Lexeme)
	}
	return cond, p.Errors()
}

func (p *condParser) parseOr() ast.Condition {
	left := p.parseAnd()
	operands := []ast.Condition{left}
	loc := left.Location()
	for p.at(token.OR) {
		p.advance()
		operands = append(operands, p.parseAnd())
	}
	if len(operands) == 1 {
		return left
	}
	return &ast.Logical{Base: bat(loc), Op: ast.LogOr, Operands: operands}
}

func (p *condParser) parseAnd() ast.Condition {
	left := p.parseAtom()
	operands := []ast.Condition{left}
	loc := left.Location()
	for p.at(token.AND) {
		p.advance()
		operands = append(operands, p.parseAtom())
	}
	if len(operands) == 1 {
		return left
	}
	return &ast.Logical{Base: bat(loc), Op: ast.LogAnd, Operands: operands}
}

func (p *condParser) parseAtom() ast.Condition {
	tok := p.cur()
	switch tok.Type {
	case token.NOT:
		p.advance()
		operand := p.parseAtom()
		return &ast.Logical{Base: bat(tok.Location), Op: ast.LogNot, Operands: []ast.Condition{operand}}
	case token.LPAREN:
		p.advance()
		inner := p.parseOr()
		p.expect(token.RPAREN)
		return inner
	}
	return p.parseComparisonAtom()
}

var comparisonOpFromToken = map[token.Type]ast.ComparisonOp{
	token.EQ: ast.CmpEq, token.NEQ: ast.CmpNeq,
	token.GT: ast.CmpGt, token.LT: ast.CmpLt, token.GTE: ast.CmpGte, token.LTE: ast.CmpLte,
	token.CONTAINS: ast.CmpContains, token.NOT_CONTAINS: ast.CmpNotContains,
	token.STARTS_WITH: ast.CmpStartsWith, token.ENDS_WITH: ast.CmpEndsWith,
	token.MATCHES: ast.CmpMatches,
	token.BETWEEN: ast.CmpBetween, token.NOT_BETWEEN: ast.CmpNotBetween,
	token.IN_LIST: ast.CmpInList, token.NOT_IN_LIST: ast.CmpNotInList,
	token.IS_NULL: ast.ComparisonOp("is_null"), token.IS_NOT_NULL: ast.ComparisonOp("is_not_null"),
	token.AGE_AT_LEAST: ast.CmpAgeAtLeast, token.AGE_LESS_THAN: ast.CmpAgeLessThan,
	token.LENGTH_EQUALS: ast.CmpLengthEquals, token.LENGTH_GREATER_THAN: ast.CmpLengthGreaterThan,
	token.LENGTH_LESS_THAN: ast.CmpLengthLessThan,
}

// parseComparisonAtom parses `left [op [right [AND rangeEnd]]]`. The left
// operand is parsed at a precedence that excludes AND/OR/comparison
// operators so that the comparison operator itself is visible to this
// function instead of being consumed by the expression parser.
func (p *condParser) parseComparisonAtom() ast.Condition {
	ep := &exprParser{p.cursor}
	left := ep.parseExpression(precComparison + 1)

	tok := p.cur()

	if op, ok := comparisonOpFromToken[tok.Type]; ok {
		p.advance()
		return p.finishComparison(left, op, tok)
	}

	// domain/value predicate written as a bare identifier suffix, e.g.
	// `email is_email`, `amount is_positive`.
	if tok.Type == token.IDENTIFIER && ast.IsPredicateName(tok.Lexeme) {
		p.advance()
		return &ast.Comparison{Base: bat(left.Location()), Left: left, Op: ast.ComparisonOp(tok.Lexeme)}
	}

	return &ast.ExpressionCondition{Base: bat(left.Location()), Expr: left}
}

func (p *condParser) finishComparison(left ast.Expression, op ast.ComparisonOp, opTok token.Token) ast.Condition {
	cmp := &ast.Comparison{Base: bat(left.Location()), Left: left, Op: op}

	if op == "is_null" || op == "is_not_null" {
		return cmp // unary predicate, no right operand
	}

	ep := &exprParser{p.cursor}
	cmp.Right = ep.parseExpression(precComparison + 1)

	if op.IsRangeOp() {
		if _, ok := p.expect(token.AND); !ok {
			return cmp
		}
		cmp.RangeEnd = ep.parseExpression(precComparison + 1)
	}
	return cmp
}
