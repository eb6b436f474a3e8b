// Package format renders a parsed rule Document back to its canonical
// DSL source text, mirroring the teacher's pkg/printer round-trip
// formatter (cmd/dwscript/cmd/fmt.go). Unlike the teacher's printer,
// which re-indents an AST expressed directly in source syntax, a rule
// Document is YAML-shaped: only the condition/action/expression leaves
// are DSL text, so Format emits normalized YAML with those leaves
// re-serialized through the same grammar the parser consumes.
package format

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/fireflyframework/rule-engine-go/internal/ast"
)

// Style names a layout for nested action/condition blocks, mirroring the
// teacher's printer.Style enum (StyleDetailed/StyleCompact/
// StyleMultiline). Format does not read it: every Style produces the same
// output.
type Style int

const (
	StyleDetailed Style = iota
	StyleCompact
)

// Options configures Format, mirroring the teacher's printer.Options.
type Options struct {
	Style       Style
	IndentWidth int
}

// DefaultOptions matches the teacher's printer defaults: detailed style,
// two-space indent.
func DefaultOptions() Options {
	return Options{Style: StyleDetailed, IndentWidth: 2}
}

// Format renders doc as normalized YAML DSL source text.
func Format(doc *ast.Document, opts Options) string {
	if opts.IndentWidth <= 0 {
		opts.IndentWidth = 2
	}
	p := &printer{opts: opts}
	p.printDocument(doc)
	return p.sb.String()
}

type printer struct {
	sb   strings.Builder
	opts Options
}

func (p *printer) ind(depth int) string {
	return strings.Repeat(" ", depth*p.opts.IndentWidth)
}

func (p *printer) line(depth int, format string, args ...any) {
	p.sb.WriteString(p.ind(depth))
	fmt.Fprintf(&p.sb, format, args...)
	p.sb.WriteString("\n")
}

func (p *printer) printDocument(doc *ast.Document) {
	p.line(0, "name: %s", quoteIfNeeded(doc.Name))
	if doc.Description != "" {
		p.line(0, "description: %s", quoteIfNeeded(doc.Description))
	}
	if doc.Version != "" {
		p.line(0, "version: %s", quoteIfNeeded(doc.Version))
	}
	if len(doc.Metadata) > 0 {
		p.line(0, "metadata:")
		for _, k := range sortedAnyKeys(doc.Metadata) {
			p.line(1, "%s: %s", k, quoteIfNeeded(fmt.Sprintf("%v", doc.Metadata[k])))
		}
	}
	if len(doc.Inputs) > 0 {
		p.line(0, "inputs:")
		for _, name := range sortedInputNames(doc.Inputs) {
			p.line(1, "%s: %s", name, valueTypeTag(doc.Inputs[name]))
		}
	}
	if len(doc.Constants) > 0 {
		p.line(0, "constants:")
		for _, c := range doc.Constants {
			p.line(1, "- code: %s", quoteIfNeeded(c.Code))
			p.line(2, "type: %s", valueTypeTag(c.Type))
			if c.DefaultValue != nil {
				p.line(2, "defaultValue: %s", quoteIfNeeded(fmt.Sprintf("%v", c.DefaultValue)))
			}
		}
	}
	if doc.CircuitBreaker != nil {
		p.line(0, "circuitBreaker:")
		p.line(1, "enabled: %t", doc.CircuitBreaker.Enabled)
		p.line(1, "failureThreshold: %d", doc.CircuitBreaker.FailureThreshold)
		p.line(1, "timeoutDuration: %d", doc.CircuitBreaker.TimeoutDuration)
		p.line(1, "recoveryTimeout: %d", doc.CircuitBreaker.RecoveryTimeout)
	}

	switch doc.Shape {
	case ast.ShapeSimple:
		p.printSimpleRule(0, doc.Simple)
	case ast.ShapeMultiRule:
		p.line(0, "rules:")
		for _, r := range doc.MultiRule {
			p.line(1, "- name: %s", quoteIfNeeded(r.Name))
			p.printSimpleRuleBody(2, r)
		}
	case ast.ShapeComplexConditional:
		p.line(0, "conditions:")
		p.printConditionalBlock(1, doc.ComplexConditional)
	}

	if len(doc.Output) > 0 {
		p.line(0, "output:")
		for _, k := range sortedStringKeys(doc.Output) {
			p.line(1, "%s: %s", k, quoteIfNeeded(doc.Output[k]))
		}
	}
}

func (p *printer) printSimpleRule(depth int, r *ast.SimpleRule) {
	if r == nil {
		return
	}
	if r.Name != "" {
		p.line(depth, "name: %s", quoteIfNeeded(r.Name))
	}
	p.printSimpleRuleBody(depth, r)
}

func (p *printer) printSimpleRuleBody(depth int, r *ast.SimpleRule) {
	if len(r.WhenConditions) > 0 {
		p.line(depth, "when:")
		for _, c := range r.WhenConditions {
			p.line(depth+1, "- %s", renderCondition(c))
		}
	}
	if len(r.ThenActions) > 0 {
		p.line(depth, "then:")
		for _, a := range r.ThenActions {
			p.line(depth+1, "- %s", renderAction(a))
		}
	}
	if len(r.ElseActions) > 0 {
		p.line(depth, "else:")
		for _, a := range r.ElseActions {
			p.line(depth+1, "- %s", renderAction(a))
		}
	}
}

func (p *printer) printConditionalBlock(depth int, b *ast.ConditionalBlock) {
	if b == nil {
		return
	}
	p.line(depth, "if: %s", renderCondition(b.If))
	p.line(depth, "then:")
	p.printActionBlock(depth+1, &b.Then)
	if b.Else != nil {
		p.line(depth, "else:")
		p.printActionBlock(depth+1, b.Else)
	}
}

func (p *printer) printActionBlock(depth int, b *ast.ActionBlock) {
	if b == nil {
		return
	}
	if len(b.Actions) > 0 {
		p.line(depth, "actions:")
		for _, a := range b.Actions {
			p.line(depth+1, "- %s", renderAction(a))
		}
	}
	if b.Conditions != nil {
		p.line(depth, "conditions:")
		p.printConditionalBlock(depth+1, b.Conditions)
	}
}

// renderCondition renders c as DSL condition text consumable by
// parser.ParseConditionString — the inverse of condParser.
func renderCondition(c ast.Condition) string {
	switch n := c.(type) {
	case *ast.Comparison:
		return renderComparison(n)
	case *ast.Logical:
		return renderLogical(n)
	case *ast.ExpressionCondition:
		return renderExpr(n.Expr)
	default:
		return ""
	}
}

func renderComparison(n *ast.Comparison) string {
	left := renderExpr(n.Left)
	switch n.Op {
	case "is_null", "is_not_null":
		return fmt.Sprintf("%s %s", left, n.Op)
	}
	if ast.IsPredicateName(string(n.Op)) && n.Right == nil {
		return fmt.Sprintf("%s %s", left, n.Op)
	}
	opText := comparisonOpText(n.Op)
	if n.RangeEnd != nil {
		return fmt.Sprintf("%s %s %s and %s", left, opText, renderExpr(n.Right), renderExpr(n.RangeEnd))
	}
	return fmt.Sprintf("%s %s %s", left, opText, renderExpr(n.Right))
}

var comparisonOpSpellings = map[ast.ComparisonOp]string{
	ast.CmpEq: "==", ast.CmpNeq: "!=", ast.CmpGt: ">", ast.CmpLt: "<",
	ast.CmpGte: ">=", ast.CmpLte: "<=",
	ast.CmpContains: "contains", ast.CmpNotContains: "not_contains",
	ast.CmpStartsWith: "starts_with", ast.CmpEndsWith: "ends_with",
	ast.CmpMatches: "matches",
	ast.CmpBetween: "between", ast.CmpNotBetween: "not_between",
	ast.CmpInList: "in_list", ast.CmpNotInList: "not_in_list",
	ast.CmpAgeAtLeast: "age_at_least", ast.CmpAgeLessThan: "age_less_than",
	ast.CmpLengthEquals: "length_equals", ast.CmpLengthGreaterThan: "length_greater_than",
	ast.CmpLengthLessThan: "length_less_than",
}

func comparisonOpText(op ast.ComparisonOp) string {
	if s, ok := comparisonOpSpellings[op]; ok {
		return s
	}
	return string(op)
}

func renderLogical(n *ast.Logical) string {
	switch n.Op {
	case ast.LogNot:
		return fmt.Sprintf("not %s", wrapIfLogical(n.Operands[0]))
	case ast.LogAnd:
		return joinOperands(n.Operands, "and")
	default:
		return joinOperands(n.Operands, "or")
	}
}

func joinOperands(ops []ast.Condition, sep string) string {
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = wrapIfLogical(op)
	}
	return strings.Join(parts, " "+sep+" ")
}

func wrapIfLogical(c ast.Condition) string {
	if l, ok := c.(*ast.Logical); ok && l.Op != ast.LogNot {
		return "(" + renderCondition(c) + ")"
	}
	return renderCondition(c)
}

// renderAction renders a as DSL action text consumable by
// parser.ParseActionString — the inverse of actionParser.
func renderAction(a ast.Action) string {
	switch n := a.(type) {
	case *ast.Set:
		return fmt.Sprintf("set %s to %s", n.VarName, renderExpr(n.ValueExpr))
	case *ast.Assignment:
		return fmt.Sprintf("%s %s %s", n.VarName, n.Op, renderExpr(n.ValueExpr))
	case *ast.Calculate:
		return fmt.Sprintf("calculate %s as %s", n.ResultVarName, renderExpr(n.Expr))
	case *ast.Run:
		return fmt.Sprintf("run %s as %s", n.ResultVarName, renderExpr(n.Expr))
	case *ast.ArithmeticAction:
		switch n.Op {
		case ast.ArithActionAdd:
			return fmt.Sprintf("add %s to %s", renderExpr(n.ValueExpr), n.VarName)
		case ast.ArithActionSubtract:
			return fmt.Sprintf("subtract %s from %s", renderExpr(n.ValueExpr), n.VarName)
		case ast.ArithActionMultiply:
			return fmt.Sprintf("multiply %s by %s", n.VarName, renderExpr(n.ValueExpr))
		default:
			return fmt.Sprintf("divide %s by %s", n.VarName, renderExpr(n.ValueExpr))
		}
	case *ast.List:
		switch n.Op {
		case ast.ListAppend:
			return fmt.Sprintf("append %s to %s", renderExpr(n.ValueExpr), n.ListVarName)
		case ast.ListPrepend:
			return fmt.Sprintf("prepend %s to %s", renderExpr(n.ValueExpr), n.ListVarName)
		default:
			return fmt.Sprintf("remove %s from %s", renderExpr(n.ValueExpr), n.ListVarName)
		}
	case *ast.FunctionCallAction:
		call := fmt.Sprintf("call %s", n.Name)
		if len(n.Args) > 0 {
			parts := make([]string, len(n.Args))
			for i, a := range n.Args {
				parts[i] = renderExpr(a)
			}
			call += fmt.Sprintf(" with [%s]", strings.Join(parts, ", "))
		}
		if n.ResultVarName != "" {
			call += fmt.Sprintf(" -> %s", n.ResultVarName)
		}
		return call
	case *ast.Conditional:
		s := fmt.Sprintf("if %s then %s", renderCondition(n.Cond), renderAction(n.ThenActions[0]))
		if len(n.ElseActions) > 0 {
			s += fmt.Sprintf(" else %s", renderAction(n.ElseActions[0]))
		}
		return s
	case *ast.ForEach:
		iter := n.IterVar
		if n.IndexVar != "" {
			iter += ", " + n.IndexVar
		}
		return fmt.Sprintf("forEach %s in %s: %s", iter, renderExpr(n.ListExpr), renderAction(n.Body[0]))
	case *ast.While:
		return fmt.Sprintf("while %s: %s", renderCondition(n.Cond), renderAction(n.Body[0]))
	case *ast.DoWhile:
		return fmt.Sprintf("do: %s while %s", renderAction(n.Body[0]), renderCondition(n.Cond))
	case *ast.CircuitBreaker:
		return fmt.Sprintf("circuit_breaker %s", renderExpr(n.MessageExpr))
	default:
		return ""
	}
}

// renderExpr renders e as DSL expression text consumable by
// parser.ParseExpressionString — the inverse of exprParser.
func renderExpr(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.Literal:
		return renderLiteral(n)
	case *ast.Variable:
		if n.IndexExpression != nil {
			return fmt.Sprintf("%s[%s]", n.Name, renderExpr(n.IndexExpression))
		}
		return n.Name
	case *ast.Unary:
		return renderUnary(n)
	case *ast.Binary:
		return fmt.Sprintf("(%s %s %s)", renderExpr(n.Left), binaryOpText(n.Op), renderExpr(n.Right))
	case *ast.Arithmetic:
		if len(n.Operands) == 2 && isInfixArithmetic(n.Op.Symbol) {
			return fmt.Sprintf("(%s %s %s)", renderExpr(n.Operands[0]), n.Op.Symbol, renderExpr(n.Operands[1]))
		}
		parts := make([]string, len(n.Operands))
		for i, op := range n.Operands {
			parts[i] = renderExpr(op)
		}
		return fmt.Sprintf("%s(%s)", arithmeticFuncName(n.Op.Symbol), strings.Join(parts, ", "))
	case *ast.FunctionCall:
		parts := make([]string, len(n.Args))
		for i, a := range n.Args {
			parts[i] = renderExpr(a)
		}
		return fmt.Sprintf("%s(%s)", n.Name, strings.Join(parts, ", "))
	case *ast.JsonPath:
		return fmt.Sprintf("jsonpath(%s, %s)", renderExpr(n.Source), strconv.Quote(n.Path))
	case *ast.RestCall:
		return fmt.Sprintf("rest_call(%s, %s)", strconv.Quote(n.Method), renderExpr(n.URL))
	default:
		return ""
	}
}

func isInfixArithmetic(symbol string) bool {
	switch symbol {
	case "+", "-", "*", "/":
		return true
	}
	return false
}

func arithmeticFuncName(symbol string) string {
	switch symbol {
	case "max":
		return "max"
	case "min":
		return "min"
	case "power", "**":
		return "power"
	case "modulo", "%":
		return "modulo"
	default:
		return symbol
	}
}

func renderLiteral(n *ast.Literal) string {
	return renderLiteralValue(n.Value)
}

func renderLiteralValue(v any) string {
	switch val := v.(type) {
	case string:
		return strconv.Quote(val)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return "null"
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = renderLiteralValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("%v", val)
	}
}

func renderUnary(n *ast.Unary) string {
	switch n.Op {
	case ast.OpNeg:
		return fmt.Sprintf("-%s", renderExpr(n.Operand))
	case ast.OpPos:
		return fmt.Sprintf("+%s", renderExpr(n.Operand))
	case ast.OpNot:
		return fmt.Sprintf("not %s", renderExpr(n.Operand))
	case ast.OpExists:
		return fmt.Sprintf("%s.exists()", renderExpr(n.Operand))
	case ast.OpIsNull:
		return fmt.Sprintf("is_null(%s)", renderExpr(n.Operand))
	case ast.OpNotNull:
		return fmt.Sprintf("is_not_null(%s)", renderExpr(n.Operand))
	case ast.OpToUpper:
		return fmt.Sprintf("%s.to_upper()", renderExpr(n.Operand))
	case ast.OpToLower:
		return fmt.Sprintf("%s.to_lower()", renderExpr(n.Operand))
	case ast.OpTrim:
		return fmt.Sprintf("%s.trim()", renderExpr(n.Operand))
	case ast.OpLength:
		return fmt.Sprintf("%s.length()", renderExpr(n.Operand))
	default:
		return fmt.Sprintf("%s.%s()", renderExpr(n.Operand), n.Op)
	}
}

func binaryOpText(op ast.BinaryOp) string {
	switch op {
	case ast.BinGt:
		return ">"
	case ast.BinLt:
		return "<"
	case ast.BinGte:
		return ">="
	case ast.BinLte:
		return "<="
	case ast.BinAnd:
		return "and"
	case ast.BinOr:
		return "or"
	default:
		return string(op)
	}
}

func valueTypeTag(vt ast.ValueType) string {
	switch vt {
	case ast.NUMBER:
		return "number"
	case ast.STRING:
		return "text"
	case ast.BOOLEAN:
		return "boolean"
	case ast.LIST:
		return "list"
	case ast.OBJECT:
		return "object"
	default:
		return "any"
	}
}

func quoteIfNeeded(s string) string {
	if s == "" {
		return `""`
	}
	needsQuote := false
	for _, r := range s {
		if r == ':' || r == '#' || r == '"' || r == '\'' {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return s
	}
	return strconv.Quote(s)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedStringKeys(m map[string]string) []string {
	return sortedKeys(m)
}

func sortedAnyKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedInputNames(m map[string]ast.ValueType) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
