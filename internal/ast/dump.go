package ast

import (
	"fmt"
	"strings"
)

// Dump renders doc as an indented debug tree, mirroring the teacher's
// --dump-ast flag. It's a debugging aid, not a serialization format —
// internal/format owns round-trip printing.
func Dump(doc *Document) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Document %q (shape=%d)\n", doc.Name, doc.Shape)
	switch doc.Shape {
	case ShapeSimple:
		dumpRule(&sb, 1, doc.Simple)
	case ShapeMultiRule:
		for _, r := range doc.MultiRule {
			dumpRule(&sb, 1, r)
		}
	case ShapeComplexConditional:
		dumpBlock(&sb, 1, doc.ComplexConditional)
	}
	return sb.String()
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
}

func dumpRule(sb *strings.Builder, depth int, r *SimpleRule) {
	if r == nil {
		return
	}
	indent(sb, depth)
	fmt.Fprintf(sb, "Rule %q\n", r.Name)
	for _, c := range r.WhenConditions {
		indent(sb, depth+1)
		fmt.Fprintf(sb, "when: %s\n", dumpCondition(c))
	}
	for _, a := range r.ThenActions {
		indent(sb, depth+1)
		fmt.Fprintf(sb, "then: %s\n", dumpAction(a))
	}
	for _, a := range r.ElseActions {
		indent(sb, depth+1)
		fmt.Fprintf(sb, "else: %s\n", dumpAction(a))
	}
}

func dumpBlock(sb *strings.Builder, depth int, b *ConditionalBlock) {
	if b == nil {
		return
	}
	indent(sb, depth)
	fmt.Fprintf(sb, "if: %s\n", dumpCondition(b.If))
	indent(sb, depth+1)
	sb.WriteString("then:\n")
	for _, a := range b.Then.Actions {
		indent(sb, depth+2)
		fmt.Fprintf(sb, "%s\n", dumpAction(a))
	}
	if b.Then.Conditions != nil {
		dumpBlock(sb, depth+2, b.Then.Conditions)
	}
	if b.Else != nil {
		indent(sb, depth+1)
		sb.WriteString("else:\n")
		for _, a := range b.Else.Actions {
			indent(sb, depth+2)
			fmt.Fprintf(sb, "%s\n", dumpAction(a))
		}
		if b.Else.Conditions != nil {
			dumpBlock(sb, depth+2, b.Else.Conditions)
		}
	}
}

func dumpCondition(c Condition) string {
	switch n := c.(type) {
	case *Comparison:
		if n.Right == nil {
			return fmt.Sprintf("Comparison(%s %s)", dumpExpr(n.Left), n.Op)
		}
		if n.RangeEnd != nil {
			return fmt.Sprintf("Comparison(%s %s %s and %s)", dumpExpr(n.Left), n.Op, dumpExpr(n.Right), dumpExpr(n.RangeEnd))
		}
		return fmt.Sprintf("Comparison(%s %s %s)", dumpExpr(n.Left), n.Op, dumpExpr(n.Right))
	case *Logical:
		parts := make([]string, len(n.Operands))
		for i, op := range n.Operands {
			parts[i] = dumpCondition(op)
		}
		return fmt.Sprintf("Logical(%s %s)", n.Op, strings.Join(parts, ", "))
	case *ExpressionCondition:
		return fmt.Sprintf("ExpressionCondition(%s)", dumpExpr(n.Expr))
	default:
		return "<nil-condition>"
	}
}

func dumpExpr(e Expression) string {
	switch n := e.(type) {
	case *Literal:
		return fmt.Sprintf("%v", n.Value)
	case *Variable:
		if n.IndexExpression != nil {
			return fmt.Sprintf("%s[%s]", n.Name, dumpExpr(n.IndexExpression))
		}
		return n.Name
	case *Unary:
		return fmt.Sprintf("%s(%s)", n.Op, dumpExpr(n.Operand))
	case *Binary:
		return fmt.Sprintf("(%s %s %s)", dumpExpr(n.Left), n.Op, dumpExpr(n.Right))
	case *Arithmetic:
		parts := make([]string, len(n.Operands))
		for i, op := range n.Operands {
			parts[i] = dumpExpr(op)
		}
		return fmt.Sprintf("%s(%s)", n.Op.Symbol, strings.Join(parts, ", "))
	case *FunctionCall:
		parts := make([]string, len(n.Args))
		for i, a := range n.Args {
			parts[i] = dumpExpr(a)
		}
		return fmt.Sprintf("%s(%s)", n.Name, strings.Join(parts, ", "))
	case *JsonPath:
		return fmt.Sprintf("jsonpath(%s, %q)", dumpExpr(n.Source), n.Path)
	case *RestCall:
		return fmt.Sprintf("rest(%s %s)", n.Method, dumpExpr(n.URL))
	default:
		return "<nil-expr>"
	}
}

func dumpAction(a Action) string {
	switch n := a.(type) {
	case *Set:
		return fmt.Sprintf("set %s to %s", n.VarName, dumpExpr(n.ValueExpr))
	case *Assignment:
		return fmt.Sprintf("%s %s %s", n.VarName, n.Op, dumpExpr(n.ValueExpr))
	case *Calculate:
		return fmt.Sprintf("calculate %s as %s", n.ResultVarName, dumpExpr(n.Expr))
	case *Run:
		return fmt.Sprintf("run %s as %s", n.ResultVarName, dumpExpr(n.Expr))
	case *ArithmeticAction:
		return fmt.Sprintf("%s %s %s", n.Op, dumpExpr(n.ValueExpr), n.VarName)
	case *List:
		return fmt.Sprintf("%s %s %s", n.Op, dumpExpr(n.ValueExpr), n.ListVarName)
	case *FunctionCallAction:
		return fmt.Sprintf("call %s -> %s", n.Name, n.ResultVarName)
	case *Conditional:
		return fmt.Sprintf("if %s then (%d actions)", dumpCondition(n.Cond), len(n.ThenActions))
	case *ForEach:
		return fmt.Sprintf("forEach %s in %s", n.IterVar, dumpExpr(n.ListExpr))
	case *While:
		return fmt.Sprintf("while %s", dumpCondition(n.Cond))
	case *DoWhile:
		return fmt.Sprintf("do ... while %s", dumpCondition(n.Cond))
	case *CircuitBreaker:
		return fmt.Sprintf("circuit_breaker %s", dumpExpr(n.MessageExpr))
	default:
		return "<nil-action>"
	}
}
