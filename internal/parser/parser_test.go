package parser

import (
	"testing"

	"github.com/fireflyframework/rule-engine-go/internal/ast"
)

func TestParseConditionStringComparison(t *testing.T) {
	cond, errs := ParseConditionString(`creditScore at_least 650`)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	cmp, ok := cond.(*ast.Comparison)
	if !ok {
		t.Fatalf("expected *ast.Comparison, got %T", cond)
	}
	if cmp.Op != ast.CmpGte {
		t.Errorf("expected at_least to canonicalize to CmpGte, got %v", cmp.Op)
	}
}

func TestParseConditionStringLogicalAndOr(t *testing.T) {
	cond, errs := ParseConditionString(`a > 1 and b > 2 or c > 3`)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	logical, ok := cond.(*ast.Logical)
	if !ok || logical.Op != ast.LogOr {
		t.Fatalf("expected top-level OR, got %#v", cond)
	}
	if len(logical.Operands) != 2 {
		t.Fatalf("expected 2 OR operands, got %d", len(logical.Operands))
	}
	if _, ok := logical.Operands[0].(*ast.Logical); !ok {
		t.Errorf("expected first OR operand to be the AND subtree, got %T", logical.Operands[0])
	}
}

func TestParseConditionStringNot(t *testing.T) {
	cond, errs := ParseConditionString(`not x is_null`)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	logical, ok := cond.(*ast.Logical)
	if !ok || logical.Op != ast.LogNot {
		t.Fatalf("expected NOT node, got %#v", cond)
	}
}

func TestParseConditionStringTrailingTokenErrors(t *testing.T) {
	_, errs := ParseConditionString(`a > 1 b > 2`)
	if len(errs) == 0 {
		t.Fatalf("expected an error for trailing tokens after a complete condition")
	}
}

func TestParseActionStringSet(t *testing.T) {
	act, errs := ParseActionString(`set approval_tier to "gold"`)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	set, ok := act.(*ast.Set)
	if !ok || set.VarName != "approval_tier" {
		t.Fatalf("expected Set(approval_tier), got %#v", act)
	}
}

func TestParseActionStringCalculate(t *testing.T) {
	act, errs := ParseActionString(`calculate total as principal * rate`)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	calc, ok := act.(*ast.Calculate)
	if !ok || calc.ResultVarName != "total" {
		t.Fatalf("expected Calculate(total), got %#v", act)
	}
}

func TestParseExpressionStringPrecedence(t *testing.T) {
	expr, errs := ParseExpressionString(`1 + 2 * 3`)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	bin, ok := expr.(*ast.Binary)
	if !ok || bin.Op != ast.BinAdd {
		t.Fatalf("expected a top-level + Binary node, got %#v", expr)
	}
	if rhs, ok := bin.Right.(*ast.Binary); !ok || rhs.Op != ast.BinMul {
		t.Errorf("expected multiplication to bind tighter than addition, got %#v", bin.Right)
	}
}

func TestParseExpressionStringNamedArithmeticFunction(t *testing.T) {
	expr, errs := ParseExpressionString(`add(1, 2, 3)`)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	arith, ok := expr.(*ast.Arithmetic)
	if !ok || len(arith.Operands) != 3 {
		t.Fatalf("expected a 3-operand Arithmetic node, got %#v", expr)
	}
}

func TestParseExpressionStringListLiteral(t *testing.T) {
	expr, errs := ParseExpressionString(`["gold", "platinum"]`)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	lit, ok := expr.(*ast.Literal)
	if !ok || lit.Type != ast.LIST {
		t.Fatalf("expected list Literal, got %#v", expr)
	}
	items, ok := lit.Value.([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("expected 2-item list, got %#v", lit.Value)
	}
}

func TestParseDocumentSimpleShape(t *testing.T) {
	doc, errs := ParseDocument(`
name: creditCheck
inputs:
  creditScore: number
when:
  - creditScore at_least 650
then:
  - set approved to true
`)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if doc.Shape != ast.ShapeSimple {
		t.Errorf("expected ShapeSimple, got %v", doc.Shape)
	}
	if doc.Simple == nil || len(doc.Simple.WhenConditions) != 1 {
		t.Fatalf("expected one when-condition, got %#v", doc.Simple)
	}
}

func TestParseDocumentEmptySourceErrors(t *testing.T) {
	_, errs := ParseDocument("")
	if len(errs) != 1 || errs[0].Code != "PARSE_EMPTY_SOURCE" {
		t.Fatalf("expected PARSE_EMPTY_SOURCE, got %v", errs)
	}
}
