package semantic

import "github.com/fireflyframework/rule-engine-go/internal/ast"

var rangeOps = map[ast.ComparisonOp]bool{
	ast.CmpBetween:    true,
	ast.CmpNotBetween: true,
}

var numericCompareOps = map[ast.ComparisonOp]bool{
	ast.CmpGt: true, ast.CmpLt: true, ast.CmpGte: true, ast.CmpLte: true,
}

var stringMatchOps = map[ast.ComparisonOp]bool{
	ast.CmpContains: true, ast.CmpNotContains: true,
	ast.CmpStartsWith: true, ast.CmpEndsWith: true, ast.CmpMatches: true,
}

var listMembershipOps = map[ast.ComparisonOp]bool{
	ast.CmpInList: true, ast.CmpNotInList: true,
}

// validateCondition recursively walks c, checking comparison operand
// types, range-operand presence, and logical operator arity (spec
// §4.3).
func (v *Validator) validateCondition(c ast.Condition) {
	if c == nil {
		return
	}
	switch n := c.(type) {
	case *ast.ExpressionCondition:
		v.validateExpression(n.Expr)

	case *ast.Comparison:
		v.validateExpression(n.Left)
		if n.Right != nil {
			v.validateExpression(n.Right)
		}
		if n.RangeEnd != nil {
			v.validateExpression(n.RangeEnd)
		}

		if numericCompareOps[n.Op] {
			lt := n.Left.ExpressionType()
			var rt ast.ValueType
			if n.Right != nil {
				rt = n.Right.ExpressionType()
			}
			if isDefinitelyNonNumeric(lt) || (n.Right != nil && isDefinitelyNonNumeric(rt)) {
				v.errorf("VAL_001", n.Location(), "comparison %q requires numeric operands", n.Op)
			}
		}
		if stringMatchOps[n.Op] {
			if isDefinitelyNonString(n.Left.ExpressionType()) {
				v.errorf("VAL_002", n.Location(), "string operator %q left operand must be a string", n.Op)
			}
			if n.Right != nil && isDefinitelyNonString(n.Right.ExpressionType()) {
				v.errorf("VAL_002", n.Location(), "string operator %q right operand must be a string", n.Op)
			}
		}
		if listMembershipOps[n.Op] && n.Right != nil {
			if isDefinitelyNonList(n.Right.ExpressionType()) {
				v.errorf("VAL_003", n.Location(), "%q right operand must be a list", n.Op)
			}
		}
		if rangeOps[n.Op] && n.RangeEnd == nil {
			v.errorf("VAL_012", n.Location(), "range comparison %q requires a rangeEnd operand", n.Op)
		}

	case *ast.Logical:
		for _, op := range n.Operands {
			v.validateCondition(op)
		}
		switch n.Op {
		case ast.LogNot:
			if len(n.Operands) != 1 {
				v.errorf("VAL_013", n.Location(), "NOT requires exactly one operand, got %d", len(n.Operands))
			}
		case ast.LogAnd, ast.LogOr:
			if len(n.Operands) < 2 {
				v.errorf("VAL_014", n.Location(), "%s requires at least two operands, got %d", n.Op, len(n.Operands))
			}
		}
	}
}
