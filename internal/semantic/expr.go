package semantic

import "github.com/fireflyframework/rule-engine-go/internal/ast"

func isDefinitelyNonNumeric(t ast.ValueType) bool {
	return t == ast.STRING || t == ast.BOOLEAN || t == ast.LIST || t == ast.OBJECT
}

func isDefinitelyNonString(t ast.ValueType) bool {
	return t == ast.NUMBER || t == ast.BOOLEAN || t == ast.LIST || t == ast.OBJECT
}

func isDefinitelyNonList(t ast.ValueType) bool {
	return t != ast.LIST && t != ast.ANY
}

// validateExpression recursively walks e, checking variable references,
// index types, unary/binary operand types, arithmetic arity, and
// function/JSON-Path/REST-call completeness (spec §4.3).
func (v *Validator) validateExpression(e ast.Expression) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case *ast.Literal:
		// nothing to check

	case *ast.Variable:
		if !v.isAvailable(n.Name) {
			v.errorf("VAL_006", n.Location(), "reference to unknown variable %q", n.Name)
		}
		if n.IndexExpression != nil {
			v.validateExpression(n.IndexExpression)
			if t := n.IndexExpression.ExpressionType(); isDefinitelyNonNumeric(t) {
				v.errorf("VAL_007", n.IndexExpression.Location(), "index expression must resolve to NUMBER, got %s", t)
			}
		}

	case *ast.Unary:
		v.validateExpression(n.Operand)
		switch n.Op {
		case ast.OpNeg, ast.OpPos:
			if t := n.Operand.ExpressionType(); isDefinitelyNonNumeric(t) {
				v.errorf("VAL_004", n.Location(), "unary %q operand must be numeric, got %s", n.Op, t)
			}
		case ast.OpToUpper, ast.OpToLower, ast.OpTrim:
			if t := n.Operand.ExpressionType(); isDefinitelyNonString(t) {
				v.errorf("VAL_005", n.Location(), "unary %q operand must be a string, got %s", n.Op, t)
			}
		}

	case *ast.Binary:
		v.validateExpression(n.Left)
		v.validateExpression(n.Right)
		switch n.Op {
		case ast.BinGt, ast.BinLt, ast.BinGte, ast.BinLte:
			lt, rt := n.Left.ExpressionType(), n.Right.ExpressionType()
			if isDefinitelyNonNumeric(lt) || isDefinitelyNonNumeric(rt) {
				v.errorf("VAL_001", n.Location(), "comparison %q requires numeric operands, got %s and %s", n.Op, lt, rt)
			}
		}

	case *ast.Arithmetic:
		for _, o := range n.Operands {
			v.validateExpression(o)
		}
		if len(n.Operands) < n.Op.Min {
			v.errorf("VAL_010", n.Location(), "%s requires at least %d operand(s), got %d", n.Op.Symbol, n.Op.Min, len(n.Operands))
		} else if n.Op.Max >= 0 && len(n.Operands) > n.Op.Max {
			v.errorf("VAL_011", n.Location(), "%s accepts at most %d operand(s), got %d", n.Op.Symbol, n.Op.Max, len(n.Operands))
		}

	case *ast.FunctionCall:
		for _, a := range n.Args {
			v.validateExpression(a)
		}
		if v.checkFuncs && n.Name != "__list" && !v.knownFuncs[n.Name] {
			v.errorf("VAL_008", n.Location(), "call to unregistered function %q", n.Name)
		}

	case *ast.JsonPath:
		v.validateExpression(n.Source)
		if n.Path == "" {
			v.errorf("VAL_019", n.Location(), "json path expression must not be empty")
		}

	case *ast.RestCall:
		v.validateExpression(n.URL)
		if n.Body != nil {
			v.validateExpression(n.Body)
		}
		for _, h := range n.Headers {
			v.validateExpression(h)
		}
		if lit, ok := n.URL.(*ast.Literal); ok {
			if s, _ := lit.Value.(string); s == "" {
				v.errorf("VAL_020", n.Location(), "rest call requires a non-empty url")
			}
		}
		if n.Method == "" {
			v.errorf("VAL_020", n.Location(), "rest call requires a method")
		}
	}
}
