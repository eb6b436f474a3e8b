package semantic

import "github.com/fireflyframework/rule-engine-go/internal/ast"

// validateAction recursively walks a (spec §4.3): target-name
// writability for assignment-flavored actions, plus nested conditions/
// expressions/action lists for control-flow and call actions.
func (v *Validator) validateAction(a ast.Action) {
	if a == nil {
		return
	}
	switch n := a.(type) {
	case *ast.Set:
		v.validateTarget("VAL_015", n.Location(), "set", n.VarName)
		v.validateExpression(n.ValueExpr)

	case *ast.Assignment:
		v.validateTarget("VAL_003", n.Location(), "assignment", n.VarName)
		v.validateExpression(n.ValueExpr)

	case *ast.Calculate:
		v.validateTarget("VAL_017", n.Location(), "calculate", n.ResultVarName)
		v.validateExpression(n.Expr)

	case *ast.Run:
		v.validateTarget("VAL_017", n.Location(), "run", n.ResultVarName)
		v.validateExpression(n.Expr)

	case *ast.ArithmeticAction:
		v.validateTarget("VAL_018", n.Location(), string(n.Op), n.VarName)
		v.validateExpression(n.ValueExpr)

	case *ast.List:
		v.validateTarget("VAL_018", n.Location(), string(n.Op), n.ListVarName)
		v.validateExpression(n.ValueExpr)

	case *ast.FunctionCallAction:
		for _, arg := range n.Args {
			v.validateExpression(arg)
		}
		if v.checkFuncs && !v.knownFuncs[n.Name] {
			v.errorf("VAL_016", n.Location(), "call to unregistered function %q", n.Name)
		}

	case *ast.Conditional:
		v.validateCondition(n.Cond)
		for _, act := range n.ThenActions {
			v.validateAction(act)
		}
		for _, act := range n.ElseActions {
			v.validateAction(act)
		}

	case *ast.ForEach:
		v.validateExpression(n.ListExpr)
		v.pushScope(n.IterVar, n.IndexVar)
		for _, act := range n.Body {
			v.validateAction(act)
		}
		v.popScope()

	case *ast.While:
		v.validateCondition(n.Cond)
		for _, act := range n.Body {
			v.validateAction(act)
		}

	case *ast.DoWhile:
		for _, act := range n.Body {
			v.validateAction(act)
		}
		v.validateCondition(n.Cond)

	case *ast.CircuitBreaker:
		v.validateExpression(n.MessageExpr)
		if lit, ok := n.MessageExpr.(*ast.Literal); ok {
			if s, _ := lit.Value.(string); s == "" {
				v.errorf("VAL_003", n.Location(), "circuit_breaker requires a non-empty message")
			}
		}
	}
}
