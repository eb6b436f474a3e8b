package evaluator

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fireflyframework/rule-engine-go/internal/ast"
	intdecimal "github.com/fireflyframework/rule-engine-go/internal/decimal"
)

// executeActions runs actions in order, stopping immediately once the
// circuit breaker halts the document (spec §4.4: "halt further action
// execution in the current document").
func (e *evaluator) executeActions(ctx context.Context, actions []ast.Action) error {
	for _, a := range actions {
		if e.halted {
			return nil
		}
		if err := e.checkCancellation(ctx, a.Location()); err != nil {
			return err
		}
		if err := e.executeAction(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func (e *evaluator) executeAction(ctx context.Context, a ast.Action) error {
	switch n := a.(type) {
	case *ast.Set:
		v, err := e.evalExpression(ctx, n.ValueExpr)
		if err != nil {
			return err
		}
		e.env.Set(n.VarName, v)
		return nil

	case *ast.Assignment:
		return e.executeAssignment(ctx, n)

	case *ast.Calculate:
		v, err := e.evalExpression(ctx, n.Expr)
		if err != nil {
			return err
		}
		if _, ok := intdecimal.FromAny(v); !ok {
			return errf("EVAL_004", n.Location(), "calculate %q requires a numeric result", n.ResultVarName)
		}
		e.env.Set(n.ResultVarName, v)
		return nil

	case *ast.Run:
		v, err := e.evalExpression(ctx, n.Expr)
		if err != nil {
			return err
		}
		e.env.Set(n.ResultVarName, v)
		return nil

	case *ast.ArithmeticAction:
		return e.executeArithmeticAction(ctx, n)

	case *ast.List:
		return e.executeListAction(ctx, n)

	case *ast.FunctionCallAction:
		return e.executeFunctionCallAction(ctx, n)

	case *ast.Conditional:
		matched, err := e.evalCondition(ctx, n.Cond)
		if err != nil {
			return err
		}
		if matched {
			return e.executeActions(ctx, n.ThenActions)
		}
		return e.executeActions(ctx, n.ElseActions)

	case *ast.ForEach:
		return e.executeForEach(ctx, n)

	case *ast.While:
		return e.executeWhile(ctx, n)

	case *ast.DoWhile:
		return e.executeDoWhile(ctx, n)

	case *ast.CircuitBreaker:
		msg, err := e.evalExpression(ctx, n.MessageExpr)
		if err != nil {
			return err
		}
		s, _ := msg.(string)
		e.circuitTriggered = true
		e.circuitMessage = s
		e.halted = true
		return nil

	default:
		return nil
	}
}

func (e *evaluator) executeAssignment(ctx context.Context, n *ast.Assignment) error {
	rhs, err := e.evalExpression(ctx, n.ValueExpr)
	if err != nil {
		return err
	}
	if n.Op == ast.AssignSet {
		e.env.Set(n.VarName, rhs)
		return nil
	}
	cur, _ := e.env.Get(n.VarName)
	curDec, ok := intdecimal.FromAny(cur)
	if !ok {
		curDec = decimal.Zero
	}
	rhsDec, ok := intdecimal.FromAny(rhs)
	if !ok {
		return errf("EVAL_004", n.Location(), "compound assignment %q requires a numeric operand", n.VarName)
	}
	var result decimal.Decimal
	switch n.Op {
	case ast.AssignAdd:
		result = curDec.Add(rhsDec)
	case ast.AssignSub:
		result = curDec.Sub(rhsDec)
	case ast.AssignMul:
		result = curDec.Mul(rhsDec)
	case ast.AssignDiv:
		var divOK bool
		result, divOK = intdecimal.DivRound(curDec, rhsDec, e.cfg.Scale)
		if !divOK {
			return errf("EVAL_001", n.Location(), "division by zero assigning to %q", n.VarName)
		}
	}
	e.env.Set(n.VarName, result)
	return nil
}

// executeArithmeticAction implements `add/subtract/multiply/divide`
// in-place mutation. A missing target is treated as 0 for add/subtract
// and 1 for multiply/divide (spec §4.4).
func (e *evaluator) executeArithmeticAction(ctx context.Context, n *ast.ArithmeticAction) error {
	val, err := e.evalExpression(ctx, n.ValueExpr)
	if err != nil {
		return err
	}
	valDec, ok := intdecimal.FromAny(val)
	if !ok {
		return errf("EVAL_004", n.Location(), "%s requires a numeric value, got %v", n.Op, val)
	}

	cur, exists := e.env.Get(n.VarName)
	var curDec decimal.Decimal
	if exists {
		curDec, ok = intdecimal.FromAny(cur)
		if !ok {
			return errf("EVAL_004", n.Location(), "%s target %q is not numeric", n.Op, n.VarName)
		}
	} else {
		switch n.Op {
		case ast.ArithActionMultiply, ast.ArithActionDivide:
			curDec = decimal.NewFromInt(1)
		default:
			curDec = decimal.Zero
		}
	}

	var result decimal.Decimal
	switch n.Op {
	case ast.ArithActionAdd:
		result = curDec.Add(valDec)
	case ast.ArithActionSubtract:
		result = curDec.Sub(valDec)
	case ast.ArithActionMultiply:
		result = curDec.Mul(valDec)
	case ast.ArithActionDivide:
		var divOK bool
		result, divOK = intdecimal.DivRound(curDec, valDec, e.cfg.Scale)
		if !divOK {
			return errf("EVAL_001", n.Location(), "division by zero in %s %s", n.Op, n.VarName)
		}
	}
	e.env.Set(n.VarName, result)
	return nil
}

// executeListAction implements append/prepend (create-if-missing) and
// remove (no-op if absent, per spec §9 Open Question resolved in
// internal/ast/actions.go's List doc comment).
func (e *evaluator) executeListAction(ctx context.Context, n *ast.List) error {
	val, err := e.evalExpression(ctx, n.ValueExpr)
	if err != nil {
		return err
	}
	cur, _ := e.env.Get(n.ListVarName)
	list, _ := cur.([]any)

	switch n.Op {
	case ast.ListAppend:
		list = append(list, val)
	case ast.ListPrepend:
		list = append([]any{val}, list...)
	case ast.ListRemove:
		out := make([]any, 0, len(list))
		for _, item := range list {
			if !valuesEqual(item, val) {
				out = append(out, item)
			}
		}
		list = out
	}
	e.env.Set(n.ListVarName, list)
	return nil
}

func (e *evaluator) executeFunctionCallAction(ctx context.Context, n *ast.FunctionCallAction) error {
	args := make([]any, len(n.Args))
	for i, a := range n.Args {
		v, err := e.evalExpression(ctx, a)
		if err != nil {
			return err
		}
		args[i] = v
	}
	if !e.cfg.FunctionRegistry.Exists(n.Name) {
		return errf("EVAL_003", n.Location(), "undefined function %q", n.Name)
	}
	result, err := e.cfg.FunctionRegistry.Invoke(ctx, n.Name, args)
	if err != nil {
		return errf("EVAL_007", n.Location(), "function %q failed: %s", n.Name, err.Error())
	}
	if n.ResultVarName != "" {
		e.env.Set(n.ResultVarName, result)
	}
	return nil
}

func (e *evaluator) executeForEach(ctx context.Context, n *ast.ForEach) error {
	listVal, err := e.evalExpression(ctx, n.ListExpr)
	if err != nil {
		return err
	}
	list, _ := listVal.([]any)
	for i, item := range list {
		if e.halted {
			return nil
		}
		if err := e.checkCancellation(ctx, n.Location()); err != nil {
			return err
		}
		e.env.PushLoopScope()
		e.env.BindLoopVar(n.IterVar, item)
		if n.IndexVar != "" {
			e.env.BindLoopVar(n.IndexVar, decimal.NewFromInt(int64(i)))
		}
		err := e.executeActions(ctx, n.Body)
		e.env.PopLoopScope()
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *evaluator) executeWhile(ctx context.Context, n *ast.While) error {
	max := n.MaxIterations
	if max <= 0 {
		max = e.cfg.DefaultMaxIterations
	}
	for i := 0; ; i++ {
		if e.halted {
			return nil
		}
		if err := e.checkCancellation(ctx, n.Location()); err != nil {
			return err
		}
		cond, err := e.evalCondition(ctx, n.Cond)
		if err != nil {
			return err
		}
		if !cond {
			return nil
		}
		if i >= max {
			return errf("EVAL_LOOP_LIMIT", n.Location(), "while loop exceeded %d iterations", max)
		}
		if err := e.executeActions(ctx, n.Body); err != nil {
			return err
		}
	}
}

func (e *evaluator) executeDoWhile(ctx context.Context, n *ast.DoWhile) error {
	max := n.MaxIterations
	if max <= 0 {
		max = e.cfg.DefaultMaxIterations
	}
	for i := 0; ; i++ {
		if e.halted {
			return nil
		}
		if i >= max {
			return errf("EVAL_LOOP_LIMIT", n.Location(), "do-while loop exceeded %d iterations", max)
		}
		if err := e.checkCancellation(ctx, n.Location()); err != nil {
			return err
		}
		if err := e.executeActions(ctx, n.Body); err != nil {
			return err
		}
		if e.halted {
			return nil
		}
		cond, err := e.evalCondition(ctx, n.Cond)
		if err != nil {
			return err
		}
		if !cond {
			return nil
		}
	}
}
