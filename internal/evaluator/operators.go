package evaluator

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fireflyframework/rule-engine-go/internal/ast"
	intdecimal "github.com/fireflyframework/rule-engine-go/internal/decimal"
	"github.com/fireflyframework/rule-engine-go/internal/diag"
)

func (e *evaluator) evalExpression(ctx context.Context, expr ast.Expression) (any, error) {
	switch n := expr.(type) {
	case *ast.Literal:
		if n.Type == ast.NUMBER {
			d, ok := intdecimal.FromAny(n.Value)
			if !ok {
				return nil, errf("EVAL_004", n.Location(), "invalid numeric literal %v", n.Value)
			}
			return d, nil
		}
		return n.Value, nil

	case *ast.Variable:
		v, ok := e.env.Get(n.Name)
		if !ok {
			return nil, errf("EVAL_002", n.Location(), "undefined variable %q", n.Name)
		}
		if n.IndexExpression != nil {
			idx, err := e.evalExpression(ctx, n.IndexExpression)
			if err != nil {
				return nil, err
			}
			return e.indexInto(v, idx, n.Location())
		}
		return v, nil


	case *ast.Unary:
		return e.evalUnary(ctx, n)

	case *ast.Binary:
		return e.evalBinary(ctx, n)

	case *ast.Arithmetic:
		return e.evalArithmetic(ctx, n)

	case *ast.FunctionCall:
		return e.evalFunctionCall(ctx, n)

	case *ast.JsonPath:
		return e.evalJsonPath(ctx, n)

	case *ast.RestCall:
		return e.evalRestCall(ctx, n)

	default:
		return nil, errf("EVAL_GENERIC", expr.Location(), "unsupported expression node %T", expr)
	}
}

func (e *evaluator) indexInto(container, index any, loc diag.Location) (any, error) {
	idxDec, ok := intdecimal.FromAny(index)
	if !ok {
		return nil, errf("EVAL_004", loc, "index must be numeric")
	}
	i := int(idxDec.IntPart())
	switch c := container.(type) {
	case []any:
		if i < 0 || i >= len(c) {
			return nil, errf("EVAL_005", loc, "index %d out of bounds (length %d)", i, len(c))
		}
		return c[i], nil
	default:
		return nil, errf("EVAL_004", loc, "cannot index a non-list value")
	}
}

func (e *evaluator) evalUnary(ctx context.Context, n *ast.Unary) (any, error) {
	operand, err := e.evalExpression(ctx, n.Operand)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case ast.OpNeg:
		d, ok := intdecimal.FromAny(operand)
		if !ok {
			return nil, errf("EVAL_004", n.Location(), "unary - requires a numeric operand")
		}
		return d.Neg(), nil
	case ast.OpPos:
		d, ok := intdecimal.FromAny(operand)
		if !ok {
			return nil, errf("EVAL_004", n.Location(), "unary + requires a numeric operand")
		}
		return d, nil
	case ast.OpNot:
		b, ok := operand.(bool)
		if !ok {
			return nil, errf("EVAL_004", n.Location(), "not requires a boolean operand")
		}
		return !b, nil
	case ast.OpToUpper:
		s, _ := operand.(string)
		return strings.ToUpper(s), nil
	case ast.OpToLower:
		s, _ := operand.(string)
		return strings.ToLower(s), nil
	case ast.OpTrim:
		s, _ := operand.(string)
		return strings.TrimSpace(s), nil
	case ast.OpLength:
		return decimal.NewFromInt(int64(valueLength(operand))), nil
	case ast.OpExists:
		return operand != nil, nil
	case ast.OpIsNull:
		return operand == nil, nil
	case ast.OpNotNull:
		return operand != nil, nil
	default:
		if ast.IsPredicateName(string(n.Op)) {
			return e.evalPredicate(string(n.Op), operand, n.Location())
		}
		return nil, errf("EVAL_GENERIC", n.Location(), "unsupported unary operator %q", n.Op)
	}
}

func valueLength(v any) int {
	switch t := v.(type) {
	case string:
		return len([]rune(t))
	case []any:
		return len(t)
	case map[string]any:
		return len(t)
	default:
		return 0
	}
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

func (e *evaluator) evalBinary(ctx context.Context, n *ast.Binary) (any, error) {
	switch n.Op {
	case ast.BinAnd, ast.BinOr:
		left, err := e.evalExpression(ctx, n.Left)
		if err != nil {
			return nil, err
		}
		lb, ok := left.(bool)
		if !ok {
			return nil, errf("EVAL_004", n.Location(), "%s requires boolean operands", n.Op)
		}
		if n.Op == ast.BinAnd && !lb {
			return false, nil
		}
		if n.Op == ast.BinOr && lb {
			return true, nil
		}
		right, err := e.evalExpression(ctx, n.Right)
		if err != nil {
			return nil, err
		}
		rb, ok := right.(bool)
		if !ok {
			return nil, errf("EVAL_004", n.Location(), "%s requires boolean operands", n.Op)
		}
		return rb, nil
	}

	left, err := e.evalExpression(ctx, n.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpression(ctx, n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case ast.BinEq:
		return valuesEqual(left, right), nil
	case ast.BinNeq:
		return !valuesEqual(left, right), nil
	case ast.BinAdd, ast.BinSub, ast.BinMul, ast.BinDiv, ast.BinMod, ast.BinPow:
		ld, ok := intdecimal.FromAny(left)
		if !ok {
			return nil, errf("EVAL_004", n.Location(), "%s requires numeric operands", n.Op)
		}
		rd, ok := intdecimal.FromAny(right)
		if !ok {
			return nil, errf("EVAL_004", n.Location(), "%s requires numeric operands", n.Op)
		}
		return e.arithmeticBinary(n.Op, ld, rd, n.Location())

	case ast.BinGt, ast.BinLt, ast.BinGte, ast.BinLte:
		ld, ok := intdecimal.FromAny(left)
		if !ok {
			return nil, errf("EVAL_004", n.Location(), "%s requires numeric operands", n.Op)
		}
		rd, ok := intdecimal.FromAny(right)
		if !ok {
			return nil, errf("EVAL_004", n.Location(), "%s requires numeric operands", n.Op)
		}
		switch n.Op {
		case ast.BinGt:
			return ld.GreaterThan(rd), nil
		case ast.BinLt:
			return ld.LessThan(rd), nil
		case ast.BinGte:
			return ld.GreaterThanOrEqual(rd), nil
		default:
			return ld.LessThanOrEqual(rd), nil
		}
	default:
		return nil, errf("EVAL_GENERIC", n.Location(), "unsupported binary operator %q", n.Op)
	}
}

func (e *evaluator) arithmeticBinary(op ast.BinaryOp, l, r decimal.Decimal, loc diag.Location) (any, error) {
	switch op {
	case ast.BinAdd:
		return l.Add(r), nil
	case ast.BinSub:
		return l.Sub(r), nil
	case ast.BinMul:
		return l.Mul(r), nil
	case ast.BinDiv:
		res, ok := intdecimal.DivRound(l, r, e.cfg.Scale)
		if !ok {
			return nil, errf("EVAL_001", loc, "division by zero")
		}
		return res, nil
	case ast.BinMod:
		if r.IsZero() {
			return nil, errf("EVAL_001", loc, "modulo by zero")
		}
		return l.Mod(r), nil
	case ast.BinPow:
		return l.Pow(r), nil
	}
	return nil, errf("EVAL_GENERIC", loc, "unsupported arithmetic operator %q", op)
}

func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ad, aok := intdecimal.FromAny(a)
	bd, bok := intdecimal.FromAny(b)
	if aok && bok {
		return ad.Equal(bd)
	}
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

func (e *evaluator) evalArithmetic(ctx context.Context, n *ast.Arithmetic) (any, error) {
	operands := make([]decimal.Decimal, len(n.Operands))
	for i, o := range n.Operands {
		v, err := e.evalExpression(ctx, o)
		if err != nil {
			return nil, err
		}
		d, ok := intdecimal.FromAny(v)
		if !ok {
			return nil, errf("EVAL_004", n.Location(), "%s operand %d is not numeric", n.Op.Symbol, i)
		}
		operands[i] = d
	}
	switch n.Op.Symbol {
	case "add":
		sum := operands[0]
		for _, d := range operands[1:] {
			sum = sum.Add(d)
		}
		return sum, nil
	case "subtract":
		diff := operands[0]
		for _, d := range operands[1:] {
			diff = diff.Sub(d)
		}
		return diff, nil
	case "multiply":
		prod := operands[0]
		for _, d := range operands[1:] {
			prod = prod.Mul(d)
		}
		return prod, nil
	case "divide":
		quot := operands[0]
		for _, d := range operands[1:] {
			var ok bool
			quot, ok = intdecimal.DivRound(quot, d, e.cfg.Scale)
			if !ok {
				return nil, errf("EVAL_001", n.Location(), "division by zero")
			}
		}
		return quot, nil
	case "max":
		best := operands[0]
		for _, d := range operands[1:] {
			if d.GreaterThan(best) {
				best = d
			}
		}
		return best, nil
	case "min":
		best := operands[0]
		for _, d := range operands[1:] {
			if d.LessThan(best) {
				best = d
			}
		}
		return best, nil
	case "power":
		return operands[0].Pow(operands[1]), nil
	case "modulo":
		if operands[1].IsZero() {
			return nil, errf("EVAL_001", n.Location(), "modulo by zero")
		}
		return operands[0].Mod(operands[1]), nil
	default:
		return nil, errf("EVAL_GENERIC", n.Location(), "unsupported arithmetic op %q", n.Op.Symbol)
	}
}

// evalFunctionCall tracks functionDepth across nested calls (spec §5
// "maximum function-call nesting depth, default 32"): a function whose
// arguments themselves contain nested function calls increments the same
// counter, since evalExpression is the shared re-entry point.
func (e *evaluator) evalFunctionCall(ctx context.Context, n *ast.FunctionCall) (any, error) {
	if n.Name == "__list" {
		items := make([]any, len(n.Args))
		for i, a := range n.Args {
			v, err := e.evalExpression(ctx, a)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return items, nil
	}

	e.functionDepth++
	defer func() { e.functionDepth-- }()
	if e.functionDepth > e.cfg.MaxFunctionNestingDepth {
		return nil, errf("EVAL_TIMEOUT", n.Location(), "function call nesting exceeded %d levels", e.cfg.MaxFunctionNestingDepth)
	}

	args := make([]any, len(n.Args))
	for i, a := range n.Args {
		v, err := e.evalExpression(ctx, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	if !e.cfg.FunctionRegistry.Exists(n.Name) {
		return nil, errf("EVAL_003", n.Location(), "undefined function %q", n.Name)
	}
	result, err := e.cfg.FunctionRegistry.Invoke(ctx, n.Name, args)
	if err != nil {
		return nil, errf("EVAL_007", n.Location(), "function %q failed: %s", n.Name, err.Error())
	}
	return result, nil
}

var matchesCache = map[string]*regexp.Regexp{}

func compileMatches(pattern string) (*regexp.Regexp, error) {
	if re, ok := matchesCache[pattern]; ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	matchesCache[pattern] = re
	return re, nil
}
