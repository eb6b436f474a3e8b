package evaluator

import (
	"context"
	"strings"
	"time"

	"github.com/fireflyframework/rule-engine-go/internal/ast"
	intdecimal "github.com/fireflyframework/rule-engine-go/internal/decimal"
)

func (e *evaluator) evalCondition(ctx context.Context, cond ast.Condition) (bool, error) {
	switch n := cond.(type) {
	case *ast.ExpressionCondition:
		v, err := e.evalExpression(ctx, n.Expr)
		if err != nil {
			return false, err
		}
		b, ok := v.(bool)
		if !ok {
			return false, errf("EVAL_004", n.Location(), "condition expression did not evaluate to boolean")
		}
		return b, nil

	case *ast.Logical:
		return e.evalLogical(ctx, n)

	case *ast.Comparison:
		return e.evalComparison(ctx, n)

	default:
		return false, errf("EVAL_GENERIC", cond.Location(), "unsupported condition node %T", cond)
	}
}

func (e *evaluator) evalLogical(ctx context.Context, n *ast.Logical) (bool, error) {
	switch n.Op {
	case ast.LogNot:
		v, err := e.evalCondition(ctx, n.Operands[0])
		if err != nil {
			return false, err
		}
		return !v, nil
	case ast.LogAnd:
		for _, op := range n.Operands {
			v, err := e.evalCondition(ctx, op)
			if err != nil {
				return false, err
			}
			if !v {
				return false, nil
			}
		}
		return true, nil
	case ast.LogOr:
		for _, op := range n.Operands {
			v, err := e.evalCondition(ctx, op)
			if err != nil {
				return false, err
			}
			if v {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, errf("EVAL_GENERIC", n.Location(), "unsupported logical operator %q", n.Op)
	}
}

func (e *evaluator) evalComparison(ctx context.Context, n *ast.Comparison) (bool, error) {
	left, err := e.evalExpression(ctx, n.Left)
	if err != nil {
		return false, err
	}

	if n.Op == "is_null" {
		return left == nil, nil
	}
	if n.Op == "is_not_null" {
		return left != nil, nil
	}
	if ast.IsPredicateName(string(n.Op)) {
		v, err := e.evalPredicate(string(n.Op), left, n.Location())
		if err != nil {
			return false, err
		}
		b, _ := v.(bool)
		return b, nil
	}

	right, err := e.evalExpression(ctx, n.Right)
	if err != nil {
		return false, err
	}

	switch n.Op {
	case ast.CmpEq:
		return valuesEqual(left, right), nil
	case ast.CmpNeq:
		return !valuesEqual(left, right), nil

	case ast.CmpGt, ast.CmpLt, ast.CmpGte, ast.CmpLte:
		ld, ok := intdecimal.FromAny(left)
		if !ok {
			return false, errf("EVAL_004", n.Location(), "%s requires numeric operands", n.Op)
		}
		rd, ok := intdecimal.FromAny(right)
		if !ok {
			return false, errf("EVAL_004", n.Location(), "%s requires numeric operands", n.Op)
		}
		switch n.Op {
		case ast.CmpGt:
			return ld.GreaterThan(rd), nil
		case ast.CmpLt:
			return ld.LessThan(rd), nil
		case ast.CmpGte:
			return ld.GreaterThanOrEqual(rd), nil
		default:
			return ld.LessThanOrEqual(rd), nil
		}

	case ast.CmpContains, ast.CmpNotContains, ast.CmpStartsWith, ast.CmpEndsWith:
		ls, ok := left.(string)
		if !ok {
			return false, errf("EVAL_004", n.Location(), "%s requires string operands", n.Op)
		}
		rs, ok := right.(string)
		if !ok {
			return false, errf("EVAL_004", n.Location(), "%s requires string operands", n.Op)
		}
		switch n.Op {
		case ast.CmpContains:
			return strings.Contains(ls, rs), nil
		case ast.CmpNotContains:
			return !strings.Contains(ls, rs), nil
		case ast.CmpStartsWith:
			return strings.HasPrefix(ls, rs), nil
		default:
			return strings.HasSuffix(ls, rs), nil
		}

	case ast.CmpMatches:
		ls, ok := left.(string)
		if !ok {
			return false, errf("EVAL_004", n.Location(), "matches requires a string left operand")
		}
		rs, ok := right.(string)
		if !ok {
			return false, errf("EVAL_004", n.Location(), "matches requires a string pattern")
		}
		re, err := compileMatches(rs)
		if err != nil {
			return false, errf("EVAL_006", n.Location(), "invalid regex %q: %s", rs, err.Error())
		}
		return re.MatchString(ls), nil

	case ast.CmpBetween, ast.CmpNotBetween:
		rangeEnd, err := e.evalExpression(ctx, n.RangeEnd)
		if err != nil {
			return false, err
		}
		ld, ok1 := intdecimal.FromAny(left)
		rd, ok2 := intdecimal.FromAny(right)
		ed, ok3 := intdecimal.FromAny(rangeEnd)
		if !ok1 || !ok2 || !ok3 {
			return false, errf("EVAL_004", n.Location(), "%s requires numeric operands", n.Op)
		}
		inRange := ld.GreaterThanOrEqual(rd) && ld.LessThanOrEqual(ed)
		if n.Op == ast.CmpNotBetween {
			return !inRange, nil
		}
		return inRange, nil

	case ast.CmpInList, ast.CmpNotInList:
		list, ok := right.([]any)
		if !ok {
			return false, errf("EVAL_004", n.Location(), "%s requires a list right operand", n.Op)
		}
		found := false
		for _, item := range list {
			if valuesEqual(left, item) {
				found = true
				break
			}
		}
		if n.Op == ast.CmpNotInList {
			return !found, nil
		}
		return found, nil

	case ast.CmpAgeAtLeast, ast.CmpAgeLessThan:
		return e.evalAgeComparison(n, left, right)

	case ast.CmpLengthEquals, ast.CmpLengthGreaterThan, ast.CmpLengthLessThan:
		rd, ok := intdecimal.FromAny(right)
		if !ok {
			return false, errf("EVAL_004", n.Location(), "%s requires a numeric right operand", n.Op)
		}
		length := int64(valueLength(left))
		switch n.Op {
		case ast.CmpLengthEquals:
			return length == rd.IntPart(), nil
		case ast.CmpLengthGreaterThan:
			return length > rd.IntPart(), nil
		default:
			return length < rd.IntPart(), nil
		}

	default:
		return false, errf("EVAL_GENERIC", n.Location(), "unsupported comparison operator %q", n.Op)
	}
}

// evalAgeComparison implements age_at_least/age_less_than (spec §4.4:
// "left must be a date-like string or number of years; right integer
// years"). Open Question resolved: a string left operand is parsed as a
// birthdate and compared against the current time; a numeric left
// operand is treated as an already-computed age in years.
func (e *evaluator) evalAgeComparison(n *ast.Comparison, left, right any) (bool, error) {
	rd, ok := intdecimal.FromAny(right)
	if !ok {
		return false, errf("EVAL_004", n.Location(), "%s requires a numeric right operand", n.Op)
	}

	var ageYears int64
	switch l := left.(type) {
	case string:
		t, parsed := parseDate(l)
		if !parsed {
			return false, errf("EVAL_004", n.Location(), "%s left operand %q is not a valid date", n.Op, l)
		}
		ageYears = int64(yearsSince(t, time.Now()))
	default:
		ld, ok := intdecimal.FromAny(left)
		if !ok {
			return false, errf("EVAL_004", n.Location(), "%s left operand must be a date string or numeric age", n.Op)
		}
		ageYears = ld.IntPart()
	}

	if n.Op == ast.CmpAgeAtLeast {
		return ageYears >= rd.IntPart(), nil
	}
	return ageYears < rd.IntPart(), nil
}

func yearsSince(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}
