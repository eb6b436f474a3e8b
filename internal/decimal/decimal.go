// Package decimal centralizes the rules engine's arbitrary-precision
// numeric policy (spec §4.4): integer literals promote to decimal when
// mixed with decimal operands, division rounds banker-style to a
// configurable scale, and every runtime number value is carried as a
// shopspring/decimal.Decimal rather than a machine float.
package decimal

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultScale is the rounding scale used when a caller doesn't specify
// one (spec §4.4: "default 20, minimum 2 for currency-like outputs").
const DefaultScale = 20

// MinScale is the smallest scale evaluation configuration may request.
const MinScale = 2

func init() {
	decimal.DivisionPrecision = DefaultScale
}

// FromAny coerces a dynamically-typed value into a decimal.Decimal. It
// accepts decimal.Decimal, int, int64, float64, and numeric strings;
// ok is false for anything else.
func FromAny(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case float64:
		return decimal.NewFromFloat(n), true
	case string:
		d, err := decimal.NewFromString(n)
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	default:
		return decimal.Decimal{}, false
	}
}

// MustFromAny is FromAny but panics on failure; used only where the
// caller has already validated numeric-ness.
func MustFromAny(v any) decimal.Decimal {
	d, ok := FromAny(v)
	if !ok {
		panic(fmt.Sprintf("decimal: value %v (%T) is not numeric", v, v))
	}
	return d
}

// DivRound divides a by b rounding banker-style (round-half-to-even) to
// scale places. b == 0 returns ok == false so the caller can raise
// EVAL_001.
func DivRound(a, b decimal.Decimal, scale int32) (decimal.Decimal, bool) {
	if b.IsZero() {
		return decimal.Decimal{}, false
	}
	if scale < MinScale {
		scale = MinScale
	}
	q, r := a.QuoRem(b, scale)
	// Compare the remainder against half a unit in the last place: 2*|r|
	// scaled by 10^scale versus |b|.
	c := r.Abs().Mul(decimal.New(2, scale)).Cmp(b.Abs())
	if c < 0 || (c == 0 && q.Mul(decimal.New(1, scale)).Mod(decimal.NewFromInt(2)).IsZero()) {
		return q, true
	}
	step := decimal.New(1, -scale)
	if a.Sign()*b.Sign() < 0 {
		return q.Sub(step), true
	}
	return q.Add(step), true
}
