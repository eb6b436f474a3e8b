package decimal

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFromAny(t *testing.T) {
	if d, ok := FromAny(42); !ok || !d.Equal(decimal.NewFromInt(42)) {
		t.Errorf("FromAny(42) = %v, %v", d, ok)
	}
	if d, ok := FromAny("3.50"); !ok || !d.Equal(decimal.NewFromFloat(3.5)) {
		t.Errorf("FromAny(\"3.50\") = %v, %v", d, ok)
	}
	if _, ok := FromAny("not a number"); ok {
		t.Errorf("expected FromAny to reject non-numeric string")
	}
	if _, ok := FromAny(true); ok {
		t.Errorf("expected FromAny to reject bool")
	}
}

func TestDivRoundBankersRounding(t *testing.T) {
	a := decimal.NewFromInt(1)
	b := decimal.NewFromInt(3)
	got, ok := DivRound(a, b, 4)
	if !ok {
		t.Fatalf("expected division to succeed")
	}
	want := decimal.NewFromFloat(0.3333)
	if !got.Equal(want) {
		t.Errorf("DivRound(1,3,4) = %v, want %v", got, want)
	}
}

func TestDivRoundByZero(t *testing.T) {
	if _, ok := DivRound(decimal.NewFromInt(1), decimal.Zero, 4); ok {
		t.Errorf("expected division by zero to fail")
	}
}

func TestDivRoundEnforcesMinScale(t *testing.T) {
	got, ok := DivRound(decimal.NewFromInt(1), decimal.NewFromInt(4), 0)
	if !ok {
		t.Fatalf("expected division to succeed")
	}
	if got.Exponent() < -MinScale {
		t.Errorf("expected scale to be clamped to minimum %d, got exponent %d", MinScale, got.Exponent())
	}
}

func TestMustFromAnyPanicsOnNonNumeric(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected MustFromAny to panic on non-numeric value")
		}
	}()
	MustFromAny("nope")
}
