package adapters

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDefaultRegistryJSONFunctions(t *testing.T) {
	ctx := context.Background()
	r := NewDefaultRegistry()
	doc := `{"applicant":{"name":"Ada","scores":[650,700,720]}}`

	got, err := r.Invoke(ctx, "json_get", []any{doc, "applicant.name"})
	if err != nil || got != "Ada" {
		t.Fatalf("json_get = %v, %v", got, err)
	}

	size, err := r.Invoke(ctx, "json_size", []any{doc, "applicant.scores"})
	if err != nil {
		t.Fatalf("json_size error = %v", err)
	}
	if d, ok := size.(decimal.Decimal); !ok || !d.Equal(decimal.NewFromInt(3)) {
		t.Errorf("json_size = %v", size)
	}

	exists, err := r.Invoke(ctx, "json_exists", []any{doc, "applicant.name"})
	if err != nil || exists != true {
		t.Fatalf("json_exists = %v, %v", exists, err)
	}
	missing, err := r.Invoke(ctx, "json_exists", []any{doc, "applicant.ssn"})
	if err != nil || missing != false {
		t.Fatalf("json_exists(missing) = %v, %v", missing, err)
	}
}

func TestDefaultRegistryFormatCurrency(t *testing.T) {
	r := NewDefaultRegistry()
	got, err := r.Invoke(context.Background(), "format_currency", []any{1234.5})
	if err != nil {
		t.Fatalf("format_currency error = %v", err)
	}
	if got != "$1234.50" {
		t.Errorf("format_currency = %v", got)
	}
}

func TestDefaultRegistryMaxMin(t *testing.T) {
	r := NewDefaultRegistry()
	max, err := r.Invoke(context.Background(), "max", []any{1, 5, 3})
	if err != nil || !max.(decimal.Decimal).Equal(decimal.NewFromInt(5)) {
		t.Fatalf("max = %v, %v", max, err)
	}
	min, err := r.Invoke(context.Background(), "min", []any{1, 5, 3})
	if err != nil || !min.(decimal.Decimal).Equal(decimal.NewFromInt(1)) {
		t.Fatalf("min = %v, %v", min, err)
	}
}

func TestDefaultRegistryExistsAndUnknownFunction(t *testing.T) {
	r := NewDefaultRegistry()
	if !r.Exists("rest_get") {
		t.Errorf("expected rest_get to be registered")
	}
	if r.Exists("not_a_function") {
		t.Errorf("expected unknown function to report false")
	}
	if _, err := r.Invoke(context.Background(), "not_a_function", nil); err == nil {
		t.Errorf("expected Invoke of unknown function to error")
	}
}

func TestDefaultRegistryRegisterOverride(t *testing.T) {
	r := NewDefaultRegistry()
	r.Register("double", func(_ context.Context, args []any) (any, error) {
		d, _ := args[0].(decimal.Decimal)
		return d.Mul(decimal.NewFromInt(2)), nil
	})
	got, err := r.Invoke(context.Background(), "double", []any{decimal.NewFromInt(21)})
	if err != nil || !got.(decimal.Decimal).Equal(decimal.NewFromInt(42)) {
		t.Fatalf("double = %v, %v", got, err)
	}
}
