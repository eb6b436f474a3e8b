package semantic_test

import (
	"testing"

	"github.com/fireflyframework/rule-engine-go/internal/parser"
	"github.com/fireflyframework/rule-engine-go/internal/semantic"
)

func TestValidatePassesCleanDocument(t *testing.T) {
	doc, errs := parser.ParseDocument(`
name: creditCheck
inputs:
  creditScore: number
when:
  - creditScore at_least 650
then:
  - set approved to true
else:
  - set approved to false
`)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	diags := semantic.Validate(doc)
	if diags.HasErrors() {
		t.Fatalf("expected clean document to validate, got %v", diags)
	}
}

func TestValidateRejectsWriteToInputName(t *testing.T) {
	doc, errs := parser.ParseDocument(`
name: badWrite
inputs:
  creditScore: number
when:
  - creditScore at_least 650
then:
  - set creditScore to 700
`)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	diags := semantic.Validate(doc)
	if !diags.HasErrors() {
		t.Fatalf("expected a diagnostic for writing to a read-only input name")
	}
	found := false
	for _, d := range diags {
		if d.Code == "VAL_015" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected VAL_015, got %+v", diags)
	}
}

func TestValidateRejectsUnregisteredFunctionWhenChecked(t *testing.T) {
	doc, errs := parser.ParseDocument(`
name: callsUnknown
inputs:
  x: number
when:
  - x > 1
then:
  - call mystery_function with [x] -> result
`)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	diags := semantic.Validate(doc, semantic.WithKnownFunctions([]string{"known_function"}))
	if !diags.HasErrors() {
		t.Fatalf("expected a VAL_016 diagnostic for unregistered function")
	}
}

func TestValidateAllowsRegisteredFunction(t *testing.T) {
	doc, errs := parser.ParseDocument(`
name: callsKnown
inputs:
  x: number
when:
  - x > 1
then:
  - call known_function with [x] -> result
`)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	diags := semantic.Validate(doc, semantic.WithKnownFunctions([]string{"known_function"}))
	if diags.HasErrors() {
		t.Fatalf("expected registered function call to validate clean, got %v", diags)
	}
}

func TestValidateRejectsNegativeFailureThreshold(t *testing.T) {
	doc, errs := parser.ParseDocument(`
name: badBreaker
circuitBreaker:
  enabled: true
  failureThreshold: -1
when:
  - x > 1
then:
  - set ok to true
`)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	diags := semantic.Validate(doc)
	found := false
	for _, d := range diags {
		if d.Code == "VAL_003" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected VAL_003 for negative failureThreshold, got %+v", diags)
	}
}
