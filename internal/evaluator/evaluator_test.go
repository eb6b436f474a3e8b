package evaluator_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fireflyframework/rule-engine-go/internal/evaluator"
	"github.com/fireflyframework/rule-engine-go/internal/parser"
)

func TestEvaluateSimpleRuleThenBranch(t *testing.T) {
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
output:
  approved: approved
`)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	res := evaluator.Evaluate(context.Background(), doc, map[string]any{"creditScore": 700})
	if !res.Success {
		t.Fatalf("expected success, got error %q", res.Error)
	}
	if !res.ConditionResult {
		t.Errorf("expected conditionResult true")
	}
	if approved, _ := res.OutputData["approved"].(bool); !approved {
		t.Errorf("expected approved=true, got %+v", res.OutputData)
	}
}

func TestEvaluateSimpleRuleElseBranch(t *testing.T) {
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
output:
  approved: approved
`)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	res := evaluator.Evaluate(context.Background(), doc, map[string]any{"creditScore": 500})
	if !res.Success {
		t.Fatalf("expected success, got error %q", res.Error)
	}
	if res.ConditionResult {
		t.Errorf("expected conditionResult false")
	}
	if approved, _ := res.OutputData["approved"].(bool); approved {
		t.Errorf("expected approved=false, got %+v", res.OutputData)
	}
}

func TestEvaluateCalculateArithmetic(t *testing.T) {
	doc, errs := parser.ParseDocument(`
name: totalCheck
inputs:
  principal: number
  rate: number
when:
  - principal > 0
then:
  - calculate interest as principal * rate
output:
  interest: interest
`)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	res := evaluator.Evaluate(context.Background(), doc, map[string]any{"principal": 1000, "rate": 0.05})
	if !res.Success {
		t.Fatalf("expected success, got error %q", res.Error)
	}
	if res.OutputData["interest"] == nil {
		t.Errorf("expected a computed interest value, got %+v", res.OutputData)
	}
}

func TestEvaluateMultiRuleIsOrAcrossSubRules(t *testing.T) {
	doc, errs := parser.ParseDocument(`
name: multi
inputs:
  x: number
rules:
  - name: first
    when:
      - x > 100
    then:
      - set y to 1
  - name: second
    when:
      - x > 1
    then:
      - set y to 2
output:
  y: y
`)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	res := evaluator.Evaluate(context.Background(), doc, map[string]any{"x": 5})
	if !res.Success {
		t.Fatalf("expected success, got error %q", res.Error)
	}
	if !res.ConditionResult {
		t.Errorf("expected conditionResult true because the second sub-rule matched")
	}
	d, ok := res.OutputData["y"].(decimal.Decimal)
	if !ok || !d.Equal(decimal.NewFromInt(2)) {
		t.Errorf("expected y=2 from the matching sub-rule, got %+v", res.OutputData)
	}
}

func TestEvaluateCircuitBreakerHaltsExecution(t *testing.T) {
	doc, errs := parser.ParseDocument(`
name: breaker
inputs:
  x: number
when:
  - x > 0
then:
  - circuit_breaker "too risky"
  - set reached to true
output:
  reached: reached
`)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	res := evaluator.Evaluate(context.Background(), doc, map[string]any{"x": 1})
	if !res.Success {
		t.Fatalf("expected success, got error %q", res.Error)
	}
	if !res.CircuitBreakerTriggered {
		t.Fatalf("expected circuit breaker to trigger")
	}
	if res.CircuitBreakerMessage != "too risky" {
		t.Errorf("expected circuit breaker message, got %q", res.CircuitBreakerMessage)
	}
	if res.OutputData["reached"] != nil {
		t.Errorf("expected halted execution to skip the action after circuit_breaker, got %+v", res.OutputData)
	}
}

func TestEvaluateDivisionByZeroProducesError(t *testing.T) {
	doc, errs := parser.ParseDocument(`
name: divByZero
inputs:
  x: number
when:
  - x > -1
then:
  - calculate result as x / 0
output:
  result: result
`)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	res := evaluator.Evaluate(context.Background(), doc, map[string]any{"x": 1})
	if res.Success {
		t.Fatalf("expected division by zero to fail evaluation")
	}
	if res.Error == "" {
		t.Errorf("expected a non-empty error message")
	}
}

func TestIsCreditScoreRejectsNonIntegers(t *testing.T) {
	doc, errs := parser.ParseDocument(`
name: scoreCheck
inputs:
  score: number
when:
  - score is_credit_score
then:
  - set valid to true
else:
  - set valid to false
output:
  valid: valid
`)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}

	cases := []struct {
		name  string
		score any
		want  bool
	}{
		{"whole number in range", 700, true},
		{"string whole number in range", "650", true},
		{"boundary values", 300, true},
		{"fractional number rejected", 300.5, false},
		{"fractional string rejected", "712.25", false},
		{"out of range rejected", 900, false},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			res := evaluator.Evaluate(context.Background(), doc, map[string]any{"score": tt.score})
			if !res.Success {
				t.Fatalf("expected success, got error %q", res.Error)
			}
			valid, _ := res.OutputData["valid"].(bool)
			if valid != tt.want {
				t.Errorf("score %v: expected valid=%v, got %v", tt.score, tt.want, valid)
			}
		})
	}
}

func TestEvaluateRespectsCancelledContext(t *testing.T) {
	doc, errs := parser.ParseDocument(`
name: cancelled
inputs:
  x: number
when:
  - x > 0
then:
  - set y to 1
output:
  y: y
`)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := evaluator.Evaluate(ctx, doc, map[string]any{"x": 1})
	if res.Success {
		t.Fatalf("expected evaluation to fail on a cancelled context")
	}
	if res.Error == "" {
		t.Errorf("expected a non-empty cancellation error message")
	}
}

func TestEvaluateWhileLoopStopsOnCancellation(t *testing.T) {
	doc, errs := parser.ParseDocument(`
name: whileCancel
inputs:
  x: number
when:
  - x > 0
then:
  - set count to 0
  - "while count < 1000000: calculate count as count + 1"
output:
  count: count
`)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := evaluator.Evaluate(ctx, doc, map[string]any{"x": 1})
	if res.Success {
		t.Fatalf("expected while loop to fail fast on a cancelled context")
	}
}

func TestEvaluateDeeplyNestedConditionsExceedsRecursionLimit(t *testing.T) {
	const depth = 80
	var b strings.Builder
	b.WriteString("name: deepNesting\n")
	b.WriteString("inputs:\n  x: number\n")
	b.WriteString("conditions:\n")
	indent := "  "
	for i := 0; i < depth; i++ {
		b.WriteString(indent + "if: x > 0\n")
		b.WriteString(indent + "then:\n")
		b.WriteString(indent + "  actions:\n")
		b.WriteString(indent + "    - set y to 1\n")
		if i < depth-1 {
			b.WriteString(indent + "  conditions:\n")
			indent += "    "
		}
	}
	doc, errs := parser.ParseDocument(b.String())
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	res := evaluator.Evaluate(context.Background(), doc, map[string]any{"x": 1}, evaluator.WithMaxRecursionDepth(64))
	if res.Success {
		t.Fatalf("expected recursion-depth limit to fail evaluation of %d nested conditionals", depth)
	}
	if res.Error == "" {
		t.Errorf("expected a non-empty recursion-depth error message")
	}
}
