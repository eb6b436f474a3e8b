package ruleengine_test

import (
	"context"
	"testing"

	"github.com/fireflyframework/rule-engine-go/pkg/ruleengine"
)

const creditRuleSource = `
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
`

func TestParseValidateEvaluateHappyPath(t *testing.T) {
	engine := ruleengine.New()
	res, diags := engine.ParseValidateEvaluate(context.Background(), creditRuleSource, map[string]any{"creditScore": 700})
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if !res.Success || !res.ConditionResult {
		t.Fatalf("expected a successful, matching evaluation, got %+v", res)
	}
	if approved, _ := res.OutputData["approved"].(bool); !approved {
		t.Errorf("expected approved=true, got %+v", res.OutputData)
	}
}

func TestParseRejectsMalformedSource(t *testing.T) {
	_, diags := ruleengine.Parse("not: [valid: yaml:")
	if !diags.HasErrors() {
		t.Fatalf("expected a parse diagnostic for malformed YAML")
	}
}

func TestValidateReportsWriteToReadOnlyInput(t *testing.T) {
	engine := ruleengine.New()
	doc, diags := ruleengine.Parse(`
name: badWrite
inputs:
  creditScore: number
when:
  - creditScore at_least 650
then:
  - set creditScore to 700
`)
	if diags.HasErrors() {
		t.Fatalf("unexpected parse diagnostics: %v", diags)
	}
	valDiags := engine.Validate(doc)
	if !valDiags.HasErrors() {
		t.Fatalf("expected a validation diagnostic for writing to a read-only input")
	}
}

func TestDocumentASTExposesParsedName(t *testing.T) {
	doc, diags := ruleengine.Parse(creditRuleSource)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if doc.AST().Name != "creditCheck" {
		t.Errorf("expected AST name creditCheck, got %q", doc.AST().Name)
	}
}
