package format

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/fireflyframework/rule-engine-go/internal/parser"
)

func TestFormatRoundTripsSimpleRule(t *testing.T) {
	tests := []struct {
		name        string
		source      string
		wantContain []string
	}{
		{
			name: "simple rule when/then/else",
			source: `
name: creditCheck
inputs:
  creditScore: number
when:
  - creditScore at_least 650
then:
  - set approved to true
else:
  - set approved to false
`,
			wantContain: []string{
				"name: creditCheck",
				"when:",
				"creditScore >= 650",
				"then:",
				"set approved to true",
				"else:",
				"set approved to false",
			},
		},
		{
			name: "range and list membership",
			source: `
name: range
when:
  - amount between 100 and 500
  - status in_list ["gold", "platinum"]
then:
  - set eligible to true
`,
			wantContain: []string{
				"amount between 100 and 500",
				`status in_list ["gold", "platinum"]`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, errs := parser.ParseDocument(tt.source)
			if len(errs) > 0 {
				t.Fatalf("unexpected parse errors: %v", errs)
			}
			out := Format(doc, DefaultOptions())
			for _, want := range tt.wantContain {
				if !strings.Contains(out, want) {
					t.Errorf("formatted output missing %q\ngot:\n%s", want, out)
				}
			}

			// Round-trip: re-parsing the formatted output should not error.
			if _, errs := parser.ParseDocument(out); len(errs) > 0 {
				t.Errorf("formatted output failed to re-parse: %v\noutput:\n%s", errs, out)
			}
		})
	}
}

func TestFormatConstantsRoundTrip(t *testing.T) {
	source := `
name: withConstants
constants:
  - code: MAX_SCORE
    type: number
    defaultValue: 850
when:
  - creditScore < MAX_SCORE
then:
  - set ok to true
`
	doc, errs := parser.ParseDocument(source)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if len(doc.Constants) != 1 || doc.Constants[0].Code != "MAX_SCORE" {
		t.Fatalf("expected one MAX_SCORE constant, got %+v", doc.Constants)
	}
	out := Format(doc, DefaultOptions())
	if !strings.Contains(out, "code: MAX_SCORE") {
		t.Errorf("formatted output missing constant code, got:\n%s", out)
	}
	reparsed, errs := parser.ParseDocument(out)
	if len(errs) > 0 {
		t.Fatalf("formatted output failed to re-parse: %v\noutput:\n%s", errs, out)
	}
	if len(reparsed.Constants) != 1 || reparsed.Constants[0].Code != "MAX_SCORE" {
		t.Errorf("round-tripped constant lost, got %+v", reparsed.Constants)
	}
}

func TestFormatComplexConditionalShape(t *testing.T) {
	source := `
name: nested
conditions:
  if: amount > 1000
  then:
    actions:
      - set tier to "high"
    conditions:
      if: amount > 5000
      then:
        actions:
          - set tier to "very_high"
  else:
    actions:
      - set tier to "low"
`
	doc, errs := parser.ParseDocument(source)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	out := Format(doc, DefaultOptions())
	for _, want := range []string{"conditions:", "if: amount > 1000", "actions:", `set tier to "high"`} {
		if !strings.Contains(out, want) {
			t.Errorf("formatted output missing %q\ngot:\n%s", want, out)
		}
	}
	if _, errs := parser.ParseDocument(out); len(errs) > 0 {
		t.Errorf("formatted output failed to re-parse: %v\noutput:\n%s", errs, out)
	}
}

// TestFormatCanonicalOutputSnapshot pins the exact canonical rendering of
// a representative document, mirroring the teacher's fixture_test.go use
// of go-snaps for output that's easier to eyeball in a diff than to
// assert against piecemeal.
func TestFormatCanonicalOutputSnapshot(t *testing.T) {
	doc, errs := parser.ParseDocument(`
name: creditCheck
description: Approves or declines a credit application
inputs:
  creditScore: number
  annualIncome: number
constants:
  - code: MIN_SCORE
    type: number
    defaultValue: 600
when:
  - creditScore at_least MIN_SCORE
  - annualIncome > 30000
then:
  - set approved to true
  - calculate tier as annualIncome / 10000
else:
  - set approved to false
output:
  approved: approved
  tier: tier
`)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	out := Format(doc, DefaultOptions())
	snaps.MatchSnapshot(t, "creditCheck_canonical_output", out)
}

func TestFormatMultiRuleShape(t *testing.T) {
	source := `
name: multi
rules:
  - name: first
    when:
      - x > 1
    then:
      - set y to 1
  - name: second
    when:
      - x > 2
    then:
      - set y to 2
`
	doc, errs := parser.ParseDocument(source)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	out := Format(doc, DefaultOptions())
	if !strings.Contains(out, "rules:") {
		t.Errorf("expected rules: section, got:\n%s", out)
	}
	if !strings.Contains(out, "name: first") || !strings.Contains(out, "name: second") {
		t.Errorf("expected both sub-rule names, got:\n%s", out)
	}
}
