package ast_test

import (
	"strings"
	"testing"

	"github.com/fireflyframework/rule-engine-go/internal/ast"
	"github.com/fireflyframework/rule-engine-go/internal/parser"
)

func TestDumpSimpleRule(t *testing.T) {
	doc, errs := parser.ParseDocument(`
name: creditCheck
when:
  - creditScore at_least 650
then:
  - set approved to true
`)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	out := ast.Dump(doc)
	for _, want := range []string{`Document "creditCheck"`, "when:", "then:", "set approved to true"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q, got:\n%s", want, out)
		}
	}
}
