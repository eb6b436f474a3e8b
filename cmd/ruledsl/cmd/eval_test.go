package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fireflyframework/rule-engine-go/internal/evaluator"
)

func TestRunEvalApprovesHighCreditScore(t *testing.T) {
	dir := t.TempDir()
	rulePath := filepath.Join(dir, "rule.yaml")
	inputsPath := filepath.Join(dir, "inputs.json")

	rule := `name: creditCheck
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
	if err := os.WriteFile(rulePath, []byte(rule), 0o644); err != nil {
		t.Fatalf("failed to write rule file: %v", err)
	}
	if err := os.WriteFile(inputsPath, []byte(`{"creditScore": 700}`), 0o644); err != nil {
		t.Fatalf("failed to write inputs file: %v", err)
	}

	oldOut := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	defer func() { os.Stdout = oldOut }()

	evalInputsPath = inputsPath
	evalScale = 20
	evalSkipVal = false
	defer func() { evalInputsPath = "" }()

	err := runEval(nil, []string{rulePath})
	w.Close()
	os.Stdout = oldOut
	if err != nil {
		t.Fatalf("runEval() error = %v", err)
	}

	buf := make([]byte, 4096)
	n, _ := r.Read(buf)

	var result evaluator.Result
	if err := json.Unmarshal(buf[:n], &result); err != nil {
		t.Fatalf("failed to decode result JSON: %v\noutput: %s", err, buf[:n])
	}
	if !result.Success {
		t.Fatalf("expected Success=true, got %+v", result)
	}
	if approved, _ := result.OutputData["approved"].(bool); !approved {
		t.Errorf("expected approved output to be true, got %+v", result.OutputData)
	}
}
