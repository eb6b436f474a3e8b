package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

const unformattedRule = `name: creditCheck
when:
  - creditScore at_least 650
then:
  - set approved to true
`

func TestRunFmtWriteBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rule.yaml")
	if err := os.WriteFile(path, []byte(unformattedRule), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	fmtWrite, fmtList, fmtDiff = true, false, false
	fmtIndent = 2
	defer func() { fmtWrite, fmtList, fmtDiff = false, false, false }()

	if err := runFmt(nil, []string{path}); err != nil {
		t.Fatalf("runFmt() error = %v", err)
	}

	out, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read formatted file: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("expected non-empty formatted output")
	}
}

func TestRunFmtListDetectsUnformatted(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rule.yaml")
	if err := os.WriteFile(path, []byte(unformattedRule), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	fmtList, fmtWrite, fmtDiff = true, false, false
	fmtIndent = 2
	defer func() { fmtList, fmtWrite, fmtDiff = false, false, false }()

	err := runFmt(nil, []string{path})
	if err == nil {
		t.Fatalf("expected runFmt to report the file as unformatted")
	}
}
