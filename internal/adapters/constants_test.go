package adapters

import (
	"context"
	"testing"
)

func TestStaticConstantsProviderResolve(t *testing.T) {
	p := NewStaticConstantsProvider(map[string]any{"MAX_SCORE": 850})
	got, err := p.Resolve(context.Background(), []string{"MAX_SCORE", "MISSING"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got["MAX_SCORE"] != 850 {
		t.Errorf("expected MAX_SCORE = 850, got %v", got["MAX_SCORE"])
	}
	if _, ok := got["MISSING"]; ok {
		t.Errorf("expected unresolved code to be absent, got %+v", got)
	}
}

func TestResolveWithDefaultsFallsBackToDeclaredDefault(t *testing.T) {
	p := NewStaticConstantsProvider(map[string]any{"MAX_SCORE": 850})
	defaults := map[string]any{"MIN_SCORE": 300}
	out, err := ResolveWithDefaults(context.Background(), p, []string{"MAX_SCORE", "MIN_SCORE", "UNDECLARED"}, defaults)
	if err != nil {
		t.Fatalf("ResolveWithDefaults() error = %v", err)
	}
	if out["MAX_SCORE"] != 850 {
		t.Errorf("expected provider value to win, got %v", out["MAX_SCORE"])
	}
	if out["MIN_SCORE"] != 300 {
		t.Errorf("expected default value fallback, got %v", out["MIN_SCORE"])
	}
	if out["UNDECLARED"] != nil {
		t.Errorf("expected null fallback for undeclared code, got %v", out["UNDECLARED"])
	}
}

func TestNoopAuditSinkDoesNotPanic(t *testing.T) {
	NoopAuditSink{}.Record(context.Background(), AuditEvent{DocumentName: "x", Success: true})
}
