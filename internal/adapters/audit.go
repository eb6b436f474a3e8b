package adapters

import (
	"context"
	"fmt"
	"os"
)

// AuditEvent is one fire-and-forget audit record (spec §4.5): document
// name, whether evaluation succeeded, and a free-form detail string
// (e.g. circuit breaker message, error code). Storage of these events is
// explicitly out of scope (spec §1 Non-goals) — AuditSink only defines
// the call boundary.
type AuditEvent struct {
	DocumentName string
	Success      bool
	Detail       string
}

// AuditSink records an AuditEvent. Failure must never propagate to the
// caller (spec §4.5: "fire-and-forget; failure logged, never
// propagated").
type AuditSink interface {
	Record(ctx context.Context, event AuditEvent)
}

// NoopAuditSink discards every event; the default when no sink is wired.
type NoopAuditSink struct{}

func (NoopAuditSink) Record(context.Context, AuditEvent) {}

// StderrAuditSink logs events to stderr, matching the teacher's
// unstructured fmt/os.Stderr logging convention (no external logging
// framework in the pack's core-language layers).
type StderrAuditSink struct{}

func (StderrAuditSink) Record(_ context.Context, event AuditEvent) {
	fmt.Fprintf(os.Stderr, "audit: document=%s success=%t detail=%s\n", event.DocumentName, event.Success, event.Detail)
}
