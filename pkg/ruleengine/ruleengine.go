// Package ruleengine is the public API surface of the rules DSL engine
// (spec §6.2): parse a YAML rule source, validate it, and evaluate it
// against a runtime input map. Internal packages own the pipeline
// stages; this package only wires them together behind a small,
// stable surface for host applications.
package ruleengine

import (
	"context"

	"github.com/fireflyframework/rule-engine-go/internal/adapters"
	"github.com/fireflyframework/rule-engine-go/internal/ast"
	"github.com/fireflyframework/rule-engine-go/internal/diag"
	"github.com/fireflyframework/rule-engine-go/internal/evaluator"
	"github.com/fireflyframework/rule-engine-go/internal/parser"
	"github.com/fireflyframework/rule-engine-go/internal/semantic"
)

// Result is the outcome of a full Evaluate call; a thin re-export of
// evaluator.Result so callers never need to import internal packages.
type Result = evaluator.Result

// Document is a parsed, not-yet-evaluated rule source.
type Document struct {
	ast *ast.Document
}

// Diagnostics is a list of located errors/warnings from any pipeline
// stage.
type Diagnostics = diag.List

// Config holds the engine-wide options every Evaluate call is built
// from (spec §2.3).
type Config struct {
	evalOpts   []evaluator.Option
	valOpts    []semantic.Option
	registry   adapters.FunctionRegistry
	knownFuncs []string
}

// Option configures an Engine via functional options, mirroring the
// teacher's lexer.LexerOption pattern.
type Option func(*Config)

// WithScale overrides the decimal rounding scale used during evaluation
// (spec §4.4; default 20, minimum 2).
func WithScale(scale int32) Option {
	return func(c *Config) { c.evalOpts = append(c.evalOpts, evaluator.WithScale(scale)) }
}

// WithConstantsProvider wires a non-default constants provider.
func WithConstantsProvider(p adapters.ConstantsProvider) Option {
	return func(c *Config) { c.evalOpts = append(c.evalOpts, evaluator.WithConstantsProvider(p)) }
}

// WithFunctionRegistry wires a non-default function registry for
// evaluation. Validation does not consult it; its function-reference
// checks use the names given to WithKnownFunctionNames.
func WithFunctionRegistry(r adapters.FunctionRegistry) Option {
	return func(c *Config) {
		c.registry = r
		c.evalOpts = append(c.evalOpts, evaluator.WithFunctionRegistry(r))
	}
}

// WithKnownFunctionNames restricts semantic validation's function-
// reference checks (VAL_008/VAL_016) to the given registered names.
func WithKnownFunctionNames(names []string) Option {
	return func(c *Config) { c.knownFuncs = names }
}

// WithAuditSink wires a non-default audit sink.
func WithAuditSink(s adapters.AuditSink) Option {
	return func(c *Config) { c.evalOpts = append(c.evalOpts, evaluator.WithAuditSink(s)) }
}

// Engine bundles a Config for repeated Parse/Validate/Evaluate calls.
type Engine struct {
	cfg Config
}

// New builds an Engine from the given options.
func New(opts ...Option) *Engine {
	cfg := Config{}
	for _, o := range opts {
		o(&cfg)
	}
	return &Engine{cfg: cfg}
}

// Parse parses source as a rule document (spec §6.1). Parse errors
// (lexical or structural) are fatal; the returned Document is nil
// whenever diagnostics contains an Error-severity entry.
func Parse(source string) (*Document, Diagnostics) {
	doc, errs := parser.ParseDocument(source)
	if diag.List(errs).HasErrors() {
		return nil, Diagnostics(errs)
	}
	return &Document{ast: doc}, Diagnostics(errs)
}

// Validate walks d's AST, collecting every VAL_* diagnostic (spec §4.3).
// An empty result means the document is semantically valid.
func (e *Engine) Validate(d *Document) Diagnostics {
	opts := append([]semantic.Option{}, e.cfg.valOpts...)
	if e.cfg.knownFuncs != nil {
		opts = append(opts, semantic.WithKnownFunctions(e.cfg.knownFuncs))
	}
	return Diagnostics(semantic.Validate(d.ast, opts...))
}

// Evaluate runs d against inputs (spec §4.4), producing a Result. It
// does not itself enforce that Validate was called first — the
// document's author is expected to validate once and evaluate many
// times; evaluation of an unvalidated document degrades to a runtime
// error (e.g. EVAL_002/EVAL_006) instead of a static one.
func (e *Engine) Evaluate(ctx context.Context, d *Document, inputs map[string]any) *Result {
	return evaluator.Evaluate(ctx, d.ast, inputs, e.cfg.evalOpts...)
}

// ParseValidateEvaluate is a convenience one-shot call combining all
// three stages, returning the first fatal diagnostic set encountered.
func (e *Engine) ParseValidateEvaluate(ctx context.Context, source string, inputs map[string]any) (*Result, Diagnostics) {
	doc, diags := Parse(source)
	if diag.List(diags).HasErrors() {
		return nil, diags
	}
	valDiags := e.Validate(doc)
	if diag.List(valDiags).HasErrors() {
		return nil, valDiags
	}
	return e.Evaluate(ctx, doc, inputs), nil
}

// AST exposes the parsed document's internal representation for tooling
// (e.g. ast.Dump).
func (d *Document) AST() *ast.Document { return d.ast }
