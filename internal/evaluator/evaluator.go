// Package evaluator walks a validated ast.Document against a scoped
// env.Env, producing a Result (spec §4.4). All arithmetic uses
// arbitrary-precision decimals (internal/decimal); side-effectful
// function calls delegate to the adapters package, while RestCall
// expressions are performed here with net/http.
package evaluator

import (
	"context"
	"time"

	"github.com/fireflyframework/rule-engine-go/internal/adapters"
	"github.com/fireflyframework/rule-engine-go/internal/ast"
	"github.com/fireflyframework/rule-engine-go/internal/diag"
	"github.com/fireflyframework/rule-engine-go/internal/env"
	"github.com/fireflyframework/rule-engine-go/internal/parser"
)

// Config holds evaluator-wide tunables, constructed via functional
// options mirroring the teacher's lexer.LexerOption pattern (spec
// §2.3).
type Config struct {
	Scale                   int32
	DefaultMaxIterations    int
	MaxRecursionDepth       int
	MaxFunctionNestingDepth int
	ConstantsProvider       adapters.ConstantsProvider
	FunctionRegistry        adapters.FunctionRegistry
	AuditSink               adapters.AuditSink
}

// Option configures a Config.
type Option func(*Config)

// WithScale overrides the decimal rounding scale (spec §4.4 default 20,
// minimum 2).
func WithScale(scale int32) Option {
	return func(c *Config) { c.Scale = scale }
}

// WithConstantsProvider wires a non-default constants provider.
func WithConstantsProvider(p adapters.ConstantsProvider) Option {
	return func(c *Config) { c.ConstantsProvider = p }
}

// WithFunctionRegistry wires a non-default function registry.
func WithFunctionRegistry(r adapters.FunctionRegistry) Option {
	return func(c *Config) { c.FunctionRegistry = r }
}

// WithAuditSink wires a non-default audit sink.
func WithAuditSink(s adapters.AuditSink) Option {
	return func(c *Config) { c.AuditSink = s }
}

// WithMaxRecursionDepth overrides the nested-conditional-block recursion
// limit (spec §5 default 64).
func WithMaxRecursionDepth(depth int) Option {
	return func(c *Config) { c.MaxRecursionDepth = depth }
}

// WithMaxFunctionNestingDepth overrides the function-call nesting limit
// (spec §5 default 32).
func WithMaxFunctionNestingDepth(depth int) Option {
	return func(c *Config) { c.MaxFunctionNestingDepth = depth }
}

func defaultConfig() Config {
	return Config{
		Scale:                   20,
		DefaultMaxIterations:    ast.DefaultMaxIterations,
		MaxRecursionDepth:       64,
		MaxFunctionNestingDepth: 32,
		ConstantsProvider:       adapters.NewStaticConstantsProvider(nil),
		FunctionRegistry:        adapters.NewDefaultRegistry(),
		AuditSink:               adapters.NoopAuditSink{},
	}
}

// Result is the outcome of one document evaluation (spec §4.4).
type Result struct {
	Success                 bool
	ConditionResult         bool
	OutputData              map[string]any
	ExecutionTimeMs         int64
	Error                   string
	CircuitBreakerTriggered bool
	CircuitBreakerMessage   string
}

// evalError carries a diagnostic through ordinary Go error returns so
// every internal call site can use `if err != nil` while still keeping
// the stable EVAL_* code at the boundary.
type evalError struct {
	d *diag.Diagnostic
}

func (e *evalError) Error() string { return e.d.Error() }

func errf(code string, loc diag.Location, format string, args ...any) error {
	return &evalError{d: diag.Newf(code, loc, format, args...)}
}

// evaluator is the per-call mutable state: config, environment, and
// circuit-breaker/halt flags. Not safe for concurrent use across
// documents; callers create one per Evaluate call.
type evaluator struct {
	cfg              Config
	env              *env.Env
	doc              *ast.Document
	circuitTriggered bool
	circuitMessage   string
	halted           bool
	conditionDepth   int
	functionDepth    int
}

// checkCancellation implements spec §5's cancellation contract: checked
// before each action, before each loop iteration, and at suspension
// points. A cancelled context is a resource error (§7), reported with
// the same EVAL_TIMEOUT code used for evaluation deadlines.
func (e *evaluator) checkCancellation(ctx context.Context, loc diag.Location) error {
	if err := ctx.Err(); err != nil {
		return errf("EVAL_TIMEOUT", loc, "evaluation cancelled: %s", err.Error())
	}
	return nil
}

// Evaluate resolves constants, evaluates doc against inputs, and
// projects the output schema. It never panics: every internal failure
// surfaces as Result.Error with Result.Success == false.
func Evaluate(ctx context.Context, doc *ast.Document, inputs map[string]any, opts ...Option) *Result {
	start := time.Now()
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	res := &Result{OutputData: map[string]any{}}

	defaults := make(map[string]any, len(doc.Constants))
	for _, c := range doc.Constants {
		if c.DefaultValue != nil {
			defaults[c.Code] = c.DefaultValue
		}
	}
	constants, err := adapters.ResolveWithDefaults(ctx, cfg.ConstantsProvider, doc.ConstantCodes(), defaults)
	if err != nil {
		res.Error = err.Error()
		res.ExecutionTimeMs = time.Since(start).Milliseconds()
		return res
	}

	e := &evaluator{cfg: cfg, env: env.New(constants, inputs), doc: doc}

	conditionResult, evalErr := e.evaluateDocument(ctx)

	res.ExecutionTimeMs = time.Since(start).Milliseconds()
	res.ConditionResult = conditionResult
	res.CircuitBreakerTriggered = e.circuitTriggered
	res.CircuitBreakerMessage = e.circuitMessage

	if evalErr != nil {
		res.Success = false
		res.Error = evalErr.Error()
		cfg.AuditSink.Record(ctx, adapters.AuditEvent{DocumentName: doc.Name, Success: false, Detail: evalErr.Error()})
	} else {
		res.Success = true
		detail := ""
		if e.circuitTriggered {
			detail = e.circuitMessage
		}
		cfg.AuditSink.Record(ctx, adapters.AuditEvent{DocumentName: doc.Name, Success: true, Detail: detail})
	}

	res.OutputData = e.projectOutputs(ctx)
	return res
}

// projectOutputs implements spec §4.4's output projection: each declared
// output name resolves to the computed layer unless its document entry
// names a distinct derived expression, in which case that expression is
// evaluated against the final environment. Absent/failed lookups map to
// nil rather than propagating an error — output projection never fails
// the whole result.
func (e *evaluator) projectOutputs(ctx context.Context) map[string]any {
	out := make(map[string]any, len(e.doc.Output))
	computed := e.env.ComputedSnapshot()
	for name, exprSrc := range e.doc.Output {
		if exprSrc == "" || exprSrc == name {
			out[name] = computed[name]
			continue
		}
		expr, errs := parser.ParseExpressionString(exprSrc)
		if diag.List(errs).HasErrors() || expr == nil {
			out[name] = nil
			continue
		}
		v, err := e.evalExpression(ctx, expr)
		if err != nil {
			out[name] = nil
			continue
		}
		out[name] = v
	}
	return out
}
