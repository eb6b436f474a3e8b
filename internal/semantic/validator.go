// Package semantic implements the AST validator (spec §4.3): a pure
// walk that collects diagnostics rather than raising them, checking
// naming-class writability, operand arities, definite-type
// incompatibilities, and range/registry completeness. It never mutates
// the AST and never consults the evaluation environment — only the
// declarations visible in the document itself plus whatever function
// registry the caller supplies.
package semantic

import (
	"github.com/fireflyframework/rule-engine-go/internal/ast"
	"github.com/fireflyframework/rule-engine-go/internal/diag"
	"github.com/fireflyframework/rule-engine-go/internal/naming"
)

// Validator walks a Document accumulating diagnostics. Zero value is not
// usable; construct via Validate.
type Validator struct {
	available   map[string]bool
	scopeStack  []map[string]bool
	knownFuncs  map[string]bool
	checkFuncs  bool
	diags       diag.List
}

// Option configures a Validate call.
type Option func(*Validator)

// WithKnownFunctions restricts function-reference checks (VAL_008,
// VAL_016) to the given registered names. Without this option, function
// references are not checked against a registry (spec §4.3 treats the
// registry as an external adapter whose contents the validator doesn't
// necessarily know in every calling context).
func WithKnownFunctions(names []string) Option {
	return func(v *Validator) {
		v.checkFuncs = true
		for _, n := range names {
			v.knownFuncs[n] = true
		}
	}
}

// WithAvailableVariables adds extra names (e.g. pre-populated by a host
// environment) to the set a bare Variable reference is checked against,
// on top of the document's own declared inputs/constants/computed names.
func WithAvailableVariables(names []string) Option {
	return func(v *Validator) {
		for _, n := range names {
			v.available[n] = true
		}
	}
}

// Validate walks doc and returns every diagnostic found. An empty,
// non-nil list means the document is valid.
func Validate(doc *ast.Document, opts ...Option) diag.List {
	v := &Validator{
		available:  map[string]bool{},
		knownFuncs: map[string]bool{},
	}
	for _, o := range opts {
		o(v)
	}
	v.collectDeclaredNames(doc)
	v.validateDocument(doc)
	return v.diags
}

func (v *Validator) errorf(code string, loc diag.Location, format string, args ...any) {
	v.diags = append(v.diags, diag.Newf(code, loc, format, args...))
}

// collectDeclaredNames seeds the available-variable set from the
// document's own declarations plus every computed name any action in the
// document assigns to — computed names don't need a separate
// declaration block (spec §3.5), they become known by being targets.
func (v *Validator) collectDeclaredNames(doc *ast.Document) {
	for name := range doc.Inputs {
		v.available[name] = true
	}
	for _, c := range doc.Constants {
		v.available[c.Code] = true
	}

	switch doc.Shape {
	case ast.ShapeSimple:
		v.collectFromRule(doc.Simple)
	case ast.ShapeMultiRule:
		for _, r := range doc.MultiRule {
			v.collectFromRule(r)
		}
	case ast.ShapeComplexConditional:
		v.collectFromBlock(doc.ComplexConditional)
	}
}

func (v *Validator) collectFromRule(r *ast.SimpleRule) {
	if r == nil {
		return
	}
	v.collectFromActions(r.ThenActions)
	v.collectFromActions(r.ElseActions)
}

func (v *Validator) collectFromBlock(b *ast.ConditionalBlock) {
	if b == nil {
		return
	}
	v.collectFromActionBlock(b.Then)
	if b.Else != nil {
		v.collectFromActionBlock(*b.Else)
	}
}

func (v *Validator) collectFromActionBlock(b ast.ActionBlock) {
	v.collectFromActions(b.Actions)
	if b.Conditions != nil {
		v.collectFromBlock(b.Conditions)
	}
}

func (v *Validator) collectFromActions(actions []ast.Action) {
	for _, a := range actions {
		switch n := a.(type) {
		case *ast.Set:
			v.available[n.VarName] = true
		case *ast.Assignment:
			v.available[n.VarName] = true
		case *ast.Calculate:
			v.available[n.ResultVarName] = true
		case *ast.Run:
			v.available[n.ResultVarName] = true
		case *ast.ArithmeticAction:
			v.available[n.VarName] = true
		case *ast.List:
			v.available[n.ListVarName] = true
		case *ast.FunctionCallAction:
			if n.ResultVarName != "" {
				v.available[n.ResultVarName] = true
			}
		case *ast.Conditional:
			v.collectFromActions(n.ThenActions)
			v.collectFromActions(n.ElseActions)
		case *ast.ForEach:
			v.collectFromActions(n.Body)
		case *ast.While:
			v.collectFromActions(n.Body)
		case *ast.DoWhile:
			v.collectFromActions(n.Body)
		}
	}
}

func (v *Validator) pushScope(names ...string) {
	scope := make(map[string]bool, len(names))
	for _, n := range names {
		if n != "" {
			scope[n] = true
		}
	}
	v.scopeStack = append(v.scopeStack, scope)
}

func (v *Validator) popScope() {
	v.scopeStack = v.scopeStack[:len(v.scopeStack)-1]
}

func (v *Validator) isAvailable(name string) bool {
	for i := len(v.scopeStack) - 1; i >= 0; i-- {
		if v.scopeStack[i][name] {
			return true
		}
	}
	return v.available[name]
}

func (v *Validator) validateDocument(doc *ast.Document) {
	switch doc.Shape {
	case ast.ShapeSimple:
		v.validateSimpleRule(doc.Simple)
	case ast.ShapeMultiRule:
		for _, r := range doc.MultiRule {
			v.validateSimpleRule(r)
		}
	case ast.ShapeComplexConditional:
		v.validateConditionalBlock(doc.ComplexConditional)
	}
	if doc.CircuitBreaker != nil && doc.CircuitBreaker.FailureThreshold < 0 {
		v.errorf("VAL_003", doc.Location(), "circuitBreaker.failureThreshold must not be negative")
	}
}

func (v *Validator) validateSimpleRule(r *ast.SimpleRule) {
	if r == nil {
		return
	}
	for _, c := range r.WhenConditions {
		v.validateCondition(c)
	}
	for _, a := range r.ThenActions {
		v.validateAction(a)
	}
	for _, a := range r.ElseActions {
		v.validateAction(a)
	}
}

func (v *Validator) validateConditionalBlock(b *ast.ConditionalBlock) {
	if b == nil {
		return
	}
	v.validateCondition(b.If)
	v.validateActionBlock(b.Then)
	if b.Else != nil {
		v.validateActionBlock(*b.Else)
	}
}

func (v *Validator) validateActionBlock(b ast.ActionBlock) {
	for _, a := range b.Actions {
		v.validateAction(a)
	}
	if b.Conditions != nil {
		v.validateConditionalBlock(b.Conditions)
	}
}

// validateTarget is the common empty-name / writability check shared by
// every assignment-flavored action (spec §4.3: "Set/Calculate/
// Assignment/Arithmetic/List action with empty target name").
func (v *Validator) validateTarget(code string, loc diag.Location, kind, name string) {
	if name == "" {
		v.errorf(code, loc, "%s requires a non-empty target name", kind)
		return
	}
	if !naming.IsWritable(name) {
		v.errorf(code, loc, "%s target %q is not a writable (all-lowercase) name", kind, name)
	}
}
