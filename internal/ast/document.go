package ast

import "github.com/fireflyframework/rule-engine-go/internal/diag"

// ShapeKind identifies which of the three mutually-exclusive document
// shapes (spec §3.4) a RulesDoc populates.
type ShapeKind int

const (
	ShapeSimple ShapeKind = iota
	ShapeMultiRule
	ShapeComplexConditional
)

// ConstantDecl declares a constant the document expects the constants
// provider to resolve at evaluation start (spec §3.4).
type ConstantDecl struct {
	Code         string
	DefaultValue any
	Type         ValueType
}

// SimpleRule is the `when/then/else` shape (spec §3.4), used both as the
// top-level document shape and as one sub-rule shape inside MultiRule.
type SimpleRule struct {
	Name            string // "" for the top-level (unnamed) simple shape
	WhenConditions  []Condition
	ThenActions     []Action
	ElseActions     []Action
}

// ConditionalBlock is one node of the nested if/then/else tree used by
// the ComplexConditional shape (spec §3.4): `conditions: {if, then, else}`
// where each branch carries an action list and may recurse into a nested
// block.
type ConditionalBlock struct {
	If   Condition
	Then ActionBlock
	Else *ActionBlock // nil if no else branch
}

// ActionBlock is one branch of a ConditionalBlock: a flat action list
// plus an optional further nested conditional.
type ActionBlock struct {
	Actions    []Action
	Conditions *ConditionalBlock // nil if this branch doesn't recurse
}

// CircuitBreakerConfig is the document-level circuit breaker
// configuration (spec §3.4); distinct from the in-document
// ast.CircuitBreaker action — this config is consumed by the service
// layer wrapping repeated evaluations (spec §4.5 external adapters), not
// by the evaluator itself.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	TimeoutDuration  int // milliseconds
	RecoveryTimeout  int // milliseconds
}

// Document is the parsed, validated representation of one rules DSL
// source (spec §3.4, §6.1).
type Document struct {
	Loc diag.Location

	Name        string
	Description string
	Version     string
	Metadata    map[string]any

	Inputs  map[string]ValueType
	Output  map[string]string // name -> expression-or-name string
	Constants []ConstantDecl

	Shape ShapeKind

	// Exactly one of the following three is populated, matching Shape.
	Simple            *SimpleRule
	MultiRule         []*SimpleRule
	ComplexConditional *ConditionalBlock

	CircuitBreaker *CircuitBreakerConfig
}

func (d *Document) Location() diag.Location { return d.Loc }

// InputNames returns the declared input-variable names.
func (d *Document) InputNames() []string {
	names := make([]string, 0, len(d.Inputs))
	for n := range d.Inputs {
		names = append(names, n)
	}
	return names
}

// ConstantCodes returns the declared constant codes.
func (d *Document) ConstantCodes() []string {
	codes := make([]string, 0, len(d.Constants))
	for _, c := range d.Constants {
		codes = append(codes, c.Code)
	}
	return codes
}
