// Package ast defines the tagged AST node families for the rules DSL:
// Expression, Condition, and Action (spec §3.3), plus the rule-document
// model (spec §3.4). Where the original implementation used a class
// hierarchy (Expression/Condition/Action with a visitor), this is re-architected as
// tagged sum types: one interface per family, one dispatch function per
// target operation (see internal/semantic and internal/evaluator), rather
// than virtual method dispatch on the node types themselves.
package ast

import "github.com/fireflyframework/rule-engine-go/internal/diag"

// ValueType is the static type tag an expression reports without being
// evaluated. ANY means the node's type depends on a variable whose type
// isn't known until runtime.
type ValueType int

const (
	ANY ValueType = iota
	NUMBER
	STRING
	BOOLEAN
	LIST
	OBJECT
	NULLTYPE
)

func (t ValueType) String() string {
	switch t {
	case NUMBER:
		return "NUMBER"
	case STRING:
		return "STRING"
	case BOOLEAN:
		return "BOOLEAN"
	case LIST:
		return "LIST"
	case OBJECT:
		return "OBJECT"
	case NULLTYPE:
		return "NULL"
	default:
		return "ANY"
	}
}

// Node is the common capability of every AST node: it carries its own
// source location.
type Node interface {
	Location() diag.Location
}

// Expression is any node that evaluates to a value.
type Expression interface {
	Node
	expressionNode()
	// ExpressionType reports the node's static type, or ANY when it
	// depends on a variable whose declared type is unknown.
	ExpressionType() ValueType
	// IsConstant reports whether the node's value can be determined
	// without an evaluation environment (literals and expressions built
	// purely from literals).
	IsConstant() bool
	// HasVariableReferences reports whether evaluating the node requires
	// reading from the environment.
	HasVariableReferences() bool
}

// Condition is any node that evaluates to a boolean.
type Condition interface {
	Node
	conditionNode()
}

// Action is any node that mutates the evaluation environment.
type Action interface {
	Node
	actionNode()
}

// Base embeds into every concrete node to satisfy Node's Location()
// method. Exported so other packages (parser, semantic, evaluator) can
// construct nodes directly with a literal.
type Base struct {
	Loc diag.Location
}

func (b Base) Location() diag.Location { return b.Loc }
