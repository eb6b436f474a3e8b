package evaluator

import (
	"context"

	"github.com/fireflyframework/rule-engine-go/internal/ast"
)

// evaluateDocument dispatches on doc.Shape per spec §4.4's "Document
// evaluation order" and returns the overall conditionResult.
func (e *evaluator) evaluateDocument(ctx context.Context) (bool, error) {
	switch e.doc.Shape {
	case ast.ShapeSimple:
		return e.evaluateSimpleRule(ctx, e.doc.Simple)
	case ast.ShapeMultiRule:
		return e.evaluateMultiRule(ctx, e.doc.MultiRule)
	case ast.ShapeComplexConditional:
		return e.evaluateConditionalBlock(ctx, e.doc.ComplexConditional)
	default:
		return false, nil
	}
}

// evaluateSimpleRule evaluates when-conjuncts top-to-bottom (short-
// circuiting on the first false) and runs then/else accordingly.
func (e *evaluator) evaluateSimpleRule(ctx context.Context, r *ast.SimpleRule) (bool, error) {
	if r == nil {
		return false, nil
	}
	all := true
	for _, cond := range r.WhenConditions {
		v, err := e.evalCondition(ctx, cond)
		if err != nil {
			return false, err
		}
		if !v {
			all = false
			break
		}
	}
	if all {
		return true, e.executeActions(ctx, r.ThenActions)
	}
	return false, e.executeActions(ctx, r.ElseActions)
}

// evaluateMultiRule runs sub-rules in declaration order; mutations
// persist across sub-rules and conditionResult is the OR across their
// individual when-evaluations (spec §4.4). Every sub-rule is evaluated;
// there is no short-circuit. Sub-rules are always SimpleRule per the AST
// model in internal/ast/document.go: a sub-rule with a nested
// conditions tree is not representable.
func (e *evaluator) evaluateMultiRule(ctx context.Context, rules []*ast.SimpleRule) (bool, error) {
	overall := false
	for _, r := range rules {
		if e.halted {
			break
		}
		matched, err := e.evaluateSimpleRule(ctx, r)
		if err != nil {
			return overall, err
		}
		if matched {
			overall = true
		}
	}
	return overall, nil
}

// evaluateConditionalBlock recurses through executeActionBlock for each
// level of nested conditions: (spec §5 "recursion depth limit on nested
// conditional blocks, default 64"). conditionDepth is incremented on
// entry and restored on return so sibling blocks don't inherit a
// deeper count than their actual nesting.
func (e *evaluator) evaluateConditionalBlock(ctx context.Context, b *ast.ConditionalBlock) (bool, error) {
	if b == nil {
		return false, nil
	}
	e.conditionDepth++
	defer func() { e.conditionDepth-- }()
	if e.conditionDepth > e.cfg.MaxRecursionDepth {
		return false, errf("EVAL_TIMEOUT", b.If.Location(), "conditional block nesting exceeded %d levels", e.cfg.MaxRecursionDepth)
	}
	matched, err := e.evalCondition(ctx, b.If)
	if err != nil {
		return false, err
	}
	if matched {
		return true, e.executeActionBlock(ctx, b.Then)
	}
	if b.Else != nil {
		return false, e.executeActionBlock(ctx, *b.Else)
	}
	return false, nil
}

func (e *evaluator) executeActionBlock(ctx context.Context, b ast.ActionBlock) error {
	if err := e.executeActions(ctx, b.Actions); err != nil {
		return err
	}
	if b.Conditions != nil && !e.halted {
		_, err := e.evaluateConditionalBlock(ctx, b.Conditions)
		return err
	}
	return nil
}
