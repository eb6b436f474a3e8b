package parser

import (
	"fmt"

	yaml "github.com/goccy/go-yaml"

	"github.com/fireflyframework/rule-engine-go/internal/ast"
	"github.com/fireflyframework/rule-engine-go/internal/diag"
)

// docParser walks a decoded YAML document (spec §6.1) and classifies it
// into one of the three mutually-exclusive rule-document shapes (spec
// §3.4), delegating condition and action strings to condParser/
// actionParser.
type docParser struct {
	errs []*diag.Diagnostic
}

// ParseDocument decodes source as YAML (spec §6.1) and builds a
// validated-shape ast.Document. Parse errors from the YAML decoder or
// any sub-parser propagate with location where available.
func ParseDocument(source string) (*ast.Document, []*diag.Diagnostic) {
	if len(source) == 0 {
		return nil, []*diag.Diagnostic{diag.New("PARSE_EMPTY_SOURCE", "rule source is empty", diag.Location{})}
	}

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(source), &raw); err != nil {
		return nil, []*diag.Diagnostic{diag.New("PARSE_UNEXPECTED", "failed to parse YAML: "+err.Error(), diag.Location{})}
	}

	p := &docParser{}
	doc := p.parseTopLevel(raw)
	return doc, p.errs
}

func (p *docParser) errorf(code, format string, args ...any) {
	p.errs = append(p.errs, diag.Newf(code, diag.Location{}, format, args...))
}

func (p *docParser) parseTopLevel(raw map[string]any) *ast.Document {
	doc := &ast.Document{
		Name:        str(raw["name"]),
		Description: str(raw["description"]),
		Version:     str(raw["version"]),
		Metadata:    asMap(raw["metadata"]),
		Inputs:      p.parseInputs(raw["inputs"]),
		Output:      p.parseOutput(raw["output"]),
		Constants:   p.parseConstants(raw["constants"]),
	}

	if cb, ok := raw["circuitBreaker"]; ok {
		doc.CircuitBreaker = p.parseCircuitBreakerConfig(asMap(cb))
	}

	switch {
	case raw["rules"] != nil:
		doc.Shape = ast.ShapeMultiRule
		doc.MultiRule = p.parseRulesList(raw["rules"])
	case raw["conditions"] != nil:
		doc.Shape = ast.ShapeComplexConditional
		doc.ComplexConditional = p.parseConditionalBlock(asMap(raw["conditions"]))
	default:
		doc.Shape = ast.ShapeSimple
		doc.Simple = p.parseSimpleRule("", raw)
	}

	return doc
}

func (p *docParser) parseInputs(v any) map[string]ast.ValueType {
	m := asMap(v)
	out := make(map[string]ast.ValueType, len(m))
	for name, tag := range m {
		out[name] = typeTagToValueType(str(tag))
	}
	return out
}

func typeTagToValueType(tag string) ast.ValueType {
	switch tag {
	case "number":
		return ast.NUMBER
	case "text":
		return ast.STRING
	case "boolean":
		return ast.BOOLEAN
	case "list":
		return ast.LIST
	case "object":
		return ast.OBJECT
	case "date":
		return ast.STRING // dates travel as strings; is_date validates format
	default:
		return ast.ANY
	}
}

func (p *docParser) parseOutput(v any) map[string]string {
	m := asMap(v)
	out := make(map[string]string, len(m))
	for name, expr := range m {
		out[name] = str(expr)
	}
	return out
}

func (p *docParser) parseConstants(v any) []ast.ConstantDecl {
	list, _ := v.([]any)
	out := make([]ast.ConstantDecl, 0, len(list))
	for _, item := range list {
		m := asMap(item)
		decl := ast.ConstantDecl{Code: str(m["code"])}
		if dv, ok := m["defaultValue"]; ok {
			decl.DefaultValue = dv
		}
		if t, ok := m["type"]; ok {
			decl.Type = typeTagToValueType(str(t))
		}
		if decl.Code == "" {
			p.errorf("PARSE_VALIDATION_001", "constant declaration missing 'code'")
			continue
		}
		out = append(out, decl)
	}
	return out
}

func (p *docParser) parseCircuitBreakerConfig(m map[string]any) *ast.CircuitBreakerConfig {
	return &ast.CircuitBreakerConfig{
		Enabled:          asBool(m["enabled"]),
		FailureThreshold: asInt(m["failureThreshold"]),
		TimeoutDuration:  asInt(m["timeoutDuration"]),
		RecoveryTimeout:  asInt(m["recoveryTimeout"]),
	}
}

func (p *docParser) parseRulesList(v any) []*ast.SimpleRule {
	list, _ := v.([]any)
	out := make([]*ast.SimpleRule, 0, len(list))
	for _, item := range list {
		m := asMap(item)
		name := str(m["name"])
		out = append(out, p.parseSimpleRule(name, m))
	}
	return out
}

func (p *docParser) parseSimpleRule(name string, m map[string]any) *ast.SimpleRule {
	return &ast.SimpleRule{
		Name:           name,
		WhenConditions: p.parseConditionList(m["when"]),
		ThenActions:    p.parseActionList(m["then"]),
		ElseActions:    p.parseActionList(m["else"]),
	}
}

func (p *docParser) parseConditionList(v any) []ast.Condition {
	list, _ := v.([]any)
	out := make([]ast.Condition, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			p.errorf("PARSE_VALIDATION_001", "condition entries must be strings, got %T", item)
			continue
		}
		cond, errs := ParseConditionString(s)
		p.errs = append(p.errs, errs...)
		if cond != nil {
			out = append(out, cond)
		}
	}
	return out
}

func (p *docParser) parseActionList(v any) []ast.Action {
	list, _ := v.([]any)
	out := make([]ast.Action, 0, len(list))
	for _, item := range list {
		act := p.parseActionItem(item)
		if act != nil {
			out = append(out, act)
		}
	}
	return out
}

// parseActionItem dispatches a single action-list entry: a plain DSL
// string (`set x to 1`) or a YAML mapping block form for the control
// constructs that need multi-action bodies (if/forEach/while/doWhile),
// per spec §4.2's "(or block form with variable, in, do)" allowance.
func (p *docParser) parseActionItem(item any) ast.Action {
	switch v := item.(type) {
	case string:
		act, errs := ParseActionString(v)
		p.errs = append(p.errs, errs...)
		return act
	case map[string]any, map[any]any:
		m := asMap(v)
		return p.parseActionBlock(m)
	default:
		p.errorf("PARSE_VALIDATION_001", "unsupported action entry type %T", item)
		return nil
	}
}

func (p *docParser) parseActionBlock(m map[string]any) ast.Action {
	switch {
	case m["if"] != nil:
		cond, errs := ParseConditionString(str(m["if"]))
		p.errs = append(p.errs, errs...)
		return &ast.Conditional{
			Cond:        cond,
			ThenActions: p.parseActionList(m["then"]),
			ElseActions: p.parseActionList(m["else"]),
		}
	case m["forEach"] != nil:
		fe := asMap(m["forEach"])
		listExpr, errs := ParseExpressionString(str(fe["in"]))
		p.errs = append(p.errs, errs...)
		return &ast.ForEach{
			IterVar:  str(fe["variable"]),
			IndexVar: str(fe["index"]),
			ListExpr: listExpr,
			Body:     p.parseActionList(fe["do"]),
		}
	case m["while"] != nil:
		cond, errs := ParseConditionString(str(m["while"]))
		p.errs = append(p.errs, errs...)
		max := ast.DefaultMaxIterations
		if mi := asInt(m["maxIterations"]); mi > 0 {
			max = mi
		}
		return &ast.While{Cond: cond, Body: p.parseActionList(m["do"]), MaxIterations: max}
	case m["doWhile"] != nil:
		dw := asMap(m["doWhile"])
		cond, errs := ParseConditionString(str(dw["while"]))
		p.errs = append(p.errs, errs...)
		max := ast.DefaultMaxIterations
		if mi := asInt(dw["maxIterations"]); mi > 0 {
			max = mi
		}
		return &ast.DoWhile{Body: p.parseActionList(dw["do"]), Cond: cond, MaxIterations: max}
	default:
		p.errorf("PARSE_VALIDATION_001", "unrecognized action block: %v", m)
		return nil
	}
}

func (p *docParser) parseConditionalBlock(m map[string]any) *ast.ConditionalBlock {
	if m == nil {
		return nil
	}
	cond, errs := ParseConditionString(str(m["if"]))
	p.errs = append(p.errs, errs...)
	block := &ast.ConditionalBlock{If: cond, Then: p.parseActionBlockBody(asMap(m["then"]))}
	if elseRaw, ok := m["else"]; ok {
		eb := p.parseActionBlockBody(asMap(elseRaw))
		block.Else = &eb
	}
	return block
}

func (p *docParser) parseActionBlockBody(m map[string]any) ast.ActionBlock {
	block := ast.ActionBlock{Actions: p.parseActionList(m["actions"])}
	if nested, ok := m["conditions"]; ok {
		block.Conditions = p.parseConditionalBlock(asMap(nested))
	}
	return block
}

// --- decoding helpers over the generic YAML any-tree ---

func str(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

// asMap normalizes either map[string]any (goccy/go-yaml's default) or
// map[any]any into map[string]any.
func asMap(v any) map[string]any {
	switch m := v.(type) {
	case map[string]any:
		return m
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprintf("%v", k)] = val
		}
		return out
	default:
		return map[string]any{}
	}
}
