// Package adapters implements the thin external-collaborator contracts
// named in spec §4.5: a constants provider, a function registry (with
// REST/JSON-Path builtins), two cache provider implementations, and an
// audit sink. None of these own domain logic — they're boundaries the
// evaluator calls through, matching spec §1's "these collaborators are
// specified only at their interface boundary".
package adapters

import (
	"context"
	"fmt"
	"os"
)

// ConstantsProvider resolves UPPER_CASE constant codes to runtime values
// at the start of evaluation (spec §4.5). Missing codes fall back to the
// document's declared defaultValue, or null with a warning.
type ConstantsProvider interface {
	Resolve(ctx context.Context, codes []string) (map[string]any, error)
}

// StaticConstantsProvider resolves constants from a fixed in-memory map,
// e.g. loaded once from configuration at process start. This is the
// reference implementation; persistence of where that map comes from is
// explicitly out of scope (spec §1 Non-goals).
type StaticConstantsProvider struct {
	values map[string]any
}

// NewStaticConstantsProvider builds a provider backed by values.
func NewStaticConstantsProvider(values map[string]any) *StaticConstantsProvider {
	if values == nil {
		values = map[string]any{}
	}
	return &StaticConstantsProvider{values: values}
}

func (p *StaticConstantsProvider) Resolve(_ context.Context, codes []string) (map[string]any, error) {
	out := make(map[string]any, len(codes))
	for _, code := range codes {
		if v, ok := p.values[code]; ok {
			out[code] = v
		}
	}
	return out, nil
}

// ResolveWithDefaults resolves codes against p, falling back to each
// decl's DefaultValue (or nil, with a stderr warning) when the provider
// doesn't carry a value for that code.
func ResolveWithDefaults(ctx context.Context, p ConstantsProvider, codes []string, defaults map[string]any) (map[string]any, error) {
	resolved, err := p.Resolve(ctx, codes)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(codes))
	for _, code := range codes {
		if v, ok := resolved[code]; ok {
			out[code] = v
			continue
		}
		if def, ok := defaults[code]; ok {
			out[code] = def
			continue
		}
		fmt.Fprintf(os.Stderr, "warning: constant %s has no provider value or declared default, using null\n", code)
		out[code] = nil
	}
	return out, nil
}
