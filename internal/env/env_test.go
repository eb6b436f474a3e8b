package env

import "testing"

func TestGetResolvesLayeredPrecedence(t *testing.T) {
	e := New(map[string]any{"MAX": 100}, map[string]any{"creditScore": 700})
	e.Set("tier", "gold")

	if v, ok := e.Get("MAX"); !ok || v != 100 {
		t.Errorf("Get(MAX) = %v, %v", v, ok)
	}
	if v, ok := e.Get("creditScore"); !ok || v != 700 {
		t.Errorf("Get(creditScore) = %v, %v", v, ok)
	}
	if v, ok := e.Get("tier"); !ok || v != "gold" {
		t.Errorf("Get(tier) = %v, %v", v, ok)
	}
	if _, ok := e.Get("missing"); ok {
		t.Errorf("expected missing name to resolve false")
	}
}

func TestLoopScopeShadowing(t *testing.T) {
	e := New(nil, map[string]any{"item": "outer"})
	e.PushLoopScope()
	e.BindLoopVar("item", "inner")

	if v, _ := e.Get("item"); v != "inner" {
		t.Errorf("expected loop scope to shadow inputs, got %v", v)
	}

	e.Set("item", "updated")
	if v, _ := e.Get("item"); v != "updated" {
		t.Errorf("expected Set to write through to the shadowing loop scope, got %v", v)
	}

	e.PopLoopScope()
	if v, _ := e.Get("item"); v != "outer" {
		t.Errorf("expected input layer to resurface after pop, got %v", v)
	}
}

func TestSetWritesComputedLayerOutsideLoop(t *testing.T) {
	e := New(nil, nil)
	e.Set("approval_tier", "gold")
	snap := e.ComputedSnapshot()
	if snap["approval_tier"] != "gold" {
		t.Errorf("expected computed snapshot to contain set value, got %+v", snap)
	}
}

func TestComputedSnapshotIsACopy(t *testing.T) {
	e := New(nil, nil)
	e.Set("x", 1)
	snap := e.ComputedSnapshot()
	snap["x"] = 2
	if v, _ := e.Get("x"); v != 1 {
		t.Errorf("expected snapshot mutation not to affect env, got %v", v)
	}
}
