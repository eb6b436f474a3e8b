package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	intdecimal "github.com/fireflyframework/rule-engine-go/internal/decimal"
)

// FunctionRegistry resolves a function name to a callable and invokes it
// with evaluated arguments (spec §4.5).
type FunctionRegistry interface {
	Exists(name string) bool
	Invoke(ctx context.Context, name string, args []any) (any, error)
}

// Func is one registered function implementation.
type Func func(ctx context.Context, args []any) (any, error)

// DefaultRegistry is the builtin-seeded FunctionRegistry (spec §4.5: "rest_get,
// rest_post, json_get, json_size, json_exists, format_currency, max, min, etc").
type DefaultRegistry struct {
	funcs  map[string]Func
	client *http.Client
}

// NewDefaultRegistry builds a registry with every builtin pre-registered.
func NewDefaultRegistry() *DefaultRegistry {
	r := &DefaultRegistry{
		funcs:  map[string]Func{},
		client: &http.Client{Timeout: 10 * time.Second},
	}
	r.registerBuiltins()
	return r
}

// Register adds or overrides a function, e.g. for host-supplied domain
// functions beyond the builtin set.
func (r *DefaultRegistry) Register(name string, fn Func) {
	r.funcs[name] = fn
}

func (r *DefaultRegistry) Exists(name string) bool {
	_, ok := r.funcs[name]
	return ok
}

func (r *DefaultRegistry) Invoke(ctx context.Context, name string, args []any) (any, error) {
	fn, ok := r.funcs[name]
	if !ok {
		return nil, fmt.Errorf("function %q is not registered", name)
	}
	return fn(ctx, args)
}

func (r *DefaultRegistry) registerBuiltins() {
	r.funcs["rest_get"] = r.restGet
	r.funcs["rest_post"] = r.restPost
	r.funcs["json_get"] = jsonGet
	r.funcs["json_set"] = jsonSet
	r.funcs["json_size"] = jsonSize
	r.funcs["json_exists"] = jsonExists
	r.funcs["format_currency"] = formatCurrency
	r.funcs["max"] = func(_ context.Context, args []any) (any, error) { return decimalFold(args, decimal.Decimal.GreaterThan) }
	r.funcs["min"] = func(_ context.Context, args []any) (any, error) { return decimalFold(args, decimal.Decimal.LessThan) }
}

func (r *DefaultRegistry) restGet(ctx context.Context, args []any) (any, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("rest_get requires a url argument")
	}
	url, _ := args[0].(string)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return r.do(req)
}

func (r *DefaultRegistry) restPost(ctx context.Context, args []any) (any, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("rest_post requires a url argument")
	}
	url, _ := args[0].(string)
	var body string
	if len(args) > 1 {
		body, _ = args[1].(string)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return r.do(req)
}

func (r *DefaultRegistry) do(req *http.Request) (any, error) {
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("rest call to %s failed with status %d", req.URL, resp.StatusCode)
	}
	return string(b), nil
}

func jsonGet(_ context.Context, args []any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("json_get requires (json, path) arguments")
	}
	src, _ := args[0].(string)
	path, _ := args[1].(string)
	res := gjson.Get(src, path)
	if !res.Exists() {
		return nil, nil
	}
	return res.Value(), nil
}

func jsonSet(_ context.Context, args []any) (any, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("json_set requires (json, path, value) arguments")
	}
	src, _ := args[0].(string)
	path, _ := args[1].(string)
	return sjson.Set(src, path, args[2])
}

func jsonSize(_ context.Context, args []any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("json_size requires (json, path) arguments")
	}
	src, _ := args[0].(string)
	path, _ := args[1].(string)
	res := gjson.Get(src, path)
	if res.IsArray() || res.IsObject() {
		return decimal.NewFromInt(int64(len(res.Array()))), nil
	}
	return decimal.Zero, nil
}

func jsonExists(_ context.Context, args []any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("json_exists requires (json, path) arguments")
	}
	src, _ := args[0].(string)
	path, _ := args[1].(string)
	return gjson.Get(src, path).Exists(), nil
}

func formatCurrency(_ context.Context, args []any) (any, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("format_currency requires a numeric argument")
	}
	d, ok := intdecimal.FromAny(args[0])
	if !ok {
		return nil, fmt.Errorf("format_currency argument must be numeric")
	}
	symbol := "$"
	if len(args) > 1 {
		if s, ok := args[1].(string); ok {
			symbol = s
		}
	}
	return symbol + d.StringFixed(2), nil
}

func decimalFold(args []any, better func(a, b decimal.Decimal) bool) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("requires at least one numeric argument")
	}
	best, ok := intdecimal.FromAny(args[0])
	if !ok {
		return nil, fmt.Errorf("argument %v is not numeric", args[0])
	}
	for _, a := range args[1:] {
		d, ok := intdecimal.FromAny(a)
		if !ok {
			return nil, fmt.Errorf("argument %v is not numeric", a)
		}
		if better(d, best) {
			best = d
		}
	}
	return best, nil
}
