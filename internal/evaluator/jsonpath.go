package evaluator

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/fireflyframework/rule-engine-go/internal/ast"
)

// evalJsonPath implements ast.JsonPath (spec §3.3, §4.4) via
// tidwall/gjson: Source must evaluate to a JSON string.
func (e *evaluator) evalJsonPath(ctx context.Context, n *ast.JsonPath) (any, error) {
	src, err := e.evalExpression(ctx, n.Source)
	if err != nil {
		return nil, err
	}
	s, ok := src.(string)
	if !ok {
		return nil, errf("EVAL_008", n.Location(), "json path source must be a JSON string")
	}
	if n.Path == "" {
		return nil, errf("EVAL_008", n.Location(), "json path must not be empty")
	}
	res := gjson.Get(s, n.Path)
	if !res.Exists() {
		return nil, nil
	}
	return res.Value(), nil
}

// evalRestCall implements ast.RestCall (spec §3.3, §4.4): a side-
// effectful HTTP call whose failures surface as EVAL_007.
func (e *evaluator) evalRestCall(ctx context.Context, n *ast.RestCall) (any, error) {
	urlVal, err := e.evalExpression(ctx, n.URL)
	if err != nil {
		return nil, err
	}
	url, _ := urlVal.(string)
	if url == "" {
		return nil, errf("EVAL_007", n.Location(), "rest call requires a non-empty url")
	}
	method := n.Method
	if method == "" {
		method = http.MethodGet
	}

	var bodyReader io.Reader
	if n.Body != nil {
		bodyVal, err := e.evalExpression(ctx, n.Body)
		if err != nil {
			return nil, err
		}
		if bs, ok := bodyVal.(string); ok {
			bodyReader = strings.NewReader(bs)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, errf("EVAL_007", n.Location(), "rest call request build failed: %s", err.Error())
	}
	for key, headerExpr := range n.Headers {
		v, err := e.evalExpression(ctx, headerExpr)
		if err != nil {
			return nil, err
		}
		if s, ok := v.(string); ok {
			req.Header.Set(key, s)
		}
	}

	timeout := 10 * time.Second
	if n.Timeout != nil {
		tv, err := e.evalExpression(ctx, n.Timeout)
		if err != nil {
			return nil, err
		}
		if d, ok := tv.(interface{ IntPart() int64 }); ok {
			timeout = time.Duration(d.IntPart()) * time.Millisecond
		}
	}
	client := &http.Client{Timeout: timeout}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errf("EVAL_007", n.Location(), "rest call failed: %s", err.Error())
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errf("EVAL_007", n.Location(), "rest call read failed: %s", err.Error())
	}
	if resp.StatusCode >= 400 {
		return nil, errf("EVAL_007", n.Location(), "rest call to %s returned status %d", url, resp.StatusCode)
	}
	return string(b), nil
}
