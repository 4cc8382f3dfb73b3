// Package httprequest provides the outbound HTTP tool with success/error
// output ports, so graphs can branch on request failure instead of aborting
// the run.
package httprequest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/toolweave/toolweave/pkg/protocol"
)

const (
	InputPortInput    = "input"
	OutputPortSuccess = "success"
	OutputPortError   = "error"
)

var validMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "DELETE": true,
	"PATCH": true, "HEAD": true, "OPTIONS": true,
}

// Executor performs one HTTP request per execution. Deadlines come from the
// engine-supplied ctx; the executor adds none of its own.
type Executor struct {
	client *http.Client
}

// Execute fires the request and routes the outcome: 2xx/3xx responses go to
// the success port, HTTP-level failures (4xx/5xx, transport errors) go to
// the error port. Only malformed config is an execution error.
func (e *Executor) Execute(ctx context.Context, config map[string]any, _ protocol.Inputs) (protocol.Outputs, error) {
	url, ok := config["url"].(string)
	if !ok || url == "" {
		return nil, errors.New("missing required field 'url'")
	}

	method := "GET"
	if m, ok := config["method"].(string); ok {
		method = strings.ToUpper(m)
	}

	if !validMethods[method] {
		return nil, fmt.Errorf("invalid HTTP method: %s", method)
	}

	body, _ := config["body"].(string)

	var reqBody io.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if headers, ok := config["headers"].(map[string]any); ok {
		for key, value := range headers {
			if str, ok := value.(string); ok {
				req.Header.Set(key, str)
			}
		}
	}

	if body != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.client.Do(req)
	if err != nil {
		// Context cancellation must abort the node, not branch.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		return errorOutputs(0, err.Error()), nil
	}

	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errorOutputs(resp.StatusCode, fmt.Sprintf("failed to read response: %v", err)), nil
	}

	if resp.StatusCode >= 400 {
		return errorOutputs(resp.StatusCode, string(respBody)), nil
	}

	record := map[string]any{
		"status_code": resp.StatusCode,
		"body":        string(respBody),
	}

	var jsonBody any
	if err := json.Unmarshal(respBody, &jsonBody); err == nil {
		record["json"] = jsonBody
	}

	return protocol.Outputs{OutputPortSuccess: record}, nil
}

func errorOutputs(statusCode int, message string) protocol.Outputs {
	return protocol.Outputs{
		OutputPortError: {
			"status_code": statusCode,
			"error":       message,
		},
	}
}
