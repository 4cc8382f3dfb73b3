package template

import (
	"testing"
)

func TestRender_TypeCoercion(t *testing.T) {
	data := map[string]any{
		"score": 87.5,
		"name":  "Ada",
		"flag":  true,
	}

	result, err := Render("{{.score}}", data)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if num, ok := result.(float64); !ok || num != 87.5 {
		t.Errorf("expected float64 87.5, got %T %v", result, result)
	}

	result, err = Render("{{.flag}}", data)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if b, ok := result.(bool); !ok || !b {
		t.Errorf("expected bool true, got %T %v", result, result)
	}

	result, err = Render("hello {{.name}}", data)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if s, ok := result.(string); !ok || s != "hello Ada" {
		t.Errorf("expected string, got %T %v", result, result)
	}
}

func TestRender_JSONResult(t *testing.T) {
	result, err := Render(`{"a": 1}`, nil)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	obj, ok := result.(map[string]any)
	if !ok {
		t.Fatalf("expected map result, got %T", result)
	}

	if obj["a"] != float64(1) {
		t.Errorf("unexpected json value: %v", obj)
	}
}

func TestRender_ParseError(t *testing.T) {
	_, err := Render("{{.broken", nil)
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestRenderConfig(t *testing.T) {
	inputs := map[string]map[string]any{
		"lead": {"score": 91.0, "name": "Ada"},
	}

	config := map[string]any{
		"message":   "score is {{.inputs.lead.score}}",
		"threshold": 60.0,
		"plain":     "no templates here",
	}

	rendered, err := RenderConfig(config, inputs)
	if err != nil {
		t.Fatalf("render config failed: %v", err)
	}

	if rendered["message"] != "score is 91" {
		t.Errorf("unexpected message: %v", rendered["message"])
	}

	// Non-template values pass through untouched.
	if rendered["threshold"] != 60.0 {
		t.Errorf("threshold changed: %v", rendered["threshold"])
	}

	if rendered["plain"] != "no templates here" {
		t.Errorf("plain string changed: %v", rendered["plain"])
	}
}

func TestRenderConfig_BadTemplate(t *testing.T) {
	_, err := RenderConfig(map[string]any{"x": "{{.oops"}, nil)
	if err == nil {
		t.Fatal("expected error for unparsable template")
	}
}
