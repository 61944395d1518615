package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-profile",
		Description: "A test object",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string", "minLength": 1},
				"age":   map[string]any{"type": "integer", "minimum": 0},
				"track": map[string]any{"type": "string", "enum": []any{"foundations", "optimization"}},
			},
			"required":             []any{"name", "age"},
			"additionalProperties": false,
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"name":"Ana","age":30,"track":"foundations"}`, false},
		{"valid without optional", `{"name":"Bia","age":41}`, false},
		{"missing required", `{"name":"Caio"}`, true},
		{"wrong type", `{"name":"Davi","age":"trinta"}`, true},
		{"invalid enum", `{"name":"Eva","age":9,"track":"expert"}`, true},
		{"empty string", `{"name":"","age":9}`, true},
		{"extra field", `{"name":"Fabi","age":9,"extra":true}`, true},
		{"malformed JSON", `{not json}`, true},
		{"empty body", ``, true},
		{"trailing garbage", `{"name":"Gil","age":1} x`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(testSchema(), json.RawMessage(tt.raw))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("expected no error, got: %v", err)
				}
				return
			}
			var invErr *ErrInvalidResponse
			if !errors.As(err, &invErr) {
				t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
			}
			if string(invErr.Content) != tt.raw {
				t.Fatalf("content = %q, want %q", invErr.Content, tt.raw)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := Validate(nil, json.RawMessage(`anything`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_ArrayBounds(t *testing.T) {
	schema := &Schema{
		Name: "test-steps",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"steps": map[string]any{
					"type":     "array",
					"minItems": 2,
					"maxItems": 2,
					"items":    map[string]any{"type": "string"},
				},
			},
			"required": []string{"steps"},
		},
	}

	if err := Validate(schema, json.RawMessage(`{"steps":["a","b"]}`)); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if err := Validate(schema, json.RawMessage(`{"steps":["a"]}`)); err == nil {
		t.Fatal("expected error for too few items")
	}
	if err := Validate(schema, json.RawMessage(`{"steps":["a","b","c"]}`)); err == nil {
		t.Fatal("expected error for too many items")
	}
}

func TestFinishContent(t *testing.T) {
	t.Run("text is wrapped as JSON string", func(t *testing.T) {
		resp := &Response{StopReason: "end"}
		if err := finishContent(resp, nil, `Diga "oi"`); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Text() != `Diga "oi"` {
			t.Fatalf("text = %q", resp.Text())
		}
	})

	t.Run("truncated schema reply", func(t *testing.T) {
		resp := &Response{StopReason: "max_tokens"}
		err := finishContent(resp, testSchema(), `{"name":"An`)
		var trunc *ErrMaxTokensExceeded
		if !errors.As(err, &trunc) {
			t.Fatalf("expected ErrMaxTokensExceeded, got %v", err)
		}
		if string(trunc.Content) != `{"name":"An` {
			t.Fatalf("content = %s", trunc.Content)
		}
	})

	t.Run("schema reply is validated", func(t *testing.T) {
		resp := &Response{StopReason: "end"}
		if err := finishContent(resp, testSchema(), `{"name":"Ana","age":3}`); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(resp.Content) != `{"name":"Ana","age":3}` {
			t.Fatalf("content = %s", resp.Content)
		}
	})
}
