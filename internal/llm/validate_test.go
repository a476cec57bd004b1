package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-object",
		Description: "A test object",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"age":   map[string]any{"type": "integer", "minimum": 0},
				"grade": map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
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
		{"valid", `{"name":"Alice","age":10,"grade":"A"}`, false},
		{"optional omitted", `{"name":"Bob","age":8}`, false},
		{"missing required", `{"name":"Bob"}`, true},
		{"wrong type", `{"name":"Bob","age":"eight"}`, true},
		{"below minimum", `{"name":"Bob","age":-1}`, true},
		{"not in enum", `{"name":"Bob","age":8,"grade":"Z"}`, true},
		{"extra property", `{"name":"Bob","age":8,"pet":"cat"}`, true},
		{"not JSON", `name: Bob`, true},
		{"fractional integer", `{"name":"Bob","age":8.5}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(testSchema(), json.RawMessage(tt.raw))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var inv *ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("expected ErrInvalidResponse, got %v", err)
			}
			if string(inv.Content) != tt.raw {
				t.Errorf("content = %s, want %s", inv.Content, tt.raw)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything`)); err != nil {
		t.Fatalf("nil schema should accept anything, got %v", err)
	}
}

func TestValidateResponse_CachesCompiledSchema(t *testing.T) {
	s := testSchema()
	s.Name = "cache-probe"
	if err := validateResponse(s, json.RawMessage(`{"name":"a","age":1}`)); err != nil {
		t.Fatalf("first validate: %v", err)
	}
	if _, ok := schemaCache.Load("cache-probe"); !ok {
		t.Fatal("schema not cached")
	}
}
