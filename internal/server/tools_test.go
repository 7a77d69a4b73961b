package server

import (
	"encoding/json"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"image_load",
		"image_modes",
		"image_conversion_path",
		"image_convert",
		"image_quantize",
		"image_dither",
		"image_average_hash",
		"image_compare_hash",
		"image_composite",
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("tool count: got %d, want %d", len(tools), len(expectedTools))
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}
			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema properties should be a map")
			}

			// Every required parameter must be declared.
			required, _ := tool.InputSchema["required"].([]string)
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required parameter %q is not in properties", r)
				}
			}

			// Every property carries a type and a description.
			for name, p := range props {
				pm, ok := p.(map[string]interface{})
				if !ok {
					t.Errorf("%s: property should be a map", name)
					continue
				}
				if pm["type"] == nil || pm["description"] == nil {
					t.Errorf("%s: missing type or description", name)
				}
			}
		})
	}
}

func TestToolDefinitions_Required(t *testing.T) {
	want := map[string][]string{
		"image_load":            {"path"},
		"image_conversion_path": {"source", "target"},
		"image_convert":         {"path", "target"},
		"image_quantize":        {"path"},
		"image_dither":          {"path"},
		"image_average_hash":    {"path"},
		"image_composite":       {"front_path"},
	}

	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}

	for name, params := range want {
		t.Run(name, func(t *testing.T) {
			required, ok := toolMap[name].InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}
			if len(required) != len(params) {
				t.Fatalf("required: got %v, want %v", required, params)
			}
			for i := range params {
				if required[i] != params[i] {
					t.Errorf("required[%d]: got %s, want %s", i, required[i], params[i])
				}
			}
		})
	}

	// Both sides may be given as paths or hashes, so nothing is required.
	if _, ok := toolMap["image_compare_hash"].InputSchema["required"]; ok {
		t.Error("image_compare_hash should not require any parameter")
	}
}

func TestToolDefinitions_DitherMethod(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		props := tool.InputSchema["properties"].(map[string]interface{})
		_, hasMethod := props["method"]
		switch tool.Name {
		case "image_dither":
			if !hasMethod {
				t.Error("image_dither should accept a method")
			}
		case "image_quantize":
			if hasMethod {
				t.Error("image_quantize should not accept a method")
			}
			if _, ok := props["levels"]; !ok {
				t.Error("image_quantize should accept levels")
			}
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New()
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
	}

	resp := s.handleToolsList(req)

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}

	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}

	if len(toolsList) != len(GetToolDefinitions()) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(GetToolDefinitions()))
	}
}

func TestTool_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(GetToolDefinitions()[0])
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if _, ok := decoded["inputSchema"]; !ok {
		t.Error("marshaled tool should use the inputSchema key")
	}
	if decoded["name"] != "image_load" {
		t.Errorf("name: got %v, want image_load", decoded["name"])
	}
}
