// Package mcptools exposes the bridge operation catalog as MCP tools. Each
// tool builds a command from its arguments, sends it through the connection
// manager, and renders the result (or a descriptive error) for the model.
package mcptools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func inputSchema(properties map[string]any, required ...string) mcp.ToolInputSchema {
	if required == nil {
		required = []string{}
	}
	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

func propString(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func propNumber(description string) map[string]any {
	return map[string]any{"type": "number", "description": description}
}

func propInteger(description string) map[string]any {
	return map[string]any{"type": "integer", "description": description}
}

func propBoolean(description string) map[string]any {
	return map[string]any{"type": "boolean", "description": description}
}

func propVec3(description string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "number"},
		"minItems":    3,
		"maxItems":    3,
		"description": description,
	}
}

func propObject(description string) map[string]any {
	return map[string]any{"type": "object", "description": description}
}

// vec3Arg pulls an optional [x, y, z] argument through to the command
// params untouched; the host side does its own validation.
func vec3Arg(request mcp.CallToolRequest, params map[string]any, key string) {
	args := request.GetArguments()
	if v, ok := args[key].([]any); ok && len(v) == 3 {
		params[key] = v
	}
}

func prettyJSON(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "{}"
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return string(raw)
	}
	return string(out)
}

// softErrorOf extracts the handler-level {"error": ...} reporting style
// from a success payload, if present.
func softErrorOf(raw json.RawMessage) (string, bool) {
	var v struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}
	return v.Error, v.Error != ""
}

func errResult(action string, err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("Error %s: %v", action, err))
}
