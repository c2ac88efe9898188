// Package handlers is the bridge operation catalog: one named handler per
// command, registered with the dispatcher at startup. Handlers are simple,
// synchronous request functions against the scene document; they report
// operation-level problems as {"error": ...} result values and reserve
// returned errors for conditions the dispatcher should surface as an error
// response.
package handlers

import (
	"fmt"

	"github.com/scenemcp/scenebridge/scene"
)

// Params arrive as an open JSON mapping; absent optional values take
// handler-defined defaults. These helpers tolerate the numeric looseness of
// decoded JSON (everything is float64).

func stringParam(params map[string]any, key, def string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return def
}

func requireString(params map[string]any, key string) (string, error) {
	v, ok := params[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("missing required parameter: %s", key)
	}
	return v, nil
}

func floatParam(params map[string]any, key string, def float64) float64 {
	switch v := params[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return def
}

func intParam(params map[string]any, key string, def int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

func boolParam(params map[string]any, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}

// vec3Param decodes an optional [x, y, z] list. A missing or malformed
// value yields nil so the scene keeps its defaults.
func vec3Param(params map[string]any, key string) *scene.Vec3 {
	list, ok := params[key].([]any)
	if !ok || len(list) != 3 {
		return nil
	}
	var out scene.Vec3
	for i, item := range list {
		f, ok := item.(float64)
		if !ok {
			return nil
		}
		out[i] = f
	}
	return &out
}

func mapParam(params map[string]any, key string) map[string]any {
	if v, ok := params[key].(map[string]any); ok {
		return v
	}
	return nil
}

// softError is the handler-level error reporting style: the command itself
// succeeded at the protocol level, the operation did not.
func softError(format string, args ...any) map[string]any {
	return map[string]any{"error": fmt.Sprintf(format, args...)}
}
