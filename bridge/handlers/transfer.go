package handlers

import (
	"github.com/scenemcp/scenebridge/bridge"
	"github.com/scenemcp/scenebridge/scene"
)

// TransferHandlers covers scene export and import.
func TransferHandlers() map[string]bridge.HandlerFunc {
	return map[string]bridge.HandlerFunc{
		"export_scene": func(doc *scene.Document, params map[string]any) (any, error) {
			path, err := requireString(params, "filepath")
			if err != nil {
				return nil, err
			}
			format := stringParam(params, "format", scene.FormatScene)
			if err := doc.Export(path, format); err != nil {
				return softError("%s", err.Error()), nil
			}
			return map[string]any{
				"filepath": path,
				"format":   format,
				"success":  true,
			}, nil
		},
		"import_file": func(doc *scene.Document, params map[string]any) (any, error) {
			path, err := requireString(params, "filepath")
			if err != nil {
				return nil, err
			}
			merge := boolParam(params, "merge", true)
			imported, err := doc.Import(path, merge)
			if err != nil {
				return softError("%s", err.Error()), nil
			}
			return map[string]any{
				"filepath": path,
				"merge":    merge,
				"imported": imported,
				"success":  true,
			}, nil
		},
	}
}
