package handlers

import (
	"os"
	"path/filepath"

	"github.com/scenemcp/scenebridge/bridge"
	"github.com/scenemcp/scenebridge/scene"
)

// RenderHandlers covers viewport capture and frame rendering. Both block
// until the PNG is fully written; long renders hold their connection's
// handler for the duration, which is the protocol's contract.
func RenderHandlers() map[string]bridge.HandlerFunc {
	return map[string]bridge.HandlerFunc{
		"get_viewport_screenshot": func(doc *scene.Document, params map[string]any) (any, error) {
			width := intParam(params, "width", 1920)
			height := intParam(params, "height", 1080)
			path := stringParam(params, "filepath", "")
			if path == "" {
				path = filepath.Join(os.TempDir(), "scenebridge_screenshot.png")
			}
			if err := doc.RenderToFile(path, width, height); err != nil {
				return softError("Failed to capture viewport: %v", err), nil
			}
			return map[string]any{
				"filepath": path,
				"width":    width,
				"height":   height,
				"success":  true,
			}, nil
		},
		"render_frame": func(doc *scene.Document, params map[string]any) (any, error) {
			width := intParam(params, "width", 1920)
			height := intParam(params, "height", 1080)
			path := stringParam(params, "filepath", "")
			if path == "" {
				path = filepath.Join(os.TempDir(), "scenebridge_render.png")
			}
			if err := doc.RenderToFile(path, width, height); err != nil {
				return softError("Render failed: %v", err), nil
			}
			return map[string]any{
				"filepath": path,
				"width":    width,
				"height":   height,
				"success":  true,
			}, nil
		},
	}
}
