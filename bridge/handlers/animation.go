package handlers

import (
	"github.com/scenemcp/scenebridge/bridge"
	"github.com/scenemcp/scenebridge/scene"
)

// AnimationHandlers covers the timeline and keyframing.
func AnimationHandlers() map[string]bridge.HandlerFunc {
	return map[string]bridge.HandlerFunc{
		"set_animation_frame": func(doc *scene.Document, params map[string]any) (any, error) {
			frame := intParam(params, "frame", 0)
			applied := doc.SetFrame(frame)
			return map[string]any{
				"frame":   applied,
				"success": true,
			}, nil
		},
		"create_keyframe": func(doc *scene.Document, params map[string]any) (any, error) {
			objectName, err := requireString(params, "object_name")
			if err != nil {
				return nil, err
			}
			parameter, err := requireString(params, "parameter")
			if err != nil {
				return nil, err
			}
			frame := intParam(params, "frame", doc.Frame())
			value := floatParam(params, "value", 0)
			if err := doc.AddKeyframe(objectName, parameter, value, frame); err != nil {
				return softError("%s", err.Error()), nil
			}
			return map[string]any{
				"object":    objectName,
				"parameter": parameter,
				"frame":     frame,
				"success":   true,
			}, nil
		},
	}
}
