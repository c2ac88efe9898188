package handlers

import (
	"github.com/scenemcp/scenebridge/bridge"
	"github.com/scenemcp/scenebridge/scene"
)

// MaterialHandlers covers material creation and assignment.
func MaterialHandlers() map[string]bridge.HandlerFunc {
	return map[string]bridge.HandlerFunc{
		"create_material": func(doc *scene.Document, params map[string]any) (any, error) {
			name, err := requireString(params, "name")
			if err != nil {
				return nil, err
			}
			m := scene.Material{
				Name:        name,
				Color:       scene.Vec3{1, 1, 1},
				Reflectance: floatParam(params, "reflectance", 0),
				Roughness:   floatParam(params, "roughness", 0.5),
				Metallic:    floatParam(params, "metallic", 0),
				Opacity:     floatParam(params, "opacity", 1),
			}
			if color := vec3Param(params, "color"); color != nil {
				m.Color = *color
			}
			doc.CreateMaterial(m)
			return map[string]any{
				"name":    name,
				"success": true,
			}, nil
		},
		"apply_material": func(doc *scene.Document, params map[string]any) (any, error) {
			objectName, err := requireString(params, "object_name")
			if err != nil {
				return nil, err
			}
			materialName, err := requireString(params, "material_name")
			if err != nil {
				return nil, err
			}
			if err := doc.ApplyMaterial(objectName, materialName); err != nil {
				return softError("%s", err.Error()), nil
			}
			return map[string]any{"success": true}, nil
		},
	}
}
