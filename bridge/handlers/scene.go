package handlers

import (
	"github.com/scenemcp/scenebridge/bridge"
	"github.com/scenemcp/scenebridge/scene"
)

// SceneHandlers covers scene inspection and object lifecycle.
func SceneHandlers() map[string]bridge.HandlerFunc {
	return map[string]bridge.HandlerFunc{
		"get_scene_info": func(doc *scene.Document, params map[string]any) (any, error) {
			includeHierarchy := boolParam(params, "include_hierarchy", false)
			return doc.SceneInfo(includeHierarchy), nil
		},
		"get_object_info": func(doc *scene.Document, params map[string]any) (any, error) {
			name, err := requireString(params, "name")
			if err != nil {
				return nil, err
			}
			detail, err := doc.ObjectDetail(name)
			if err != nil {
				return softError("%s", err.Error()), nil
			}
			return detail, nil
		},
		"create_object": func(doc *scene.Document, params map[string]any) (any, error) {
			objectType, err := requireString(params, "object_type")
			if err != nil {
				return nil, err
			}
			name, err := requireString(params, "name")
			if err != nil {
				return nil, err
			}
			pos := vec3Param(params, "position")
			rot := vec3Param(params, "rotation")
			scl := vec3Param(params, "scale")
			if err := doc.CreateObject(objectType, name, pos, rot, scl); err != nil {
				return softError("%s", err.Error()), nil
			}
			return map[string]any{
				"name":    name,
				"type":    objectType,
				"success": true,
			}, nil
		},
		"modify_object": func(doc *scene.Document, params map[string]any) (any, error) {
			name, err := requireString(params, "name")
			if err != nil {
				return nil, err
			}
			pos := vec3Param(params, "position")
			rot := vec3Param(params, "rotation")
			scl := vec3Param(params, "scale")
			props := mapParam(params, "properties")
			if err := doc.ModifyObject(name, pos, rot, scl, props); err != nil {
				return softError("%s", err.Error()), nil
			}
			return map[string]any{"success": true}, nil
		},
		"delete_object": func(doc *scene.Document, params map[string]any) (any, error) {
			name, err := requireString(params, "name")
			if err != nil {
				return nil, err
			}
			if err := doc.DeleteObject(name); err != nil {
				return softError("%s", err.Error()), nil
			}
			return map[string]any{"success": true}, nil
		},
	}
}
