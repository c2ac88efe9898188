package handlers

import (
	"fmt"
	"strings"

	"github.com/scenemcp/scenebridge/bridge"
	"github.com/scenemcp/scenebridge/scene"
)

// ChatHandlers covers the conversational operations. process_chat is a
// keyword-driven scene Q&A: it answers questions about the live document
// and returns whatever context it gathered so the caller can thread it
// into its own history store.
func ChatHandlers() map[string]bridge.HandlerFunc {
	return map[string]bridge.HandlerFunc{
		"get_chat_status": func(doc *scene.Document, params map[string]any) (any, error) {
			return map[string]any{
				"enabled": true,
				"message": "Chat is enabled. You can have conversational interactions with the scene host!",
			}, nil
		},
		"process_chat": func(doc *scene.Document, params map[string]any) (any, error) {
			message, err := requireString(params, "message")
			if err != nil {
				return nil, err
			}
			includeContext := boolParam(params, "include_scene_context", true)
			response, context := answerChat(doc, message)
			if includeContext {
				context["object_count"] = doc.ObjectCount()
				if selected := doc.Selection(); len(selected) > 0 {
					context["selected_objects"] = selected
				}
			}
			return map[string]any{
				"response":     response,
				"context_info": context,
			}, nil
		},
	}
}

func answerChat(doc *scene.Document, message string) (string, map[string]any) {
	var parts []string
	context := map[string]any{}
	lower := strings.ToLower(message)

	contains := func(subs ...string) bool {
		for _, s := range subs {
			if strings.Contains(lower, s) {
				return true
			}
		}
		return false
	}

	switch {
	case contains("hello", "hi ", "hey") || lower == "hi":
		parts = append(parts, "Hello! I'm your scene assistant. How can I help you today?")

	case contains("how many") && contains("object"):
		count := doc.ObjectCount()
		parts = append(parts, fmt.Sprintf("There are currently %d objects in the scene.", count))
		context["object_count"] = count

	case contains("what objects", "list objects"):
		names := doc.ObjectNames()
		context["object_count"] = len(names)
		if len(names) > 10 {
			parts = append(parts, fmt.Sprintf("Here are the first 10 objects: %s. There are %d objects total.",
				strings.Join(names[:10], ", "), len(names)))
		} else {
			parts = append(parts, fmt.Sprintf("The scene contains: %s.", strings.Join(names, ", ")))
		}

	case contains("selected"):
		selected := doc.Selection()
		if len(selected) > 0 {
			parts = append(parts, "Currently selected objects: "+strings.Join(selected, ", "))
		} else {
			parts = append(parts, "No objects are currently selected.")
		}
		context["selected_objects"] = selected

	case contains("camera"):
		cameras := doc.ObjectsOfType("camera")
		if len(cameras) > 0 {
			parts = append(parts, "Cameras in the scene: "+strings.Join(cameras, ", "))
		} else {
			parts = append(parts, "There are no cameras in the scene.")
		}
		context["cameras"] = cameras

	case contains("light"):
		lights := doc.ObjectsOfType("light")
		parts = append(parts, fmt.Sprintf("There are %d lights in the scene.", len(lights)))
		if len(lights) > 0 {
			parts = append(parts, "Lights: "+strings.Join(lights, ", "))
		}
		context["lights"] = lights

	case contains("help", "what can you do"):
		parts = append(parts, helpText)

	default:
		parts = append(parts, "I understand you're asking about: "+message)
		parts = append(parts, "\nI can help you with scene information, object queries, and general scene questions. Try asking about objects, cameras, lights, or what I can do to help!")
	}

	return strings.Join(parts, "\n"), context
}

const helpText = `I can help you with various scene tasks:
- Answer questions about your scene (objects, selection, cameras, lights, etc.)
- Create and modify objects
- Manage materials and textures
- Render and capture viewports
- Animate objects
- Import and export files

Just ask me anything about your project!`
