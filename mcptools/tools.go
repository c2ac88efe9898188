package mcptools

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/scenemcp/scenebridge/chat"
	"github.com/scenemcp/scenebridge/client"
)

// Register adds every catalog operation plus the chat tools to the MCP
// server. The connection manager is shared across tools; the chat manager
// keeps the local conversation session.
func Register(s *server.MCPServer, c *client.Client, h *chat.Manager) {
	registerSceneTools(s, c)
	registerMaterialTools(s, c)
	registerRenderTools(s, c)
	registerAnimationTools(s, c)
	registerTransferTools(s, c)
	registerChatTools(s, c, h)
}

func registerSceneTools(s *server.MCPServer, c *client.Client) {
	s.AddTool(mcp.Tool{
		Name:        "get_scene_info",
		Description: "Get detailed information about the current scene: objects, materials, frame range.",
		InputSchema: inputSchema(map[string]any{
			"include_hierarchy": propBoolean("Include per-object child counts (default: false)"),
		}),
	}, func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := c.SendCommand("get_scene_info", map[string]any{
			"include_hierarchy": request.GetBool("include_hierarchy", false),
		})
		if err != nil {
			return errResult("getting scene info", err), nil
		}
		return mcp.NewToolResultText(prettyJSON(result)), nil
	})

	s.AddTool(mcp.Tool{
		Name:        "get_object_info",
		Description: "Get detailed information about a specific object: transform, tags, visibility.",
		InputSchema: inputSchema(map[string]any{
			"object_name": propString("Name of the object to inspect"),
		}, "object_name"),
	}, func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := c.SendCommand("get_object_info", map[string]any{
			"name": request.GetString("object_name", ""),
		})
		if err != nil {
			return errResult("getting object info", err), nil
		}
		return mcp.NewToolResultText(prettyJSON(result)), nil
	})

	s.AddTool(mcp.Tool{
		Name:        "create_object",
		Description: "Create a new object (cube, sphere, cylinder, cone, plane, null, camera, light).",
		InputSchema: inputSchema(map[string]any{
			"object_type": propString("Primitive type to create"),
			"name":        propString("Name for the new object"),
			"position":    propVec3("Position [x, y, z]"),
			"rotation":    propVec3("Rotation [h, p, b] in degrees"),
			"scale":       propVec3("Scale [x, y, z]"),
		}, "object_type", "name"),
	}, func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params := map[string]any{
			"object_type": request.GetString("object_type", ""),
			"name":        request.GetString("name", ""),
		}
		vec3Arg(request, params, "position")
		vec3Arg(request, params, "rotation")
		vec3Arg(request, params, "scale")
		result, err := c.SendCommand("create_object", params)
		if err != nil {
			return errResult("creating object", err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Successfully created %s named '%s': %s",
			params["object_type"], params["name"], prettyJSON(result))), nil
	})

	s.AddTool(mcp.Tool{
		Name:        "modify_object",
		Description: "Modify an existing object's transform or properties.",
		InputSchema: inputSchema(map[string]any{
			"object_name": propString("Name of the object to modify"),
			"position":    propVec3("New position [x, y, z]"),
			"rotation":    propVec3("New rotation [h, p, b] in degrees"),
			"scale":       propVec3("New scale [x, y, z]"),
			"properties":  propObject("Additional properties (visible, parent, tags)"),
		}, "object_name"),
	}, func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := request.GetString("object_name", "")
		params := map[string]any{"name": name}
		vec3Arg(request, params, "position")
		vec3Arg(request, params, "rotation")
		vec3Arg(request, params, "scale")
		if props, ok := request.GetArguments()["properties"].(map[string]any); ok {
			params["properties"] = props
		}
		result, err := c.SendCommand("modify_object", params)
		if err != nil {
			return errResult("modifying object", err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Successfully modified '%s': %s", name, prettyJSON(result))), nil
	})

	s.AddTool(mcp.Tool{
		Name:        "delete_object",
		Description: "Delete an object from the scene.",
		InputSchema: inputSchema(map[string]any{
			"object_name": propString("Name of the object to delete"),
		}, "object_name"),
	}, func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := request.GetString("object_name", "")
		result, err := c.SendCommand("delete_object", map[string]any{"name": name})
		if err != nil {
			return errResult("deleting object", err), nil
		}
		if msg, ok := softErrorOf(result); ok {
			return mcp.NewToolResultError(msg), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Successfully deleted '%s'", name)), nil
	})

	s.AddTool(mcp.Tool{
		Name:        "get_host_status",
		Description: "Get diagnostics for the host process (pid, uptime, memory, cpu).",
		InputSchema: inputSchema(map[string]any{}),
	}, func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := c.SendCommand("get_host_status", map[string]any{})
		if err != nil {
			return errResult("getting host status", err), nil
		}
		return mcp.NewToolResultText(prettyJSON(result)), nil
	})
}

func registerMaterialTools(s *server.MCPServer, c *client.Client) {
	s.AddTool(mcp.Tool{
		Name:        "create_material",
		Description: "Create a new material with PBR properties.",
		InputSchema: inputSchema(map[string]any{
			"name":        propString("Name for the material"),
			"color":       propVec3("RGB color [r, g, b], components 0-1"),
			"reflectance": propNumber("Reflectance 0-1 (default 0)"),
			"roughness":   propNumber("Roughness 0-1 (default 0.5)"),
			"metallic":    propNumber("Metallic 0-1 (default 0)"),
			"opacity":     propNumber("Opacity 0-1 (default 1)"),
		}, "name"),
	}, func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := request.GetString("name", "")
		params := map[string]any{
			"name":        name,
			"reflectance": request.GetFloat("reflectance", 0),
			"roughness":   request.GetFloat("roughness", 0.5),
			"metallic":    request.GetFloat("metallic", 0),
			"opacity":     request.GetFloat("opacity", 1),
		}
		vec3Arg(request, params, "color")
		result, err := c.SendCommand("create_material", params)
		if err != nil {
			return errResult("creating material", err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Successfully created material '%s': %s", name, prettyJSON(result))), nil
	})

	s.AddTool(mcp.Tool{
		Name:        "apply_material",
		Description: "Apply a material to an object.",
		InputSchema: inputSchema(map[string]any{
			"object_name":   propString("Name of the object"),
			"material_name": propString("Name of the material to apply"),
		}, "object_name", "material_name"),
	}, func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		objectName := request.GetString("object_name", "")
		materialName := request.GetString("material_name", "")
		result, err := c.SendCommand("apply_material", map[string]any{
			"object_name":   objectName,
			"material_name": materialName,
		})
		if err != nil {
			return errResult("applying material", err), nil
		}
		if msg, ok := softErrorOf(result); ok {
			return mcp.NewToolResultError(msg), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Successfully applied material '%s' to '%s'", materialName, objectName)), nil
	})
}

func registerRenderTools(s *server.MCPServer, c *client.Client) {
	capture := func(command, action string, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		width := request.GetInt("width", 1920)
		height := request.GetInt("height", 1080)
		path := filepath.Join(os.TempDir(), fmt.Sprintf("scenebridge_%s_%d.png", command, os.Getpid()))

		result, err := c.SendCommand(command, map[string]any{
			"width":    width,
			"height":   height,
			"filepath": path,
		})
		if err != nil {
			return errResult(action, err), nil
		}
		if msg, ok := softErrorOf(result); ok {
			return mcp.NewToolResultError(msg), nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return errResult(action, errors.New("image file was not created")), nil
		}
		defer os.Remove(path)
		return mcp.NewToolResultImage(
			fmt.Sprintf("%dx%d png", width, height),
			base64.StdEncoding.EncodeToString(data),
			"image/png",
		), nil
	}

	s.AddTool(mcp.Tool{
		Name:        "get_viewport_screenshot",
		Description: "Capture a screenshot of the current viewport.",
		InputSchema: inputSchema(map[string]any{
			"width":  propInteger("Image width in pixels (default 1920)"),
			"height": propInteger("Image height in pixels (default 1080)"),
		}),
	}, func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return capture("get_viewport_screenshot", "capturing screenshot", request)
	})

	s.AddTool(mcp.Tool{
		Name:        "render_frame",
		Description: "Render the current frame. May take much longer than other operations.",
		InputSchema: inputSchema(map[string]any{
			"width":  propInteger("Render width in pixels (default 1920)"),
			"height": propInteger("Render height in pixels (default 1080)"),
		}),
	}, func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return capture("render_frame", "rendering frame", request)
	})
}

func registerAnimationTools(s *server.MCPServer, c *client.Client) {
	s.AddTool(mcp.Tool{
		Name:        "set_animation_frame",
		Description: "Set the current animation frame.",
		InputSchema: inputSchema(map[string]any{
			"frame": propInteger("Frame number to set"),
		}, "frame"),
	}, func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		frame := request.GetInt("frame", 0)
		if _, err := c.SendCommand("set_animation_frame", map[string]any{"frame": frame}); err != nil {
			return errResult("setting animation frame", err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Set animation frame to %d", frame)), nil
	})

	s.AddTool(mcp.Tool{
		Name:        "create_keyframe",
		Description: "Create a keyframe for an object parameter (position.x, rotation.b, scale.z, ...).",
		InputSchema: inputSchema(map[string]any{
			"object_name": propString("Name of the object"),
			"parameter":   propString("Parameter to keyframe"),
			"value":       propNumber("Value at this keyframe"),
			"frame":       propInteger("Frame number for the keyframe"),
		}, "object_name", "parameter", "value", "frame"),
	}, func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		objectName := request.GetString("object_name", "")
		parameter := request.GetString("parameter", "")
		frame := request.GetInt("frame", 0)
		result, err := c.SendCommand("create_keyframe", map[string]any{
			"object_name": objectName,
			"parameter":   parameter,
			"value":       request.GetFloat("value", 0),
			"frame":       frame,
		})
		if err != nil {
			return errResult("creating keyframe", err), nil
		}
		if msg, ok := softErrorOf(result); ok {
			return mcp.NewToolResultError(msg), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Created keyframe for '%s.%s' at frame %d", objectName, parameter, frame)), nil
	})
}

func registerTransferTools(s *server.MCPServer, c *client.Client) {
	s.AddTool(mcp.Tool{
		Name:        "export_scene",
		Description: "Export the scene to a file (formats: scene, yaml).",
		InputSchema: inputSchema(map[string]any{
			"filepath": propString("Path where to save the file"),
			"format":   propString("Export format: scene (native JSON) or yaml"),
		}, "filepath"),
	}, func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := request.GetString("filepath", "")
		result, err := c.SendCommand("export_scene", map[string]any{
			"filepath": path,
			"format":   request.GetString("format", "scene"),
		})
		if err != nil {
			return errResult("exporting scene", err), nil
		}
		if msg, ok := softErrorOf(result); ok {
			return mcp.NewToolResultError(msg), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Successfully exported scene to %s", path)), nil
	})

	s.AddTool(mcp.Tool{
		Name:        "import_file",
		Description: "Import a previously exported scene file, merging or replacing the current scene.",
		InputSchema: inputSchema(map[string]any{
			"filepath": propString("Path to the file to import"),
			"merge":    propBoolean("Merge with the current scene instead of replacing (default true)"),
		}, "filepath"),
	}, func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := request.GetString("filepath", "")
		result, err := c.SendCommand("import_file", map[string]any{
			"filepath": path,
			"merge":    request.GetBool("merge", true),
		})
		if err != nil {
			return errResult("importing file", err), nil
		}
		if msg, ok := softErrorOf(result); ok {
			return mcp.NewToolResultError(msg), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Successfully imported %s: %s", path, prettyJSON(result))), nil
	})
}
