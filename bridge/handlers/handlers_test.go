package handlers

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/scenemcp/scenebridge/bridge"
	"github.com/scenemcp/scenebridge/common/ipc"
	"github.com/scenemcp/scenebridge/scene"
)

func newCatalog(t *testing.T) (*bridge.Dispatcher, *scene.Document) {
	t.Helper()
	d := bridge.NewDispatcher()
	RegisterAll(d)
	return d, scene.NewDocument("test")
}

// run dispatches a command and decodes a success result into a map.
func run(t *testing.T, d *bridge.Dispatcher, doc *scene.Document, name string, params map[string]any) map[string]any {
	t.Helper()
	resp := d.Dispatch(doc, &ipc.Command{Type: name, Params: params})
	if resp.IsError() {
		t.Fatalf("%s: %s", name, resp.Message)
	}
	var result map[string]any
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		t.Fatalf("%s result: %v", name, err)
	}
	return result
}

func TestCatalogNames(t *testing.T) {
	d, _ := newCatalog(t)
	want := []string{
		"ping",
		"get_scene_info", "get_object_info", "create_object", "modify_object", "delete_object",
		"create_material", "apply_material",
		"get_viewport_screenshot", "render_frame",
		"set_animation_frame", "create_keyframe",
		"export_scene", "import_file",
		"get_chat_status", "process_chat",
		"get_host_status",
	}
	have := map[string]bool{}
	for _, name := range d.Names() {
		have[name] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("command %q not registered", name)
		}
	}
	if len(have) != len(want) {
		t.Errorf("catalog has %d commands, want %d: %v", len(have), len(want), d.Names())
	}
}

func TestPing(t *testing.T) {
	d, doc := newCatalog(t)
	result := run(t, d, doc, "ping", nil)
	if result["status"] != "alive" {
		t.Errorf("ping = %v", result)
	}
}

func TestCreateObjectUnknownTypeSoftError(t *testing.T) {
	d, doc := newCatalog(t)

	// Operation-level failures ride inside a success envelope.
	resp := d.Dispatch(doc, &ipc.Command{Type: "create_object", Params: map[string]any{
		"object_type": "bogus",
		"name":        "X",
	}})
	if resp.IsError() {
		t.Fatalf("soft error escalated to protocol error: %s", resp.Message)
	}
	var result map[string]any
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		t.Fatalf("result: %v", err)
	}
	if result["error"] != "Unknown object type: bogus" {
		t.Errorf("error = %v", result["error"])
	}
}

func TestCreateObjectMissingName(t *testing.T) {
	d, doc := newCatalog(t)
	resp := d.Dispatch(doc, &ipc.Command{Type: "create_object", Params: map[string]any{
		"object_type": "cube",
	}})
	if !resp.IsError() {
		t.Fatalf("missing name accepted")
	}
	if resp.Message != "missing required parameter: name" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestObjectLifecycle(t *testing.T) {
	d, doc := newCatalog(t)

	result := run(t, d, doc, "create_object", map[string]any{
		"object_type": "sphere",
		"name":        "Ball",
		"position":    []any{10.0, 0.0, 0.0},
	})
	if result["success"] != true {
		t.Fatalf("create = %v", result)
	}

	info := run(t, d, doc, "get_object_info", map[string]any{"name": "Ball"})
	if info["type"] != "sphere" {
		t.Errorf("info = %v", info)
	}
	pos, _ := info["position"].([]any)
	if len(pos) != 3 || pos[0] != 10.0 {
		t.Errorf("position = %v", info["position"])
	}

	run(t, d, doc, "modify_object", map[string]any{
		"name":       "Ball",
		"position":   []any{0.0, 5.0, 0.0},
		"properties": map[string]any{"visible": false},
	})
	detail, err := doc.ObjectDetail("Ball")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if detail.Position[1] != 5 || detail.Visible {
		t.Errorf("modify not applied: %+v", detail)
	}

	run(t, d, doc, "delete_object", map[string]any{"name": "Ball"})
	if doc.ObjectCount() != 0 {
		t.Errorf("object count = %d after delete", doc.ObjectCount())
	}

	missing := run(t, d, doc, "get_object_info", map[string]any{"name": "Ball"})
	if missing["error"] != "Object 'Ball' not found" {
		t.Errorf("missing lookup = %v", missing)
	}
}

func TestSceneInfo(t *testing.T) {
	d, doc := newCatalog(t)
	for _, name := range []string{"A", "B", "C"} {
		run(t, d, doc, "create_object", map[string]any{"object_type": "cube", "name": name})
	}

	info := run(t, d, doc, "get_scene_info", nil)
	if info["object_count"] != float64(3) {
		t.Errorf("object_count = %v", info["object_count"])
	}
	objects, _ := info["objects"].([]any)
	if len(objects) != 3 {
		t.Errorf("objects = %v", info["objects"])
	}
	first, _ := objects[0].(map[string]any)
	if _, ok := first["children_count"]; ok {
		t.Errorf("children_count present without include_hierarchy")
	}

	info = run(t, d, doc, "get_scene_info", map[string]any{"include_hierarchy": true})
	objects, _ = info["objects"].([]any)
	first, _ = objects[0].(map[string]any)
	if _, ok := first["children_count"]; !ok {
		t.Errorf("children_count missing with include_hierarchy")
	}
}

func TestMaterials(t *testing.T) {
	d, doc := newCatalog(t)
	run(t, d, doc, "create_object", map[string]any{"object_type": "cube", "name": "Crate"})

	result := run(t, d, doc, "create_material", map[string]any{
		"name":  "Wood",
		"color": []any{0.6, 0.4, 0.2},
	})
	if result["success"] != true {
		t.Fatalf("create_material = %v", result)
	}

	result = run(t, d, doc, "apply_material", map[string]any{
		"object_name":   "Crate",
		"material_name": "Wood",
	})
	if result["success"] != true {
		t.Fatalf("apply_material = %v", result)
	}

	soft := run(t, d, doc, "apply_material", map[string]any{
		"object_name":   "Nope",
		"material_name": "Wood",
	})
	if soft["error"] != "Object 'Nope' not found" {
		t.Errorf("apply to missing object = %v", soft)
	}
}

func TestAnimation(t *testing.T) {
	d, doc := newCatalog(t)
	run(t, d, doc, "create_object", map[string]any{"object_type": "cube", "name": "Box"})

	result := run(t, d, doc, "set_animation_frame", map[string]any{"frame": 42})
	if result["frame"] != float64(42) {
		t.Errorf("frame = %v", result["frame"])
	}

	// Out-of-range frames clamp instead of failing.
	result = run(t, d, doc, "set_animation_frame", map[string]any{"frame": 100000})
	if result["frame"] != float64(90) {
		t.Errorf("clamped frame = %v", result["frame"])
	}

	result = run(t, d, doc, "create_keyframe", map[string]any{
		"object_name": "Box",
		"parameter":   "position.x",
		"value":       25.0,
		"frame":       30,
	})
	if result["success"] != true {
		t.Fatalf("create_keyframe = %v", result)
	}
	keys := doc.Keyframes("Box")
	if len(keys) != 1 || keys[0].Frame != 30 || keys[0].Value != 25 {
		t.Errorf("keyframes = %+v", keys)
	}
}

func TestExportImport(t *testing.T) {
	d, doc := newCatalog(t)
	run(t, d, doc, "create_object", map[string]any{"object_type": "cube", "name": "Keep"})
	run(t, d, doc, "create_material", map[string]any{"name": "Mat"})

	path := filepath.Join(t.TempDir(), "out.scene")
	result := run(t, d, doc, "export_scene", map[string]any{"filepath": path})
	if result["success"] != true {
		t.Fatalf("export = %v", result)
	}

	other := scene.NewDocument("other")
	result = run(t, d, other, "import_file", map[string]any{"filepath": path, "merge": false})
	if result["imported"] != float64(1) {
		t.Errorf("imported = %v", result["imported"])
	}
	if other.ObjectCount() != 1 || other.MaterialCount() != 1 {
		t.Errorf("restored doc: %d objects, %d materials", other.ObjectCount(), other.MaterialCount())
	}

	soft := run(t, d, other, "import_file", map[string]any{"filepath": "/nonexistent/missing.scene"})
	errMsg, _ := soft["error"].(string)
	if !strings.HasPrefix(errMsg, "File not found:") {
		t.Errorf("missing file import = %v", soft)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	d, doc := newCatalog(t)
	path := filepath.Join(t.TempDir(), "out.xyz")
	soft := run(t, d, doc, "export_scene", map[string]any{"filepath": path, "format": "fbx"})
	if soft["error"] != "Unknown format: fbx" {
		t.Errorf("export = %v", soft)
	}
}

func TestRenderFrame(t *testing.T) {
	d, doc := newCatalog(t)
	run(t, d, doc, "create_object", map[string]any{"object_type": "sphere", "name": "Orb"})

	path := filepath.Join(t.TempDir(), "frame.png")
	result := run(t, d, doc, "render_frame", map[string]any{
		"filepath": path,
		"width":    320,
		"height":   240,
	})
	if result["success"] != true {
		t.Fatalf("render_frame = %v", result)
	}
	if result["width"] != float64(320) || result["height"] != float64(240) {
		t.Errorf("dimensions = %vx%v", result["width"], result["height"])
	}
	if result["filepath"] != path {
		t.Errorf("filepath = %v", result["filepath"])
	}
}

func TestProcessChat(t *testing.T) {
	d, doc := newCatalog(t)
	for _, name := range []string{"Cube", "Cam"} {
		typ := "cube"
		if name == "Cam" {
			typ = "camera"
		}
		run(t, d, doc, "create_object", map[string]any{"object_type": typ, "name": name})
	}

	result := run(t, d, doc, "process_chat", map[string]any{"message": "how many objects are there?"})
	response, _ := result["response"].(string)
	if !strings.Contains(response, "2 objects") {
		t.Errorf("response = %q", response)
	}
	context, _ := result["context_info"].(map[string]any)
	if context["object_count"] != float64(2) {
		t.Errorf("context = %v", context)
	}

	result = run(t, d, doc, "process_chat", map[string]any{"message": "any camera here?"})
	response, _ = result["response"].(string)
	if !strings.Contains(response, "Cam") {
		t.Errorf("camera response = %q", response)
	}

	result = run(t, d, doc, "process_chat", map[string]any{
		"message":               "tell me something",
		"include_scene_context": false,
	})
	context, _ = result["context_info"].(map[string]any)
	if _, ok := context["object_count"]; ok {
		t.Errorf("context included despite include_scene_context=false")
	}
}

func TestChatStatus(t *testing.T) {
	d, doc := newCatalog(t)
	result := run(t, d, doc, "get_chat_status", nil)
	if result["enabled"] != true {
		t.Errorf("status = %v", result)
	}
}

func TestHostStatus(t *testing.T) {
	d, doc := newCatalog(t)
	result := run(t, d, doc, "get_host_status", nil)
	if result["document"] != "test" {
		t.Errorf("document = %v", result["document"])
	}
	if _, ok := result["pid"]; !ok {
		t.Errorf("host status missing pid: %v", result)
	}
	if result["objects"] != float64(0) {
		t.Errorf("objects = %v", result["objects"])
	}
}
