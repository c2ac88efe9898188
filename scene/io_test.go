package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func populated(t *testing.T) *Document {
	t.Helper()
	d := NewDocument("demo")
	pos := Vec3{10, 20, 30}
	if err := d.CreateObject("cube", "Crate", &pos, nil, nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := d.CreateObject("light", "Sun", nil, nil, nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	d.CreateMaterial(Material{Name: "Wood", Color: Vec3{0.6, 0.4, 0.2}, Roughness: 0.8})
	if err := d.ApplyMaterial("Crate", "Wood"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := d.AddKeyframe("Crate", "position.x", 42, 15); err != nil {
		t.Fatalf("keyframe: %v", err)
	}
	d.SetFrame(15)
	return d
}

func assertRestored(t *testing.T, d *Document) {
	t.Helper()
	if d.Name() != "demo" {
		t.Errorf("name = %q", d.Name())
	}
	if d.ObjectCount() != 2 || d.MaterialCount() != 1 {
		t.Errorf("restored %d objects, %d materials", d.ObjectCount(), d.MaterialCount())
	}
	detail, err := d.ObjectDetail("Crate")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if detail.Position != (Vec3{10, 20, 30}) {
		t.Errorf("position = %v", detail.Position)
	}
	keys := d.Keyframes("Crate")
	if len(keys) != 1 || keys[0].Value != 42 || keys[0].Frame != 15 {
		t.Errorf("keyframes = %+v", keys)
	}
	if d.Frame() != 15 {
		t.Errorf("frame = %d", d.Frame())
	}
}

func TestExportImportJSON(t *testing.T) {
	d := populated(t)
	path := filepath.Join(t.TempDir(), "demo.scene")
	if err := d.Export(path, FormatScene); err != nil {
		t.Fatalf("export: %v", err)
	}
	if d.Path() != path {
		t.Errorf("Path() = %q", d.Path())
	}

	restored := NewDocument("empty")
	n, err := restored.Import(path, false)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 2 {
		t.Errorf("imported = %d", n)
	}
	assertRestored(t, restored)
}

func TestExportImportYAML(t *testing.T) {
	d := populated(t)
	path := filepath.Join(t.TempDir(), "demo.yaml")
	if err := d.Export(path, FormatYAML); err != nil {
		t.Fatalf("export: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		t.Errorf("yaml export looks like JSON: %.60s", data)
	}

	restored := NewDocument("empty")
	if _, err := restored.Import(path, false); err != nil {
		t.Fatalf("import: %v", err)
	}
	assertRestored(t, restored)
}

func TestImportMerge(t *testing.T) {
	d := populated(t)
	path := filepath.Join(t.TempDir(), "demo.scene")
	if err := d.Export(path, FormatScene); err != nil {
		t.Fatalf("export: %v", err)
	}

	target := NewDocument("target")
	// Collides with "Crate" in the file; merge keeps the existing object.
	pos := Vec3{-1, -1, -1}
	if err := target.CreateObject("sphere", "Crate", &pos, nil, nil); err != nil {
		t.Fatalf("create: %v", err)
	}

	n, err := target.Import(path, true)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 1 {
		t.Errorf("imported = %d, want 1 (collision skipped)", n)
	}
	if target.ObjectCount() != 2 {
		t.Errorf("count = %d", target.ObjectCount())
	}
	detail, err := target.ObjectDetail("Crate")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if detail.Type != "sphere" {
		t.Errorf("merge overwrote existing object: %+v", detail)
	}
	if target.Name() != "target" {
		t.Errorf("merge renamed document to %q", target.Name())
	}
}

func TestImportMissingFile(t *testing.T) {
	d := NewDocument("x")
	_, err := d.Import("/does/not/exist.scene", true)
	if err == nil || !strings.HasPrefix(err.Error(), "File not found:") {
		t.Errorf("err = %v", err)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	d := NewDocument("x")
	err := d.Export(filepath.Join(t.TempDir(), "o"), "fbx")
	if err == nil || err.Error() != "Unknown format: fbx" {
		t.Errorf("err = %v", err)
	}
}
