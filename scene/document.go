// Package scene holds the host's mutable working state: one Document is the
// "current active document" that bridge handlers read and mutate. All access
// goes through the Document's mutex so that several bridge connections can
// be served without corrupting the scene.
package scene

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Vec3 is an x/y/z triple. Rotations are stored in degrees (H/P/B order).
type Vec3 [3]float64

// Object is a single scene node. Objects form a flat list with an optional
// parent reference; hierarchy depth beyond one level is not modeled.
type Object struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Position Vec3     `json:"position"`
	Rotation Vec3     `json:"rotation"`
	Scale    Vec3     `json:"scale"`
	Visible  bool     `json:"visible"`
	Tags     []string `json:"tags,omitempty"`
	Parent   string   `json:"parent,omitempty"`
}

// ObjectTypes lists the primitive types create_object accepts.
var ObjectTypes = []string{"cube", "sphere", "cylinder", "cone", "plane", "null", "camera", "light"}

// Document is the session context shared by all bridge connections.
type Document struct {
	mu sync.Mutex

	name string
	path string

	objects []*Object // insertion order
	index   map[string]*Object

	materials []*Material
	matIndex  map[string]*Material

	selection []string

	fps      int
	minFrame int
	maxFrame int
	frame    int

	keyframes []Keyframe
}

func NewDocument(name string) *Document {
	return &Document{
		name:     name,
		index:    make(map[string]*Object),
		matIndex: make(map[string]*Material),
		fps:      30,
		minFrame: 0,
		maxFrame: 90,
	}
}

func (d *Document) Name() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.name
}

func (d *Document) SetName(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.name = name
}

func isValidType(objectType string) bool {
	for _, t := range ObjectTypes {
		if t == objectType {
			return true
		}
	}
	return false
}

// CreateObject inserts a new object. nil transform components take the
// defaults (origin position, zero rotation, unit scale).
func (d *Document) CreateObject(objectType, name string, position, rotation, scale *Vec3) error {
	typ := strings.ToLower(objectType)
	if !isValidType(typ) {
		return fmt.Errorf("Unknown object type: %s", objectType)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.index[name]; exists {
		return fmt.Errorf("Object '%s' already exists", name)
	}
	obj := &Object{
		Name:    name,
		Type:    typ,
		Scale:   Vec3{1, 1, 1},
		Visible: true,
	}
	if position != nil {
		obj.Position = *position
	}
	if rotation != nil {
		obj.Rotation = *rotation
	}
	if scale != nil {
		obj.Scale = *scale
	}
	d.objects = append(d.objects, obj)
	d.index[name] = obj
	return nil
}

// ModifyObject applies the non-nil transform components and any recognized
// extra properties (visible, parent, tags).
func (d *Document) ModifyObject(name string, position, rotation, scale *Vec3, properties map[string]any) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	obj, ok := d.index[name]
	if !ok {
		return fmt.Errorf("Object '%s' not found", name)
	}
	if position != nil {
		obj.Position = *position
	}
	if rotation != nil {
		obj.Rotation = *rotation
	}
	if scale != nil {
		obj.Scale = *scale
	}
	for key, value := range properties {
		switch key {
		case "visible":
			if v, ok := value.(bool); ok {
				obj.Visible = v
			}
		case "parent":
			if v, ok := value.(string); ok {
				obj.Parent = v
			}
		case "tags":
			if vs, ok := value.([]any); ok {
				tags := make([]string, 0, len(vs))
				for _, v := range vs {
					if s, ok := v.(string); ok {
						tags = append(tags, s)
					}
				}
				obj.Tags = tags
			}
		}
	}
	return nil
}

func (d *Document) DeleteObject(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.index[name]; !ok {
		return fmt.Errorf("Object '%s' not found", name)
	}
	delete(d.index, name)
	for i, obj := range d.objects {
		if obj.Name == name {
			d.objects = append(d.objects[:i], d.objects[i+1:]...)
			break
		}
	}
	// Orphaned children lose their parent reference
	for _, obj := range d.objects {
		if obj.Parent == name {
			obj.Parent = ""
		}
	}
	d.selection = removeString(d.selection, name)
	return nil
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

// Select replaces the current selection, dropping names that do not resolve.
func (d *Document) Select(names []string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selection = d.selection[:0]
	for _, n := range names {
		if _, ok := d.index[n]; ok {
			d.selection = append(d.selection, n)
		}
	}
}

func (d *Document) Selection() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.selection...)
}

func (d *Document) ObjectCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.objects)
}

func (d *Document) ObjectNames() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	names := make([]string, len(d.objects))
	for i, obj := range d.objects {
		names[i] = obj.Name
	}
	return names
}

// ObjectsOfType returns the names of all objects of the given type, in
// insertion order.
func (d *Document) ObjectsOfType(objectType string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var names []string
	for _, obj := range d.objects {
		if obj.Type == objectType {
			names = append(names, obj.Name)
		}
	}
	return names
}

func (d *Document) childrenCountLocked(name string) int {
	count := 0
	for _, obj := range d.objects {
		if obj.Parent == name {
			count++
		}
	}
	return count
}

// ObjectSummary is the per-object entry in a scene info report.
type ObjectSummary struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	Position      Vec3   `json:"position"`
	Rotation      Vec3   `json:"rotation"`
	Scale         Vec3   `json:"scale"`
	ChildrenCount *int   `json:"children_count,omitempty"`
}

// Info is the scene-level report returned by get_scene_info. At most the
// first 20 objects are listed, matching the original behavior.
type Info struct {
	Name           string          `json:"name"`
	Path           string          `json:"path"`
	ObjectCount    int             `json:"object_count"`
	Objects        []ObjectSummary `json:"objects"`
	MaterialsCount int             `json:"materials_count"`
	FPS            int             `json:"fps"`
	FrameMin       int             `json:"frame_min"`
	FrameMax       int             `json:"frame_max"`
	CurrentFrame   int             `json:"current_frame"`
}

const maxInfoObjects = 20

func (d *Document) SceneInfo(includeHierarchy bool) Info {
	d.mu.Lock()
	defer d.mu.Unlock()
	info := Info{
		Name:           d.name,
		Path:           d.path,
		ObjectCount:    len(d.objects),
		Objects:        []ObjectSummary{},
		MaterialsCount: len(d.materials),
		FPS:            d.fps,
		FrameMin:       d.minFrame,
		FrameMax:       d.maxFrame,
		CurrentFrame:   d.frame,
	}
	for _, obj := range d.objects {
		if len(info.Objects) >= maxInfoObjects {
			break
		}
		entry := ObjectSummary{
			Name:     obj.Name,
			Type:     obj.Type,
			Position: obj.Position,
			Rotation: obj.Rotation,
			Scale:    obj.Scale,
		}
		if includeHierarchy {
			n := d.childrenCountLocked(obj.Name)
			entry.ChildrenCount = &n
		}
		info.Objects = append(info.Objects, entry)
	}
	return info
}

// Detail is the full per-object report returned by get_object_info.
type Detail struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Position      Vec3     `json:"position"`
	Rotation      Vec3     `json:"rotation"`
	Scale         Vec3     `json:"scale"`
	Visible       bool     `json:"visible"`
	Tags          []string `json:"tags"`
	ChildrenCount int      `json:"children_count"`
}

func (d *Document) ObjectDetail(name string) (*Detail, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	obj, ok := d.index[name]
	if !ok {
		return nil, fmt.Errorf("Object '%s' not found", name)
	}
	tags := obj.Tags
	if tags == nil {
		tags = []string{}
	}
	return &Detail{
		Name:          obj.Name,
		Type:          obj.Type,
		Position:      obj.Position,
		Rotation:      obj.Rotation,
		Scale:         obj.Scale,
		Visible:       obj.Visible,
		Tags:          append([]string(nil), tags...),
		ChildrenCount: d.childrenCountLocked(obj.Name),
	}, nil
}

// SortedObjectNames is a stable name listing for chat answers and tests.
func (d *Document) SortedObjectNames() []string {
	names := d.ObjectNames()
	sort.Strings(names)
	return names
}
