package scene

import "fmt"

// Material carries the PBR scalar properties the bridge exposes. Color
// components are 0-1.
type Material struct {
	Name        string  `json:"name"`
	Color       Vec3    `json:"color"`
	Reflectance float64 `json:"reflectance"`
	Roughness   float64 `json:"roughness"`
	Metallic    float64 `json:"metallic"`
	Opacity     float64 `json:"opacity"`
}

// CreateMaterial inserts a material, replacing any previous one with the
// same name.
func (d *Document) CreateMaterial(m Material) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if prev, ok := d.matIndex[m.Name]; ok {
		*prev = m
		return
	}
	mat := m
	d.materials = append(d.materials, &mat)
	d.matIndex[m.Name] = &mat
}

// ApplyMaterial attaches a material to an object through a texture tag.
// Reapplying replaces the previous assignment.
func (d *Document) ApplyMaterial(objectName, materialName string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	obj, ok := d.index[objectName]
	if !ok {
		return fmt.Errorf("Object '%s' not found", objectName)
	}
	if _, ok := d.matIndex[materialName]; !ok {
		return fmt.Errorf("Material '%s' not found", materialName)
	}
	tag := textureTag(materialName)
	for i, t := range obj.Tags {
		if isTextureTag(t) {
			obj.Tags[i] = tag
			return nil
		}
	}
	obj.Tags = append(obj.Tags, tag)
	return nil
}

const textureTagPrefix = "Texture:"

func textureTag(material string) string { return textureTagPrefix + material }

func isTextureTag(tag string) bool {
	return len(tag) > len(textureTagPrefix) && tag[:len(textureTagPrefix)] == textureTagPrefix
}

// materialOf resolves the material assigned to obj, if any. Callers hold
// the document lock.
func (d *Document) materialOfLocked(obj *Object) *Material {
	for _, t := range obj.Tags {
		if isTextureTag(t) {
			return d.matIndex[t[len(textureTagPrefix):]]
		}
	}
	return nil
}

func (d *Document) MaterialCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.materials)
}

func (d *Document) MaterialNames() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	names := make([]string, len(d.materials))
	for i, m := range d.materials {
		names[i] = m.Name
	}
	return names
}
