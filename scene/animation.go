package scene

import "fmt"

// Keyframe records one animated parameter value at a frame. Parameters use
// dotted paths ("position.x", "rotation.b", "scale.z").
type Keyframe struct {
	Object    string  `json:"object"`
	Parameter string  `json:"parameter"`
	Value     float64 `json:"value"`
	Frame     int     `json:"frame"`
}

func (d *Document) FPS() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fps
}

func (d *Document) Frame() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frame
}

// SetFrame moves the playhead, clamped to the document's frame range.
func (d *Document) SetFrame(frame int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if frame < d.minFrame {
		frame = d.minFrame
	}
	if frame > d.maxFrame {
		frame = d.maxFrame
	}
	d.frame = frame
	return frame
}

func (d *Document) FrameRange() (min, max int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.minFrame, d.maxFrame
}

// AddKeyframe records a keyframe for an existing object. A keyframe at the
// same object/parameter/frame replaces the old value.
func (d *Document) AddKeyframe(object, parameter string, value float64, frame int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.index[object]; !ok {
		return fmt.Errorf("Object '%s' not found", object)
	}
	for i, kf := range d.keyframes {
		if kf.Object == object && kf.Parameter == parameter && kf.Frame == frame {
			d.keyframes[i].Value = value
			return nil
		}
	}
	d.keyframes = append(d.keyframes, Keyframe{
		Object:    object,
		Parameter: parameter,
		Value:     value,
		Frame:     frame,
	})
	return nil
}

// Keyframes returns the recorded keyframes for one object, or all of them
// when object is empty.
func (d *Document) Keyframes(object string) []Keyframe {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []Keyframe
	for _, kf := range d.keyframes {
		if object == "" || kf.Object == object {
			out = append(out, kf)
		}
	}
	return out
}
