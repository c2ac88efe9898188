package scene

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// The renderer is a deliberately small orthographic rasterizer: objects are
// projected onto the XY plane and drawn as per-type glyphs filled with their
// material color. It exists so render_frame and get_viewport_screenshot
// produce real, dimension-correct PNG files rather than placeholders.

const worldExtent = 400.0 // world units mapped across the shorter image axis

func (d *Document) RenderImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	// Background gradient, dark at the top
	for y := 0; y < height; y++ {
		t := float64(y) / float64(height)
		bg := color.RGBA{
			R: uint8(24 + 30*t),
			G: uint8(26 + 34*t),
			B: uint8(34 + 44*t),
			A: 255,
		}
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, bg)
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	short := width
	if height < short {
		short = height
	}
	unit := float64(short) / worldExtent

	for _, obj := range d.objects {
		if !obj.Visible {
			continue
		}
		cx := width/2 + int(obj.Position[0]*unit)
		cy := height/2 - int(obj.Position[1]*unit)
		size := int(20 * unit * avgScale(obj.Scale))
		if size < 2 {
			size = 2
		}

		fill := color.RGBA{160, 160, 160, 255}
		if mat := d.materialOfLocked(obj); mat != nil {
			fill = color.RGBA{
				R: clamp8(mat.Color[0] * 255),
				G: clamp8(mat.Color[1] * 255),
				B: clamp8(mat.Color[2] * 255),
				A: 255,
			}
		}

		switch obj.Type {
		case "sphere":
			fillCircle(img, cx, cy, size, fill)
		case "light":
			fillCircle(img, cx, cy, size/2, color.RGBA{255, 240, 180, 255})
		case "camera":
			fillRect(img, cx-size/2, cy-size/3, cx+size/2, cy+size/3, color.RGBA{70, 70, 80, 255})
		case "null":
			crosshair(img, cx, cy, size, color.RGBA{200, 200, 200, 255})
		case "cone", "cylinder":
			fillRect(img, cx-size/3, cy-size, cx+size/3, cy+size, fill)
		default: // cube, plane
			fillRect(img, cx-size, cy-size, cx+size, cy+size, fill)
		}
	}
	return img
}

// RenderToFile rasterizes the current scene and writes it as a PNG.
func (d *Document) RenderToFile(path string, width, height int) error {
	img := d.RenderImage(width, height)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

func avgScale(s Vec3) float64 {
	return (s[0] + s[1] + s[2]) / 3
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	b := img.Bounds()
	for y := y0; y <= y1; y++ {
		if y < b.Min.Y || y >= b.Max.Y {
			continue
		}
		for x := x0; x <= x1; x++ {
			if x < b.Min.X || x >= b.Max.X {
				continue
			}
			img.SetRGBA(x, y, c)
		}
	}
}

func fillCircle(img *image.RGBA, cx, cy, r int, c color.RGBA) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				x, y := cx+dx, cy+dy
				if image.Pt(x, y).In(img.Bounds()) {
					img.SetRGBA(x, y, c)
				}
			}
		}
	}
}

func crosshair(img *image.RGBA, cx, cy, size int, c color.RGBA) {
	for d := -size; d <= size; d++ {
		if image.Pt(cx+d, cy).In(img.Bounds()) {
			img.SetRGBA(cx+d, cy, c)
		}
		if image.Pt(cx, cy+d).In(img.Bounds()) {
			img.SetRGBA(cx, cy+d, c)
		}
	}
}
