package pixedit

import (
	"errors"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Aspect ratio presets for the crop region.
const (
	AspectSquare = 1.0
	Aspect16x9   = 16.0 / 9.0
	Aspect4x3    = 4.0 / 3.0
	Aspect3x2    = 3.0 / 2.0
)

var errEmptyContainer = errors.New("crop container has no area")

// Cropper models a draggable crop rectangle over the displayed image.
// The region lives in display-space coordinates and is clamped into the
// container on every update, not just at commit.
type Cropper struct {
	containerW float64
	containerH float64
	region     Rect

	dragging bool
	grabX    float64 // pointer offset from region origin at drag start
	grabY    float64
}

// NewCropper creates a cropper for a display container of the given size,
// with the default region centered in it.
func NewCropper(containerW, containerH float64) *Cropper {
	c := &Cropper{containerW: containerW, containerH: containerH}
	size := defaultRegionSize
	c.region = Rect{
		X: (containerW - size) / 2,
		Y: (containerH - size) / 2,
		W: size,
		H: size,
	}
	c.clamp()
	return c
}

// Region returns the current crop region in display space.
func (c *Cropper) Region() Rect {
	return c.region
}

// Dragging reports whether a drag gesture is in progress.
func (c *Cropper) Dragging() bool {
	return c.dragging
}

// SetContainer updates the display container size, e.g. after a window
// resize, and re-clamps the region into it.
func (c *Cropper) SetContainer(w, h float64) {
	c.containerW = w
	c.containerH = h
	c.clamp()
}

// PointerDown begins a drag if the pointer lands inside the region. It
// returns true when a drag started.
func (c *Cropper) PointerDown(p Point) bool {
	if !c.region.Contains(p) {
		return false
	}
	c.dragging = true
	c.grabX = p.X - c.region.X
	c.grabY = p.Y - c.region.Y
	return true
}

// PointerMove repositions the region while a drag is active. The new origin
// is pointer minus the grab offset, clamped per axis.
func (c *Cropper) PointerMove(p Point) {
	if !c.dragging {
		return
	}
	c.region.X = p.X - c.grabX
	c.region.Y = p.Y - c.grabY
	c.clamp()
}

// PointerUp ends the drag. The frontend tracks pointer-up globally, so this
// fires even when the gesture finishes outside the element.
func (c *Cropper) PointerUp() {
	c.dragging = false
}

// SetAspect recenters the region with the requested width/height ratio,
// sized to fit inside the container with a fixed margin. The ratio is held
// exactly; only the overall size adapts to the container.
func (c *Cropper) SetAspect(ratio float64) {
	if ratio <= 0 {
		return
	}
	maxW := c.containerW - 2*presetRegionMargin
	maxH := c.containerH - 2*presetRegionMargin
	if maxW < minRegionSize {
		maxW = minRegionSize
	}
	if maxH < minRegionSize {
		maxH = minRegionSize
	}
	w := maxW
	h := w / ratio
	if h > maxH {
		h = maxH
		w = h * ratio
	}
	c.region = Rect{
		X: (c.containerW - w) / 2,
		Y: (c.containerH - h) / 2,
		W: w,
		H: h,
	}
	c.clamp()
}

// clamp keeps the region at least minRegionSize and fully inside the
// container, shrinking first and then moving if needed.
func (c *Cropper) clamp() {
	if c.region.W < minRegionSize {
		c.region.W = minRegionSize
	}
	if c.region.H < minRegionSize {
		c.region.H = minRegionSize
	}
	if c.region.W > c.containerW {
		c.region.W = math.Max(c.containerW, minRegionSize)
	}
	if c.region.H > c.containerH {
		c.region.H = math.Max(c.containerH, minRegionSize)
	}
	c.region.X = clampFloat(c.region.X, 0, math.Max(c.containerW-c.region.W, 0))
	c.region.Y = clampFloat(c.region.Y, 0, math.Max(c.containerH-c.region.H, 0))
}

// Apply maps the region into buffer space and extracts it into a new buffer.
// The scale is computed from the container size against the intrinsic buffer
// size; the session renders the image to fill the container, so the two
// coincide.
func (c *Cropper) Apply(src image.Image) (*image.NRGBA, error) {
	if c.containerW <= 0 || c.containerH <= 0 {
		return nil, errEmptyContainer
	}
	b := src.Bounds()
	t := NewDisplayTransform(float64(b.Dx()), float64(b.Dy()), c.containerW, c.containerH)
	min := t.ToBuffer(Point{X: c.region.X, Y: c.region.Y})
	max := t.ToBuffer(Point{X: c.region.X + c.region.W, Y: c.region.Y + c.region.H})

	x0 := int(math.Round(min.X))
	y0 := int(math.Round(min.Y))
	x1 := int(math.Round(max.X))
	y1 := int(math.Round(max.Y))

	// Degenerate geometry is clamped to a 1x1 rectangle, never rejected.
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	rect := image.Rect(x0, y0, x1, y1).Add(b.Min).Intersect(b)
	if rect.Empty() {
		rect = image.Rect(b.Min.X, b.Min.Y, b.Min.X+1, b.Min.Y+1)
	}
	return imaging.Crop(src, rect), nil
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
