package pixedit

// DisplayTransform converts between the on-screen rendered box and the
// backing pixel buffer. It is derived from the two sizes at the moment of a
// pointer event and must be rebuilt for every event: the rendered box can
// change size at any time, so a cached transform goes stale.
type DisplayTransform struct {
	scaleX float64 // buffer pixels per display pixel
	scaleY float64
}

// NewDisplayTransform builds a transform from intrinsic buffer dimensions
// and the rendered box dimensions. A degenerate display box (zero on either
// axis) yields a zero transform that maps every point to (0,0) instead of
// dividing by zero.
func NewDisplayTransform(bufW, bufH, dispW, dispH float64) DisplayTransform {
	if dispW <= 0 || dispH <= 0 {
		return DisplayTransform{}
	}
	return DisplayTransform{
		scaleX: bufW / dispW,
		scaleY: bufH / dispH,
	}
}

// ToBuffer maps a display-space point (relative to the rendered box's
// top-left corner) into buffer space.
func (t DisplayTransform) ToBuffer(p Point) Point {
	return Point{X: p.X * t.scaleX, Y: p.Y * t.scaleY}
}

// ToDisplay maps a buffer-space point back into display space. For a zero
// transform the result is (0,0), mirroring ToBuffer.
func (t DisplayTransform) ToDisplay(p Point) Point {
	if t.scaleX == 0 || t.scaleY == 0 {
		return Point{}
	}
	return Point{X: p.X / t.scaleX, Y: p.Y / t.scaleY}
}

// Zero reports whether the transform is degenerate.
func (t DisplayTransform) Zero() bool {
	return t.scaleX == 0 || t.scaleY == 0
}
