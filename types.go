package pixedit

import (
	"image/color"

	"github.com/google/uuid"
)

// Tool identifies an annotation tool.
type Tool int

const (
	ToolBrush Tool = iota
	ToolText
	ToolRectangle
	ToolCircle
	ToolArrow
)

// String returns a human-readable tool name.
func (t Tool) String() string {
	switch t {
	case ToolBrush:
		return "brush"
	case ToolText:
		return "text"
	case ToolRectangle:
		return "rectangle"
	case ToolCircle:
		return "circle"
	case ToolArrow:
		return "arrow"
	default:
		return "unknown"
	}
}

// Point is a position in either display or buffer space, per context.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle in float coordinates.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Contains reports whether p lies inside r (edges inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// TextElement records a committed text annotation. The pixels are burned
// into the buffer at commit time; the element itself is bookkeeping only.
type TextElement struct {
	ID       uuid.UUID
	X        float64 // buffer space
	Y        float64 // buffer space
	Text     string
	Color    color.Color
	FontSize float64
}
