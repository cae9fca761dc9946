package pixedit

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/google/uuid"
)

func whiteImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: 255}), image.Point{}, draw.Src)
	return img
}

func isWhite(t *testing.T, a *Annotator, x, y int) bool {
	t.Helper()
	c := a.buf.RGBAAt(x, y)
	return c.R == 255 && c.G == 255 && c.B == 255
}

// stroke runs one full brush gesture along the given display points at a
// 1:1 display scale.
func stroke(a *Annotator, points ...Point) {
	b := a.buf.Bounds()
	w := float64(b.Dx())
	h := float64(b.Dy())
	a.PointerDown(points[0], w, h)
	for _, p := range points[1:] {
		a.PointerMove(p, w, h)
	}
	a.PointerUp()
}

func TestBrushGestureCommitsOneSnapshot(t *testing.T) {
	a := NewAnnotator(whiteImage(100, 100))
	stroke(a, Point{X: 10, Y: 50}, Point{X: 40, Y: 50}, Point{X: 80, Y: 50})

	if a.History().Len() != 1 || a.History().Cursor() != 0 {
		t.Fatalf("history len=%d cursor=%d after one gesture", a.History().Len(), a.History().Cursor())
	}
	if isWhite(t, a, 40, 50) {
		t.Fatalf("brush left no paint on the stroked segment")
	}
	if !isWhite(t, a, 40, 80) {
		t.Fatalf("brush painted far from the gesture")
	}
}

func TestBrushUndoRedoScenario(t *testing.T) {
	// Three committed strokes, two undos, then a new stroke discards the
	// redo branch.
	a := NewAnnotator(whiteImage(100, 100))

	stroke(a, Point{X: 10, Y: 20}, Point{X: 90, Y: 20})
	afterFirst := a.Image()
	stroke(a, Point{X: 10, Y: 50}, Point{X: 90, Y: 50})
	stroke(a, Point{X: 10, Y: 80}, Point{X: 90, Y: 80})

	if a.History().Len() != 3 || a.History().Cursor() != 2 {
		t.Fatalf("history len=%d cursor=%d, want 3/2", a.History().Len(), a.History().Cursor())
	}

	if !a.Undo() || !a.Undo() {
		t.Fatalf("undo failed with committed gestures on the stack")
	}
	if a.History().Cursor() != 0 {
		t.Fatalf("cursor=%d after two undos, want 0", a.History().Cursor())
	}
	if !bytes.Equal(a.Image().Pix, afterFirst.Pix) {
		t.Fatalf("buffer does not match the post-first-stroke snapshot")
	}
	if a.Undo() {
		t.Fatalf("undo at cursor 0 must be a no-op")
	}

	stroke(a, Point{X: 50, Y: 10}, Point{X: 50, Y: 90})
	if a.History().Len() != 2 {
		t.Fatalf("history len=%d after committing over a redo branch, want 2", a.History().Len())
	}
	if a.Redo() {
		t.Fatalf("redo branch survived the new commit")
	}
}

func TestShapePreviewDoesNotAccumulate(t *testing.T) {
	a := NewAnnotator(whiteImage(100, 100))
	a.SetTool(ToolRectangle)

	a.PointerDown(Point{X: 10, Y: 10}, 100, 100)
	a.PointerMove(Point{X: 60, Y: 60}, 100, 100)
	if isWhite(t, a, 50, 10) {
		t.Fatalf("large rectangle preview missing its top edge")
	}

	// Shrinking the drag must erase the larger preview, not stack on it.
	a.PointerMove(Point{X: 30, Y: 30}, 100, 100)
	if !isWhite(t, a, 50, 10) {
		t.Fatalf("stale preview pixels survived the redraw")
	}
	if isWhite(t, a, 20, 10) {
		t.Fatalf("current rectangle preview missing")
	}

	a.PointerUp()
	if a.History().Len() != 1 {
		t.Fatalf("shape gesture committed %d snapshots, want 1", a.History().Len())
	}
}

func TestCirclePreviewRedrawsFromSnapshot(t *testing.T) {
	a := NewAnnotator(whiteImage(120, 120))
	a.SetTool(ToolCircle)

	a.PointerDown(Point{X: 60, Y: 60}, 120, 120)
	a.PointerMove(Point{X: 100, Y: 60}, 120, 120) // radius 40
	if isWhite(t, a, 100, 60) {
		t.Fatalf("circle preview missing at radius 40")
	}
	a.PointerMove(Point{X: 80, Y: 60}, 120, 120) // radius 20
	if !isWhite(t, a, 100, 60) {
		t.Fatalf("old circle preview not erased")
	}
	if isWhite(t, a, 80, 60) {
		t.Fatalf("circle preview missing at radius 20")
	}
	a.PointerUp()
}

func TestArrowHeadFixedGeometry(t *testing.T) {
	a := NewAnnotator(whiteImage(120, 120))
	a.SetTool(ToolArrow)

	a.PointerDown(Point{X: 10, Y: 60}, 120, 120)
	a.PointerMove(Point{X: 100, Y: 60}, 120, 120)
	a.PointerUp()

	if isWhite(t, a, 50, 60) {
		t.Fatalf("arrow shaft missing")
	}
	// Head strokes are 20px long at +-30 degrees off the shaft: their far
	// ends land near (100-20cos30, 60+-20sin30) = (83, 50) and (83, 70).
	if isWhite(t, a, 83, 50) || isWhite(t, a, 83, 70) {
		t.Fatalf("arrow head strokes missing")
	}
	if !isWhite(t, a, 110, 60) {
		t.Fatalf("arrow drew past its tip")
	}
}

func TestTextToolInsertsSynchronously(t *testing.T) {
	a := NewAnnotator(whiteImage(200, 100))
	a.SetTool(ToolText)
	a.SetText("hello")

	if err := a.PointerDown(Point{X: 20, Y: 60}, 200, 100); err != nil {
		t.Fatalf("text insert: %v", err)
	}
	if a.History().Len() != 1 {
		t.Fatalf("text insert committed %d snapshots, want 1", a.History().Len())
	}
	// No drag phase: a stray pointer-up must not commit again.
	a.PointerUp()
	if a.History().Len() != 1 {
		t.Fatalf("pointer up after text insert committed a snapshot")
	}

	elems := a.Elements()
	if len(elems) != 1 {
		t.Fatalf("recorded %d text elements, want 1", len(elems))
	}
	e := elems[0]
	if e.Text != "hello" || e.X != 20 || e.Y != 60 {
		t.Fatalf("element %+v does not match the insert", e)
	}
	if e.ID == uuid.Nil {
		t.Fatalf("element has no ID")
	}
}

func TestTextToolEmptyStringIsNoop(t *testing.T) {
	a := NewAnnotator(whiteImage(100, 100))
	a.SetTool(ToolText)
	if err := a.PointerDown(Point{X: 20, Y: 60}, 100, 100); err != nil {
		t.Fatalf("pointer down: %v", err)
	}
	if a.History().Len() != 0 || len(a.Elements()) != 0 {
		t.Fatalf("empty text committed something")
	}
}

func TestPointerEventsScaleToBufferSpace(t *testing.T) {
	// Buffer 200x200 rendered at 100x100: display (25,25)..(25,45) is a
	// stroke through buffer (50,50)..(50,90).
	a := NewAnnotator(whiteImage(200, 200))
	a.PointerDown(Point{X: 25, Y: 25}, 100, 100)
	a.PointerMove(Point{X: 25, Y: 45}, 100, 100)
	a.PointerUp()

	if isWhite(t, a, 50, 70) {
		t.Fatalf("stroke missing at the mapped buffer position")
	}
	if !isWhite(t, a, 25, 35) {
		t.Fatalf("stroke landed at display coordinates instead of buffer coordinates")
	}
}

func TestSwitchingToolMidGestureIgnored(t *testing.T) {
	a := NewAnnotator(whiteImage(100, 100))
	a.PointerDown(Point{X: 10, Y: 10}, 100, 100)
	a.SetTool(ToolArrow)
	if a.Tool() != ToolBrush {
		t.Fatalf("tool changed mid-gesture")
	}
	a.PointerUp()
	a.SetTool(ToolArrow)
	if a.Tool() != ToolArrow {
		t.Fatalf("tool change rejected after the gesture ended")
	}
}

func TestUndoBeforeAnyCommitIsNoop(t *testing.T) {
	a := NewAnnotator(whiteImage(50, 50))
	if a.Undo() {
		t.Fatalf("undo succeeded with no committed gestures")
	}
	if a.Redo() {
		t.Fatalf("redo succeeded with no committed gestures")
	}
}
