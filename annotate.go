package pixedit

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Annotator is the freehand/shape annotation engine. It owns a live buffer
// that gestures draw onto, plus a linear snapshot history committed once per
// completed gesture.
//
// Pointer events arrive in display coordinates together with the rendered
// box size; the display-to-buffer transform is rebuilt on every event so a
// mid-session window resize cannot skew a gesture.
type Annotator struct {
	buf      *image.RGBA // live buffer, drawn in place
	baseline *image.RGBA // pristine input, restore target before any commit
	history  *History
	elements []TextElement

	tool      Tool
	color     color.Color
	brushSize float64
	fontSize  float64
	pending   string // text placed by the next text-tool pointer-down

	active bool
	start  Point // buffer space, gesture origin
	last   Point // buffer space, last recorded point
}

// NewAnnotator starts an annotation session over a deep copy of src.
func NewAnnotator(src image.Image) *Annotator {
	buf := cloneRGBA(src)
	return &Annotator{
		buf:       buf,
		baseline:  cloneRGBA(buf),
		history:   NewHistory(),
		tool:      ToolBrush,
		color:     color.NRGBA{R: 0xE0, G: 0x30, B: 0x30, A: 0xFF},
		brushSize: defaultBrushSize,
		fontSize:  defaultFontSize,
	}
}

// SetTool selects the active tool. Switching tools mid-gesture is ignored
// until the gesture ends.
func (a *Annotator) SetTool(t Tool) {
	if a.active {
		return
	}
	a.tool = t
}

// Tool returns the active tool.
func (a *Annotator) Tool() Tool { return a.tool }

// SetColor sets the stroke/text color.
func (a *Annotator) SetColor(c color.Color) { a.color = c }

// SetBrushSize sets the stroke width in buffer pixels (minimum 1).
func (a *Annotator) SetBrushSize(size float64) {
	a.brushSize = math.Max(size, 1)
}

// SetFontSize sets the text annotation size in points (minimum 1).
func (a *Annotator) SetFontSize(size float64) {
	a.fontSize = math.Max(size, 1)
}

// SetText stages the string the text tool will place on its next
// pointer-down.
func (a *Annotator) SetText(s string) { a.pending = s }

// Elements returns the committed text annotations, oldest first.
func (a *Annotator) Elements() []TextElement { return a.elements }

// History exposes the session's snapshot history.
func (a *Annotator) History() *History { return a.history }

// PointerDown begins a gesture at display point p inside a rendered box of
// dispW x dispH. The text tool is the exception to the gesture machine: it
// inserts and commits synchronously with no drag phase.
func (a *Annotator) PointerDown(p Point, dispW, dispH float64) error {
	bp := a.transform(dispW, dispH).ToBuffer(p)

	if a.tool == ToolText {
		if a.pending == "" {
			return nil
		}
		if err := a.drawText(bp, a.pending); err != nil {
			return err
		}
		a.elements = append(a.elements, TextElement{
			ID:       uuid.New(),
			X:        bp.X,
			Y:        bp.Y,
			Text:     a.pending,
			Color:    a.color,
			FontSize: a.fontSize,
		})
		a.commit()
		return nil
	}

	a.active = true
	a.start = bp
	a.last = bp
	return nil
}

// PointerMove extends the active gesture to display point p.
//
// The brush strokes a segment from the last recorded point directly onto the
// live buffer. Shape tools instead restore the buffer to the last committed
// snapshot and redraw the whole shape from the gesture origin, so previews
// never smear.
func (a *Annotator) PointerMove(p Point, dispW, dispH float64) {
	if !a.active {
		return
	}
	bp := a.transform(dispW, dispH).ToBuffer(p)

	switch a.tool {
	case ToolBrush:
		a.strokeSegment(a.last, bp)
	case ToolRectangle:
		a.restoreCommitted()
		a.drawRectangle(a.start, bp)
	case ToolCircle:
		a.restoreCommitted()
		a.drawCircle(a.start, bp)
	case ToolArrow:
		a.restoreCommitted()
		a.drawArrow(a.start, bp)
	}
	a.last = bp
}

// PointerUp ends the active gesture and commits one snapshot. This is the
// only point a drag gesture becomes permanent.
func (a *Annotator) PointerUp() {
	if !a.active {
		return
	}
	a.active = false
	a.commit()
}

// Undo steps back one committed gesture and redraws the buffer from the
// snapshot there. At the bottom of the history it does nothing.
func (a *Annotator) Undo() bool {
	snap, ok := a.history.Undo()
	if !ok {
		return false
	}
	a.restore(snap)
	return true
}

// Redo re-applies the next committed gesture, symmetric with Undo.
func (a *Annotator) Redo() bool {
	snap, ok := a.history.Redo()
	if !ok {
		return false
	}
	a.restore(snap)
	return true
}

// Image serializes the buffer at the current history cursor as the stage's
// output. The history itself stays intact until the annotator is discarded.
func (a *Annotator) Image() *image.NRGBA {
	return imaging.Clone(a.buf)
}

func (a *Annotator) transform(dispW, dispH float64) DisplayTransform {
	b := a.buf.Bounds()
	return NewDisplayTransform(float64(b.Dx()), float64(b.Dy()), dispW, dispH)
}

func (a *Annotator) commit() {
	a.history.Push(cloneRGBA(a.buf))
}

// restoreCommitted rewinds the live buffer to the snapshot at the history
// cursor, or to the pristine input while nothing has been committed yet.
func (a *Annotator) restoreCommitted() {
	if snap := a.history.Current(); snap != nil {
		a.restore(snap)
		return
	}
	a.restore(a.baseline)
}

func (a *Annotator) restore(snap image.Image) {
	draw.Draw(a.buf, a.buf.Bounds(), snap, snap.Bounds().Min, draw.Src)
}

func (a *Annotator) strokeContext() *gg.Context {
	dc := gg.NewContextForRGBA(a.buf)
	dc.SetColor(a.color)
	dc.SetLineWidth(a.brushSize)
	dc.SetLineCapRound()
	return dc
}

func (a *Annotator) strokeSegment(from, to Point) {
	dc := a.strokeContext()
	dc.DrawLine(from.X, from.Y, to.X, to.Y)
	dc.Stroke()
}

func (a *Annotator) drawRectangle(from, to Point) {
	x := math.Min(from.X, to.X)
	y := math.Min(from.Y, to.Y)
	w := math.Abs(to.X - from.X)
	h := math.Abs(to.Y - from.Y)
	dc := a.strokeContext()
	dc.DrawRectangle(x, y, w, h)
	dc.Stroke()
}

// drawCircle strokes a circle centered at the gesture origin with the
// pointer distance as radius.
func (a *Annotator) drawCircle(from, to Point) {
	r := math.Hypot(to.X-from.X, to.Y-from.Y)
	dc := a.strokeContext()
	dc.DrawCircle(from.X, from.Y, r)
	dc.Stroke()
}

// drawArrow strokes a straight shaft plus two fixed-length head strokes at
// +-30 degrees off the shaft direction. Head length does not scale with the
// shaft.
func (a *Annotator) drawArrow(from, to Point) {
	dc := a.strokeContext()
	dc.DrawLine(from.X, from.Y, to.X, to.Y)
	dc.Stroke()

	angle := math.Atan2(to.Y-from.Y, to.X-from.X)
	spread := arrowHeadAngle * math.Pi / 180
	for _, side := range []float64{angle - spread, angle + spread} {
		hx := to.X - arrowHeadLength*math.Cos(side)
		hy := to.Y - arrowHeadLength*math.Sin(side)
		dc.DrawLine(to.X, to.Y, hx, hy)
		dc.Stroke()
	}
}

func (a *Annotator) drawText(at Point, text string) error {
	face, err := faceForSize(a.fontSize)
	if err != nil {
		return err
	}
	dc := gg.NewContextForRGBA(a.buf)
	dc.SetColor(a.color)
	dc.SetFontFace(face)
	dc.DrawString(text, at.X, at.Y)
	return nil
}

var (
	annotationFontOnce sync.Once
	annotationFont     *truetype.Font
	annotationFontErr  error

	faceMu sync.Mutex
	faces  = map[float64]font.Face{}
)

func faceForSize(size float64) (font.Face, error) {
	annotationFontOnce.Do(func() {
		annotationFont, annotationFontErr = truetype.Parse(goregular.TTF)
	})
	if annotationFontErr != nil {
		return nil, fmt.Errorf("parse annotation font: %w", annotationFontErr)
	}
	faceMu.Lock()
	defer faceMu.Unlock()
	if face, ok := faces[size]; ok {
		return face, nil
	}
	face := truetype.NewFace(annotationFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	faces[size] = face
	return face, nil
}

// cloneRGBA deep-copies src into a zero-origin RGBA buffer.
func cloneRGBA(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
