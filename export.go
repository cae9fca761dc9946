package pixedit

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// Format identifies an export codec.
type Format int

const (
	// FormatPNG is the lossless raster format; quality is ignored.
	FormatPNG Format = iota
	// FormatJPEG is lossy and accepts a quality in [1,100].
	FormatJPEG
	// FormatWebP is lossy and accepts a quality in [1,100].
	FormatWebP
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatWebP:
		return "webp"
	default:
		return "unknown"
	}
}

// Ext returns the filename extension for the format, dot included.
func (f Format) Ext() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatWebP:
		return ".webp"
	default:
		return ".png"
	}
}

// Lossy reports whether the format takes a quality parameter.
func (f Format) Lossy() bool {
	return f == FormatJPEG || f == FormatWebP
}

// ExportFilename appends the extension for the chosen format to the base
// name supplied by the user.
func ExportFilename(base string, f Format) string {
	return base + f.Ext()
}

// Interpolation selects the resampling mode for export.
type Interpolation int

const (
	// InterpolationNearest is nearest-neighbor sampling.
	InterpolationNearest Interpolation = iota
	// InterpolationBilinear is linear sampling.
	InterpolationBilinear
	// InterpolationBicubic is cubic sampling.
	InterpolationBicubic
	// InterpolationMitchellNetravali is Mitchell-Netravali sampling.
	InterpolationMitchellNetravali
	// InterpolationLanczos2 is Lanczos sampling with a=2.
	InterpolationLanczos2
	// InterpolationLanczos3 is Lanczos sampling with a=3.
	InterpolationLanczos3
)

func (i Interpolation) function() resize.InterpolationFunction {
	switch i {
	case InterpolationBilinear:
		return resize.Bilinear
	case InterpolationBicubic:
		return resize.Bicubic
	case InterpolationMitchellNetravali:
		return resize.MitchellNetravali
	case InterpolationLanczos2:
		return resize.Lanczos2
	case InterpolationLanczos3:
		return resize.Lanczos3
	default:
		return resize.NearestNeighbor
	}
}

// ExportOptions controls the export encoding.
type ExportOptions struct {
	Format        Format
	Quality       int // lossy formats only, clamped to [1,100]
	Interpolation Interpolation
	OnResult      func(data []byte)
}

var errInvalidDimensions = errors.New("invalid target dimensions")

// Export resamples img to exactly width x height and encodes it in the
// chosen format. Defaults: JPEG at quality 90, Lanczos3 resampling.
func Export(img image.Image, width, height uint, opts ...func(o *ExportOptions)) ([]byte, error) {
	if width == 0 || height == 0 {
		return nil, errInvalidDimensions
	}

	opt := ExportOptions{
		Format:        FormatJPEG,
		Quality:       defaultQuality,
		Interpolation: InterpolationLanczos3,
	}
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}
	quality := clampInt(opt.Quality, minQuality, maxQuality)

	out := resize.Resize(width, height, img, opt.Interpolation.function())

	var buf bytes.Buffer
	switch opt.Format {
	case FormatPNG:
		if err := png.Encode(&buf, out); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	case FormatJPEG:
		if err := imaging.Encode(&buf, out, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	case FormatWebP:
		if err := webp.Encode(&buf, out, &webp.Options{Quality: float32(quality)}); err != nil {
			return nil, fmt.Errorf("encode webp: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %d", opt.Format)
	}

	data := buf.Bytes()
	if opt.OnResult != nil {
		opt.OnResult(data)
	}
	return data, nil
}

// Resizer tracks export target dimensions with an optional aspect-ratio
// lock. The lock always recomputes from the original (pre-resize) aspect
// ratio, not the currently-displayed one, so repeated edits cannot compound
// rounding drift.
type Resizer struct {
	origW  int
	origH  int
	width  int
	height int
	lock   bool
}

// NewResizer creates a resizer for src with the target initialized to the
// source dimensions and the aspect lock on.
func NewResizer(src image.Image) *Resizer {
	b := src.Bounds()
	w := maxInt(b.Dx(), 1)
	h := maxInt(b.Dy(), 1)
	return &Resizer{origW: w, origH: h, width: w, height: h, lock: true}
}

// SetLock toggles the aspect-ratio lock.
func (r *Resizer) SetLock(on bool) { r.lock = on }

// Lock reports whether the aspect-ratio lock is on.
func (r *Resizer) Lock() bool { return r.lock }

// SetWidth sets the target width. With the lock on, height follows from the
// original aspect ratio.
func (r *Resizer) SetWidth(w int) {
	r.width = maxInt(w, 1)
	if r.lock {
		r.height = maxInt(int(math.Round(float64(r.width)*float64(r.origH)/float64(r.origW))), 1)
	}
}

// SetHeight sets the target height. With the lock on, width follows from
// the original aspect ratio.
func (r *Resizer) SetHeight(h int) {
	r.height = maxInt(h, 1)
	if r.lock {
		r.width = maxInt(int(math.Round(float64(r.height)*float64(r.origW)/float64(r.origH))), 1)
	}
}

// Width returns the target width.
func (r *Resizer) Width() int { return r.width }

// Height returns the target height.
func (r *Resizer) Height() int { return r.height }

// EstimateFileSize returns a rough output size in bytes for UI display.
// It is a pixel-count heuristic, not a promise about the encoder.
func (r *Resizer) EstimateFileSize(f Format, quality int) int64 {
	pixels := float64(r.width) * float64(r.height)
	quality = clampInt(quality, minQuality, maxQuality)
	var bytesPerPixel float64
	switch f {
	case FormatPNG:
		bytesPerPixel = 2.0
	case FormatWebP:
		bytesPerPixel = 0.4 * float64(quality) / 100
	default:
		bytesPerPixel = 0.5 * float64(quality) / 100
	}
	return int64(pixels * bytesPerPixel)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
