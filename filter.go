package pixedit

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// FilterParams is the full set of filter knobs for a single apply.
// Brightness, Contrast and Saturation are percentages where 100 is identity;
// Blur is a Gaussian standard deviation in pixels; HueRotate is in degrees;
// Sepia, Grayscale and Invert are percentages where 0 is identity.
type FilterParams struct {
	Brightness float64 // [0,200]
	Contrast   float64 // [0,200]
	Saturation float64 // [0,200]
	Blur       float64 // [0,10]
	HueRotate  float64 // [0,360]
	Sepia      float64 // [0,100]
	Grayscale  float64 // [0,100]
	Invert     float64 // [0,100]
}

// DefaultFilterParams returns the identity parameter set.
func DefaultFilterParams() FilterParams {
	return FilterParams{Brightness: 100, Contrast: 100, Saturation: 100}
}

// IsIdentity reports whether applying p would leave any buffer unchanged.
func (p FilterParams) IsIdentity() bool {
	return p == DefaultFilterParams()
}

// Clamp returns a copy of p with every knob forced into its valid range.
func (p FilterParams) Clamp() FilterParams {
	p.Brightness = clampFloat(p.Brightness, 0, 200)
	p.Contrast = clampFloat(p.Contrast, 0, 200)
	p.Saturation = clampFloat(p.Saturation, 0, 200)
	p.Blur = clampFloat(p.Blur, 0, 10)
	p.HueRotate = clampFloat(p.HueRotate, 0, 360)
	p.Sepia = clampFloat(p.Sepia, 0, 100)
	p.Grayscale = clampFloat(p.Grayscale, 0, 100)
	p.Invert = clampFloat(p.Invert, 0, 100)
	return p
}

// Apply rasterizes src through the composed filter chain into a new buffer.
//
// The op order is a contract, not an implementation detail: brightness,
// contrast, saturate, blur, hue-rotate, sepia, grayscale, invert. Each stage
// reads the clamped 8-bit output of the previous one, so reordering changes
// the visual result. Identity stages are skipped.
func (p FilterParams) Apply(src image.Image) *image.NRGBA {
	p = p.Clamp()
	out := imaging.Clone(src)
	if p.IsIdentity() {
		return out
	}

	if p.Brightness != 100 {
		out = applyMatrix(out, brightnessMatrix(p.Brightness/100))
	}
	if p.Contrast != 100 {
		out = applyMatrix(out, contrastMatrix(p.Contrast/100))
	}
	if p.Saturation != 100 {
		out = applyMatrix(out, saturateMatrix(p.Saturation/100))
	}
	if p.Blur > 0 {
		out = imaging.Blur(out, p.Blur)
	}
	if p.HueRotate != 0 {
		out = applyMatrix(out, hueRotateMatrix(p.HueRotate))
	}
	if p.Sepia > 0 {
		out = applyMatrix(out, sepiaMatrix(p.Sepia/100))
	}
	if p.Grayscale > 0 {
		out = applyMatrix(out, grayscaleMatrix(p.Grayscale/100))
	}
	if p.Invert > 0 {
		out = applyMatrix(out, invertMatrix(p.Invert/100))
	}
	return out
}

// FilterPreset is a named, fully-specified parameter set. Selecting a preset
// replaces the whole set; presets do not compose with each other or with
// manual edits already in flight.
type FilterPreset struct {
	Name   string
	Params FilterParams
}

// FilterPresets returns the built-in presets, identity first.
func FilterPresets() []FilterPreset {
	return []FilterPreset{
		{Name: "None", Params: DefaultFilterParams()},
		{Name: "Vintage", Params: FilterParams{Brightness: 110, Contrast: 95, Saturation: 85, Sepia: 40}},
		{Name: "Noir", Params: FilterParams{Brightness: 100, Contrast: 120, Saturation: 100, Grayscale: 100}},
		{Name: "Vivid", Params: FilterParams{Brightness: 100, Contrast: 110, Saturation: 150}},
		{Name: "Chrome", Params: FilterParams{Brightness: 105, Contrast: 115, Saturation: 120}},
		{Name: "Dreamy", Params: FilterParams{Brightness: 108, Contrast: 100, Saturation: 110, Blur: 2}},
		{Name: "Negative", Params: FilterParams{Brightness: 100, Contrast: 100, Saturation: 100, Invert: 100}},
	}
}

// colorMatrix is a 4x5 color transform in row-major order, operating on
// straight-alpha RGBA in the [0,255] range. The fifth column is the offset.
type colorMatrix [20]float64

func applyMatrix(img *image.NRGBA, m colorMatrix) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		r := float64(c.R)
		g := float64(c.G)
		b := float64(c.B)
		a := float64(c.A)
		return color.NRGBA{
			R: clampToByte(m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4]),
			G: clampToByte(m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9]),
			B: clampToByte(m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14]),
			A: clampToByte(m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19]),
		}
	})
}

func brightnessMatrix(f float64) colorMatrix {
	return colorMatrix{
		f, 0, 0, 0, 0,
		0, f, 0, 0, 0,
		0, 0, f, 0, 0,
		0, 0, 0, 1, 0,
	}
}

func contrastMatrix(f float64) colorMatrix {
	// (v - 127.5) * f + 127.5
	off := 127.5 * (1 - f)
	return colorMatrix{
		f, 0, 0, 0, off,
		0, f, 0, 0, off,
		0, 0, f, 0, off,
		0, 0, 0, 1, 0,
	}
}

// Luminance weights from the SVG/CSS filter effects saturate matrix.
const (
	lumR = 0.213
	lumG = 0.715
	lumB = 0.072
)

func saturateMatrix(s float64) colorMatrix {
	inv := 1 - s
	return colorMatrix{
		lumR*inv + s, lumG * inv, lumB * inv, 0, 0,
		lumR * inv, lumG*inv + s, lumB * inv, 0, 0,
		lumR * inv, lumG * inv, lumB*inv + s, 0, 0,
		0, 0, 0, 1, 0,
	}
}

func hueRotateMatrix(degrees float64) colorMatrix {
	rad := degrees * math.Pi / 180
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	return colorMatrix{
		lumR + cos*(1-lumR) - sin*lumR, lumG - cos*lumG - sin*lumG, lumB - cos*lumB + sin*(1-lumB), 0, 0,
		lumR - cos*lumR + sin*0.143, lumG + cos*(1-lumG) + sin*0.140, lumB - cos*lumB - sin*0.283, 0, 0,
		lumR - cos*lumR - sin*(1-lumR), lumG - cos*lumG + sin*lumG, lumB + cos*(1-lumB) + sin*lumB, 0, 0,
		0, 0, 0, 1, 0,
	}
}

func sepiaMatrix(t float64) colorMatrix {
	inv := 1 - t
	return colorMatrix{
		0.393 + 0.607*inv, 0.769 - 0.769*inv, 0.189 - 0.189*inv, 0, 0,
		0.349 - 0.349*inv, 0.686 + 0.314*inv, 0.168 - 0.168*inv, 0, 0,
		0.272 - 0.272*inv, 0.534 - 0.534*inv, 0.131 + 0.869*inv, 0, 0,
		0, 0, 0, 1, 0,
	}
}

func grayscaleMatrix(t float64) colorMatrix {
	// Grayscale uses the Rec. 709 weights, unlike saturate.
	const (
		gR = 0.2126
		gG = 0.7152
		gB = 0.0722
	)
	inv := 1 - t
	return colorMatrix{
		gR*t + inv, gG * t, gB * t, 0, 0,
		gR * t, gG*t + inv, gB * t, 0, 0,
		gR * t, gG * t, gB*t + inv, 0, 0,
		0, 0, 0, 1, 0,
	}
}

func invertMatrix(t float64) colorMatrix {
	d := 1 - 2*t
	off := 255 * t
	return colorMatrix{
		d, 0, 0, 0, off,
		0, d, 0, 0, off,
		0, 0, d, 0, off,
		0, 0, 0, 1, 0,
	}
}

func clampToByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
