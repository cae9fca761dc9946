package pixedit

import (
	"bytes"
	"image"
	"testing"
)

func TestResizerAspectLockFromOriginalRatio(t *testing.T) {
	// 1600x900 original: width 800 auto-computes height 450.
	r := NewResizer(gradientImage(1600, 900))
	r.SetWidth(800)
	if r.Width() != 800 || r.Height() != 450 {
		t.Fatalf("got %dx%d, want 800x450", r.Width(), r.Height())
	}

	r.SetHeight(225)
	if r.Width() != 400 || r.Height() != 225 {
		t.Fatalf("got %dx%d, want 400x225", r.Width(), r.Height())
	}

	// The lock recomputes from the original ratio, not the last edit, so
	// a chain of edits cannot drift.
	r.SetWidth(801)
	r.SetWidth(800)
	if r.Height() != 450 {
		t.Fatalf("height drifted to %d after repeated edits", r.Height())
	}
}

func TestResizerUnlockedAxesIndependent(t *testing.T) {
	r := NewResizer(gradientImage(1600, 900))
	r.SetLock(false)
	r.SetWidth(800)
	if r.Height() != 900 {
		t.Fatalf("unlocked width edit changed height to %d", r.Height())
	}
}

func TestResizerClampsToMinimumDimension(t *testing.T) {
	r := NewResizer(gradientImage(100, 100))
	r.SetWidth(0)
	if r.Width() != 1 || r.Height() != 1 {
		t.Fatalf("got %dx%d, want 1x1", r.Width(), r.Height())
	}
	r.SetHeight(-5)
	if r.Height() != 1 {
		t.Fatalf("negative height accepted: %d", r.Height())
	}
}

func TestExportResamplesToExactDimensions(t *testing.T) {
	src := gradientImage(100, 50)

	for _, format := range []Format{FormatPNG, FormatJPEG, FormatWebP} {
		data, err := Export(src, 40, 20, func(o *ExportOptions) {
			o.Format = format
			o.Quality = 80
		})
		if err != nil {
			t.Fatalf("%v export: %v", format, err)
		}
		img, name, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("decode %v output: %v", format, err)
		}
		if name != format.String() {
			t.Fatalf("decoded format %q, want %q", name, format)
		}
		if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 20 {
			t.Fatalf("%v output is %dx%d, want 40x20", format, img.Bounds().Dx(), img.Bounds().Dy())
		}
	}
}

func TestExportRejectsZeroDimensions(t *testing.T) {
	src := gradientImage(10, 10)
	if _, err := Export(src, 0, 20); err == nil {
		t.Fatalf("zero width accepted")
	}
	if _, err := Export(src, 20, 0); err == nil {
		t.Fatalf("zero height accepted")
	}
}

func TestExportQualityClamped(t *testing.T) {
	src := gradientImage(20, 20)
	if _, err := Export(src, 20, 20, func(o *ExportOptions) {
		o.Format = FormatJPEG
		o.Quality = 9000
	}); err != nil {
		t.Fatalf("out-of-range quality not clamped: %v", err)
	}
}

func TestExportOnResultCallback(t *testing.T) {
	src := gradientImage(20, 20)
	var seen []byte
	data, err := Export(src, 10, 10, func(o *ExportOptions) {
		o.Format = FormatPNG
		o.OnResult = func(b []byte) { seen = b }
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !bytes.Equal(seen, data) {
		t.Fatalf("callback saw different bytes than the return value")
	}
}

func TestExportFilenameAppendsExtension(t *testing.T) {
	cases := []struct {
		format Format
		want   string
	}{
		{FormatPNG, "shot.png"},
		{FormatJPEG, "shot.jpg"},
		{FormatWebP, "shot.webp"},
	}
	for _, tc := range cases {
		if got := ExportFilename("shot", tc.format); got != tc.want {
			t.Errorf("%v: got %q, want %q", tc.format, got, tc.want)
		}
	}
}

func TestFormatLossy(t *testing.T) {
	if FormatPNG.Lossy() {
		t.Fatalf("png reported lossy")
	}
	if !FormatJPEG.Lossy() || !FormatWebP.Lossy() {
		t.Fatalf("lossy formats reported lossless")
	}
}

func TestEstimateFileSizeHeuristic(t *testing.T) {
	r := NewResizer(gradientImage(800, 600))
	if r.EstimateFileSize(FormatPNG, 0) <= 0 {
		t.Fatalf("png estimate not positive")
	}
	low := r.EstimateFileSize(FormatJPEG, 10)
	high := r.EstimateFileSize(FormatJPEG, 100)
	if low >= high {
		t.Fatalf("jpeg estimate not monotonic in quality: %d >= %d", low, high)
	}
}

func BenchmarkExport(b *testing.B) {
	src := gradientImage(1024, 768)
	benches := []struct {
		name   string
		interp Interpolation
	}{
		{name: "nearest", interp: InterpolationNearest},
		{name: "bilinear", interp: InterpolationBilinear},
		{name: "lanczos3", interp: InterpolationLanczos3},
	}
	for _, bench := range benches {
		bench := bench
		b.Run(bench.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, err := Export(src, 300, 225, func(o *ExportOptions) {
					o.Format = FormatJPEG
					o.Interpolation = bench.interp
				})
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
