package pixedit

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"

	// Decoders for the upload surface.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrNoImage is returned by stage operations before an image is loaded.
var ErrNoImage = errors.New("no image loaded")

// Session owns the authoritative "current image" for one editing run. The
// stage chain is strictly linear: committing a crop invalidates any filter
// and annotation results, committing a filter invalidates annotation results,
// and annotations are terminal. Each stage output is a fresh buffer; inputs
// are never mutated.
//
// Abandoning a stage needs no rollback here: the stage object (Cropper,
// FilterParams, Annotator) simply gets discarded and the committed chain is
// untouched.
type Session struct {
	uploaded *image.NRGBA
	cropped  *image.NRGBA
	filtered *image.NRGBA
	edited   *image.NRGBA
}

// NewSession returns a session with no image loaded.
func NewSession() *Session {
	return &Session{}
}

// Load decodes an uploaded image and makes it the session's current image.
// The bytes are sniffed first so only raster image formats get decoded. On
// any failure the session keeps its previous state.
func (s *Session) Load(r io.Reader) error {
	br := bufio.NewReader(r)
	if _, err := DetectFormat(br); err != nil {
		return err
	}
	img, _, err := image.Decode(br)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	s.LoadImage(img)
	return nil
}

// LoadImage starts the session from an already decoded image.
func (s *Session) LoadImage(img image.Image) {
	s.uploaded = imaging.Clone(img)
	s.cropped = nil
	s.filtered = nil
	s.edited = nil
}

// Loaded reports whether the session has an image.
func (s *Session) Loaded() bool {
	return s.uploaded != nil
}

// Current returns the authoritative image: the last committed stage wins.
func (s *Session) Current() *image.NRGBA {
	switch {
	case s.edited != nil:
		return s.edited
	case s.filtered != nil:
		return s.filtered
	case s.cropped != nil:
		return s.cropped
	default:
		return s.uploaded
	}
}

// ApplyCrop commits the cropper's region against whatever is visually
// current and drops any downstream filter and annotation results.
func (s *Session) ApplyCrop(c *Cropper) error {
	cur := s.Current()
	if cur == nil {
		return ErrNoImage
	}
	out, err := c.Apply(cur)
	if err != nil {
		return fmt.Errorf("apply crop: %w", err)
	}
	s.cropped = out
	s.filtered = nil
	s.edited = nil
	return nil
}

// ApplyFilter commits a filter pass over the current image and drops any
// annotation result.
func (s *Session) ApplyFilter(p FilterParams) error {
	cur := s.Current()
	if cur == nil {
		return ErrNoImage
	}
	s.filtered = p.Apply(cur)
	s.edited = nil
	return nil
}

// Annotate opens an annotation stage over the current image.
func (s *Session) Annotate() (*Annotator, error) {
	cur := s.Current()
	if cur == nil {
		return nil, ErrNoImage
	}
	return NewAnnotator(cur), nil
}

// ApplyAnnotations commits the annotator's output as the terminal stage.
func (s *Session) ApplyAnnotations(a *Annotator) error {
	if s.Current() == nil {
		return ErrNoImage
	}
	s.edited = a.Image()
	return nil
}

// Export resamples and encodes the current image.
func (s *Session) Export(width, height uint, opts ...func(o *ExportOptions)) ([]byte, error) {
	cur := s.Current()
	if cur == nil {
		return nil, ErrNoImage
	}
	return Export(cur, width, height, opts...)
}
