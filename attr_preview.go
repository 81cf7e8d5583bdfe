package exrheader

import (
	"fmt"
	"slices"

	"github.com/simonhull/exrheader/internal/binary"
)

// PreviewImage is a small 8-bit RGBA thumbnail stored in the header.
// Pixels holds 4*Width*Height bytes, row by row from the top.
type PreviewImage struct {
	Width  uint32
	Height uint32
	Pixels []byte
}

// NewPreviewImage returns a zeroed preview. It fails when the pixel buffer
// size overflows.
func NewPreviewImage(width, height uint32) (PreviewImage, error) {
	n, ok := previewBytes(int64(width), int64(height))
	if !ok {
		return PreviewImage{}, fmt.Errorf("preview %dx%d: %w", width, height, ErrNegativeDimension)
	}
	return PreviewImage{Width: width, Height: height, Pixels: make([]byte, n)}, nil
}

// previewBytes returns 4*w*h if it fits a declared attribute size.
func previewBytes(w, h int64) (int64, bool) {
	if w < 0 || h < 0 {
		return 0, false
	}
	if w != 0 && h > (1<<31-1-8)/4/w {
		return 0, false
	}
	return 4 * w * h, true
}

// At returns the RGBA bytes of pixel (x, y).
func (p PreviewImage) At(x, y int) []byte {
	i := 4 * (y*int(p.Width) + x)
	return p.Pixels[i : i+4 : i+4]
}

// PreviewImageAttribute holds a PreviewImage ("preview").
type PreviewImageAttribute struct{ Value PreviewImage }

func (*PreviewImageAttribute) TypeName() string { return "preview" }

func (a *PreviewImageAttribute) Clone() Attribute {
	c := *a
	c.Value.Pixels = slices.Clone(a.Value.Pixels)
	return &c
}

func (a *PreviewImageAttribute) readValue(r *binary.Reader, size int32, _ FormatVersion) error {
	cr := binary.NewChainReader(r)
	width := binary.ReadChained[int32](cr, "preview width")
	height := binary.ReadChained[int32](cr, "preview height")
	if err := cr.Err(); err != nil {
		return err
	}

	n, ok := previewBytes(int64(width), int64(height))
	if !ok {
		return fmt.Errorf("preview %dx%d: %w", width, height, ErrNegativeDimension)
	}
	// Check against the declared size before allocating the pixels.
	if n+8 != int64(size) {
		return &SizeMismatchError{TypeName: a.TypeName(), Declared: int64(size), Consumed: n + 8}
	}

	pixels, err := r.ReadBytes(int(n), "preview pixels")
	if err != nil {
		return err
	}
	a.Value = PreviewImage{Width: uint32(width), Height: uint32(height), Pixels: pixels}
	return nil
}

func (a *PreviewImageAttribute) writeValue(w *binary.Writer, _ FormatVersion) error {
	p := a.Value
	n, ok := previewBytes(int64(p.Width), int64(p.Height))
	if !ok || p.Width > 1<<31-1 || p.Height > 1<<31-1 {
		return fmt.Errorf("preview %dx%d: %w", p.Width, p.Height, ErrNegativeDimension)
	}
	if int64(len(p.Pixels)) != n {
		return fmt.Errorf("preview %dx%d has %d pixel bytes, want %d: %w",
			p.Width, p.Height, len(p.Pixels), n, ErrSizeMismatch)
	}
	if err := writeElems(w, "preview size", int32(p.Width), int32(p.Height)); err != nil {
		return err
	}
	return w.WriteBytes(p.Pixels, "preview pixels")
}
