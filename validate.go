package exrheader

import (
	"errors"
	"fmt"
	"math"
)

const (
	minPixelAspectRatio = 1e-6
	maxPixelAspectRatio = 1e+6
	windowLimit         = math.MaxInt32 / 2
)

var requiredAttributes = []struct {
	name     string
	typeName string
}{
	{AttrDisplayWindow, "box2i"},
	{AttrDataWindow, "box2i"},
	{AttrPixelAspectRatio, "float"},
	{AttrScreenWindowCenter, "v2f"},
	{AttrScreenWindowWidth, "float"},
	{AttrLineOrder, "lineOrder"},
	{AttrCompression, "compression"},
	{AttrChannels, "chlist"},
}

func invalid(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidHeader)...)
}

// Validate checks that h describes a readable single-part image:
//   - every required attribute is present with its expected type
//   - both windows hold at least one pixel and their corners stay within
//     ±MaxInt32/2
//   - the pixel aspect ratio is within [1e-6, 1e6] and the screen window
//     width is not negative
//   - a tiled image has a tile description with positive tile sizes and
//     channels sampled at every pixel
//   - a scan-line image stores lines in increasing or decreasing order and
//     each channel's sampling divides the data window origin and size
//
// All failures match ErrInvalidHeader.
func (h *Header) Validate(tiled bool) error {
	var errs []error
	for _, req := range requiredAttributes {
		a, ok := h.Get(req.name)
		if !ok {
			errs = append(errs, invalid("missing required attribute %q", req.name))
		} else if a.TypeName() != req.typeName {
			errs = append(errs, invalid("attribute %q is %s, want %s", req.name, a.TypeName(), req.typeName))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if err := checkWindow("display", h.DisplayWindow()); err != nil {
		return err
	}
	dw := h.DataWindow()
	if err := checkWindow("data", dw); err != nil {
		return err
	}

	if par := h.PixelAspectRatio(); !(par >= minPixelAspectRatio && par <= maxPixelAspectRatio) {
		return invalid("pixel aspect ratio %g out of range", par)
	}
	if sww := h.ScreenWindowWidth(); !(sww >= 0) {
		return invalid("screen window width %g is negative", sww)
	}
	if c := h.Compression(); !c.Valid() {
		return invalid("compression %s", c)
	}

	order := h.LineOrder()
	channels := h.Channels()
	if err := channels.check(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}

	if tiled {
		td, ok := h.TileDescription()
		if !ok {
			return invalid("tiled image has no tile description")
		}
		if td.XSize == 0 || td.YSize == 0 || td.XSize > math.MaxInt32 || td.YSize > math.MaxInt32 {
			return invalid("tile size %dx%d", td.XSize, td.YSize)
		}
		if !td.Mode.Valid() || !td.Rounding.Valid() {
			return invalid("tile modes %s, %s", td.Mode, td.Rounding)
		}
		if !order.Valid() {
			return invalid("line order %s", order)
		}
		for _, c := range channels {
			if !c.Type.Valid() {
				return invalid("channel %q pixel type %s", c.Name, c.Type)
			}
			if c.XSampling != 1 || c.YSampling != 1 {
				return invalid("channel %q sampling %dx%d in a tiled image", c.Name, c.XSampling, c.YSampling)
			}
		}
		return nil
	}

	if order != IncreasingY && order != DecreasingY {
		return invalid("line order %s in a scan-line image", order)
	}
	width, height := dw.Width(), dw.Height()
	for _, c := range channels {
		if !c.Type.Valid() {
			return invalid("channel %q pixel type %s", c.Name, c.Type)
		}
		if c.XSampling < 1 || c.YSampling < 1 {
			return invalid("channel %q sampling %dx%d", c.Name, c.XSampling, c.YSampling)
		}
		xs, ys := int64(c.XSampling), int64(c.YSampling)
		if int64(dw.Min.X)%xs != 0 || int64(dw.Min.Y)%ys != 0 {
			return invalid("data window origin is not a multiple of channel %q sampling", c.Name)
		}
		if width%xs != 0 || height%ys != 0 {
			return invalid("data window size is not a multiple of channel %q sampling", c.Name)
		}
	}
	return nil
}

func checkWindow(which string, b Box2i) error {
	if b.IsEmpty() {
		return invalid("%s window %s is empty", which, b)
	}
	if b.Min.X <= -windowLimit || b.Min.Y <= -windowLimit ||
		b.Max.X >= windowLimit || b.Max.Y >= windowLimit {
		return invalid("%s window %s is too large", which, b)
	}
	return nil
}
