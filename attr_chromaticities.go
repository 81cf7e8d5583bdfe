package exrheader

import (
	"github.com/simonhull/exrheader/internal/binary"
)

// Chromaticities are the CIE x,y coordinates of the primaries and the white
// point.
type Chromaticities struct {
	Red, Green, Blue, White V2f
}

// Rec709Chromaticities are the ITU-R BT.709 primaries with a D65 white
// point, assumed when a header has no chromaticities attribute.
var Rec709Chromaticities = Chromaticities{
	Red:   V2f{0.6400, 0.3300},
	Green: V2f{0.3000, 0.6000},
	Blue:  V2f{0.1500, 0.0600},
	White: V2f{0.3127, 0.3290},
}

// ChromaticitiesAttribute holds Chromaticities ("chromaticities").
type ChromaticitiesAttribute struct{ Value Chromaticities }

func (*ChromaticitiesAttribute) TypeName() string { return "chromaticities" }

func (a *ChromaticitiesAttribute) Clone() Attribute { c := *a; return &c }

func (a *ChromaticitiesAttribute) readValue(r *binary.Reader, size int32, _ FormatVersion) error {
	if err := checkSize(a.TypeName(), size, 32); err != nil {
		return err
	}
	c := &a.Value
	return readElems(r, "chromaticities",
		&c.Red.X, &c.Red.Y, &c.Green.X, &c.Green.Y,
		&c.Blue.X, &c.Blue.Y, &c.White.X, &c.White.Y)
}

func (a *ChromaticitiesAttribute) writeValue(w *binary.Writer, _ FormatVersion) error {
	c := a.Value
	return writeElems(w, "chromaticities",
		c.Red.X, c.Red.Y, c.Green.X, c.Green.Y,
		c.Blue.X, c.Blue.Y, c.White.X, c.White.Y)
}
