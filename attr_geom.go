package exrheader

import (
	"fmt"

	"github.com/simonhull/exrheader/internal/binary"
)

// Vector, box and matrix value types. These carry no parsing logic beyond
// their fixed little-endian layout.

type V2i struct{ X, Y int32 }
type V2f struct{ X, Y float32 }
type V2d struct{ X, Y float64 }
type V3i struct{ X, Y, Z int32 }
type V3f struct{ X, Y, Z float32 }
type V3d struct{ X, Y, Z float64 }

// Box2i is an integer rectangle with inclusive corners.
type Box2i struct{ Min, Max V2i }

// Width returns Max.X - Min.X + 1.
func (b Box2i) Width() int64 { return int64(b.Max.X) - int64(b.Min.X) + 1 }

// Height returns Max.Y - Min.Y + 1.
func (b Box2i) Height() int64 { return int64(b.Max.Y) - int64(b.Min.Y) + 1 }

// IsEmpty reports whether the box contains no pixels.
func (b Box2i) IsEmpty() bool { return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y }

func (b Box2i) String() string {
	return fmt.Sprintf("(%d %d) - (%d %d)", b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
}

// Box2f is a floating-point rectangle.
type Box2f struct{ Min, Max V2f }

// Row-major matrices.
type (
	M33f [3][3]float32
	M33d [3][3]float64
	M44f [4][4]float32
	M44d [4][4]float64
)

// Identity matrices.
var (
	IdentityM33f = M33f{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	IdentityM44f = M44f{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
)

func readElems[T binary.Number](r *binary.Reader, what string, dst ...*T) error {
	cr := binary.NewChainReader(r)
	for _, p := range dst {
		*p = binary.ReadChained[T](cr, what)
	}
	return cr.Err()
}

func readRows[T binary.Number](r *binary.Reader, what string, rows ...[]T) error {
	cr := binary.NewChainReader(r)
	for _, row := range rows {
		for i := range row {
			row[i] = binary.ReadChained[T](cr, what)
		}
	}
	return cr.Err()
}

func writeElems[T binary.Number](w *binary.Writer, what string, src ...T) error {
	for _, v := range src {
		if err := binary.Write(w, v, what); err != nil {
			return err
		}
	}
	return nil
}

func writeRows[T binary.Number](w *binary.Writer, what string, rows ...[]T) error {
	for _, row := range rows {
		if err := writeElems(w, what, row...); err != nil {
			return err
		}
	}
	return nil
}

// V2iAttribute holds a V2i ("v2i").
type V2iAttribute struct{ Value V2i }

func (*V2iAttribute) TypeName() string  { return "v2i" }
func (a *V2iAttribute) Clone() Attribute { c := *a; return &c }

func (a *V2iAttribute) readValue(r *binary.Reader, size int32, _ FormatVersion) error {
	if err := checkSize(a.TypeName(), size, 8); err != nil {
		return err
	}
	return readElems(r, "v2i", &a.Value.X, &a.Value.Y)
}

func (a *V2iAttribute) writeValue(w *binary.Writer, _ FormatVersion) error {
	return writeElems(w, "v2i", a.Value.X, a.Value.Y)
}

// V2fAttribute holds a V2f ("v2f").
type V2fAttribute struct{ Value V2f }

func (*V2fAttribute) TypeName() string  { return "v2f" }
func (a *V2fAttribute) Clone() Attribute { c := *a; return &c }

func (a *V2fAttribute) readValue(r *binary.Reader, size int32, _ FormatVersion) error {
	if err := checkSize(a.TypeName(), size, 8); err != nil {
		return err
	}
	return readElems(r, "v2f", &a.Value.X, &a.Value.Y)
}

func (a *V2fAttribute) writeValue(w *binary.Writer, _ FormatVersion) error {
	return writeElems(w, "v2f", a.Value.X, a.Value.Y)
}

// V2dAttribute holds a V2d ("v2d").
type V2dAttribute struct{ Value V2d }

func (*V2dAttribute) TypeName() string  { return "v2d" }
func (a *V2dAttribute) Clone() Attribute { c := *a; return &c }

func (a *V2dAttribute) readValue(r *binary.Reader, size int32, _ FormatVersion) error {
	if err := checkSize(a.TypeName(), size, 16); err != nil {
		return err
	}
	return readElems(r, "v2d", &a.Value.X, &a.Value.Y)
}

func (a *V2dAttribute) writeValue(w *binary.Writer, _ FormatVersion) error {
	return writeElems(w, "v2d", a.Value.X, a.Value.Y)
}

// V3iAttribute holds a V3i ("v3i").
type V3iAttribute struct{ Value V3i }

func (*V3iAttribute) TypeName() string  { return "v3i" }
func (a *V3iAttribute) Clone() Attribute { c := *a; return &c }

func (a *V3iAttribute) readValue(r *binary.Reader, size int32, _ FormatVersion) error {
	if err := checkSize(a.TypeName(), size, 12); err != nil {
		return err
	}
	return readElems(r, "v3i", &a.Value.X, &a.Value.Y, &a.Value.Z)
}

func (a *V3iAttribute) writeValue(w *binary.Writer, _ FormatVersion) error {
	return writeElems(w, "v3i", a.Value.X, a.Value.Y, a.Value.Z)
}

// V3fAttribute holds a V3f ("v3f").
type V3fAttribute struct{ Value V3f }

func (*V3fAttribute) TypeName() string  { return "v3f" }
func (a *V3fAttribute) Clone() Attribute { c := *a; return &c }

func (a *V3fAttribute) readValue(r *binary.Reader, size int32, _ FormatVersion) error {
	if err := checkSize(a.TypeName(), size, 12); err != nil {
		return err
	}
	return readElems(r, "v3f", &a.Value.X, &a.Value.Y, &a.Value.Z)
}

func (a *V3fAttribute) writeValue(w *binary.Writer, _ FormatVersion) error {
	return writeElems(w, "v3f", a.Value.X, a.Value.Y, a.Value.Z)
}

// V3dAttribute holds a V3d ("v3d").
type V3dAttribute struct{ Value V3d }

func (*V3dAttribute) TypeName() string  { return "v3d" }
func (a *V3dAttribute) Clone() Attribute { c := *a; return &c }

func (a *V3dAttribute) readValue(r *binary.Reader, size int32, _ FormatVersion) error {
	if err := checkSize(a.TypeName(), size, 24); err != nil {
		return err
	}
	return readElems(r, "v3d", &a.Value.X, &a.Value.Y, &a.Value.Z)
}

func (a *V3dAttribute) writeValue(w *binary.Writer, _ FormatVersion) error {
	return writeElems(w, "v3d", a.Value.X, a.Value.Y, a.Value.Z)
}

// Box2iAttribute holds a Box2i ("box2i"), stored as xMin, yMin, xMax, yMax.
type Box2iAttribute struct{ Value Box2i }

func (*Box2iAttribute) TypeName() string  { return "box2i" }
func (a *Box2iAttribute) Clone() Attribute { c := *a; return &c }

func (a *Box2iAttribute) readValue(r *binary.Reader, size int32, _ FormatVersion) error {
	if err := checkSize(a.TypeName(), size, 16); err != nil {
		return err
	}
	b := &a.Value
	return readElems(r, "box2i", &b.Min.X, &b.Min.Y, &b.Max.X, &b.Max.Y)
}

func (a *Box2iAttribute) writeValue(w *binary.Writer, _ FormatVersion) error {
	b := a.Value
	return writeElems(w, "box2i", b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
}

// Box2fAttribute holds a Box2f ("box2f").
type Box2fAttribute struct{ Value Box2f }

func (*Box2fAttribute) TypeName() string  { return "box2f" }
func (a *Box2fAttribute) Clone() Attribute { c := *a; return &c }

func (a *Box2fAttribute) readValue(r *binary.Reader, size int32, _ FormatVersion) error {
	if err := checkSize(a.TypeName(), size, 16); err != nil {
		return err
	}
	b := &a.Value
	return readElems(r, "box2f", &b.Min.X, &b.Min.Y, &b.Max.X, &b.Max.Y)
}

func (a *Box2fAttribute) writeValue(w *binary.Writer, _ FormatVersion) error {
	b := a.Value
	return writeElems(w, "box2f", b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
}

// M33fAttribute holds an M33f ("m33f").
type M33fAttribute struct{ Value M33f }

func (*M33fAttribute) TypeName() string  { return "m33f" }
func (a *M33fAttribute) Clone() Attribute { c := *a; return &c }

func (a *M33fAttribute) readValue(r *binary.Reader, size int32, _ FormatVersion) error {
	if err := checkSize(a.TypeName(), size, 36); err != nil {
		return err
	}
	m := &a.Value
	return readRows(r, "m33f", m[0][:], m[1][:], m[2][:])
}

func (a *M33fAttribute) writeValue(w *binary.Writer, _ FormatVersion) error {
	m := &a.Value
	return writeRows(w, "m33f", m[0][:], m[1][:], m[2][:])
}

// M33dAttribute holds an M33d ("m33d").
type M33dAttribute struct{ Value M33d }

func (*M33dAttribute) TypeName() string  { return "m33d" }
func (a *M33dAttribute) Clone() Attribute { c := *a; return &c }

func (a *M33dAttribute) readValue(r *binary.Reader, size int32, _ FormatVersion) error {
	if err := checkSize(a.TypeName(), size, 72); err != nil {
		return err
	}
	m := &a.Value
	return readRows(r, "m33d", m[0][:], m[1][:], m[2][:])
}

func (a *M33dAttribute) writeValue(w *binary.Writer, _ FormatVersion) error {
	m := &a.Value
	return writeRows(w, "m33d", m[0][:], m[1][:], m[2][:])
}

// M44fAttribute holds an M44f ("m44f").
type M44fAttribute struct{ Value M44f }

func (*M44fAttribute) TypeName() string  { return "m44f" }
func (a *M44fAttribute) Clone() Attribute { c := *a; return &c }

func (a *M44fAttribute) readValue(r *binary.Reader, size int32, _ FormatVersion) error {
	if err := checkSize(a.TypeName(), size, 64); err != nil {
		return err
	}
	m := &a.Value
	return readRows(r, "m44f", m[0][:], m[1][:], m[2][:], m[3][:])
}

func (a *M44fAttribute) writeValue(w *binary.Writer, _ FormatVersion) error {
	m := &a.Value
	return writeRows(w, "m44f", m[0][:], m[1][:], m[2][:], m[3][:])
}

// M44dAttribute holds an M44d ("m44d").
type M44dAttribute struct{ Value M44d }

func (*M44dAttribute) TypeName() string  { return "m44d" }
func (a *M44dAttribute) Clone() Attribute { c := *a; return &c }

func (a *M44dAttribute) readValue(r *binary.Reader, size int32, _ FormatVersion) error {
	if err := checkSize(a.TypeName(), size, 128); err != nil {
		return err
	}
	m := &a.Value
	return readRows(r, "m44d", m[0][:], m[1][:], m[2][:], m[3][:])
}

func (a *M44dAttribute) writeValue(w *binary.Writer, _ FormatVersion) error {
	m := &a.Value
	return writeRows(w, "m44d", m[0][:], m[1][:], m[2][:], m[3][:])
}
