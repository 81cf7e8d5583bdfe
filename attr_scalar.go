package exrheader

import (
	"fmt"

	"github.com/simonhull/exrheader/internal/binary"
)

// IntAttribute holds a 32-bit signed integer ("int").
type IntAttribute struct{ Value int32 }

func (*IntAttribute) TypeName() string { return "int" }

func (a *IntAttribute) Clone() Attribute { c := *a; return &c }

func (a *IntAttribute) readValue(r *binary.Reader, size int32, _ FormatVersion) (err error) {
	if err := checkSize(a.TypeName(), size, 4); err != nil {
		return err
	}
	a.Value, err = binary.Read[int32](r, "int")
	return err
}

func (a *IntAttribute) writeValue(w *binary.Writer, _ FormatVersion) error {
	return binary.Write(w, a.Value, "int")
}

// FloatAttribute holds a 32-bit float ("float").
type FloatAttribute struct{ Value float32 }

func (*FloatAttribute) TypeName() string { return "float" }

func (a *FloatAttribute) Clone() Attribute { c := *a; return &c }

func (a *FloatAttribute) readValue(r *binary.Reader, size int32, _ FormatVersion) (err error) {
	if err := checkSize(a.TypeName(), size, 4); err != nil {
		return err
	}
	a.Value, err = binary.Read[float32](r, "float")
	return err
}

func (a *FloatAttribute) writeValue(w *binary.Writer, _ FormatVersion) error {
	return binary.Write(w, a.Value, "float")
}

// DoubleAttribute holds a 64-bit float ("double").
type DoubleAttribute struct{ Value float64 }

func (*DoubleAttribute) TypeName() string { return "double" }

func (a *DoubleAttribute) Clone() Attribute { c := *a; return &c }

func (a *DoubleAttribute) readValue(r *binary.Reader, size int32, _ FormatVersion) (err error) {
	if err := checkSize(a.TypeName(), size, 8); err != nil {
		return err
	}
	a.Value, err = binary.Read[float64](r, "double")
	return err
}

func (a *DoubleAttribute) writeValue(w *binary.Writer, _ FormatVersion) error {
	return binary.Write(w, a.Value, "double")
}

// Rational is a signed numerator over an unsigned denominator, used for
// frame rates such as 24000/1001.
type Rational struct {
	Num int32
	Den uint32
}

// Float64 returns the value of r. A zero denominator yields ±Inf or NaN.
func (r Rational) Float64() float64 {
	return float64(r.Num) / float64(r.Den)
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// RationalAttribute holds a Rational ("rational").
type RationalAttribute struct{ Value Rational }

func (*RationalAttribute) TypeName() string { return "rational" }

func (a *RationalAttribute) Clone() Attribute { c := *a; return &c }

func (a *RationalAttribute) readValue(r *binary.Reader, size int32, _ FormatVersion) error {
	if err := checkSize(a.TypeName(), size, 8); err != nil {
		return err
	}
	cr := binary.NewChainReader(r)
	a.Value = Rational{
		Num: binary.ReadChained[int32](cr, "rational numerator"),
		Den: binary.ReadChained[uint32](cr, "rational denominator"),
	}
	return cr.Err()
}

func (a *RationalAttribute) writeValue(w *binary.Writer, _ FormatVersion) error {
	if err := binary.Write(w, a.Value.Num, "rational numerator"); err != nil {
		return err
	}
	return binary.Write(w, a.Value.Den, "rational denominator")
}
