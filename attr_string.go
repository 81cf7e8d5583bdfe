package exrheader

import (
	"fmt"
	"math"
	"slices"

	"github.com/simonhull/exrheader/internal/binary"
)

// StringAttribute holds UTF-8 text ("string"). The declared size is the
// byte length; there is no terminator.
type StringAttribute struct{ Value string }

func (*StringAttribute) TypeName() string { return "string" }

func (a *StringAttribute) Clone() Attribute { c := *a; return &c }

func (a *StringAttribute) readValue(r *binary.Reader, size int32, _ FormatVersion) (err error) {
	a.Value, err = r.ReadString(int(size), "string")
	return err
}

func (a *StringAttribute) writeValue(w *binary.Writer, _ FormatVersion) error {
	return w.WriteString(a.Value, "string")
}

// StringVectorAttribute holds a list of UTF-8 strings ("stringvector"),
// each stored as a 4-byte length followed by its bytes.
type StringVectorAttribute struct{ Value []string }

func (*StringVectorAttribute) TypeName() string { return "stringvector" }

func (a *StringVectorAttribute) Clone() Attribute {
	return &StringVectorAttribute{Value: slices.Clone(a.Value)}
}

func (a *StringVectorAttribute) readValue(r *binary.Reader, size int32, _ FormatVersion) error {
	var list []string
	for remaining := int64(size); remaining > 0; {
		if remaining < 4 {
			return &SizeMismatchError{TypeName: a.TypeName(), Declared: int64(size), Consumed: int64(size) - remaining + 4}
		}
		n, err := binary.Read[int32](r, "string length")
		if err != nil {
			return err
		}
		remaining -= 4
		if n < 0 {
			return fmt.Errorf("stringvector element length %d: %w", n, ErrNegativeDimension)
		}
		if int64(n) > remaining {
			return &SizeMismatchError{TypeName: a.TypeName(), Declared: int64(size), Consumed: int64(size) - remaining + int64(n)}
		}
		s, err := r.ReadString(int(n), "string")
		if err != nil {
			return err
		}
		remaining -= int64(n)
		list = append(list, s)
	}
	a.Value = list
	return nil
}

func (a *StringVectorAttribute) writeValue(w *binary.Writer, _ FormatVersion) error {
	for _, s := range a.Value {
		if len(s) > math.MaxInt32 {
			return fmt.Errorf("stringvector element of %d bytes does not fit its length field: %w", len(s), ErrSizeMismatch)
		}
		if err := binary.Write(w, int32(len(s)), "string length"); err != nil {
			return err
		}
		if err := w.WriteString(s, "string"); err != nil {
			return err
		}
	}
	return nil
}
