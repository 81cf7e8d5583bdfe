package exrheader

import (
	"fmt"
	"math"
	"strings"

	"github.com/simonhull/exrheader/internal/binary"
)

// Attribute is one typed value of a header.
//
// The set of implementations is closed: every built-in type name has a
// concrete *XxxAttribute type in this package, and values of any other type
// name are held by *OpaqueAttribute. Callers inspect a value with a type
// switch or with Lookup.
//
// Attributes are replaced as a whole. Mutating the Value of an attribute
// returned by Header.Get mutates the header; use Clone to detach it.
type Attribute interface {
	// TypeName returns the on-disk type name, e.g. "box2i".
	TypeName() string

	// Clone returns a deep copy that shares no memory with the receiver.
	Clone() Attribute

	// readValue decodes a value of declared size bytes.
	readValue(r *binary.Reader, size int32, v FormatVersion) error

	// writeValue encodes the value. The caller records its length.
	writeValue(w *binary.Writer, v FormatVersion) error
}

// decodeAttribute decodes into a and checks that exactly size bytes were
// consumed, comparing stream positions rather than trusting the decoder.
func decodeAttribute(r *binary.Reader, a Attribute, size int32, v FormatVersion) error {
	if size < 0 {
		return &SizeMismatchError{TypeName: a.TypeName(), Declared: int64(size)}
	}

	start, err := r.Position()
	if err != nil {
		return err
	}
	if err := a.readValue(r, size, v); err != nil {
		return err
	}
	end, err := r.Position()
	if err != nil {
		return err
	}

	if consumed := end - start; consumed != int64(size) {
		return &SizeMismatchError{TypeName: a.TypeName(), Declared: int64(size), Consumed: consumed}
	}
	return nil
}

// encodeAttribute writes a size placeholder, the value, and then patches
// the size with the number of bytes the value actually took.
func encodeAttribute(w *binary.Writer, a Attribute, v FormatVersion) error {
	sizePos, err := w.Position()
	if err != nil {
		return err
	}
	if err := binary.Write[int32](w, 0, "attribute size"); err != nil {
		return err
	}
	if err := a.writeValue(w, v); err != nil {
		return err
	}
	end, err := w.Position()
	if err != nil {
		return err
	}

	size := end - sizePos - 4
	if size > math.MaxInt32 {
		return fmt.Errorf("%s value of %d bytes does not fit the size field: %w", a.TypeName(), size, ErrSizeMismatch)
	}
	if err := w.Seek(sizePos); err != nil {
		return err
	}
	if err := binary.Write(w, int32(size), "attribute size"); err != nil {
		return err
	}
	return w.Seek(end)
}

// validTypeName reports whether name can be written as a type name and read
// back unchanged.
func validTypeName(name string) bool {
	return name != "" && strings.IndexByte(name, 0) < 0
}

// checkSize rejects a declared size that differs from the fixed encoded
// size of a type before anything is read.
func checkSize(typeName string, size int32, want int) error {
	if int64(size) != int64(want) {
		return &SizeMismatchError{TypeName: typeName, Declared: int64(size), Consumed: int64(want)}
	}
	return nil
}

// MarshalAttribute returns the encoded value of a, without the name, type
// name and size that precede it in a header.
func MarshalAttribute(a Attribute, v FormatVersion) ([]byte, error) {
	m := binary.NewMemory(nil)
	if err := a.writeValue(binary.NewWriter(m), v); err != nil {
		return nil, err
	}
	return m.Bytes(), nil
}

// UnmarshalAttribute decodes data as a value of typeName. The type is
// resolved in reg, or in the default registry when reg is nil. All of data
// must be consumed.
func UnmarshalAttribute(typeName string, data []byte, v FormatVersion, reg *Registry) (Attribute, error) {
	if reg == nil {
		reg = defaultRegistry
	}
	a, err := reg.New(typeName)
	if err != nil {
		return nil, err
	}
	if len(data) > math.MaxInt32 {
		return nil, &SizeMismatchError{TypeName: typeName, Declared: int64(len(data))}
	}
	if err := decodeAttribute(binary.NewReader(binary.NewMemory(data)), a, int32(len(data)), v); err != nil {
		return nil, err
	}
	return a, nil
}
