package exrheader

import (
	"slices"

	"github.com/simonhull/exrheader/internal/binary"
)

// OpaqueAttribute keeps the raw value of an attribute whose type name has
// no registered decoder, so that it survives a read-write round trip.
type OpaqueAttribute struct {
	typeName string
	Data     []byte
}

// NewOpaque returns an empty opaque attribute for typeName.
func NewOpaque(typeName string) *OpaqueAttribute {
	return &OpaqueAttribute{typeName: typeName}
}

// OpaqueConstructor returns a registry constructor producing opaque values
// of typeName.
func OpaqueConstructor(typeName string) func() Attribute {
	return func() Attribute { return NewOpaque(typeName) }
}

func (a *OpaqueAttribute) TypeName() string { return a.typeName }

func (a *OpaqueAttribute) Clone() Attribute {
	return &OpaqueAttribute{typeName: a.typeName, Data: slices.Clone(a.Data)}
}

func (a *OpaqueAttribute) readValue(r *binary.Reader, size int32, _ FormatVersion) (err error) {
	a.Data, err = r.ReadBytes(int(size), a.typeName)
	return err
}

func (a *OpaqueAttribute) writeValue(w *binary.Writer, _ FormatVersion) error {
	return w.WriteBytes(a.Data, a.typeName)
}
