package exrheader

import (
	"fmt"

	"github.com/simonhull/exrheader/internal/binary"
)

// Compression identifies the pixel compression method.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionRLE
	CompressionZIPS
	CompressionZIP
	CompressionPIZ
	CompressionPXR24
	CompressionB44
	CompressionB44A
	CompressionDWAA
	CompressionDWAB
	numCompressions
)

var compressionInfo = [numCompressions]struct {
	name      string
	scanLines int
	lossy     bool
}{
	{"NONE", 1, false},
	{"RLE", 1, false},
	{"ZIPS", 1, false},
	{"ZIP", 16, false},
	{"PIZ", 32, false},
	{"PXR24", 16, true},
	{"B44", 32, true},
	{"B44A", 32, true},
	{"DWAA", 32, true},
	{"DWAB", 256, true},
}

// Valid reports whether c is a known compression method.
func (c Compression) Valid() bool { return c < numCompressions }

// ScanLinesPerBlock returns how many scan lines one compressed block of a
// scan-line file holds, or 0 for an unknown method.
func (c Compression) ScanLinesPerBlock() int {
	if !c.Valid() {
		return 0
	}
	return compressionInfo[c].scanLines
}

// Lossless reports whether c reproduces every pixel exactly.
func (c Compression) Lossless() bool {
	return c.Valid() && !compressionInfo[c].lossy
}

func (c Compression) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
	return compressionInfo[c].name
}

// LineOrder is the order in which scan lines or tiles are stored.
type LineOrder uint8

const (
	IncreasingY LineOrder = iota
	DecreasingY
	RandomY
	numLineOrders
)

func (o LineOrder) Valid() bool { return o < numLineOrders }

func (o LineOrder) String() string {
	switch o {
	case IncreasingY:
		return "INCREASING_Y"
	case DecreasingY:
		return "DECREASING_Y"
	case RandomY:
		return "RANDOM_Y"
	}
	return fmt.Sprintf("LineOrder(%d)", uint8(o))
}

// EnvMap is the environment map projection.
type EnvMap uint8

const (
	EnvMapLatLong EnvMap = iota
	EnvMapCube
	numEnvMaps
)

func (e EnvMap) Valid() bool { return e < numEnvMaps }

func (e EnvMap) String() string {
	switch e {
	case EnvMapLatLong:
		return "LATLONG"
	case EnvMapCube:
		return "CUBE"
	}
	return fmt.Sprintf("EnvMap(%d)", uint8(e))
}

// enum is satisfied by the one-byte enumerations.
type enum interface {
	~uint8
	Valid() bool
}

func readEnum[E enum](r *binary.Reader, typeName string, size int32) (E, error) {
	if err := checkSize(typeName, size, 1); err != nil {
		return 0, err
	}
	b, err := binary.Read[uint8](r, typeName)
	if err != nil {
		return 0, err
	}
	if e := E(b); e.Valid() {
		return e, nil
	}
	return 0, &EnumError{Enum: typeName, Ordinal: int(b)}
}

func writeEnum[E enum](w *binary.Writer, typeName string, e E) error {
	if !e.Valid() {
		return &EnumError{Enum: typeName, Ordinal: int(e)}
	}
	return binary.Write(w, uint8(e), typeName)
}

// CompressionAttribute holds a Compression ("compression").
type CompressionAttribute struct{ Value Compression }

func (*CompressionAttribute) TypeName() string { return "compression" }

func (a *CompressionAttribute) Clone() Attribute { c := *a; return &c }

func (a *CompressionAttribute) readValue(r *binary.Reader, size int32, _ FormatVersion) (err error) {
	a.Value, err = readEnum[Compression](r, a.TypeName(), size)
	return err
}

func (a *CompressionAttribute) writeValue(w *binary.Writer, _ FormatVersion) error {
	return writeEnum(w, a.TypeName(), a.Value)
}

// LineOrderAttribute holds a LineOrder ("lineOrder").
type LineOrderAttribute struct{ Value LineOrder }

func (*LineOrderAttribute) TypeName() string { return "lineOrder" }

func (a *LineOrderAttribute) Clone() Attribute { c := *a; return &c }

func (a *LineOrderAttribute) readValue(r *binary.Reader, size int32, _ FormatVersion) (err error) {
	a.Value, err = readEnum[LineOrder](r, a.TypeName(), size)
	return err
}

func (a *LineOrderAttribute) writeValue(w *binary.Writer, _ FormatVersion) error {
	return writeEnum(w, a.TypeName(), a.Value)
}

// EnvMapAttribute holds an EnvMap ("envmap").
type EnvMapAttribute struct{ Value EnvMap }

func (*EnvMapAttribute) TypeName() string { return "envmap" }

func (a *EnvMapAttribute) Clone() Attribute { c := *a; return &c }

func (a *EnvMapAttribute) readValue(r *binary.Reader, size int32, _ FormatVersion) (err error) {
	a.Value, err = readEnum[EnvMap](r, a.TypeName(), size)
	return err
}

func (a *EnvMapAttribute) writeValue(w *binary.Writer, _ FormatVersion) error {
	return writeEnum(w, a.TypeName(), a.Value)
}
