package exrheader

import (
	"fmt"

	"github.com/simonhull/exrheader/internal/binary"
)

// LevelMode selects how many resolution levels a tiled image stores.
type LevelMode uint8

const (
	OneLevel LevelMode = iota
	MipmapLevels
	RipmapLevels
	numLevelModes
)

func (m LevelMode) Valid() bool { return m < numLevelModes }

func (m LevelMode) String() string {
	switch m {
	case OneLevel:
		return "ONE_LEVEL"
	case MipmapLevels:
		return "MIPMAP_LEVELS"
	case RipmapLevels:
		return "RIPMAP_LEVELS"
	}
	return fmt.Sprintf("LevelMode(%d)", uint8(m))
}

// RoundingMode selects how level sizes are rounded when halving.
type RoundingMode uint8

const (
	RoundDown RoundingMode = iota
	RoundUp
	numRoundingModes
)

func (m RoundingMode) Valid() bool { return m < numRoundingModes }

func (m RoundingMode) String() string {
	switch m {
	case RoundDown:
		return "ROUND_DOWN"
	case RoundUp:
		return "ROUND_UP"
	}
	return fmt.Sprintf("RoundingMode(%d)", uint8(m))
}

// roundingFromNibble maps the high nibble of the mode byte. Some writers
// store round-up as 2 instead of 1.
func roundingFromNibble(n uint8) (RoundingMode, bool) {
	switch n {
	case 0:
		return RoundDown, true
	case 1, 2:
		return RoundUp, true
	}
	return 0, false
}

// TileDescription gives the tile size and level layout of a tiled image.
type TileDescription struct {
	XSize    uint32
	YSize    uint32
	Mode     LevelMode
	Rounding RoundingMode

	// rawRounding is the non-canonical nibble a decoded value carried, so
	// that it re-encodes to the same byte. Zero means canonical.
	rawRounding uint8
}

func (t TileDescription) modeByte() uint8 {
	nibble := uint8(t.Rounding)
	if r, ok := roundingFromNibble(t.rawRounding); ok && t.rawRounding != 0 && r == t.Rounding {
		nibble = t.rawRounding
	}
	return uint8(t.Mode)&0x0f | nibble<<4
}

func (t TileDescription) String() string {
	return fmt.Sprintf("%dx%d %s %s", t.XSize, t.YSize, t.Mode, t.Rounding)
}

// TileDescriptionAttribute holds a TileDescription ("tiledesc").
type TileDescriptionAttribute struct{ Value TileDescription }

func (*TileDescriptionAttribute) TypeName() string { return "tiledesc" }

func (a *TileDescriptionAttribute) Clone() Attribute { c := *a; return &c }

func (a *TileDescriptionAttribute) readValue(r *binary.Reader, size int32, _ FormatVersion) error {
	if err := checkSize(a.TypeName(), size, 9); err != nil {
		return err
	}
	cr := binary.NewChainReader(r)
	xSize := binary.ReadChained[int32](cr, "tile x size")
	ySize := binary.ReadChained[int32](cr, "tile y size")
	mode := binary.ReadChained[uint8](cr, "tile level mode")
	if err := cr.Err(); err != nil {
		return err
	}

	if xSize < 0 || ySize < 0 {
		return fmt.Errorf("tile size %dx%d: %w", xSize, ySize, ErrNegativeDimension)
	}
	level := LevelMode(mode & 0x0f)
	if !level.Valid() {
		return &EnumError{Enum: "tile level mode", Ordinal: int(level)}
	}
	nibble := mode >> 4
	rounding, ok := roundingFromNibble(nibble)
	if !ok {
		return &EnumError{Enum: "tile rounding mode", Ordinal: int(nibble)}
	}

	a.Value = TileDescription{XSize: uint32(xSize), YSize: uint32(ySize), Mode: level, Rounding: rounding}
	if nibble != uint8(rounding) {
		a.Value.rawRounding = nibble
	}
	return nil
}

func (a *TileDescriptionAttribute) writeValue(w *binary.Writer, _ FormatVersion) error {
	t := a.Value
	if t.XSize > 1<<31-1 || t.YSize > 1<<31-1 {
		return fmt.Errorf("tile size %dx%d: %w", t.XSize, t.YSize, ErrNegativeDimension)
	}
	if !t.Mode.Valid() {
		return &EnumError{Enum: "tile level mode", Ordinal: int(t.Mode)}
	}
	if !t.Rounding.Valid() {
		return &EnumError{Enum: "tile rounding mode", Ordinal: int(t.Rounding)}
	}
	if err := writeElems(w, "tile size", t.XSize, t.YSize); err != nil {
		return err
	}
	return binary.Write(w, t.modeByte(), "tile level mode")
}
