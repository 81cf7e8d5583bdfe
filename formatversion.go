package exrheader

import (
	"bytes"
	"fmt"
	"strings"
)

// Magic is the number stored in the first four bytes of every file.
const Magic uint32 = 20000630

var magicBytes = []byte{0x76, 0x2f, 0x31, 0x01}

// IsMagic reports whether b starts with the file magic number.
func IsMagic(b []byte) bool {
	return bytes.HasPrefix(b, magicBytes)
}

// SupportedVersion is the only version number this package reads or writes.
const SupportedVersion = 2

// Feature flags stored in the upper bits of the version word.
const (
	FlagTiled     FormatVersion = 0x00000200
	FlagLongNames FormatVersion = 0x00000400
	FlagNonImage  FormatVersion = 0x00000800
	FlagMultiPart FormatVersion = 0x00001000

	// AllFlags is the mask of every recognized flag.
	AllFlags = FlagTiled | FlagLongNames | FlagNonImage | FlagMultiPart

	// SupportedFlags are the flags a single-part image file may carry.
	SupportedFlags = FlagTiled | FlagLongNames
)

// Maximum attribute, type and channel name lengths in bytes.
const (
	ShortNameLength = 31
	LongNameLength  = 255
)

const versionMask = 0x000000ff

// FormatVersion is the packed version word following the magic number: the
// version number in the low 8 bits and feature flags above it.
type FormatVersion uint32

// NewFormatVersion packs SupportedVersion with flags.
func NewFormatVersion(flags FormatVersion) FormatVersion {
	return SupportedVersion | flags&^versionMask
}

// Number returns the version number.
func (v FormatVersion) Number() int {
	return int(v & versionMask)
}

// Flags returns the feature flag bits.
func (v FormatVersion) Flags() FormatVersion {
	return v &^ versionMask
}

// IsTiled reports whether the file is a single-part tiled image.
func (v FormatVersion) IsTiled() bool { return v&FlagTiled != 0 }

// HasLongNames reports whether names may exceed ShortNameLength bytes.
func (v FormatVersion) HasLongNames() bool { return v&FlagLongNames != 0 }

// IsNonImage reports whether the file carries deep data.
func (v FormatVersion) IsNonImage() bool { return v&FlagNonImage != 0 }

// IsMultiPart reports whether the file has more than one part.
func (v FormatVersion) IsMultiPart() bool { return v&FlagMultiPart != 0 }

// MaxNameLength returns the name length bound for this version word.
func (v FormatVersion) MaxNameLength() int {
	if v.HasLongNames() {
		return LongNameLength
	}
	return ShortNameLength
}

// Validate checks that the version number is supported and that no flag
// outside SupportedFlags is set.
func (v FormatVersion) Validate() error {
	if v.Number() != SupportedVersion {
		return fmt.Errorf("version %d, want %d: %w", v.Number(), SupportedVersion, ErrUnsupportedVersion)
	}
	if extra := v.Flags() &^ SupportedFlags; extra != 0 {
		return fmt.Errorf("flags 0x%08x: %w", uint32(extra), ErrUnsupportedVersion)
	}
	return nil
}

func (v FormatVersion) String() string {
	var names []string
	for _, f := range []struct {
		flag FormatVersion
		name string
	}{
		{FlagTiled, "tiled"},
		{FlagLongNames, "long-names"},
		{FlagNonImage, "non-image"},
		{FlagMultiPart, "multipart"},
	} {
		if v&f.flag != 0 {
			names = append(names, f.name)
		}
	}
	if unknown := v.Flags() &^ AllFlags; unknown != 0 {
		names = append(names, fmt.Sprintf("0x%x", uint32(unknown)))
	}
	if len(names) == 0 {
		return fmt.Sprintf("%d", v.Number())
	}
	return fmt.Sprintf("%d (%s)", v.Number(), strings.Join(names, ", "))
}
