package exrheader

import (
	"errors"

	"github.com/simonhull/exrheader/internal/types"
)

// Sentinel errors. Test for a failure kind with errors.Is.
var (
	ErrBadMagic              = types.ErrBadMagic
	ErrUnsupportedVersion    = types.ErrUnsupportedVersion
	ErrNameTooLong           = types.ErrNameTooLong
	ErrMissingNullTerminator = types.ErrMissingNullTerminator
	ErrSizeMismatch          = types.ErrSizeMismatch
	ErrInvalidEnumOrdinal    = types.ErrInvalidEnumOrdinal
	ErrInvalidChannelRecord  = types.ErrInvalidChannelRecord
	ErrNegativeDimension     = types.ErrNegativeDimension
	ErrPrematureEndOfStream  = types.ErrPrematureEndOfStream
	ErrTransport             = types.ErrTransport

	ErrUnknownAttributeType  = types.ErrUnknownAttributeType
	ErrDuplicateRegistration = types.ErrDuplicateRegistration
	ErrInvalidTypeName       = types.ErrInvalidTypeName
	ErrTypeMismatch          = types.ErrTypeMismatch
	ErrInvalidHeader         = types.ErrInvalidHeader
)

// StreamError is an alias to types.StreamError.
// Re-exporting from internal/types to maintain public API.
type StreamError = types.StreamError

// SizeMismatchError is an alias to types.SizeMismatchError.
// Re-exporting from internal/types to maintain public API.
type SizeMismatchError = types.SizeMismatchError

// EnumError is an alias to types.EnumError.
// Re-exporting from internal/types to maintain public API.
type EnumError = types.EnumError

// NameTooLongError is an alias to types.NameTooLongError.
// Re-exporting from internal/types to maintain public API.
type NameTooLongError = types.NameTooLongError

// AttributeError is an alias to types.AttributeError.
// Re-exporting from internal/types to maintain public API.
type AttributeError = types.AttributeError

// HeaderError is an alias to types.HeaderError.
// Re-exporting from internal/types to maintain public API.
type HeaderError = types.HeaderError

// RegistryError is an alias to types.RegistryError.
// Re-exporting from internal/types to maintain public API.
type RegistryError = types.RegistryError

// IsStreamCorruption reports whether err was caused by malformed bytes, as
// opposed to a transport failure or a configuration mistake. Re-reading the
// same bytes always reproduces a stream-corruption error.
func IsStreamCorruption(err error) bool {
	for _, target := range []error{
		ErrBadMagic, ErrUnsupportedVersion, ErrNameTooLong, ErrMissingNullTerminator,
		ErrSizeMismatch, ErrInvalidEnumOrdinal, ErrInvalidChannelRecord,
		ErrNegativeDimension, ErrPrematureEndOfStream,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
