// Package types provides the error values shared by every layer of the
// header codec.
//
// Each failure kind has a sentinel (compare with errors.Is) and most kinds
// also have a structured error carrying the offending offset, sizes or
// ordinal (extract with errors.As).
package types

import (
	"errors"
	"fmt"
)

// Stream-corruption errors. None of these are retried: the same bytes
// always reproduce the same failure.
var (
	ErrBadMagic              = errors.New("not an OpenEXR file: bad magic number")
	ErrUnsupportedVersion    = errors.New("unsupported file version or features")
	ErrNameTooLong           = errors.New("name exceeds maximum length")
	ErrMissingNullTerminator = errors.New("missing null terminator")
	ErrSizeMismatch          = errors.New("declared size does not match consumed bytes")
	ErrInvalidEnumOrdinal    = errors.New("invalid enum ordinal")
	ErrInvalidChannelRecord  = errors.New("invalid channel record")
	ErrNegativeDimension     = errors.New("negative or overflowing dimension")
	ErrPrematureEndOfStream  = errors.New("premature end of stream")
	ErrTransport             = errors.New("transport failure")
)

// Configuration and API-misuse errors.
var (
	ErrUnknownAttributeType  = errors.New("unknown attribute type")
	ErrDuplicateRegistration = errors.New("attribute type already registered")
	ErrInvalidTypeName       = errors.New("invalid attribute type name")
	ErrTypeMismatch          = errors.New("attribute type mismatch")
	ErrInvalidHeader         = errors.New("invalid header")
)

// StreamError reports a failure of the underlying byte stream.
//
// Err is either ErrPrematureEndOfStream or an error wrapping both
// ErrTransport and the cause returned by the stream.
type StreamError struct {
	Op     string // "read", "write", "seek"
	What   string // what was being read or written
	Offset int64
	Err    error
}

func (e *StreamError) Error() string {
	if e.What != "" {
		return fmt.Sprintf("%s %s at offset %d: %v", e.Op, e.What, e.Offset, e.Err)
	}
	return fmt.Sprintf("%s at offset %d: %v", e.Op, e.Offset, e.Err)
}

func (e *StreamError) Unwrap() error { return e.Err }

// SizeMismatchError is returned when an attribute value did not consume
// exactly the number of bytes declared for it.
type SizeMismatchError struct {
	TypeName string
	Declared int64
	Consumed int64
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("%s: declared size %d, consumed %d", e.TypeName, e.Declared, e.Consumed)
}

func (e *SizeMismatchError) Is(target error) bool { return target == ErrSizeMismatch }

// EnumError is returned for an ordinal outside an enum's domain.
type EnumError struct {
	Enum    string
	Ordinal int
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("%s: invalid ordinal %d", e.Enum, e.Ordinal)
}

func (e *EnumError) Is(target error) bool { return target == ErrInvalidEnumOrdinal }

// NameTooLongError is returned when a null-terminated name has no
// terminator within Max+1 bytes, or when a name being written is longer
// than Max bytes.
type NameTooLongError struct {
	Max    int
	Length int // 0 when unknown (terminator not found)
	Err    error
}

func (e *NameTooLongError) Error() string {
	if e.Length > 0 {
		return fmt.Sprintf("name of %d bytes exceeds maximum length %d", e.Length, e.Max)
	}
	return fmt.Sprintf("name exceeds maximum length %d", e.Max)
}

func (e *NameTooLongError) Is(target error) bool { return target == ErrNameTooLong }

func (e *NameTooLongError) Unwrap() error { return e.Err }

// AttributeError adds header context to a failure decoding or encoding one
// attribute.
type AttributeError struct {
	Name     string
	TypeName string
	Offset   int64
	Err      error
}

func (e *AttributeError) Error() string {
	if e.TypeName != "" {
		return fmt.Sprintf("attribute %q (%s) at offset %d: %v", e.Name, e.TypeName, e.Offset, e.Err)
	}
	return fmt.Sprintf("attribute %q at offset %d: %v", e.Name, e.Offset, e.Err)
}

func (e *AttributeError) Unwrap() error { return e.Err }

// HeaderError is returned when the file-level structure is invalid.
type HeaderError struct {
	Path   string
	Reason string
	Offset int64
	Err    error
}

func (e *HeaderError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: invalid header at offset %d: %s", e.Path, e.Offset, e.Reason)
	}
	return fmt.Sprintf("invalid header at offset %d: %s", e.Offset, e.Reason)
}

func (e *HeaderError) Unwrap() error { return e.Err }

// RegistryError is returned by attribute registry operations.
type RegistryError struct {
	TypeName string
	Err      error
}

func (e *RegistryError) Error() string {
	return fmt.Sprintf("attribute type %q: %v", e.TypeName, e.Err)
}

func (e *RegistryError) Unwrap() error { return e.Err }

// Transport wraps a cause returned by the underlying stream so that it
// matches both ErrTransport and the cause.
func Transport(cause error) error {
	return fmt.Errorf("%w: %w", ErrTransport, cause)
}
