package exrheader

import (
	"github.com/rs/zerolog"
)

// Option configures how headers are read.
//
// Options use the functional options pattern:
//
//	h, v, err := exrheader.ReadHeader(r,
//	    exrheader.WithStrictTypes(),
//	    exrheader.WithLogger(logger),
//	)
type Option func(*readOptions)

// readOptions holds configuration for reading headers.
type readOptions struct {
	registry    *Registry      // Type name lookup; nil means the built-ins
	logger      zerolog.Logger // Per-attribute debug events
	strictTypes bool           // Unknown type names are an error
	validate    bool           // Run Header.Validate after parsing
}

// defaultOptions returns the default configuration.
func defaultOptions() *readOptions {
	return &readOptions{
		registry: defaultRegistry,
		logger:   zerolog.Nop(),
	}
}

func applyOptions(opts []Option) *readOptions {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithRegistry resolves attribute type names in reg instead of the built-in
// registry. Use it to decode application-specific types:
//
//	reg := exrheader.NewDefaultRegistry()
//	_ = reg.Register("studioShotInfo", exrheader.OpaqueConstructor("studioShotInfo"))
//	f, err := exrheader.Open("shot.exr", exrheader.WithRegistry(reg))
func WithRegistry(reg *Registry) Option {
	return func(o *readOptions) {
		if reg != nil {
			o.registry = reg
		}
	}
}

// WithLogger sends a debug event for every decoded attribute and a warning
// whenever an unknown type is kept as an OpaqueAttribute.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *readOptions) {
		o.logger = logger
	}
}

// WithStrictTypes rejects attributes whose type name is not registered.
//
// By default such attributes are kept verbatim as *OpaqueAttribute values,
// so that a header written by a newer library still round-trips. With
// strict types the parse fails with ErrUnknownAttributeType.
func WithStrictTypes() Option {
	return func(o *readOptions) {
		o.strictTypes = true
	}
}

// WithValidation runs Header.Validate after parsing, treating the header as
// tiled when the version word says so.
func WithValidation() Option {
	return func(o *readOptions) {
		o.validate = true
	}
}
