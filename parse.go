package exrheader

import (
	"errors"
	"fmt"
	"io"

	"github.com/simonhull/exrheader/internal/binary"
)

// ReadHeader reads the magic number, the version word and the attribute
// table from r. On success r is positioned at the first byte after the
// header, where the offset table begins.
//
// Any malformed byte aborts the parse; no partial header is returned.
//
//	h, version, err := exrheader.ReadHeader(f)
//	if errors.Is(err, exrheader.ErrBadMagic) {
//		// not an image file
//	}
func ReadHeader(r io.ReadSeeker, opts ...Option) (*Header, FormatVersion, error) {
	o := applyOptions(opts)
	br := binary.NewReader(r)

	v, err := readPreamble(br)
	if err != nil {
		return nil, 0, err
	}
	h, err := readAttributes(br, v, o)
	if err != nil {
		return nil, 0, err
	}

	if o.validate {
		if err := h.Validate(v.IsTiled()); err != nil {
			return nil, 0, err
		}
	}
	return h, v, nil
}

func readPreamble(r *binary.Reader) (FormatVersion, error) {
	start, err := r.Position()
	if err != nil {
		return 0, err
	}

	magic, err := binary.Read[uint32](r, "magic number")
	if err != nil {
		return 0, err
	}
	if magic != Magic {
		return 0, &HeaderError{
			Reason: fmt.Sprintf("bad magic number 0x%08x", magic),
			Offset: start,
			Err:    ErrBadMagic,
		}
	}

	word, err := binary.Read[uint32](r, "version")
	if err != nil {
		return 0, err
	}
	v := FormatVersion(word)
	if err := v.Validate(); err != nil {
		return 0, &HeaderError{Reason: err.Error(), Offset: start + 4, Err: err}
	}
	return v, nil
}

func readAttributes(r *binary.Reader, v FormatVersion, o *readOptions) (*Header, error) {
	maxName := v.MaxNameLength()
	h := NewHeader()

	for {
		offset, err := r.Position()
		if err != nil {
			return nil, err
		}

		name, err := r.ReadNullTerminated(maxName, "attribute name")
		if err != nil {
			return nil, &AttributeError{Offset: offset, Err: err}
		}
		if name == "" {
			break
		}

		a, size, err := readAttribute(r, v, o, name)
		if err != nil {
			var typeName string
			if a != nil {
				typeName = a.TypeName()
			}
			return nil, &AttributeError{Name: name, TypeName: typeName, Offset: offset, Err: err}
		}

		if err := h.Set(name, a); err != nil {
			return nil, &AttributeError{Name: name, TypeName: a.TypeName(), Offset: offset, Err: err}
		}

		o.logger.Debug().
			Str("name", name).
			Str("type", a.TypeName()).
			Int32("size", size).
			Int64("offset", offset).
			Msg("attribute decoded")
	}
	return h, nil
}

// readAttribute reads the type name, size and value that follow an
// attribute name. The attribute is returned alongside a decode error so the
// caller can report its type.
func readAttribute(r *binary.Reader, v FormatVersion, o *readOptions, name string) (Attribute, int32, error) {
	typeName, err := r.ReadNullTerminated(v.MaxNameLength(), "attribute type")
	if err != nil {
		return nil, 0, err
	}
	size, err := binary.Read[int32](r, "attribute size")
	if err != nil {
		return nil, 0, err
	}

	a, err := o.registry.New(typeName)
	switch {
	case err == nil:
		if a.TypeName() != typeName {
			return nil, size, fmt.Errorf("registry built %s for %s: %w", a.TypeName(), typeName, ErrTypeMismatch)
		}
	case errors.Is(err, ErrUnknownAttributeType) && !o.strictTypes:
		o.logger.Warn().
			Str("name", name).
			Str("type", typeName).
			Int32("size", size).
			Msg("unknown attribute type, keeping raw bytes")
		a = NewOpaque(typeName)
	default:
		return nil, size, err
	}

	if err := decodeAttribute(r, a, size, v); err != nil {
		return a, size, err
	}
	return a, size, nil
}

// WriteHeader writes the magic number, v and the attributes of h to w in
// table order, followed by the terminating empty name. Each attribute's
// size is measured from the bytes actually written.
//
// Use h.RequiredVersion() for v unless the file needs extra flags.
func WriteHeader(w io.WriteSeeker, h *Header, v FormatVersion, opts ...Option) error {
	o := applyOptions(opts)
	if err := v.Validate(); err != nil {
		return err
	}

	bw := binary.NewWriter(w)
	if err := binary.Write(bw, Magic, "magic number"); err != nil {
		return err
	}
	if err := binary.Write(bw, uint32(v), "version"); err != nil {
		return err
	}

	maxName := v.MaxNameLength()
	for name, a := range h.All() {
		offset, err := bw.Position()
		if err != nil {
			return err
		}
		if err := writeAttribute(bw, name, a, v, maxName); err != nil {
			return &AttributeError{Name: name, TypeName: a.TypeName(), Offset: offset, Err: err}
		}
		o.logger.Debug().
			Str("name", name).
			Str("type", a.TypeName()).
			Int64("offset", offset).
			Msg("attribute encoded")
	}
	return bw.WriteNullTerminated("", maxName, "header terminator")
}

func writeAttribute(w *binary.Writer, name string, a Attribute, v FormatVersion, maxName int) error {
	if !validTypeName(a.TypeName()) {
		return fmt.Errorf("type %q: %w", a.TypeName(), ErrInvalidTypeName)
	}
	if err := w.WriteNullTerminated(name, maxName, "attribute name"); err != nil {
		return err
	}
	if err := w.WriteNullTerminated(a.TypeName(), maxName, "attribute type"); err != nil {
		return err
	}
	return encodeAttribute(w, a, v)
}

// Marshal encodes h, including the magic number and version word.
func Marshal(h *Header, v FormatVersion) ([]byte, error) {
	m := binary.NewMemory(nil)
	if err := WriteHeader(m, h, v); err != nil {
		return nil, err
	}
	return m.Bytes(), nil
}

// Unmarshal decodes a header from data. Bytes after the header terminator
// are ignored.
func Unmarshal(data []byte, opts ...Option) (*Header, FormatVersion, error) {
	return ReadHeader(binary.NewMemory(data), opts...)
}
