// Package binary provides the little-endian primitive I/O used by the header
// codec: fixed-width numbers, exact-length blobs and bounded null-terminated
// strings over any seekable byte stream.
package binary

import (
	"errors"
	"fmt"
	"io"

	"github.com/simonhull/exrheader/internal/types"
)

// bufferLen is the size of the scratch buffer used for primitives and short
// strings. Longer payloads are copied through it in several passes.
const bufferLen = 512

// Reader reads primitives from a seekable stream.
//
// Reader never reads ahead: after every call the stream is positioned
// exactly past the bytes consumed, so Position always reflects the true
// stream state. A Reader is not safe for concurrent use.
type Reader struct {
	s   io.ReadSeeker
	buf []byte
}

// NewReader creates a Reader over s.
func NewReader(s io.ReadSeeker) *Reader {
	return newReaderSize(s, bufferLen)
}

func newReaderSize(s io.ReadSeeker, size int) *Reader {
	if size < 8 {
		size = 8
	}
	return &Reader{s: s, buf: make([]byte, size)}
}

// Position returns the current offset of the underlying stream.
func (r *Reader) Position() (int64, error) {
	pos, err := r.s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, &types.StreamError{Op: "seek", Offset: -1, Err: types.Transport(err)}
	}
	return pos, nil
}

// ReadFull fills p from the stream.
func (r *Reader) ReadFull(p []byte, what string) error {
	n, err := io.ReadFull(r.s, p)
	if err == nil {
		return nil
	}
	off := int64(-1)
	if pos, perr := r.s.Seek(0, io.SeekCurrent); perr == nil {
		off = pos - int64(n)
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &types.StreamError{Op: "read", What: what, Offset: off, Err: types.ErrPrematureEndOfStream}
	}
	return &types.StreamError{Op: "read", What: what, Offset: off, Err: types.Transport(err)}
}

// ReadBytes reads exactly n bytes.
//
// Payloads longer than the scratch buffer are copied through it in several
// passes and the result grows only as data arrives, so a corrupt length on a
// truncated stream fails without allocating the full amount.
func (r *Reader) ReadBytes(n int, what string) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("read %s: negative length %d: %w", what, n, types.ErrNegativeDimension)
	}
	if n <= len(r.buf) {
		out := make([]byte, n)
		if err := r.ReadFull(out, what); err != nil {
			return nil, err
		}
		return out, nil
	}

	out := make([]byte, 0, len(r.buf))
	for len(out) < n {
		chunk := r.buf[:min(len(r.buf), n-len(out))]
		if err := r.ReadFull(chunk, what); err != nil {
			return nil, err
		}
		out = append(out, chunk...)
	}
	return out, nil
}

// ReadString consumes exactly length bytes and returns them as a UTF-8
// string. Multi-byte sequences may yield fewer characters than bytes.
func (r *Reader) ReadString(length int, what string) (string, error) {
	if length <= len(r.buf) && length >= 0 {
		if err := r.ReadFull(r.buf[:length], what); err != nil {
			return "", err
		}
		return string(r.buf[:length]), nil
	}
	b, err := r.ReadBytes(length, what)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadNullTerminated reads a zero-terminated UTF-8 string of at most
// maxLength bytes. Up to maxLength+1 bytes are scanned for the terminator;
// if none is found the error matches both types.ErrNameTooLong and
// types.ErrMissingNullTerminator.
func (r *Reader) ReadNullTerminated(maxLength int, what string) (string, error) {
	var spill []byte
	k := 0
	for i := 0; i <= maxLength; i++ {
		if k == len(r.buf) {
			spill = append(spill, r.buf...)
			k = 0
		}
		if err := r.ReadFull(r.buf[k:k+1], what); err != nil {
			return "", err
		}
		if r.buf[k] == 0 {
			if spill == nil {
				return string(r.buf[:k]), nil
			}
			return string(append(spill, r.buf[:k]...)), nil
		}
		k++
	}
	return "", &types.NameTooLongError{Max: maxLength, Err: types.ErrMissingNullTerminator}
}

// Read reads a little-endian value of type T.
func Read[T Number](r *Reader, what string) (T, error) {
	n := SizeOf[T]()
	if err := r.ReadFull(r.buf[:n], what); err != nil {
		var zero T
		return zero, err
	}
	return DecodeLE[T](r.buf[:n]), nil
}

// ChainReader allows chaining multiple reads with deferred error checking.
// Once a read fails every later read is skipped and returns the zero value.
type ChainReader struct {
	*Reader
	err error
}

// NewChainReader creates a new ChainReader.
func NewChainReader(r *Reader) *ChainReader {
	return &ChainReader{Reader: r}
}

// ReadChained reads a value, accumulating any error in cr.
func ReadChained[T Number](cr *ChainReader, what string) T {
	if cr.err != nil {
		var zero T
		return zero
	}
	v, err := Read[T](cr.Reader, what)
	if err != nil {
		cr.err = err
	}
	return v
}

// Bool reads a boolean byte, accumulating any error. Only 0 and 1 are
// accepted, so a decoded value always re-encodes to the byte it came from.
func (cr *ChainReader) Bool(what string) bool {
	v := ReadChained[uint8](cr, what)
	if v > 1 && cr.err == nil {
		cr.err = &types.EnumError{Enum: what, Ordinal: int(v)}
	}
	return v == 1
}

// Err returns the first error encountered, if any.
func (cr *ChainReader) Err() error {
	return cr.err
}
