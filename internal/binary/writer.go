package binary

import (
	"fmt"
	"io"
	"strings"

	"github.com/simonhull/exrheader/internal/types"
)

// Writer writes primitives to a seekable stream.
//
// Writer keeps no position of its own; Position asks the stream, so it can
// never drift from what was actually written. A Writer is not safe for
// concurrent use.
type Writer struct {
	s   io.WriteSeeker
	buf [8]byte
}

// NewWriter creates a Writer over s.
func NewWriter(s io.WriteSeeker) *Writer {
	return &Writer{s: s}
}

// Position returns the current offset of the underlying stream.
func (w *Writer) Position() (int64, error) {
	pos, err := w.s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, &types.StreamError{Op: "seek", Offset: -1, Err: types.Transport(err)}
	}
	return pos, nil
}

// Seek moves the stream to the absolute offset pos.
func (w *Writer) Seek(pos int64) error {
	if _, err := w.s.Seek(pos, io.SeekStart); err != nil {
		return &types.StreamError{Op: "seek", Offset: pos, Err: types.Transport(err)}
	}
	return nil
}

// WriteBytes writes b in full.
func (w *Writer) WriteBytes(b []byte, what string) error {
	if len(b) == 0 {
		return nil
	}
	n, err := w.s.Write(b)
	if err == nil && n < len(b) {
		err = io.ErrShortWrite
	}
	if err != nil {
		off := int64(-1)
		if pos, perr := w.s.Seek(0, io.SeekCurrent); perr == nil {
			off = pos - int64(n)
		}
		return &types.StreamError{Op: "write", What: what, Offset: off, Err: types.Transport(err)}
	}
	return nil
}

// WriteString writes the UTF-8 bytes of s without a terminator.
func (w *Writer) WriteString(s string, what string) error {
	return w.WriteBytes([]byte(s), what)
}

// WriteNullTerminated writes s followed by a zero byte. s must not be longer
// than maxLength bytes and must not contain a zero byte itself, or it would
// read back truncated.
func (w *Writer) WriteNullTerminated(s string, maxLength int, what string) error {
	if len(s) > maxLength {
		return &types.NameTooLongError{Max: maxLength, Length: len(s)}
	}
	if i := strings.IndexByte(s, 0); i >= 0 {
		return fmt.Errorf("%s %q has a zero byte at %d: %w", what, s, i, types.ErrInvalidHeader)
	}
	if err := w.WriteString(s, what); err != nil {
		return err
	}
	return Write[uint8](w, 0, what)
}

// WriteBool writes true as 1 and false as 0.
func (w *Writer) WriteBool(v bool, what string) error {
	var b uint8
	if v {
		b = 1
	}
	return Write(w, b, what)
}

// Pad writes n zero bytes.
func (w *Writer) Pad(n int, what string) error {
	var zeros [bufferLen]byte
	for n > 0 {
		chunk := min(n, len(zeros))
		if err := w.WriteBytes(zeros[:chunk], what); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// Write writes v in little-endian byte order.
func Write[T Number](w *Writer, v T, what string) error {
	n := SizeOf[T]()
	EncodeLE(w.buf[:n], v)
	return w.WriteBytes(w.buf[:n], what)
}
