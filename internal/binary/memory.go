package binary

import (
	"errors"
	"io"
)

var errNegativePosition = errors.New("binary: negative position")

// Memory is an in-memory seekable byte stream. Writes past the end grow the
// buffer; seeking past the end and writing fills the gap with zeros.
type Memory struct {
	data []byte
	pos  int64
}

// NewMemory creates a stream over b, positioned at the start. The stream
// takes ownership of b.
func NewMemory(b []byte) *Memory {
	return &Memory{data: b}
}

// Bytes returns the stream contents.
func (m *Memory) Bytes() []byte {
	return m.data
}

// Len returns the stream length in bytes.
func (m *Memory) Len() int {
	return len(m.data)
}

// Read implements io.Reader.
func (m *Memory) Read(p []byte) (int, error) {
	if m.pos >= int64(len(m.data)) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, m.data[m.pos:])
	m.pos += int64(n)
	return n, nil
}

// Write implements io.Writer.
func (m *Memory) Write(p []byte) (int, error) {
	end := m.pos + int64(len(p))
	if old := int64(len(m.data)); end > old {
		if end > int64(cap(m.data)) {
			grown := make([]byte, end, max(end, 2*int64(cap(m.data))))
			copy(grown, m.data)
			m.data = grown
		} else {
			m.data = m.data[:end]
			if m.pos > old {
				clear(m.data[old:m.pos])
			}
		}
	}
	copy(m.data[m.pos:], p)
	m.pos = end
	return len(p), nil
}

// Seek implements io.Seeker.
func (m *Memory) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = m.pos + offset
	case io.SeekEnd:
		abs = int64(len(m.data)) + offset
	default:
		return 0, errors.New("binary: invalid whence")
	}
	if abs < 0 {
		return 0, errNegativePosition
	}
	m.pos = abs
	return abs, nil
}
