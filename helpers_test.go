package exrheader

import (
	"bytes"
	"encoding/binary"
)

// headerBytes assembles raw header bytes for tests.
type headerBytes struct {
	bytes.Buffer
}

func newHeaderBytes(version uint32) *headerBytes {
	b := &headerBytes{}
	b.Write([]byte{0x76, 0x2f, 0x31, 0x01})
	b.u32(version)
	return b
}

func (b *headerBytes) u32(v uint32) *headerBytes {
	_ = binary.Write(&b.Buffer, binary.LittleEndian, v)
	return b
}

func (b *headerBytes) i32(v int32) *headerBytes {
	_ = binary.Write(&b.Buffer, binary.LittleEndian, v)
	return b
}

func (b *headerBytes) cstr(s string) *headerBytes {
	b.WriteString(s)
	b.WriteByte(0)
	return b
}

// attr appends one attribute record with an explicit declared size.
func (b *headerBytes) attr(name, typeName string, size int32, value []byte) *headerBytes {
	b.cstr(name).cstr(typeName).i32(size)
	b.Write(value)
	return b
}

func (b *headerBytes) end() []byte {
	b.WriteByte(0)
	return b.Bytes()
}

func le32(vs ...int32) []byte {
	var buf bytes.Buffer
	for _, v := range vs {
		_ = binary.Write(&buf, binary.LittleEndian, v)
	}
	return buf.Bytes()
}

// channelRecord encodes one chlist entry.
func channelRecord(name string, pixelType int32, pLinear byte, reserved [3]byte, xs, ys int32) []byte {
	var buf bytes.Buffer
	buf.WriteString(name)
	buf.WriteByte(0)
	buf.Write(le32(pixelType))
	buf.WriteByte(pLinear)
	buf.Write(reserved[:])
	buf.Write(le32(xs, ys))
	return buf.Bytes()
}
