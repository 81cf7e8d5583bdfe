package binary

import (
	"encoding/binary"
	"math"
)

// Number is the set of fixed-width values the header format stores.
// Every multi-byte value is little-endian regardless of host byte order.
type Number interface {
	uint8 | int8 | uint16 | int16 | uint32 | int32 | uint64 | int64 | float32 | float64
}

// SizeOf returns the encoded width of T in bytes.
func SizeOf[T Number]() int {
	var zero T
	switch any(zero).(type) {
	case uint8, int8:
		return 1
	case uint16, int16:
		return 2
	case uint32, int32, float32:
		return 4
	default:
		return 8
	}
}

// DecodeLE decodes a T from the first SizeOf[T]() bytes of b.
func DecodeLE[T Number](b []byte) T {
	var zero T
	var v any
	switch any(zero).(type) {
	case uint8:
		v = b[0]
	case int8:
		v = int8(b[0])
	case uint16:
		v = binary.LittleEndian.Uint16(b)
	case int16:
		v = int16(binary.LittleEndian.Uint16(b))
	case uint32:
		v = binary.LittleEndian.Uint32(b)
	case int32:
		v = int32(binary.LittleEndian.Uint32(b))
	case uint64:
		v = binary.LittleEndian.Uint64(b)
	case int64:
		v = int64(binary.LittleEndian.Uint64(b))
	case float32:
		v = math.Float32frombits(binary.LittleEndian.Uint32(b))
	case float64:
		v = math.Float64frombits(binary.LittleEndian.Uint64(b))
	}
	return v.(T)
}

// EncodeLE stores v into the first SizeOf[T]() bytes of b.
func EncodeLE[T Number](b []byte, v T) {
	switch x := any(v).(type) {
	case uint8:
		b[0] = x
	case int8:
		b[0] = byte(x)
	case uint16:
		binary.LittleEndian.PutUint16(b, x)
	case int16:
		binary.LittleEndian.PutUint16(b, uint16(x))
	case uint32:
		binary.LittleEndian.PutUint32(b, x)
	case int32:
		binary.LittleEndian.PutUint32(b, uint32(x))
	case uint64:
		binary.LittleEndian.PutUint64(b, x)
	case int64:
		binary.LittleEndian.PutUint64(b, uint64(x))
	case float32:
		binary.LittleEndian.PutUint32(b, math.Float32bits(x))
	case float64:
		binary.LittleEndian.PutUint64(b, math.Float64bits(x))
	}
}
