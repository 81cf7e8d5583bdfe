package exrheader

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadHeader_SingleInt(t *testing.T) {
	data := []byte{
		0x76, 0x2f, 0x31, 0x01,
		0x02, 0x00, 0x00, 0x00,
		'f', 'o', 'o', 0,
		'i', 'n', 't', 0,
		0x04, 0x00, 0x00, 0x00,
		0x2a, 0x00, 0x00, 0x00,
		0,
	}

	h, v, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, 2, v.Number())
	assert.Zero(t, v.Flags())
	assert.Equal(t, []string{"foo"}, h.Names())

	foo, ok := Lookup[*IntAttribute](h, "foo")
	require.True(t, ok)
	assert.Equal(t, int32(42), foo.Value)

	out, err := Marshal(h, v)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestReadHeader_PositionsAfterTerminator(t *testing.T) {
	data := newHeaderBytes(2).attr("foo", "int", 4, le32(1)).end()
	data = append(data, 0xde, 0xad)

	r := bytes.NewReader(data)
	_, _, err := ReadHeader(r)
	require.NoError(t, err)

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad}, rest)
}

func TestReadHeader_Preamble(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		want   error
		offset int64
	}{
		{"bad magic", []byte{0x76, 0x2f, 0x31, 0x02, 2, 0, 0, 0, 0}, ErrBadMagic, 0},
		{"version 1", newHeaderBytes(1).end(), ErrUnsupportedVersion, 4},
		{"version 3", newHeaderBytes(3).end(), ErrUnsupportedVersion, 4},
		{"non-image flag", newHeaderBytes(uint32(NewFormatVersion(FlagNonImage))).end(), ErrUnsupportedVersion, 4},
		{"multipart flag", newHeaderBytes(uint32(NewFormatVersion(FlagMultiPart))).end(), ErrUnsupportedVersion, 4},
		{"unknown flag", newHeaderBytes(2 | 0x8000).end(), ErrUnsupportedVersion, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Unmarshal(tt.data)
			require.ErrorIs(t, err, tt.want)
			assert.True(t, IsStreamCorruption(err))

			var he *HeaderError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, tt.offset, he.Offset)
		})
	}
}

func TestReadHeader_Empty(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"nothing", nil},
		{"magic only", []byte{0x76, 0x2f, 0x31, 0x01}},
		{"no terminator", newHeaderBytes(2).Bytes()},
		{"half a size", append(newHeaderBytes(2).cstr("foo").cstr("int").Bytes(), 4, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Unmarshal(tt.data)
			assert.ErrorIs(t, err, ErrPrematureEndOfStream)
		})
	}
}

func TestReadHeader_NoAttributes(t *testing.T) {
	h, v, err := Unmarshal(newHeaderBytes(2).end())
	require.NoError(t, err)
	assert.Zero(t, h.Len())
	assert.Equal(t, NewFormatVersion(0), v)
}

func TestReadHeader_NameLength(t *testing.T) {
	tests := []struct {
		name    string
		flags   FormatVersion
		length  int
		wantErr bool
	}{
		{"short at limit", 0, ShortNameLength, false},
		{"short over limit", 0, ShortNameLength + 1, true},
		{"long at limit", FlagLongNames, LongNameLength, false},
		{"long over limit", FlagLongNames, LongNameLength + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name := strings.Repeat("n", tt.length)
			data := newHeaderBytes(uint32(NewFormatVersion(tt.flags))).
				attr(name, "int", 4, le32(7)).end()

			h, _, err := Unmarshal(data)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.True(t, h.Has(name))
				return
			}
			require.ErrorIs(t, err, ErrNameTooLong)

			var ae *AttributeError
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, int64(8), ae.Offset)
		})
	}
}

func TestReadHeader_TypeNameLength(t *testing.T) {
	typeName := strings.Repeat("t", ShortNameLength+1)
	data := newHeaderBytes(2).attr("a", typeName, 0, nil).end()

	_, _, err := Unmarshal(data)
	assert.ErrorIs(t, err, ErrNameTooLong)
}

func TestReadHeader_UnknownType(t *testing.T) {
	data := newHeaderBytes(2).
		attr("custom", "myVec", 3, []byte{1, 2, 3}).
		attr("foo", "int", 4, le32(5)).
		end()

	t.Run("kept as opaque", func(t *testing.T) {
		var logs bytes.Buffer
		h, _, err := Unmarshal(data, WithLogger(zerolog.New(&logs)))
		require.NoError(t, err)

		op, ok := Lookup[*OpaqueAttribute](h, "custom")
		require.True(t, ok)
		assert.Equal(t, "myVec", op.TypeName())
		assert.Equal(t, []byte{1, 2, 3}, op.Data)
		assert.Contains(t, logs.String(), `"type":"myVec"`)

		out, err := Marshal(h, NewFormatVersion(0))
		require.NoError(t, err)
		assert.Equal(t, data, out)
	})

	t.Run("strict", func(t *testing.T) {
		_, _, err := Unmarshal(data, WithStrictTypes())
		require.ErrorIs(t, err, ErrUnknownAttributeType)
		assert.False(t, IsStreamCorruption(err))

		var ae *AttributeError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, "custom", ae.Name)
	})

	t.Run("registered", func(t *testing.T) {
		reg := NewDefaultRegistry()
		require.NoError(t, reg.Register("myVec", OpaqueConstructor("myVec")))

		h, _, err := Unmarshal(data, WithStrictTypes(), WithRegistry(reg))
		require.NoError(t, err)
		assert.True(t, h.Has("custom"))
	})
}

func TestReadHeader_RegistryTypeMismatch(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("int", func() Attribute { return &FloatAttribute{} }))

	data := newHeaderBytes(2).attr("foo", "int", 4, le32(1)).end()
	_, _, err := Unmarshal(data, WithRegistry(reg))
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestReadHeader_SizeMismatch(t *testing.T) {
	for _, size := range []int32{3, 5, -1} {
		data := newHeaderBytes(2).attr("foo", "int", size, le32(1, 0)).end()
		_, _, err := Unmarshal(data)
		require.ErrorIs(t, err, ErrSizeMismatch, "size %d", size)

		var ae *AttributeError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, "foo", ae.Name)
		assert.Equal(t, "int", ae.TypeName)
		assert.Equal(t, int64(8), ae.Offset)
	}
}

func TestReadHeader_DuplicateNames(t *testing.T) {
	t.Run("same type replaces", func(t *testing.T) {
		data := newHeaderBytes(2).
			attr("a", "int", 4, le32(1)).
			attr("b", "int", 4, le32(2)).
			attr("a", "int", 4, le32(3)).
			end()

		h, _, err := Unmarshal(data)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, h.Names())
		a, _ := Lookup[*IntAttribute](h, "a")
		assert.Equal(t, int32(3), a.Value)
	})

	t.Run("different type fails", func(t *testing.T) {
		data := newHeaderBytes(2).
			attr("a", "int", 4, le32(1)).
			attr("a", "float", 4, le32(0)).
			end()

		_, _, err := Unmarshal(data)
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})
}

func TestReadHeader_Validation(t *testing.T) {
	h := NewImageHeader(4, 4)
	require.True(t, h.Delete(AttrChannels))
	data, err := Marshal(h, NewFormatVersion(0))
	require.NoError(t, err)

	_, _, err = Unmarshal(data)
	require.NoError(t, err)

	_, _, err = Unmarshal(data, WithValidation())
	assert.ErrorIs(t, err, ErrInvalidHeader)
}

func TestReadHeader_Deterministic(t *testing.T) {
	h := fullHeader(t)
	data, err := Marshal(h, h.RequiredVersion())
	require.NoError(t, err)

	first, v1, err := Unmarshal(data)
	require.NoError(t, err)
	second, v2, err := Unmarshal(data)
	require.NoError(t, err)

	assert.Equal(t, v1, v2)
	assert.Equal(t, first, second)
	assert.Equal(t, h.Names(), first.Names())
}

func TestReadHeader_TransportError(t *testing.T) {
	boom := errors.New("disk on fire")
	data := newHeaderBytes(2).attr("foo", "int", 4, le32(1)).end()

	_, _, err := ReadHeader(&failAfter{data: data, n: 12, err: boom})
	require.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, boom)
	assert.False(t, IsStreamCorruption(err))
}

func TestWriteHeader_RoundTrip(t *testing.T) {
	h := fullHeader(t)
	v := h.RequiredVersion()
	require.True(t, v.IsTiled())

	data, err := Marshal(h, v)
	require.NoError(t, err)

	got, gotV, err := Unmarshal(data, WithValidation())
	require.NoError(t, err)
	assert.Equal(t, v, gotV)
	assert.Equal(t, h, got)

	again, err := Marshal(got, gotV)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestWriteHeader_Errors(t *testing.T) {
	t.Run("unsupported version", func(t *testing.T) {
		_, err := Marshal(NewImageHeader(1, 1), NewFormatVersion(FlagMultiPart))
		assert.ErrorIs(t, err, ErrUnsupportedVersion)
	})

	t.Run("long name without flag", func(t *testing.T) {
		h := NewImageHeader(1, 1)
		require.NoError(t, h.Set(strings.Repeat("x", 40), &IntAttribute{}))

		_, err := Marshal(h, NewFormatVersion(0))
		require.ErrorIs(t, err, ErrNameTooLong)

		data, err := Marshal(h, h.RequiredVersion())
		require.NoError(t, err)
		got, _, err := Unmarshal(data)
		require.NoError(t, err)
		assert.Equal(t, h, got)
	})

	t.Run("bad value", func(t *testing.T) {
		h := NewHeader()
		require.NoError(t, h.Set("c", &CompressionAttribute{Value: 200}))

		_, err := Marshal(h, NewFormatVersion(0))
		require.ErrorIs(t, err, ErrInvalidEnumOrdinal)

		var ae *AttributeError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, "c", ae.Name)
		assert.Equal(t, int64(8), ae.Offset)
	})
}

func TestWriteHeader_RejectsZeroBytes(t *testing.T) {
	tests := []struct {
		name  string
		build func(h *Header)
		want  error
	}{
		{
			name:  "attribute name",
			build: func(h *Header) { h.append("a\x00b", &IntAttribute{Value: 42}) },
			want:  ErrInvalidHeader,
		},
		{
			name:  "type name",
			build: func(h *Header) { h.append("id", NewOpaque("ty\x00pe")) },
			want:  ErrInvalidTypeName,
		},
		{
			name: "channel name",
			build: func(h *Header) {
				chans, _ := Lookup[*ChannelListAttribute](h, AttrChannels)
				chans.Value = append(chans.Value, NewChannel("R\x00G", PixelHalf))
			},
			want: ErrInvalidChannelRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewImageHeader(4, 4)
			tt.build(h)

			data, err := Marshal(h, NewFormatVersion(FlagLongNames))
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, data)

			path := filepath.Join(t.TempDir(), "zero.exr")
			require.ErrorIs(t, WriteFile(path, h, NewFormatVersion(FlagLongNames)), tt.want)
			_, err = os.Stat(path)
			assert.ErrorIs(t, err, os.ErrNotExist)
		})
	}
}

func TestWriteHeader_Logs(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs).Level(zerolog.DebugLevel)

	h := NewImageHeader(2, 2)
	err := WriteHeader(newSeekBuffer(), h, h.RequiredVersion(), WithLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, h.Len(), strings.Count(logs.String(), "attribute encoded"))
}

// fullHeader returns a valid tiled header with optional attributes.
func fullHeader(t *testing.T) *Header {
	t.Helper()

	h := NewImageHeader(1920, 1080,
		NewChannel("R", PixelHalf),
		NewChannel("G", PixelHalf),
		NewChannel("B", PixelHalf),
		NewChannel("A", PixelHalf),
	)
	for _, a := range sampleAttributes(t) {
		switch a.(type) {
		case *ChannelListAttribute, *Box2iAttribute, *CompressionAttribute, *LineOrderAttribute:
			continue
		}
		require.NoError(t, h.Set("sample."+a.TypeName(), a))
	}
	require.NoError(t, h.Set(AttrTiles, &TileDescriptionAttribute{
		Value: TileDescription{XSize: 64, YSize: 64, Mode: MipmapLevels},
	}))
	return h
}

// failAfter serves n bytes of data and then fails every read.
type failAfter struct {
	data []byte
	pos  int64
	n    int64
	err  error
}

func (f *failAfter) Read(p []byte) (int, error) {
	if f.pos >= f.n {
		return 0, f.err
	}
	end := min(f.n, f.pos+int64(len(p)), int64(len(f.data)))
	k := copy(p, f.data[f.pos:end])
	f.pos += int64(k)
	return k, nil
}

func (f *failAfter) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		f.pos = offset
	case io.SeekCurrent:
		f.pos += offset
	default:
		f.pos = int64(len(f.data)) + offset
	}
	return f.pos, nil
}

// seekBuffer is an in-memory io.WriteSeeker.
type seekBuffer struct {
	buf []byte
	pos int
}

func newSeekBuffer() *seekBuffer { return &seekBuffer{} }

func (s *seekBuffer) Write(p []byte) (int, error) {
	if need := s.pos + len(p); need > len(s.buf) {
		s.buf = append(s.buf, make([]byte, need-len(s.buf))...)
	}
	n := copy(s.buf[s.pos:], p)
	s.pos += n
	return n, nil
}

func (s *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		s.pos = int(offset)
	case io.SeekCurrent:
		s.pos += int(offset)
	default:
		s.pos = len(s.buf) + int(offset)
	}
	return int64(s.pos), nil
}
