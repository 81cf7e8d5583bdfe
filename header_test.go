package exrheader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewImageHeader(t *testing.T) {
	h := NewImageHeader(1920, 1080)

	assert.Equal(t, []string{
		AttrDisplayWindow, AttrDataWindow, AttrPixelAspectRatio, AttrScreenWindowCenter,
		AttrScreenWindowWidth, AttrLineOrder, AttrCompression, AttrChannels,
	}, h.Names())

	want := Box2i{Max: V2i{X: 1919, Y: 1079}}
	assert.Equal(t, want, h.DisplayWindow())
	assert.Equal(t, want, h.DataWindow())
	assert.Equal(t, int64(1920), h.DataWindow().Width())
	assert.Equal(t, int64(1080), h.DataWindow().Height())
	assert.Equal(t, float32(1), h.PixelAspectRatio())
	assert.Equal(t, float32(1), h.ScreenWindowWidth())
	assert.Equal(t, V2f{}, h.ScreenWindowCenter())
	assert.Equal(t, IncreasingY, h.LineOrder())
	assert.Equal(t, CompressionZIP, h.Compression())
	assert.Equal(t, []string{"B", "G", "R"}, h.Channels().Names())
	assert.Equal(t, Rec709Chromaticities, h.Chromaticities())

	_, tiled := h.TileDescription()
	assert.False(t, tiled)
	assert.NoError(t, h.Validate(false))
}

func TestNewImageHeader_SortsChannels(t *testing.T) {
	h := NewImageHeader(8, 8, NewChannel("Z", PixelFloat), NewChannel("A", PixelHalf))
	assert.Equal(t, []string{"A", "Z"}, h.Channels().Names())
}

func TestHeader_SetGetDelete(t *testing.T) {
	h := NewHeader()
	require.NoError(t, h.Set("a", &IntAttribute{Value: 1}))
	require.NoError(t, h.Set("b", &StringAttribute{Value: "x"}))
	require.NoError(t, h.Set("c", &FloatAttribute{Value: 2}))

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, []string{"a", "b", "c"}, h.Names())

	// Replacing keeps the position.
	require.NoError(t, h.Set("a", &IntAttribute{Value: 10}))
	assert.Equal(t, []string{"a", "b", "c"}, h.Names())
	a, ok := h.Get("a")
	require.True(t, ok)
	assert.Equal(t, &IntAttribute{Value: 10}, a)

	err := h.Set("a", &FloatAttribute{})
	assert.ErrorIs(t, err, ErrTypeMismatch)

	assert.True(t, h.Delete("b"))
	assert.False(t, h.Delete("b"))
	assert.False(t, h.Has("b"))
	assert.Equal(t, []string{"a", "c"}, h.Names())

	// The index must follow the shifted entries.
	c, ok := Lookup[*FloatAttribute](h, "c")
	require.True(t, ok)
	assert.Equal(t, float32(2), c.Value)

	require.NoError(t, h.Set("b", &StringAttribute{Value: "y"}))
	assert.Equal(t, []string{"a", "c", "b"}, h.Names())
}

func TestHeader_SetRejects(t *testing.T) {
	h := NewHeader()

	assert.ErrorIs(t, h.Set("", &IntAttribute{}), ErrInvalidHeader)
	assert.ErrorIs(t, h.Set("a", nil), ErrInvalidHeader)
	assert.ErrorIs(t, h.Set("a", &OpaqueAttribute{}), ErrInvalidTypeName)
	assert.Zero(t, h.Len())
}

func TestHeader_SetRejectsZeroBytes(t *testing.T) {
	h := NewHeader()

	assert.ErrorIs(t, h.Set("a\x00b", &IntAttribute{}), ErrInvalidHeader)
	assert.ErrorIs(t, h.Set("id", NewOpaque("ty\x00pe")), ErrInvalidTypeName)
	assert.Zero(t, h.Len())

	err := NewDefaultRegistry().Register("ty\x00pe", OpaqueConstructor("ty\x00pe"))
	assert.ErrorIs(t, err, ErrInvalidTypeName)
}

func TestHeader_All(t *testing.T) {
	h := NewImageHeader(2, 2)

	var names []string
	for name, a := range h.All() {
		names = append(names, name)
		assert.NotNil(t, a)
	}
	assert.Equal(t, h.Names(), names)

	// Early break stops the iteration.
	count := 0
	for range h.All() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestHeader_Clone(t *testing.T) {
	h := NewImageHeader(4, 4)
	c := h.Clone()
	assert.Equal(t, h, c)

	c.Channels()[0].Name = "X"
	require.NoError(t, c.Set("extra", &IntAttribute{}))
	dw, _ := Lookup[*Box2iAttribute](c, AttrDataWindow)
	dw.Value.Max.X = 100

	assert.Equal(t, "B", h.Channels()[0].Name)
	assert.False(t, h.Has("extra"))
	assert.Equal(t, int32(3), h.DataWindow().Max.X)
}

func TestLookup_WrongType(t *testing.T) {
	h := NewImageHeader(1, 1)

	_, ok := Lookup[*IntAttribute](h, AttrDataWindow)
	assert.False(t, ok)

	_, ok = Lookup[*IntAttribute](h, "missing")
	assert.False(t, ok)
}

func TestHeader_AccessorDefaults(t *testing.T) {
	h := NewHeader()
	assert.Equal(t, Box2i{}, h.DataWindow())
	assert.Equal(t, IncreasingY, h.LineOrder())
	assert.Equal(t, CompressionNone, h.Compression())
	assert.Nil(t, h.Channels())
	assert.Equal(t, Rec709Chromaticities, h.Chromaticities())
}

func TestHeader_RequiredVersion(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Header) error
		want  FormatVersion
	}{
		{
			name:  "plain",
			setup: func(*Header) error { return nil },
			want:  NewFormatVersion(0),
		},
		{
			name: "tiled",
			setup: func(h *Header) error {
				return h.Set(AttrTiles, &TileDescriptionAttribute{Value: TileDescription{XSize: 32, YSize: 32}})
			},
			want: NewFormatVersion(FlagTiled),
		},
		{
			name: "31 byte name",
			setup: func(h *Header) error {
				return h.Set("abcdefghijklmnopqrstuvwxyz01234", &IntAttribute{})
			},
			want: NewFormatVersion(0),
		},
		{
			name: "32 byte name",
			setup: func(h *Header) error {
				return h.Set("abcdefghijklmnopqrstuvwxyz012345", &IntAttribute{})
			},
			want: NewFormatVersion(FlagLongNames),
		},
		{
			name: "long type name",
			setup: func(h *Header) error {
				return h.Set("x", NewOpaque("aVeryLongVendorSpecificTypeName42"))
			},
			want: NewFormatVersion(FlagLongNames),
		},
		{
			name: "long channel name",
			setup: func(h *Header) error {
				return h.Set(AttrChannels, &ChannelListAttribute{Value: ChannelList{
					NewChannel("diffuse.direct.specular.beauty.R", PixelHalf),
				}})
			},
			want: NewFormatVersion(FlagLongNames),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewImageHeader(16, 16)
			require.NoError(t, tt.setup(h))
			assert.Equal(t, tt.want, h.RequiredVersion())
		})
	}
}
