package exrheader

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		tiled   bool
		mutate  func(t *testing.T, h *Header)
		wantErr bool
	}{
		{
			name:   "valid scan-line",
			mutate: func(*testing.T, *Header) {},
		},
		{
			name: "missing data window",
			mutate: func(t *testing.T, h *Header) {
				h.Delete(AttrDataWindow)
			},
			wantErr: true,
		},
		{
			name: "wrong type",
			mutate: func(t *testing.T, h *Header) {
				h.Delete(AttrPixelAspectRatio)
				require.NoError(t, h.Set(AttrPixelAspectRatio, &DoubleAttribute{Value: 1}))
			},
			wantErr: true,
		},
		{
			name: "empty data window",
			mutate: func(t *testing.T, h *Header) {
				set(t, h, AttrDataWindow, &Box2iAttribute{Value: Box2i{Min: V2i{5, 5}, Max: V2i{4, 10}}})
			},
			wantErr: true,
		},
		{
			name: "single pixel window",
			mutate: func(t *testing.T, h *Header) {
				set(t, h, AttrDataWindow, &Box2iAttribute{Value: Box2i{Min: V2i{3, 3}, Max: V2i{3, 3}}})
			},
		},
		{
			name: "window at limit",
			mutate: func(t *testing.T, h *Header) {
				set(t, h, AttrDisplayWindow, &Box2iAttribute{Value: Box2i{Max: V2i{math.MaxInt32 / 2, 0}}})
			},
			wantErr: true,
		},
		{
			name: "window below limit",
			mutate: func(t *testing.T, h *Header) {
				set(t, h, AttrDisplayWindow, &Box2iAttribute{Value: Box2i{
					Min: V2i{-(math.MaxInt32/2 - 1), 0},
					Max: V2i{math.MaxInt32/2 - 1, 0},
				}})
			},
		},
		{
			name: "zero aspect ratio",
			mutate: func(t *testing.T, h *Header) {
				set(t, h, AttrPixelAspectRatio, &FloatAttribute{Value: 0})
			},
			wantErr: true,
		},
		{
			name: "NaN aspect ratio",
			mutate: func(t *testing.T, h *Header) {
				set(t, h, AttrPixelAspectRatio, &FloatAttribute{Value: float32(math.NaN())})
			},
			wantErr: true,
		},
		{
			name: "negative screen window width",
			mutate: func(t *testing.T, h *Header) {
				set(t, h, AttrScreenWindowWidth, &FloatAttribute{Value: -1})
			},
			wantErr: true,
		},
		{
			name: "random order scan-line",
			mutate: func(t *testing.T, h *Header) {
				set(t, h, AttrLineOrder, &LineOrderAttribute{Value: RandomY})
			},
			wantErr: true,
		},
		{
			name: "decreasing order scan-line",
			mutate: func(t *testing.T, h *Header) {
				set(t, h, AttrLineOrder, &LineOrderAttribute{Value: DecreasingY})
			},
		},
		{
			name: "empty channel list",
			mutate: func(t *testing.T, h *Header) {
				set(t, h, AttrChannels, &ChannelListAttribute{})
			},
			wantErr: true,
		},
		{
			name: "subsampled channel divides window",
			mutate: func(t *testing.T, h *Header) {
				set(t, h, AttrChannels, &ChannelListAttribute{Value: ChannelList{
					{Name: "BY", Type: PixelHalf, XSampling: 2, YSampling: 2},
					NewChannel("Y", PixelHalf),
				}})
			},
		},
		{
			name: "subsampling does not divide window",
			mutate: func(t *testing.T, h *Header) {
				set(t, h, AttrChannels, &ChannelListAttribute{Value: ChannelList{
					{Name: "BY", Type: PixelHalf, XSampling: 3, YSampling: 1},
				}})
			},
			wantErr: true,
		},
		{
			name: "zero sampling",
			mutate: func(t *testing.T, h *Header) {
				set(t, h, AttrChannels, &ChannelListAttribute{Value: ChannelList{
					{Name: "R", Type: PixelHalf},
				}})
			},
			wantErr: true,
		},
		{
			name:    "tiled without tiles",
			tiled:   true,
			mutate:  func(*testing.T, *Header) {},
			wantErr: true,
		},
		{
			name:  "tiled random order",
			tiled: true,
			mutate: func(t *testing.T, h *Header) {
				set(t, h, AttrTiles, &TileDescriptionAttribute{Value: TileDescription{XSize: 64, YSize: 64}})
				set(t, h, AttrLineOrder, &LineOrderAttribute{Value: RandomY})
			},
		},
		{
			name:  "tiled zero tile size",
			tiled: true,
			mutate: func(t *testing.T, h *Header) {
				set(t, h, AttrTiles, &TileDescriptionAttribute{Value: TileDescription{XSize: 0, YSize: 64}})
			},
			wantErr: true,
		},
		{
			name:  "tiled subsampled",
			tiled: true,
			mutate: func(t *testing.T, h *Header) {
				set(t, h, AttrTiles, &TileDescriptionAttribute{Value: TileDescription{XSize: 64, YSize: 64}})
				set(t, h, AttrChannels, &ChannelListAttribute{Value: ChannelList{
					{Name: "BY", Type: PixelHalf, XSampling: 2, YSampling: 2},
				}})
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewImageHeader(64, 32)
			tt.mutate(t, h)

			err := h.Validate(tt.tiled)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidHeader)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidate_ReportsAllMissing(t *testing.T) {
	err := NewHeader().Validate(false)
	require.ErrorIs(t, err, ErrInvalidHeader)
	for _, name := range []string{AttrDisplayWindow, AttrCompression, AttrChannels} {
		assert.Contains(t, err.Error(), name)
	}
}

func set(t *testing.T, h *Header, name string, a Attribute) {
	t.Helper()
	require.NoError(t, h.Set(name, a))
}
