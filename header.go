package exrheader

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Names of the attributes every image header carries.
const (
	AttrDisplayWindow      = "displayWindow"
	AttrDataWindow         = "dataWindow"
	AttrPixelAspectRatio   = "pixelAspectRatio"
	AttrScreenWindowCenter = "screenWindowCenter"
	AttrScreenWindowWidth  = "screenWindowWidth"
	AttrLineOrder          = "lineOrder"
	AttrCompression        = "compression"
	AttrChannels           = "channels"
)

// Names of common optional attributes.
const (
	AttrTiles          = "tiles"
	AttrPreview        = "preview"
	AttrChromaticities = "chromaticities"
	AttrWhiteLuminance = "whiteLuminance"
	AttrOwner          = "owner"
	AttrComments       = "comments"
	AttrCapDate        = "capDate"
	AttrUTCOffset      = "utcOffset"
	AttrFramesPerSec   = "framesPerSecond"
	AttrTimeCode       = "timeCode"
	AttrKeyCode        = "keyCode"
	AttrEnvMap         = "envmap"
)

type entry struct {
	name string
	attr Attribute
}

// Header is an ordered table of named attributes. Iteration order is
// insertion order, which for a parsed header is the on-disk order.
//
// A Header is not safe for concurrent mutation.
type Header struct {
	entries []entry
	index   map[string]int
}

// NewHeader returns an empty header.
func NewHeader() *Header {
	return &Header{index: make(map[string]int)}
}

// NewImageHeader returns a header holding the required attributes for a
// width by height scan-line image, in the order conforming writers emit
// them. The channels are stored sorted by name; with no channels given the
// image has half-float R, G and B.
func NewImageHeader(width, height int32, channels ...Channel) *Header {
	if len(channels) == 0 {
		channels = []Channel{
			NewChannel("B", PixelHalf),
			NewChannel("G", PixelHalf),
			NewChannel("R", PixelHalf),
		}
	}
	window := Box2i{Max: V2i{X: width - 1, Y: height - 1}}

	h := NewHeader()
	h.append(AttrDisplayWindow, &Box2iAttribute{Value: window})
	h.append(AttrDataWindow, &Box2iAttribute{Value: window})
	h.append(AttrPixelAspectRatio, &FloatAttribute{Value: 1})
	h.append(AttrScreenWindowCenter, &V2fAttribute{})
	h.append(AttrScreenWindowWidth, &FloatAttribute{Value: 1})
	h.append(AttrLineOrder, &LineOrderAttribute{Value: IncreasingY})
	h.append(AttrCompression, &CompressionAttribute{Value: CompressionZIP})
	h.append(AttrChannels, &ChannelListAttribute{Value: ChannelList(channels).Sorted()})
	return h
}

func (h *Header) append(name string, a Attribute) {
	h.index[name] = len(h.entries)
	h.entries = append(h.entries, entry{name: name, attr: a})
}

// Len returns the number of attributes.
func (h *Header) Len() int {
	return len(h.entries)
}

// Get returns the attribute called name.
func (h *Header) Get(name string) (Attribute, bool) {
	i, ok := h.index[name]
	if !ok {
		return nil, false
	}
	return h.entries[i].attr, true
}

// Has reports whether the header has an attribute called name.
func (h *Header) Has(name string) bool {
	_, ok := h.index[name]
	return ok
}

// Set stores a under name. A new name is appended; an existing one keeps its
// position and has its attribute replaced, which fails with ErrTypeMismatch
// if the type names differ.
func (h *Header) Set(name string, a Attribute) error {
	if name == "" {
		return fmt.Errorf("empty attribute name: %w", ErrInvalidHeader)
	}
	if strings.IndexByte(name, 0) >= 0 {
		return fmt.Errorf("attribute name %q has a zero byte: %w", name, ErrInvalidHeader)
	}
	if a == nil {
		return fmt.Errorf("attribute %q: nil value: %w", name, ErrInvalidHeader)
	}
	if !validTypeName(a.TypeName()) {
		return fmt.Errorf("attribute %q: type %q: %w", name, a.TypeName(), ErrInvalidTypeName)
	}

	i, ok := h.index[name]
	if !ok {
		h.append(name, a)
		return nil
	}
	if old := h.entries[i].attr.TypeName(); old != a.TypeName() {
		return fmt.Errorf("attribute %q is %s, not %s: %w", name, old, a.TypeName(), ErrTypeMismatch)
	}
	h.entries[i].attr = a
	return nil
}

// Delete removes the attribute called name and reports whether it existed.
func (h *Header) Delete(name string) bool {
	i, ok := h.index[name]
	if !ok {
		return false
	}
	h.entries = slices.Delete(h.entries, i, i+1)
	delete(h.index, name)
	for j := i; j < len(h.entries); j++ {
		h.index[h.entries[j].name] = j
	}
	return true
}

// Names returns the attribute names in order.
func (h *Header) Names() []string {
	names := make([]string, len(h.entries))
	for i, e := range h.entries {
		names[i] = e.name
	}
	return names
}

// All iterates over the attributes in order.
func (h *Header) All() iter.Seq2[string, Attribute] {
	return func(yield func(string, Attribute) bool) {
		for _, e := range h.entries {
			if !yield(e.name, e.attr) {
				return
			}
		}
	}
}

// Clone returns a deep copy of h.
func (h *Header) Clone() *Header {
	c := &Header{
		entries: make([]entry, len(h.entries)),
		index:   make(map[string]int, len(h.entries)),
	}
	for i, e := range h.entries {
		c.entries[i] = entry{name: e.name, attr: e.attr.Clone()}
		c.index[e.name] = i
	}
	return c
}

// Lookup returns the attribute called name if it has concrete type T.
//
//	if dw, ok := exrheader.Lookup[*exrheader.Box2iAttribute](h, "dataWindow"); ok {
//		fmt.Println(dw.Value.Width())
//	}
func Lookup[T Attribute](h *Header, name string) (T, bool) {
	a, ok := h.Get(name)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := a.(T)
	return t, ok
}

// Typed accessors for the required attributes. Each returns the zero value
// when the attribute is absent or has an unexpected type; Validate reports
// those cases.

func (h *Header) DisplayWindow() Box2i {
	a, _ := Lookup[*Box2iAttribute](h, AttrDisplayWindow)
	if a == nil {
		return Box2i{}
	}
	return a.Value
}

func (h *Header) DataWindow() Box2i {
	a, _ := Lookup[*Box2iAttribute](h, AttrDataWindow)
	if a == nil {
		return Box2i{}
	}
	return a.Value
}

func (h *Header) PixelAspectRatio() float32 {
	a, _ := Lookup[*FloatAttribute](h, AttrPixelAspectRatio)
	if a == nil {
		return 0
	}
	return a.Value
}

func (h *Header) ScreenWindowCenter() V2f {
	a, _ := Lookup[*V2fAttribute](h, AttrScreenWindowCenter)
	if a == nil {
		return V2f{}
	}
	return a.Value
}

func (h *Header) ScreenWindowWidth() float32 {
	a, _ := Lookup[*FloatAttribute](h, AttrScreenWindowWidth)
	if a == nil {
		return 0
	}
	return a.Value
}

func (h *Header) LineOrder() LineOrder {
	a, _ := Lookup[*LineOrderAttribute](h, AttrLineOrder)
	if a == nil {
		return IncreasingY
	}
	return a.Value
}

func (h *Header) Compression() Compression {
	a, _ := Lookup[*CompressionAttribute](h, AttrCompression)
	if a == nil {
		return CompressionNone
	}
	return a.Value
}

// Channels returns the channel list. The slice is shared with the header.
func (h *Header) Channels() ChannelList {
	a, _ := Lookup[*ChannelListAttribute](h, AttrChannels)
	if a == nil {
		return nil
	}
	return a.Value
}

// TileDescription returns the "tiles" attribute of a tiled image.
func (h *Header) TileDescription() (TileDescription, bool) {
	a, ok := Lookup[*TileDescriptionAttribute](h, AttrTiles)
	if !ok {
		return TileDescription{}, false
	}
	return a.Value, true
}

// Chromaticities returns the chromaticities attribute, or
// Rec709Chromaticities when there is none.
func (h *Header) Chromaticities() Chromaticities {
	a, ok := Lookup[*ChromaticitiesAttribute](h, AttrChromaticities)
	if !ok {
		return Rec709Chromaticities
	}
	return a.Value
}

// RequiredVersion returns the version word a file holding h needs: tiled
// when there is a tile description, long names when any attribute, type or
// channel name is longer than ShortNameLength bytes.
func (h *Header) RequiredVersion() FormatVersion {
	var flags FormatVersion
	if _, ok := h.TileDescription(); ok {
		flags |= FlagTiled
	}
	for _, e := range h.entries {
		if len(e.name) > ShortNameLength || len(e.attr.TypeName()) > ShortNameLength {
			flags |= FlagLongNames
			break
		}
		if cl, ok := e.attr.(*ChannelListAttribute); ok {
			for _, c := range cl.Value {
				if len(c.Name) > ShortNameLength {
					flags |= FlagLongNames
					break
				}
			}
		}
	}
	return NewFormatVersion(flags)
}
