package exrheader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/simonhull/exrheader/internal/binary"
)

// PixelType is the storage type of one channel.
type PixelType int32

const (
	PixelUint PixelType = iota
	PixelHalf
	PixelFloat
	numPixelTypes
)

func (p PixelType) Valid() bool { return p >= 0 && p < numPixelTypes }

// Size returns the number of bytes per sample.
func (p PixelType) Size() int {
	if p == PixelHalf {
		return 2
	}
	return 4
}

func (p PixelType) String() string {
	switch p {
	case PixelUint:
		return "UINT"
	case PixelHalf:
		return "HALF"
	case PixelFloat:
		return "FLOAT"
	}
	return fmt.Sprintf("PixelType(%d)", int32(p))
}

// Channel describes one named image channel.
type Channel struct {
	Name      string
	Type      PixelType
	PLinear   bool // perceptually linear
	XSampling int32
	YSampling int32
}

// NewChannel returns a channel sampled at every pixel.
func NewChannel(name string, t PixelType) Channel {
	return Channel{Name: name, Type: t, XSampling: 1, YSampling: 1}
}

// ChannelList is an ordered list of channels. Files written by conforming
// encoders keep it sorted by name.
type ChannelList []Channel

// Find returns the channel called name.
func (l ChannelList) Find(name string) (Channel, bool) {
	for _, c := range l {
		if c.Name == name {
			return c, true
		}
	}
	return Channel{}, false
}

// Names returns the channel names in list order.
func (l ChannelList) Names() []string {
	names := make([]string, len(l))
	for i, c := range l {
		names[i] = c.Name
	}
	return names
}

// Insert adds c in name order, replacing a channel of the same name.
func (l ChannelList) Insert(c Channel) ChannelList {
	i, found := slices.BinarySearchFunc(l, c.Name, func(e Channel, name string) int {
		return strings.Compare(e.Name, name)
	})
	if found {
		l[i] = c
		return l
	}
	return slices.Insert(l, i, c)
}

// Sorted returns a copy of l ordered by name.
func (l ChannelList) Sorted() ChannelList {
	s := slices.Clone(l)
	slices.SortStableFunc(s, func(a, b Channel) int { return strings.Compare(a.Name, b.Name) })
	return s
}

func (l ChannelList) check() error {
	if len(l) == 0 {
		return fmt.Errorf("empty channel list: %w", ErrInvalidChannelRecord)
	}
	seen := make(map[string]struct{}, len(l))
	for _, c := range l {
		if c.Name == "" {
			return fmt.Errorf("empty channel name: %w", ErrInvalidChannelRecord)
		}
		if strings.IndexByte(c.Name, 0) >= 0 {
			return fmt.Errorf("channel name %q has a zero byte: %w", c.Name, ErrInvalidChannelRecord)
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("duplicate channel %q: %w", c.Name, ErrInvalidChannelRecord)
		}
		seen[c.Name] = struct{}{}
	}
	return nil
}

// ChannelListAttribute holds a ChannelList ("chlist").
type ChannelListAttribute struct{ Value ChannelList }

func (*ChannelListAttribute) TypeName() string { return "chlist" }

func (a *ChannelListAttribute) Clone() Attribute {
	return &ChannelListAttribute{Value: slices.Clone(a.Value)}
}

func (a *ChannelListAttribute) readValue(r *binary.Reader, size int32, v FormatVersion) error {
	start, err := r.Position()
	if err != nil {
		return err
	}
	maxName := v.MaxNameLength()

	var list ChannelList
	for {
		name, err := r.ReadNullTerminated(maxName, "channel name")
		if err != nil {
			return err
		}
		if name == "" {
			break
		}
		c, err := readChannelRecord(r, name)
		if err != nil {
			return err
		}
		list = append(list, c)

		// Stop at the first record that runs past the declared size
		// rather than walking the rest of the header as channels.
		pos, err := r.Position()
		if err != nil {
			return err
		}
		if consumed := pos - start; consumed >= int64(size) {
			return &SizeMismatchError{TypeName: a.TypeName(), Declared: int64(size), Consumed: consumed}
		}
	}

	if err := list.check(); err != nil {
		return err
	}
	a.Value = list
	return nil
}

func readChannelRecord(r *binary.Reader, name string) (Channel, error) {
	cr := binary.NewChainReader(r)
	c := Channel{Name: name}
	c.Type = PixelType(binary.ReadChained[int32](cr, "pixel type"))
	c.PLinear = cr.Bool("pLinear")
	reserved := [3]uint8{
		binary.ReadChained[uint8](cr, "reserved"),
		binary.ReadChained[uint8](cr, "reserved"),
		binary.ReadChained[uint8](cr, "reserved"),
	}
	c.XSampling = binary.ReadChained[int32](cr, "xSampling")
	c.YSampling = binary.ReadChained[int32](cr, "ySampling")
	if err := cr.Err(); err != nil {
		return Channel{}, err
	}

	if !c.Type.Valid() {
		return Channel{}, fmt.Errorf("channel %q: %w", name, &EnumError{Enum: "pixel type", Ordinal: int(c.Type)})
	}
	if reserved != [3]uint8{} {
		return Channel{}, fmt.Errorf("channel %q: reserved bytes % x: %w", name, reserved[:], ErrInvalidChannelRecord)
	}
	return c, nil
}

func (a *ChannelListAttribute) writeValue(w *binary.Writer, v FormatVersion) error {
	if err := a.Value.check(); err != nil {
		return err
	}
	maxName := v.MaxNameLength()
	for _, c := range a.Value {
		if !c.Type.Valid() {
			return fmt.Errorf("channel %q: %w", c.Name, &EnumError{Enum: "pixel type", Ordinal: int(c.Type)})
		}
		if err := w.WriteNullTerminated(c.Name, maxName, "channel name"); err != nil {
			return err
		}
		if err := binary.Write(w, int32(c.Type), "pixel type"); err != nil {
			return err
		}
		if err := w.WriteBool(c.PLinear, "pLinear"); err != nil {
			return err
		}
		if err := w.Pad(3, "reserved"); err != nil {
			return err
		}
		if err := writeElems(w, "sampling", c.XSampling, c.YSampling); err != nil {
			return err
		}
	}
	return w.WriteNullTerminated("", maxName, "channel list terminator")
}
