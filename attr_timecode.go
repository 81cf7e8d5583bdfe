package exrheader

import (
	"fmt"

	"github.com/simonhull/exrheader/internal/binary"
)

// TimeCode is an SMPTE time code: a packed time-and-flags word and a user
// data word. The accessors interpret the bits; decoding keeps both words
// verbatim.
type TimeCode struct {
	TimeAndFlags uint32
	UserData     uint32
}

func bitField(v uint32, lo, hi uint) uint32 {
	return v >> lo & (1<<(hi-lo+1) - 1)
}

func setBitField(v uint32, lo, hi uint, field uint32) uint32 {
	mask := uint32(1<<(hi-lo+1)-1) << lo
	return v&^mask | field<<lo&mask
}

func bcdToBinary(bcd uint32) int { return int(bcd&0x0f + 10*(bcd>>4&0x0f)) }

func binaryToBcd(v int) uint32 { return uint32(v%10 | v/10<<4) }

func (t TimeCode) Hours() int   { return bcdToBinary(bitField(t.TimeAndFlags, 24, 29)) }
func (t TimeCode) Minutes() int { return bcdToBinary(bitField(t.TimeAndFlags, 16, 22)) }
func (t TimeCode) Seconds() int { return bcdToBinary(bitField(t.TimeAndFlags, 8, 14)) }
func (t TimeCode) Frame() int   { return bcdToBinary(bitField(t.TimeAndFlags, 0, 5)) }

func (t TimeCode) DropFrame() bool  { return bitField(t.TimeAndFlags, 6, 6) != 0 }
func (t TimeCode) ColorFrame() bool { return bitField(t.TimeAndFlags, 7, 7) != 0 }
func (t TimeCode) FieldPhase() bool { return bitField(t.TimeAndFlags, 15, 15) != 0 }

// BinaryGroup returns user data group 1 through 8, or 0 for any other group.
func (t TimeCode) BinaryGroup(group int) int {
	if group < 1 || group > 8 {
		return 0
	}
	lo := uint(4 * (group - 1))
	return int(bitField(t.UserData, lo, lo+3))
}

// SetTime stores hours, minutes, seconds and frame as BCD, leaving the
// flag bits alone.
func (t *TimeCode) SetTime(hours, minutes, seconds, frame int) error {
	switch {
	case hours < 0 || hours > 23:
		return fmt.Errorf("time code hours %d out of range", hours)
	case minutes < 0 || minutes > 59:
		return fmt.Errorf("time code minutes %d out of range", minutes)
	case seconds < 0 || seconds > 59:
		return fmt.Errorf("time code seconds %d out of range", seconds)
	case frame < 0 || frame > 29:
		return fmt.Errorf("time code frame %d out of range", frame)
	}
	v := t.TimeAndFlags
	v = setBitField(v, 24, 29, binaryToBcd(hours))
	v = setBitField(v, 16, 22, binaryToBcd(minutes))
	v = setBitField(v, 8, 14, binaryToBcd(seconds))
	v = setBitField(v, 0, 5, binaryToBcd(frame))
	t.TimeAndFlags = v
	return nil
}

func (t TimeCode) String() string {
	return fmt.Sprintf("%02d:%02d:%02d:%02d %#x", t.Hours(), t.Minutes(), t.Seconds(), t.Frame(), t.UserData)
}

// TimeCodeAttribute holds a TimeCode ("timecode").
type TimeCodeAttribute struct{ Value TimeCode }

func (*TimeCodeAttribute) TypeName() string { return "timecode" }

func (a *TimeCodeAttribute) Clone() Attribute { c := *a; return &c }

func (a *TimeCodeAttribute) readValue(r *binary.Reader, size int32, _ FormatVersion) error {
	if err := checkSize(a.TypeName(), size, 8); err != nil {
		return err
	}
	return readElems(r, "timecode", &a.Value.TimeAndFlags, &a.Value.UserData)
}

func (a *TimeCodeAttribute) writeValue(w *binary.Writer, _ FormatVersion) error {
	return writeElems(w, "timecode", a.Value.TimeAndFlags, a.Value.UserData)
}

// KeyCode identifies a motion picture film frame.
type KeyCode struct {
	FilmMfcCode   int32
	FilmType      int32
	Prefix        int32
	Count         int32
	PerfOffset    int32
	PerfsPerFrame int32
	PerfsPerCount int32
}

// KeyCodeAttribute holds a KeyCode ("keycode").
type KeyCodeAttribute struct{ Value KeyCode }

func (*KeyCodeAttribute) TypeName() string { return "keycode" }

func (a *KeyCodeAttribute) Clone() Attribute { c := *a; return &c }

func (a *KeyCodeAttribute) readValue(r *binary.Reader, size int32, _ FormatVersion) error {
	if err := checkSize(a.TypeName(), size, 28); err != nil {
		return err
	}
	k := &a.Value
	return readElems(r, "keycode",
		&k.FilmMfcCode, &k.FilmType, &k.Prefix, &k.Count,
		&k.PerfOffset, &k.PerfsPerFrame, &k.PerfsPerCount)
}

func (a *KeyCodeAttribute) writeValue(w *binary.Writer, _ FormatVersion) error {
	k := a.Value
	return writeElems(w, "keycode",
		k.FilmMfcCode, k.FilmType, k.Prefix, k.Count,
		k.PerfOffset, k.PerfsPerFrame, k.PerfsPerCount)
}
