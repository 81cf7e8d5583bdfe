package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/simonhull/exrheader"
)

var (
	pathColor   = color.New(color.Bold)
	typeColor   = color.New(color.FgCyan)
	opaqueColor = color.New(color.FgYellow)
)

// dumpFile prints one line per attribute: name, type name, encoded size
// and value.
func dumpFile(w io.Writer, f *exrheader.File) error {
	fmt.Fprintf(w, "%s\n", pathColor.Sprint(f.Path))
	fmt.Fprintf(w, "  version %s, %d attributes, header %s\n",
		f.Version, f.Header.Len(), humanize.IBytes(uint64(f.HeaderSize)))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for name, a := range f.Header.All() {
		data, err := exrheader.MarshalAttribute(a, f.Version)
		if err != nil {
			return fmt.Errorf("attribute %q: %w", name, err)
		}

		c := typeColor
		if _, opaque := a.(*exrheader.OpaqueAttribute); opaque {
			c = opaqueColor
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n",
			name, c.Sprint(a.TypeName()), humanize.Comma(int64(len(data))), formatValue(a))
	}
	return tw.Flush()
}

// formatValue renders a for display. Lists are shortened to a summary.
func formatValue(a exrheader.Attribute) string {
	switch a := a.(type) {
	case *exrheader.IntAttribute:
		return fmt.Sprint(a.Value)
	case *exrheader.FloatAttribute:
		return fmt.Sprint(a.Value)
	case *exrheader.DoubleAttribute:
		return fmt.Sprint(a.Value)
	case *exrheader.RationalAttribute:
		return a.Value.String()
	case *exrheader.StringAttribute:
		return fmt.Sprintf("%q", a.Value)
	case *exrheader.StringVectorAttribute:
		quoted := make([]string, len(a.Value))
		for i, s := range a.Value {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	case *exrheader.CompressionAttribute:
		return a.Value.String()
	case *exrheader.LineOrderAttribute:
		return a.Value.String()
	case *exrheader.EnvMapAttribute:
		return a.Value.String()
	case *exrheader.Box2iAttribute:
		return fmt.Sprintf("%s (%dx%d)", a.Value, a.Value.Width(), a.Value.Height())
	case *exrheader.Box2fAttribute:
		return fmt.Sprintf("(%g, %g) - (%g, %g)", a.Value.Min.X, a.Value.Min.Y, a.Value.Max.X, a.Value.Max.Y)
	case *exrheader.V2iAttribute:
		return fmt.Sprintf("(%d, %d)", a.Value.X, a.Value.Y)
	case *exrheader.V2fAttribute:
		return fmt.Sprintf("(%g, %g)", a.Value.X, a.Value.Y)
	case *exrheader.V2dAttribute:
		return fmt.Sprintf("(%g, %g)", a.Value.X, a.Value.Y)
	case *exrheader.V3iAttribute:
		return fmt.Sprintf("(%d, %d, %d)", a.Value.X, a.Value.Y, a.Value.Z)
	case *exrheader.V3fAttribute:
		return fmt.Sprintf("(%g, %g, %g)", a.Value.X, a.Value.Y, a.Value.Z)
	case *exrheader.V3dAttribute:
		return fmt.Sprintf("(%g, %g, %g)", a.Value.X, a.Value.Y, a.Value.Z)
	case *exrheader.M33fAttribute:
		return fmt.Sprint(a.Value)
	case *exrheader.M33dAttribute:
		return fmt.Sprint(a.Value)
	case *exrheader.M44fAttribute:
		return fmt.Sprint(a.Value)
	case *exrheader.M44dAttribute:
		return fmt.Sprint(a.Value)
	case *exrheader.ChannelListAttribute:
		parts := make([]string, len(a.Value))
		for i, c := range a.Value {
			parts[i] = c.Name + ":" + c.Type.String()
			if c.XSampling != 1 || c.YSampling != 1 {
				parts[i] += fmt.Sprintf("/%dx%d", c.XSampling, c.YSampling)
			}
		}
		return strings.Join(parts, " ")
	case *exrheader.ChromaticitiesAttribute:
		c := a.Value
		return fmt.Sprintf("r(%g, %g) g(%g, %g) b(%g, %g) w(%g, %g)",
			c.Red.X, c.Red.Y, c.Green.X, c.Green.Y, c.Blue.X, c.Blue.Y, c.White.X, c.White.Y)
	case *exrheader.TileDescriptionAttribute:
		return a.Value.String()
	case *exrheader.TimeCodeAttribute:
		return a.Value.String()
	case *exrheader.KeyCodeAttribute:
		k := a.Value
		return fmt.Sprintf("%d %d %d %d+%d (%d/%d)",
			k.FilmMfcCode, k.FilmType, k.Prefix, k.Count, k.PerfOffset, k.PerfsPerFrame, k.PerfsPerCount)
	case *exrheader.PreviewImageAttribute:
		return fmt.Sprintf("%dx%d RGBA", a.Value.Width, a.Value.Height)
	case *exrheader.OpaqueAttribute:
		return humanize.IBytes(uint64(len(a.Data))) + " raw"
	}
	return fmt.Sprintf("%T", a)
}
