// Package exrheader reads and writes the header of OpenEXR image files.
//
// A header is the ordered table of typed attributes that precedes the pixel
// data: data and display windows, channel list, compression, tile layout,
// plus any number of optional or application-defined attributes. This
// package decodes and encodes that table exactly, byte for byte, and leaves
// pixel data to other code.
//
// # Quick Start
//
// Reading the header of an image file:
//
//	f, err := exrheader.Open("beauty.exr")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer f.Close()
//
//	dw := f.Header.DataWindow()
//	fmt.Printf("%dx%d, %s\n", dw.Width(), dw.Height(), f.Header.Compression())
//	for name, attr := range f.Header.All() {
//		fmt.Printf("%s (%s)\n", name, attr.TypeName())
//	}
//
// Building and writing a header:
//
//	h := exrheader.NewImageHeader(1920, 1080,
//	    exrheader.NewChannel("R", exrheader.PixelHalf),
//	    exrheader.NewChannel("G", exrheader.PixelHalf),
//	    exrheader.NewChannel("B", exrheader.PixelHalf),
//	)
//	_ = h.Set(exrheader.AttrOwner, &exrheader.StringAttribute{Value: "lighting"})
//	err := exrheader.WriteFile("out.exr", h, h.RequiredVersion())
//
// # Attribute Types
//
// Every built-in type name has a concrete attribute type holding a Value:
// "box2i" is *Box2iAttribute, "chlist" is *ChannelListAttribute, and so on.
// Values of unregistered type names are kept as *OpaqueAttribute so that
// headers written by newer software survive a round trip. Use a type switch
// or Lookup to get at a value:
//
//	if tiles, ok := exrheader.Lookup[*exrheader.TileDescriptionAttribute](h, "tiles"); ok {
//		fmt.Println(tiles.Value.XSize, tiles.Value.YSize)
//	}
//
// A Registry maps type names to constructors. NewDefaultRegistry returns one
// holding the built-ins; extend it and pass it with WithRegistry.
//
// # Byte Accounting
//
// Each attribute is stored with a declared size. After decoding a value the
// reader compares stream positions and fails with ErrSizeMismatch unless
// exactly the declared number of bytes was consumed, so a bad decoder or a
// corrupt size can never shift the attributes that follow. The writer
// measures each value the same way and patches its size in place.
//
// # Error Handling
//
// Any malformed byte aborts the parse; there is no partial header. Failure
// kinds are sentinels tested with errors.Is (ErrBadMagic,
// ErrUnsupportedVersion, ErrSizeMismatch, ...), and structured errors carry
// offsets and sizes for errors.As:
//
//	var ae *exrheader.AttributeError
//	if errors.As(err, &ae) {
//		log.Printf("attribute %q at offset %d: %v", ae.Name, ae.Offset, ae.Err)
//	}
//
// # Concurrency
//
// A Header and a parse are single-goroutine. Registries are safe for
// concurrent use, and OpenMany parses many files in parallel. Open and
// WriteFile hold advisory whole-file locks, shared while reading and
// exclusive while writing, until the file is closed.
package exrheader
