package exrheader_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/simonhull/exrheader"
)

// createBenchmarkImage writes a header with a realistic set of attributes.
func createBenchmarkImage(b *testing.B, dir, name string) string {
	b.Helper()

	h := exrheader.NewImageHeader(4096, 2160,
		exrheader.NewChannel("R", exrheader.PixelHalf),
		exrheader.NewChannel("G", exrheader.PixelHalf),
		exrheader.NewChannel("B", exrheader.PixelHalf),
		exrheader.NewChannel("A", exrheader.PixelHalf),
		exrheader.NewChannel("Z", exrheader.PixelFloat),
	)
	attrs := map[string]exrheader.Attribute{
		exrheader.AttrOwner:          &exrheader.StringAttribute{Value: "lighting"},
		exrheader.AttrComments:       &exrheader.StringAttribute{Value: "benchmark frame"},
		exrheader.AttrChromaticities: &exrheader.ChromaticitiesAttribute{Value: exrheader.Rec709Chromaticities},
		exrheader.AttrFramesPerSec:   &exrheader.RationalAttribute{Value: exrheader.Rational{Num: 24, Den: 1}},
		"worldToCamera":              &exrheader.M44fAttribute{Value: exrheader.IdentityM44f},
	}
	for name, a := range attrs {
		if err := h.Set(name, a); err != nil {
			b.Fatal(err)
		}
	}

	path := filepath.Join(dir, name)
	if err := exrheader.WriteFile(path, h, h.RequiredVersion()); err != nil {
		b.Fatal(err)
	}
	return path
}

// BenchmarkOpen measures opening a single file and parsing its header.
func BenchmarkOpen(b *testing.B) {
	path := createBenchmarkImage(b, b.TempDir(), "bench.exr")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		file, err := exrheader.Open(path)
		if err != nil {
			b.Fatal(err)
		}
		file.Close()
	}
}

// BenchmarkOpenContext measures the performance with context support.
func BenchmarkOpenContext(b *testing.B) {
	path := createBenchmarkImage(b, b.TempDir(), "bench.exr")
	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		file, err := exrheader.OpenContext(ctx, path)
		if err != nil {
			b.Fatal(err)
		}
		file.Close()
	}
}

// BenchmarkOpenMany measures concurrent parsing of a shot's worth of frames.
func BenchmarkOpenMany(b *testing.B) {
	dir := b.TempDir()
	paths := make([]string, 48)
	for i := range paths {
		paths[i] = createBenchmarkImage(b, dir, fmt.Sprintf("frame.%04d.exr", i+1001))
	}
	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		files, err := exrheader.OpenMany(ctx, paths)
		if err != nil {
			b.Fatal(err)
		}
		for _, f := range files {
			f.Close()
		}
	}
}

// BenchmarkUnmarshal measures header decoding without file I/O.
func BenchmarkUnmarshal(b *testing.B) {
	path := createBenchmarkImage(b, b.TempDir(), "bench.exr")
	f, err := exrheader.Open(path)
	if err != nil {
		b.Fatal(err)
	}
	data, err := exrheader.Marshal(f.Header, f.Version)
	f.Close()
	if err != nil {
		b.Fatal(err)
	}

	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, _, err := exrheader.Unmarshal(data); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkMarshal measures header encoding.
func BenchmarkMarshal(b *testing.B) {
	h := exrheader.NewImageHeader(1920, 1080)
	v := h.RequiredVersion()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := exrheader.Marshal(h, v); err != nil {
			b.Fatal(err)
		}
	}
}
