package exrheader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/exrheader/internal/binary"
)

// File is an image file whose header has been read.
//
// File holds a shared advisory lock on the file until Close, so other
// processes that honor the lock cannot rewrite it while it is open. Pixel
// data is not read.
//
// Always call Close() when done to release the lock and the handle:
//
//	f, err := exrheader.Open("beauty.exr")
//	if err != nil {
//		return err
//	}
//	defer f.Close()
type File struct {
	// Path to the image file
	Path string

	// Version word from the file
	Version FormatVersion

	// Parsed header
	Header *Header

	// Offset of the first byte after the header
	HeaderSize int64

	stream *binary.FileStream
}

// Open opens an image file and reads its header.
//
// Options can be provided to customize parsing behavior:
//
//	f, err := exrheader.Open("beauty.exr",
//	    exrheader.WithStrictTypes(),
//	    exrheader.WithValidation(),
//	)
func Open(path string, opts ...Option) (*File, error) {
	fs, err := binary.OpenFile(path)
	if err != nil {
		return nil, err
	}

	h, v, err := ReadHeader(fs, opts...)
	if err != nil {
		_ = fs.Close() //nolint:errcheck // Already failing
		var he *HeaderError
		if errors.As(err, &he) && he.Path == "" {
			he.Path = path
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	pos, err := fs.Seek(0, io.SeekCurrent)
	if err != nil {
		_ = fs.Close() //nolint:errcheck // Already failing
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &File{
		Path:       path,
		Version:    v,
		Header:     h,
		HeaderSize: pos,
		stream:     fs,
	}, nil
}

// OpenContext opens a file after checking ctx. Header parsing itself is not
// interruptible.
func OpenContext(ctx context.Context, path string, opts ...Option) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(path, opts...)
}

// Reader returns the locked file stream. It is initially positioned at
// HeaderSize, the start of the offset table, and stays valid until Close.
func (f *File) Reader() io.ReadSeeker {
	return f.stream
}

// Close releases the lock and the file handle.
//
// After Close is called, the File should not be used.
func (f *File) Close() error {
	if f.stream == nil {
		return nil
	}
	return f.stream.Close()
}

// OpenMany opens multiple image files concurrently.
//
// Files are parsed in parallel using up to runtime.NumCPU() goroutines,
// all sharing the registry given in opts. Results are returned in the same
// order as the input paths.
//
// If any file fails to open, all successfully opened files are closed
// and an error is returned.
//
//	files, err := exrheader.OpenMany(ctx, paths)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer func() {
//		for _, f := range files {
//			f.Close()
//		}
//	}()
func OpenMany(ctx context.Context, paths []string, opts ...Option) ([]*File, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*File, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			file, err := Open(path, opts...)
			if err != nil {
				return err
			}

			results[i] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, file := range results {
			if file != nil {
				_ = file.Close() //nolint:errcheck // Already failing
			}
		}
		return nil, err
	}

	return results, nil
}
