package exrheader

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/simonhull/exrheader/internal/binary"
)

// WriteFile writes the magic number, v and h to path. The file holds only
// the header; pixel data is appended by the caller's own encoder.
//
// This is an atomic operation: the header is written to a locked temporary
// file in the same directory, synced, and renamed over path. If any step
// fails, an existing file at path is left unchanged.
func WriteFile(path string, h *Header, v FormatVersion, opts ...SaveOption) error {
	options := defaultSaveOptions()
	for _, opt := range opts {
		opt(options)
	}

	fs, err := binary.CreateTemp(filepath.Dir(path), ".exrheader-*.tmp")
	if err != nil {
		return err
	}
	tempPath := fs.Name()

	success := false
	defer func() {
		if !success {
			_ = fs.Close()          //nolint:errcheck // Best effort cleanup
			_ = os.Remove(tempPath) //nolint:errcheck // Best effort cleanup
		}
	}()

	if err := WriteHeader(fs, h, v, WithLogger(options.logger)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := fs.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := fs.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if options.backupSuffix != "" {
		if _, err := os.Stat(path); err == nil {
			if err := os.Rename(path, path+options.backupSuffix); err != nil {
				return fmt.Errorf("create backup: %w", err)
			}
		}
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("rename temp to output: %w", err)
	}
	success = true

	if options.verify {
		if err := verifyWrittenFile(path, h, v); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
	}
	return nil
}

// verifyWrittenFile re-opens path and checks that its header encodes to the
// same bytes as h.
func verifyWrittenFile(path string, h *Header, v FormatVersion) error {
	want, err := Marshal(h, v)
	if err != nil {
		return err
	}

	written, err := Open(path)
	if err != nil {
		return fmt.Errorf("re-open: %w", err)
	}
	defer written.Close() //nolint:errcheck // Best effort close

	got, err := Marshal(written.Header, written.Version)
	if err != nil {
		return fmt.Errorf("re-encode: %w", err)
	}
	if !bytes.Equal(got, want) {
		return fmt.Errorf("header of %d bytes reads back as %d bytes", len(want), len(got))
	}
	return nil
}
