package exrheader

import (
	"github.com/rs/zerolog"
)

// SaveOption configures WriteFile.
//
//	err := exrheader.WriteFile("out.exr", h, h.RequiredVersion(),
//	    exrheader.WithBackup(".bak"),
//	    exrheader.WithVerify(),
//	)
type SaveOption func(*saveOptions)

// saveOptions holds configuration for saving files.
type saveOptions struct {
	backupSuffix string         // Suffix for backup file (e.g., ".bak")
	verify       bool           // Re-read after write and compare
	logger       zerolog.Logger // Passed to WriteHeader
}

// defaultSaveOptions returns the default configuration for saving.
func defaultSaveOptions() *saveOptions {
	return &saveOptions{logger: zerolog.Nop()}
}

// WithBackup renames an existing file at the output path before replacing
// it. The backup file has suffix appended to the original name, so
// WithBackup(".bak") keeps "beauty.exr.bak".
//
// If the backup file already exists, it will be overwritten.
func WithBackup(suffix string) SaveOption {
	return func(o *saveOptions) {
		o.backupSuffix = suffix
	}
}

// WithVerify re-reads the written file and checks that it encodes to the
// same bytes as the header that was saved.
func WithVerify() SaveOption {
	return func(o *saveOptions) {
		o.verify = true
	}
}

// WithSaveLogger sends a debug event for every encoded attribute.
func WithSaveLogger(logger zerolog.Logger) SaveOption {
	return func(o *saveOptions) {
		o.logger = logger
	}
}
