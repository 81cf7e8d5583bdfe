package binary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/simonhull/exrheader/internal/types"
)

// LockMode selects the advisory lock held for the lifetime of a FileStream.
type LockMode int

const (
	// LockShared is taken by readers; several processes may hold it.
	LockShared LockMode = iota
	// LockExclusive is taken by writers.
	LockExclusive
)

func (m LockMode) String() string {
	if m == LockExclusive {
		return "exclusive"
	}
	return "shared"
}

// FileStream is a buffered, seekable file stream that holds an advisory
// whole-file lock until Close.
//
// Seek(0, io.SeekCurrent) reports the logical position (bytes consumed or
// produced by the caller), not the read-ahead or write-behind position of
// the OS file.
type FileStream struct {
	f      *os.File
	mode   LockMode
	br     *bufio.Reader
	bw     *bufio.Writer
	pos    int64
	closed bool
}

// OpenFile opens path for reading under a shared lock.
func OpenFile(path string) (*FileStream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", types.Transport(err))
	}
	fs, err := LockFile(f, LockShared)
	if err != nil {
		_ = f.Close() //nolint:errcheck // Already failing
		return nil, err
	}
	return fs, nil
}

// CreateTemp creates a new file in dir, named from pattern as by
// os.CreateTemp, for writing under an exclusive lock.
func CreateTemp(dir, pattern string) (*FileStream, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", types.Transport(err))
	}
	fs, err := LockFile(f, LockExclusive)
	if err != nil {
		_ = f.Close()           //nolint:errcheck // Already failing
		_ = os.Remove(f.Name()) //nolint:errcheck // Best effort cleanup
		return nil, err
	}
	return fs, nil
}

// LockFile acquires an advisory lock on f and wraps it in a FileStream.
// The lock is not waited for: if another process holds a conflicting lock
// LockFile fails immediately. On success the stream owns f.
func LockFile(f *os.File, mode LockMode) (*FileStream, error) {
	if err := lockFile(f, mode == LockExclusive); err != nil {
		return nil, fmt.Errorf("could not get a %s lock on %s: %w", mode, f.Name(), types.Transport(err))
	}
	pos, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		_ = unlockFile(f) //nolint:errcheck // Already failing
		return nil, fmt.Errorf("seek %s: %w", f.Name(), types.Transport(err))
	}
	fs := &FileStream{f: f, mode: mode, pos: pos}
	if mode == LockExclusive {
		fs.bw = bufio.NewWriter(f)
	} else {
		fs.br = bufio.NewReader(f)
	}
	return fs, nil
}

// Name returns the file name.
func (fs *FileStream) Name() string {
	return fs.f.Name()
}

// Mode returns the lock mode held by the stream.
func (fs *FileStream) Mode() LockMode {
	return fs.mode
}

// Read implements io.Reader. It is only valid on shared (read) streams.
func (fs *FileStream) Read(p []byte) (int, error) {
	if fs.closed {
		return 0, os.ErrClosed
	}
	if fs.br == nil {
		return 0, errors.New("binary: stream not opened for reading")
	}
	n, err := fs.br.Read(p)
	fs.pos += int64(n)
	return n, err
}

// Write implements io.Writer. It is only valid on exclusive (write) streams.
func (fs *FileStream) Write(p []byte) (int, error) {
	if fs.closed {
		return 0, os.ErrClosed
	}
	if fs.bw == nil {
		return 0, errors.New("binary: stream not opened for writing")
	}
	n, err := fs.bw.Write(p)
	fs.pos += int64(n)
	return n, err
}

// Seek implements io.Seeker.
func (fs *FileStream) Seek(offset int64, whence int) (int64, error) {
	if fs.closed {
		return 0, os.ErrClosed
	}
	if whence == io.SeekCurrent {
		if offset == 0 {
			return fs.pos, nil
		}
		offset, whence = fs.pos+offset, io.SeekStart
	}
	if fs.bw != nil {
		if err := fs.bw.Flush(); err != nil {
			return 0, err
		}
	}
	pos, err := fs.f.Seek(offset, whence)
	if err != nil {
		return 0, err
	}
	if fs.br != nil {
		fs.br.Reset(fs.f)
	}
	fs.pos = pos
	return pos, nil
}

// Sync flushes buffered writes and commits the file to stable storage.
func (fs *FileStream) Sync() error {
	if fs.closed {
		return os.ErrClosed
	}
	if fs.bw != nil {
		if err := fs.bw.Flush(); err != nil {
			return err
		}
	}
	return fs.f.Sync()
}

// Close flushes pending writes, releases the lock and closes the file.
// The lock and the handle are released even when flushing fails. Calling
// Close more than once is a no-op.
func (fs *FileStream) Close() error {
	if fs.closed {
		return nil
	}
	fs.closed = true

	var errs []error
	if fs.bw != nil {
		errs = append(errs, fs.bw.Flush())
	}
	errs = append(errs, unlockFile(fs.f), fs.f.Close())
	if err := errors.Join(errs...); err != nil {
		return types.Transport(err)
	}
	return nil
}
