//go:build !darwin && !dragonfly && !freebsd && !linux && !netbsd && !openbsd && !windows

package binary

import "os"

// Advisory locks are not available on this platform.
func lockFile(*os.File, bool) error { return nil }

func unlockFile(*os.File) error { return nil }
