//go:build !unix

package storage

import "os"

// Advisory locking is a no-op where flock is unavailable.
func lockFile(*os.File) error { return nil }

func unlockFile(*os.File) {}
