package userdata

import (
	"os"
	"runtime"
)

// chmod sets permission bits. Windows has no Unix permission bits, so it is
// a no-op there.
func chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// permOK reports whether actual matches want, always true on Windows.
func permOK(actual, want os.FileMode) bool {
	return runtime.GOOS == "windows" || actual == want
}
