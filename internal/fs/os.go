//go:build !windows
// +build !windows

package fs

import "os"

// Open opens path read-only. Classification never writes, so the plain
// os.Open suffices everywhere except windows, which needs a wider share
// mode (see windows.go).
func Open(path string) (File, error) {
	return os.Open(path)
}
