//go:build windows
// +build windows

package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/windows"
)

// Open opens path read-only with a share mode that tolerates other readers
// and writers, since media libraries are routinely open in players while
// being classified. Paths longer than MAX_PATH are promoted to the
// extended-length form.
func Open(path string) (File, error) {
	if len(path) >= windows.MAX_PATH && !strings.HasPrefix(path, `\\?\`) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %q: %w", path, err)
		}
		path = `\\?\` + abs
	}

	pathp, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}

	h, err := windows.CreateFile(
		pathp,
		windows.GENERIC_READ,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_ATTRIBUTE_NORMAL,
		0,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	return os.NewFile(uintptr(h), path), nil
}
