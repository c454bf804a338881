//go:build !linux
// +build !linux

package fuse

import "fmt"

type FileEntry struct {
	Name string
	Path string
	Size uint64
}

func Mount(mountpoint string, groups map[string][]FileEntry) error {
	return fmt.Errorf("FUSE mount is only supported on Linux")
}
