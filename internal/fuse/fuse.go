//go:build linux
// +build linux

package fuse

import (
	"context"
	"os"
	"sort"
	"sync"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
)

// FileEntry is one classified file exposed through the mount.
type FileEntry struct {
	Name string // name inside the format directory
	Path string // real path of the backing file
	Size uint64
}

// FormatFS exposes a classified file tree as a read-only filesystem with
// one directory per format short name:
//
//	<mountpoint>/MP3/track01.mp3
//	<mountpoint>/FLAC/track02.flac
type FormatFS struct {
	mtx    sync.RWMutex
	groups map[string][]FileEntry

	mountpoint string
}

func NewFormatFS(mountpoint string, groups map[string][]FileEntry) *FormatFS {
	return &FormatFS{
		groups:     groups,
		mountpoint: mountpoint,
	}
}

func (f *FormatFS) Root() (fs.Node, error) {
	return &rootDir{fs: f}, nil
}

// rootDir lists one directory per format.
type rootDir struct {
	fs *FormatFS
}

func (*rootDir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = os.ModeDir | 0555
	return nil
}

func (d *rootDir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	d.fs.mtx.RLock()
	defer d.fs.mtx.RUnlock()

	if _, ok := d.fs.groups[name]; ok {
		return &formatDir{fs: d.fs, format: name}, nil
	}
	return nil, fuse.ENOENT
}

func (d *rootDir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	d.fs.mtx.RLock()
	defer d.fs.mtx.RUnlock()

	dirEntries := make([]fuse.Dirent, 0, len(d.fs.groups))
	for name := range d.fs.groups {
		dirEntries = append(dirEntries, fuse.Dirent{
			Name: name,
			Type: fuse.DT_Dir,
		})
	}
	sort.Slice(dirEntries, func(i, j int) bool {
		return dirEntries[i].Name < dirEntries[j].Name
	})
	for i := range dirEntries {
		dirEntries[i].Inode = uint64(i + 1)
	}
	return dirEntries, nil
}

// formatDir lists the files classified under one format.
type formatDir struct {
	fs     *FormatFS
	format string
}

func (*formatDir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = os.ModeDir | 0555
	return nil
}

func (d *formatDir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	d.fs.mtx.RLock()
	defer d.fs.mtx.RUnlock()

	for _, e := range d.fs.groups[d.format] {
		if e.Name == name {
			return &file{entry: e}, nil
		}
	}
	return nil, fuse.ENOENT
}

func (d *formatDir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	d.fs.mtx.RLock()
	defer d.fs.mtx.RUnlock()

	entries := d.fs.groups[d.format]

	dirEntries := make([]fuse.Dirent, len(entries))
	for i, e := range entries {
		dirEntries[i] = fuse.Dirent{
			Inode: uint64(i + 1),
			Name:  e.Name,
			Type:  fuse.DT_File,
		}
	}
	sort.Slice(dirEntries, func(i, j int) bool {
		return dirEntries[i].Name < dirEntries[j].Name
	})
	return dirEntries, nil
}

// file proxies reads to the real file on disk.
type file struct {
	entry FileEntry
}

func (f *file) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = 0444
	a.Size = f.entry.Size
	a.Mtime = time.Now()
	return nil
}

func (f *file) Open(ctx context.Context, req *fuse.OpenRequest, resp *fuse.OpenResponse) (fs.Handle, error) {
	src, err := os.Open(f.entry.Path)
	if err != nil {
		return nil, err
	}
	return &fileHandle{src: src}, nil
}

type fileHandle struct {
	src *os.File
}

func (h *fileHandle) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	buf := make([]byte, req.Size)
	n, err := h.src.ReadAt(buf, req.Offset)
	if err != nil && n == 0 {
		// Reading at or past EOF yields an empty response, not an error.
		resp.Data = []byte{}
		return nil
	}
	resp.Data = buf[:n]
	return nil
}

func (h *fileHandle) Release(ctx context.Context, req *fuse.ReleaseRequest) error {
	return h.src.Close()
}
