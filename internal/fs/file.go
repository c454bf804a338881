package fs

import (
	"io"
	"os"
)

// File is the read surface resolution needs: sequential reads, rewinding
// between recognition passes, and Stat for sizes.
type File interface {
	io.ReadSeekCloser
	io.ReaderAt
	Stat() (os.FileInfo, error)
}
