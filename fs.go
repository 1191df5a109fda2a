package autoopen

import (
	"io/fs"
	"os"

	"github.com/absfs/absfs"
)

// FileSystem is the filesystem surface autoopen needs from its host: the
// ability to open one file. The operating system's filesystem is the
// default; any absfs-style filesystem can be plugged in per registry or per
// call, which is also how the tests run against an in-memory filesystem.
type FileSystem interface {
	OpenFile(name string, flag int, perm fs.FileMode) (absfs.File, error)
}

// osFS is the default FileSystem, backed by the os package.
type osFS struct{}

func (osFS) OpenFile(name string, flag int, perm fs.FileMode) (absfs.File, error) {
	return os.OpenFile(name, flag, perm)
}
