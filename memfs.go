package autoopen

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/absfs/absfs"
)

// MemFS is a small in-memory FileSystem, mainly for tests and examples.
type MemFS struct {
	mu    sync.Mutex
	files map[string]*memData
}

// NewMemFS creates an empty in-memory filesystem.
func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string]*memData)}
}

// memData is the stored content of one file; handles share it.
type memData struct {
	name    string
	buf     []byte
	mode    fs.FileMode
	modTime time.Time
}

// normalizePath normalizes a path for consistent storage and lookup.
func normalizePath(name string) string {
	name = filepath.Clean(name)
	name = strings.TrimPrefix(name, "/")
	if name == "" || name == "." {
		name = "."
	}
	return name
}

// OpenFile opens a file honoring the create/truncate/append/exclusive flags.
func (m *MemFS) OpenFile(name string, flag int, perm fs.FileMode) (absfs.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name = normalizePath(name)
	d, exists := m.files[name]
	if flag&os.O_CREATE != 0 {
		if exists && flag&os.O_EXCL != 0 {
			return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrExist}
		}
		if !exists {
			d = &memData{name: name, mode: perm, modTime: time.Now()}
			m.files[name] = d
		}
	}
	if d == nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	if flag&os.O_TRUNC != 0 {
		d.buf = nil
		d.modTime = time.Now()
	}
	f := &memFile{fs: m, d: d, flag: flag}
	if flag&os.O_APPEND != 0 {
		f.pos = int64(len(d.buf))
	}
	return f, nil
}

// Stat returns file information without opening the file.
func (m *MemFS) Stat(name string) (fs.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name = normalizePath(name)
	d, exists := m.files[name]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return d.info(), nil
}

// Remove deletes a file.
func (m *MemFS) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name = normalizePath(name)
	if _, exists := m.files[name]; !exists {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	delete(m.files, name)
	return nil
}

// Names returns the stored file names in sorted order.
func (m *MemFS) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (d *memData) info() fs.FileInfo {
	return &memFileInfo{
		name:    filepath.Base(d.name),
		size:    int64(len(d.buf)),
		mode:    d.mode,
		modTime: d.modTime,
	}
}

// memFile is one open handle on a memData.
type memFile struct {
	fs     *MemFS
	d      *memData
	flag   int
	pos    int64
	closed bool
}

func (f *memFile) writable() bool {
	return f.flag&(os.O_WRONLY|os.O_RDWR) != 0
}

func (f *memFile) readable() bool {
	return f.flag&os.O_WRONLY == 0
}

func (f *memFile) Name() string { return f.d.name }

func (f *memFile) Read(p []byte) (int, error) {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	if f.closed {
		return 0, fs.ErrClosed
	}
	if !f.readable() {
		return 0, &fs.PathError{Op: "read", Path: f.d.name, Err: fs.ErrPermission}
	}
	if f.pos >= int64(len(f.d.buf)) {
		return 0, io.EOF
	}
	n := copy(p, f.d.buf[f.pos:])
	f.pos += int64(n)
	return n, nil
}

func (f *memFile) ReadAt(p []byte, off int64) (int, error) {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	if f.closed {
		return 0, fs.ErrClosed
	}
	if off >= int64(len(f.d.buf)) {
		return 0, io.EOF
	}
	n := copy(p, f.d.buf[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (f *memFile) Write(p []byte) (int, error) {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	if f.closed {
		return 0, fs.ErrClosed
	}
	if !f.writable() {
		return 0, &fs.PathError{Op: "write", Path: f.d.name, Err: fs.ErrPermission}
	}
	if f.flag&os.O_APPEND != 0 {
		f.pos = int64(len(f.d.buf))
	}
	f.d.buf = writeAt(f.d.buf, p, f.pos)
	f.pos += int64(len(p))
	f.d.modTime = time.Now()
	return len(p), nil
}

func (f *memFile) WriteAt(p []byte, off int64) (int, error) {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	if f.closed {
		return 0, fs.ErrClosed
	}
	if !f.writable() {
		return 0, &fs.PathError{Op: "write", Path: f.d.name, Err: fs.ErrPermission}
	}
	f.d.buf = writeAt(f.d.buf, p, off)
	f.d.modTime = time.Now()
	return len(p), nil
}

// writeAt overwrites buf with p at offset off, growing buf as needed.
func writeAt(buf, p []byte, off int64) []byte {
	end := off + int64(len(p))
	for int64(len(buf)) < end {
		buf = append(buf, 0)
	}
	copy(buf[off:end], p)
	return buf
}

func (f *memFile) Seek(offset int64, whence int) (int64, error) {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	if f.closed {
		return 0, fs.ErrClosed
	}
	switch whence {
	case io.SeekStart:
		f.pos = offset
	case io.SeekCurrent:
		f.pos += offset
	case io.SeekEnd:
		f.pos = int64(len(f.d.buf)) + offset
	}
	if f.pos < 0 {
		f.pos = 0
		return 0, &fs.PathError{Op: "seek", Path: f.d.name, Err: fs.ErrInvalid}
	}
	return f.pos, nil
}

func (f *memFile) Close() error {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	if f.closed {
		return fs.ErrClosed
	}
	f.closed = true
	return nil
}

func (f *memFile) Stat() (fs.FileInfo, error) {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()
	return f.d.info(), nil
}

func (f *memFile) Sync() error { return nil }

func (f *memFile) Truncate(size int64) error {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	if f.closed {
		return fs.ErrClosed
	}
	for int64(len(f.d.buf)) < size {
		f.d.buf = append(f.d.buf, 0)
	}
	f.d.buf = f.d.buf[:size]
	return nil
}

func (f *memFile) WriteString(s string) (int, error) {
	return f.Write([]byte(s))
}

func (f *memFile) Readdir(n int) ([]os.FileInfo, error) {
	return nil, &fs.PathError{Op: "readdir", Path: f.d.name, Err: fs.ErrInvalid}
}

func (f *memFile) Readdirnames(n int) ([]string, error) {
	return nil, &fs.PathError{Op: "readdirnames", Path: f.d.name, Err: fs.ErrInvalid}
}

// memFileInfo implements fs.FileInfo for in-memory files.
type memFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (fi *memFileInfo) Name() string       { return fi.name }
func (fi *memFileInfo) Size() int64        { return fi.size }
func (fi *memFileInfo) Mode() fs.FileMode  { return fi.mode }
func (fi *memFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *memFileInfo) IsDir() bool        { return false }
func (fi *memFileInfo) Sys() interface{}   { return nil }
