package autoopen

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"
)

var (
	ErrUnimplemented     = errors.New("autoopen: handler has neither an open function nor a capability")
	ErrUnknownCapability = errors.New("autoopen: unknown capability")
	ErrInvalidMode       = errors.New("autoopen: invalid mode")
	ErrNotReadable       = errors.New("autoopen: stream not open for reading")
	ErrNotWritable       = errors.New("autoopen: stream not open for writing")
)

// NoCompressorError is returned by checked resolution when a filename's
// suffix has registered handlers but none of them is currently usable.
// Candidates holds every handler that was tried, so the message can tell
// the user which capability needs installing.
type NoCompressorError struct {
	Filename   string
	Candidates []*Handler
}

func (e *NoCompressorError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "autoopen: the file %s is compressed, but no matching compressor is available. Failed to load:", e.Filename)
	for _, c := range e.Candidates {
		fmt.Fprintf(&b, "\n - %s for %s", c.Capability, c.Description)
	}
	return b.String()
}

// Stream is the file-like value returned by Open. Streams opened in a read
// mode reject writes with ErrNotWritable and vice versa. Callers must Close
// the stream on all exit paths; the stdio streams make Close a no-op.
type Stream interface {
	io.Reader
	io.Writer
	io.Closer
}

// Options configures a single Open call. A nil *Options means mode "rt",
// permissions 0666 and the operating system's filesystem, mirroring the
// zero-config path of compressfs.New(base, nil).
type Options struct {
	// Mode is an open mode string: one of "r", "w", "a", "x" with an
	// optional "t" or "b" qualifier (default "rt").
	Mode string

	// Perm is the permission for newly created files (default 0666).
	Perm fs.FileMode

	// FS is the filesystem the underlying file is opened on.
	// Nil means the operating system's filesystem.
	FS FileSystem
}

// withDefaults returns a copy of o with unset fields filled in.
func (o *Options) withDefaults() *Options {
	v := Options{Mode: "rt", Perm: 0666}
	if o != nil {
		v = *o
		if v.Mode == "" {
			v.Mode = "rt"
		}
		if v.Perm == 0 {
			v.Perm = 0666
		}
	}
	return &v
}

// fileSystem returns the filesystem to open base files on.
func (o *Options) fileSystem() FileSystem {
	if o != nil && o.FS != nil {
		return o.FS
	}
	return osFS{}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide registry, populated with the built-in
// handlers on first use. Further registration into it should happen during
// startup, before concurrent use.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry(nil)
		defaultRegistry.RegisterBuiltins()
	})
	return defaultRegistry
}

// Open opens a file through the default registry, transparently
// (de-)compressing it by filename.
//
// The filename's last suffix selects the compression handler; unknown or
// missing suffixes fall back to plain open. The special name "-" yields
// stdin or stdout depending on the mode.
func Open(name string, opts *Options) (Stream, error) {
	return Default().Open(name, opts)
}

// FindHandler resolves a filename against the default registry.
// It fails with *NoCompressorError when the suffix is registered but no
// handler for it is usable.
func FindHandler(name string) (*Handler, error) {
	return Default().FindHandler(name)
}

// LookupHandler is the unchecked variant of FindHandler: it returns nil
// instead of an error when no usable handler exists.
func LookupHandler(name string) *Handler {
	return Default().LookupHandler(name)
}

// Register adds a handler to the default registry.
func Register(h *Handler) {
	Default().Register(h)
}
