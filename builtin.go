package autoopen

import "os"

// RegisterBuiltins populates the registry with the standard handler set.
// Registration order is priority order, so the sequence below is load-
// bearing for suffixes with more than one handler.
func (r *Registry) RegisterBuiltins() {
	r.Register(&Handler{Suffixes: []string{".gz"}, Description: "GZip", Capability: "gzip"})
	r.Register(&Handler{Suffixes: []string{".bz2"}, Description: "BZip2", Capability: "bzip2"})
	r.Register(&Handler{Suffixes: []string{".xz"}, Description: "LZMA files (.xz format)", Capability: "xz"})
	r.Register(&Handler{Suffixes: []string{KeyNoSuffix}, Description: "uncompressed files", OpenFunc: openPlain})
	r.Register(&Handler{Suffixes: []string{".lzma"}, Description: "LZMA files (deprecated .lzma format)", Capability: "lzma"})
	r.Register(&Handler{Suffixes: []string{KeyStdio}, Description: "Use - to use stdin/stdout", OpenFunc: openStdio})
	r.Register(&Handler{Suffixes: []string{".zst", ".zstd"}, Description: "ZStandard", Capability: "zstd"})
	r.Register(&Handler{Suffixes: []string{".lz4"}, Description: "LZ4", Capability: "lz4"})
	r.Register(&Handler{Suffixes: []string{".br"}, Description: "Brotli", Capability: "brotli"})
	r.Register(&Handler{Suffixes: []string{".sz", ".snappy"}, Description: "Snappy", Capability: "snappy"})
}

// openPlain opens the file as-is. It backs the no-suffix handler and with
// it the fallback path for every suffix that was never registered.
func openPlain(name string, opts *Options) (Stream, error) {
	m, err := parseMode(opts.Mode)
	if err != nil {
		return nil, err
	}
	return opts.fileSystem().OpenFile(name, m.flag(), opts.Perm)
}

// openStdio returns the process's stdin for read modes and stdout for
// everything else, wrapped so that the caller's Close is a no-op.
func openStdio(name string, opts *Options) (Stream, error) {
	m, err := parseMode(opts.Mode)
	if err != nil {
		return nil, err
	}
	if m.reading() {
		return &stdioStream{r: os.Stdin}, nil
	}
	return &stdioStream{w: os.Stdout}, nil
}
