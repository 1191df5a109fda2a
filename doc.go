// Package autoopen transparently opens files that are compressed with one of
// the common single-file compression formats (gzip, bzip2, xz, zstd, ...),
// selecting the right codec from the filename's last suffix.
//
// Tool developers can write something like:
//
//	f, err := autoopen.Open(os.Args[1], &autoopen.Options{Mode: "wt"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//	io.WriteString(f, "Hello world!\n")
//
// If the user passes "hello.txt" the file is written as plain text, with
// "hello.txt.gz" it is gzip compressed, and with the special name "-" the
// data goes to stdout (or comes from stdin in read modes).
//
// # How resolution works
//
// Open looks up the filename's last dotted suffix in a handler registry.
// Each registry key maps to an ordered list of handlers; the first handler
// that reports itself as supported wins. A handler is supported when it
// either carries its own open implementation or names a capability (a
// compression codec) that is present in the capability table. Filenames
// whose suffix was never registered fall back to the plain uncompressed
// handler, so ordinary files just work.
//
// Use FindHandler to resolve a filename without opening it, and Register /
// RegisterCapability to add formats of your own.
//
// # Built-in formats
//
//   - .gz            gzip (compress/gzip)
//   - .bz2           bzip2 (github.com/dsnet/compress/bzip2)
//   - .xz            xz (github.com/ulikunitz/xz)
//   - .lzma          legacy lzma container (github.com/ulikunitz/xz/lzma)
//   - .zst, .zstd    Zstandard (github.com/klauspost/compress/zstd)
//   - .lz4           LZ4 (github.com/pierrec/lz4)
//   - .br            Brotli (github.com/andybalholm/brotli)
//   - .sz, .snappy   Snappy (github.com/golang/snappy)
//   - "-"            stdin/stdout, Close is a no-op
//   - anything else  plain open
//
// # Concurrency
//
// Register all handlers and capabilities during a single-threaded startup
// phase. After that, resolution and opening are safe to call from multiple
// goroutines; the registry itself is not locked.
package autoopen
