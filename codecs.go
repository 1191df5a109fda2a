package autoopen

import (
	"compress/gzip"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/dsnet/compress/bzip2"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

// Built-in codecs. Each is registered in the capability table under the
// name the matching handler asks for.

func init() {
	RegisterCapability("gzip", gzipCapability{})
	RegisterCapability("bzip2", bzip2Capability{})
	RegisterCapability("xz", xzCapability{})
	RegisterCapability("lzma", lzmaCapability{})
	RegisterCapability("zstd", zstdCapability{})
	RegisterCapability("lz4", lz4Capability{})
	RegisterCapability("brotli", brotliCapability{})
	RegisterCapability("snappy", snappyCapability{})
}

// Gzip implementation using the standard library.
type gzipCapability struct{}

func (gzipCapability) NewReader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

func (gzipCapability) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return gzip.NewWriter(w), nil
}

// Bzip2 implementation using github.com/dsnet/compress, which unlike
// compress/bzip2 can also write.
type bzip2Capability struct{}

func (bzip2Capability) NewReader(r io.Reader) (io.ReadCloser, error) {
	return bzip2.NewReader(r, nil)
}

func (bzip2Capability) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return bzip2.NewWriter(w, &bzip2.WriterConfig{Level: bzip2.DefaultCompression})
}

// Xz implementation using github.com/ulikunitz/xz.
type xzCapability struct{}

func (xzCapability) NewReader(r io.Reader) (io.ReadCloser, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(xr), nil
}

func (xzCapability) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return xz.NewWriter(w)
}

// Lzma handles the deprecated raw .lzma container, the xz library's
// equivalent of lzma's FORMAT_ALONE.
type lzmaCapability struct{}

func (lzmaCapability) NewReader(r io.Reader) (io.ReadCloser, error) {
	lr, err := lzma.NewReader(r)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(lr), nil
}

func (lzmaCapability) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return lzma.NewWriter(w)
}

// Zstandard implementation using github.com/klauspost/compress/zstd.
type zstdCapability struct{}

func (zstdCapability) NewReader(r io.Reader) (io.ReadCloser, error) {
	decoder, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return decoder.IOReadCloser(), nil
}

func (zstdCapability) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return zstd.NewWriter(w)
}

// LZ4 implementation using github.com/pierrec/lz4.
type lz4Capability struct{}

func (lz4Capability) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}

func (lz4Capability) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return lz4.NewWriter(w), nil
}

// Brotli implementation using github.com/andybalholm/brotli.
type brotliCapability struct{}

func (brotliCapability) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(brotli.NewReader(r)), nil
}

func (brotliCapability) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return brotli.NewWriter(w), nil
}

// Snappy implementation using github.com/golang/snappy (framed format).
type snappyCapability struct{}

func (snappyCapability) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(snappy.NewReader(r)), nil
}

func (snappyCapability) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return snappy.NewBufferedWriter(w), nil
}
