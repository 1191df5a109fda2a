package autoopen

import (
	"fmt"
	"io"
	"os"

	"github.com/absfs/absfs"
)

// openMode is a parsed open mode string.
type openMode struct {
	op     byte // one of 'r', 'w', 'a', 'x'
	binary bool
}

// parseMode parses mode strings in the style of the classic open call:
// exactly one of "r", "w", "a", "x" with an optional "t" or "b" qualifier.
// Text and binary are the same thing for a byte stream, so the qualifier is
// accepted and ignored. "+" is rejected: compressed streams only go one way.
func parseMode(mode string) (openMode, error) {
	var m openMode
	var ops, quals int
	for i := 0; i < len(mode); i++ {
		switch c := mode[i]; c {
		case 'r', 'w', 'a', 'x':
			m.op = c
			ops++
		case 'b':
			m.binary = true
			quals++
		case 't':
			quals++
		default:
			return openMode{}, fmt.Errorf("%w %q", ErrInvalidMode, mode)
		}
	}
	if ops != 1 || quals > 1 {
		return openMode{}, fmt.Errorf("%w %q", ErrInvalidMode, mode)
	}
	return m, nil
}

// reading reports whether the mode reads rather than writes.
func (m openMode) reading() bool { return m.op == 'r' }

// flag converts the mode to os.OpenFile flags.
func (m openMode) flag() int {
	switch m.op {
	case 'w':
		return os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case 'a':
		return os.O_WRONLY | os.O_CREATE | os.O_APPEND
	case 'x':
		return os.O_WRONLY | os.O_CREATE | os.O_EXCL
	default:
		return os.O_RDONLY
	}
}

// openCodec opens the base file for name on opts.FS and wraps it with the
// codec. This is the derived open operation of capability-backed handlers.
func openCodec(c Capability, name string, opts *Options) (Stream, error) {
	m, err := parseMode(opts.Mode)
	if err != nil {
		return nil, err
	}
	f, err := opts.fileSystem().OpenFile(name, m.flag(), opts.Perm)
	if err != nil {
		return nil, err
	}
	if m.reading() {
		rc, err := c.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &readStream{r: rc, base: f}, nil
	}
	wc, err := c.NewWriter(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &writeStream{w: wc, base: f}, nil
}

// readStream is a decompressing stream over a base file.
type readStream struct {
	r    io.ReadCloser
	base absfs.File
}

func (s *readStream) Read(p []byte) (int, error) { return s.r.Read(p) }

func (s *readStream) Write(p []byte) (int, error) { return 0, ErrNotWritable }

func (s *readStream) Close() error {
	err := s.r.Close()
	if cerr := s.base.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// writeStream is a compressing stream over a base file. Close flushes the
// codec before closing the file.
type writeStream struct {
	w    io.WriteCloser
	base absfs.File
}

func (s *writeStream) Read(p []byte) (int, error) { return 0, ErrNotReadable }

func (s *writeStream) Write(p []byte) (int, error) { return s.w.Write(p) }

func (s *writeStream) Close() error {
	err := s.w.Close()
	if cerr := s.base.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// stdioStream wraps one of the process-wide standard streams. Close is a
// no-op: stdin and stdout outlive any caller and must never be closed here.
type stdioStream struct {
	r io.Reader
	w io.Writer
}

func (s *stdioStream) Read(p []byte) (int, error) {
	if s.r == nil {
		return 0, ErrNotReadable
	}
	return s.r.Read(p)
}

func (s *stdioStream) Write(p []byte) (int, error) {
	if s.w == nil {
		return 0, ErrNotWritable
	}
	return s.w.Write(p)
}

func (s *stdioStream) Close() error { return nil }
