package autoopen

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

const helloText = "Hello World!\n"

func newTestRegistry(t *testing.T) (*Registry, *MemFS) {
	t.Helper()
	fsys := NewMemFS()
	r := NewRegistry(fsys)
	r.RegisterBuiltins()
	return r, fsys
}

func TestOpenRoundTrip(t *testing.T) {
	suffixes := []string{
		"", ".gz", ".bz2", ".xz", ".lzma", ".zst", ".zstd",
		".lz4", ".br", ".sz", ".snappy",
	}

	for _, suffix := range suffixes {
		name := "hello.txt" + suffix
		t.Run(name, func(t *testing.T) {
			r, fsys := newTestRegistry(t)

			f, err := r.Open(name, &Options{Mode: "wt"})
			if err != nil {
				t.Fatalf("Open for writing error = %v", err)
			}
			if _, err := io.WriteString(f, helloText); err != nil {
				t.Fatalf("WriteString error = %v", err)
			}
			if err := f.Close(); err != nil {
				t.Fatalf("Close error = %v", err)
			}

			// The file must exist under exactly the requested name.
			info, err := fsys.Stat(name)
			if err != nil {
				t.Fatalf("Stat(%q) error = %v", name, err)
			}
			if info.Size() == 0 {
				t.Fatal("nothing was written to the base file")
			}

			f, err = r.Open(name, nil)
			if err != nil {
				t.Fatalf("Open for reading error = %v", err)
			}
			got, err := io.ReadAll(f)
			if err != nil {
				t.Fatalf("ReadAll error = %v", err)
			}
			if err := f.Close(); err != nil {
				t.Fatalf("Close error = %v", err)
			}

			if string(got) != helloText {
				t.Errorf("round trip = %q, want %q", got, helloText)
			}
		})
	}
}

func TestOpenCompressesOnDisk(t *testing.T) {
	r, fsys := newTestRegistry(t)

	f, err := r.Open("data.txt.gz", &Options{Mode: "wt"})
	if err != nil {
		t.Fatalf("Open error = %v", err)
	}
	io.WriteString(f, helloText)
	f.Close()

	raw, err := fsys.OpenFile("data.txt.gz", 0, 0)
	if err != nil {
		t.Fatalf("OpenFile error = %v", err)
	}
	stored, err := io.ReadAll(raw)
	if err != nil {
		t.Fatalf("ReadAll error = %v", err)
	}
	raw.Close()

	if bytes.Equal(stored, []byte(helloText)) {
		t.Error("stored bytes equal the plain text; no compression happened")
	}
	if len(stored) < 2 || stored[0] != 0x1f || stored[1] != 0x8b {
		t.Errorf("stored bytes do not start with the gzip magic: % x", stored[:min(4, len(stored))])
	}
}

func TestOpenUnregisteredSuffixIsPlain(t *testing.T) {
	r, fsys := newTestRegistry(t)

	f, err := r.Open("hello.data", &Options{Mode: "wt"})
	if err != nil {
		t.Fatalf("Open error = %v", err)
	}
	io.WriteString(f, helloText)
	f.Close()

	raw, err := fsys.OpenFile("hello.data", 0, 0)
	if err != nil {
		t.Fatalf("OpenFile error = %v", err)
	}
	stored, _ := io.ReadAll(raw)
	raw.Close()

	if string(stored) != helloText {
		t.Errorf("unregistered suffix stored %q, want the plain text", stored)
	}
}

func TestOpenNoCompressorAvailable(t *testing.T) {
	r, _ := newTestRegistry(t)
	r.Register(&Handler{
		Suffixes:    []string{".doesnotexist"},
		Description: "Not Existing format",
		Capability:  "doesnotexist",
	})

	_, err := r.Open("hello.txt.doesnotexist", nil)
	var nce *NoCompressorError
	if !errors.As(err, &nce) {
		t.Fatalf("Open error = %v, want *NoCompressorError", err)
	}
}

func TestOpenInvalidMode(t *testing.T) {
	r, _ := newTestRegistry(t)

	for _, mode := range []string{"q", "r+", "rw"} {
		if _, err := r.Open("x.gz", &Options{Mode: mode}); !errors.Is(err, ErrInvalidMode) {
			t.Errorf("Open with mode %q error = %v, want ErrInvalidMode", mode, err)
		}
	}
}

func TestStreamDirection(t *testing.T) {
	r, _ := newTestRegistry(t)

	w, err := r.Open("dir.txt.gz", &Options{Mode: "wt"})
	if err != nil {
		t.Fatalf("Open error = %v", err)
	}
	if _, err := w.Read(make([]byte, 1)); !errors.Is(err, ErrNotReadable) {
		t.Errorf("Read on write stream error = %v, want ErrNotReadable", err)
	}
	io.WriteString(w, helloText)
	w.Close()

	f, err := r.Open("dir.txt.gz", nil)
	if err != nil {
		t.Fatalf("Open error = %v", err)
	}
	defer f.Close()
	if _, err := f.Write([]byte("x")); !errors.Is(err, ErrNotWritable) {
		t.Errorf("Write on read stream error = %v, want ErrNotWritable", err)
	}
}

func TestOpenBackendErrorPassesThrough(t *testing.T) {
	r, fsys := newTestRegistry(t)

	// Plant garbage where gzip data is expected.
	raw, err := fsys.OpenFile("broken.txt.gz", os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		t.Fatalf("OpenFile error = %v", err)
	}
	raw.Write([]byte("this is not gzip"))
	raw.Close()

	_, err = r.Open("broken.txt.gz", nil)
	if err == nil {
		t.Fatal("Open on corrupt data should fail")
	}
	var nce *NoCompressorError
	if errors.As(err, &nce) {
		t.Error("backend failure must not be reported as NoCompressorError")
	}
}

func TestOpenAppendMode(t *testing.T) {
	r, _ := newTestRegistry(t)

	for i := 0; i < 2; i++ {
		f, err := r.Open("log.txt", &Options{Mode: "at"})
		if err != nil {
			t.Fatalf("Open error = %v", err)
		}
		io.WriteString(f, "line\n")
		f.Close()
	}

	f, err := r.Open("log.txt", nil)
	if err != nil {
		t.Fatalf("Open error = %v", err)
	}
	got, _ := io.ReadAll(f)
	f.Close()

	if string(got) != "line\nline\n" {
		t.Errorf("append result = %q, want two lines", got)
	}
}

func TestOpenExclusiveMode(t *testing.T) {
	r, _ := newTestRegistry(t)

	f, err := r.Open("once.txt", &Options{Mode: "xt"})
	if err != nil {
		t.Fatalf("first exclusive Open error = %v", err)
	}
	f.Close()

	if _, err := r.Open("once.txt", &Options{Mode: "xt"}); err == nil {
		t.Error("second exclusive Open should fail")
	}
}

func TestDefaultRegistry(t *testing.T) {
	h, err := FindHandler("foo.txt.gz")
	if err != nil {
		t.Fatalf("FindHandler error = %v", err)
	}
	if h.Description != "GZip" {
		t.Errorf("FindHandler description = %q, want %q", h.Description, "GZip")
	}
	if Default() != Default() {
		t.Error("Default must return the same registry")
	}
}

func TestReadWriteFileHelpers(t *testing.T) {
	dir := t.TempDir()
	data := []byte("helper round trip data, compressed transparently\n")

	for _, name := range []string{"note.txt", "note.txt.gz", "note.txt.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := WriteFile(path, data, 0o644); err != nil {
				t.Fatalf("WriteFile error = %v", err)
			}
			got, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile error = %v", err)
			}
			if !bytes.Equal(got, data) {
				t.Errorf("ReadFile = %q, want %q", got, data)
			}
		})
	}
}
