package autoopen

import (
	"io"
	"io/fs"
)

// ReadFile reads the whole file through the default registry, transparently
// decompressing it by filename.
func ReadFile(name string) ([]byte, error) {
	f, err := Open(name, nil)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(f)
	if cerr := f.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// WriteFile writes data through the default registry, transparently
// compressing it by filename.
func WriteFile(name string, data []byte, perm fs.FileMode) error {
	f, err := Open(name, &Options{Mode: "wb", Perm: perm})
	if err != nil {
		return err
	}
	_, err = f.Write(data)
	if cerr := f.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
