package autoopen

import (
	"fmt"
	"io"
)

// Capability is a compression codec: the external dependency a handler
// needs to actually read or write its format. Resolving a name in the
// capability table is this package's equivalent of probing an optional
// import — a handler whose capability is missing from the table is simply
// skipped during resolution.
type Capability interface {
	// NewReader wraps r to decompress data read from it.
	NewReader(r io.Reader) (io.ReadCloser, error)
	// NewWriter wraps w to compress data written to it.
	NewWriter(w io.Writer) (io.WriteCloser, error)
}

// capabilities is the process-wide capability table. Like the handler
// registry it is populated at startup and unlocked; register before
// concurrent use.
var capabilities = make(map[string]Capability)

// RegisterCapability makes a codec available under name. Registering an
// existing name replaces it, which tests use to stub codecs out.
func RegisterCapability(name string, c Capability) {
	capabilities[name] = c
}

// LookupCapability resolves a capability name, or fails with
// ErrUnknownCapability when nothing is registered under it.
func LookupCapability(name string) (Capability, error) {
	if c, ok := capabilities[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownCapability, name)
}
