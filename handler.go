package autoopen

// OpenFunc is an open implementation with the same contract as the
// package-level Open: opts is never nil when a handler invokes it.
type OpenFunc func(name string, opts *Options) (Stream, error)

// Handler describes one registered backend: the suffixes it answers for, a
// human-readable description for error messages, and either a direct open
// implementation or the name of a capability to derive one from.
//
// Handlers are created once, registered, and live for the process lifetime.
// Construct them as pointers; the loaded-capability memo makes them
// unsuitable for copying.
type Handler struct {
	// Suffixes lists the registry keys this handler answers for,
	// e.g. []string{".zst", ".zstd"}, or one of the Key sentinels.
	Suffixes []string

	// Description is a human-readable label, used in error messages.
	Description string

	// Capability names the codec this handler needs. Empty means the
	// handler has no external dependency and is always supported.
	Capability string

	// OpenFunc, when set, is used directly and Capability is never
	// consulted for opening.
	OpenFunc OpenFunc

	// loaded caches a successfully resolved capability so later opens
	// skip the table lookup. The memo is unsynchronized: two goroutines
	// racing on first use both resolve and one result wins, which is
	// harmless because capability resolution is idempotent.
	loaded Capability
}

// IsSupported reports whether this handler is usable right now. Handlers
// without a capability name are always supported; otherwise the named
// capability must resolve. Resolution failures are absorbed here — they
// only cause this candidate to be skipped.
func (h *Handler) IsSupported() bool {
	if h.Capability == "" {
		return true
	}
	_, err := h.LoadCapability()
	return err == nil
}

// LoadCapability resolves the handler's named capability, caching success.
// It returns (nil, nil) when no capability name is set.
func (h *Handler) LoadCapability() (Capability, error) {
	if h.Capability == "" {
		return nil, nil
	}
	if h.loaded != nil {
		return h.loaded, nil
	}
	c, err := LookupCapability(h.Capability)
	if err != nil {
		return nil, err
	}
	h.loaded = c
	return c, nil
}

// Open opens name with this handler. It does not re-check IsSupported;
// resolution is the caller's job. With a direct OpenFunc the result is
// returned as-is. Otherwise the capability is loaded and the base file is
// opened on opts.FS and wrapped with the codec. A handler configured with
// neither is a construction bug and fails with ErrUnimplemented.
func (h *Handler) Open(name string, opts *Options) (Stream, error) {
	opts = opts.withDefaults()
	if h.OpenFunc != nil {
		return h.OpenFunc(name, opts)
	}
	if h.Capability == "" {
		return nil, ErrUnimplemented
	}
	c, err := h.LoadCapability()
	if err != nil {
		return nil, err
	}
	return openCodec(c, name, opts)
}
