package autoopen

import (
	"path/filepath"
	"sort"
	"strings"
)

// Registry keys that are not ordinary suffixes.
const (
	// KeyStdio is the registry key for the stdio pseudo-filename "-".
	KeyStdio = "-"

	// KeyNoSuffix is the registry key for filenames without a suffix.
	// The handler registered under it doubles as the fallback for
	// suffixes that were never registered.
	KeyNoSuffix = ""
)

// Registry maps a suffix key to the ordered list of handlers answering for
// it. Registration order is priority order: the first supported handler in
// a key's list wins.
//
// A Registry is not locked. Populate it before handing it to concurrent
// users and treat it as append-only afterwards.
type Registry struct {
	handlers map[string][]*Handler
	fs       FileSystem
}

// NewRegistry creates an empty registry whose Open calls use fsys as the
// base filesystem. A nil fsys means the operating system's filesystem.
// Call RegisterBuiltins to populate it with the standard handler set.
func NewRegistry(fsys FileSystem) *Registry {
	return &Registry{
		handlers: make(map[string][]*Handler),
		fs:       fsys,
	}
}

// Register appends h to the list of every key in h.Suffixes, creating lists
// as needed. Suffix keys are matched case-insensitively and normalized to
// lower case. Registering the same handler twice under the same key keeps
// both entries; callers must avoid double registration.
func (r *Registry) Register(h *Handler) {
	for _, suffix := range h.Suffixes {
		key := normalizeKey(suffix)
		r.handlers[key] = append(r.handlers[key], h)
	}
}

// Lookup returns the handler list for a key, or nil if the key was never
// registered.
func (r *Registry) Lookup(key string) []*Handler {
	return r.handlers[normalizeKey(key)]
}

// Keys returns all registered keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.handlers))
	for key := range r.handlers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// FindHandler resolves a filename to the first usable handler for its
// suffix. When the suffix has registered handlers but none is usable it
// fails with *NoCompressorError; when the suffix was never registered at
// all it falls back to the plain handler under KeyNoSuffix.
func (r *Registry) FindHandler(name string) (*Handler, error) {
	return r.findHandler(name, true)
}

// LookupHandler is the unchecked variant of FindHandler: it returns nil
// instead of an error when no usable handler exists.
func (r *Registry) LookupHandler(name string) *Handler {
	h, _ := r.findHandler(name, false)
	return h
}

func (r *Registry) findHandler(name string, checked bool) (*Handler, error) {
	candidates := r.handlers[classify(name)]
	if len(candidates) > 0 {
		for _, c := range candidates {
			if c.IsSupported() {
				return c, nil
			}
		}
		// Candidates exist, but none works.
		if checked {
			return nil, &NoCompressorError{Filename: name, Candidates: candidates}
		}
		return nil, nil
	}
	plain := r.handlers[KeyNoSuffix]
	if len(plain) == 0 {
		if checked {
			return nil, &NoCompressorError{Filename: name}
		}
		return nil, nil
	}
	return plain[0], nil
}

// Open resolves name to a handler and opens it. See the package-level Open
// for the resolution rules. Once a handler is chosen there is no retry or
// fallback: any failure from the backend propagates unchanged.
func (r *Registry) Open(name string, opts *Options) (Stream, error) {
	h, err := r.FindHandler(name)
	if err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	if opts.FS == nil {
		opts.FS = r.fs
	}
	if name != KeyStdio {
		name = filepath.Clean(name)
	}
	return h.Open(name, opts)
}

// classify maps a filename to its registry key: KeyStdio for "-", the last
// dotted suffix of the base name, or KeyNoSuffix when there is none. A dot
// in the leading position does not count, so dotfiles like ".bashrc" are
// suffixless.
func classify(name string) string {
	if name == KeyStdio {
		return KeyStdio
	}
	base := filepath.Base(name)
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		return normalizeKey(base[i:])
	}
	return KeyNoSuffix
}

func normalizeKey(key string) string {
	return strings.ToLower(key)
}
