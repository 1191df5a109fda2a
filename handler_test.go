package autoopen

import (
	"errors"
	"testing"
)

func TestIsSupported(t *testing.T) {
	tests := []struct {
		name    string
		handler *Handler
		want    bool
	}{
		{"no capability", &Handler{Description: "plain", OpenFunc: openPlain}, true},
		{"known capability", &Handler{Description: "gz", Capability: "gzip"}, true},
		{"unknown capability", &Handler{Description: "bad", Capability: "doesnotexist"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.handler.IsSupported(); got != tt.want {
				t.Errorf("IsSupported() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadCapability(t *testing.T) {
	h := &Handler{Capability: "gzip"}
	c, err := h.LoadCapability()
	if err != nil {
		t.Fatalf("LoadCapability() error = %v", err)
	}
	if c == nil {
		t.Fatal("LoadCapability() returned nil capability")
	}
	again, err := h.LoadCapability()
	if err != nil {
		t.Fatalf("second LoadCapability() error = %v", err)
	}
	if again != c {
		t.Error("LoadCapability() did not reuse the cached capability")
	}
}

func TestLoadCapabilityNone(t *testing.T) {
	h := &Handler{OpenFunc: openPlain}
	c, err := h.LoadCapability()
	if err != nil {
		t.Fatalf("LoadCapability() error = %v", err)
	}
	if c != nil {
		t.Error("LoadCapability() without a capability name should return nil")
	}
}

func TestLoadCapabilityUnknown(t *testing.T) {
	h := &Handler{Capability: "doesnotexist"}
	_, err := h.LoadCapability()
	if !errors.Is(err, ErrUnknownCapability) {
		t.Errorf("LoadCapability() error = %v, want ErrUnknownCapability", err)
	}
}

func TestLoadCapabilityRetriesAfterFailure(t *testing.T) {
	h := &Handler{Capability: "late-capability"}
	if h.IsSupported() {
		t.Fatal("capability should not resolve before registration")
	}

	RegisterCapability("late-capability", gzipCapability{})
	defer delete(capabilities, "late-capability")

	if !h.IsSupported() {
		t.Error("capability registered after a failed probe should resolve on retry")
	}
}

func TestHandlerOpenUnimplemented(t *testing.T) {
	h := &Handler{Suffixes: []string{".broken"}, Description: "broken"}
	_, err := h.Open("file.broken", nil)
	if !errors.Is(err, ErrUnimplemented) {
		t.Errorf("Open() error = %v, want ErrUnimplemented", err)
	}
}

func TestHandlerOpenFuncTakesPrecedence(t *testing.T) {
	called := false
	h := &Handler{
		Description: "custom",
		Capability:  "doesnotexist", // must not be consulted
		OpenFunc: func(name string, opts *Options) (Stream, error) {
			called = true
			return &stdioStream{}, nil
		},
	}

	if _, err := h.Open("anything", nil); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if !called {
		t.Error("direct OpenFunc was not invoked")
	}
}

func TestHandlerOpenPassesOptions(t *testing.T) {
	var gotMode string
	h := &Handler{
		Description: "probe",
		OpenFunc: func(name string, opts *Options) (Stream, error) {
			gotMode = opts.Mode
			return &stdioStream{}, nil
		},
	}

	if _, err := h.Open("x", &Options{Mode: "wb"}); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if gotMode != "wb" {
		t.Errorf("handler saw mode %q, want %q", gotMode, "wb")
	}

	if _, err := h.Open("x", nil); err != nil {
		t.Fatalf("Open() with nil options error = %v", err)
	}
	if gotMode != "rt" {
		t.Errorf("nil options should default mode to \"rt\", got %q", gotMode)
	}
}
