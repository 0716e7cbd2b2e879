package header

import (
	"strings"
	"testing"
	"time"
)

func TestNewWithOptions(t *testing.T) {
	h := New(
		WithKind("Detection"),
		WithAPIVersion("detection.arch-stack.nvidia.com/v1alpha1"),
		WithMetadata("hostname", "node-1"),
	)

	if h.Kind != "Detection" {
		t.Errorf("Kind = %q, want Detection", h.Kind)
	}
	if h.APIVersion != "detection.arch-stack.nvidia.com/v1alpha1" {
		t.Errorf("APIVersion = %q", h.APIVersion)
	}
	if h.Metadata["hostname"] != "node-1" {
		t.Errorf("Metadata = %v, want hostname=node-1", h.Metadata)
	}
}

func TestSet(t *testing.T) {
	var h Header
	h.Set("Comparison")

	if h.Kind != "Comparison" {
		t.Errorf("Kind = %q, want Comparison", h.Kind)
	}
	if !strings.HasPrefix(h.APIVersion, "comparison.arch-stack.nvidia.com/") {
		t.Errorf("APIVersion = %q, want comparison.arch-stack.nvidia.com prefix", h.APIVersion)
	}

	stamp, ok := h.Metadata["generated-at"]
	if !ok {
		t.Fatal("Metadata missing generated-at")
	}
	if _, err := time.Parse(time.RFC3339, stamp); err != nil {
		t.Errorf("generated-at %q is not RFC3339: %v", stamp, err)
	}
}
