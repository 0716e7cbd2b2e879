// Package version implements dotted numeric version parsing and the
// half-open version ranges used by compiler support tables.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a dotted numeric version such as "4.8" or "12.0.1".
// Missing trailing segments compare as zero, so "12" equals "12.0".
type Version struct {
	segments []int
	raw      string
}

// Parse parses a dotted numeric version string.
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, fmt.Errorf("empty version string")
	}

	parts := strings.Split(s, ".")
	segments := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version segment %q in %q", p, s)
		}
		if n < 0 {
			return Version{}, fmt.Errorf("negative version segment %q in %q", p, s)
		}
		segments = append(segments, n)
	}

	return Version{segments: segments, raw: s}, nil
}

// MustParse parses a version string and panics on error.
// Intended for static values in tests and embedded datasets.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the original version string.
func (v Version) String() string {
	return v.raw
}

// IsZero reports whether v is the zero value (never parsed).
func (v Version) IsZero() bool {
	return v.segments == nil
}

// Compare returns -1, 0 or 1 comparing v against other segment by segment.
func (v Version) Compare(other Version) int {
	n := len(v.segments)
	if len(other.segments) > n {
		n = len(other.segments)
	}
	for i := 0; i < n; i++ {
		a, b := 0, 0
		if i < len(v.segments) {
			a = v.segments[i]
		}
		if i < len(other.segments) {
			b = other.segments[i]
		}
		if a != b {
			if a < b {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Less reports whether v sorts before other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// Range is a half-open version interval [Min, Max). A zero Max means the
// range is unbounded above.
type Range struct {
	Min Version
	Max Version
}

// NewRange constructs a range from min and optional max strings.
// An empty max yields an unbounded range.
func NewRange(min, max string) (Range, error) {
	r := Range{}

	v, err := Parse(min)
	if err != nil {
		return Range{}, fmt.Errorf("invalid range minimum: %w", err)
	}
	r.Min = v

	if max != "" {
		v, err := Parse(max)
		if err != nil {
			return Range{}, fmt.Errorf("invalid range maximum: %w", err)
		}
		if v.Compare(r.Min) <= 0 {
			return Range{}, fmt.Errorf("range maximum %q not above minimum %q", max, min)
		}
		r.Max = v
	}

	return r, nil
}

// Contains reports whether v falls inside the range.
func (r Range) Contains(v Version) bool {
	if v.Compare(r.Min) < 0 {
		return false
	}
	if r.Max.IsZero() {
		return true
	}
	return v.Compare(r.Max) < 0
}

// String renders the range in "min:max" form, with an open upper bound
// rendered as "min:".
func (r Range) String() string {
	if r.Max.IsZero() {
		return r.Min.String() + ":"
	}
	return r.Min.String() + ":" + r.Max.String()
}
