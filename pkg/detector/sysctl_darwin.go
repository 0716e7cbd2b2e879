//go:build darwin

package detector

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/NVIDIA/arch-stack/pkg/feature"
	"github.com/NVIDIA/arch-stack/pkg/march"
)

// SysctlProbe builds a signature from the machdep.cpu sysctl namespace.
type SysctlProbe struct {
	graph *march.Graph
}

// Name implements Probe.
func (p *SysctlProbe) Name() string { return "sysctl" }

// Probe implements Probe.
func (p *SysctlProbe) Probe(ctx context.Context) (*march.Signature, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	brand, err := unix.Sysctl("machdep.cpu.brand_string")
	if err != nil {
		return nil, fmt.Errorf("failed to read cpu brand: %w", err)
	}

	if vendor, err := unix.Sysctl("machdep.cpu.vendor"); err == nil && vendor != "" {
		return p.x86Signature(vendor, brand)
	}
	return p.armSignature(brand)
}

// x86Signature collects the Intel-era sysctl feature lists and translates
// the darwin flag spellings into the canonical vocabulary.
func (p *SysctlProbe) x86Signature(vendor, brand string) (*march.Signature, error) {
	features := feature.NewSet()
	conv := p.graph.Conversions()

	for _, key := range []string{
		"machdep.cpu.features",
		"machdep.cpu.leaf7_features",
		"machdep.cpu.extfeatures",
	} {
		raw, err := unix.Sysctl(key)
		if err != nil {
			continue
		}
		for _, flag := range strings.Fields(strings.ToLower(raw)) {
			if mapped, ok := conv.DarwinFlags[flag]; ok {
				// A single darwin flag may expand to several features.
				features = features.Union(feature.NewSet(strings.Fields(mapped)...))
				continue
			}
			features.Add(flag)
		}
	}

	return &march.Signature{
		Vendor:   vendor,
		Arch:     "x86_64",
		Features: features,
		Brand:    brand,
	}, nil
}

// armSignature labels Apple silicon from the brand string. The sysctl
// interface exposes no usable feature list on these chips, so the
// signature borrows the feature set of the identified dataset node.
func (p *SysctlProbe) armSignature(brand string) (*march.Signature, error) {
	name := appleModelFor(brand)
	if name == "" {
		return nil, fmt.Errorf("unrecognized Apple cpu brand %q", brand)
	}
	node := p.graph.Lookup(name)
	if node == nil {
		return nil, fmt.Errorf("no dataset entry for Apple model %q", name)
	}
	return &march.Signature{
		Vendor:   node.Vendor,
		Arch:     "aarch64",
		Features: node.Features.Clone(),
		Brand:    brand,
	}, nil
}

func appleModelFor(brand string) string {
	switch {
	case strings.Contains(brand, "M2"):
		return "m2"
	case strings.Contains(brand, "M1"):
		return "m1"
	}
	return ""
}
