package detector

import (
	"context"
	"runtime"

	"github.com/NVIDIA/arch-stack/pkg/march"
)

// RegisterProbe reads CPU capability registers in-process. It is the
// probe of last resort: it needs no OS interface, but it cannot see the
// vendor, so only vendor-agnostic nodes can match its signatures.
type RegisterProbe struct{}

// Name implements Probe.
func (p *RegisterProbe) Name() string { return "registers" }

// Probe implements Probe.
func (p *RegisterProbe) Probe(ctx context.Context) (*march.Signature, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	features, ok := registerFeatures()
	if !ok {
		return nil, ErrUnavailable
	}
	return &march.Signature{
		Vendor:   march.VendorGeneric,
		Arch:     FamilyRoot(runtime.GOARCH),
		Features: features,
	}, nil
}
