//go:build !darwin

package detector

import (
	"context"

	"github.com/NVIDIA/arch-stack/pkg/march"
)

// SysctlProbe is only functional on darwin.
type SysctlProbe struct {
	graph *march.Graph
}

// Name implements Probe.
func (p *SysctlProbe) Name() string { return "sysctl" }

// Probe implements Probe.
func (p *SysctlProbe) Probe(ctx context.Context) (*march.Signature, error) {
	return nil, ErrUnavailable
}
