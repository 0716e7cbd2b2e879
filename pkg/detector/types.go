package detector

import (
	"context"
	"errors"

	"github.com/NVIDIA/arch-stack/pkg/march"
)

// ErrUnavailable is returned by probes that cannot run on the current
// platform or build. The detector skips such probes and moves on.
var ErrUnavailable = errors.New("probe unavailable on this platform")

// Probe gathers raw CPU identity from one source and normalizes it into a
// signature. Implementations must support context-based cancellation.
type Probe interface {
	Probe(ctx context.Context) (*march.Signature, error)

	// Name identifies the probe in logs and metrics.
	Name() string
}

// Factory creates probes with their dependencies.
// This interface enables dependency injection for testing.
type Factory interface {
	CreateCPUInfoProbe() Probe
	CreateSysctlProbe() Probe
	CreateRegisterProbe() Probe
}

// DefaultFactory creates probes with production dependencies.
type DefaultFactory struct {
	// CPUInfoPath overrides the procfs source, mainly for tests.
	CPUInfoPath string

	graph *march.Graph
}

// NewDefaultFactory creates a factory bound to a microarchitecture graph.
// The graph supplies the conversion tables probes normalize against.
func NewDefaultFactory(g *march.Graph) *DefaultFactory {
	return &DefaultFactory{
		CPUInfoPath: "/proc/cpuinfo",
		graph:       g,
	}
}

// CreateCPUInfoProbe creates the Linux procfs probe.
func (f *DefaultFactory) CreateCPUInfoProbe() Probe {
	return &CPUInfoProbe{
		Path:        f.CPUInfoPath,
		Conversions: f.graph.Conversions(),
	}
}

// CreateSysctlProbe creates the macOS sysctl probe.
func (f *DefaultFactory) CreateSysctlProbe() Probe {
	return &SysctlProbe{graph: f.graph}
}

// CreateRegisterProbe creates the in-process CPU register probe.
func (f *DefaultFactory) CreateRegisterProbe() Probe {
	return &RegisterProbe{}
}
