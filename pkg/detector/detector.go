package detector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	archerrors "github.com/NVIDIA/arch-stack/pkg/errors"
	"github.com/NVIDIA/arch-stack/pkg/march"
)

// Detector runs probes against the host and labels the result.
type Detector struct {
	graph  *march.Graph
	probes []Probe
}

// Option configures a Detector.
type Option func(*Detector)

// WithProbes replaces the default probe set. Probes are tried in the
// given order; the first signature wins.
func WithProbes(probes ...Probe) Option {
	return func(d *Detector) {
		d.probes = probes
	}
}

// New creates a detector bound to a microarchitecture graph. Without
// options it probes /proc/cpuinfo, then sysctl, then the CPU registers.
func New(g *march.Graph, opts ...Option) *Detector {
	d := &Detector{graph: g}
	for _, opt := range opts {
		opt(d)
	}
	if len(d.probes) == 0 {
		f := NewDefaultFactory(g)
		d.probes = []Probe{
			f.CreateCPUInfoProbe(),
			f.CreateSysctlProbe(),
			f.CreateRegisterProbe(),
		}
	}
	return d
}

// Detect runs all probes concurrently and returns the signature of the
// highest-priority probe that produced one, alias-normalized against the
// graph's tables. A failing probe is logged and skipped; detection only
// fails when no probe can read the host at all.
func (d *Detector) Detect(ctx context.Context) (*march.Signature, error) {
	results := make([]*march.Signature, len(d.probes))

	eg, ctx := errgroup.WithContext(ctx)
	for i, probe := range d.probes {
		i, probe := i, probe
		eg.Go(func() error {
			sig, err := probe.Probe(ctx)
			if err != nil {
				if errors.Is(err, ErrUnavailable) {
					detectTotal.WithLabelValues(probe.Name(), "unavailable").Inc()
					return nil
				}
				detectTotal.WithLabelValues(probe.Name(), "error").Inc()
				slog.Warn("probe failed",
					slog.String("probe", probe.Name()),
					slog.Any("error", err),
				)
				return nil
			}
			detectTotal.WithLabelValues(probe.Name(), "ok").Inc()
			results[i] = sig
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for i, sig := range results {
		if sig == nil {
			continue
		}
		d.normalize(sig)
		slog.Debug("detected cpu signature",
			slog.String("probe", d.probes[i].Name()),
			slog.String("vendor", sig.Vendor),
			slog.Int("features", len(sig.Features)),
		)
		return sig, nil
	}
	return nil, fmt.Errorf("no probe could read the cpu identity on this platform")
}

// Host detects the local CPU and labels it against the graph. When
// nothing in the dataset matches the signature, the architecture's
// generic family root is returned so callers always get a usable label.
func (d *Detector) Host(ctx context.Context) (*march.Microarchitecture, *march.Signature, error) {
	sig, err := d.Detect(ctx)
	if err != nil {
		return nil, nil, err
	}

	best, err := march.FindBest(d.graph, *sig)
	if err != nil {
		return nil, sig, err
	}
	if best != nil {
		return best, sig, nil
	}

	root := familyOf(sig)
	if node := d.graph.Lookup(root); node != nil {
		slog.Warn("no dataset entry matches the detected signature, using the family root",
			slog.String("vendor", sig.Vendor),
			slog.String("fallback", root),
		)
		return node, sig, nil
	}
	return nil, sig, archerrors.New(archerrors.ErrCodeUnknownTarget,
		"nothing in the dataset matches the detected cpu and no generic root exists for %q",
		root)
}

// normalize expands alias features so dataset nodes written in alias
// vocabulary stay matchable regardless of which backend probed.
func (d *Detector) normalize(sig *march.Signature) {
	family := familyOf(sig)
	for name, alias := range d.graph.Aliases() {
		if alias.Applies(sig.Features, family) {
			sig.Features.Add(name)
		}
	}
}

// familyOf returns the family root name of a signature. Probes record it
// while parsing, which keeps captured foreign-architecture sources honest;
// only signatures without one fall back to the build architecture.
func familyOf(sig *march.Signature) string {
	if sig.Arch != "" {
		return sig.Arch
	}
	return FamilyRoot(runtime.GOARCH)
}

// FamilyRoot maps a GOARCH value to the name of the generic family root
// in the dataset. Unknown architectures map to the empty string.
func FamilyRoot(goarch string) string {
	switch goarch {
	case "amd64", "386":
		return "x86_64"
	case "arm64":
		return "aarch64"
	case "ppc64le":
		return "ppc64le"
	case "riscv64":
		return "riscv64"
	}
	return ""
}
