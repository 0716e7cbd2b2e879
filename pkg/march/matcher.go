package march

import (
	"log/slog"
	"sort"
	"time"

	"github.com/NVIDIA/arch-stack/pkg/errors"
	"github.com/NVIDIA/arch-stack/pkg/feature"
)

// Signature is the normalized output of hardware probing consumed by
// FindBest. It is an immutable value created fresh per probe and never
// linked into the graph.
type Signature struct {
	// Vendor is the detected vendor tag, matched against node vendors.
	Vendor string `json:"vendor" yaml:"vendor"`

	// Arch names the architecture family root the signature belongs to
	// (e.g. "x86_64", "aarch64"). When set, only nodes under that family
	// root are match candidates; generic roots of other families never
	// compete. Probes always set it.
	Arch string `json:"arch,omitempty" yaml:"arch,omitempty"`

	// Features is the alias-normalized set of detected feature names.
	Features feature.Set `json:"features" yaml:"features"`

	// Informational fields. Matching is feature-set driven, never
	// model-number driven: feature sets stay truthful on virtualized and
	// cloud CPUs that misreport model numbers.
	Family   int    `json:"family,omitempty" yaml:"family,omitempty"`
	Model    int    `json:"model,omitempty" yaml:"model,omitempty"`
	Stepping int    `json:"stepping,omitempty" yaml:"stepping,omitempty"`
	Brand    string `json:"brand,omitempty" yaml:"brand,omitempty"`
}

// Matches reports whether the node is a candidate for the signature: the
// node lives under the signature's family root (when one is set), the
// vendor matches (or the node is vendor-agnostic), and every required
// feature was detected. The family restriction keeps the empty-feature
// generic roots of foreign architectures out of the candidate set; an
// aarch64 signature must never tie against the ppc64le root.
func (m *Microarchitecture) Matches(sig Signature) bool {
	if sig.Arch != "" && m.Family().Name != sig.Arch {
		return false
	}
	if m.Vendor != VendorGeneric && m.Vendor != sig.Vendor {
		return false
	}
	return m.Features.SubsetOf(sig.Features)
}

// FindBest returns the most specific node compatible with the signature:
// the candidate without any candidate descendant.
//
// A nil result with a nil error means no node matched at all; falling back
// to a generic root name is a policy decision owned by the caller. When
// independent branches are both fully satisfied, the maximal candidate
// with the higher generation wins; a remaining tie fails with
// AMBIGUOUS_MATCH rather than silently picking one, so detection stays
// deterministic across dataset updates.
func FindBest(g *Graph, sig Signature) (*Microarchitecture, error) {
	start := time.Now()
	defer func() {
		matchDuration.Observe(time.Since(start).Seconds())
	}()

	candidates := make([]int, 0, 16)
	for idx, node := range g.nodes {
		if node.Matches(sig) {
			candidates = append(candidates, idx)
		}
	}
	if len(candidates) == 0 {
		matchTotal.WithLabelValues("none").Inc()
		slog.Debug("no matching microarchitecture",
			slog.String("vendor", sig.Vendor),
			slog.Int("features", len(sig.Features)),
		)
		return nil, nil
	}

	maximal := maximalCandidates(g, candidates)

	if len(maximal) > 1 {
		// Independent branches both satisfied: higher generation wins.
		sort.Slice(maximal, func(i, j int) bool {
			return g.nodes[maximal[i]].Generation > g.nodes[maximal[j]].Generation
		})
		if g.nodes[maximal[0]].Generation == g.nodes[maximal[1]].Generation {
			matchTotal.WithLabelValues("ambiguous").Inc()
			return nil, errors.New(errors.ErrCodeAmbiguousMatch,
				"signature matches independent candidates %q and %q at generation %d",
				g.nodes[maximal[0]].Name, g.nodes[maximal[1]].Name,
				g.nodes[maximal[0]].Generation)
		}
	}

	best := g.nodes[maximal[0]]
	matchTotal.WithLabelValues("matched").Inc()
	slog.Debug("matched microarchitecture",
		slog.String("name", best.Name),
		slog.String("vendor", best.Vendor),
		slog.Int("generation", best.Generation),
	)
	return best, nil
}

// maximalCandidates filters the candidate set down to nodes that have no
// other candidate among their descendants, i.e. no candidate lists them in
// its ancestor closure.
func maximalCandidates(g *Graph, candidates []int) []int {
	maximal := candidates[:0:0]
	for _, idx := range candidates {
		dominated := false
		for _, other := range candidates {
			if other == idx {
				continue
			}
			if g.isAncestor(idx, other) {
				dominated = true
				break
			}
		}
		if !dominated {
			maximal = append(maximal, idx)
		}
	}
	return maximal
}
