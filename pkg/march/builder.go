package march

import (
	"fmt"
	"log/slog"

	"github.com/NVIDIA/arch-stack/pkg/errors"
	"github.com/NVIDIA/arch-stack/pkg/feature"
)

// Warning codes for data-integrity findings that do not invalidate a
// dataset but degrade matching behavior for the affected nodes.
const (
	WarnFeatureMonotonicity = "FEATURE_MONOTONICITY"
	WarnGenerationOrder     = "GENERATION_ORDER"
)

// Warning is a non-fatal data-integrity finding surfaced by Build.
type Warning struct {
	Code    string
	Node    string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s: %s", w.Code, w.Node, w.Message)
}

// BuildOption configures a Build run.
type BuildOption func(*builder)

// WithAliases attaches a feature alias table to the built graph.
func WithAliases(aliases map[string]feature.Alias) BuildOption {
	return func(b *builder) {
		b.aliases = aliases
	}
}

// WithConversions attaches platform conversion tables to the built graph.
func WithConversions(conv feature.Conversions) BuildOption {
	return func(b *builder) {
		b.conversions = conv
	}
}

type builder struct {
	aliases     map[string]feature.Alias
	conversions feature.Conversions
}

// Build validates and links raw records into an immutable Graph.
//
// Duplicate names, unresolvable ancestors and cycles are fatal: a dataset
// failing any of these yields no graph at all, because a partially linked
// graph could produce silently wrong matches. Feature-set and generation
// monotonicity violations are returned as warnings instead; matching
// against such nodes degrades gracefully (the violating node is evaluated
// by its own feature set and may become a dead-end candidate).
func Build(records []Record, opts ...BuildOption) (*Graph, []Warning, error) {
	b := &builder{}
	for _, opt := range opts {
		opt(b)
	}

	g := &Graph{
		byName:      make(map[string]int, len(records)),
		aliases:     b.aliases,
		conversions: b.conversions,
	}

	// Pass 1: register nodes, rejecting duplicate names.
	for _, rec := range records {
		if rec.Name == "" {
			return nil, nil, errors.New(errors.ErrCodeInvalidRequest, "record with empty name")
		}
		if _, exists := g.byName[rec.Name]; exists {
			return nil, nil, errors.New(errors.ErrCodeDuplicateName,
				"microarchitecture %q defined more than once", rec.Name)
		}

		vendor := rec.Vendor
		if vendor == "" {
			vendor = VendorGeneric
		}

		node := &Microarchitecture{
			Name:       rec.Name,
			Vendor:     vendor,
			Features:   feature.NewSet(rec.Features...),
			Generation: rec.Generation,
			Compilers:  copyCompilers(rec.Compilers),
			idx:        len(g.nodes),
			graph:      g,
		}
		g.byName[rec.Name] = node.idx
		g.nodes = append(g.nodes, node)
	}

	// Pass 2: resolve ancestor references.
	g.parents = make([][]int, len(g.nodes))
	g.children = make([][]int, len(g.nodes))
	for i, rec := range records {
		for _, parent := range rec.From {
			pidx, ok := g.byName[parent]
			if !ok {
				return nil, nil, errors.New(errors.ErrCodeUnknownAncestor,
					"microarchitecture %q references unknown ancestor %q", rec.Name, parent)
			}
			g.parents[i] = append(g.parents[i], pidx)
			g.children[pidx] = append(g.children[pidx], i)
		}
	}

	// Pass 3: cycle check via depth-first traversal with a visiting marker.
	if err := checkAcyclic(g); err != nil {
		return nil, nil, err
	}

	g.closures = make([]ancestorClosure, len(g.nodes))

	// Pass 4: per-edge invariant checks, surfaced as warnings.
	warnings := checkEdgeInvariants(g)
	for _, w := range warnings {
		slog.Warn("dataset integrity warning",
			slog.String("code", w.Code),
			slog.String("node", w.Node),
			slog.String("detail", w.Message),
		)
	}

	slog.Debug("microarchitecture graph built",
		slog.Int("nodes", len(g.nodes)),
		slog.Int("warnings", len(warnings)),
	)

	return g, warnings, nil
}

// copyCompilers detaches the compiler tables from the record slices so the
// built graph does not alias caller-owned memory. Ranges within one table
// are required to be disjoint and ordered by the dataset contract.
func copyCompilers(in map[string][]CompilerSupport) map[string][]CompilerSupport {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string][]CompilerSupport, len(in))
	for cc, entries := range in {
		copied := make([]CompilerSupport, len(entries))
		copy(copied, entries)
		out[cc] = copied
	}
	return out
}

const (
	colorWhite = iota // unvisited
	colorGray         // on the current DFS stack
	colorBlack        // fully explored
)

// checkAcyclic rejects graphs where following ancestor edges can return
// to a node still being visited.
func checkAcyclic(g *Graph) error {
	colors := make([]int, len(g.nodes))

	var visit func(idx int) error
	visit = func(idx int) error {
		switch colors[idx] {
		case colorGray:
			return errors.New(errors.ErrCodeCyclicGraph,
				"ancestor cycle through microarchitecture %q", g.nodes[idx].Name)
		case colorBlack:
			return nil
		}
		colors[idx] = colorGray
		for _, p := range g.parents[idx] {
			if err := visit(p); err != nil {
				return err
			}
		}
		colors[idx] = colorBlack
		return nil
	}

	for idx := range g.nodes {
		if err := visit(idx); err != nil {
			return err
		}
	}
	return nil
}

// checkEdgeInvariants verifies feature-set and generation monotonicity for
// every parent→child edge.
func checkEdgeInvariants(g *Graph) []Warning {
	var warnings []Warning
	for idx, node := range g.nodes {
		for _, p := range g.parents[idx] {
			parent := g.nodes[p]
			if !parent.Features.SubsetOf(node.Features) {
				warnings = append(warnings, Warning{
					Code: WarnFeatureMonotonicity,
					Node: node.Name,
					Message: fmt.Sprintf("feature set does not contain all features of ancestor %q",
						parent.Name),
				})
			}
			if parent.Generation > node.Generation {
				warnings = append(warnings, Warning{
					Code: WarnGenerationOrder,
					Node: node.Name,
					Message: fmt.Sprintf("generation %d below ancestor %q generation %d",
						node.Generation, parent.Name, parent.Generation),
				})
			}
		}
	}
	return warnings
}
