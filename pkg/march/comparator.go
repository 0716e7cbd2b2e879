package march

import (
	"github.com/NVIDIA/arch-stack/pkg/errors"
)

// Ordering is the partial-order relation between two graph nodes.
type Ordering string

const (
	// Equal means both names resolve to the same node.
	Equal Ordering = "equal"

	// AncestorOf means the first node is a generalization of the second.
	AncestorOf Ordering = "ancestor"

	// DescendantOf means the first node is a specialization of the second.
	DescendantOf Ordering = "descendant"

	// Incomparable means neither node is reachable from the other.
	Incomparable Ordering = "incomparable"
)

// Compare answers the partial-order question between two named nodes.
// It fails with UNKNOWN_TARGET when either name is absent from the graph,
// attaching near-miss suggestions for typos.
func Compare(g *Graph, a, b string) (Ordering, error) {
	na := g.Lookup(a)
	if na == nil {
		return "", unknownTarget(g, a)
	}
	nb := g.Lookup(b)
	if nb == nil {
		return "", unknownTarget(g, b)
	}

	switch {
	case na.idx == nb.idx:
		return Equal, nil
	case g.isAncestor(na.idx, nb.idx):
		return AncestorOf, nil
	case g.isAncestor(nb.idx, na.idx):
		return DescendantOf, nil
	default:
		return Incomparable, nil
	}
}

// CompatibleWith reports whether a binary built for the named target is
// guaranteed runnable on the detected microarchitecture: true iff the
// build target is the detected node or a generalization of it.
func CompatibleWith(g *Graph, builtFor, detected string) (bool, error) {
	ord, err := Compare(g, builtFor, detected)
	if err != nil {
		return false, err
	}
	return ord == Equal || ord == AncestorOf, nil
}

func unknownTarget(g *Graph, name string) error {
	if suggestions := g.Suggest(name, 3); len(suggestions) > 0 {
		return errors.New(errors.ErrCodeUnknownTarget,
			"unknown microarchitecture %q (did you mean %v?)", name, suggestions)
	}
	return errors.New(errors.ErrCodeUnknownTarget, "unknown microarchitecture %q", name)
}
