package march

import (
	"log/slog"
	"strings"

	"github.com/NVIDIA/arch-stack/pkg/errors"
	"github.com/NVIDIA/arch-stack/pkg/version"
)

// ResolveFlags returns the optimization flag string a compiler of the
// given version should receive to target the named microarchitecture.
//
// When the exact node has no entry for the compiler, or the version falls
// outside every listed range, resolution steps to the node's
// highest-generation vendor-compatible parent and retries, walking
// generalization until a supported ancestor is found. Compiler releases
// lag new microarchitectures; a new CPU should still build correctly with
// the best flags an older compiler understands. Only when the family root
// itself is unsupported does resolution fail with UNSUPPORTED_COMPILER.
func ResolveFlags(g *Graph, name, compiler string, v version.Version) (string, error) {
	node := g.Lookup(name)
	if node == nil {
		resolveTotal.WithLabelValues("unknown_target").Inc()
		return "", unknownTarget(g, name)
	}

	// Explicit iteration over the ancestor path keeps termination obvious:
	// every step moves strictly closer to the family root.
	for current := node; current != nil; current = fallbackParent(g, current) {
		flags, ok := flagsFor(current, compiler, v)
		if !ok {
			continue
		}
		if current != node {
			slog.Debug("resolved flags via ancestor fallback",
				slog.String("requested", node.Name),
				slog.String("resolved", current.Name),
				slog.String("compiler", compiler),
				slog.String("version", v.String()),
			)
		}
		resolveTotal.WithLabelValues("resolved").Inc()
		return flags, nil
	}

	resolveTotal.WithLabelValues("unsupported").Inc()
	return "", errors.New(errors.ErrCodeUnsupportedCompiler,
		"no %s %s support on the path from %q to its family root",
		compiler, v, name)
}

// flagsFor scans the node's version ranges for the compiler and returns
// the rendered flag string of the range containing v.
func flagsFor(node *Microarchitecture, compiler string, v version.Version) (string, bool) {
	for _, entry := range node.Compilers[compiler] {
		r, err := version.NewRange(entry.Min, entry.Max)
		if err != nil {
			// Malformed range in the dataset: skip rather than abort, the
			// remaining ranges and ancestors may still serve the query.
			slog.Warn("skipping malformed compiler version range",
				slog.String("node", node.Name),
				slog.String("compiler", compiler),
				slog.String("min", entry.Min),
				slog.String("max", entry.Max),
				slog.Any("error", err),
			)
			continue
		}
		if !r.Contains(v) {
			continue
		}

		targetName := entry.Name
		if targetName == "" {
			targetName = node.Name
		}
		return strings.ReplaceAll(entry.Flags, "{name}", targetName), true
	}
	return "", false
}

// fallbackParent picks the next node on the generalization path: the
// highest-generation parent whose vendor is compatible with the node.
// Returns nil once the family root is exhausted.
func fallbackParent(g *Graph, node *Microarchitecture) *Microarchitecture {
	var best *Microarchitecture
	for _, p := range node.Parents() {
		if p.Vendor != VendorGeneric && p.Vendor != node.Vendor {
			continue
		}
		if best == nil || p.Generation > best.Generation {
			best = p
		}
	}
	return best
}
