package march

import (
	"sync"

	"github.com/NVIDIA/arch-stack/pkg/feature"
)

const (
	// VendorGeneric tags vendor-agnostic nodes such as family roots and
	// the x86_64 feature levels. Generic nodes match any detected vendor.
	VendorGeneric = "generic"
)

// Record is one raw microarchitecture record as decoded from a dataset.
// Records are validated and linked into a Graph by Build.
type Record struct {
	// Name is the unique, platform-stable identifier of the node.
	Name string `json:"name" yaml:"name"`

	// Vendor is the vendor tag (e.g. "GenuineIntel", "AuthenticAMD",
	// "ARM") or VendorGeneric for vendor-agnostic nodes.
	Vendor string `json:"vendor" yaml:"vendor"`

	// Features is the full set of feature names required to claim this
	// microarchitecture. A descendant's set is a superset of every
	// ancestor's.
	Features []string `json:"features" yaml:"features"`

	// From lists the names of the immediate ancestor nodes. More than one
	// ancestor is allowed for nodes that unify two feature lineages.
	From []string `json:"from,omitempty" yaml:"from,omitempty"`

	// Generation orders members of one family chronologically and breaks
	// ties among equally deep match candidates.
	Generation int `json:"generation,omitempty" yaml:"generation,omitempty"`

	// Compilers maps a compiler identifier to its ordered, disjoint
	// version ranges and their flag strings.
	Compilers map[string][]CompilerSupport `json:"compilers,omitempty" yaml:"compilers,omitempty"`
}

// CompilerSupport describes the flags one compiler emits for a node across
// a half-open version interval [Min, Max). An empty Max leaves the range
// open above.
type CompilerSupport struct {
	Min string `json:"min" yaml:"min"`
	Max string `json:"max,omitempty" yaml:"max,omitempty"`

	// Flags is the optimization flag string. It may contain a "{name}"
	// placeholder replaced by Name (or the node name) at resolve time.
	Flags string `json:"flags" yaml:"flags"`

	// Name overrides the node name used for the "{name}" placeholder,
	// for compilers that spell a target differently.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Microarchitecture is one immutable node of a built graph.
type Microarchitecture struct {
	Name       string
	Vendor     string
	Features   feature.Set
	Generation int
	Compilers  map[string][]CompilerSupport

	idx   int
	graph *Graph
}

// Parents returns the immediate ancestors of the node.
func (m *Microarchitecture) Parents() []*Microarchitecture {
	return m.graph.resolve(m.graph.parents[m.idx])
}

// Children returns the immediate descendants of the node.
func (m *Microarchitecture) Children() []*Microarchitecture {
	return m.graph.resolve(m.graph.children[m.idx])
}

// Family returns the root of the node's architecture family: the first
// ancestor without parents. All families in a valid dataset have a single
// root reachable through the first parent chain.
func (m *Microarchitecture) Family() *Microarchitecture {
	node := m
	for len(m.graph.parents[node.idx]) > 0 {
		node = m.graph.nodes[m.graph.parents[node.idx][0]]
	}
	return node
}

// Ancestors returns every transitive ancestor of the node. The closure is
// computed lazily, at most once per node, and cached on the immutable
// graph.
func (m *Microarchitecture) Ancestors() []*Microarchitecture {
	set := m.graph.ancestorSet(m.idx)
	out := make([]*Microarchitecture, 0, len(set))
	for idx := range set {
		out = append(out, m.graph.nodes[idx])
	}
	return out
}

// Graph is the immutable microarchitecture DAG. Nodes are held in an
// arena and addressed by stable integer indices, so sharing the graph
// across goroutines needs no synchronization after Build returns.
type Graph struct {
	nodes  []*Microarchitecture
	byName map[string]int

	parents  [][]int
	children [][]int

	// closures caches per-node transitive ancestor sets. Each entry is
	// populated at most once even under concurrent first access.
	closures []ancestorClosure

	aliases     map[string]feature.Alias
	conversions feature.Conversions
}

type ancestorClosure struct {
	once sync.Once
	set  map[int]struct{}
}

// Lookup returns the node with the given name, or nil if unknown.
func (g *Graph) Lookup(name string) *Microarchitecture {
	idx, ok := g.byName[name]
	if !ok {
		return nil
	}
	return g.nodes[idx]
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Nodes returns all nodes of the graph. The returned slice is a copy;
// the nodes themselves are shared and must not be mutated.
func (g *Graph) Nodes() []*Microarchitecture {
	out := make([]*Microarchitecture, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Names returns the names of all nodes in the graph.
func (g *Graph) Names() []string {
	out := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = n.Name
	}
	return out
}

// Aliases returns the feature alias table loaded with the dataset.
func (g *Graph) Aliases() map[string]feature.Alias {
	return g.aliases
}

// Conversions returns the platform conversion tables loaded with the
// dataset.
func (g *Graph) Conversions() feature.Conversions {
	return g.conversions
}

// resolve maps node indices to node pointers.
func (g *Graph) resolve(idxs []int) []*Microarchitecture {
	out := make([]*Microarchitecture, len(idxs))
	for i, idx := range idxs {
		out[i] = g.nodes[idx]
	}
	return out
}

// ancestorSet returns the memoized transitive ancestor index set of a node.
func (g *Graph) ancestorSet(idx int) map[int]struct{} {
	c := &g.closures[idx]
	c.once.Do(func() {
		set := make(map[int]struct{})
		for _, p := range g.parents[idx] {
			set[p] = struct{}{}
			for a := range g.ancestorSet(p) {
				set[a] = struct{}{}
			}
		}
		c.set = set
	})
	return c.set
}

// isAncestor reports whether a is in b's transitive ancestor closure.
func (g *Graph) isAncestor(a, b int) bool {
	_, ok := g.ancestorSet(b)[a]
	return ok
}
