package march

import (
	"testing"

	"github.com/NVIDIA/arch-stack/pkg/errors"
	"github.com/NVIDIA/arch-stack/pkg/feature"
)

func featureSet(names ...string) feature.Set {
	return feature.NewSet(names...)
}

// lineageRecords returns a minimal three-node lineage used across tests:
// x86_64 (generic root, no features) -> haswell -> skylake.
func lineageRecords() []Record {
	return []Record{
		{
			Name:   "x86_64",
			Vendor: VendorGeneric,
			Compilers: map[string][]CompilerSupport{
				"gcc": {{Min: "4.0", Flags: "-march=x86-64"}},
			},
		},
		{
			Name:       "haswell",
			Vendor:     "GenuineIntel",
			From:       []string{"x86_64"},
			Generation: 6,
			Features:   []string{"avx", "avx2"},
			Compilers: map[string][]CompilerSupport{
				"gcc": {{Min: "4.9", Flags: "-march={name}"}},
			},
		},
		{
			Name:       "skylake",
			Vendor:     "GenuineIntel",
			From:       []string{"haswell"},
			Generation: 8,
			Features:   []string{"avx", "avx2", "avx512f"},
			Compilers: map[string][]CompilerSupport{
				"gcc": {{Min: "6.0", Max: "9.0", Flags: "-march={name}"}},
			},
		},
	}
}

func mustBuild(t *testing.T, records []Record) *Graph {
	t.Helper()
	g, warnings, err := Build(records)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("Build() warnings = %v, want none", warnings)
	}
	return g
}

func TestBuildLinksAncestors(t *testing.T) {
	g := mustBuild(t, lineageRecords())

	if g.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", g.Len())
	}

	sky := g.Lookup("skylake")
	if sky == nil {
		t.Fatal("Lookup(skylake) = nil")
	}
	parents := sky.Parents()
	if len(parents) != 1 || parents[0].Name != "haswell" {
		t.Errorf("skylake parents = %v, want [haswell]", parents)
	}
	if fam := sky.Family(); fam.Name != "x86_64" {
		t.Errorf("skylake family = %q, want x86_64", fam.Name)
	}
	if anc := sky.Ancestors(); len(anc) != 2 {
		t.Errorf("skylake has %d ancestors, want 2", len(anc))
	}

	root := g.Lookup("x86_64")
	if children := root.Children(); len(children) != 1 || children[0].Name != "haswell" {
		t.Errorf("x86_64 children = %v, want [haswell]", children)
	}
}

func TestBuildRejectsDuplicateName(t *testing.T) {
	records := append(lineageRecords(), Record{Name: "haswell", Vendor: "GenuineIntel"})
	_, _, err := Build(records)
	if !errors.HasCode(err, errors.ErrCodeDuplicateName) {
		t.Fatalf("Build() error = %v, want code %s", err, errors.ErrCodeDuplicateName)
	}
}

func TestBuildRejectsUnknownAncestor(t *testing.T) {
	records := append(lineageRecords(), Record{
		Name:   "cannonlake",
		Vendor: "GenuineIntel",
		From:   []string{"palmcove"},
	})
	_, _, err := Build(records)
	if !errors.HasCode(err, errors.ErrCodeUnknownAncestor) {
		t.Fatalf("Build() error = %v, want code %s", err, errors.ErrCodeUnknownAncestor)
	}
}

func TestBuildRejectsCycle(t *testing.T) {
	records := []Record{
		{Name: "a", From: []string{"c"}},
		{Name: "b", From: []string{"a"}},
		{Name: "c", From: []string{"b"}},
	}
	_, _, err := Build(records)
	if !errors.HasCode(err, errors.ErrCodeCyclicGraph) {
		t.Fatalf("Build() error = %v, want code %s", err, errors.ErrCodeCyclicGraph)
	}
}

func TestBuildRejectsSelfCycle(t *testing.T) {
	_, _, err := Build([]Record{{Name: "a", From: []string{"a"}}})
	if !errors.HasCode(err, errors.ErrCodeCyclicGraph) {
		t.Fatalf("Build() error = %v, want code %s", err, errors.ErrCodeCyclicGraph)
	}
}

func TestBuildWarnsOnMonotonicityViolation(t *testing.T) {
	records := []Record{
		{Name: "root", Features: []string{"avx", "avx2"}},
		// Child drops a feature its ancestor requires.
		{Name: "child", From: []string{"root"}, Features: []string{"avx"}},
	}
	g, warnings, err := Build(records)
	if err != nil {
		t.Fatalf("Build() error = %v, want warning only", err)
	}
	if g == nil {
		t.Fatal("Build() returned nil graph for warning-only dataset")
	}
	if len(warnings) != 1 || warnings[0].Code != WarnFeatureMonotonicity {
		t.Fatalf("Build() warnings = %v, want one %s", warnings, WarnFeatureMonotonicity)
	}
}

func TestBuildWarnsOnGenerationOrder(t *testing.T) {
	records := []Record{
		{Name: "root", Generation: 5},
		{Name: "child", From: []string{"root"}, Generation: 3},
	}
	_, warnings, err := Build(records)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(warnings) != 1 || warnings[0].Code != WarnGenerationOrder {
		t.Fatalf("Build() warnings = %v, want one %s", warnings, WarnGenerationOrder)
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	g1 := mustBuild(t, lineageRecords())
	g2 := mustBuild(t, lineageRecords())

	sig := Signature{Vendor: "GenuineIntel", Features: featureSet("avx", "avx2")}

	b1, err1 := FindBest(g1, sig)
	b2, err2 := FindBest(g2, sig)
	if err1 != nil || err2 != nil {
		t.Fatalf("FindBest() errors = %v, %v", err1, err2)
	}
	if b1.Name != b2.Name {
		t.Errorf("FindBest() disagrees across builds: %q vs %q", b1.Name, b2.Name)
	}

	for _, pair := range [][2]string{{"x86_64", "skylake"}, {"haswell", "haswell"}, {"skylake", "haswell"}} {
		o1, _ := Compare(g1, pair[0], pair[1])
		o2, _ := Compare(g2, pair[0], pair[1])
		if o1 != o2 {
			t.Errorf("Compare(%q, %q) disagrees across builds: %v vs %v", pair[0], pair[1], o1, o2)
		}
	}
}

func TestBuildMultipleParents(t *testing.T) {
	records := []Record{
		{Name: "rootA", Features: []string{"a"}},
		{Name: "rootB", Features: []string{"b"}},
		{Name: "union", From: []string{"rootA", "rootB"}, Features: []string{"a", "b"}},
	}
	g := mustBuild(t, records)

	u := g.Lookup("union")
	if len(u.Parents()) != 2 {
		t.Fatalf("union has %d parents, want 2", len(u.Parents()))
	}
	for _, root := range []string{"rootA", "rootB"} {
		ord, err := Compare(g, root, "union")
		if err != nil {
			t.Fatalf("Compare(%q, union) error = %v", root, err)
		}
		if ord != AncestorOf {
			t.Errorf("Compare(%q, union) = %v, want %v", root, ord, AncestorOf)
		}
	}
}
