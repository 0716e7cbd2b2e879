package march

import (
	"testing"

	"github.com/NVIDIA/arch-stack/pkg/errors"
	"github.com/NVIDIA/arch-stack/pkg/version"
)

func TestResolveFlagsExactNode(t *testing.T) {
	g := mustBuild(t, lineageRecords())

	flags, err := ResolveFlags(g, "skylake", "gcc", version.MustParse("8.3"))
	if err != nil {
		t.Fatalf("ResolveFlags() error = %v", err)
	}
	if flags != "-march=skylake" {
		t.Errorf("ResolveFlags() = %q, want -march=skylake", flags)
	}
}

func TestResolveFlagsAncestorFallback(t *testing.T) {
	g := mustBuild(t, lineageRecords())

	// gcc 5.0 predates skylake support (min 6.0) but covers haswell.
	flags, err := ResolveFlags(g, "skylake", "gcc", version.MustParse("5.0"))
	if err != nil {
		t.Fatalf("ResolveFlags() error = %v", err)
	}
	if flags != "-march=haswell" {
		t.Errorf("ResolveFlags() = %q, want -march=haswell", flags)
	}

	// gcc 4.2 predates everything but the root.
	flags, err = ResolveFlags(g, "skylake", "gcc", version.MustParse("4.2"))
	if err != nil {
		t.Fatalf("ResolveFlags() error = %v", err)
	}
	if flags != "-march=x86-64" {
		t.Errorf("ResolveFlags() = %q, want -march=x86-64", flags)
	}
}

func TestResolveFlagsRangeBoundaries(t *testing.T) {
	g := mustBuild(t, lineageRecords())

	tests := []struct {
		version string
		want    string
	}{
		// Ranges include their minimum and exclude their maximum.
		{"6.0", "-march=skylake"},
		{"8.9", "-march=skylake"},
		{"9.0", "-march=haswell"},
	}

	for _, tt := range tests {
		flags, err := ResolveFlags(g, "skylake", "gcc", version.MustParse(tt.version))
		if err != nil {
			t.Fatalf("ResolveFlags(gcc %s) error = %v", tt.version, err)
		}
		if flags != tt.want {
			t.Errorf("ResolveFlags(gcc %s) = %q, want %q", tt.version, flags, tt.want)
		}
	}
}

func TestResolveFlagsNamePlaceholderOverride(t *testing.T) {
	// Some compilers know a node under a different name.
	records := []Record{
		{Name: "x86_64", Compilers: map[string][]CompilerSupport{
			"gcc": {{Min: "4.0", Flags: "-march=x86-64"}},
		}},
		{
			Name: "zen3", Vendor: "AuthenticAMD", From: []string{"x86_64"},
			Features: []string{"avx2"}, Generation: 3,
			Compilers: map[string][]CompilerSupport{
				"gcc": {{Min: "10.3", Flags: "-march={name}", Name: "znver3"}},
			},
		},
	}
	g := mustBuild(t, records)

	flags, err := ResolveFlags(g, "zen3", "gcc", version.MustParse("11.0"))
	if err != nil {
		t.Fatalf("ResolveFlags() error = %v", err)
	}
	if flags != "-march=znver3" {
		t.Errorf("ResolveFlags() = %q, want -march=znver3", flags)
	}
}

func TestResolveFlagsMultipleRanges(t *testing.T) {
	// Older compiler releases sometimes need different spellings.
	records := []Record{
		{Name: "aarch64", Compilers: map[string][]CompilerSupport{
			"gcc": {{Min: "4.8", Flags: "-march=armv8-a"}},
		}},
		{
			Name: "thunderx2", Vendor: "Cavium", From: []string{"aarch64"},
			Features: []string{"asimd", "atomics"},
			Compilers: map[string][]CompilerSupport{
				"gcc": {
					{Min: "4.8", Max: "7.0", Flags: "-march=armv8-a"},
					{Min: "7.0", Flags: "-mcpu=thunderx2t99"},
				},
			},
		},
	}
	g := mustBuild(t, records)

	tests := []struct {
		version string
		want    string
	}{
		{"5.4", "-march=armv8-a"},
		{"7.0", "-mcpu=thunderx2t99"},
		{"12.1", "-mcpu=thunderx2t99"},
	}

	for _, tt := range tests {
		flags, err := ResolveFlags(g, "thunderx2", "gcc", version.MustParse(tt.version))
		if err != nil {
			t.Fatalf("ResolveFlags(gcc %s) error = %v", tt.version, err)
		}
		if flags != tt.want {
			t.Errorf("ResolveFlags(gcc %s) = %q, want %q", tt.version, flags, tt.want)
		}
	}
}

func TestResolveFlagsUnsupportedCompiler(t *testing.T) {
	g := mustBuild(t, lineageRecords())

	_, err := ResolveFlags(g, "skylake", "pgi", version.MustParse("21.0"))
	if !errors.HasCode(err, errors.ErrCodeUnsupportedCompiler) {
		t.Fatalf("ResolveFlags() error = %v, want code %s", err, errors.ErrCodeUnsupportedCompiler)
	}

	// Version below every range all the way to the root.
	_, err = ResolveFlags(g, "skylake", "gcc", version.MustParse("3.4"))
	if !errors.HasCode(err, errors.ErrCodeUnsupportedCompiler) {
		t.Fatalf("ResolveFlags() error = %v, want code %s", err, errors.ErrCodeUnsupportedCompiler)
	}
}

func TestResolveFlagsUnknownTarget(t *testing.T) {
	g := mustBuild(t, lineageRecords())

	_, err := ResolveFlags(g, "nonexistent", "gcc", version.MustParse("10.0"))
	if !errors.HasCode(err, errors.ErrCodeUnknownTarget) {
		t.Fatalf("ResolveFlags() error = %v, want code %s", err, errors.ErrCodeUnknownTarget)
	}
}

func TestResolveFlagsSkipsForeignVendorParent(t *testing.T) {
	// Fallback never crosses into a different vendor's lineage.
	records := []Record{
		{Name: "x86_64", Compilers: map[string][]CompilerSupport{
			"gcc": {{Min: "4.0", Flags: "-march=x86-64"}},
		}},
		{
			Name: "icelake", Vendor: "GenuineIntel", From: []string{"x86_64"},
			Features: []string{"avx512f"}, Generation: 11,
			Compilers: map[string][]CompilerSupport{
				"gcc": {{Min: "8.0", Flags: "-march=icelake-server"}},
			},
		},
		{
			Name: "hybrid", Vendor: "AuthenticAMD", From: []string{"icelake", "x86_64"},
			Features: []string{"avx512f"}, Generation: 1,
		},
	}
	g, _, err := Build(records)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// hybrid has no gcc table; icelake is a parent but belongs to a
	// different vendor, so fallback lands on the generic root.
	flags, err := ResolveFlags(g, "hybrid", "gcc", version.MustParse("9.0"))
	if err != nil {
		t.Fatalf("ResolveFlags() error = %v", err)
	}
	if flags != "-march=x86-64" {
		t.Errorf("ResolveFlags() = %q, want -march=x86-64", flags)
	}
}
