package detector

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/NVIDIA/arch-stack/pkg/feature"
	"github.com/NVIDIA/arch-stack/pkg/march"
)

// CPUInfoProbe reads /proc/cpuinfo and builds a signature from the first
// processor block. All cores report the same identity on the machines this
// tool targets; heterogeneous big.LITTLE parts still label correctly
// because matching only consumes the feature set.
type CPUInfoProbe struct {
	Path        string
	Conversions feature.Conversions
}

// Name implements Probe.
func (p *CPUInfoProbe) Name() string { return "cpuinfo" }

// Probe implements Probe.
func (p *CPUInfoProbe) Probe(ctx context.Context) (*march.Signature, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	f, err := os.Open(p.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrUnavailable
		}
		return nil, fmt.Errorf("failed to open %s: %w", p.Path, err)
	}
	defer f.Close()

	return ParseCPUInfo(f, p.Conversions)
}

// ParseCPUInfo decodes the first processor block of a /proc/cpuinfo
// stream. The block's key set identifies the architecture: x86 blocks
// carry vendor_id and flags, aarch64 blocks carry CPU implementer and
// Features, POWER blocks report only a generation, and RISC-V blocks
// carry isa and uarch.
func ParseCPUInfo(r io.Reader, conv feature.Conversions) (*march.Signature, error) {
	fields, err := firstBlock(r)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("cpuinfo contains no processor block")
	}

	switch {
	case fields["vendor_id"] != "":
		return x86Signature(fields), nil
	case fields["CPU implementer"] != "":
		return armSignature(fields, conv), nil
	case strings.HasPrefix(fields["cpu"], "POWER"):
		return powerSignature(fields)
	case fields["uarch"] != "" || fields["isa"] != "":
		return riscvSignature(fields), nil
	}
	return nil, fmt.Errorf("unrecognized cpuinfo format (keys: %d)", len(fields))
}

// firstBlock reads key/value lines up to the first blank line.
func firstBlock(r io.Reader) (map[string]string, error) {
	fields := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if len(fields) > 0 {
				break
			}
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cpuinfo: %w", err)
	}
	return fields, nil
}

func x86Signature(fields map[string]string) *march.Signature {
	return &march.Signature{
		Vendor:   fields["vendor_id"],
		Arch:     "x86_64",
		Features: feature.NewSet(strings.Fields(fields["flags"])...),
		Family:   atoiOrZero(fields["cpu family"]),
		Model:    atoiOrZero(fields["model"]),
		Stepping: atoiOrZero(fields["stepping"]),
		Brand:    fields["model name"],
	}
}

func armSignature(fields map[string]string, conv feature.Conversions) *march.Signature {
	return &march.Signature{
		Vendor:   conv.VendorForImplementer(strings.ToLower(fields["CPU implementer"])),
		Arch:     "aarch64",
		Features: feature.NewSet(strings.Fields(fields["Features"])...),
		Brand:    fields["CPU part"],
	}
}

// powerSignature synthesizes marker features from the reported POWER
// generation. POWER chips expose no feature list in cpuinfo; the dataset's
// IBM nodes carry powerN markers so that feature-driven matching still
// selects the right generation.
func powerSignature(fields map[string]string) (*march.Signature, error) {
	cpu := fields["cpu"]
	digits := strings.TrimFunc(strings.TrimPrefix(cpu, "POWER"), func(r rune) bool {
		return r < '0' || r > '9'
	})
	gen, err := strconv.Atoi(digits)
	if err != nil {
		return nil, fmt.Errorf("failed to parse POWER generation from %q: %w", cpu, err)
	}

	features := feature.NewSet("altivec", "vsx")
	for g := 8; g <= gen; g++ {
		features.Add(fmt.Sprintf("power%d", g))
	}
	return &march.Signature{
		Vendor:   "IBM",
		Arch:     "ppc64le",
		Features: features,
		Brand:    cpu,
	}, nil
}

// riscvVendors maps the uarch vendor prefix to the dataset vocabulary.
var riscvVendors = map[string]string{
	"sifive":    "SiFive",
	"thead":     "T-Head",
	"andestech": "Andes",
}

func riscvSignature(fields map[string]string) *march.Signature {
	sig := &march.Signature{
		Vendor:   march.VendorGeneric,
		Arch:     "riscv64",
		Features: feature.NewSet(),
		Brand:    fields["uarch"],
	}
	if vendor, _, found := strings.Cut(fields["uarch"], ","); found {
		if mapped, ok := riscvVendors[vendor]; ok {
			sig.Vendor = mapped
		}
	}
	// The base ISA string collapses to the conventional rv64gc token when
	// the general-purpose extension set is present.
	isa := strings.ToLower(fields["isa"])
	if strings.HasPrefix(isa, "rv64imafdc") || strings.HasPrefix(isa, "rv64gc") {
		sig.Features.Add("rv64gc")
	}
	return sig
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
