//go:build amd64

package detector

import (
	"golang.org/x/sys/cpu"

	"github.com/NVIDIA/arch-stack/pkg/feature"
)

// registerFeatures translates CPUID capability bits into the canonical
// feature vocabulary. F16C and MOVBE are not exposed by the register
// interface, so signatures from this probe top out at the v2 feature
// level even on newer parts.
func registerFeatures() (feature.Set, bool) {
	features := feature.NewSet("mmx", "sse", "sse2")

	for name, present := range map[string]bool{
		"ssse3":       cpu.X86.HasSSSE3,
		"sse4_1":      cpu.X86.HasSSE41,
		"sse4_2":      cpu.X86.HasSSE42,
		"popcnt":      cpu.X86.HasPOPCNT,
		"cx16":        cpu.X86.HasCX16,
		"aes":         cpu.X86.HasAES,
		"pclmulqdq":   cpu.X86.HasPCLMULQDQ,
		"avx":         cpu.X86.HasAVX,
		"avx2":        cpu.X86.HasAVX2,
		"bmi1":        cpu.X86.HasBMI1,
		"bmi2":        cpu.X86.HasBMI2,
		"fma":         cpu.X86.HasFMA,
		"rdrand":      cpu.X86.HasRDRAND,
		"rdseed":      cpu.X86.HasRDSEED,
		"adx":         cpu.X86.HasADX,
		"avx512f":     cpu.X86.HasAVX512F,
		"avx512bw":    cpu.X86.HasAVX512BW,
		"avx512cd":    cpu.X86.HasAVX512CD,
		"avx512dq":    cpu.X86.HasAVX512DQ,
		"avx512vl":    cpu.X86.HasAVX512VL,
		"avx512_vnni": cpu.X86.HasAVX512VNNI,
	} {
		if present {
			features.Add(name)
		}
	}
	return features, true
}
