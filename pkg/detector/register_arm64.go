//go:build arm64

package detector

import (
	"golang.org/x/sys/cpu"

	"github.com/NVIDIA/arch-stack/pkg/feature"
)

// registerFeatures translates the AArch64 capability registers into the
// canonical feature vocabulary.
func registerFeatures() (feature.Set, bool) {
	features := feature.NewSet()

	for name, present := range map[string]bool{
		"fp":       cpu.ARM64.HasFP,
		"asimd":    cpu.ARM64.HasASIMD,
		"aes":      cpu.ARM64.HasAES,
		"pmull":    cpu.ARM64.HasPMULL,
		"sha1":     cpu.ARM64.HasSHA1,
		"sha2":     cpu.ARM64.HasSHA2,
		"sha3":     cpu.ARM64.HasSHA3,
		"crc32":    cpu.ARM64.HasCRC32,
		"atomics":  cpu.ARM64.HasATOMICS,
		"fphp":     cpu.ARM64.HasFPHP,
		"asimdhp":  cpu.ARM64.HasASIMDHP,
		"asimdrdm": cpu.ARM64.HasASIMDRDM,
		"jscvt":    cpu.ARM64.HasJSCVT,
		"fcma":     cpu.ARM64.HasFCMA,
		"lrcpc":    cpu.ARM64.HasLRCPC,
		"dcpop":    cpu.ARM64.HasDCPOP,
		"asimddp":  cpu.ARM64.HasASIMDDP,
		"sve":      cpu.ARM64.HasSVE,
		"i8mm":     cpu.ARM64.HasI8MM,
	} {
		if present {
			features.Add(name)
		}
	}
	return features, true
}
