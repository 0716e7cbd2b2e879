//go:build !amd64 && !arm64

package detector

import (
	"github.com/NVIDIA/arch-stack/pkg/feature"
)

func registerFeatures() (feature.Set, bool) {
	return nil, false
}
