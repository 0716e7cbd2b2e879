package feature

// Alias is a synthetic feature derived from existing features or from the
// architecture family of a target. Aliases let the dataset name one token
// (e.g. "sse4.1") that different detection backends report under several
// raw names.
type Alias struct {
	// Reason documents why the alias exists.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`

	// AnyOf makes the alias valid when any listed feature is present.
	AnyOf []string `json:"any_of,omitempty" yaml:"any_of,omitempty"`

	// Families makes the alias valid when the target's family root is in
	// the list.
	Families []string `json:"families,omitempty" yaml:"families,omitempty"`
}

// Applies reports whether the alias holds for a target with the given
// feature set and family root name.
func (a Alias) Applies(features Set, family string) bool {
	for _, f := range a.AnyOf {
		if features.Contains(f) {
			return true
		}
	}
	for _, fam := range a.Families {
		if fam == family {
			return true
		}
	}
	return false
}

// Conversions map platform-specific values reported by detection backends
// to the canonical vocabulary. The core never branches on platform
// identity; these tables are consumed once while a signature is built.
type Conversions struct {
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// ArmVendors maps ARM implementer hex codes (e.g. "0x41") to vendor names.
	ArmVendors map[string]string `json:"arm_vendors,omitempty" yaml:"arm_vendors,omitempty"`

	// DarwinFlags maps macOS sysctl feature flags to their canonical
	// (linux-style) counterparts. A single darwin flag may expand to
	// several canonical features, space separated.
	DarwinFlags map[string]string `json:"darwin_flags,omitempty" yaml:"darwin_flags,omitempty"`
}

// VendorForImplementer resolves an ARM implementer code to a vendor name,
// falling back to "generic" for unknown codes.
func (c Conversions) VendorForImplementer(code string) string {
	if v, ok := c.ArmVendors[code]; ok {
		return v
	}
	return "generic"
}
