package catalog

import (
	"github.com/pathpirate/pathpirate/pkg/errors"
)

// BitfileName is the DPLL bitfile both hardware transforms install
const BitfileName = "5i25_t2_7i85s_dpll.bit"

// Variant is a machine configuration with its own bundled files
type Variant struct {
	Name  string `json:"name" yaml:"name"`
	Model string `json:"model" yaml:"model"`
	Minor int    `json:"minor" yaml:"minor"`
	// Bitfile is relative to the bundle directory
	Bitfile string `json:"bitfile" yaml:"bitfile"`
}

var variants = []Variant{
	{Name: "mill-7i85s", Model: "1100-3", Minor: 9, Bitfile: BitfileName},
	{Name: "mill-7i85s-v2.10", Model: "1100-3", Minor: 10, Bitfile: "v2.10/" + BitfileName},
}

// Variants returns the supported variants
func Variants() []Variant {
	out := make([]Variant, len(variants))
	copy(out, variants)
	return out
}

// ResolveVariant picks the variant for a machine model and PathPilot
// minor version
func ResolveVariant(model string, minor int) (Variant, error) {
	for _, v := range variants {
		if v.Model == model && v.Minor == minor {
			return v, nil
		}
	}
	return Variant{}, errors.Newf(errors.ErrUnsupportedVariant,
		"no bundle for model %s on PathPilot v2.%d", model, minor).
		WithDetail("model", model).
		WithDetail("minor", minor)
}
