// Package decay provides distance-decay functions for edge weighting.
//
// A decay function maps an interatomic distance to a non-negative edge weight,
// governing how strongly distant neighbors influence downstream convolution.
// The conventional choice for crystal graphs is inverse-square decay, so a pair
// of atoms at distance 2.0 contributes an edge of weight 0.25.
//
// Functions are selectable by name (for CLI flags, config files, and API
// requests) via [Lookup]:
//
//	fn, ok := decay.Lookup("inverse-square")
//	w := fn(2.0) // 0.25
package decay

import (
	"math"
	"sort"
)

// Func maps an interatomic distance to a non-negative edge weight.
// Implementations must be pure: the same distance always yields the same
// weight, with no shared state.
type Func func(distance float64) float64

// DefaultName is the registry name of the default decay function.
const DefaultName = "inverse-square"

// InverseSquare returns 1/d². This is the default weighting for
// cutoff-based crystal graphs.
func InverseSquare(d float64) float64 {
	return 1 / (d * d)
}

// Inverse returns 1/d.
func Inverse(d float64) float64 {
	return 1 / d
}

// Exponential returns a decay function computing exp(-d/scale).
// The scale must be positive; typical values are on the order of a bond length.
func Exponential(scale float64) Func {
	return func(d float64) float64 {
		return math.Exp(-d / scale)
	}
}

// Gaussian returns a decay function computing exp(-d²/(2σ²)).
func Gaussian(sigma float64) Func {
	denom := 2 * sigma * sigma
	return func(d float64) float64 {
		return math.Exp(-d * d / denom)
	}
}

// registry maps names to decay functions. Parameterized functions are
// registered with conventional defaults (scale and sigma of one length unit).
var registry = map[string]Func{
	"inverse-square": InverseSquare,
	"inverse":        Inverse,
	"exponential":    Exponential(1.0),
	"gaussian":       Gaussian(1.0),
}

// Lookup returns the decay function registered under name.
// The second return value reports whether the name is known.
func Lookup(name string) (Func, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// Names returns the registered decay function names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default returns the default decay function (inverse-square).
func Default() Func {
	return InverseSquare
}
