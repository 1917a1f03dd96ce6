package solver

import (
	"fmt"

	"github.com/geoflows/avaflow/params"
)

// Params is the modified-Voellmy rheology parameter bundle. Mu, Xi, Vc,
// HMin and DMin may each be built from a uniform scalar or a per-cell
// raster (params.Field); Cent and G are always scalar.
type Params struct {
	Mu   params.Field // Coulomb friction coefficient
	Xi   params.Field // Voellmy bed-roughness, m/s^2
	Vc   params.Field // crossover velocity at h=1, m/s; <=0 disables the crossover
	HMin params.Field // motion threshold, m
	DMin params.Field // pressure-denominator floor; <=0 selects the modified pressure
	Cent bool         // include the centripetal term in the effective normal pressure
	G    float64      // gravity, m/s^2
}

// DefaultParams returns the rheology defaults named in the model
// description: mu=0.2, xi=500, vc=4, h_min=0, d_min=0 (modified pressure),
// cent=true, g=9.81.
func DefaultParams() Params {
	return Params{
		Mu:   params.Scalar(0.2),
		Xi:   params.Scalar(500),
		Vc:   params.Scalar(4),
		HMin: params.Scalar(0),
		DMin: params.Scalar(0),
		Cent: true,
		G:    9.81,
	}
}

// validate checks the parts of the parameter bundle that can be checked
// without per-cell enumeration, and that every non-uniform field shares
// the solver's grid shape.
func (p Params) validate(ny, nx int) error {
	if p.G <= 0 {
		return fmt.Errorf("solver: invalid parameter: g must be > 0, got %g", p.G)
	}
	fields := map[string]params.Field{"mu": p.Mu, "xi": p.Xi, "vc": p.Vc, "h_min": p.HMin, "d_min": p.DMin}
	for name, f := range fields {
		fy, fx, uniform := f.Dims()
		if !uniform && (fy != ny || fx != nx) {
			return fmt.Errorf("solver: parameter field %q has shape %dx%d, want %dx%d", name, fy, fx, ny, nx)
		}
	}
	if p.HMin.IsUniform() && p.HMin.At(0, 0) < 0 {
		return fmt.Errorf("solver: invalid parameter: h_min must be >= 0, got %g", p.HMin.At(0, 0))
	}
	return nil
}
