package cmd

import (
	"fmt"

	"github.com/geoflows/avaflow/grid"
)

// scenario builds a (bed, initial thickness) pair the way the reference
// stack's model_problems package selects a canned problem by name rather
// than reading a mesh file — the DEM container collaborator is out of
// scope here, so "run" and "bench" work from a small built-in library of
// test beds instead.
type scenario struct {
	name string
	ny   int
	nx   int
	bed  func(i, j int) float64
	h0   func(i, j int) float64
}

var scenarios = map[string]scenario{
	"flat": {
		name: "flat bed, square pile",
		ny:   20, nx: 20,
		bed: func(i, j int) float64 { return 0 },
		h0: func(i, j int) float64 {
			if i >= 3 && i < 8 && j >= 3 && j < 8 {
				return 5
			}
			return 0
		},
	},
	"incline": {
		name: "10% incline, square pile",
		ny:   40, nx: 40,
		bed: func(i, j int) float64 { return -0.1 * float64(j) },
		h0: func(i, j int) float64 {
			if i >= 3 && i < 6 && j >= 3 && j < 6 {
				return 5
			}
			return 0
		},
	},
	"bowl": {
		name: "parabolic bowl, off-center pile",
		ny:   40, nx: 40,
		bed: func(i, j int) float64 {
			x, y := float64(j)-20, float64(i)-20
			return 0.01 * (x*x + y*y)
		},
		h0: func(i, j int) float64 {
			if i >= 10 && i < 14 && j >= 10 && j < 14 {
				return 3
			}
			return 0
		},
	},
}

func (s scenario) build() (bed, h0 *grid.Field) {
	bed = grid.NewField(s.ny, s.nx)
	h0 = grid.NewField(s.ny, s.nx)
	for i := 0; i < s.ny; i++ {
		for j := 0; j < s.nx; j++ {
			bed.Set(i, j, s.bed(i, j))
			h0.Set(i, j, s.h0(i, j))
		}
	}
	return bed, h0
}

func lookupScenario(name string) (scenario, error) {
	s, ok := scenarios[name]
	if !ok {
		return scenario{}, fmt.Errorf("unknown scenario %q (choices: flat, incline, bowl)", name)
	}
	return s, nil
}
