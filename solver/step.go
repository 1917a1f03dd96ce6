package solver

import (
	"fmt"
	"math"

	"github.com/geoflows/avaflow/grid"
)

// Step advances the solver by one adaptively-chosen time step and returns
// the dt it actually used. dtMax bounds the step regardless of CFL; cfl,
// when non-nil, must satisfy 0 < *cfl <= 1 and further bounds dt by the
// Courant-Friedrichs-Lewy condition over the active rectangle. A nil cfl
// means no CFL capping is applied.
//
// The eight sub-phases of sections 4.1-4.8 run in a fixed order within the
// window returned by the active-rectangle tracker: reordering them is not
// safe, since the bed-plane reprojection needs pre-pressure momentum, the
// surface-gradient reconstruction needs post-advection thickness, and the
// friction phase reuses hcdt and the pressure computed earlier in the same
// step.
func (s *Solver) Step(dtMax float64, cfl *float64) (float64, error) {
	if s.diverged {
		return 0, fmt.Errorf("solver: cannot step a diverged solver")
	}
	if dtMax <= 0 {
		return 0, fmt.Errorf("solver: dtMax must be > 0, got %g", dtMax)
	}
	if cfl != nil && (*cfl <= 0 || *cfl > 1) {
		return 0, fmt.Errorf("solver: cfl must satisfy 0 < cfl <= 1, got %g", *cfl)
	}

	w := s.activeRect()
	s.resetStatusOutside(w)
	if w.Empty() {
		return dtMax, nil
	}

	s.computeFaceVelocities(w)
	dt := s.cflTimeStep(w, dtMax, cfl)

	s.advectField(s.H, w, dt)
	s.advectField(s.UH, w, dt)
	s.advectField(s.VH, w, dt)
	s.advectField(s.WH, w, dt)

	s.reproject(w)

	s.surfaceGradientX(w)
	s.surfaceGradientY(w)

	s.pressureAndAccelerate(w, dt)

	s.friction(w, dt)

	if phase, i, j, bad := s.findNonFinite(w); bad {
		s.diverged = true
		return dt, &DivergenceError{Phase: phase, Row: i, Col: j}
	}

	s.writeBackStatus(w)
	return dt, nil
}

// resetStatusOutside clears the flow status of every cell outside w: a
// cell that fell out of the active rectangle this step was not visited by
// friction and must not carry a stale Coulomb/Voellmy label forward.
func (s *Solver) resetStatusOutside(w grid.Window) {
	for i := 0; i < s.ny; i++ {
		inRow := i >= w.R0 && i < w.R1
		for j := 0; j < s.nx; j++ {
			if inRow && j >= w.C0 && j < w.C1 {
				continue
			}
			s.Stat[i][j] = 0
		}
	}
}

func (s *Solver) writeBackStatus(w grid.Window) {
	for i := w.R0; i < w.R1; i++ {
		for j := w.C0; j < w.C1; j++ {
			s.Stat[i][j] = s.statBuf[i][j]
		}
	}
}

func (s *Solver) findNonFinite(w grid.Window) (phase string, row, col int, bad bool) {
	check := func(name string, f *grid.Field) (string, int, int, bool) {
		for i := w.R0; i < w.R1; i++ {
			for j := w.C0; j < w.C1; j++ {
				v := f.At(i, j)
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return name, i, j, true
				}
			}
		}
		return "", 0, 0, false
	}
	for _, c := range []struct {
		name string
		f    *grid.Field
	}{{"thickness", s.H}, {"uh", s.UH}, {"vh", s.VH}, {"wh", s.WH}} {
		if name, i, j, bad := check(c.name, c.f); bad {
			return name, i, j, true
		}
	}
	return "", 0, 0, false
}
