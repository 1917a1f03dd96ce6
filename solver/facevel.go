package solver

import (
	"math"

	"github.com/geoflows/avaflow/grid"
)

// computeFaceVelocities derives nodal velocities from momentum and
// thickness, then averages them onto the two face families used by
// donor-cell advection. The rightmost column and bottom row of the window
// stand for the domain-facing (or window-facing) boundary and carry no
// flux, so their face velocity is forced to zero.
func (s *Solver) computeFaceVelocities(w grid.Window) {
	for i := w.R0; i < w.R1; i++ {
		for j := w.C0; j < w.C1; j++ {
			h := s.H.At(i, j)
			denom := h
			if denom < grid.Eps {
				denom = grid.Eps
			}
			s.u[i][j] = s.UH.At(i, j) / denom
			s.v[i][j] = s.VH.At(i, j) / denom
		}
	}
	for i := w.R0; i < w.R1; i++ {
		for j := w.C0; j < w.C1; j++ {
			if j == w.C1-1 {
				s.uFace[i][j] = 0
			} else {
				s.uFace[i][j] = 0.5 * (s.u[i][j] + s.u[i][j+1])
			}
			s.ixUp[i][j] = j
			if s.uFace[i][j] < 0 {
				s.ixUp[i][j] = j + 1
			}
		}
	}
	for i := w.R0; i < w.R1; i++ {
		for j := w.C0; j < w.C1; j++ {
			if i == w.R1-1 {
				s.vFace[i][j] = 0
			} else {
				s.vFace[i][j] = 0.5 * (s.v[i][j] + s.v[i+1][j])
			}
			s.iyUp[i][j] = i
			if s.vFace[i][j] < 0 {
				s.iyUp[i][j] = i + 1
			}
		}
	}
}

// cflTimeStep bounds dtMax by the CFL condition over the window's face
// velocities. A nil cfl means no capping is requested.
func (s *Solver) cflTimeStep(w grid.Window, dtMax float64, cfl *float64) float64 {
	if cfl == nil {
		return dtMax
	}
	var maxRate float64
	for i := w.R0; i < w.R1; i++ {
		for j := w.C0; j < w.C1; j++ {
			rate := math.Abs(s.uFace[i][j])/s.dx + math.Abs(s.vFace[i][j])/s.dy
			if rate > maxRate {
				maxRate = rate
			}
		}
	}
	if maxRate <= 0 {
		return dtMax
	}
	dtCFL := *cfl / maxRate
	if dtCFL < dtMax {
		return dtCFL
	}
	return dtMax
}
