package solver

import "github.com/geoflows/avaflow/grid"

// advectField applies one donor-cell advection sweep to f using the face
// velocities and upstream indices already computed for this step. The
// window's own boundary is treated as a closed wall: no flux crosses it,
// matching the zero-flux convention at the true domain edge (section 4.3).
//
// Flux arrays are fully computed from the pre-update field before any
// value is mutated, so the in-place update in the second pass never reads
// a value another iteration of the same pass has already changed.
func (s *Solver) advectField(f *grid.Field, w grid.Window, dt float64) {
	for i := w.R0; i < w.R1; i++ {
		for j := w.C0; j < w.C1; j++ {
			s.fx[i][j] = f.At(i, s.ixUp[i][j]) * s.uFace[i][j]
		}
	}
	for i := w.R0; i < w.R1; i++ {
		for j := w.C0; j < w.C1; j++ {
			s.fy[i][j] = f.At(s.iyUp[i][j], j) * s.vFace[i][j]
		}
	}
	for i := w.R0; i < w.R1; i++ {
		for j := w.C0; j < w.C1; j++ {
			var fxLeft, fyTop float64
			if j > w.C0 {
				fxLeft = s.fx[i][j-1]
			}
			if i > w.R0 {
				fyTop = s.fy[i-1][j]
			}
			div := (s.fx[i][j]-fxLeft)/s.dx + (s.fy[i][j]-fyTop)/s.dy
			f.Set(i, j, f.At(i, j)-dt*div)
		}
	}
}
