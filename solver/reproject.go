package solver

import (
	"math"

	"github.com/geoflows/avaflow/grid"
)

// reproject applies the centripetal correction: it rotates the momentum
// vector to lie in the local bed-tangent plane while preserving its
// magnitude, and records hcdt for reuse in the friction phase's effective
// normal pressure.
func (s *Solver) reproject(w grid.Window) {
	for i := w.R0; i < w.R1; i++ {
		for j := w.C0; j < w.C1; j++ {
			uh, vh, wh := s.UH.At(i, j), s.VH.At(i, j), s.WH.At(i, j)
			m := math.Sqrt(uh*uh + vh*vh + wh*wh)
			dbdx, dbdy, cb := s.DBDX.At(i, j), s.DBDY.At(i, j), s.CosBeta.At(i, j)

			hcdt := (uh*dbdx + vh*dbdy - wh) * cb
			uh2 := uh - hcdt*dbdx*cb
			vh2 := vh - hcdt*dbdy*cb
			wh2 := wh + hcdt*cb

			mPrime := math.Sqrt(uh2*uh2 + vh2*vh2 + wh2*wh2)
			if mPrime > 0 {
				scale := m / mPrime
				uh2 *= scale
				vh2 *= scale
				wh2 *= scale
			}

			s.UH.Set(i, j, uh2)
			s.VH.Set(i, j, vh2)
			s.WH.Set(i, j, wh2)
			s.hcdt[i][j] = hcdt
		}
	}
}
