package solver

import "github.com/geoflows/avaflow/grid"

// pressureAndAccelerate selects, per cell, between the original
// denominator-limited pressure (when d_min > 0) and the modified
// g*h*cos^2(beta) pressure (the recommended default, d_min <= 0), then
// applies the pressure-gradient acceleration to momentum. The resulting
// pressure and the bed-slope-projected surface slope s_dot are retained
// for the friction phase.
func (s *Solver) pressureAndAccelerate(w grid.Window, dt float64) {
	s.forEachRow(w, func(rows grid.Window) {
		for i := rows.R0; i < rows.R1; i++ {
			for j := rows.C0; j < rows.C1; j++ {
				h := s.H.At(i, j)
				dbdx, dbdy := s.DBDX.At(i, j), s.DBDY.At(i, j)
				cb := s.CosBeta.At(i, j)
				dsdx, dsdy := s.dsdx[i][j], s.dsdy[i][j]
				sdot := dsdx*dbdx + dsdy*dbdy

				dmin := s.Params.DMin.At(i, j)
				var p float64
				if dmin > 0 {
					denom := 1 + sdot
					if denom < dmin {
						denom = dmin
					}
					p = s.Params.G * h / denom
				} else {
					p = s.Params.G * h * cb * cb
				}

				s.pres[i][j] = p
				s.sdot[i][j] = sdot

				s.UH.Set(i, j, s.UH.At(i, j)-dt*p*dsdx)
				s.VH.Set(i, j, s.VH.At(i, j)-dt*p*dsdy)
				s.WH.Set(i, j, s.WH.At(i, j)-dt*p*sdot)
			}
		}
	})
}
