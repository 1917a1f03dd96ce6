package solver

import (
	"math"

	"github.com/geoflows/avaflow/grid"
)

// friction applies the two-regime Coulomb/Voellmy closure to the momentum
// magnitude and records the resulting flow status. It runs after the
// pressure phase so it can read the pressure and the centripetal term
// computed earlier in this step.
func (s *Solver) friction(w grid.Window, dt float64) {
	s.forEachRow(w, func(rows grid.Window) {
		for i := rows.R0; i < rows.R1; i++ {
			for j := rows.C0; j < rows.C1; j++ {
				uh, vh, wh := s.UH.At(i, j), s.VH.At(i, j), s.WH.At(i, j)
				m := math.Sqrt(uh*uh + vh*vh + wh*wh)
				h := s.H.At(i, j)
				cb := s.CosBeta.At(i, j)

				p := s.pres[i][j]
				if s.Params.Cent {
					p = math.Max(p+s.hcdt[i][j]*cb/dt, 0)
				}

				mNew, stat := frictionUpdate(h, m, cb, p, dt,
					s.Params.HMin.At(i, j), s.Params.Mu.At(i, j),
					s.Params.Xi.At(i, j), s.Params.Vc.At(i, j), s.Params.G)

				denom := m
				if denom < grid.Eps {
					denom = grid.Eps
				}
				scale := mNew / denom
				s.UH.Set(i, j, uh*scale)
				s.VH.Set(i, j, vh*scale)
				s.WH.Set(i, j, wh*scale)
				s.statBuf[i][j] = stat
			}
		}
	})
}

// frictionUpdate computes the new momentum magnitude and flow status for
// one cell. vc<=0 means "conventional Voellmy everywhere h>h_min": every
// mobile cell is updated with the Voellmy formula, and the diagnostic
// status is relabeled Coulomb(1) rather than Voellmy(2) on cells where the
// per-cell kinematic test M_new^2 > mu*p*xi*h^2/g fails, preserving the
// exact selector rather than recomputing the magnitude a second way.
func frictionUpdate(h, m, cb, p, dt, hMin, mu, xi, vc, g float64) (mNew float64, stat int) {
	if h <= hMin {
		return 0, 0
	}

	useVoellmy := vc <= 0
	if !useVoellmy {
		threshold := vc * h * math.Pow(h*cb, 1.0/3.0)
		useVoellmy = m >= threshold
	}

	if useVoellmy {
		f := xi * h * h * cb / (2 * g * dt)
		val := f*f + 2*f*m
		if val < 0 {
			val = 0
		}
		mNew = math.Sqrt(val) - f
	} else {
		mNew = m - mu*p/cb*dt
	}
	if mNew < 0 {
		mNew = 0
	}

	switch {
	case vc <= 0:
		if mNew*mNew > mu*p*xi*h*h/g {
			stat = 2
		} else {
			stat = 1
		}
	case useVoellmy:
		stat = 2
	default:
		stat = 1
	}

	if mNew <= 0 {
		mNew = 0
		stat = 0
	}
	return mNew, stat
}
