package solver

import "github.com/geoflows/avaflow/grid"

// surfaceGradientX and surfaceGradientY compute the thickness-weighted,
// locally-switched surface gradient described in section 4.5: face-centred
// differences of s=b+h are averaged with weights equal to the half-sum of
// thickness on each side, and at a local surface maximum the average is
// switched to one-sided by zeroing the weight on the less-steep side. Both
// directions pad the window's own boundary with a zero face gradient and a
// thickness weight of grid.Eps, exactly as the true domain edge is padded.
func (s *Solver) surfaceGradientX(w grid.Window) {
	width := w.Cols()
	face := make([]float64, width+1)
	hHalf := make([]float64, width)

	for i := w.R0; i < w.R1; i++ {
		face[0] = 0
		face[width] = 0
		for k := 1; k < width; k++ {
			j := w.C0 + k
			sLeft := s.B.At(i, j-1) + s.H.At(i, j-1)
			sRight := s.B.At(i, j) + s.H.At(i, j)
			face[k] = (sRight - sLeft) / s.dx
		}
		for k := 0; k < width; k++ {
			j := w.C0 + k
			if k < width-1 {
				hHalf[k] = 0.5*(s.H.At(i, j)+s.H.At(i, j+1)) + grid.Eps
			} else {
				hHalf[k] = grid.Eps
			}
		}
		for k := 0; k < width; k++ {
			left := face[k]
			right := face[k+1]
			hL := grid.Eps
			if k > 0 {
				hL = hHalf[k-1]
			}
			hR := hHalf[k]
			if left > 0 && right < 0 {
				if left < -right {
					hL = 0
				} else {
					hR = 0
				}
			}
			s.dsdx[i][w.C0+k] = (left*hL + right*hR) / (hL + hR)
		}
	}
}

func (s *Solver) surfaceGradientY(w grid.Window) {
	height := w.Rows()
	face := make([]float64, height+1)
	hHalf := make([]float64, height)

	for j := w.C0; j < w.C1; j++ {
		face[0] = 0
		face[height] = 0
		for k := 1; k < height; k++ {
			i := w.R0 + k
			sTop := s.B.At(i-1, j) + s.H.At(i-1, j)
			sBottom := s.B.At(i, j) + s.H.At(i, j)
			face[k] = (sBottom - sTop) / s.dy
		}
		for k := 0; k < height; k++ {
			i := w.R0 + k
			if k < height-1 {
				hHalf[k] = 0.5*(s.H.At(i, j)+s.H.At(i+1, j)) + grid.Eps
			} else {
				hHalf[k] = grid.Eps
			}
		}
		for k := 0; k < height; k++ {
			top := face[k]
			bottom := face[k+1]
			hT := grid.Eps
			if k > 0 {
				hT = hHalf[k-1]
			}
			hB := hHalf[k]
			if top > 0 && bottom < 0 {
				if top < -bottom {
					hT = 0
				} else {
					hB = 0
				}
			}
			s.dsdy[w.R0+k][j] = (top*hT + bottom*hB) / (hT + hB)
		}
	}
}
