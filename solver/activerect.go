package solver

import "github.com/geoflows/avaflow/grid"

// activeRect computes the tight bounding box of cells with thickness above
// h_min, expanded by a two-cell halo and clamped to the domain. Every
// subsequent phase of the step restricts its work to the returned window.
func (s *Solver) activeRect() grid.Window {
	r0, r1, c0, c1 := -1, -1, -1, -1
	for i := 0; i < s.ny; i++ {
		for j := 0; j < s.nx; j++ {
			if s.H.At(i, j) <= s.Params.HMin.At(i, j) {
				continue
			}
			if r0 == -1 {
				r0 = i
			}
			r1 = i
			if c0 == -1 || j < c0 {
				c0 = j
			}
			if j > c1 {
				c1 = j
			}
		}
	}
	if r0 == -1 {
		return grid.Window{}
	}
	w := grid.Window{R0: r0, R1: r1 + 1, C0: c0, C1: c1 + 1}
	return w.Expand(2, s.ny, s.nx)
}
