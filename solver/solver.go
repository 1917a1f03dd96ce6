// Package solver implements the explicit finite-volume kernel for
// depth-averaged, gravity-driven mass flows over a structured bed: the
// advection, bed-plane reprojection, surface-gradient reconstruction,
// pressure and two-regime friction phases of one time step, plus the
// active-rectangle bookkeeping that restricts each step to where the flow
// actually is.
package solver

import (
	"fmt"
	"math"

	"github.com/geoflows/avaflow/grid"
)

// Solver owns the full mutable state of one simulation: bed elevation,
// mobile-layer thickness, the three momentum components, derived bed
// geometry, and the scratch buffers the per-step phases reuse. All arrays
// are allocated once at construction, sized to the full grid, and never
// reallocated by Step.
type Solver struct {
	ny, nx int
	dx, dy float64

	B, H, UH, VH, WH    *grid.Field
	DBDX, DBDY, CosBeta *grid.Field
	Stat                [][]int

	Params Params

	// ParallelDegree controls whether the embarrassingly-parallel per-cell
	// phases (friction, pressure) are sharded across worker goroutines by
	// row band. 1 (the default) runs them sequentially.
	ParallelDegree int

	diverged bool

	// scratch, reused step-to-step, always sized ny x nx
	u, v         [][]float64
	uFace, vFace [][]float64
	ixUp, iyUp   [][]int
	fx, fy       [][]float64
	dsdx, dsdy   [][]float64
	sdot         [][]float64
	pres         [][]float64
	hcdt         [][]float64
	statBuf      [][]int
}

// New constructs a solver from a bed elevation and initial thickness of
// identical shape. uh, vh, wh start at zero. The bed and its derived
// geometry (db/dx, db/dy, cos beta) are fixed for the life of the solver.
func New(b, h0 *grid.Field, dx, dy float64, p Params) (*Solver, error) {
	ny, nx := b.Dims()
	if !grid.SameShape(b, h0) {
		hy, hx := h0.Dims()
		return nil, fmt.Errorf("solver: shape mismatch: bed is %dx%d, thickness is %dx%d", ny, nx, hy, hx)
	}
	if dx <= 0 || dy <= 0 {
		return nil, fmt.Errorf("solver: cell size must be positive, got dx=%g dy=%g", dx, dy)
	}
	if err := p.validate(ny, nx); err != nil {
		return nil, err
	}

	s := &Solver{
		ny: ny, nx: nx, dx: dx, dy: dy,
		B: b.Clone(), H: h0.Clone(),
		UH: grid.NewField(ny, nx), VH: grid.NewField(ny, nx), WH: grid.NewField(ny, nx),
		DBDX: grid.NewField(ny, nx), DBDY: grid.NewField(ny, nx), CosBeta: grid.NewField(ny, nx),
		Stat:           alloc2Dint(ny, nx),
		Params:         p,
		ParallelDegree: 1,

		u: alloc2D(ny, nx), v: alloc2D(ny, nx),
		uFace: alloc2D(ny, nx), vFace: alloc2D(ny, nx),
		ixUp: alloc2Dint(ny, nx), iyUp: alloc2Dint(ny, nx),
		fx: alloc2D(ny, nx), fy: alloc2D(ny, nx),
		dsdx: alloc2D(ny, nx), dsdy: alloc2D(ny, nx),
		sdot: alloc2D(ny, nx), pres: alloc2D(ny, nx), hcdt: alloc2D(ny, nx),
		statBuf: alloc2Dint(ny, nx),
	}
	s.precomputeGeometry()
	return s, nil
}

// precomputeGeometry derives the bed slopes and bed-normal cosine from B
// once, using mirrored indices at the domain edge. These never change
// after construction.
func (s *Solver) precomputeGeometry() {
	for i := 0; i < s.ny; i++ {
		for j := 0; j < s.nx; j++ {
			dbdx := (s.B.AtMirrored(i, j+1) - s.B.AtMirrored(i, j-1)) / (2 * s.dx)
			dbdy := (s.B.AtMirrored(i+1, j) - s.B.AtMirrored(i-1, j)) / (2 * s.dy)
			s.DBDX.Set(i, j, dbdx)
			s.DBDY.Set(i, j, dbdy)
			s.CosBeta.Set(i, j, 1/math.Sqrt(1+dbdx*dbdx+dbdy*dbdy))
		}
	}
}

// Diverged reports whether a previous Step detected non-finite state. Once
// true the solver must not be stepped again.
func (s *Solver) Diverged() bool { return s.diverged }

// Dims returns the full grid shape.
func (s *Solver) Dims() (ny, nx int) { return s.ny, s.nx }

func alloc2D(ny, nx int) [][]float64 {
	a := make([][]float64, ny)
	backing := make([]float64, ny*nx)
	for i := range a {
		a[i] = backing[i*nx : (i+1)*nx]
	}
	return a
}

func alloc2Dint(ny, nx int) [][]int {
	a := make([][]int, ny)
	backing := make([]int, ny*nx)
	for i := range a {
		a[i] = backing[i*nx : (i+1)*nx]
	}
	return a
}
