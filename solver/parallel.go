package solver

import (
	"sync"

	"github.com/geoflows/avaflow/grid"
)

// forEachRow runs fn over row bands of w. With ParallelDegree <= 1 (the
// default) it runs fn once, sequentially, over the whole window — the
// friction and pressure phases have no cross-row dependency, so sharding
// the row range across a bounded worker pool changes only wall-clock time,
// never the result, mirroring the reference stack's PartitionMap-based
// sharding of element ranges across goroutines.
func (s *Solver) forEachRow(w grid.Window, fn func(rows grid.Window)) {
	degree := s.ParallelDegree
	rows := w.Rows()
	if degree <= 1 || rows <= 1 || rows < degree {
		fn(w)
		return
	}
	if degree > rows {
		degree = rows
	}
	var wg sync.WaitGroup
	base := rows / degree
	remainder := rows % degree
	r0 := w.R0
	for n := 0; n < degree; n++ {
		band := base
		if n < remainder {
			band++
		}
		r1 := r0 + band
		rw := grid.Window{R0: r0, R1: r1, C0: w.C0, C1: w.C1}
		wg.Add(1)
		go func(rw grid.Window) {
			defer wg.Done()
			fn(rw)
		}(rw)
		r0 = r1
	}
	wg.Wait()
}
