package driver

import (
	"context"

	"github.com/geoflows/avaflow/solver"
)

// Run iterates solver.Step until one of the independent stop conditions
// fires — step cap, time cap, or context cancellation — whichever is
// first. A converged flow (every cell stopped) is not itself a stop
// condition: the loop runs to the time or step cap regardless, matching
// section 4.9. hist may be nil to skip recording.
//
// Cancellation is cooperative and checked once per iteration, before
// Step is invoked and again before a snapshot would be recorded; a step
// already in progress always runs to completion.
func Run(ctx context.Context, s *solver.Solver, cfg Config, hist *History) (steps int, t float64, err error) {
	for steps <= cfg.MaxSteps && t <= cfg.MaxTime {
		if err = ctx.Err(); err != nil {
			return steps, t, err
		}
		var dt float64
		dt, err = s.Step(cfg.DtMax, cfg.CFL)
		if err != nil {
			return steps, t, err
		}
		t += dt
		if hist != nil && cfg.OutputEvery > 0 && steps%cfg.OutputEvery == 0 {
			if err = ctx.Err(); err != nil {
				return steps, t, err
			}
			hist.Record(t, s.H)
		}
		steps++
	}
	return steps, t, nil
}
