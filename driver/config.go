// Package driver implements the outer control loop that advances a
// solver.Solver from t=0 until one of its stop conditions fires, and a
// concrete time-series recorder collaborator.
package driver

import "math"

// Config holds the driver-level parameters named in the external
// interfaces section of the model description. Zero values are not
// usable directly; start from DefaultConfig.
type Config struct {
	MaxSteps     int     // default: unbounded
	MaxTime      float64 // seconds, default 1000
	DtMax        float64 // seconds, default 1
	CFL          *float64
	OutputEvery  int // steps; 0 means never record
}

// DefaultConfig matches the driver defaults in the external interfaces
// section: MaxSteps unbounded, MaxTime 1000s, DtMax 1s, CFL 0.7,
// OutputEvery never.
func DefaultConfig() Config {
	cfl := 0.7
	return Config{
		MaxSteps:    math.MaxInt32,
		MaxTime:     1000,
		DtMax:       1,
		CFL:         &cfl,
		OutputEvery: 0,
	}
}
