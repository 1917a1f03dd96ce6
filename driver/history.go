package driver

import "github.com/geoflows/avaflow/grid"

// Snapshot is one (t, h) sample of the time-series sink interface.
type Snapshot struct {
	T float64
	H *grid.Field
}

// History is a growing ordered sequence of snapshots, a concrete
// reference implementation of the time-series sink collaborator
// interface: the driver appends to it at OutputEvery multiples.
type History struct {
	Snapshots []Snapshot
}

// Record appends a defensive copy of h at time t; the core never exposes a
// mutable alias of its own state to a sink.
func (h *History) Record(t float64, field *grid.Field) {
	h.Snapshots = append(h.Snapshots, Snapshot{T: t, H: field.Clone()})
}
