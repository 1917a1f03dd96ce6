// Package grid provides the dense 2D array primitives the solver is built
// on: a row/column indexed Field backed by gonum's mat.Dense, mirror-index
// boundary helpers, and a lightweight rectangular Window used to restrict
// the per-step kernels to the active part of the domain.
package grid

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Eps is the numerical floor used throughout the solver to avoid division
// by zero in velocity and thickness-weight computations.
const Eps = 1e-10

// Field is a dense ny x nx array of float64, row-major in (i, j) = (row,
// column). It wraps a *mat.Dense the same way the reference stack's
// utils.Matrix wraps one, with a "does-not-change-receiver" / "changes
// receiver" convention on its methods.
type Field struct {
	m      *mat.Dense
	ny, nx int
}

// NewField allocates a zeroed ny x nx field.
func NewField(ny, nx int) *Field {
	if ny <= 0 || nx <= 0 {
		panic(fmt.Errorf("grid: invalid field shape %dx%d", ny, nx))
	}
	return &Field{m: mat.NewDense(ny, nx, nil), ny: ny, nx: nx}
}

// NewFieldFromRows builds a Field from row-major data, one []float64 per row.
func NewFieldFromRows(rows [][]float64) *Field {
	ny := len(rows)
	if ny == 0 {
		panic(fmt.Errorf("grid: NewFieldFromRows given no rows"))
	}
	nx := len(rows[0])
	f := NewField(ny, nx)
	for i, row := range rows {
		if len(row) != nx {
			panic(fmt.Errorf("grid: ragged input row %d: have %d, want %d", i, len(row), nx))
		}
		for j, v := range row {
			f.m.Set(i, j, v)
		}
	}
	return f
}

// Dims returns (ny, nx).
func (f *Field) Dims() (ny, nx int) { return f.ny, f.nx }

func (f *Field) At(i, j int) float64 { return f.m.At(i, j) }

func (f *Field) Set(i, j int, v float64) { f.m.Set(i, j, v) }

// Clone returns an independent copy. Does not change the receiver.
func (f *Field) Clone() *Field {
	g := NewField(f.ny, f.nx)
	g.m.Copy(f.m)
	return g
}

// Fill sets every cell to v. Changes the receiver.
func (f *Field) Fill(v float64) *Field {
	for i := 0; i < f.ny; i++ {
		for j := 0; j < f.nx; j++ {
			f.m.Set(i, j, v)
		}
	}
	return f
}

// Apply overwrites every cell with fn(cell). Changes the receiver.
func (f *Field) Apply(fn func(float64) float64) *Field {
	for i := 0; i < f.ny; i++ {
		for j := 0; j < f.nx; j++ {
			f.m.Set(i, j, fn(f.m.At(i, j)))
		}
	}
	return f
}

// Apply2 overwrites every cell of the receiver with fn(receiver, other) at
// the same coordinate. Changes the receiver; other and the receiver must
// share shape.
func (f *Field) Apply2(fn func(a, b float64) float64, other *Field) *Field {
	f.checkSameShape(other)
	for i := 0; i < f.ny; i++ {
		for j := 0; j < f.nx; j++ {
			f.m.Set(i, j, fn(f.m.At(i, j), other.m.At(i, j)))
		}
	}
	return f
}

// Add adds other into the receiver elementwise. Changes the receiver.
func (f *Field) Add(other *Field) *Field {
	return f.Apply2(func(a, b float64) float64 { return a + b }, other)
}

// Sub subtracts other from the receiver elementwise. Changes the receiver.
func (f *Field) Sub(other *Field) *Field {
	return f.Apply2(func(a, b float64) float64 { return a - b }, other)
}

// ElMul multiplies the receiver by other elementwise. Changes the receiver.
func (f *Field) ElMul(other *Field) *Field {
	return f.Apply2(func(a, b float64) float64 { return a * b }, other)
}

// Scale multiplies every cell by a. Changes the receiver.
func (f *Field) Scale(a float64) *Field {
	return f.Apply(func(v float64) float64 { return v * a })
}

// AddScalar adds a to every cell. Changes the receiver.
func (f *Field) AddScalar(a float64) *Field {
	return f.Apply(func(v float64) float64 { return v + a })
}

// Min returns the minimum cell value, reduced row by row with floats.Min.
func (f *Field) Min() float64 {
	min := floats.Min(f.m.RawRowView(0))
	for i := 1; i < f.ny; i++ {
		if v := floats.Min(f.m.RawRowView(i)); v < min {
			min = v
		}
	}
	return min
}

// Max returns the maximum cell value, reduced row by row with floats.Max.
func (f *Field) Max() float64 {
	max := floats.Max(f.m.RawRowView(0))
	for i := 1; i < f.ny; i++ {
		if v := floats.Max(f.m.RawRowView(i)); v > max {
			max = v
		}
	}
	return max
}

// Sum returns the sum of all cells, reduced row by row with floats.Sum.
func (f *Field) Sum() float64 {
	var s float64
	for i := 0; i < f.ny; i++ {
		s += floats.Sum(f.m.RawRowView(i))
	}
	return s
}

// RawMatrix exposes the backing dense matrix for interop with gonum
// routines (e.g. floats reductions over a flattened row).
func (f *Field) RawMatrix() *mat.Dense { return f.m }

func (f *Field) checkSameShape(other *Field) {
	if f.ny != other.ny || f.nx != other.nx {
		panic(fmt.Errorf("grid: shape mismatch %dx%d vs %dx%d", f.ny, f.nx, other.ny, other.nx))
	}
}

// SameShape reports whether a and b have identical dimensions.
func SameShape(a, b *Field) bool {
	ay, ax := a.Dims()
	by, bx := b.Dims()
	return ay == by && ax == bx
}
