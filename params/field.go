// Package params implements the "scalar or per-cell field" parameter
// primitive used by the solver's friction and pressure bundle: a value
// type the caller can construct from either a float64 or a *grid.Field
// without the rest of the kernel branching on which it got.
package params

import "github.com/geoflows/avaflow/grid"

// Field reads as a per-cell float64 regardless of whether it was
// constructed from a uniform scalar or a raster. The zero value is not
// usable; build one with Scalar or FromField.
type Field struct {
	scalar float64
	field  *grid.Field
}

// Scalar returns a Field that yields v for every cell.
func Scalar(v float64) Field { return Field{scalar: v} }

// FromField returns a Field that reads through to f for every cell. f is
// not copied; the caller must not mutate it afterward.
func FromField(f *grid.Field) Field { return Field{field: f} }

// At returns the parameter value at (i, j).
func (p Field) At(i, j int) float64 {
	if p.field != nil {
		return p.field.At(i, j)
	}
	return p.scalar
}

// IsUniform reports whether the Field was built from a single scalar.
func (p Field) IsUniform() bool { return p.field == nil }

// Dims reports the backing raster's shape. uniform is true (and ny, nx are
// zero) when the Field was built from a scalar.
func (p Field) Dims() (ny, nx int, uniform bool) {
	if p.field == nil {
		return 0, 0, true
	}
	ny, nx = p.field.Dims()
	return ny, nx, false
}
