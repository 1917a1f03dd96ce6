package grid

// Mirror returns the reflective-boundary index for position i against an
// axis of length n: interior indices pass through unchanged, and positions
// at or beyond the edge fold back one cell per step past the boundary
// (index -1 mirrors to 1, index n mirrors to n-2, and so on). This is the
// single place the closed-wall boundary convention is implemented; every
// central-difference computation at the domain edge goes through it rather
// than special-casing edge arithmetic inline.
func Mirror(i, n int) int {
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*n - 2 - i
		}
	}
	return i
}

// AtMirrored reads f at (i, j), folding either coordinate back into range
// with Mirror when it falls outside the field.
func (f *Field) AtMirrored(i, j int) float64 {
	return f.At(Mirror(i, f.ny), Mirror(j, f.nx))
}
