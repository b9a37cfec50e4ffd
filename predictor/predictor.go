// Package predictor locates the two already-coded nearest neighbors of a
// pixel under raster-scan order, which the channel codec uses to build its
// prediction context.
package predictor

import "github.com/mewkiz/pkg/errutil"

// Predictor locates neighbor pairs for a channel of the given width.
type Predictor struct {
	width uint32
}

// New returns a Predictor for a channel of width pixels per row.
//
// Panics if width is 0: a zero-width channel has no raster-scan structure to
// speak of, and is an interface-contract violation rather than a runtime
// condition this package should absorb.
func New(width uint32) Predictor {
	if width == 0 {
		panic(errutil.Newf("predictor: width must be positive"))
	}
	return Predictor{width: width}
}

// Neighbors returns the linear indices of the two nearest already-coded
// neighbors of pixel i, under raster-scan order:
//
//   - If the pixel is not in the first row or first column, its neighbors
//     are the pixel immediately to its left and the pixel immediately
//     above it.
//   - If it is in the first row (and not one of the first two pixels),
//     its neighbors are the two pixels immediately to its left.
//   - If it is in the first column below the first row, its neighbors are
//     the two pixels immediately above it, unless only one row above
//     exists, in which case its neighbors are the pixel above and the
//     pixel diagonally above-right.
//
// ok is false when no such pair exists: this happens only for the first two
// pixels of the channel (in a single-column channel these are (0,0) and
// (0,1), the latter having no diagonal neighbor).
func (p Predictor) Neighbors(i uint32) (a, b uint32, ok bool) {
	x := i % p.width
	y := i / p.width

	switch {
	case x > 0 && y > 0:
		return i - 1, i - p.width, true
	case y == 0:
		if x >= 2 {
			return i - 1, i - 2, true
		}
		return 0, 0, false
	default: // x == 0, y >= 1
		if y >= 2 {
			return i - p.width, i - 2*p.width, true
		}
		if p.width >= 2 {
			return i - p.width, i - p.width + 1, true
		}
		return 0, 0, false
	}
}
