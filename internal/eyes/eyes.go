// Package eyes implements eye-center localization within a detected
// face rectangle (C5): a cascade-based strategy and a gradient-
// projection fallback, per spec.md §4.5.
package eyes

import (
	"github.com/your-org/faceline/internal/cascade"
	"github.com/your-org/faceline/internal/detect"
	"github.com/your-org/faceline/internal/imaging"
)

// Strategy selects which of the two equivalent eye-localization
// techniques §4.5 describes to run.
type Strategy int

const (
	// CascadeStrategy runs an eye cascade over left/right sub-ROIs of
	// the face rectangle's upper half.
	CascadeStrategy Strategy = iota
	// ProjectionStrategy uses gradient projections and the vertical
	// symmetry axis instead of a second cascade.
	ProjectionStrategy
)

// Pair holds the two located eye centers, in source-image coordinates.
type Pair struct {
	Left, Right imaging.Point
}

// Options selects the strategy and carries the cascade strategy's eye
// cascade and detector tuning.
type Options struct {
	Strategy     Strategy
	EyeCascade   *cascade.Cascade // required for CascadeStrategy
	DetectParams detect.Params    // used for CascadeStrategy
}

// Locate picks the left/right eye centers within face, a rectangle in
// plane's coordinate system. ok is false when the chosen strategy could
// not find both eyes ("the face yields no eyes", spec.md §4.5).
func Locate(plane []uint8, w, h int, face detect.Rect, opts Options) (Pair, bool) {
	switch opts.Strategy {
	case ProjectionStrategy:
		return locateByProjection(plane, w, h, face)
	default:
		return locateByCascade(plane, w, h, face, opts.EyeCascade, opts.DetectParams)
	}
}
