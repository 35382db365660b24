// Package detect implements the Viola–Jones multi-scale cascade scan
// (C4): sliding-window cascade evaluation over an image's integral
// images, producing merged detection rectangles.
package detect

import (
	"fmt"
	"math"

	"github.com/your-org/faceline/internal/cascade"
	"github.com/your-org/faceline/internal/imaging"
)

// Rect is an axis-aligned pixel rectangle, half-open on the right/bottom.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Area() int { return r.W * r.H }

func (r Rect) CenterX() float64 { return float64(r.X) + float64(r.W)/2 }
func (r Rect) CenterY() float64 { return float64(r.Y) + float64(r.H)/2 }

// Detection is one merged detection result: a rectangle and the number
// of raw scan hits that were grouped into it.
type Detection struct {
	Rect      Rect
	Neighbors int
}

// Params are the detector's tuning parameters (spec.md §6).
type Params struct {
	InitialScale float64 // >= 1
	ScaleFactor  float64 // > 1, typical 1.05-1.25
	StepSize     float64 // >= 1
	EdgesDensity float64 // 0 disables Sobel-based early rejection
	Neighbors    int     // >= 0; 0 disables merge filtering
}

// DefaultParams returns reasonable scan defaults.
func DefaultParams() Params {
	return Params{InitialScale: 1.0, ScaleFactor: 1.1, StepSize: 1.5, EdgesDensity: 0, Neighbors: 2}
}

// Detect runs a multi-scale cascade scan over plane (w x h luminance
// samples) and returns merged detection rectangles in source-image
// coordinates, ordered by scale ascending, then y, then x (merge
// groups are ordered by their earliest-seen member).
func Detect(plane []uint8, w, h int, casc *cascade.Cascade, params Params) ([]Detection, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("detect: non-positive dimensions %dx%d", w, h)
	}
	if params.ScaleFactor <= 1 {
		return nil, fmt.Errorf("detect: scaleFactor must be > 1, got %v", params.ScaleFactor)
	}
	if params.InitialScale < 1 {
		return nil, fmt.Errorf("detect: initialScale must be >= 1, got %v", params.InitialScale)
	}

	opts := imaging.IntegralOptions{Sum: true, SumSq: true, Tilted: true}
	if params.EdgesDensity > 0 {
		opts.Sobel = true
	}
	ii, err := imaging.ComputeIntegralImages(plane, w, h, opts)
	if err != nil {
		return nil, err
	}

	windowW, windowH := casc.WindowW(), casc.WindowH()
	var raw []Rect

	for scale := params.InitialScale; scale*float64(windowW) <= float64(w) && scale*float64(windowH) <= float64(h); scale *= params.ScaleFactor {
		sw := int(scale * float64(windowW))
		sh := int(scale * float64(windowH))
		step := int(params.StepSize * scale)
		if step < 1 {
			step = 1
		}

		for y := 0; y <= h-sh; y += step {
			for x := 0; x <= w-sw; x += step {
				result := evalWindow(ii, casc, x, y, sw, sh, scale, params.EdgesDensity)
				if result.State == StateAccepted {
					raw = append(raw, Rect{X: x, Y: y, W: sw, H: sh})
				}
			}
		}
	}

	return mergeDetections(raw, params.Neighbors), nil
}

// windowStats returns the mean and standard deviation of plane values
// under the window (x,y,sw,sh) via the sum and squared-sum integrals,
// clamping std to 1 to avoid divide-by-zero on flat regions.
func windowStats(ii *imaging.IntegralImages, x, y, sw, sh int) (mean, std float64) {
	area := float64(sw * sh)
	sum := float64(ii.RectSum(x, y, sw, sh))
	sumSq := float64(ii.RectSumSq(x, y, sw, sh))
	mean = sum / area
	variance := sumSq/area - mean*mean
	if variance < 0 {
		variance = 0
	}
	std = math.Sqrt(variance)
	if std < 1 {
		std = 1
	}
	return mean, std
}

// edgeDensityFraction returns the window's Sobel-energy fraction,
// normalized against the per-pixel maximum of the Sobel integral image
// (magnitudes are clamped to 255 before integration) so that a fully
// edge-saturated window approaches 1.0.
func edgeDensityFraction(ii *imaging.IntegralImages, x, y, sw, sh int) float64 {
	const maxPerPixel = 255.0
	sum := float64(ii.RectSumSobel(x, y, sw, sh))
	return sum / (float64(sw*sh) * maxPerPixel)
}

// evaluateWeak computes a weak classifier's feature value at window
// origin (x,y) scaled by scale, dividing the raw rectangle-sum by
// scale*scale to normalize it back to the cascade's scale=1 training
// units before the threshold comparison.
func evaluateWeak(ii *imaging.IntegralImages, w cascade.Weak, x, y int, scale float64) float64 {
	var sum float64
	for _, rect := range w.Rects {
		rx := x + int(math.Round(float64(rect.X)*scale))
		ry := y + int(math.Round(float64(rect.Y)*scale))
		rw := int(math.Round(float64(rect.W) * scale))
		rh := int(math.Round(float64(rect.H) * scale))
		var rectSum int64
		if w.Tilted {
			rectSum = ii.TiltedRectSum(rx, ry, rw, rh)
		} else {
			rectSum = ii.RectSum(rx, ry, rw, rh)
		}
		sum += rect.Weight * float64(rectSum)
	}
	return sum / (scale * scale)
}
