package imaging

import "math"

// ROI restricts a projection to an axis-aligned sub-rectangle,
// half-open on the right/bottom: [X1,X2) x [Y1,Y2).
type ROI struct {
	X1, X2, Y1, Y2 int
}

// GradientX returns the squared horizontal forward difference at every
// pixel; the last column has no right neighbor and is treated as
// identical to the current pixel, yielding zero gradient there.
func GradientX(plane []uint8, w, h int) []float64 {
	out := make([]float64, w*h)
	for y := 0; y < h; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			var next uint8
			if x+1 < w {
				next = plane[row+x+1]
			} else {
				next = plane[row+x]
			}
			d := float64(next) - float64(plane[row+x])
			out[row+x] = d * d
		}
	}
	return out
}

// GradientY returns the squared vertical forward difference at every
// pixel, with the last row treated as identical to the current row.
func GradientY(plane []uint8, w, h int) []float64 {
	out := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var next uint8
			if y+1 < h {
				next = plane[(y+1)*w+x]
			} else {
				next = plane[y*w+x]
			}
			d := float64(next) - float64(plane[y*w+x])
			out[y*w+x] = d * d
		}
	}
	return out
}

func roiOrFull(roi *ROI, w, h int) ROI {
	if roi != nil {
		return *roi
	}
	return ROI{X1: 0, X2: w, Y1: 0, Y2: h}
}

// ProjectionX returns the column sums of plane, restricted to roi if
// given. The result has length roi.X2-roi.X1 (or w if roi is nil).
func ProjectionX(plane []float64, w, h int, roi *ROI) []float64 {
	r := roiOrFull(roi, w, h)
	out := make([]float64, r.X2-r.X1)
	for x := r.X1; x < r.X2; x++ {
		var sum float64
		for y := r.Y1; y < r.Y2; y++ {
			sum += plane[y*w+x]
		}
		out[x-r.X1] = sum
	}
	return out
}

// ProjectionY returns the row sums of plane, restricted to roi if
// given. The result has length roi.Y2-roi.Y1 (or h if roi is nil).
func ProjectionY(plane []float64, w, h int, roi *ROI) []float64 {
	r := roiOrFull(roi, w, h)
	out := make([]float64, r.Y2-r.Y1)
	for y := r.Y1; y < r.Y2; y++ {
		var sum float64
		for x := r.X1; x < r.X2; x++ {
			sum += plane[y*w+x]
		}
		out[y-r.Y1] = sum
	}
	return out
}

// FindMaxIndex returns the index of the maximum of a centered moving
// average of seq, with window size before+after+1. Ties resolve to the
// first occurrence.
func FindMaxIndex(seq []float64, before, after int) int {
	if len(seq) == 0 {
		return -1
	}
	best := 0
	var bestVal float64
	for i := range seq {
		lo := i - before
		if lo < 0 {
			lo = 0
		}
		hi := i + after
		if hi > len(seq)-1 {
			hi = len(seq) - 1
		}
		var sum float64
		for j := lo; j <= hi; j++ {
			sum += seq[j]
		}
		avg := sum / float64(hi-lo+1)
		if i == 0 || avg > bestVal {
			bestVal = avg
			best = i
		}
	}
	return best
}

// HorizontalSymmetry returns the vertical axis (an x column index) of
// left/right symmetry in plane: the column projection of plane is
// weighted by a Hann window centered on the plane's width, and the
// argmax of the weighted projection is returned.
func HorizontalSymmetry(plane []uint8, w, h int) int {
	floatPlane := make([]float64, w*h)
	for i, v := range plane {
		floatPlane[i] = float64(v)
	}
	proj := ProjectionX(floatPlane, w, h, nil)
	window := hannWindow(w)
	weighted := make([]float64, w)
	for x := range weighted {
		weighted[x] = proj[x] * window[x]
	}
	return FindMaxIndex(weighted, 0, 0)
}

// hannWindow returns a Hann window of length n: 0.5*(1-cos(2*pi*i/(n-1))).
func hannWindow(n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = 1
		return out
	}
	for i := 0; i < n; i++ {
		out[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return out
}
