package imaging

import "fmt"

// IntegralOptions selects which of the four parallel integral images
// ComputeIntegralImages should build. At least one must be set.
type IntegralOptions struct {
	Sum    bool
	SumSq  bool
	Tilted bool
	Sobel  bool
}

// IntegralImages holds the subset of integral images requested. Fields
// for images that were not requested are nil. All images are the same
// shape as the source plane (w*h), row-major.
type IntegralImages struct {
	Width  int
	Height int

	Sum    []int64 // SAT of the luminance plane
	SumSq  []int64 // SAT of the squared luminance plane
	Tilted []int64 // RSAT (45°-rotated recurrence) of the luminance plane
	Sobel  []int64 // SAT of the Sobel magnitude plane
}

// ComputeIntegralImages fills the requested integral images in one pass
// over plane (w*h luminance samples). It returns a usage error if no
// output was requested.
func ComputeIntegralImages(plane []uint8, w, h int, opts IntegralOptions) (*IntegralImages, error) {
	if !opts.Sum && !opts.SumSq && !opts.Tilted && !opts.Sobel {
		return nil, fmt.Errorf("imaging: computeIntegralImages requires at least one output")
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("imaging: computeIntegralImages: non-positive dimensions %dx%d", w, h)
	}

	ii := &IntegralImages{Width: w, Height: h}

	if opts.Sum {
		ii.Sum = buildSAT(plane, w, h, func(v uint8) int64 { return int64(v) })
	}
	if opts.SumSq {
		ii.SumSq = buildSAT(plane, w, h, func(v uint8) int64 { sq := int64(v); return sq * sq })
	}
	if opts.Tilted {
		ii.Tilted = buildRSAT(plane, w, h)
	}
	if opts.Sobel {
		mag := Sobel(plane, w, h)
		magPlane := make([]uint8, w*h)
		for i, v := range mag {
			if v > 255 {
				v = 255
			}
			magPlane[i] = uint8(v)
		}
		ii.Sobel = buildSAT(magPlane, w, h, func(v uint8) int64 { return int64(v) })
	}
	return ii, nil
}

func buildSAT(plane []uint8, w, h int, weight func(uint8) int64) []int64 {
	out := make([]int64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			v := weight(plane[idx])
			var left, up, upleft int64
			if x > 0 {
				left = out[idx-1]
			}
			if y > 0 {
				up = out[idx-w]
			}
			if x > 0 && y > 0 {
				upleft = out[idx-w-1]
			}
			out[idx] = left + up + v - upleft
		}
	}
	return out
}

// buildRSAT implements the 45°-rotated recurrence of spec.md §3:
// R[x,y] = R[x-1,y-1] + R[x+1,y-1] - R[x,y-2] + I[x,y] + I[x,y-1],
// with out-of-bounds reads treated as 0.
func buildRSAT(plane []uint8, w, h int) []int64 {
	out := make([]int64, w*h)
	at := func(x, y int) int64 {
		if x < 0 || x >= w || y < 0 || y >= h {
			return 0
		}
		return out[y*w+x]
	}
	atI := func(x, y int) int64 {
		if x < 0 || x >= w || y < 0 || y >= h {
			return 0
		}
		return int64(plane[y*w+x])
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out[y*w+x] = at(x-1, y-1) + at(x+1, y-1) - at(x, y-2) + atI(x, y) + atI(x, y-1)
		}
	}
	return out
}

// at returns ii.Sum[x,y] treating out-of-bounds (negative) coordinates
// as 0. x, y may exceed Width-1/Height-1; such queries are clamped to
// the last valid row/column since a caller never asks for a rectangle
// wider than the image it was built from.
func (ii *IntegralImages) at(table []int64, x, y int) int64 {
	if x < 0 || y < 0 {
		return 0
	}
	if x >= ii.Width {
		x = ii.Width - 1
	}
	if y >= ii.Height {
		y = ii.Height - 1
	}
	return table[y*ii.Width+x]
}

// RectSum returns the sum of the axis-aligned rectangle [x, x+w) x
// [y, y+h) over the integral image table (Sum, SumSq, or Sobel).
func rectSum(ii *IntegralImages, table []int64, x, y, w, h int) int64 {
	if w <= 0 || h <= 0 || table == nil {
		return 0
	}
	x2, y2 := x+w-1, y+h-1
	return ii.at(table, x2, y2) - ii.at(table, x-1, y2) - ii.at(table, x2, y-1) + ii.at(table, x-1, y-1)
}

// RectSum sums the sum-integral image over [x, x+w) x [y, y+h).
func (ii *IntegralImages) RectSum(x, y, w, h int) int64 {
	return rectSum(ii, ii.Sum, x, y, w, h)
}

// RectSumSq sums the squared-integral image over the same rectangle.
func (ii *IntegralImages) RectSumSq(x, y, w, h int) int64 {
	return rectSum(ii, ii.SumSq, x, y, w, h)
}

// RectSumSobel sums the Sobel integral image over the same rectangle.
func (ii *IntegralImages) RectSumSobel(x, y, w, h int) int64 {
	return rectSum(ii, ii.Sobel, x, y, w, h)
}

// TiltedRectSum sums the tilted integral image over the 45°-rotated
// rectangle anchored at (x, y) with the given width and height, using
// the standard corner formula: ii(x+w,y+w) + ii(x,y) - ii(x-h,y+h) -
// ii(x+w-h,y+w+h).
func (ii *IntegralImages) TiltedRectSum(x, y, w, h int) int64 {
	if ii.Tilted == nil {
		return 0
	}
	t := ii.Tilted
	return ii.at(t, x+w, y+w) + ii.at(t, x, y) - ii.at(t, x-h, y+h) - ii.at(t, x+w-h, y+w+h)
}
