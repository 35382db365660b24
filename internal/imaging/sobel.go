package imaging

import "math"

var sobelSign = []float64{-1, 0, 1}
var sobelScale = []float64{1, 2, 1}

// Sobel computes the gradient magnitude plane √(Gx² + Gy²) using the
// classic 3x3 Sobel kernels, built as the separable products of
// sobelSign (the derivative direction) and sobelScale (the smoothing
// direction).
func Sobel(plane []uint8, w, h int) []float64 {
	gx := VerticalConvolve(HorizontalConvolve(plane, w, h, sobelSign), w, h, sobelScale)
	gy := VerticalConvolve(HorizontalConvolve(plane, w, h, sobelScale), w, h, sobelSign)

	out := make([]float64, w*h)
	for i := range out {
		out[i] = math.Sqrt(gx[i]*gx[i] + gy[i]*gy[i])
	}
	return out
}
