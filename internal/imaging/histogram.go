package imaging

// DefaultHistogramStep is equalizeHist's step=5 default from spec.md §4.1.
const DefaultHistogramStep = 5

// EqualizeHist returns a new plane with its histogram equalized. The
// 256-bin histogram is built by sampling every step-th pixel (step<=0
// falls back to DefaultHistogramStep); the cumulative distribution is
// normalized by 255*step/length regardless of how many pixels were
// actually sampled, exactly as spec.md §9 calls for, and the resulting
// lookup table is applied to every pixel of the output.
func EqualizeHist(plane []uint8, w, h int, step int) []uint8 {
	if step <= 0 {
		step = DefaultHistogramStep
	}
	length := w * h

	var hist [256]int64
	for i := 0; i < length; i += step {
		hist[plane[i]]++
	}

	scale := 255.0 * float64(step) / float64(length)
	var lut [256]uint8
	var cumulative int64
	for v := 0; v < 256; v++ {
		cumulative += hist[v]
		scaled := float64(cumulative) * scale
		if scaled < 0 {
			scaled = 0
		} else if scaled > 255 {
			scaled = 255
		}
		lut[v] = uint8(scaled + 0.5)
	}

	out := make([]uint8, length)
	for i, v := range plane {
		out[i] = lut[v]
	}
	return out
}
