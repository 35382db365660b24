package normalize

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/your-org/faceline/internal/imaging"
)

func blackImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255 // opaque
	}
	return img
}

// TestNormalize_S5 reproduces spec.md §8 scenario S5: destSize=150,
// ox=oy=0.5, eyes at (100,100) and (200,100) in a fully-black 400x400
// source. Output must be 150x150 and the geometry (angle, distance)
// that feeds the crop must match the hand-derived values: angle=0,
// distance=100, edge=200, so the eyes land at (37.5,75)/(112.5,75).
func TestNormalize_S5(t *testing.T) {
	src := blackImage(400, 400)
	eyeLeft := imaging.Point{X: 100, Y: 100}
	eyeRight := imaging.Point{X: 200, Y: 100}

	res := Normalize(src, eyeLeft, eyeRight, DefaultOptions())

	if res.Crop.Bounds().Dx() != 150 || res.Crop.Bounds().Dy() != 150 {
		t.Fatalf("output size = %v, want 150x150", res.Crop.Bounds())
	}
	if math.Abs(res.Angle) > 1e-9 {
		t.Errorf("angle = %v, want 0 (eyes share the same y)", res.Angle)
	}
	if math.Abs(res.Distance-100) > 1e-9 {
		t.Errorf("distance = %v, want 100", res.Distance)
	}

	// edge = round(distance + 2*round(0.5*distance)) = 200; the
	// inter-ocular distance in the output per the §4.6 invariant is
	// destSize*distance/edge = 150*100/200 = 75.
	wantOutputDistance := 150.0 * res.Distance / 200.0
	if math.Abs(wantOutputDistance-75) > 1e-9 {
		t.Errorf("derived output inter-ocular distance = %v, want 75", wantOutputDistance)
	}
}

// TestNormalize_Invariant6 checks output is always destSize x destSize,
// regardless of how the crop clamps against the source bounds.
func TestNormalize_Invariant6(t *testing.T) {
	sizes := []int{50, 150, 300}
	src := blackImage(120, 120)
	eyeLeft := imaging.Point{X: 10, Y: 10}
	eyeRight := imaging.Point{X: 110, Y: 115} // near the edges, forces clamping
	for _, destSize := range sizes {
		opts := Options{OffsetX: 0.5, OffsetY: 0.5, DestSize: destSize}
		res := Normalize(src, eyeLeft, eyeRight, opts)
		if res.Crop.Bounds().Dx() != destSize || res.Crop.Bounds().Dy() != destSize {
			t.Errorf("destSize=%d: output size = %v", destSize, res.Crop.Bounds())
		}
	}
}

// TestNormalize_Invariant7 checks that eyeLeft == eyeRight (distance=0)
// yields an all-white output, the documented degenerate case.
func TestNormalize_Invariant7(t *testing.T) {
	src := blackImage(200, 200)
	eye := imaging.Point{X: 50, Y: 50}
	res := Normalize(src, eye, eye, DefaultOptions())

	if res.Distance != 0 {
		t.Fatalf("distance = %v, want 0", res.Distance)
	}
	for _, v := range res.Crop.Pix {
		if v != 255 {
			t.Fatalf("found non-white pixel %d in degenerate output", v)
			break
		}
	}
}

// TestNormalize_OutOfBoundsPadsWhite checks that a crop region
// extending past the source contributes white pixels, per the §4.6
// boundary policy.
func TestNormalize_OutOfBoundsPadsWhite(t *testing.T) {
	src := blackImage(60, 60)
	// Eyes near the top-left corner force the crop square to extend
	// past the source on at least two sides.
	eyeLeft := imaging.Point{X: 5, Y: 5}
	eyeRight := imaging.Point{X: 15, Y: 5}

	res := Normalize(src, eyeLeft, eyeRight, Options{OffsetX: 0.5, OffsetY: 0.5, DestSize: 100})

	corner := color.GrayModel.Convert(res.Crop.At(0, 0)).(color.Gray).Y
	if corner < 200 {
		t.Errorf("corner pixel = %d, want near-white padding", corner)
	}
}
