package eyes

import (
	"testing"

	"github.com/your-org/faceline/internal/cascade"
	"github.com/your-org/faceline/internal/detect"
)

func mustCascade(t *testing.T, flat []float64) *cascade.Cascade {
	t.Helper()
	c, err := cascade.New(flat)
	if err != nil {
		t.Fatalf("cascade.New: %v", err)
	}
	return c
}

// alwaysAcceptEyeCascade is a tiny 6x6-window cascade that accepts any
// window unconditionally, for exercising the ROI/pick-largest plumbing
// without depending on real eye imagery.
func alwaysAcceptEyeCascade(t *testing.T) *cascade.Cascade {
	return mustCascade(t, []float64{
		6, 6,
		1, 1,
		0, 1,
		0, 0, 6, 6, 1,
		-1e9, -1, 2,
	})
}

func TestLocateByCascade_FindsBothEyes(t *testing.T) {
	w, h := 100, 100
	plane := make([]uint8, w*h)
	for i := range plane {
		plane[i] = uint8(i % 256)
	}
	face := detect.Rect{X: 0, Y: 0, W: 100, H: 100}
	opts := Options{
		Strategy:     CascadeStrategy,
		EyeCascade:   alwaysAcceptEyeCascade(t),
		DetectParams: detect.Params{InitialScale: 1, ScaleFactor: 1.2, StepSize: 1, Neighbors: 0},
	}

	pair, ok := Locate(plane, w, h, face, opts)
	if !ok {
		t.Fatal("expected both eyes to be found")
	}
	if pair.Left.X >= pair.Right.X {
		t.Errorf("left eye (%v) should be left of right eye (%v)", pair.Left, pair.Right)
	}
}

func TestLocateByCascade_NoCascadeFails(t *testing.T) {
	w, h := 50, 50
	plane := make([]uint8, w*h)
	face := detect.Rect{X: 0, Y: 0, W: 50, H: 50}
	_, ok := Locate(plane, w, h, face, Options{Strategy: CascadeStrategy})
	if ok {
		t.Error("expected failure with a nil eye cascade")
	}
}

func TestLocateByProjection_SymmetricSyntheticFace(t *testing.T) {
	w, h := 80, 80
	plane := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			plane[y*w+x] = 50
		}
	}
	// Two bright vertical edges in the eye band, symmetric about the
	// face's horizontal center, to give the gradient projections a
	// clear peak on each side.
	eyeY := 30
	for y := eyeY - 2; y <= eyeY+2; y++ {
		setPixel(plane, w, 20, y, 220)
		setPixel(plane, w, 60, y, 220)
	}

	face := detect.Rect{X: 0, Y: 0, W: w, H: h}
	pair, ok := Locate(plane, w, h, face, Options{Strategy: ProjectionStrategy})
	if !ok {
		t.Fatal("expected projection strategy to find both eyes")
	}
	if pair.Left.X >= pair.Right.X {
		t.Errorf("left eye (%v) should be left of right eye (%v)", pair.Left, pair.Right)
	}
}

func setPixel(plane []uint8, w, x, y int, v uint8) {
	plane[y*w+x] = v
}
