package pipeline

import (
	"image"
	"testing"

	"github.com/your-org/faceline/internal/cascade"
	"github.com/your-org/faceline/internal/detect"
	"github.com/your-org/faceline/internal/eyes"
)

// alwaysAcceptCascade builds a tiny one-stage cascade over a
// windowW x windowH window whose single weak classifier always takes
// its high leaf, so every scanned window is accepted regardless of
// image content. Used to exercise the façade's wiring without needing
// a real trained cascade.
func alwaysAcceptCascade(t *testing.T, windowW, windowH int) *cascade.Cascade {
	t.Helper()
	c, err := cascade.New([]float64{
		float64(windowW), float64(windowH),
		1, 1,
		0, 1,
		0, 0, float64(windowW), float64(windowH), 1,
		-1e9, -1, 2,
	})
	if err != nil {
		t.Fatalf("cascade.New: %v", err)
	}
	return c
}

func blankRGBA(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return img
}

func TestPipeline_Run_NoFace(t *testing.T) {
	// A cascade whose window is larger than the source image can never
	// match: every scan produces zero detections.
	src := blankRGBA(30, 30)
	faceCascade := alwaysAcceptCascade(t, 40, 40)

	p := New(faceCascade, alwaysAcceptCascade(t, 6, 6))
	res, err := p.Run(src)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Outcome != OutcomeNoFace {
		t.Fatalf("Outcome = %v, want OutcomeNoFace", res.Outcome)
	}
}

func TestPipeline_Run_NoEyes(t *testing.T) {
	src := blankRGBA(200, 200)
	faceCascade := alwaysAcceptCascade(t, 40, 40)

	p := New(faceCascade, nil)
	p.EyeOptions = eyes.Options{Strategy: eyes.CascadeStrategy, EyeCascade: nil}
	p.DetectParams = detect.Params{InitialScale: 1, ScaleFactor: 1.3, StepSize: 10, Neighbors: 1}

	res, err := p.Run(src)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Outcome != OutcomeNoEyes {
		t.Fatalf("Outcome = %v, want OutcomeNoEyes", res.Outcome)
	}
	if res.Face.W == 0 {
		t.Error("Face rect should still be populated on a no-eyes outcome")
	}
}

func TestPipeline_Run_FullSuccess(t *testing.T) {
	src := blankRGBA(200, 200)
	faceCascade := alwaysAcceptCascade(t, 40, 40)
	eyeCascade := alwaysAcceptCascade(t, 6, 6)

	p := New(faceCascade, eyeCascade)
	p.DetectParams = detect.Params{InitialScale: 1, ScaleFactor: 1.3, StepSize: 10, Neighbors: 1}
	p.EyeOptions.DetectParams = detect.Params{InitialScale: 1, ScaleFactor: 1.3, StepSize: 2, Neighbors: 0}

	res, err := p.Run(src)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Outcome != OutcomeNormalized {
		t.Fatalf("Outcome = %v, want OutcomeNormalized", res.Outcome)
	}
	if res.Crop == nil {
		t.Fatal("Crop is nil on a normalized outcome")
	}
	want := p.NormOptions.DestSize
	if res.Crop.Bounds().Dx() != want || res.Crop.Bounds().Dy() != want {
		t.Errorf("Crop size = %v, want %dx%d", res.Crop.Bounds(), want, want)
	}
	if res.Eyes.Left.X >= res.Eyes.Right.X {
		t.Errorf("left eye (%v) should be left of right eye (%v)", res.Eyes.Left, res.Eyes.Right)
	}
}
