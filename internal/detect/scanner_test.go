package detect

import "testing"

// TestDetect_S7 exercises spec.md §8 S7: a uniform gray plane with a
// valid face-shaped cascade and neighbors>=1 yields zero detections.
func TestDetect_S7(t *testing.T) {
	w, h := 200, 200
	plane := make([]uint8, w*h)
	for i := range plane {
		plane[i] = 128
	}

	casc := rejectingCascade(t)
	params := Params{InitialScale: 1, ScaleFactor: 1.25, StepSize: 2, EdgesDensity: 0, Neighbors: 1}

	dets, err := Detect(plane, w, h, casc, params)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(dets) != 0 {
		t.Errorf("len(dets) = %d, want 0", len(dets))
	}
}

func TestDetect_UsageErrors(t *testing.T) {
	casc := acceptingCascade(t)
	if _, err := Detect(nil, 0, 0, casc, DefaultParams()); err == nil {
		t.Error("expected error for zero-sized image")
	}
	bad := DefaultParams()
	bad.ScaleFactor = 1
	if _, err := Detect(make([]uint8, 100), 10, 10, casc, bad); err == nil {
		t.Error("expected error for scaleFactor <= 1")
	}
}

func TestDetect_AcceptsOnVariedImage(t *testing.T) {
	w, h := 40, 40
	plane := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			plane[y*w+x] = uint8((x*13 + y*7) % 256)
		}
	}
	casc := acceptingCascade(t)
	params := Params{InitialScale: 1, ScaleFactor: 1.25, StepSize: 3, Neighbors: 0}

	dets, err := Detect(plane, w, h, casc, params)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(dets) == 0 {
		t.Fatal("expected at least one detection from a cascade that always accepts")
	}
}
