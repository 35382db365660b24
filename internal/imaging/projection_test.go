package imaging

import "testing"

func TestGradientX_LastColumnIsZero(t *testing.T) {
	plane := []uint8{1, 2, 3, 4}
	gx := GradientX(plane, 4, 1)
	if gx[3] != 0 {
		t.Errorf("gx[last] = %v, want 0", gx[3])
	}
	if gx[0] != 1 {
		t.Errorf("gx[0] = %v, want 1 (2-1)^2", gx[0])
	}
}

func TestGradientY_LastRowIsZero(t *testing.T) {
	plane := []uint8{1, 2, 3, 4}
	gy := GradientY(plane, 1, 4)
	if gy[3] != 0 {
		t.Errorf("gy[last] = %v, want 0", gy[3])
	}
}

func TestProjectionX_FullAndROI(t *testing.T) {
	// 3x2 plane:
	// 1 2 3
	// 4 5 6
	plane := []float64{1, 2, 3, 4, 5, 6}
	full := ProjectionX(plane, 3, 2, nil)
	want := []float64{5, 7, 9}
	for i := range want {
		if full[i] != want[i] {
			t.Errorf("full[%d] = %v, want %v", i, full[i], want[i])
		}
	}

	roi := ProjectionX(plane, 3, 2, &ROI{X1: 1, X2: 3, Y1: 0, Y2: 1})
	wantROI := []float64{2, 3}
	for i := range wantROI {
		if roi[i] != wantROI[i] {
			t.Errorf("roi[%d] = %v, want %v", i, roi[i], wantROI[i])
		}
	}
}

func TestFindMaxIndex_TiesResolveFirst(t *testing.T) {
	seq := []float64{1, 5, 5, 2}
	got := FindMaxIndex(seq, 0, 0)
	if got != 1 {
		t.Errorf("FindMaxIndex = %d, want 1", got)
	}
}

func TestFindMaxIndex_SmoothedPeak(t *testing.T) {
	seq := []float64{0, 0, 0, 10, 0, 0, 0}
	// A 3-wide window spreads the spike over indices 2, 3 and 4 (each
	// averages 10/3); the tie resolves to the first of them.
	got := FindMaxIndex(seq, 1, 1)
	if got != 2 {
		t.Errorf("FindMaxIndex = %d, want 2", got)
	}
}
