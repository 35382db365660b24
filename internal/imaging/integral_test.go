package imaging

import "testing"

// TestComputeIntegralImages_S1 exercises the worked example from
// spec.md §8 S1: plane [[1,2],[3,4]] yields sum-integral [[1,3],[4,10]]
// and squared-integral [[1,5],[10,30]].
func TestComputeIntegralImages_S1(t *testing.T) {
	plane := []uint8{1, 2, 3, 4}
	ii, err := ComputeIntegralImages(plane, 2, 2, IntegralOptions{Sum: true, SumSq: true})
	if err != nil {
		t.Fatalf("ComputeIntegralImages: %v", err)
	}

	wantSum := []int64{1, 3, 4, 10}
	for i, want := range wantSum {
		if ii.Sum[i] != want {
			t.Errorf("Sum[%d] = %d, want %d", i, ii.Sum[i], want)
		}
	}

	wantSq := []int64{1, 5, 10, 30}
	for i, want := range wantSq {
		if ii.SumSq[i] != want {
			t.Errorf("SumSq[%d] = %d, want %d", i, ii.SumSq[i], want)
		}
	}
}

func TestComputeIntegralImages_NoOutputRequested(t *testing.T) {
	_, err := ComputeIntegralImages([]uint8{1, 2, 3, 4}, 2, 2, IntegralOptions{})
	if err == nil {
		t.Fatal("expected a usage error when no output is requested")
	}
}

// TestComputeIntegralImages_Invariant1 checks invariant 1 from spec.md
// §8: S[x,y] - S[x-1,y] - S[x,y-1] + S[x-1,y-1] = I[x,y] for every
// pixel, treating out-of-bounds reads as 0.
func TestComputeIntegralImages_Invariant1(t *testing.T) {
	w, h := 7, 5
	plane := make([]uint8, w*h)
	for i := range plane {
		plane[i] = uint8((i*37 + 11) % 256)
	}

	ii, err := ComputeIntegralImages(plane, w, h, IntegralOptions{Sum: true})
	if err != nil {
		t.Fatalf("ComputeIntegralImages: %v", err)
	}

	at := func(x, y int) int64 {
		if x < 0 || y < 0 {
			return 0
		}
		return ii.Sum[y*w+x]
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			got := at(x, y) - at(x-1, y) - at(x, y-1) + at(x-1, y-1)
			want := int64(plane[y*w+x])
			if got != want {
				t.Errorf("at (%d,%d): got %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestRectSum(t *testing.T) {
	w, h := 4, 4
	plane := make([]uint8, w*h)
	for i := range plane {
		plane[i] = 1
	}
	ii, err := ComputeIntegralImages(plane, w, h, IntegralOptions{Sum: true})
	if err != nil {
		t.Fatalf("ComputeIntegralImages: %v", err)
	}
	if got := ii.RectSum(0, 0, 4, 4); got != 16 {
		t.Errorf("RectSum(full) = %d, want 16", got)
	}
	if got := ii.RectSum(1, 1, 2, 2); got != 4 {
		t.Errorf("RectSum(2x2 interior) = %d, want 4", got)
	}
	if got := ii.RectSum(0, 0, 1, 1); got != 1 {
		t.Errorf("RectSum(1x1) = %d, want 1", got)
	}
}
