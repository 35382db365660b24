package detect

import "testing"

func TestMergeDetections_NeighborsZeroKeepsAllUnmerged(t *testing.T) {
	raw := []Rect{
		{X: 0, Y: 0, W: 10, H: 10},
		{X: 1, Y: 1, W: 10, H: 10},
		{X: 50, Y: 50, W: 10, H: 10},
	}
	out := mergeDetections(raw, 0)
	if len(out) != len(raw) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(raw))
	}
	for _, d := range out {
		if d.Neighbors != 0 {
			t.Errorf("Neighbors = %d, want 0", d.Neighbors)
		}
	}
}

func TestMergeDetections_GroupsOverlapping(t *testing.T) {
	raw := []Rect{
		{X: 0, Y: 0, W: 20, H: 20},
		{X: 1, Y: 1, W: 20, H: 20},
		{X: 2, Y: 0, W: 20, H: 20},
		{X: 200, Y: 200, W: 20, H: 20},
	}
	out := mergeDetections(raw, 1)
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1 (the isolated rect is discarded at neighbors=1)", len(out))
	}
	if out[0].Neighbors != 3 {
		t.Errorf("Neighbors = %d, want 3", out[0].Neighbors)
	}
}

// TestMergeDetections_Invariant8 checks invariant 8 for neighbors=1 vs
// neighbors=2: output at the higher neighbor count must be a subset.
func TestMergeDetections_Invariant8(t *testing.T) {
	raw := []Rect{
		{X: 0, Y: 0, W: 20, H: 20},
		{X: 1, Y: 1, W: 20, H: 20},
		{X: 2, Y: 0, W: 20, H: 20},
		{X: 100, Y: 100, W: 20, H: 20},
		{X: 101, Y: 101, W: 20, H: 20},
	}
	at1 := mergeDetections(raw, 1)
	at2 := mergeDetections(raw, 2)

	for _, d := range at2 {
		found := false
		for _, o := range at1 {
			if d == o {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("detection %+v at neighbors=2 is not present at neighbors=1", d)
		}
	}
	if len(at2) > len(at1) {
		t.Errorf("len(at2)=%d > len(at1)=%d, violates subset property", len(at2), len(at1))
	}
}

func TestIoU(t *testing.T) {
	a := Rect{0, 0, 10, 10}
	b := Rect{5, 5, 10, 10}
	got := iou(a, b)
	// intersection = 5x5=25, union = 100+100-25=175
	want := 25.0 / 175.0
	if d := got - want; d < -1e-9 || d > 1e-9 {
		t.Errorf("iou = %v, want %v", got, want)
	}
}
