package pipeline

import (
	"testing"

	"github.com/your-org/faceline/internal/detect"
)

func TestDeduper_FirstSightingIsNew(t *testing.T) {
	d := NewDeduper("job-1", 3, 1)
	keep := d.Update([]detect.Rect{{X: 10, Y: 10, W: 50, H: 50}})
	if len(keep) != 1 || !keep[0] {
		t.Fatalf("keep = %v, want [true]", keep)
	}
	if d.TrackCount() != 1 {
		t.Errorf("TrackCount = %d, want 1", d.TrackCount())
	}
}

func TestDeduper_RepeatAcrossFramesIsSuppressed(t *testing.T) {
	d := NewDeduper("job-1", 3, 1)
	d.Update([]detect.Rect{{X: 10, Y: 10, W: 50, H: 50}})

	// Same face, slightly jittered, in the next frame.
	keep := d.Update([]detect.Rect{{X: 12, Y: 11, W: 50, H: 50}})
	if len(keep) != 1 || keep[0] {
		t.Fatalf("keep = %v, want [false] (repeat within IoU threshold)", keep)
	}
	if d.TrackCount() != 1 {
		t.Errorf("TrackCount = %d, want 1 (no new track created)", d.TrackCount())
	}
}

func TestDeduper_DistinctFaceIsNew(t *testing.T) {
	d := NewDeduper("job-1", 3, 1)
	d.Update([]detect.Rect{{X: 10, Y: 10, W: 50, H: 50}})

	keep := d.Update([]detect.Rect{{X: 400, Y: 400, W: 50, H: 50}})
	if len(keep) != 1 || !keep[0] {
		t.Fatalf("keep = %v, want [true] (non-overlapping face)", keep)
	}
	if d.TrackCount() != 2 {
		t.Errorf("TrackCount = %d, want 2", d.TrackCount())
	}
}

func TestDeduper_StaleTrackIsEvicted(t *testing.T) {
	d := NewDeduper("job-1", 1, 1)
	d.Update([]detect.Rect{{X: 10, Y: 10, W: 50, H: 50}})

	// Two frames with no detections at all: the track ages past maxAge=1.
	d.Update(nil)
	d.Update(nil)

	if d.TrackCount() != 0 {
		t.Errorf("TrackCount = %d, want 0 after eviction", d.TrackCount())
	}

	// The same face reappearing now should register as new.
	keep := d.Update([]detect.Rect{{X: 10, Y: 10, W: 50, H: 50}})
	if len(keep) != 1 || !keep[0] {
		t.Fatalf("keep = %v, want [true] after track eviction", keep)
	}
}

func TestIoURect(t *testing.T) {
	a := detect.Rect{X: 0, Y: 0, W: 10, H: 10}
	b := detect.Rect{X: 5, Y: 5, W: 10, H: 10}
	got := iouRect(a, b)
	want := 25.0 / 175.0
	if d := got - want; d < -1e-9 || d > 1e-9 {
		t.Errorf("iouRect = %v, want %v", got, want)
	}

	c := detect.Rect{X: 100, Y: 100, W: 10, H: 10}
	if v := iouRect(a, c); v != 0 {
		t.Errorf("iouRect(disjoint) = %v, want 0", v)
	}
}
