package pipeline

import (
	"fmt"
	"sync"

	"github.com/your-org/faceline/internal/detect"
)

// Track is one face tracked across the frames of a single submitted
// burst. Unlike the cross-frame *recognition* identity the teacher's
// vision.Track carries (embedding, matched person, gender/age), this
// Track exists only to recognize "the same face as a previous frame" so
// a job doesn't emit the same normalized crop once per frame.
type Track struct {
	ID              string
	Rect            detect.Rect
	Hits            int
	FramesSinceSeen int
}

// Deduper implements job-local face deduplication (C15): a simple
// IoU-based tracker, the same shape as the teacher's SORT-like face
// tracker, re-targeted from cross-frame recognition identity to
// cross-frame redundancy suppression within one job's frame burst.
type Deduper struct {
	mu      sync.Mutex
	tracks  map[string]*Track
	nextID  int
	maxAge  int // frames a track survives without a match before eviction
	minHits int // stored from the config; Update does not consult it
	jobID   string
}

// NewDeduper returns a Deduper for one job. maxAge and minHits mirror
// the teacher's TrackingConfig fields.
func NewDeduper(jobID string, maxAge, minHits int) *Deduper {
	return &Deduper{
		tracks:  make(map[string]*Track),
		maxAge:  maxAge,
		minHits: minHits,
		jobID:   jobID,
	}
}

// Update matches this frame's detected faces against tracks from prior
// frames in the burst by IoU and reports, for each detection, whether
// it is new (should be kept) or a repeat of an already-seen face
// (redundant, should be dropped from the job's output).
func (d *Deduper) Update(faces []detect.Rect) []bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, tr := range d.tracks {
		tr.FramesSinceSeen++
	}

	const minIoU = 0.3
	keep := make([]bool, len(faces))
	matched := make(map[string]bool, len(d.tracks))

	for fi, face := range faces {
		bestIoU := minIoU
		bestID := ""
		for id, tr := range d.tracks {
			if matched[id] {
				continue
			}
			if v := iouRect(face, tr.Rect); v > bestIoU {
				bestIoU = v
				bestID = id
			}
		}

		if bestID != "" {
			tr := d.tracks[bestID]
			tr.Rect = face
			tr.Hits++
			tr.FramesSinceSeen = 0
			matched[bestID] = true
			keep[fi] = false
			continue
		}

		d.nextID++
		id := fmt.Sprintf("%s_%d", d.jobID, d.nextID)
		d.tracks[id] = &Track{ID: id, Rect: face, Hits: 1, FramesSinceSeen: 0}
		keep[fi] = true
	}

	for id, tr := range d.tracks {
		if tr.FramesSinceSeen > d.maxAge {
			delete(d.tracks, id)
		}
	}

	return keep
}

// TrackCount returns the number of faces currently tracked across the
// burst seen so far.
func (d *Deduper) TrackCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.tracks)
}

// iouRect is the intersection-over-union of two axis-aligned
// rectangles, the same metric detect.iou uses for merge grouping.
func iouRect(a, b detect.Rect) float64 {
	ix1, iy1 := maxIntD(a.X, b.X), maxIntD(a.Y, b.Y)
	ix2, iy2 := minIntD(a.X+a.W, b.X+b.W), minIntD(a.Y+a.H, b.Y+b.H)
	iw, ih := ix2-ix1, iy2-iy1
	if iw <= 0 || ih <= 0 {
		return 0
	}
	inter := float64(iw * ih)
	union := float64(a.Area()+b.Area()) - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

func maxIntD(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minIntD(a, b int) int {
	if a < b {
		return a
	}
	return b
}
