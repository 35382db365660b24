package eyes

import (
	"github.com/your-org/faceline/internal/cascade"
	"github.com/your-org/faceline/internal/detect"
	"github.com/your-org/faceline/internal/imaging"
)

// eyeROI computes the left-eye search rectangle within a face
// rectangle, per spec.md §4.5: x in [0.15fw, 0.45fw), y in
// [0.25fh, 0.50fh). mirror=true produces the right-eye ROI by
// reflecting the x-range about the face's vertical centerline.
func eyeROI(face detect.Rect, mirror bool) detect.Rect {
	fw, fh := float64(face.W), float64(face.H)
	x1, x2 := 0.15*fw, 0.45*fw
	if mirror {
		x1, x2 = fw-0.45*fw, fw-0.15*fw
	}
	y1, y2 := 0.25*fh, 0.50*fh

	return detect.Rect{
		X: face.X + int(x1),
		Y: face.Y + int(y1),
		W: int(x2 - x1),
		H: int(y2 - y1),
	}
}

func locateByCascade(plane []uint8, w, h int, face detect.Rect, eyeCascade *cascade.Cascade, params detect.Params) (Pair, bool) {
	if eyeCascade == nil {
		return Pair{}, false
	}

	left, okLeft := bestEyeInROI(plane, w, h, eyeROI(face, false), eyeCascade, params)
	if !okLeft {
		return Pair{}, false
	}
	right, okRight := bestEyeInROI(plane, w, h, eyeROI(face, true), eyeCascade, params)
	if !okRight {
		return Pair{}, false
	}
	return Pair{Left: left, Right: right}, true
}

// bestEyeInROI crops roi out of the full plane, runs the eye cascade
// over the crop, and returns the largest detection's centroid (ties ->
// earliest in scan order) translated back into full-image coordinates.
func bestEyeInROI(plane []uint8, w, h int, roi detect.Rect, eyeCascade *cascade.Cascade, params detect.Params) (imaging.Point, bool) {
	roi = clampRect(roi, w, h)
	if roi.W <= 0 || roi.H <= 0 || roi.W < eyeCascade.WindowW() || roi.H < eyeCascade.WindowH() {
		return imaging.Point{}, false
	}

	sub := make([]uint8, roi.W*roi.H)
	for y := 0; y < roi.H; y++ {
		srcRow := (roi.Y+y)*w + roi.X
		copy(sub[y*roi.W:(y+1)*roi.W], plane[srcRow:srcRow+roi.W])
	}

	dets, err := detect.Detect(sub, roi.W, roi.H, eyeCascade, params)
	if err != nil || len(dets) == 0 {
		return imaging.Point{}, false
	}

	best := dets[0]
	for _, d := range dets[1:] {
		if d.Rect.Area() > best.Rect.Area() {
			best = d
		}
	}

	return imaging.Point{
		X: float64(roi.X) + best.Rect.CenterX(),
		Y: float64(roi.Y) + best.Rect.CenterY(),
	}, true
}

func clampRect(r detect.Rect, w, h int) detect.Rect {
	x1, y1 := r.X, r.Y
	x2, y2 := r.X+r.W, r.Y+r.H
	if x1 < 0 {
		x1 = 0
	}
	if y1 < 0 {
		y1 = 0
	}
	if x2 > w {
		x2 = w
	}
	if y2 > h {
		y2 = h
	}
	return detect.Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}
