package eyes

import (
	"github.com/your-org/faceline/internal/detect"
	"github.com/your-org/faceline/internal/imaging"
)

// maxProjectionSmoothing is the [before, after] moving-average window
// findMaxIndex uses when picking an eye position from a projection,
// per spec.md §4.5.
const maxProjectionSmoothing = 4

func locateByProjection(plane []uint8, w, h int, face detect.Rect) (Pair, bool) {
	face = clampRect(face, w, h)
	fw, fh := face.W, face.H
	if fw <= 0 || fh <= 0 {
		return Pair{}, false
	}

	faceGray := make([]uint8, fw*fh)
	for y := 0; y < fh; y++ {
		srcRow := (face.Y+y)*w + face.X
		copy(faceGray[y*fw:(y+1)*fw], plane[srcRow:srcRow+fw])
	}
	faceEq := imaging.EqualizeHist(faceGray, fw, fh, imaging.DefaultHistogramStep)

	gx := imaging.GradientX(faceEq, fw, fh)
	gy := imaging.GradientY(faceEq, fw, fh)

	symmetryX := imaging.HorizontalSymmetry(faceEq, fw, fh)
	if symmetryX <= 0 || symmetryX >= fw {
		return Pair{}, false
	}

	bandY1 := int(0.25 * float64(fh))
	bandY2 := int(0.50 * float64(fh))
	if bandY2 <= bandY1 {
		return Pair{}, false
	}

	left, okLeft := eyeFromBand(gx, gy, fw, fh, imaging.ROI{X1: 0, X2: symmetryX, Y1: bandY1, Y2: bandY2})
	right, okRight := eyeFromBand(gx, gy, fw, fh, imaging.ROI{X1: symmetryX, X2: fw, Y1: bandY1, Y2: bandY2})
	if !okLeft || !okRight {
		return Pair{}, false
	}

	return Pair{
		Left:  imaging.Point{X: float64(face.X) + left.X, Y: float64(face.Y) + left.Y},
		Right: imaging.Point{X: float64(face.X) + right.X, Y: float64(face.Y) + right.Y},
	}, true
}

// eyeFromBand finds one eye's (x,y) within roi: x from the Gx column
// projection, y from the Gy row projection, each smoothed via
// findMaxIndex before taking the argmax.
func eyeFromBand(gx, gy []float64, w, h int, roi imaging.ROI) (imaging.Point, bool) {
	if roi.X2 <= roi.X1 || roi.Y2 <= roi.Y1 {
		return imaging.Point{}, false
	}
	colProj := imaging.ProjectionX(gx, w, h, &roi)
	rowProj := imaging.ProjectionY(gy, w, h, &roi)

	xi := imaging.FindMaxIndex(colProj, maxProjectionSmoothing, maxProjectionSmoothing)
	yi := imaging.FindMaxIndex(rowProj, maxProjectionSmoothing, maxProjectionSmoothing)
	if xi < 0 || yi < 0 {
		return imaging.Point{}, false
	}

	return imaging.Point{X: float64(roi.X1 + xi), Y: float64(roi.Y1 + yi)}, true
}
