package detect

import (
	"math"
	"testing"

	"github.com/your-org/faceline/internal/cascade"
	"github.com/your-org/faceline/internal/imaging"
)

func buildIntegral(t *testing.T, w, h int, fill func(x, y int) uint8) *imaging.IntegralImages {
	t.Helper()
	plane := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			plane[y*w+x] = fill(x, y)
		}
	}
	ii, err := imaging.ComputeIntegralImages(plane, w, h, imaging.IntegralOptions{Sum: true, SumSq: true})
	if err != nil {
		t.Fatalf("ComputeIntegralImages: %v", err)
	}
	return ii
}

func mustCascade(t *testing.T, flat []float64) *cascade.Cascade {
	t.Helper()
	c, err := cascade.New(flat)
	if err != nil {
		t.Fatalf("cascade.New: %v", err)
	}
	return c
}

// acceptingCascade always accepts a 10x10 window regardless of pixel
// content: its single rule compares the full-window feature value
// against an extremely negative threshold, so leafRight (positive) is
// always selected and the stage total always clears stageThreshold.
func acceptingCascade(t *testing.T) *cascade.Cascade {
	return mustCascade(t, []float64{
		10, 10, // windowW, windowH
		1, 1, // stageThreshold, weakCount
		0, 1, // tilted, rectCount
		0, 0, 10, 10, 1, // rect: x,y,w,h,weight
		-1e9, -5, 2, // nodeThreshold, leafLeft, leafRight
	})
}

// rejectingCascade always rejects: its weak classifier always selects
// the negative leaf and the stage threshold is unreachable.
func rejectingCascade(t *testing.T) *cascade.Cascade {
	return mustCascade(t, []float64{
		10, 10,
		0.5, 1,
		0, 1,
		0, 0, 10, 10, 1,
		1e9, -1, 1,
	})
}

// appendExtraStage appends a stage whose every weak classifier returns
// its left leaf value, with stageThreshold = -Inf — the stage invariant
// 5 modification from spec.md §8.
func appendExtraStage(flat []float64) []float64 {
	extra := []float64{
		math.Inf(-1), 1, // stageThreshold, weakCount
		0, 1, // tilted, rectCount
		0, 0, 0, 0, 0, // a degenerate zero-area rect
		math.Inf(1), -5, 5, // nodeThreshold (always selects leafLeft), leafLeft, leafRight
	}
	return append(append([]float64{}, flat...), extra...)
}

func TestEvalWindow_Invariant5_AcceptedStaysAccepted(t *testing.T) {
	ii := buildIntegral(t, 10, 10, func(x, y int) uint8 { return uint8((x + y) * 7 % 256) })

	base := acceptingCascade(t)
	extended := mustCascade(t, appendExtraStage(base.Data()))

	baseResult := evalWindow(ii, base, 0, 0, 10, 10, 1, 0)
	extResult := evalWindow(ii, extended, 0, 0, 10, 10, 1, 0)

	if baseResult.State != StateAccepted {
		t.Fatalf("base cascade: state = %v, want Accepted", baseResult.State)
	}
	if extResult.State != StateAccepted {
		t.Errorf("extended cascade: state = %v, want Accepted (invariant 5 violated)", extResult.State)
	}
}

func TestEvalWindow_Invariant5_RejectedStaysRejected(t *testing.T) {
	ii := buildIntegral(t, 10, 10, func(x, y int) uint8 { return uint8((x * y) % 256) })

	base := rejectingCascade(t)
	extended := mustCascade(t, appendExtraStage(base.Data()))

	baseResult := evalWindow(ii, base, 0, 0, 10, 10, 1, 0)
	extResult := evalWindow(ii, extended, 0, 0, 10, 10, 1, 0)

	if baseResult.State != StateRejected {
		t.Fatalf("base cascade: state = %v, want Rejected", baseResult.State)
	}
	if extResult.State != StateRejected {
		t.Errorf("extended cascade: state = %v, want Rejected (invariant 5 violated)", extResult.State)
	}
}

func TestEvalWindow_EdgeRejection(t *testing.T) {
	plane := make([]uint8, 100)
	for i := range plane {
		plane[i] = 100
	}
	ii, err := imaging.ComputeIntegralImages(plane, 10, 10, imaging.IntegralOptions{Sum: true, SumSq: true, Sobel: true})
	if err != nil {
		t.Fatalf("ComputeIntegralImages: %v", err)
	}
	base := acceptingCascade(t)
	// edgesDensity > 0 on a flat (edgeless) image must reject before
	// reaching variance/stage evaluation.
	result := evalWindow(ii, base, 0, 0, 10, 10, 1, 0.5)
	if result.State != StateEdgeRejected {
		t.Errorf("state = %v, want EdgeRejected", result.State)
	}
}
