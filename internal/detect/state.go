package detect

import (
	"github.com/your-org/faceline/internal/cascade"
	"github.com/your-org/faceline/internal/imaging"
)

// WindowState is one state of the explicit per-window state machine
// described in spec.md §4.4: Entering -> EdgeRejected | VarianceComputed
// -> Stage0; each StageK -> StageK+1 (pass) or -> Rejected (fail); final
// pass -> Accepted. Rejection is terminal; there is no backtracking.
type WindowState int

const (
	StateEntering WindowState = iota
	StateEdgeRejected
	StateVarianceComputed
	StateRejected
	StateAccepted
)

func (s WindowState) String() string {
	switch s {
	case StateEntering:
		return "Entering"
	case StateEdgeRejected:
		return "EdgeRejected"
	case StateVarianceComputed:
		return "VarianceComputed"
	case StateRejected:
		return "Rejected"
	case StateAccepted:
		return "Accepted"
	default:
		return "Unknown"
	}
}

// EvalResult is the outcome of walking one window through the cascade:
// its final state and, for a rejection, the stage index it failed at
// (StageK in the state machine above — -1 when not applicable).
type EvalResult struct {
	State      WindowState
	StageIndex int
}

// evalWindow runs the state machine for one scan window: optional edge
// early-rejection, variance normalization, then a cascade walk that
// terminates at the first failing stage.
func evalWindow(ii *imaging.IntegralImages, casc *cascade.Cascade, x, y, sw, sh int, scale, edgesDensity float64) EvalResult {
	if edgesDensity > 0 {
		if edgeDensityFraction(ii, x, y, sw, sh) < edgesDensity {
			return EvalResult{State: StateEdgeRejected, StageIndex: -1}
		}
	}

	_, std := windowStats(ii, x, y, sw, sh)

	cur := casc.NewCursor()
	stageIndex := 0
	for !cur.Done() {
		stage := cur.NextStage()
		var total float64
		for _, weak := range stage.Weaks {
			fv := evaluateWeak(ii, weak, x, y, scale) / std
			if fv < weak.NodeThreshold {
				total += weak.LeafLeft
			} else {
				total += weak.LeafRight
			}
		}
		if total < stage.Threshold {
			return EvalResult{State: StateRejected, StageIndex: stageIndex}
		}
		stageIndex++
	}

	return EvalResult{State: StateAccepted, StageIndex: -1}
}
