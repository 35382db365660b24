// Package pipeline implements the façade (C7): detect → pick the
// largest face → locate eyes → normalize, per spec.md §4.7.
package pipeline

import (
	"image"
	"time"

	"github.com/your-org/faceline/internal/cascade"
	"github.com/your-org/faceline/internal/detect"
	"github.com/your-org/faceline/internal/eyes"
	"github.com/your-org/faceline/internal/imaging"
	"github.com/your-org/faceline/internal/normalize"
	"github.com/your-org/faceline/internal/observability"
)

// Outcome distinguishes the façade's two non-fatal dead ends from a
// full success, per spec.md §4.7.
type Outcome int

const (
	OutcomeNormalized Outcome = iota
	OutcomeNoFace
	OutcomeNoEyes
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNormalized:
		return "normalized"
	case OutcomeNoFace:
		return "no-face"
	case OutcomeNoEyes:
		return "no-eyes"
	default:
		return "unknown"
	}
}

// Result is the façade's output: the chosen face, its located eyes, the
// geometry the normalizer derived, and the normalized crop itself (nil
// unless Outcome == OutcomeNormalized).
type Result struct {
	Outcome  Outcome
	Face     detect.Rect
	Eyes     eyes.Pair
	Distance float64
	Angle    float64
	Crop     *image.Gray
}

// Pipeline bundles the cascades and tuning needed to run the façade
// repeatedly (e.g. once per job frame) without re-threading parameters.
type Pipeline struct {
	FaceCascade  *cascade.Cascade
	DetectParams detect.Params
	EyeOptions   eyes.Options
	NormOptions  normalize.Options
}

// New builds a Pipeline with the spec's default detector and normalizer
// tuning. Callers override fields as needed before calling Run.
func New(faceCascade *cascade.Cascade, eyeCascade *cascade.Cascade) *Pipeline {
	return &Pipeline{
		FaceCascade:  faceCascade,
		DetectParams: detect.DefaultParams(),
		EyeOptions: eyes.Options{
			Strategy:     eyes.CascadeStrategy,
			EyeCascade:   eyeCascade,
			DetectParams: detect.DefaultParams(),
		},
		NormOptions: normalize.DefaultOptions(),
	}
}

// Run executes the façade against one RGBA source image.
func (p *Pipeline) Run(src image.Image) (Result, error) {
	start := time.Now()
	rgba, w, h := toRGBABytes(src)
	plane := imaging.Grayscale(rgba, w, h)
	observability.StageDuration.WithLabelValues(observability.StageGrayscale).Observe(time.Since(start).Seconds())

	start = time.Now()
	dets, err := detect.Detect(plane, w, h, p.FaceCascade, p.DetectParams)
	observability.StageDuration.WithLabelValues(observability.StageScan).Observe(time.Since(start).Seconds())
	if err != nil {
		return Result{}, err
	}
	if len(dets) == 0 {
		return Result{Outcome: OutcomeNoFace}, nil
	}

	face := largestFace(dets)

	start = time.Now()
	pair, ok := eyes.Locate(plane, w, h, face, p.EyeOptions)
	observability.StageDuration.WithLabelValues(observability.StageEyes).Observe(time.Since(start).Seconds())
	if !ok {
		return Result{Outcome: OutcomeNoEyes, Face: face}, nil
	}

	start = time.Now()
	norm := normalize.Normalize(src, pair.Left, pair.Right, p.NormOptions)
	observability.StageDuration.WithLabelValues(observability.StageNormalize).Observe(time.Since(start).Seconds())

	return Result{
		Outcome:  OutcomeNormalized,
		Face:     face,
		Eyes:     pair,
		Distance: norm.Distance,
		Angle:    norm.Angle,
		Crop:     norm.Crop,
	}, nil
}

// largestFace picks the detection with the greatest rectangle area,
// ties going to the earliest in detect.Detect's scan order (spec.md §5:
// "strictly-greater area wins; equal area → earlier in the above
// order").
func largestFace(dets []detect.Detection) detect.Rect {
	best := dets[0]
	for _, d := range dets[1:] {
		if d.Rect.Area() > best.Rect.Area() {
			best = d
		}
	}
	return best.Rect
}

// toRGBABytes extracts a tightly-packed RGBA byte buffer from src,
// fast-pathing the already-RGBA case the way the teacher's
// imageToFloat32CHW/resizeImage helpers fast-path *image.RGBA sources.
func toRGBABytes(src image.Image) ([]byte, int, int) {
	if rgba, ok := src.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == rgba.Rect.Dx()*4 {
		return rgba.Pix, rgba.Rect.Dx(), rgba.Rect.Dy()
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]byte, w*h*4)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := src.At(x, y).RGBA()
			out[i] = byte(r >> 8)
			out[i+1] = byte(g >> 8)
			out[i+2] = byte(bl >> 8)
			out[i+3] = byte(a >> 8)
			i += 4
		}
	}
	return out, w, h
}
