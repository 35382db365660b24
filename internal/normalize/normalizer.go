// Package normalize implements the geometry normalizer (C6): rotate the
// source image so the eye line is horizontal, crop a square padding
// region around the eyes, and resize to a fixed destination size.
package normalize

import (
	"image"
	"image/color"
	"math"

	dimg "github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"github.com/your-org/faceline/internal/imaging"
)

// fillWhite is the boundary/padding luminance, per spec.md §4.6 step 2.
const fillWhite = 255

// Options tunes the normalizer. Offset expresses padding as a fraction
// of the inter-ocular distance; DestSize is the output's side length.
type Options struct {
	OffsetX, OffsetY float64
	DestSize         int
}

// DefaultOptions returns the spec's default tuning: ox=oy=0.5, destSize=150.
func DefaultOptions() Options {
	return Options{OffsetX: 0.5, OffsetY: 0.5, DestSize: 150}
}

// Result is the normalized output plus the geometry that produced it.
type Result struct {
	Crop     *image.Gray
	Angle    float64
	Distance float64
}

// Normalize rotates, crops, and resizes src (an RGBA image) so eyeLeft
// and eyeRight end up on a horizontal line at a fixed fraction of the
// output's width, per spec.md §4.6.
func Normalize(src image.Image, eyeLeft, eyeRight imaging.Point, opts Options) Result {
	angle := imaging.Angle(eyeLeft, eyeRight, false)
	center := imaging.Center(eyeLeft, eyeRight)
	distance := imaging.Distance(eyeLeft, eyeRight)

	if distance <= 0 {
		return Result{Crop: whiteSquare(opts.DestSize), Angle: angle, Distance: distance}
	}

	rotated := rotateAbout(src, center, -angle)

	offX := math.Round(opts.OffsetX * distance)
	edge := int(math.Round(distance + 2*offX))
	if edge < 1 {
		edge = 1
	}
	// offY is accepted for interface symmetry with offX but does not
	// independently move the crop; see SPEC_FULL.md §4.17.

	topLeft := image.Pt(
		int(math.Round(center.X-float64(edge)/2)),
		int(math.Round(center.Y-float64(edge)/2)),
	)

	canvas := pasteClamped(rotated, topLeft, edge)
	resized := resizeSquare(canvas, opts.DestSize)

	return Result{Crop: resized, Angle: angle, Distance: distance}
}

// rotateAbout rotates src by angleRad (radians) about pivot, producing
// an image the same size as src with white-filled corners. A
// general-purpose rotate (e.g. imaging.Rotate from disintegration's
// package) expands the canvas and pivots on the image's own center,
// which would move the eye coordinates the caller already computed;
// this sampler keeps the frame and pivot fixed instead.
func rotateAbout(src image.Image, pivot imaging.Point, angleRad float64) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))

	cos, sin := math.Cos(angleRad), math.Sin(angleRad)
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			// Inverse-map the destination pixel back into source space.
			rx := float64(dx) - pivot.X
			ry := float64(dy) - pivot.Y
			sx := pivot.X + rx*cos + ry*sin
			sy := pivot.Y - rx*sin + ry*cos
			out.Set(dx, dy, sampleBilinearWhite(src, sx, sy, b))
		}
	}
	return out
}

func sampleBilinearWhite(src image.Image, sx, sy float64, b image.Rectangle) color.Color {
	x0 := int(math.Floor(sx))
	y0 := int(math.Floor(sy))
	fx := sx - float64(x0)
	fy := sy - float64(y0)

	c00 := colorAtOrWhite(src, x0, y0, b)
	c10 := colorAtOrWhite(src, x0+1, y0, b)
	c01 := colorAtOrWhite(src, x0, y0+1, b)
	c11 := colorAtOrWhite(src, x0+1, y0+1, b)

	var out [4]float64
	for i := 0; i < 4; i++ {
		top := c00[i]*(1-fx) + c10[i]*fx
		bot := c01[i]*(1-fx) + c11[i]*fx
		out[i] = top*(1-fy) + bot*fy
	}
	return toColor(out)
}

func colorAtOrWhite(src image.Image, x, y int, b image.Rectangle) [4]float64 {
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return [4]float64{fillWhite, fillWhite, fillWhite, 255}
	}
	r, g, bl, a := src.At(x, y).RGBA()
	return [4]float64{float64(r >> 8), float64(g >> 8), float64(bl >> 8), float64(a >> 8)}
}

func toColor(v [4]float64) color.Color {
	clampByte := func(f float64) uint8 {
		if f < 0 {
			return 0
		}
		if f > 255 {
			return 255
		}
		return uint8(math.Round(f))
	}
	return color.RGBA{R: clampByte(v[0]), G: clampByte(v[1]), B: clampByte(v[2]), A: clampByte(v[3])}
}

// pasteClamped crops an edge×edge square at topLeft out of src, clamped
// to src's bounds, and pastes it centered into a white edge×edge canvas
// (spec.md §4.6 step 4).
func pasteClamped(src image.Image, topLeft image.Point, edge int) *image.NRGBA {
	canvas := dimg.New(edge, edge, color.RGBA{R: fillWhite, G: fillWhite, B: fillWhite, A: 255})

	region := image.Rect(topLeft.X, topLeft.Y, topLeft.X+edge, topLeft.Y+edge)
	clamped := region.Intersect(src.Bounds())
	if clamped.Empty() {
		return canvas
	}

	cropped := dimg.Crop(src, clamped)
	pasteAt := image.Pt((edge-clamped.Dx())/2, (edge-clamped.Dy())/2)
	return dimg.Paste(canvas, cropped, pasteAt)
}

// resizeSquare resizes an edge×edge canvas to destSize×destSize with
// bilinear interpolation and returns its grayscale plane (spec.md §4.6
// step 5; the pipeline's normalized crop is a grayscale plane per §3).
func resizeSquare(canvas *image.NRGBA, destSize int) *image.Gray {
	dst := image.NewRGBA(image.Rect(0, 0, destSize, destSize))
	draw.BiLinear.Scale(dst, dst.Bounds(), canvas, canvas.Bounds(), draw.Src, nil)
	return toGray(dst)
}

func whiteSquare(destSize int) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, destSize, destSize))
	for i := range g.Pix {
		g.Pix[i] = fillWhite
	}
	return g
}

func toGray(src *image.RGBA) *image.Gray {
	b := src.Bounds()
	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.Set(x, y, src.At(x, y))
		}
	}
	return out
}
