package cmd

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"time"

	dimg "github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/spf13/cobra"

	"github.com/your-org/faceline/internal/cascade"
	"github.com/your-org/faceline/internal/pipeline"
)

var (
	detectFaceCascade string
	detectEyeCascade  string
)

var detectCmd = &cobra.Command{
	Use:   "detect <in.png> <out.png>",
	Short: "Detect the largest face, locate its eyes, and write a normalized crop",
	Long: `Runs the detect -> locate eyes -> normalize pipeline directly
in-process against the input image and writes the normalized crop to
the output path as PNG.

JPEG inputs carrying an EXIF Orientation tag are rotated/flipped to
upright before the pipeline runs, since phone cameras routinely store
landscape photos with a rotation tag rather than pre-rotated pixels.`,
	Args: cobra.ExactArgs(2),
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().StringVar(&detectFaceCascade, "cascade", "", "path to the face cascade XML (required)")
	detectCmd.Flags().StringVar(&detectEyeCascade, "eye-cascade", "", "path to the eye cascade XML (required)")
	_ = detectCmd.MarkFlagRequired("cascade")
	_ = detectCmd.MarkFlagRequired("eye-cascade")
	rootCmd.AddCommand(detectCmd)
}

func runDetect(c *cobra.Command, args []string) error {
	inPath, outPath := args[0], args[1]
	start := time.Now()

	inData, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("read input image: %w", err)
	}

	img, err := decodeUpright(inData)
	if err != nil {
		return fmt.Errorf("decode input image: %w", err)
	}

	faceCascade, err := loadCascade(detectFaceCascade)
	if err != nil {
		return fmt.Errorf("load face cascade: %w", err)
	}
	eyeCascade, err := loadCascade(detectEyeCascade)
	if err != nil {
		return fmt.Errorf("load eye cascade: %w", err)
	}

	p := pipeline.New(faceCascade, eyeCascade)
	result, err := p.Run(img)
	if err != nil {
		return fmt.Errorf("run pipeline: %w", err)
	}

	switch result.Outcome {
	case pipeline.OutcomeNoFace:
		return fmt.Errorf("no face found in %s", inPath)
	case pipeline.OutcomeNoEyes:
		return fmt.Errorf("face found but eyes could not be located in %s", inPath)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer out.Close()

	if err := png.Encode(out, result.Crop); err != nil {
		return fmt.Errorf("encode normalized crop: %w", err)
	}

	logVerbose("face=%+v eyes=%+v distance=%.2f angle=%.4f elapsed=%s",
		result.Face, result.Eyes, result.Distance, result.Angle, time.Since(start).Round(time.Millisecond))
	fmt.Printf("wrote %s (distance=%.1fpx, angle=%.2f°)\n", outPath, result.Distance, result.Angle*180/3.14159265)

	return nil
}

func loadCascade(path string) (*cascade.Cascade, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return cascade.Load(data)
}

// decodeUpright decodes a PNG or JPEG and, for JPEGs carrying an EXIF
// Orientation tag other than 1 (normal), rotates/flips it to upright.
func decodeUpright(data []byte) (image.Image, error) {
	orientation := 1
	if x, err := exif.Decode(bytes.NewReader(data)); err == nil {
		if tag, err := x.Get(exif.Orientation); err == nil {
			if v, err := tag.Int(0); err == nil {
				orientation = v
			}
		}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	return applyOrientation(img, orientation), nil
}

// applyOrientation realizes the 8 standard EXIF orientation values as
// the corresponding imaging rotate/flip composition.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return dimg.FlipH(img)
	case 3:
		return dimg.Rotate180(img)
	case 4:
		return dimg.FlipV(img)
	case 5:
		return dimg.FlipH(dimg.Rotate270(img))
	case 6:
		return dimg.Rotate270(img)
	case 7:
		return dimg.FlipH(dimg.Rotate90(img))
	case 8:
		return dimg.Rotate90(img)
	default:
		return img
	}
}
