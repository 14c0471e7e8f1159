package pipeline

import (
	"fmt"
	"image"
	"os"

	pigo "github.com/esimov/pigo/core"
)

// Face is a detected face region in image coordinates.
type Face struct {
	Rect       image.Rectangle
	Confidence float32
}

// FaceDetector finds faces in a grayscale raster. Implementations must
// be safe for concurrent use.
type FaceDetector interface {
	Detect(img *image.Gray) ([]Face, error)
}

// PigoDetector wraps the pigo pixel-intensity cascade classifier.
type PigoDetector struct {
	classifier *pigo.Pigo
	minQuality float32
}

// NewPigoDetector loads a binary cascade from disk. A missing or
// unreadable cascade is not fatal to the process, the caller downgrades
// biometric endpoints instead.
func NewPigoDetector(cascadePath string) (*PigoDetector, error) {
	raw, err := os.ReadFile(cascadePath)
	if err != nil {
		return nil, fmt.Errorf("read cascade %s: %w", cascadePath, err)
	}
	classifier, err := pigo.NewPigo().Unpack(raw)
	if err != nil {
		return nil, fmt.Errorf("unpack cascade: %w", err)
	}
	return &PigoDetector{classifier: classifier, minQuality: 5.0}, nil
}

func (d *PigoDetector) Detect(img *image.Gray) ([]Face, error) {
	rows, cols := img.Rect.Dy(), img.Rect.Dx()

	params := pigo.CascadeParams{
		MinSize:     60,
		MaxSize:     1000,
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		ImageParams: pigo.ImageParams{
			Pixels: img.Pix,
			Rows:   rows,
			Cols:   cols,
			Dim:    img.Stride,
		},
	}

	dets := d.classifier.RunCascade(params, 0.0)
	dets = d.classifier.ClusterDetections(dets, 0.2)

	faces := make([]Face, 0, len(dets))
	for _, det := range dets {
		if det.Q < d.minQuality {
			continue
		}
		half := det.Scale / 2
		faces = append(faces, Face{
			Rect:       image.Rect(det.Col-half, det.Row-half, det.Col+half, det.Row+half),
			Confidence: det.Q,
		})
	}
	return faces, nil
}
