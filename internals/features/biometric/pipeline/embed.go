package pipeline

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

const (
	// EmbeddingDim is the descriptor length produced by GridEmbedder:
	// an 8x8 cell grid with an 8-bin orientation histogram per cell.
	EmbeddingDim = 512

	cropSize  = 128
	gridCells = 8
	histBins  = 8
)

// FaceEmbedder turns a face crop into a fixed-length descriptor.
type FaceEmbedder interface {
	Embed(img *image.Gray, face Face) ([]float32, error)
}

// GridEmbedder builds a deterministic gradient-orientation descriptor
// over a normalized 128x128 crop. It is fully reproducible: the same
// image always yields the same vector, so enroll-then-verify on one
// photo scores an exact match.
type GridEmbedder struct{}

func (GridEmbedder) Embed(img *image.Gray, face Face) ([]float32, error) {
	crop := face.Rect.Intersect(img.Rect)
	if crop.Empty() {
		return nil, &FaceRecognitionError{Op: "embed", Err: errEmptyCrop}
	}

	sub := img.SubImage(crop)
	aligned := imaging.Resize(sub, cropSize, cropSize, imaging.Lanczos)
	gray := toGray(aligned)

	vec := make([]float32, EmbeddingDim)
	cell := cropSize / gridCells
	for y := 1; y < cropSize-1; y++ {
		for x := 1; x < cropSize-1; x++ {
			gx, gy := sobelAt(gray, x, y)
			mag := math.Hypot(gx, gy)
			if mag == 0 {
				continue
			}
			// Orientation folded into [0, 2pi), binned uniformly.
			theta := math.Atan2(gy, gx)
			if theta < 0 {
				theta += 2 * math.Pi
			}
			bin := int(theta / (2 * math.Pi) * histBins)
			if bin >= histBins {
				bin = histBins - 1
			}
			cellIdx := (y/cell)*gridCells + x/cell
			vec[cellIdx*histBins+bin] += float32(mag)
		}
	}

	normalize(vec)
	return vec, nil
}

// normalize scales vec to unit L2 norm in place. The zero vector is
// left untouched.
func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	inv := 1.0 / math.Sqrt(sum)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) * inv)
	}
}
