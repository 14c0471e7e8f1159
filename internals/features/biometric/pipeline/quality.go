package pipeline

import (
	"image"
	"math"
)

// QualityReport carries the raw measurements behind a quality decision,
// mostly for logging.
type QualityReport struct {
	Score      float64
	Sharpness  float64 // Laplacian variance
	Brightness float64 // mean gray level
	Contrast   float64 // gray level stddev
}

// QualityGate scores an image on sharpness, brightness balance and
// contrast. Weights: 50% sharpness, 30% brightness, 20% contrast.
type QualityGate struct {
	MinScore     float64
	MinSharpness float64
	MinSize      int
}

// Check rejects images that are too small, too blurry or scoring below
// the composite threshold.
func (g QualityGate) Check(img *image.Gray) (QualityReport, error) {
	var rep QualityReport

	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w < g.MinSize || h < g.MinSize {
		return rep, gateErr(GateLowQuality, "image is too small: shortest side must be at least %d pixels", g.MinSize)
	}

	rep.Sharpness = laplacianVariance(img)
	rep.Brightness, rep.Contrast = meanStddev(img)

	sharpScore := math.Min(rep.Sharpness/500.0, 1.0)
	brightScore := 1.0 - math.Abs(rep.Brightness-128.0)/128.0
	contrastScore := math.Min(rep.Contrast/64.0, 1.0)
	rep.Score = sharpScore*0.5 + brightScore*0.3 + contrastScore*0.2

	if rep.Sharpness < g.MinSharpness {
		return rep, gateErr(GateLowQuality, "image is too blurry, please hold the camera steady")
	}
	if rep.Score < g.MinScore {
		return rep, gateErr(GateLowQuality, "image quality is too low, please retake in better lighting")
	}
	return rep, nil
}

// laplacianVariance applies the 4-neighbour Laplacian kernel and returns
// the variance of the response. Border pixels are skipped.
func laplacianVariance(img *image.Gray) float64 {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w < 3 || h < 3 {
		return 0
	}
	n := 0
	sum, sumSq := 0.0, 0.0
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			c := float64(img.GrayAt(x, y).Y)
			v := float64(img.GrayAt(x, y-1).Y) +
				float64(img.GrayAt(x, y+1).Y) +
				float64(img.GrayAt(x-1, y).Y) +
				float64(img.GrayAt(x+1, y).Y) - 4*c
			sum += v
			sumSq += v * v
			n++
		}
	}
	mean := sum / float64(n)
	return sumSq/float64(n) - mean*mean
}

func meanStddev(img *image.Gray) (mean, stddev float64) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	n := float64(w * h)
	sum, sumSq := 0.0, 0.0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := float64(img.GrayAt(x, y).Y)
			sum += v
			sumSq += v * v
		}
	}
	mean = sum / n
	variance := sumSq/n - mean*mean
	if variance < 0 {
		variance = 0
	}
	return mean, math.Sqrt(variance)
}
