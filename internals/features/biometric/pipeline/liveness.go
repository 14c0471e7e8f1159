package pipeline

import (
	"image"
	"math"
	"sort"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

// LivenessGate screens for presentation attacks: photos of screens leave
// periodic moire spikes in the frequency domain, printed photos lose
// fine texture, and both tend to be lit flatter than a real face.
type LivenessGate struct {
	SpikeRatio        float64 // spectral p99.5 vs mean, above is a moire pattern
	MinTextureVar     float64 // Sobel gradient magnitude variance minimum
	MinIlluminationVa float64 // variance across 3x3 region stddevs minimum
}

// DefaultLivenessGate mirrors the tuned production thresholds.
func DefaultLivenessGate() LivenessGate {
	return LivenessGate{SpikeRatio: 3.0, MinTextureVar: 50.0, MinIlluminationVa: 10.0}
}

func (g LivenessGate) Check(img *image.Gray) error {
	if spectralSpikeRatio(img) > g.SpikeRatio {
		return gateErr(GateLiveness, "screen capture detected, please present your face directly to the camera")
	}
	if textureVariance(img) < g.MinTextureVar {
		return gateErr(GateLiveness, "image lacks natural texture, printed photos are not accepted")
	}
	if illuminationVariance(img) < g.MinIlluminationVa {
		return gateErr(GateLiveness, "lighting is unnaturally uniform, please retake in normal lighting")
	}
	return nil
}

// spectralSpikeRatio computes the 2D FFT log-magnitude spectrum and
// compares its 99.5th percentile against the mean. Moire interference
// from photographing a screen shows up as isolated high-energy spikes.
func spectralSpikeRatio(img *image.Gray) float64 {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w < 8 || h < 8 {
		return 0
	}

	// Row-wise real FFT, then column-wise complex FFT over the half
	// spectrum. The half spectrum is enough: magnitudes are symmetric.
	rowFFT := fourier.NewFFT(w)
	half := w/2 + 1
	cols := make([][]complex128, half)
	for i := range cols {
		cols[i] = make([]complex128, h)
	}
	row := make([]float64, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			row[x] = float64(img.GrayAt(x, y).Y)
		}
		spec := rowFFT.Coefficients(nil, row)
		for x := 0; x < half; x++ {
			cols[x][y] = spec[x]
		}
	}

	colFFT := fourier.NewCmplxFFT(h)
	mags := make([]float64, 0, half*h)
	for x := 0; x < half; x++ {
		spec := colFFT.Coefficients(nil, cols[x])
		for _, c := range spec {
			mags = append(mags, 20*math.Log(cmplxAbs(c)+1))
		}
	}

	mean := stat.Mean(mags, nil)
	if mean <= 0 {
		return 0
	}
	sort.Float64s(mags)
	p := stat.Quantile(0.995, stat.Empirical, mags, nil)
	return p / mean
}

// textureVariance is the variance of the Sobel gradient magnitude.
// Printed or heavily compressed faces come out flat.
func textureVariance(img *image.Gray) float64 {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w < 3 || h < 3 {
		return 0
	}
	n := 0
	sum, sumSq := 0.0, 0.0
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx, gy := sobelAt(img, x, y)
			m := math.Hypot(gx, gy)
			sum += m
			sumSq += m * m
			n++
		}
	}
	mean := sum / float64(n)
	return sumSq/float64(n) - mean*mean
}

// illuminationVariance splits the image into a 3x3 grid and measures how
// much the per-region stddevs disagree. A real face lit by a real scene
// never lights every region identically.
func illuminationVariance(img *image.Gray) float64 {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w < 3 || h < 3 {
		return 0
	}
	stddevs := make([]float64, 0, 9)
	for ry := 0; ry < 3; ry++ {
		for rx := 0; rx < 3; rx++ {
			x0, x1 := rx*w/3, (rx+1)*w/3
			y0, y1 := ry*h/3, (ry+1)*h/3
			sum, sumSq, n := 0.0, 0.0, float64((x1-x0)*(y1-y0))
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					v := float64(img.GrayAt(x, y).Y)
					sum += v
					sumSq += v * v
				}
			}
			mean := sum / n
			variance := sumSq/n - mean*mean
			if variance < 0 {
				variance = 0
			}
			stddevs = append(stddevs, math.Sqrt(variance))
		}
	}
	return stat.Variance(stddevs, nil)
}

func sobelAt(img *image.Gray, x, y int) (gx, gy float64) {
	p := func(dx, dy int) float64 { return float64(img.GrayAt(x+dx, y+dy).Y) }
	gx = -p(-1, -1) - 2*p(-1, 0) - p(-1, 1) + p(1, -1) + 2*p(1, 0) + p(1, 1)
	gy = -p(-1, -1) - 2*p(0, -1) - p(1, -1) + p(-1, 1) + 2*p(0, 1) + p(1, 1)
	return gx, gy
}

func cmplxAbs(c complex128) float64 { return math.Hypot(real(c), imag(c)) }
