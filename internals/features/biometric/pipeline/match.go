package pipeline

import "math"

// MatchResult is the outcome of comparing a probe descriptor against a
// stored template.
type MatchResult struct {
	Match      bool
	Distance   float64
	Confidence float64 // 0..100, derived from distance
}

// CosineDistance returns 1 - cosine similarity of two descriptors.
// Mismatched lengths or zero vectors compare as maximally distant
// rather than erroring, a stale template must never match.
func CosineDistance(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 1.0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 1.0
	}
	return 1.0 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}

// Verify compares a probe against a template under the given cosine
// distance threshold.
func Verify(probe, template []float32, threshold float64) MatchResult {
	d := CosineDistance(probe, template)
	return MatchResult{
		Match:      d <= threshold,
		Distance:   d,
		Confidence: clamp((1.0-d)*100.0, 0, 100),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
