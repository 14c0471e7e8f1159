package pipeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineDistanceIdentical(t *testing.T) {
	v := []float32{0.5, -0.25, 1.0, 0.0}
	assert.InDelta(t, 0.0, CosineDistance(v, v), 1e-9)
}

func TestCosineDistanceOrthogonal(t *testing.T) {
	a := []float32{1, 0, 0, 0}
	b := []float32{0, 1, 0, 0}
	assert.InDelta(t, 1.0, CosineDistance(a, b), 1e-9)
}

func TestCosineDistanceOpposite(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{-1, 0}
	assert.InDelta(t, 2.0, CosineDistance(a, b), 1e-9)
}

func TestCosineDistanceScaleInvariant(t *testing.T) {
	a := []float32{0.3, 0.7, 0.1}
	b := []float32{0.6, 1.4, 0.2}
	assert.InDelta(t, 0.0, CosineDistance(a, b), 1e-6)
}

func TestCosineDistanceLengthMismatch(t *testing.T) {
	a := []float32{1, 0, 0}
	b := []float32{1, 0}
	// A stale template with the wrong dimension must never match.
	assert.Equal(t, 1.0, CosineDistance(a, b))
	assert.Equal(t, 1.0, CosineDistance(nil, nil))
}

func TestCosineDistanceZeroVector(t *testing.T) {
	a := []float32{0, 0, 0}
	b := []float32{1, 2, 3}
	assert.Equal(t, 1.0, CosineDistance(a, b))
}

func TestVerifyThresholdBoundary(t *testing.T) {
	// Build two unit vectors at a known angle so the distance is exact.
	angle := math.Acos(0.6) // cosine similarity 0.6 -> distance 0.4
	a := []float32{1, 0}
	b := []float32{float32(math.Cos(angle)), float32(math.Sin(angle))}

	res := Verify(a, b, 0.40)
	assert.InDelta(t, 0.40, res.Distance, 1e-6)
	assert.True(t, res.Match, "distance equal to the threshold is a match")

	res = Verify(a, b, 0.39)
	assert.False(t, res.Match)
}

func TestVerifyConfidence(t *testing.T) {
	v := []float32{1, 0}
	res := Verify(v, v, 0.40)
	assert.True(t, res.Match)
	assert.InDelta(t, 100.0, res.Confidence, 1e-6)

	opp := []float32{-1, 0}
	res = Verify(v, opp, 0.40)
	assert.False(t, res.Match)
	// Distance 2 would put raw confidence at -100; it clamps to 0.
	assert.Equal(t, 0.0, res.Confidence)
}

func TestEmbeddingBytesRoundTrip(t *testing.T) {
	vec := []float32{0, 1, -1, 0.5, float32(math.Pi), -2.75e-3}
	raw := EmbeddingToBytes(vec)
	assert.Len(t, raw, 4*len(vec))

	back, err := BytesToEmbedding(raw)
	assert.NoError(t, err)
	assert.Equal(t, vec, back)
}

func TestEmbeddingBytesLittleEndian(t *testing.T) {
	raw := EmbeddingToBytes([]float32{1.0})
	// float32(1.0) = 0x3F800000, little-endian on the wire.
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3F}, raw)
}

func TestBytesToEmbeddingRejectsRaggedLength(t *testing.T) {
	_, err := BytesToEmbedding([]byte{1, 2, 3})
	assert.Error(t, err)

	vec, err := BytesToEmbedding(nil)
	assert.NoError(t, err)
	assert.Empty(t, vec)
}
