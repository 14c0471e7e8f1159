package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQualityGate() QualityGate {
	return QualityGate{MinScore: 0.6, MinSharpness: 100, MinSize: 200}
}

func TestQualityGateAcceptsTexturedImage(t *testing.T) {
	rep, err := testQualityGate().Check(noiseFace(256))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, rep.Score, 0.6)
	assert.GreaterOrEqual(t, rep.Sharpness, 100.0)
	assert.InDelta(t, 128.0, rep.Brightness, 10.0)
}

func TestQualityGateRejectsSmallImage(t *testing.T) {
	_, err := testQualityGate().Check(noiseFace(128))
	var gf *GateFailure
	require.ErrorAs(t, err, &gf)
	assert.Equal(t, GateLowQuality, gf.Kind)
}

func TestQualityGateRejectsFlatImage(t *testing.T) {
	// Zero Laplacian variance: fails the sharpness floor regardless of
	// the composite score.
	rep, err := testQualityGate().Check(flatGray(256, 128))
	var gf *GateFailure
	require.ErrorAs(t, err, &gf)
	assert.Equal(t, GateLowQuality, gf.Kind)
	assert.Zero(t, rep.Sharpness)
}

func TestQualityGateRejectsDarkImage(t *testing.T) {
	// Near-black with barely any variation: sharp enough to pass the
	// Laplacian floor is impossible here, but the composite would fail
	// too (brightness score ~0, contrast score ~0).
	_, err := testQualityGate().Check(flatGray(256, 5))
	var gf *GateFailure
	require.ErrorAs(t, err, &gf)
	assert.Equal(t, GateLowQuality, gf.Kind)
}

func TestLaplacianVarianceOrdering(t *testing.T) {
	// More texture, more Laplacian variance.
	flat := laplacianVariance(flatGray(64, 128))
	noisy := laplacianVariance(noiseFace(64))
	assert.Less(t, flat, noisy)
	assert.Zero(t, flat)
}

func TestMeanStddev(t *testing.T) {
	mean, stddev := meanStddev(flatGray(32, 77))
	assert.Equal(t, 77.0, mean)
	assert.Zero(t, stddev)
}
