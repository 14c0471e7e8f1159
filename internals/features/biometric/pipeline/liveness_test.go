package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLivenessGateAcceptsNaturalImage(t *testing.T) {
	err := DefaultLivenessGate().Check(noiseFace(256))
	assert.NoError(t, err)
}

func TestLivenessGateRejectsPeriodicPattern(t *testing.T) {
	// A screen photographed by a camera leaves moire interference:
	// isolated high-energy spikes in the spectrum. The checkerboard is
	// the extreme case.
	err := DefaultLivenessGate().Check(checkerboard(256, 32))
	var gf *GateFailure
	require.ErrorAs(t, err, &gf)
	assert.Equal(t, GateLiveness, gf.Kind)
	assert.Contains(t, gf.Message, "screen")
}

func TestLivenessGateRejectsFlatTexture(t *testing.T) {
	// A constant gradient has edges everywhere but zero variation in
	// edge strength, which is what printed reproductions look like.
	err := DefaultLivenessGate().Check(horizontalRamp(256))
	var gf *GateFailure
	require.ErrorAs(t, err, &gf)
	assert.Equal(t, GateLiveness, gf.Kind)
	assert.Contains(t, gf.Message, "texture")
}

func TestLivenessGateRejectsUniformLighting(t *testing.T) {
	// Same noise amplitude in every region: passes the spectral and
	// texture checks but the 3x3 illumination profile is too even.
	err := DefaultLivenessGate().Check(uniformNoise(256))
	var gf *GateFailure
	require.ErrorAs(t, err, &gf)
	assert.Equal(t, GateLiveness, gf.Kind)
	assert.Contains(t, gf.Message, "lighting")
}

func TestSpectralSpikeRatioOrdering(t *testing.T) {
	natural := spectralSpikeRatio(noiseFace(128))
	periodic := spectralSpikeRatio(checkerboard(128, 16))
	assert.Less(t, natural, periodic)
	assert.Less(t, natural, 3.0)
	assert.Greater(t, periodic, 3.0)
}

func TestTextureVariance(t *testing.T) {
	assert.Less(t, textureVariance(horizontalRamp(128)), 50.0)
	assert.Greater(t, textureVariance(noiseFace(128)), 50.0)
}

func TestIlluminationVariance(t *testing.T) {
	assert.Less(t, illuminationVariance(uniformNoise(128)), 10.0)
	assert.Greater(t, illuminationVariance(noiseFace(128)), 10.0)
}
