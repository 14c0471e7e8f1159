package controller

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCode128PNG(t *testing.T) {
	raw, err := renderCode128PNG("EMP-042")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 120, img.Bounds().Dy())
}

func TestRenderCode128PNGRejectsEmpty(t *testing.T) {
	_, err := renderCode128PNG("")
	assert.Error(t, err)
}
