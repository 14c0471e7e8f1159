package pipeline

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tapwork_backend/internals/configs"
)

/* ===================== synthetic rasters ===================== */

// noiseFace simulates a usable camera frame: mid-gray with noise whose
// amplitude grows left to right, so every gate passes (sharp, balanced,
// textured, unevenly lit, no periodic pattern).
func noiseFace(size int) *image.Gray {
	rng := rand.New(rand.NewSource(1))
	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			sigma := 16.0 + 48.0*float64(x)/float64(size)
			v := 128.0 + rng.NormFloat64()*sigma
			if v < 0 {
				v = 0
			}
			if v > 255 {
				v = 255
			}
			img.SetGray(x, y, color.Gray{Y: uint8(v)})
		}
	}
	return img
}

// flatGray is a featureless frame, the classic lens-cap shot.
func flatGray(size int, level uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size, size))
	for i := range img.Pix {
		img.Pix[i] = level
	}
	return img
}

// checkerboard produces a strongly periodic pattern, the frequency
// signature of photographing a screen.
func checkerboard(size, square int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/square+y/square)%2 == 0 {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

// horizontalRamp has a perfectly constant gradient: plenty of edges but
// zero texture variation, like a printed flat reproduction.
func horizontalRamp(size int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x * 255 / size)})
		}
	}
	return img
}

// uniformNoise is noise with the same amplitude everywhere, lighting
// flatter than any real scene.
func uniformNoise(size int) *image.Gray {
	rng := rand.New(rand.NewSource(2))
	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := 128.0 + rng.NormFloat64()*40.0
			if v < 0 {
				v = 0
			}
			if v > 255 {
				v = 255
			}
			img.SetGray(x, y, color.Gray{Y: uint8(v)})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

/* ===================== stubs ===================== */

type stubDetector struct {
	faces []Face
	err   error
}

func (d stubDetector) Detect(img *image.Gray) ([]Face, error) { return d.faces, d.err }

type stubEmbedder struct {
	vec    []float32
	called bool
}

func (e *stubEmbedder) Embed(img *image.Gray, face Face) ([]float32, error) {
	e.called = true
	return e.vec, nil
}

func testSettings() *configs.Settings {
	return &configs.Settings{
		EmbeddingDim:          EmbeddingDim,
		VerificationThreshold: 0.40,
		QualityThreshold:      0.6,
		MinSharpness:          100,
		MinImageSize:          200,
	}
}

func centerFace(size int) Face {
	q := size / 4
	return Face{Rect: image.Rect(q, q, 3*q, 3*q), Confidence: 50}
}

/* ===================== pipeline ===================== */

func TestPipelineRunHappyPath(t *testing.T) {
	want := []float32{0.1, 0.2, 0.3}
	emb := &stubEmbedder{vec: want}
	p := New(testSettings(), stubDetector{faces: []Face{centerFace(256)}})
	p.Embedder = emb

	got, err := p.Run(encodePNG(t, noiseFace(256)))
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.True(t, emb.called)
}

func TestPipelineRunNoFace(t *testing.T) {
	emb := &stubEmbedder{vec: []float32{1}}
	p := New(testSettings(), stubDetector{})
	p.Embedder = emb

	_, err := p.Run(encodePNG(t, noiseFace(256)))
	require.Error(t, err)
	var gf *GateFailure
	require.ErrorAs(t, err, &gf)
	assert.Equal(t, GateNoFace, gf.Kind)
	assert.False(t, emb.called)
}

func TestPipelineRunMultipleFaces(t *testing.T) {
	emb := &stubEmbedder{vec: []float32{1}}
	p := New(testSettings(), stubDetector{faces: []Face{centerFace(256), {Rect: image.Rect(0, 0, 64, 64)}}})
	p.Embedder = emb

	_, err := p.Run(encodePNG(t, noiseFace(256)))
	var gf *GateFailure
	require.ErrorAs(t, err, &gf)
	assert.Equal(t, GateMultipleFaces, gf.Kind)
	assert.False(t, emb.called, "embedding must not run when the face count is wrong")
}

func TestPipelineRunWithoutDetector(t *testing.T) {
	p := New(testSettings(), nil)
	_, err := p.Run(encodePNG(t, noiseFace(256)))
	require.Error(t, err)
	assert.False(t, IsUserCorrectable(err))
	var fe *FaceRecognitionError
	assert.ErrorAs(t, err, &fe)
}

func TestPipelineRunRejectsBeforeDetection(t *testing.T) {
	// Quality gate fires before the detector is ever consulted, so a
	// nil detector is fine here.
	p := New(testSettings(), nil)
	_, err := p.Run(encodePNG(t, flatGray(256, 128)))
	var gf *GateFailure
	require.ErrorAs(t, err, &gf)
	assert.Equal(t, GateLowQuality, gf.Kind)
}

func TestPipelineRunInvalidBase64(t *testing.T) {
	// Decode failures are opaque: the client sees a generic message,
	// never which formats or limits tripped.
	p := New(testSettings(), stubDetector{})
	_, err := p.Run("not base64 at all!!!")
	require.Error(t, err)
	var fe *FaceRecognitionError
	require.ErrorAs(t, err, &fe)
	assert.False(t, IsUserCorrectable(err))
}

/* ===================== decode ===================== */

func TestDecodeImageDataURL(t *testing.T) {
	payload := "data:image/png;base64," + encodePNG(t, flatGray(16, 99))
	img, err := DecodeImage(payload)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Rect.Dx())
	assert.Equal(t, uint8(99), img.GrayAt(3, 3).Y)
}

func TestDecodeImageEmpty(t *testing.T) {
	_, err := DecodeImage("")
	var fe *FaceRecognitionError
	require.ErrorAs(t, err, &fe)
	assert.False(t, IsUserCorrectable(err))
}

func TestDecodeImageCorrupt(t *testing.T) {
	_, err := DecodeImage(base64.StdEncoding.EncodeToString([]byte("definitely not a png")))
	var fe *FaceRecognitionError
	require.ErrorAs(t, err, &fe)
	assert.False(t, IsUserCorrectable(err))
}

/* ===================== embedder ===================== */

func TestGridEmbedderDeterministic(t *testing.T) {
	img := noiseFace(256)
	face := centerFace(256)

	a, err := GridEmbedder{}.Embed(img, face)
	require.NoError(t, err)
	b, err := GridEmbedder{}.Embed(img, face)
	require.NoError(t, err)

	assert.Len(t, a, EmbeddingDim)
	assert.Equal(t, a, b, "same image and face must produce the same descriptor")

	// Unit norm, so enroll-then-verify on the same photo is distance 0.
	var sum float64
	for _, v := range a {
		sum += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, sum, 1e-4)
	assert.InDelta(t, 0.0, CosineDistance(a, a), 1e-9)
}

func TestGridEmbedderDistinguishesContent(t *testing.T) {
	face := centerFace(256)
	a, err := GridEmbedder{}.Embed(noiseFace(256), face)
	require.NoError(t, err)
	b, err := GridEmbedder{}.Embed(checkerboard(256, 32), face)
	require.NoError(t, err)
	assert.Greater(t, CosineDistance(a, b), 0.05)
}

func TestGridEmbedderEmptyCrop(t *testing.T) {
	img := noiseFace(64)
	_, err := GridEmbedder{}.Embed(img, Face{Rect: image.Rect(100, 100, 120, 120)})
	require.Error(t, err)
	assert.False(t, IsUserCorrectable(err))
}
