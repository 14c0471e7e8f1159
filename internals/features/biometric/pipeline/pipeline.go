package pipeline

import (
	"encoding/binary"
	"fmt"
	"log"
	"math"

	"tapwork_backend/internals/configs"
)

// Pipeline runs the full image-to-descriptor chain. Gates execute in a
// fixed order and the first rejection wins: decode, quality, liveness,
// detection, embedding.
type Pipeline struct {
	Quality  QualityGate
	Liveness LivenessGate
	Detector FaceDetector
	Embedder FaceEmbedder
}

// New assembles a pipeline from settings. Detector may be nil when no
// cascade is available; Run then fails with a FaceRecognitionError and
// the controller reports the capability as degraded.
func New(cfg *configs.Settings, detector FaceDetector) *Pipeline {
	return &Pipeline{
		Quality: QualityGate{
			MinScore:     cfg.QualityThreshold,
			MinSharpness: cfg.MinSharpness,
			MinSize:      cfg.MinImageSize,
		},
		Liveness: DefaultLivenessGate(),
		Detector: detector,
		Embedder: GridEmbedder{},
	}
}

// Run produces a descriptor from a base64 image payload, or the gate
// failure that rejected it.
func (p *Pipeline) Run(imageData string) ([]float32, error) {
	img, err := DecodeImage(imageData)
	if err != nil {
		return nil, err
	}

	rep, err := p.Quality.Check(img)
	if err != nil {
		log.Printf("[WARN] face pipeline: quality gate rejected image (score=%.2f sharpness=%.1f)", rep.Score, rep.Sharpness)
		return nil, err
	}

	if err := p.Liveness.Check(img); err != nil {
		log.Printf("[WARN] face pipeline: liveness gate rejected image: %v", err)
		return nil, err
	}

	if p.Detector == nil {
		return nil, &FaceRecognitionError{Op: "detect", Err: fmt.Errorf("no face detector configured")}
	}
	faces, err := p.Detector.Detect(img)
	if err != nil {
		return nil, &FaceRecognitionError{Op: "detect", Err: err}
	}
	switch {
	case len(faces) == 0:
		return nil, gateErr(GateNoFace, "no face detected in the image")
	case len(faces) > 1:
		return nil, gateErr(GateMultipleFaces, "multiple faces detected, please submit a photo of yourself alone")
	}

	vec, err := p.Embedder.Embed(img, faces[0])
	if err != nil {
		return nil, err
	}
	return vec, nil
}

// EmbeddingToBytes serializes a descriptor as consecutive little-endian
// float32 values, no length prefix or framing.
func EmbeddingToBytes(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

// BytesToEmbedding is the inverse of EmbeddingToBytes. A length not
// divisible by four means a corrupt template.
func BytesToEmbedding(raw []byte) ([]float32, error) {
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("embedding blob length %d is not a multiple of 4", len(raw))
	}
	vec := make([]float32, len(raw)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i:]))
	}
	return vec, nil
}
