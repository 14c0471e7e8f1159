package pipeline

import (
	"errors"
	"fmt"
)

var errEmptyCrop = errors.New("face rectangle is outside the image")

// GateKind identifies which stage of the verification pipeline rejected
// an image. The set is closed: controllers map every kind to a 400 with
// the gate's message, anything else is treated as an internal failure.
type GateKind string

const (
	GateLowQuality    GateKind = "LOW_QUALITY"
	GateLiveness      GateKind = "LIVENESS"
	GateNoFace        GateKind = "NO_FACE"
	GateMultipleFaces GateKind = "MULTIPLE_FACES"
)

// GateFailure is a user-correctable rejection: the submitted image did
// not pass a pipeline gate. The message is safe to return verbatim.
type GateFailure struct {
	Kind    GateKind
	Message string
}

func (e *GateFailure) Error() string { return e.Message }

func gateErr(kind GateKind, format string, args ...interface{}) *GateFailure {
	return &GateFailure{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// FaceRecognitionError covers opaque failures inside the pipeline
// (undecodable payload, detector not loaded, descriptor dimension
// mismatch). Callers must not leak its message to clients.
type FaceRecognitionError struct {
	Op  string
	Err error
}

func (e *FaceRecognitionError) Error() string {
	return fmt.Sprintf("face recognition: %s: %v", e.Op, e.Err)
}

func (e *FaceRecognitionError) Unwrap() error { return e.Err }

// IsUserCorrectable reports whether err is a gate rejection the user can
// fix by submitting a better image.
func IsUserCorrectable(err error) bool {
	_, ok := err.(*GateFailure)
	return ok
}
