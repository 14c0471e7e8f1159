package pipeline

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/webp"
)

// maxImageBytes caps decoded payload size; anything larger is rejected
// before we touch the decoder.
const maxImageBytes = 10 << 20

// DecodeImage turns a base64 payload (optionally a data URL) into a
// grayscale raster. Decode failures are opaque FaceRecognitionErrors:
// the caller gets a generic message, the detail stays in the server
// log, and nothing about the accepted formats leaks out.
func DecodeImage(data string) (*image.Gray, error) {
	if idx := strings.Index(data, ","); idx >= 0 && strings.HasPrefix(data, "data:") {
		data = data[idx+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(data))
	if err != nil {
		return nil, &FaceRecognitionError{Op: "decode", Err: fmt.Errorf("payload is not valid base64: %w", err)}
	}
	if len(raw) == 0 {
		return nil, &FaceRecognitionError{Op: "decode", Err: errors.New("payload is empty")}
	}
	if len(raw) > maxImageBytes {
		return nil, &FaceRecognitionError{Op: "decode", Err: fmt.Errorf("payload is %d bytes, limit %d", len(raw), maxImageBytes)}
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		// imaging registers jpeg/png/gif/tiff/bmp; webp needs its own decoder.
		img, err = webp.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, &FaceRecognitionError{Op: "decode", Err: fmt.Errorf("unsupported or corrupt image: %w", err)}
		}
	}
	return toGray(img), nil
}

func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			// ITU-R BT.601 luma, 16-bit channels.
			v := (299*r + 587*g + 114*bl) / 1000
			gray.SetGray(x-b.Min.X, y-b.Min.Y, color.Gray{Y: uint8(v >> 8)})
		}
	}
	return gray
}
