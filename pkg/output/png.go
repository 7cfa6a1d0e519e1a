package output

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// ToRGBA converts a frame to an 8-bit image using the same tone mapping as the PPM writer
func ToRGBA(frame *renderer.Frame) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			r, g, b := ToneMap(frame.At(x, y))
			img.SetRGBA(x, y, color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255})
		}
	}
	return img
}

// WritePNG encodes a frame as PNG
func WritePNG(w io.Writer, frame *renderer.Frame) error {
	if err := png.Encode(w, ToRGBA(frame)); err != nil {
		return fmt.Errorf("png: %w", err)
	}
	return nil
}
