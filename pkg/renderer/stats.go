package renderer

import (
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of samples taken
	AverageSamples float64       // Average samples per pixel
	MaxDepth       int           // Bounce limit used for every sample
	Elapsed        time.Duration // Wall-clock render time
}

// PixelStats accumulates the samples taken for a single pixel
type PixelStats struct {
	ColorAccum  core.Color // RGB accumulator for final result
	SampleCount int        // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Color) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// Scaled returns the accumulated color multiplied by a precomputed sample scale
func (ps *PixelStats) Scaled(scale float64) core.Color {
	return ps.ColorAccum.Multiply(scale)
}

// Frame holds the averaged linear color of every pixel, row-major, top row first
type Frame struct {
	Width  int
	Height int
	Pixels []core.Color
}

// NewFrame allocates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]core.Color, width*height),
	}
}

// At returns the color of pixel (x, y)
func (f *Frame) At(x, y int) core.Color {
	return f.Pixels[y*f.Width+x]
}

// Set stores the color of pixel (x, y)
func (f *Frame) Set(x, y int, c core.Color) {
	f.Pixels[y*f.Width+x] = c
}

// Row returns the colors of scanline y
func (f *Frame) Row(y int) []core.Color {
	return f.Pixels[y*f.Width : (y+1)*f.Width]
}
