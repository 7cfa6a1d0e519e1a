package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// PPMWriter streams a plain text (P3) image one scanline at a time
type PPMWriter struct {
	w             *bufio.Writer
	width, height int
	rowsWritten   int
}

// NewPPMWriter writes the P3 header for a width x height image and returns a
// writer ready to receive scanlines
func NewPPMWriter(w io.Writer, width, height int) (*PPMWriter, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("ppm: invalid image size %dx%d", width, height)
	}
	pw := &PPMWriter{w: bufio.NewWriter(w), width: width, height: height}
	if _, err := fmt.Fprintf(pw.w, "P3\n%d %d\n255\n", width, height); err != nil {
		return nil, fmt.Errorf("ppm: writing header: %w", err)
	}
	return pw, nil
}

// WriteRow appends one scanline of linear colors
func (pw *PPMWriter) WriteRow(y int, row []core.Color) error {
	if y != pw.rowsWritten {
		return fmt.Errorf("ppm: scanline %d written out of order, expected %d", y, pw.rowsWritten)
	}
	if len(row) != pw.width {
		return fmt.Errorf("ppm: scanline %d has %d pixels, expected %d", y, len(row), pw.width)
	}
	for _, c := range row {
		if err := writeColor(pw.w, c); err != nil {
			return fmt.Errorf("ppm: writing scanline %d: %w", y, err)
		}
	}
	pw.rowsWritten++
	return nil
}

// Close flushes buffered output and checks every scanline was written
func (pw *PPMWriter) Close() error {
	if err := pw.w.Flush(); err != nil {
		return fmt.Errorf("ppm: flushing output: %w", err)
	}
	if pw.rowsWritten != pw.height {
		return fmt.Errorf("ppm: wrote %d of %d scanlines", pw.rowsWritten, pw.height)
	}
	return nil
}

// WritePPM writes a complete frame as a P3 image
func WritePPM(w io.Writer, frame *renderer.Frame) error {
	pw, err := NewPPMWriter(w, frame.Width, frame.Height)
	if err != nil {
		return err
	}
	for y := 0; y < frame.Height; y++ {
		if err := pw.WriteRow(y, frame.Row(y)); err != nil {
			return err
		}
	}
	return pw.Close()
}

func writeColor(w io.Writer, c core.Color) error {
	r, g, b := ToneMap(c)
	_, err := fmt.Fprintf(w, "%d %d %d\n", r, g, b)
	return err
}
